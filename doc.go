// Package pathsjson models the paths.json installation manifest of the
// conda package ecosystem: for every path a package installs, its
// location relative to the prefix, the link strategy (hard link, soft
// link, or explicit empty directory), whether it must be copied instead
// of linked, whether it embeds a build-prefix placeholder that install
// tools rewrite, and, under schema version 1, its content hash and
// size.
//
// Manifests load from raw bytes, files, extracted package directories,
// or package archives. For archives that predate the canonical format,
// the manifest is reconstructed from the deprecated per-purpose
// metadata files (info/files, info/no_link, info/has_prefix). Container
// traversal lives in the [archive] subpackage.
//
// # Quick Start
//
// Load the manifest of an extracted package, reconstructing it when the
// package predates info/paths.json:
//
//	m, err := pathsjson.FromPackageDirWithFallback("/opt/pkgs/zlib-1.2.13")
//	if err != nil {
//	    return err
//	}
//	for _, e := range m.Paths {
//	    fmt.Println(e.RelativePath, e.PathType)
//	}
//
// Read the manifest straight out of a package archive:
//
//	m, err := pathsjson.FromArchive("zlib-1.2.13-h166bdaf_4.conda")
//
// # Schema Versions
//
// Two schema versions exist. Version 1 carries optional per-entry
// sha256 and size_in_bytes; version 2 drops them. The serializer
// enforces the difference: a manifest with PathsVersion Version2 never
// emits the hash fields, whatever its in-memory entries carry.
// Reconstructed manifests are always version 1 with the hash fields
// unset.
//
// # Verification
//
// An extracted tree can be checked against its manifest:
//
//	err := m.VerifyDir(ctx, "/opt/pkgs/zlib-1.2.13",
//	    pathsjson.VerifyWithWorkers(4),
//	)
//
// Verification confirms each entry's kind and, where the manifest
// records them, file sizes and content hashes.
package pathsjson
