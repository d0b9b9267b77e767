// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

/*
Package tes4 reads and writes Oblivion-era BSA archives (versions 103, 104
and 105): a hierarchical directory/file container with archive-level flags,
content types, and optional per-file compression.

# Reading

	src, err := bsa.OpenSource("Skyrim - Misc.bsa")
	if err != nil {
	    return err
	}

	var archive tes4.Archive
	version, err := archive.Read(src)
	if err != nil {
	    return err
	}

	for _, dir := range archive.Directories() {
	    for _, f := range dir.Files() {
	        if f.Compressed() {
	            if err := f.Decompress(version); err != nil {
	                return err
	            }
	        }
	        _ = f.Bytes()
	    }
	}

Payloads stay lazy and compressed exactly as stored; Decompress expands them
on demand with the version's codec (zlib for 103/104, lz4 for 105).

# Writing

	var archive tes4.Archive
	archive.SetArchiveFlags(tes4.FlagDirectoryStrings | tes4.FlagFileStrings)
	archive.SetArchiveTypes(tes4.TypeMeshes)

	dir := tes4.NewDirectory(`meshes\clutter`)
	f := tes4.NewFile("basket01.nif")
	f.SetData(payload)
	dir.Insert(f)
	archive.Insert(dir)

	if err := archive.Write(out, tes4.VersionSSE); err != nil {
	    return err
	}

# Per-file compression

Each file carries its own compression state; the writer records entries whose
state differs from the archive default. Rule-based selection compresses a
subset in one pass, for example everything except sound payloads:

	err := archive.CompressMatching(tes4.VersionSSE, tes4.CompressOptions{
	    Rules: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "**"},
	        {Action: pathrules.ActionExclude, Pattern: "sound/**"},
	    },
	})
*/
package tes4
