// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

/*
Package tes3 reads and writes Morrowind-era BSA archives: a flat, hash-keyed
container with a fixed five-section layout.

# Reading

	src, err := bsa.OpenSource("Morrowind.bsa")
	if err != nil {
	    return err
	}

	var archive tes3.Archive
	if err := archive.Read(src); err != nil {
	    return err
	}

	for _, f := range archive.Files() {
	    _ = f.Name() // normalized path, e.g. `meshes\m\misc_com_bottle_01.nif`
	    _ = f.Bytes()
	}

Payloads are lazy views into the source; nothing is copied on read.

# Writing

	var archive tes3.Archive
	f := tes3.NewFile("meshes/m/misc_com_bottle_01.nif")
	f.SetData(payload)
	archive.Insert(f)

	if !archive.VerifyOffsets() {
	    return errors.New("archive exceeds 4 GiB format limit")
	}

	var buf bytes.Buffer
	if err := archive.Write(&buf); err != nil {
	    return err
	}

Files are written in ascending hash order; reading back a written archive
yields equal content.
*/
package tes3
