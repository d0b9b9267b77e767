// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

/*
Package bsa provides the shared primitives behind the Bethesda Softworks
Archive codecs: the positioned Source reader, the counting Writer, the
three-state payload Buffer, the compression codec adaptors, and the sentinel
errors common to both formats.

The format codecs live in the subpackages:

  - github.com/woozymasta/bsa/tes3 — the Morrowind archive format;
  - github.com/woozymasta/bsa/tes4 — the Oblivion/Fallout/Skyrim family
    (versions 103, 104, 105).

# Buffer ownership

A parsed archive never copies payload bytes. Each file's Buffer is proxied
into the Source the archive was read from, and pins it alive:

	src, err := bsa.OpenSource("Morrowind.bsa")
	if err != nil {
	    return err
	}
	var archive tes3.Archive
	if err := archive.Read(src); err != nil {
	    return err
	}
	// archive payloads are views into src; src stays reachable through them

Payloads attached by the caller are either borrowed views (SetData) or owned
slices handed over to the file without copying (SetDataOwned); compression
and decompression always produce owned bytes.

# Compression

The codec adaptors map archive versions to their payload codecs: zlib for
v103/v104, the LZ4 block format for v105. The xmem codec of xbox v104
archives has no open implementation and reports ErrUnsupportedCodec.

	packed, err := bsa.Compress(raw, bsa.CodecZlib)
	if err != nil {
	    return err
	}
	back, err := bsa.Decompress(packed, len(raw), bsa.CodecZlib)
*/
package bsa
