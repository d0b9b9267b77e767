// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import (
	"fmt"
	"io"
	"math"

	"github.com/woozymasta/bsa"
)

// Write serializes the archive to w in canonical form: header, file entries,
// name offsets, name blob, hashes, payloads, with files in ascending hash
// order throughout.
func (a *Archive) Write(w io.Writer) error {
	if w == nil {
		return bsa.ErrNilWriter
	}
	if !a.VerifyOffsets() {
		return fmt.Errorf("%w: archive exceeds 4 GiB", bsa.ErrOffsetOverflow)
	}

	out := bsa.NewWriter(w)

	if err := out.WriteU32(magic); err != nil {
		return err
	}
	if err := out.WriteU32(a.hashOffset()); err != nil {
		return err
	}
	if err := out.WriteU32(uint32(len(a.files))); err != nil { //nolint:gosec // count bounded by verify_offsets
		return err
	}

	// file entries: (size, running data offset)
	var dataOffset uint32
	for _, file := range a.files {
		size := uint32(file.Len()) //nolint:gosec // bounded by VerifyOffsets
		if err := out.WriteU32(size); err != nil {
			return err
		}
		if err := out.WriteU32(dataOffset); err != nil {
			return err
		}

		dataOffset += size
	}

	// name offsets: running sum of name lengths with terminators
	var nameOffset uint32
	for _, file := range a.files {
		if err := out.WriteU32(nameOffset); err != nil {
			return err
		}

		nameOffset += uint32(len(file.name)) + 1 //nolint:gosec // bounded by VerifyOffsets
	}

	for _, file := range a.files {
		if err := out.WriteZString(file.name); err != nil {
			return err
		}
	}

	for _, file := range a.files {
		if err := out.WriteU32(file.hash.Lo); err != nil {
			return err
		}
		if err := out.WriteU32(file.hash.Hi); err != nil {
			return err
		}
	}

	for _, file := range a.files {
		if err := out.WriteBytes(file.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

// VerifyOffsets reports whether every offset of the serialized archive fits
// the 32-bit on-disk fields. It returns false when the total written size
// would exceed the 4 GiB format limit.
func (a *Archive) VerifyOffsets() bool {
	total := uint64(headerSize)
	total += uint64(len(a.files)) * (fileEntrySize + nameOffSize + hashSize)
	for _, file := range a.files {
		total += uint64(len(file.name)) + 1
		total += uint64(file.Len())
	}

	return total <= math.MaxUint32
}

// hashOffset returns the header field: the hash table offset measured from
// just past the header.
func (a *Archive) hashOffset() uint32 {
	offset := uint64(len(a.files)) * (fileEntrySize + nameOffSize)
	for _, file := range a.files {
		offset += uint64(len(file.name)) + 1
	}

	return uint32(offset) //nolint:gosec // bounded by VerifyOffsets
}
