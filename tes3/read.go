// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import (
	"fmt"

	"github.com/woozymasta/bsa"
)

// Binary layout constants of the TES3 format.
const (
	magic         = 0x100
	headerSize    = 12
	fileEntrySize = 8
	hashSize      = 8
	nameOffSize   = 4
)

// sectionOffsets holds the absolute start of each archive section.
type sectionOffsets struct {
	fileEntries int
	nameOffsets int
	names       int
	hashes      int
	fileData    int
}

// Read parses a TES3 archive from src, replacing the current contents.
// Payloads are proxied views into src; the archive keeps src alive through
// them. Names are copied out of src. On error the archive is left unchanged.
func (a *Archive) Read(src *bsa.Source) error {
	if src == nil {
		return bsa.ErrNilSource
	}

	if err := src.SeekAbsolute(0); err != nil {
		return err
	}

	m, err := src.ReadU32()
	if err != nil {
		return err
	}
	if m != magic {
		return fmt.Errorf("%w: 0x%X", bsa.ErrBadMagic, m)
	}

	hashOffset, err := src.ReadU32()
	if err != nil {
		return err
	}

	fileCount, err := src.ReadU32()
	if err != nil {
		return err
	}

	count := int(fileCount)
	offsets := sectionOffsets{
		fileEntries: headerSize,
		nameOffsets: headerSize + count*fileEntrySize,
		names:       headerSize + count*(fileEntrySize+nameOffSize),
		hashes:      headerSize + int(hashOffset),
		fileData:    headerSize + int(hashOffset) + count*hashSize,
	}

	if offsets.hashes < offsets.names || offsets.fileData > src.Len() {
		return fmt.Errorf("%w: hash table at %d in %d byte source", bsa.ErrInconsistentOffset, offsets.hashes, src.Len())
	}

	var parsed Archive
	parsed.files = make([]*File, 0, count)
	for i := 0; i < count; i++ {
		file, err := readFile(src, offsets, i)
		if err != nil {
			return fmt.Errorf("file %d: %w", i, err)
		}

		if !parsed.Insert(file) {
			return fmt.Errorf("%w: %016X", bsa.ErrDuplicateHash, file.hash.Numeric())
		}
	}

	a.files = parsed.files
	return nil
}

// readFile parses the i-th entry through the four metadata sections.
func readFile(src *bsa.Source, offsets sectionOffsets, i int) (*File, error) {
	defer src.RestorePoint()()

	if err := src.SeekAbsolute(offsets.hashes + i*hashSize); err != nil {
		return nil, err
	}
	lo, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	hi, err := src.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := src.SeekAbsolute(offsets.fileEntries + i*fileEntrySize); err != nil {
		return nil, err
	}
	size, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	dataOffset, err := src.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := src.SeekAbsolute(offsets.nameOffsets + i*nameOffSize); err != nil {
		return nil, err
	}
	nameOffset, err := src.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := src.SeekAbsolute(offsets.names + int(nameOffset)); err != nil {
		return nil, err
	}
	name, err := src.ReadZString()
	if err != nil {
		return nil, err
	}

	if err := src.SeekAbsolute(offsets.fileData + int(dataOffset)); err != nil {
		return nil, fmt.Errorf("%w: payload at %d+%d", bsa.ErrInconsistentOffset, offsets.fileData, dataOffset)
	}
	payload, err := src.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}

	file := &File{hash: Hash{Lo: lo, Hi: hi}, name: name}
	file.data.SetProxied(payload, src)
	return file, nil
}
