// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// Source is a positioned binary reader over an in-memory byte buffer.
//
// ReadBytes returns views into the underlying buffer; their lifetime is tied
// to the Source. ReadZString returns a copy. Archives parsed from a Source keep a
// reference to it through their proxied payload buffers, so a 1 GiB archive
// read allocates per-entry metadata only, never payload copies.
type Source struct {
	data []byte
	pos  int
}

// NewSource wraps an existing byte slice in a Source.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// OpenSource reads the whole file at path into memory and wraps it in a Source.
func OpenSource(path string) (*Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller provides archive path
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	return &Source{data: data}, nil
}

// Len returns total source size in bytes.
func (s *Source) Len() int {
	return len(s.data)
}

// Tell returns the current read position.
func (s *Source) Tell() int {
	return s.pos
}

// Remaining returns the number of unread bytes from the current position.
func (s *Source) Remaining() int {
	return len(s.data) - s.pos
}

// SeekAbsolute moves the read position to off.
func (s *Source) SeekAbsolute(off int) error {
	if off < 0 || off > len(s.data) {
		return fmt.Errorf("%w: seek to %d in %d byte source", ErrTruncated, off, len(s.data))
	}

	s.pos = off
	return nil
}

// SeekRelative moves the read position by delta.
func (s *Source) SeekRelative(delta int) error {
	return s.SeekAbsolute(s.pos + delta)
}

// RestorePoint captures the current position and returns a func restoring it.
// Use as `defer src.RestorePoint()()` around seek-and-read excursions.
func (s *Source) RestorePoint() func() {
	saved := s.pos
	return func() { s.pos = saved }
}

// ReadBytes returns a view of the next n bytes and advances the position.
// The view aliases the Source buffer and must not be modified.
func (s *Source) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(s.data)-s.pos {
		return nil, fmt.Errorf("%w: read %d bytes at %d in %d byte source", ErrTruncated, n, s.pos, len(s.data))
	}

	view := s.data[s.pos : s.pos+n : s.pos+n]
	s.pos += n
	return view, nil
}

// ReadU8 reads one byte.
func (s *Source) ReadU8() (uint8, error) {
	b, err := s.ReadBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadU16 reads a little-endian uint16.
func (s *Source) ReadU16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32.
func (s *Source) ReadU32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// ReadU32BE reads a big-endian uint32. Used for the xbox hash CRC field.
func (s *Source) ReadU32BE() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64.
func (s *Source) ReadU64() (uint64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// ReadZString reads a NUL-terminated string starting at the current position
// and leaves the position just past the terminator. The returned string is a
// copy of the bytes, not a view into the Source.
func (s *Source) ReadZString() (string, error) {
	idx := bytes.IndexByte(s.data[s.pos:], 0)
	if idx < 0 {
		return "", fmt.Errorf("%w: unterminated string at %d", ErrTruncated, s.pos)
	}

	value := string(s.data[s.pos : s.pos+idx])
	s.pos += idx + 1
	return value, nil
}
