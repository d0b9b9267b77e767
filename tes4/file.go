// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bsa"
)

// File is one leaf entry of the TES4 virtual filesystem: an immutable hash,
// an optional basename, a payload buffer, and the payload's compression
// state. The compression state may differ from the archive default; the
// writer records the mismatch per entry.
type File struct {
	name             string
	data             bsa.Buffer
	hash             Hash
	decompressedSize uint32
	compressed       bool
}

// NewFile creates a file keyed and named by the basename of path.
func NewFile(path string) *File {
	name := NormalizePath(path)
	if idx := strings.LastIndexByte(name, '\\'); idx >= 0 {
		name = name[idx+1:]
	}

	return &File{hash: HashFile(name), name: name}
}

// NewFileHash creates a nameless file keyed by a precomputed hash.
func NewFileHash(hash Hash) *File {
	return &File{hash: hash}
}

// Hash returns the file key. It is fixed at construction.
func (f *File) Hash() Hash {
	return f.hash
}

// Name returns the normalized basename, or "" when the file is nameless.
func (f *File) Name() string {
	return f.name
}

// Bytes returns the payload view: compressed bytes when Compressed reports
// true, raw bytes otherwise.
func (f *File) Bytes() []byte {
	return f.data.Bytes()
}

// Len returns payload size in bytes in its current encoding.
func (f *File) Len() int {
	return f.data.Len()
}

// Empty reports whether the file has no payload.
func (f *File) Empty() bool {
	return f.data.Empty()
}

// Compressed reports whether the payload currently holds its compressed
// encoding.
func (f *File) Compressed() bool {
	return f.compressed
}

// DecompressedSize returns the size the payload expands to. Meaningful only
// while Compressed reports true.
func (f *File) DecompressedSize() uint32 {
	return f.decompressedSize
}

// SetData points the payload at caller-owned raw bytes without copying.
func (f *File) SetData(data []byte) {
	f.data.SetBorrowed(data)
	f.compressed = false
	f.decompressedSize = 0
}

// SetDataOwned transfers raw data into the file. The slice must not be used
// by the caller afterwards.
func (f *File) SetDataOwned(data []byte) {
	f.data.SetOwned(data)
	f.compressed = false
	f.decompressedSize = 0
}

// SetDataCompressed points the payload at caller-owned bytes that are already
// in the codec encoding, expanding to decompressedSize bytes.
func (f *File) SetDataCompressed(data []byte, decompressedSize uint32) {
	f.data.SetBorrowed(data)
	f.compressed = true
	f.decompressedSize = decompressedSize
}

// Clear drops the payload and compression state, releasing any pinned source.
func (f *File) Clear() {
	f.data.Clear()
	f.compressed = false
	f.decompressedSize = 0
}

// Compress replaces the payload with its compressed encoding for version.
// It is a no-op when the payload is already compressed. The buffer is left
// owned.
func (f *File) Compress(version Version) error {
	return f.CompressCodec(version, false)
}

// CompressCodec is Compress with explicit xmem selection for xbox v104
// archives.
func (f *File) CompressCodec(version Version, xmem bool) error {
	if f.compressed {
		return nil
	}

	codec, err := version.Codec(xmem)
	if err != nil {
		return err
	}

	raw := f.data.Bytes()
	packed, err := bsa.Compress(raw, codec)
	if err != nil {
		return err
	}

	size := uint64(len(raw))
	if size > maxU32 {
		return fmt.Errorf("%w: payload of %d bytes", bsa.ErrOffsetOverflow, size)
	}

	f.data.SetOwned(packed)
	f.decompressedSize = uint32(size)
	f.compressed = true
	return nil
}

// Decompress replaces the payload with its raw bytes for version. It is a
// no-op when the payload is already raw. The buffer is left owned.
func (f *File) Decompress(version Version) error {
	return f.DecompressCodec(version, false)
}

// DecompressCodec is Decompress with explicit xmem selection.
func (f *File) DecompressCodec(version Version, xmem bool) error {
	if !f.compressed {
		return nil
	}

	codec, err := version.Codec(xmem)
	if err != nil {
		return err
	}

	raw, err := bsa.Decompress(f.data.Bytes(), int(f.decompressedSize), codec)
	if err != nil {
		return err
	}

	f.data.SetOwned(raw)
	f.decompressedSize = 0
	f.compressed = false
	return nil
}

// CompressBound returns the maximum compressed payload size for version.
func (f *File) CompressBound(version Version) (int, error) {
	codec, err := version.Codec(false)
	if err != nil {
		return 0, err
	}

	return bsa.CompressBound(f.data.Len(), codec)
}
