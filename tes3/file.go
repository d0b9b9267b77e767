// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import "github.com/woozymasta/bsa"

// File is one archive entry: an immutable hash, an optional normalized name,
// and a payload buffer.
type File struct {
	name string
	data bsa.Buffer
	hash Hash
}

// NewFile creates a file keyed and named by path. The path is normalized.
func NewFile(path string) *File {
	name := NormalizePath(path)
	return &File{hash: hashNormalized(name), name: name}
}

// NewFileHash creates a nameless file keyed by a precomputed hash.
func NewFileHash(hash Hash) *File {
	return &File{hash: hash}
}

// Hash returns the file key. It is fixed at construction.
func (f *File) Hash() Hash {
	return f.hash
}

// Name returns the normalized archive path, or "" when the file is nameless.
func (f *File) Name() string {
	return f.name
}

// Bytes returns the payload view.
func (f *File) Bytes() []byte {
	return f.data.Bytes()
}

// Len returns payload size in bytes.
func (f *File) Len() int {
	return f.data.Len()
}

// Empty reports whether the file has no payload.
func (f *File) Empty() bool {
	return f.data.Empty()
}

// SetData points the payload at caller-owned bytes without copying.
func (f *File) SetData(data []byte) {
	f.data.SetBorrowed(data)
}

// SetDataOwned transfers data into the file. The slice must not be used by
// the caller afterwards.
func (f *File) SetDataOwned(data []byte) {
	f.data.SetOwned(data)
}

// Clear drops the payload, releasing any pinned source.
func (f *File) Clear() {
	f.data.Clear()
}
