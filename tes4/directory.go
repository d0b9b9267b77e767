// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import "sort"

// Directory is a set of files keyed by file hash, itself keyed by a
// directory hash. No two files in one directory share a hash.
type Directory struct {
	name  string
	files []*File
	hash  Hash
	// padding carries the v105 directory record filler bits so an archive
	// read from disk round-trips them unchanged.
	padding uint32
}

// NewDirectory creates a directory keyed and named by path. The path is
// normalized.
func NewDirectory(path string) *Directory {
	name := NormalizePath(path)
	return &Directory{hash: hashDirectoryNormalized(name), name: name}
}

// NewDirectoryHash creates a nameless directory keyed by a precomputed hash.
func NewDirectoryHash(hash Hash) *Directory {
	return &Directory{hash: hash}
}

// Hash returns the directory key. It is fixed at construction.
func (d *Directory) Hash() Hash {
	return d.hash
}

// Name returns the normalized directory path, or "" when nameless.
func (d *Directory) Name() string {
	return d.name
}

// Len returns the number of files.
func (d *Directory) Len() int {
	return len(d.files)
}

// Empty reports whether the directory holds no files.
func (d *Directory) Empty() bool {
	return len(d.files) == 0
}

// Clear removes all files.
func (d *Directory) Clear() {
	d.files = nil
}

// Files returns the files in ascending hash order. The slice is a copy; the
// files are shared.
func (d *Directory) Files() []*File {
	out := make([]*File, len(d.files))
	copy(out, d.files)
	return out
}

// Insert adds file keyed by its hash. It reports false and leaves the
// directory unchanged when a file with the same hash already exists.
func (d *Directory) Insert(file *File) bool {
	if file == nil {
		return false
	}

	idx, found := d.search(file.hash)
	if found {
		return false
	}

	d.files = append(d.files, nil)
	copy(d.files[idx+1:], d.files[idx:])
	d.files[idx] = file
	return true
}

// Find returns the file stored under the hash of name, or nil.
func (d *Directory) Find(name string) *File {
	return d.FindHash(HashFile(name))
}

// FindHash returns the file stored under hash, or nil.
func (d *Directory) FindHash(hash Hash) *File {
	idx, found := d.search(hash)
	if !found {
		return nil
	}

	return d.files[idx]
}

// Erase removes the file stored under the hash of name and reports whether
// one was removed.
func (d *Directory) Erase(name string) bool {
	return d.EraseHash(HashFile(name))
}

// EraseHash removes the file stored under hash and reports whether one was
// removed.
func (d *Directory) EraseHash(hash Hash) bool {
	idx, found := d.search(hash)
	if !found {
		return false
	}

	d.files = append(d.files[:idx], d.files[idx+1:]...)
	return true
}

// search locates hash in the sorted file list.
func (d *Directory) search(hash Hash) (int, bool) {
	key := hash.Numeric()
	idx := sort.Search(len(d.files), func(i int) bool {
		return d.files[i].hash.Numeric() >= key
	})

	return idx, idx < len(d.files) && d.files[idx].hash == hash
}
