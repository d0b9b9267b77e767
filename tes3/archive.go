// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import "sort"

// Archive is a flat set of files ordered by ascending hash.
//
// An Archive value is not safe for concurrent mutation; independent Archive
// values in separate goroutines are fine as long as they do not share a
// mutable source.
type Archive struct {
	files []*File
}

// Len returns the number of files.
func (a *Archive) Len() int {
	return len(a.files)
}

// Empty reports whether the archive holds no files.
func (a *Archive) Empty() bool {
	return len(a.files) == 0
}

// Clear removes all files.
func (a *Archive) Clear() {
	a.files = nil
}

// Files returns the files in ascending hash order. The slice is a copy; the
// files are shared.
func (a *Archive) Files() []*File {
	out := make([]*File, len(a.files))
	copy(out, a.files)
	return out
}

// Insert adds file keyed by its hash. It reports false and leaves the archive
// unchanged when a file with the same hash already exists.
func (a *Archive) Insert(file *File) bool {
	if file == nil {
		return false
	}

	idx, found := a.search(file.hash)
	if found {
		return false
	}

	a.files = append(a.files, nil)
	copy(a.files[idx+1:], a.files[idx:])
	a.files[idx] = file
	return true
}

// Find returns the file stored under the hash of path, or nil.
func (a *Archive) Find(path string) *File {
	return a.FindHash(HashPath(path))
}

// FindHash returns the file stored under hash, or nil.
func (a *Archive) FindHash(hash Hash) *File {
	idx, found := a.search(hash)
	if !found {
		return nil
	}

	return a.files[idx]
}

// Erase removes the file stored under the hash of path and reports whether
// one was removed.
func (a *Archive) Erase(path string) bool {
	return a.EraseHash(HashPath(path))
}

// EraseHash removes the file stored under hash and reports whether one was
// removed.
func (a *Archive) EraseHash(hash Hash) bool {
	idx, found := a.search(hash)
	if !found {
		return false
	}

	a.files = append(a.files[:idx], a.files[idx+1:]...)
	return true
}

// search locates hash in the sorted file list.
func (a *Archive) search(hash Hash) (int, bool) {
	key := hash.Numeric()
	idx := sort.Search(len(a.files), func(i int) bool {
		return a.files[i].hash.Numeric() >= key
	})

	return idx, idx < len(a.files) && a.files[idx].hash == hash
}
