// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import (
	"math/bits"
	"strings"
)

// Hash is a TES3 path hash: two 32-bit halves computed over the normalized
// path. The zero value marks an invalid or empty path.
type Hash struct {
	// Lo is hashed from the first half of the normalized path.
	Lo uint32 `json:"lo" yaml:"lo"`
	// Hi is hashed from the second half of the normalized path.
	Hi uint32 `json:"hi" yaml:"hi"`
}

// Numeric packs the hash into its on-disk total order: Lo occupies the high
// dword and Hi the low dword, so archives sort first by Lo, then by Hi.
func (h Hash) Numeric() uint64 {
	return uint64(h.Hi) | uint64(h.Lo)<<32
}

// Less reports whether h sorts before other.
func (h Hash) Less(other Hash) bool {
	return h.Numeric() < other.Numeric()
}

// HashPath hashes an archive path. The path is normalized first, so raw
// caller paths with mixed case or forward slashes hash identically to their
// normalized form. An empty path yields the zero hash.
func HashPath(path string) Hash {
	return hashNormalized(NormalizePath(path))
}

// NormalizePath converts a path to the canonical TES3 form: lowercase ASCII,
// backslash separators, no trailing separator.
func NormalizePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '/':
			c = '\\'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}

		b.WriteByte(c)
	}

	return strings.TrimRight(b.String(), `\`)
}

// hashNormalized computes the two halves over an already normalized path.
func hashNormalized(path string) Hash {
	var h Hash

	mid := len(path) / 2
	for i := 0; i < mid; i++ {
		h.Lo ^= uint32(path[i]) << ((i % 4) * 8)
	}

	for i := mid; i < len(path); i++ {
		rot := uint32(path[i]) << (((i - mid) % 4) * 8)
		h.Hi = bits.RotateLeft32(h.Hi^rot, -int(rot%32))
	}

	return h
}
