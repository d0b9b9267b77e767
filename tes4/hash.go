// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"math/bits"
	"strings"
)

// Path length limits enforced by the canonical tooling.
const (
	maxPathLen      = 259
	maxExtensionLen = 15 // including the leading dot
)

// Hash is a TES4 path hash: four characteristic bytes of the hashed string
// plus a CRC-like accumulator over its interior. The zero value marks an
// invalid or empty path.
type Hash struct {
	// Last is the last character of the path (directory) or stem (file).
	Last uint8 `json:"last" yaml:"last"`
	// Last2 is the second to last character of the path or stem.
	Last2 uint8 `json:"last2" yaml:"last2"`
	// Length is the length of the path or stem.
	Length uint8 `json:"length" yaml:"length"`
	// First is the first character of the path or stem.
	First uint8 `json:"first" yaml:"first"`
	// CRC accumulates the interior bytes and the file extension.
	CRC uint32 `json:"crc" yaml:"crc"`
}

// Numeric packs the hash into its on-disk total order.
func (h Hash) Numeric() uint64 {
	return uint64(h.Last) |
		uint64(h.Last2)<<8 |
		uint64(h.Length)<<16 |
		uint64(h.First)<<24 |
		uint64(h.CRC)<<32
}

// Swapped returns the byte-swapped numeric value, the sort key of xbox
// archives.
func (h Hash) Swapped() uint64 {
	return bits.ReverseBytes64(h.Numeric())
}

// Less reports whether h sorts before other in the native order.
func (h Hash) Less(other Hash) bool {
	return h.Numeric() < other.Numeric()
}

// knownExtensions biases the hash of a handful of extensions the canonical
// tooling special-cases. Order is load-bearing: the table index feeds the
// bias terms.
var knownExtensions = [...]string{"", ".nif", ".kf", ".dds", ".wav", ".adp"}

// HashDirectory hashes a directory path. The path is normalized first; empty
// paths and paths longer than 259 characters yield the zero hash.
func HashDirectory(path string) Hash {
	return hashDirectoryNormalized(NormalizePath(path))
}

// HashFile hashes a file path. Only the basename participates: the stem is
// hashed like a directory and the extension folds into CRC plus, for known
// extensions, fixed bias values. Empty stems (".gitignore"-style names,
// an archive.exe quirk), stems longer than 259 characters, and extensions
// longer than 14 characters yield the zero hash.
func HashFile(path string) Hash {
	name := NormalizePath(path)
	if idx := strings.LastIndexByte(name, '\\'); idx >= 0 {
		name = name[idx+1:]
	}

	stem, extension := splitExtension(name)
	if stem == "" || len(stem) > maxPathLen || len(extension) > maxExtensionLen {
		return Hash{}
	}

	h := hashDirectoryNormalized(stem)
	h.CRC += hashString(extension)

	for i, known := range knownExtensions {
		if extension == known {
			h.First += uint8(32 * (i & 0xFC)) //nolint:gosec // u8 wrap is the format
			h.Last += uint8((i & 0xFE) << 6)  //nolint:gosec // u8 wrap is the format
			h.Last2 += uint8(i << 7)          //nolint:gosec // u8 wrap is the format
			break
		}
	}

	return h
}

// NormalizePath converts a path to the canonical TES4 form: lowercase ASCII,
// backslash separators, no surrounding whitespace or separators. The current
// directory "." normalizes to the empty path. Drive letters are kept.
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

	normalized := strings.Trim(b.String(), " \t")
	normalized = strings.TrimRight(normalized, `\`)
	if normalized == "." {
		return ""
	}

	return normalized
}

// hashDirectoryNormalized hashes an already normalized directory path.
func hashDirectoryNormalized(path string) Hash {
	length := len(path)
	if length == 0 || length > maxPathLen {
		return Hash{}
	}

	var h Hash
	h.Last = path[length-1]
	h.First = path[0]
	h.Length = uint8(length) //nolint:gosec // lengths 256..259 wrap, matching the format
	if length >= 3 {
		h.Last2 = path[length-2]
	}
	if length > 3 {
		h.CRC = hashString(path[1 : length-2])
	}

	return h
}

// hashString is the CRC-like accumulator shared by interior bytes and
// extensions.
func hashString(s string) uint32 {
	var crc uint32
	for i := 0; i < len(s); i++ {
		crc = crc*0x1003F + uint32(s[i])
	}

	return crc
}

// splitExtension splits a basename at its last dot; the extension keeps the
// dot.
func splitExtension(name string) (stem, extension string) {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[:idx], name[idx:]
	}

	return name, ""
}
