// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"fmt"
	"strconv"

	"github.com/woozymasta/bsa"
)

// Version is the TES4 archive format revision.
type Version uint32

// Supported archive versions.
const (
	// VersionTES4 is The Elder Scrolls IV: Oblivion (zlib).
	VersionTES4 Version = 103
	// VersionFO3 is Fallout 3 (zlib, optionally xmem on xbox).
	VersionFO3 Version = 104
	// VersionFNV is Fallout: New Vegas.
	VersionFNV Version = 104
	// VersionTES5 is The Elder Scrolls V: Skyrim.
	VersionTES5 Version = 104
	// VersionSSE is Skyrim Special Edition (lz4 block).
	VersionSSE Version = 105
)

// String returns the numeric version form.
func (v Version) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// Valid reports whether v is one of the supported on-disk versions.
func (v Version) Valid() bool {
	return v == VersionTES4 || v == VersionFO3 || v == VersionSSE
}

// Codec returns the payload codec for v. The xmem flavor applies to xbox
// v104 archives only.
func (v Version) Codec(xmem bool) (bsa.Codec, error) {
	switch v {
	case VersionTES4:
		return bsa.CodecZlib, nil
	case VersionFO3:
		if xmem {
			return bsa.CodecXmem, nil
		}

		return bsa.CodecZlib, nil
	case VersionSSE:
		return bsa.CodecLZ4Block, nil
	default:
		return 0, fmt.Errorf("%w: %d", bsa.ErrUnsupportedVersion, uint32(v))
	}
}

// ArchiveFlag is the archive-level flag bitmask. Flags can impact the layout
// of an archive, or how the runtime parses it.
type ArchiveFlag uint32

// Archive flags.
const (
	// FlagDirectoryStrings stores directory paths within the archive.
	FlagDirectoryStrings ArchiveFlag = 1 << 0
	// FlagFileStrings stores file names within the archive.
	FlagFileStrings ArchiveFlag = 1 << 1
	// FlagCompressed compresses payloads by default.
	FlagCompressed ArchiveFlag = 1 << 2
	// FlagRetainDirectoryNames impacts runtime parsing.
	FlagRetainDirectoryNames ArchiveFlag = 1 << 3
	// FlagRetainFileNames impacts runtime parsing.
	FlagRetainFileNames ArchiveFlag = 1 << 4
	// FlagRetainFileNameOffsets impacts runtime parsing.
	FlagRetainFileNameOffsets ArchiveFlag = 1 << 5
	// FlagXboxArchive writes the archive in the xbox layout: hash CRCs are
	// big-endian on disk and entries sort by byte-swapped hash.
	FlagXboxArchive ArchiveFlag = 1 << 6
	// FlagRetainStringsDuringStartup impacts runtime parsing.
	FlagRetainStringsDuringStartup ArchiveFlag = 1 << 7
	// FlagEmbeddedFileNames prefixes each payload with its full virtual path.
	FlagEmbeddedFileNames ArchiveFlag = 1 << 8
	// FlagXboxCompressed marks xmem-compressed payloads; requires
	// FlagCompressed. Codec selection does not read this flag: xmem is used
	// only when requested explicitly (CompressCodec, DecompressCodec,
	// CompressOptions.Xmem).
	FlagXboxCompressed ArchiveFlag = 1 << 9
)

// ArchiveType is the content-kind bitmask. The game engines do not visibly
// act on it, but canonical producers set it.
type ArchiveType uint16

// Archive content types.
const (
	TypeMeshes   ArchiveType = 1 << 0
	TypeTextures ArchiveType = 1 << 1
	TypeMenus    ArchiveType = 1 << 2
	TypeSounds   ArchiveType = 1 << 3
	TypeVoices   ArchiveType = 1 << 4
	TypeShaders  ArchiveType = 1 << 5
	TypeTrees    ArchiveType = 1 << 6
	TypeFonts    ArchiveType = 1 << 7
	TypeMisc     ArchiveType = 1 << 8
)
