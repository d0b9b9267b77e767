// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"fmt"
	"math"
	"strings"

	"github.com/woozymasta/bsa"
)

// Binary layout constants of the TES4 family.
const (
	headerSize         = 36
	hashDiskSize       = 8
	fileRecordSize     = 16
	dirEntrySizeV103   = 16
	dirEntrySizeV105   = 24
	maxU32             = math.MaxUint32
	sizeCompressionBit = 1 << 30 // compression state inverted vs archive default
	sizeCheckedBit     = 1 << 31 // secondary-archive marker, masked off
)

var headerMagic = [4]byte{'B', 'S', 'A', 0}

// Header is the fixed 36-byte TES4 archive header.
type Header struct {
	// Version is the archive format revision (103, 104, 105).
	Version Version `json:"version" yaml:"version"`
	// Flags is the archive flag bitmask.
	Flags ArchiveFlag `json:"flags" yaml:"flags"`
	// DirectoryCount is the number of directory records.
	DirectoryCount uint32 `json:"directory_count" yaml:"directory_count"`
	// FileCount is the total number of file records.
	FileCount uint32 `json:"file_count" yaml:"file_count"`
	// DirectoryNamesLength is the serialized directory name block length.
	DirectoryNamesLength uint32 `json:"directory_names_length" yaml:"directory_names_length"`
	// FileNamesLength is the serialized file name block length.
	FileNamesLength uint32 `json:"file_names_length" yaml:"file_names_length"`
	// Types is the content-kind bitmask.
	Types ArchiveType `json:"types" yaml:"types"`
}

// dirEntrySize returns the directory record size for the header version.
func (h *Header) dirEntrySize() int {
	if h.Version == VersionSSE {
		return dirEntrySizeV105
	}

	return dirEntrySizeV103
}

// ReadHeader parses and validates just the archive header from src, without
// populating an archive. Useful for cheap metadata probes.
func ReadHeader(src *bsa.Source) (*Header, error) {
	if src == nil {
		return nil, bsa.ErrNilSource
	}

	if err := src.SeekAbsolute(0); err != nil {
		return nil, err
	}

	magic, err := src.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if [4]byte(magic) != headerMagic {
		return nil, fmt.Errorf("%w: % X", bsa.ErrBadMagic, magic)
	}

	version, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if !Version(version).Valid() {
		return nil, fmt.Errorf("%w: %d", bsa.ErrUnsupportedVersion, version)
	}

	dirOffset, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if dirOffset != headerSize {
		return nil, fmt.Errorf("%w: directory records at %d, want %d", bsa.ErrInconsistentOffset, dirOffset, headerSize)
	}

	var h Header
	h.Version = Version(version)

	flags, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	h.Flags = ArchiveFlag(flags)

	if h.DirectoryCount, err = src.ReadU32(); err != nil {
		return nil, err
	}
	if h.FileCount, err = src.ReadU32(); err != nil {
		return nil, err
	}
	if h.DirectoryNamesLength, err = src.ReadU32(); err != nil {
		return nil, err
	}
	if h.FileNamesLength, err = src.ReadU32(); err != nil {
		return nil, err
	}

	types, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	h.Types = ArchiveType(types)

	// trailing header padding, unused
	if _, err := src.ReadU16(); err != nil {
		return nil, err
	}

	return &h, nil
}

// dirRecord holds one parsed directory entry before its files are read.
type dirRecord struct {
	dir       *Directory
	fileCount int
	offset    int
}

// fileRecord holds one parsed file entry before its payload view is taken.
type fileRecord struct {
	file       *File
	size       int
	offset     int
	compressed bool
}

// Read parses a TES4 archive from src, replacing the current contents, and
// returns the version that was read. Payloads are proxied views into src; no
// decompression happens on read. On error the archive is left unchanged.
func (a *Archive) Read(src *bsa.Source) (Version, error) {
	header, err := ReadHeader(src)
	if err != nil {
		return 0, err
	}

	xbox := header.Flags&FlagXboxArchive != 0

	dirs, err := readDirRecords(src, header, xbox)
	if err != nil {
		return 0, err
	}

	var parsed Archive
	parsed.flags = header.Flags
	parsed.types = header.Types

	files := make([]*fileRecord, 0, header.FileCount)
	namesStart := headerSize + len(dirs)*header.dirEntrySize()
	for i, rec := range dirs {
		end, dirFiles, err := readFileRecords(src, header, rec, xbox)
		if err != nil {
			return 0, fmt.Errorf("directory %d: %w", i, err)
		}

		if end > namesStart {
			namesStart = end
		}

		files = append(files, dirFiles...)
		if !parsed.Insert(rec.dir) {
			return 0, fmt.Errorf("%w: directory %016X", bsa.ErrDuplicateHash, rec.dir.hash.Numeric())
		}
	}

	if header.Flags&FlagFileStrings != 0 {
		if err := readFileNames(src, namesStart, files); err != nil {
			return 0, err
		}
	}

	for _, rec := range files {
		if err := readFileData(src, header, rec); err != nil {
			return 0, fmt.Errorf("file %016X: %w", rec.file.hash.Numeric(), err)
		}
	}

	a.dirs = parsed.dirs
	a.flags = parsed.flags
	a.types = parsed.types
	return header.Version, nil
}

// readDirRecords parses the directory entry table following the header.
func readDirRecords(src *bsa.Source, header *Header, xbox bool) ([]*dirRecord, error) {
	if err := src.SeekAbsolute(headerSize); err != nil {
		return nil, err
	}

	dirs := make([]*dirRecord, 0, header.DirectoryCount)
	for i := uint32(0); i < header.DirectoryCount; i++ {
		hash, err := readHash(src, xbox)
		if err != nil {
			return nil, err
		}

		count, err := src.ReadU32()
		if err != nil {
			return nil, err
		}

		rec := &dirRecord{dir: NewDirectoryHash(hash), fileCount: int(count)}
		if header.Version == VersionSSE {
			padding, err := src.ReadU32()
			if err != nil {
				return nil, err
			}
			rec.dir.padding = padding

			offset, err := src.ReadU64()
			if err != nil {
				return nil, err
			}
			if offset > maxU32 {
				return nil, fmt.Errorf("%w: directory offset %d", bsa.ErrInconsistentOffset, offset)
			}
			rec.offset = int(offset)
		} else {
			offset, err := src.ReadU32()
			if err != nil {
				return nil, err
			}
			rec.offset = int(offset)
		}

		dirs = append(dirs, rec)
	}

	return dirs, nil
}

// readFileRecords parses one directory's optional name and file record run.
// The stored offset counts the file name block, a quirk of the format.
func readFileRecords(src *bsa.Source, header *Header, rec *dirRecord, xbox bool) (int, []*fileRecord, error) {
	start := rec.offset - int(header.FileNamesLength)
	if err := src.SeekAbsolute(start); err != nil {
		return 0, nil, fmt.Errorf("%w: file records at %d", bsa.ErrInconsistentOffset, start)
	}

	if header.Flags&FlagDirectoryStrings != 0 {
		length, err := src.ReadU8()
		if err != nil {
			return 0, nil, err
		}

		raw, err := src.ReadBytes(int(length))
		if err != nil {
			return 0, nil, err
		}

		rec.dir.name = strings.TrimRight(string(raw), "\x00")
	}

	archiveCompressed := header.Flags&FlagCompressed != 0
	files := make([]*fileRecord, 0, rec.fileCount)
	for i := 0; i < rec.fileCount; i++ {
		hash, err := readHash(src, xbox)
		if err != nil {
			return 0, nil, err
		}

		sizeField, err := src.ReadU32()
		if err != nil {
			return 0, nil, err
		}

		offset, err := src.ReadU32()
		if err != nil {
			return 0, nil, err
		}

		file := NewFileHash(hash)
		if !rec.dir.Insert(file) {
			return 0, nil, fmt.Errorf("%w: file %016X", bsa.ErrDuplicateHash, hash.Numeric())
		}

		files = append(files, &fileRecord{
			file:       file,
			size:       int(sizeField &^ (sizeCompressionBit | sizeCheckedBit)),
			offset:     int(offset),
			compressed: archiveCompressed != (sizeField&sizeCompressionBit != 0),
		})
	}

	return src.Tell(), files, nil
}

// readFileNames assigns NUL-terminated basenames from the file name block in
// record order.
func readFileNames(src *bsa.Source, namesStart int, files []*fileRecord) error {
	if err := src.SeekAbsolute(namesStart); err != nil {
		return fmt.Errorf("%w: file name block at %d", bsa.ErrInconsistentOffset, namesStart)
	}

	for _, rec := range files {
		name, err := src.ReadZString()
		if err != nil {
			return err
		}

		rec.file.name = name
	}

	return nil
}

// readFileData takes the lazy payload view for one file, consuming the
// optional embedded path and decompressed-size prefixes.
func readFileData(src *bsa.Source, header *Header, rec *fileRecord) error {
	defer src.RestorePoint()()

	if err := src.SeekAbsolute(rec.offset); err != nil {
		return fmt.Errorf("%w: payload at %d", bsa.ErrInconsistentOffset, rec.offset)
	}

	size := rec.size
	if header.Flags&FlagEmbeddedFileNames != 0 {
		length, err := src.ReadU8()
		if err != nil {
			return err
		}

		embedded, err := src.ReadBytes(int(length))
		if err != nil {
			return err
		}

		size -= 1 + int(length)
		if rec.file.name == "" {
			if idx := strings.LastIndexByte(string(embedded), '\\'); idx >= 0 {
				rec.file.name = string(embedded[idx+1:])
			} else {
				rec.file.name = string(embedded)
			}
		}
	}

	var decompressedSize uint32
	if rec.compressed {
		var err error
		if decompressedSize, err = src.ReadU32(); err != nil {
			return err
		}

		size -= 4
	}

	if size < 0 {
		return fmt.Errorf("%w: payload prefixes exceed record size", bsa.ErrInconsistentOffset)
	}

	payload, err := src.ReadBytes(size)
	if err != nil {
		return err
	}

	rec.file.data.SetProxied(payload, src)
	rec.file.compressed = rec.compressed
	rec.file.decompressedSize = decompressedSize
	return nil
}

// readHash parses one on-disk hash. Only the CRC field is endian-sensitive;
// xbox archives store it big-endian.
func readHash(src *bsa.Source, xbox bool) (Hash, error) {
	var h Hash

	b, err := src.ReadBytes(4)
	if err != nil {
		return h, err
	}
	h.Last, h.Last2, h.Length, h.First = b[0], b[1], b[2], b[3]

	if xbox {
		h.CRC, err = src.ReadU32BE()
	} else {
		h.CRC, err = src.ReadU32()
	}
	if err != nil {
		return h, err
	}

	return h, nil
}
