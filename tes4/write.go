// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"fmt"
	"io"
	"sort"

	"github.com/woozymasta/bsa"
)

// writePlan is the resolved serialization order and offset layout.
type writePlan struct {
	dirs      []*plannedDir
	namesLen  int // file name block size
	dataStart int
	version   Version
}

// plannedDir is one directory with its files in on-disk order.
type plannedDir struct {
	dir      *Directory
	files    []*File
	runStart int // absolute offset of this directory's file record run
}

// Write serializes the archive to w in the given version's canonical form.
// Xbox archives sort entries by byte-swapped hash and store hash CRCs
// big-endian; everything else is little-endian.
func (a *Archive) Write(w io.Writer, version Version) error {
	if w == nil {
		return bsa.ErrNilWriter
	}
	if !version.Valid() {
		return fmt.Errorf("%w: %d", bsa.ErrUnsupportedVersion, uint32(version))
	}

	plan, err := a.plan(version)
	if err != nil {
		return err
	}

	out := bsa.NewWriter(w)
	xbox := a.XboxArchive()

	if err := a.writeHeader(out, plan); err != nil {
		return err
	}
	if err := a.writeDirEntries(out, plan, xbox); err != nil {
		return err
	}
	if err := a.writeFileRecords(out, plan, xbox); err != nil {
		return err
	}
	if err := a.writeFileNames(out, plan); err != nil {
		return err
	}

	return a.writeFileData(out, plan)
}

// VerifyOffsets reports whether the serialized archive for version fits the
// 32-bit on-disk offsets. It returns false when the end of the last file-data
// block would lie past the 4 GiB limit.
func (a *Archive) VerifyOffsets(version Version) bool {
	_, err := a.plan(version)
	return err == nil
}

// plan sorts entries for the target version and lays out all offsets.
func (a *Archive) plan(version Version) (*writePlan, error) {
	plan := &writePlan{version: version}

	plan.dirs = make([]*plannedDir, len(a.dirs))
	for i, dir := range a.dirs {
		plan.dirs[i] = &plannedDir{dir: dir, files: dir.Files()}
	}

	if a.XboxArchive() {
		sort.Slice(plan.dirs, func(i, j int) bool {
			return plan.dirs[i].dir.hash.Swapped() < plan.dirs[j].dir.hash.Swapped()
		})
		for _, pd := range plan.dirs {
			sort.Slice(pd.files, func(i, j int) bool {
				return pd.files[i].hash.Swapped() < pd.files[j].hash.Swapped()
			})
		}
	}

	dirEntrySize := dirEntrySizeV103
	if version == VersionSSE {
		dirEntrySize = dirEntrySizeV105
	}

	offset := headerSize + len(plan.dirs)*dirEntrySize
	for _, pd := range plan.dirs {
		pd.runStart = offset
		if a.DirectoryStrings() {
			offset += 1 + len(pd.dir.name) + 1
		}

		offset += len(pd.files) * fileRecordSize
	}

	if a.FileStrings() {
		for _, pd := range plan.dirs {
			for _, file := range pd.files {
				plan.namesLen += len(file.name) + 1
			}
		}
	}

	plan.dataStart = offset + plan.namesLen

	end := uint64(plan.dataStart)
	for _, pd := range plan.dirs {
		for _, file := range pd.files {
			end += uint64(a.fileBlockSize(pd.dir, file))
		}
	}
	if end > maxU32 {
		return nil, fmt.Errorf("%w: archive of %d bytes", bsa.ErrOffsetOverflow, end)
	}

	return plan, nil
}

// fileBlockSize returns the on-disk data block size of one file, including
// the embedded path and decompressed-size prefixes.
func (a *Archive) fileBlockSize(dir *Directory, file *File) int {
	size := file.Len()
	if a.EmbeddedFileNames() {
		size += 1 + len(embeddedPath(dir, file))
	}
	if file.compressed {
		size += 4
	}

	return size
}

// writeHeader emits the fixed 36-byte header.
func (a *Archive) writeHeader(out *bsa.Writer, plan *writePlan) error {
	if err := out.WriteBytes(headerMagic[:]); err != nil {
		return err
	}
	if err := out.WriteU32(uint32(plan.version)); err != nil {
		return err
	}
	if err := out.WriteU32(headerSize); err != nil {
		return err
	}
	if err := out.WriteU32(uint32(a.flags)); err != nil {
		return err
	}
	if err := out.WriteU32(uint32(len(plan.dirs))); err != nil { //nolint:gosec // counts bounded by plan
		return err
	}
	if err := out.WriteU32(uint32(a.FileCount())); err != nil { //nolint:gosec // counts bounded by plan
		return err
	}

	var dirNamesLen int
	if a.DirectoryStrings() {
		for _, pd := range plan.dirs {
			dirNamesLen += len(pd.dir.name) + 1
		}
		if plan.version != VersionSSE {
			// older versions count the length-prefix byte of every name
			dirNamesLen += len(plan.dirs)
		}
	}
	if err := out.WriteU32(uint32(dirNamesLen)); err != nil { //nolint:gosec // bounded by plan
		return err
	}
	if err := out.WriteU32(uint32(plan.namesLen)); err != nil { //nolint:gosec // bounded by plan
		return err
	}

	if err := out.WriteU16(uint16(a.types)); err != nil {
		return err
	}

	return out.WriteU16(0)
}

// writeDirEntries emits the directory entry table. Stored offsets count the
// file name block, a quirk of the format.
func (a *Archive) writeDirEntries(out *bsa.Writer, plan *writePlan, xbox bool) error {
	for _, pd := range plan.dirs {
		if err := writeHash(out, pd.dir.hash, xbox); err != nil {
			return err
		}
		if err := out.WriteU32(uint32(len(pd.files))); err != nil { //nolint:gosec // bounded by plan
			return err
		}

		storedOffset := uint64(pd.runStart) + uint64(plan.namesLen)
		if plan.version == VersionSSE {
			if err := out.WriteU32(pd.dir.padding); err != nil {
				return err
			}
			if err := out.WriteU64(storedOffset); err != nil {
				return err
			}
		} else {
			if err := out.WriteU32(uint32(storedOffset)); err != nil { //nolint:gosec // bounded by plan
				return err
			}
		}
	}

	return nil
}

// writeFileRecords emits each directory's optional name and file record run.
func (a *Archive) writeFileRecords(out *bsa.Writer, plan *writePlan, xbox bool) error {
	archiveCompressed := a.Compressed()
	dataOffset := plan.dataStart

	for _, pd := range plan.dirs {
		if a.DirectoryStrings() {
			if err := out.WriteU8(uint8(len(pd.dir.name) + 1)); err != nil { //nolint:gosec // names bounded by maxPathLen
				return err
			}
			if err := out.WriteZString(pd.dir.name); err != nil {
				return err
			}
		}

		for _, file := range pd.files {
			if err := writeHash(out, file.hash, xbox); err != nil {
				return err
			}

			blockSize := a.fileBlockSize(pd.dir, file)
			sizeField := uint32(blockSize) //nolint:gosec // bounded by plan
			if file.compressed != archiveCompressed {
				sizeField |= sizeCompressionBit
			}
			if err := out.WriteU32(sizeField); err != nil {
				return err
			}

			if err := out.WriteU32(uint32(dataOffset)); err != nil { //nolint:gosec // bounded by plan
				return err
			}

			dataOffset += blockSize
		}
	}

	return nil
}

// writeFileNames emits the NUL-terminated file name block.
func (a *Archive) writeFileNames(out *bsa.Writer, plan *writePlan) error {
	if !a.FileStrings() {
		return nil
	}

	for _, pd := range plan.dirs {
		for _, file := range pd.files {
			if err := out.WriteZString(file.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeFileData emits each payload with its optional prefixes.
func (a *Archive) writeFileData(out *bsa.Writer, plan *writePlan) error {
	for _, pd := range plan.dirs {
		for _, file := range pd.files {
			if a.EmbeddedFileNames() {
				path := embeddedPath(pd.dir, file)
				if err := out.WriteU8(uint8(len(path))); err != nil { //nolint:gosec // paths bounded by maxPathLen
					return err
				}
				if err := out.WriteBytes([]byte(path)); err != nil {
					return err
				}
			}

			if file.compressed {
				if err := out.WriteU32(file.decompressedSize); err != nil {
					return err
				}
			}

			if err := out.WriteBytes(file.Bytes()); err != nil {
				return err
			}
		}
	}

	return nil
}

// embeddedPath joins the full virtual path stored next to a payload.
func embeddedPath(dir *Directory, file *File) string {
	if dir.name == "" {
		return file.name
	}

	return dir.name + `\` + file.name
}

// writeHash emits one on-disk hash. Only the CRC field is endian-sensitive;
// xbox archives store it big-endian.
func writeHash(out *bsa.Writer, h Hash, xbox bool) error {
	if err := out.WriteBytes([]byte{h.Last, h.Last2, h.Length, h.First}); err != nil {
		return err
	}

	if xbox {
		return out.WriteU32BE(h.CRC)
	}

	return out.WriteU32(h.CRC)
}
