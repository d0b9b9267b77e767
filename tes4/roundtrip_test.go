// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"bytes"
	"errors"
	"testing"

	"github.com/woozymasta/bsa"
)

// buildTestArchive assembles a small two-directory archive with named
// entries and plain payloads.
func buildTestArchive(t *testing.T, flags ArchiveFlag) *Archive {
	t.Helper()

	var a Archive
	a.SetArchiveFlags(flags)
	a.SetArchiveTypes(TypeMeshes | TypeTextures)

	clutter := NewDirectory(`meshes\clutter`)
	for _, name := range []string{"basket01.nif", "broom01.nif", "bucket01.nif"} {
		file := NewFile(name)
		file.SetData([]byte("mesh payload " + name))
		if !clutter.Insert(file) {
			t.Fatalf("Insert(%q) failed", name)
		}
	}

	landscape := NewDirectory(`textures\landscape`)
	dirt := NewFile("dirt01.dds")
	dirt.SetData([]byte("texture payload dirt01"))
	landscape.Insert(dirt)

	if !a.Insert(clutter) || !a.Insert(landscape) {
		t.Fatal("directory insert failed")
	}

	return &a
}

// assertArchivesEqual compares content: hashes, names, payloads, flags, types.
func assertArchivesEqual(t *testing.T, want, got *Archive) {
	t.Helper()

	if got.ArchiveFlags() != want.ArchiveFlags() {
		t.Fatalf("flags=%#x, want %#x", got.ArchiveFlags(), want.ArchiveFlags())
	}
	if got.ArchiveTypes() != want.ArchiveTypes() {
		t.Fatalf("types=%#x, want %#x", got.ArchiveTypes(), want.ArchiveTypes())
	}
	if got.Len() != want.Len() {
		t.Fatalf("directory count=%d, want %d", got.Len(), want.Len())
	}

	wantDirs := want.Directories()
	gotDirs := got.Directories()
	for i := range wantDirs {
		if gotDirs[i].Hash() != wantDirs[i].Hash() {
			t.Fatalf("directory %d hash mismatch", i)
		}
		if gotDirs[i].Name() != wantDirs[i].Name() {
			t.Fatalf("directory %d name=%q, want %q", i, gotDirs[i].Name(), wantDirs[i].Name())
		}

		wantFiles := wantDirs[i].Files()
		gotFiles := gotDirs[i].Files()
		if len(gotFiles) != len(wantFiles) {
			t.Fatalf("directory %q file count=%d, want %d", wantDirs[i].Name(), len(gotFiles), len(wantFiles))
		}

		for j := range wantFiles {
			if gotFiles[j].Hash() != wantFiles[j].Hash() {
				t.Fatalf("file %d/%d hash mismatch", i, j)
			}
			if gotFiles[j].Name() != wantFiles[j].Name() {
				t.Fatalf("file name=%q, want %q", gotFiles[j].Name(), wantFiles[j].Name())
			}
			if !bytes.Equal(gotFiles[j].Bytes(), wantFiles[j].Bytes()) {
				t.Fatalf("file %q payload corrupted", wantFiles[j].Name())
			}
		}
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		version Version
		flags   ArchiveFlag
	}{
		{name: "v103", version: VersionTES4, flags: FlagDirectoryStrings | FlagFileStrings},
		{name: "v104", version: VersionFO3, flags: FlagDirectoryStrings | FlagFileStrings},
		{name: "v105", version: VersionSSE, flags: FlagDirectoryStrings | FlagFileStrings},
		{name: "v104 embedded names", version: VersionFO3, flags: FlagDirectoryStrings | FlagFileStrings | FlagEmbeddedFileNames},
		{name: "v105 xbox", version: VersionSSE, flags: FlagDirectoryStrings | FlagFileStrings | FlagXboxArchive},
		{name: "v103 nameless", version: VersionTES4, flags: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := buildTestArchive(t, tc.flags)

			var first bytes.Buffer
			if err := in.Write(&first, tc.version); err != nil {
				t.Fatalf("Write: %v", err)
			}

			var out Archive
			version, err := out.Read(bsa.NewSource(first.Bytes()))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if version != tc.version {
				t.Fatalf("Read version=%d, want %d", version, tc.version)
			}

			if tc.flags&FlagDirectoryStrings != 0 {
				assertArchivesEqual(t, in, &out)
			}

			var second bytes.Buffer
			if err := out.Write(&second, tc.version); err != nil {
				t.Fatalf("rewrite: %v", err)
			}

			if !bytes.Equal(first.Bytes(), second.Bytes()) {
				t.Fatal("write(read(bytes)) must be byte-identical for canonical input")
			}
		})
	}
}

func TestArchiveReadHeader(t *testing.T) {
	t.Parallel()

	in := buildTestArchive(t, FlagDirectoryStrings|FlagFileStrings)

	var buf bytes.Buffer
	if err := in.Write(&buf, VersionSSE); err != nil {
		t.Fatalf("Write: %v", err)
	}

	header, err := ReadHeader(bsa.NewSource(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	if header.Version != VersionSSE {
		t.Fatalf("Version=%d, want 105", header.Version)
	}
	if header.DirectoryCount != 2 || header.FileCount != 4 {
		t.Fatalf("counts=%d/%d, want 2/4", header.DirectoryCount, header.FileCount)
	}
	if header.Types != TypeMeshes|TypeTextures {
		t.Fatalf("types=%#x", header.Types)
	}
}

func TestArchiveReadRejectsMalformed(t *testing.T) {
	t.Parallel()

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()

		data := append([]byte("BSX\x00"), make([]byte, 32)...)
		var a Archive
		if _, err := a.Read(bsa.NewSource(data)); !errors.Is(err, bsa.ErrBadMagic) {
			t.Fatalf("got %v, want ErrBadMagic", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		t.Parallel()

		data := append([]byte("BSA\x00"), make([]byte, 32)...)
		data[4] = 106
		var a Archive
		if _, err := a.Read(bsa.NewSource(data)); !errors.Is(err, bsa.ErrUnsupportedVersion) {
			t.Fatalf("got %v, want ErrUnsupportedVersion", err)
		}
	})

	t.Run("bad directory offset", func(t *testing.T) {
		t.Parallel()

		data := append([]byte("BSA\x00"), make([]byte, 32)...)
		data[4] = 103
		data[8] = 40
		var a Archive
		if _, err := a.Read(bsa.NewSource(data)); !errors.Is(err, bsa.ErrInconsistentOffset) {
			t.Fatalf("got %v, want ErrInconsistentOffset", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		var a Archive
		if _, err := a.Read(bsa.NewSource([]byte("BSA\x00"))); !errors.Is(err, bsa.ErrTruncated) {
			t.Fatalf("got %v, want ErrTruncated", err)
		}
	})

	t.Run("failed read leaves archive unchanged", func(t *testing.T) {
		t.Parallel()

		in := buildTestArchive(t, FlagDirectoryStrings|FlagFileStrings)
		if _, err := in.Read(bsa.NewSource([]byte("BSA\x00"))); err == nil {
			t.Fatal("read of garbage must fail")
		}

		if in.Len() != 2 {
			t.Fatalf("failed read mutated the archive: len=%d", in.Len())
		}
	})
}

func TestArchiveXboxSortOrder(t *testing.T) {
	t.Parallel()

	in := buildTestArchive(t, FlagDirectoryStrings|FlagFileStrings|FlagXboxArchive)

	var buf bytes.Buffer
	if err := in.Write(&buf, VersionFO3); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// on-disk directory order must follow the byte-swapped hash value
	src := bsa.NewSource(buf.Bytes())
	if err := src.SeekAbsolute(headerSize); err != nil {
		t.Fatalf("seek: %v", err)
	}

	var prev uint64
	for i := 0; i < in.Len(); i++ {
		hash, err := readHash(src, true)
		if err != nil {
			t.Fatalf("read hash %d: %v", i, err)
		}
		if err := src.SeekRelative(dirEntrySizeV103 - hashDiskSize); err != nil {
			t.Fatalf("skip entry %d: %v", i, err)
		}

		if i > 0 && hash.Swapped() < prev {
			t.Fatalf("directory %d out of xbox order", i)
		}
		prev = hash.Swapped()
	}

	// and the archive must still read back into native hash order
	var out Archive
	if _, err := out.Read(bsa.NewSource(buf.Bytes())); err != nil {
		t.Fatalf("Read: %v", err)
	}

	assertArchivesEqual(t, in, &out)
}

func TestArchiveVerifyOffsets(t *testing.T) {
	t.Parallel()

	in := buildTestArchive(t, FlagDirectoryStrings|FlagFileStrings)
	if !in.VerifyOffsets(VersionSSE) {
		t.Fatal("small archive must verify")
	}

	big := make([]byte, 64<<20)
	var huge Archive
	dir := NewDirectory("blob")
	for i := 0; i < 65; i++ {
		file := NewFile(string(rune('a'+i/26)) + string(rune('a'+i%26)) + ".bin")
		file.SetData(big)
		if !dir.Insert(file) {
			t.Fatalf("insert %d failed", i)
		}
	}
	huge.Insert(dir)

	if huge.VerifyOffsets(VersionFO3) {
		t.Fatal("archive past 4 GiB must fail offset verification")
	}
}
