// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"bytes"
	"errors"
	"testing"
)

func TestSourceReads(t *testing.T) {
	t.Parallel()

	src := NewSource([]byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	})

	u8, err := src.ReadU8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadU8=%#x err=%v, want 0x01", u8, err)
	}

	u16, err := src.ReadU16()
	if err != nil || u16 != 0x0302 {
		t.Fatalf("ReadU16=%#x err=%v, want 0x0302", u16, err)
	}

	u32, err := src.ReadU32()
	if err != nil || u32 != 0x07060504 {
		t.Fatalf("ReadU32=%#x err=%v, want 0x07060504", u32, err)
	}

	u64, err := src.ReadU64()
	if err != nil || u64 != 0x0F0E0D0C0B0A0908 {
		t.Fatalf("ReadU64=%#x err=%v, want 0x0F0E0D0C0B0A0908", u64, err)
	}

	if src.Remaining() != 0 {
		t.Fatalf("Remaining=%d, want 0", src.Remaining())
	}
}

func TestSourceReadU32BE(t *testing.T) {
	t.Parallel()

	src := NewSource([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := src.ReadU32BE()
	if err != nil || v != 0x01020304 {
		t.Fatalf("ReadU32BE=%#x err=%v, want 0x01020304", v, err)
	}
}

func TestSourceSeeks(t *testing.T) {
	t.Parallel()

	src := NewSource(make([]byte, 16))
	if err := src.SeekAbsolute(10); err != nil {
		t.Fatalf("SeekAbsolute(10): %v", err)
	}
	if src.Tell() != 10 {
		t.Fatalf("Tell=%d, want 10", src.Tell())
	}

	if err := src.SeekRelative(-4); err != nil {
		t.Fatalf("SeekRelative(-4): %v", err)
	}
	if src.Tell() != 6 {
		t.Fatalf("Tell=%d, want 6", src.Tell())
	}

	if err := src.SeekAbsolute(17); !errors.Is(err, ErrTruncated) {
		t.Fatalf("seek past end: got %v, want ErrTruncated", err)
	}
	if err := src.SeekRelative(-7); !errors.Is(err, ErrTruncated) {
		t.Fatalf("seek before start: got %v, want ErrTruncated", err)
	}

	// failed seeks must not move the position
	if src.Tell() != 6 {
		t.Fatalf("Tell=%d after failed seeks, want 6", src.Tell())
	}
}

func TestSourceRestorePoint(t *testing.T) {
	t.Parallel()

	src := NewSource(make([]byte, 8))
	if err := src.SeekAbsolute(3); err != nil {
		t.Fatalf("SeekAbsolute: %v", err)
	}

	func() {
		defer src.RestorePoint()()

		if err := src.SeekAbsolute(7); err != nil {
			t.Fatalf("SeekAbsolute: %v", err)
		}
	}()

	if src.Tell() != 3 {
		t.Fatalf("Tell=%d after restore, want 3", src.Tell())
	}
}

func TestSourceShortRead(t *testing.T) {
	t.Parallel()

	src := NewSource([]byte{1, 2, 3})
	if _, err := src.ReadU32(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short ReadU32: got %v, want ErrTruncated", err)
	}
	if _, err := src.ReadBytes(4); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short ReadBytes: got %v, want ErrTruncated", err)
	}
}

func TestSourceReadBytesView(t *testing.T) {
	t.Parallel()

	backing := []byte{1, 2, 3, 4}
	src := NewSource(backing)

	view, err := src.ReadBytes(4)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if &view[0] != &backing[0] {
		t.Fatal("ReadBytes must return a view, not a copy")
	}
}

func TestSourceReadZString(t *testing.T) {
	t.Parallel()

	src := NewSource([]byte("abc\x00def\x00"))

	first, err := src.ReadZString()
	if err != nil || first != "abc" {
		t.Fatalf("ReadZString=%q err=%v, want abc", first, err)
	}

	second, err := src.ReadZString()
	if err != nil || second != "def" {
		t.Fatalf("ReadZString=%q err=%v, want def", second, err)
	}

	if _, err := src.ReadZString(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("unterminated string: got %v, want ErrTruncated", err)
	}
}

func TestWriterPrimitives(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteU8(0x01); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if err := w.WriteU16(0x0302); err != nil {
		t.Fatalf("WriteU16: %v", err)
	}
	if err := w.WriteU32(0x07060504); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := w.WriteU32BE(0x08090A0B); err != nil {
		t.Fatalf("WriteU32BE: %v", err)
	}
	if err := w.WriteU64(0x100F0E0D0C0B0A09); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}
	if err := w.WriteZString("hi"); err != nil {
		t.Fatalf("WriteZString: %v", err)
	}

	want := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B,
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
		'h', 'i', 0x00,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("written bytes\n got %X\nwant %X", buf.Bytes(), want)
	}

	if w.Tell() != int64(len(want)) {
		t.Fatalf("Tell=%d, want %d", w.Tell(), len(want))
	}
}
