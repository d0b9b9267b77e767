// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer is a sequential counting binary writer over an io.Writer.
//
// Both archive formats compute their offset layout up front and serialize
// strictly forward, so no seek support is needed on the sink.
type Writer struct {
	w   io.Writer
	off int64
	buf [8]byte
}

// NewWriter wraps an io.Writer in a counting binary writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Tell returns the number of bytes written so far.
func (w *Writer) Tell() int64 {
	return w.off
}

// WriteBytes writes p to the sink.
func (w *Writer) WriteBytes(p []byte) error {
	n, err := w.w.Write(p)
	w.off += int64(n)
	if err != nil {
		return fmt.Errorf("write %d bytes: %w", len(p), err)
	}

	return nil
}

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) error {
	w.buf[0] = v
	return w.WriteBytes(w.buf[:1])
}

// WriteU16 writes a little-endian uint16.
func (w *Writer) WriteU16(v uint16) error {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	return w.WriteBytes(w.buf[:2])
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.WriteBytes(w.buf[:4])
}

// WriteU32BE writes a big-endian uint32. Used for the xbox hash CRC field.
func (w *Writer) WriteU32BE(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	return w.WriteBytes(w.buf[:4])
}

// WriteU64 writes a little-endian uint64.
func (w *Writer) WriteU64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.WriteBytes(w.buf[:8])
}

// WriteZString writes s followed by a NUL terminator.
func (w *Writer) WriteZString(s string) error {
	if err := w.WriteBytes([]byte(s)); err != nil {
		return err
	}

	return w.WriteU8(0)
}
