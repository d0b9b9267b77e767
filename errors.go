// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import "errors"

// Sentinel errors for BSA operations. Use errors.Is in callers.
var (
	// ErrBadMagic means the archive header signature does not match the format.
	ErrBadMagic = errors.New("bad archive magic")
	// ErrUnsupportedVersion means the archive version field is outside the supported set.
	ErrUnsupportedVersion = errors.New("unsupported archive version")
	// ErrTruncated means the source ended before a required section was fully read.
	ErrTruncated = errors.New("archive truncated")
	// ErrInconsistentOffset means a section offset points outside the source or overlaps a prior section.
	ErrInconsistentOffset = errors.New("inconsistent section offset")
	// ErrDuplicateHash means two entries in the same scope share a hash.
	ErrDuplicateHash = errors.New("duplicate hash")
	// ErrUnsupportedCodec means the requested compression codec has no provider.
	ErrUnsupportedCodec = errors.New("unsupported compression codec")
	// ErrCompressionFailed means the underlying codec rejected the input during compression.
	ErrCompressionFailed = errors.New("compression failed")
	// ErrDecompressionFailed means the underlying codec rejected the input during decompression.
	ErrDecompressionFailed = errors.New("decompression failed")
	// ErrOffsetOverflow means a computed 32-bit offset would not fit.
	ErrOffsetOverflow = errors.New("offset exceeds uint32 limit")
	// ErrNilSource means the source is nil.
	ErrNilSource = errors.New("source is nil")
	// ErrNilWriter means the writer is nil.
	ErrNilWriter = errors.New("writer is nil")
	// ErrInvalidExtractPath means archive entry path is invalid for extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrExtractPathOutsideRoot means resolved extraction path escapes destination root.
	ErrExtractPathOutsideRoot = errors.New("extract path escapes destination root")
)
