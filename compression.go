// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a payload compression codec.
type Codec uint8

// Payload compression codecs.
const (
	// CodecZlib is the codec of TES4 v103 and v104 archives.
	CodecZlib Codec = iota
	// CodecLZ4Block is the codec of TES4 v105 archives.
	CodecLZ4Block
	// CodecXmem is the XNA-era codec of xbox v104 archives. No open
	// implementation exists; operations on it fail with ErrUnsupportedCodec.
	CodecXmem
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecZlib:
		return "zlib"
	case CodecLZ4Block:
		return "lz4-block"
	case CodecXmem:
		return "xmem"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// Compress returns the compressed counterpart of data using codec.
// The result is always freshly allocated.
func Compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecZlib:
		return compressZlib(data)
	case CodecLZ4Block:
		return compressLZ4Block(data)
	case CodecXmem:
		return nil, fmt.Errorf("%w: xmem", ErrUnsupportedCodec)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}
}

// Decompress expands data into exactly decompressedSize bytes using codec.
func Decompress(data []byte, decompressedSize int, codec Codec) ([]byte, error) {
	if decompressedSize < 0 {
		return nil, fmt.Errorf("%w: negative expected size", ErrDecompressionFailed)
	}

	switch codec {
	case CodecZlib:
		return decompressZlib(data, decompressedSize)
	case CodecLZ4Block:
		return decompressLZ4Block(data, decompressedSize)
	case CodecXmem:
		return nil, fmt.Errorf("%w: xmem", ErrUnsupportedCodec)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}
}

// CompressBound returns the maximum compressed size of n input bytes for codec.
func CompressBound(n int, codec Codec) (int, error) {
	switch codec {
	case CodecZlib:
		// deflate worst case plus zlib header and checksum
		return n + n/1000 + 12 + 6, nil
	case CodecLZ4Block:
		return lz4.CompressBlockBound(n), nil
	case CodecXmem:
		return 0, fmt.Errorf("%w: xmem", ErrUnsupportedCodec)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}
}

// compressZlib compresses data into a fresh zlib stream.
func compressZlib(data []byte) ([]byte, error) {
	var out bytes.Buffer
	zw := zlib.NewWriter(&out)

	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("%w: zlib: %w", ErrCompressionFailed, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrCompressionFailed, err)
	}

	return out.Bytes(), nil
}

// decompressZlib expands a zlib stream and checks the expanded size.
func decompressZlib(data []byte, decompressedSize int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrDecompressionFailed, err)
	}
	defer func() { _ = zr.Close() }()

	out := make([]byte, decompressedSize)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrDecompressionFailed, err)
	}

	// Anything left over means the declared decompressed size was wrong.
	var tail [1]byte
	if n, _ := zr.Read(tail[:]); n != 0 {
		return nil, fmt.Errorf("%w: zlib stream longer than declared size %d", ErrDecompressionFailed, decompressedSize)
	}

	return out, nil
}

// compressLZ4Block compresses data into a single LZ4 block.
func compressLZ4Block(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var c lz4.Compressor
	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", ErrCompressionFailed, err)
	}

	if n == 0 {
		// Incompressible input: the block format still has to carry it, so
		// emit a single literal-only sequence the decoder round-trips exactly.
		return lz4LiteralBlock(data), nil
	}

	return dst[:n:n], nil
}

// decompressLZ4Block expands a single LZ4 block of a known size.
func decompressLZ4Block(data []byte, decompressedSize int) ([]byte, error) {
	if decompressedSize == 0 {
		return []byte{}, nil
	}

	out := make([]byte, decompressedSize)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", ErrDecompressionFailed, err)
	}

	if n != decompressedSize {
		return nil, fmt.Errorf("%w: lz4 block expands to %d bytes, declared %d", ErrDecompressionFailed, n, decompressedSize)
	}

	return out, nil
}

// lz4LiteralBlock encodes data as one literal-only LZ4 sequence.
func lz4LiteralBlock(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/255+16)

	length := len(data)
	if length < 15 {
		out = append(out, byte(length)<<4)
	} else {
		out = append(out, 0xF0)
		for rest := length - 15; ; rest -= 255 {
			if rest < 255 {
				out = append(out, byte(rest))
				break
			}

			out = append(out, 0xFF)
		}
	}

	return append(out, data...)
}
