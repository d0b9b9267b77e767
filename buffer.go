// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

// BufferState describes who owns the bytes behind a Buffer.
type BufferState uint8

// Buffer ownership states.
const (
	// BufferBorrowed is a non-owning view over caller-supplied bytes.
	BufferBorrowed BufferState = iota
	// BufferOwned holds bytes private to the buffer: a slice handed over by
	// the caller or freshly produced codec output.
	BufferOwned
	// BufferProxied is a view into a still-live Source, typically a parsed archive.
	BufferProxied
)

// Buffer is a three-state container for a file payload.
//
// A proxied buffer pins its Source: as long as the buffer is reachable the
// parsed input stays alive, which encodes the lifetime rule that an archive
// may not outlive the stream its payload views point into.
type Buffer struct {
	data  []byte
	src   *Source
	state BufferState
}

// Bytes returns the payload view. The result must not be modified unless the
// buffer state is BufferOwned.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns payload size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Empty reports whether the buffer holds no bytes.
func (b *Buffer) Empty() bool {
	return len(b.data) == 0
}

// State returns the current ownership state.
func (b *Buffer) State() BufferState {
	return b.state
}

// Source returns the pinned input stream for a proxied buffer, nil otherwise.
func (b *Buffer) Source() *Source {
	return b.src
}

// Clear resets the buffer to an empty borrowed view and releases any pinned source.
func (b *Buffer) Clear() {
	b.data = nil
	b.src = nil
	b.state = BufferBorrowed
}

// SetBorrowed points the buffer at caller-owned bytes without copying.
func (b *Buffer) SetBorrowed(data []byte) {
	b.data = data
	b.src = nil
	b.state = BufferBorrowed
}

// SetOwned transfers data into the buffer. The slice must not be used by the
// caller afterwards.
func (b *Buffer) SetOwned(data []byte) {
	b.data = data
	b.src = nil
	b.state = BufferOwned
}

// SetProxied points the buffer at a view into src, pinning src for the
// lifetime of the buffer. Archive readers use this for lazy payloads.
func (b *Buffer) SetProxied(data []byte, src *Source) {
	b.data = data
	b.src = src
	b.state = BufferProxied
}
