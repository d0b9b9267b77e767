// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"bytes"
	"testing"
)

func TestBufferStartsEmptyBorrowed(t *testing.T) {
	t.Parallel()

	var b Buffer
	if !b.Empty() || b.Len() != 0 {
		t.Fatalf("zero buffer not empty: len=%d", b.Len())
	}
	if b.State() != BufferBorrowed {
		t.Fatalf("zero buffer state=%d, want BufferBorrowed", b.State())
	}
	if b.Source() != nil {
		t.Fatal("zero buffer must not pin a source")
	}
}

func TestBufferTransitions(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3}
	src := NewSource(data)

	var b Buffer
	b.SetBorrowed(data)
	if b.State() != BufferBorrowed || !bytes.Equal(b.Bytes(), data) {
		t.Fatalf("SetBorrowed: state=%d bytes=%v", b.State(), b.Bytes())
	}

	b.SetProxied(data[1:], src)
	if b.State() != BufferProxied || b.Source() != src {
		t.Fatalf("SetProxied: state=%d src=%p", b.State(), b.Source())
	}
	if b.Len() != 2 {
		t.Fatalf("SetProxied: len=%d, want 2", b.Len())
	}

	b.SetOwned([]byte{9})
	if b.State() != BufferOwned || b.Source() != nil {
		t.Fatalf("SetOwned must drop the pinned source: state=%d src=%p", b.State(), b.Source())
	}

	b.Clear()
	if b.State() != BufferBorrowed || !b.Empty() || b.Source() != nil {
		t.Fatalf("Clear: state=%d len=%d", b.State(), b.Len())
	}
}
