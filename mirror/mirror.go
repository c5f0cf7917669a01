// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mirror implements the host/device duality wrapper spec.md §9
// calls for: "a wrapper type that dispatches to the appropriate backend
// and exposes a single mirror() operation", generalized here from the
// registry's generic byName[T any] pattern (registry/registry.go) to a
// value container instead of a name lookup. This module targets plain
// Go, a single-address-space runtime, so Device and Host share one
// backing slice; SyncToDevice/SyncToHost are real no-ops rather than
// copies, documented as such rather than silently doing nothing
// unexplained.
package mirror

// Mirror holds one persistent array with an explicit host/device copy
// primitive (spec.md §9). Host() and Device() currently return the
// same backing slice: there is exactly one address space to mirror
// into. A re-implementation that targets an actual accelerator would
// replace the two accessors' bodies and the Sync* methods without
// touching any caller, which is the entire point of going through this
// type instead of a bare slice.
type Mirror[T any] struct {
	data []T
}

// New allocates a mirror of n zero-valued elements.
func New[T any](n int) *Mirror[T] {
	return &Mirror[T]{data: make([]T, n)}
}

// Wrap adopts an existing slice as the mirror's backing storage rather
// than allocating a fresh one, for callers that already built the host
// array (e.g. horzmesh reading a field straight off ParallelIO).
func Wrap[T any](data []T) *Mirror[T] {
	return &Mirror[T]{data: data}
}

// Host returns the host-resident view.
func (m *Mirror[T]) Host() []T { return m.data }

// Device returns the device-resident view. Single-address-space Go has
// no separate device allocation, so this is the same slice as Host.
func (m *Mirror[T]) Device() []T { return m.data }

// SyncToDevice/SyncToHost are the explicit copy primitive spec.md §9
// requires between the two addresses; both are no-ops here since
// Host and Device already alias the same storage.
func (m *Mirror[T]) SyncToDevice() {}
func (m *Mirror[T]) SyncToHost()   {}
