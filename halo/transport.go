// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package halo implements the halo-exchange engine (spec.md §4.5):
// from a decomp.Mesh, it builds per-neighbor send/receive lists for
// each element kind and performs non-blocking pack/exchange/unpack on
// arbitrary-rank arrays.
package halo

// Transport is the point-to-point messaging surface Engine needs: a
// manual all-to-all of variable-length int32 "who needs what" request
// lists (spec.md §4.5 "Construction"), and the non-blocking
// send/receive/wait-all triple the exchange protocol requires
// (spec.md §4.5 "Exchange protocol"). mpiTransport implements this
// over gosl/mpi for real runs; tests use an in-process fake that
// wires multiple simulated ranks together directly, so the
// pack/exchange/unpack logic itself is exercised without an MPI
// runtime.
type Transport interface {
	Rank() int
	Size() int

	// ExchangeRequests trades variable-length "global ids I need from
	// you" lists with every other rank: send[r] is what this rank needs from
	// r (possibly empty); the return value is what every other rank r
	// asked this rank for (keyed by r).
	ExchangeRequests(send map[int][]int32) (recv map[int][]int32)

	// PostRecv/PostSend/WaitAll implement the non-blocking exchange
	// protocol: receives are posted before sends (spec.md §4.5), and the
	// returned token set is passed to WaitAll once all sends are posted.
	PostRecv(from int, buf []byte, tag int) Request
	PostSend(to int, buf []byte, tag int) Request
	WaitAll(reqs []Request)
}

// Request is an opaque in-flight non-blocking operation token.
type Request interface{}
