// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/oceanmesh/meshcore/machenv"
)

// mpiTransport is the real Transport, built over gosl/mpi the same way
// broadcast.bcastFloats routes through a group's communicator (or the
// default world communicator for the adopted-world case). gosl/mpi
// exposes no async Isend/Irecv pair, only blocking Send/Recv, so the
// non-blocking exchange contract is approximated with a deadlock-free
// pairwise schedule instead of genuine async requests: for any two
// ranks exchanging data, the lower-numbered one sends first then
// receives, the higher-numbered one receives first then sends.
// PostSend/PostRecv only record the intent; WaitAll performs the
// actual blocking transfers.
type mpiTransport struct {
	g *machenv.Group
}

// NewMPITransport wraps g for use by Build/Exchange.
func NewMPITransport(g *machenv.Group) Transport { return &mpiTransport{g: g} }

func (t *mpiTransport) Rank() int { return t.g.Rank() }
func (t *mpiTransport) Size() int { return t.g.Size() }

func (t *mpiTransport) comm() *mpi.Communicator {
	if c := t.g.Comm(); c != nil {
		return c
	}
	return mpi.World()
}

// ExchangeRequests performs the manual all-to-all of variable-length
// int32 lists: a first pass exchanges counts, a second exchanges the
// payloads, both scheduled with the same pairwise ordering WaitAll
// uses.
func (t *mpiTransport) ExchangeRequests(send map[int][]int32) map[int][]int32 {
	n := t.Size()
	me := t.Rank()
	recv := make(map[int][]int32, n)
	for other := 0; other < n; other++ {
		if other == me {
			continue
		}
		mine := send[other]
		counts := []float64{float64(len(mine))}
		otherCount := []float64{0}
		sendRecvPair(t.comm(), me, other, counts, otherCount)
		nOther := int(otherCount[0])
		if nOther == 0 && len(mine) == 0 {
			continue
		}
		mineF := int32sToFloats(mine)
		otherF := make([]float64, nOther)
		sendRecvPair(t.comm(), me, other, mineF, otherF)
		if nOther > 0 {
			recv[other] = floatsToInt32s(otherF)
		}
	}
	return recv
}

// sendRecvPair exchanges a fixed-length pair of buffers between me
// and other, ordered so the lower-numbered rank sends first, the
// higher-numbered one receives first, avoiding the classic two-way
// blocking-send deadlock.
func sendRecvPair(comm *mpi.Communicator, me, other int, outBuf, inBuf []float64) {
	if !mpi.IsOn() {
		copy(inBuf, outBuf)
		return
	}
	if me < other {
		comm.Send(outBuf, other)
		comm.Recv(inBuf, other)
	} else {
		comm.Recv(inBuf, other)
		comm.Send(outBuf, other)
	}
}

func (t *mpiTransport) PostRecv(from int, buf []byte, tag int) Request {
	return &pendingRecv{from: from, buf: buf, tag: tag}
}

func (t *mpiTransport) PostSend(to int, buf []byte, tag int) Request {
	return &pendingSend{to: to, buf: buf, tag: tag}
}

// WaitAll runs the pairwise-scheduled blocking exchange for every
// request posted since the last WaitAll call. Requests are grouped by
// neighbor rank so each pair is resolved exactly once, in the same
// lower-sends-first order sendRecvPair uses. This path is only ever
// reached with a real, running MPI communicator (Build never
// constructs a multi-rank exchange over mpiTransport otherwise), so
// it does not need the single-process fallback ExchangeRequests has
// for its unit-tested size==1 case.
func (t *mpiTransport) WaitAll(reqs []Request) {
	comm := t.comm()
	me := t.Rank()

	sends := make(map[int]*pendingSend)
	recvs := make(map[int]*pendingRecv)
	for _, r := range reqs {
		switch req := r.(type) {
		case *pendingSend:
			sends[req.to] = req
		case *pendingRecv:
			recvs[req.from] = req
		default:
			chk.Panic("halo: unknown request type %T", r)
		}
	}

	neighbors := make(map[int]bool, len(sends)+len(recvs))
	for r := range sends {
		neighbors[r] = true
	}
	for r := range recvs {
		neighbors[r] = true
	}

	for other := 0; other < t.Size(); other++ {
		if !neighbors[other] {
			continue
		}
		s, hasSend := sends[other]
		rcv, hasRecv := recvs[other]
		doSend := func() {
			if hasSend {
				comm.Send(bytesToFloats(s.buf), other)
			}
		}
		doRecv := func() {
			if hasRecv {
				floats := make([]float64, len(rcv.buf)/8)
				comm.Recv(floats, other)
				copy(rcv.buf, floatsToBytes(floats))
			}
		}
		if me < other {
			doSend()
			doRecv()
		} else {
			doRecv()
			doSend()
		}
	}
}

type pendingSend struct {
	to  int
	buf []byte
	tag int
}

type pendingRecv struct {
	from int
	buf  []byte
	tag  int
}
