// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import "sync"

// fakeNetwork wires a fixed number of simulated ranks together inside
// one test process, exercising the real Transport contract (and so the
// real Build/Exchange logic) without an MPI runtime. Each simulated
// rank runs in its own goroutine; per-ordered-pair buffered channels
// stand in for point-to-point messages, giving genuine concurrent
// rendezvous semantics instead of a canned fixture.
type fakeNetwork struct {
	mu        sync.Mutex
	reqChans  map[[2]int]chan []int32
	dataChans map[[2]int]chan []byte
	n         int
}

func newFakeNetwork(n int) *fakeNetwork {
	return &fakeNetwork{
		reqChans:  make(map[[2]int]chan []int32),
		dataChans: make(map[[2]int]chan []byte),
		n:         n,
	}
}

func (net *fakeNetwork) transport(rank int) Transport {
	return &fakeTransport{rank: rank, net: net}
}

func (net *fakeNetwork) reqChan(from, to int) chan []int32 {
	net.mu.Lock()
	defer net.mu.Unlock()
	key := [2]int{from, to}
	if c, ok := net.reqChans[key]; ok {
		return c
	}
	c := make(chan []int32, 1)
	net.reqChans[key] = c
	return c
}

func (net *fakeNetwork) dataChan(from, to int) chan []byte {
	net.mu.Lock()
	defer net.mu.Unlock()
	key := [2]int{from, to}
	if c, ok := net.dataChans[key]; ok {
		return c
	}
	c := make(chan []byte, 1)
	net.dataChans[key] = c
	return c
}

type fakeTransport struct {
	rank int
	net  *fakeNetwork
}

func (t *fakeTransport) Rank() int { return t.rank }
func (t *fakeTransport) Size() int { return t.net.n }

// ExchangeRequests is a genuine collective: this rank posts what it
// needs from every other rank, then reads what every other rank
// posted to it, one channel round-trip per ordered pair.
func (t *fakeTransport) ExchangeRequests(send map[int][]int32) map[int][]int32 {
	for other := 0; other < t.net.n; other++ {
		if other == t.rank {
			continue
		}
		t.net.reqChan(t.rank, other) <- send[other]
	}
	recv := make(map[int][]int32)
	for other := 0; other < t.net.n; other++ {
		if other == t.rank {
			continue
		}
		if v := <-t.net.reqChan(other, t.rank); len(v) > 0 {
			recv[other] = v
		}
	}
	return recv
}

type fakePostedSend struct {
	to  int
	buf []byte
}
type fakePostedRecv struct {
	from int
	buf  []byte
}

func (t *fakeTransport) PostRecv(from int, buf []byte, tag int) Request {
	return &fakePostedRecv{from: from, buf: buf}
}

func (t *fakeTransport) PostSend(to int, buf []byte, tag int) Request {
	t.net.dataChan(t.rank, to) <- buf
	return &fakePostedSend{to: to, buf: buf}
}

func (t *fakeTransport) WaitAll(reqs []Request) {
	for _, r := range reqs {
		rcv, ok := r.(*fakePostedRecv)
		if !ok {
			continue
		}
		buf := <-t.net.dataChan(rcv.from, t.rank)
		copy(rcv.buf, buf)
	}
}
