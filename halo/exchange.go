// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import "github.com/cpmech/gosl/chk"

// Exchange performs one non-blocking halo exchange over data, a flat
// array whose leading dimension is the element kind's NSize and whose
// remaining dimensions collapse to stride scalars per element (spec.md
// §4.5 "Exchange protocol": "any host array whose leading dimension is
// the element count, with an arbitrary number of trailing dimensions,
// collapsed to a per-element stride"). Receives are posted before
// sends, per the protocol's ordering requirement; values for elements
// this rank owns are left untouched, only the halo positions
// [nOwned,nAll) are overwritten.
func Exchange(e *Engine, data []float64, stride int) error {
	if want := e.nAll * stride; len(data) < want {
		return chk.Err("halo: data has length %d, want at least %d (nAll=%d, stride=%d)", len(data), want, e.nAll, stride)
	}

	recvRanks := e.RecvRanks()
	sendRanks := e.SendRanks()

	recvBufs := make(map[int][]byte, len(recvRanks))
	recvReqs := make([]Request, 0, len(recvRanks))
	for _, src := range recvRanks {
		g := e.recv[src]
		buf := make([]byte, len(g.localIdx)*stride*8)
		recvBufs[src] = buf
		recvReqs = append(recvReqs, e.transport.PostRecv(src, buf, int(e.kind)))
	}

	sendReqs := make([]Request, 0, len(sendRanks))
	for _, dst := range sendRanks {
		idx := e.send[dst]
		buf := pack(data, idx, stride)
		sendReqs = append(sendReqs, e.transport.PostSend(dst, buf, int(e.kind)))
	}

	all := append(recvReqs, sendReqs...)
	e.transport.WaitAll(all)

	for _, src := range recvRanks {
		g := e.recv[src]
		unpack(data, g.localIdx, stride, recvBufs[src])
	}
	return nil
}

// ExchangeInt32/Float32 narrow to/from the float64 wire representation
// Exchange uses, matching broadcast's single float64 transport shared
// across all scalar widths (spec.md §4.3's six scalar types reused
// here for the halo's own six-type exchange family).

func ExchangeInt32(e *Engine, data []int32, stride int) error {
	wide := int32sToFloats(data)
	if err := Exchange(e, wide, stride); err != nil {
		return err
	}
	copy(data, floatsToInt32s(wide))
	return nil
}

func ExchangeFloat32(e *Engine, data []float32, stride int) error {
	wide := make([]float64, len(data))
	for i, x := range data {
		wide[i] = float64(x)
	}
	if err := Exchange(e, wide, stride); err != nil {
		return err
	}
	for i, x := range wide {
		data[i] = float32(x)
	}
	return nil
}

// ExchangeInt64/Bool complete the six scalar types (spec.md §4.5) the
// same way ExchangeInt32/Float32 do, narrowing to and from Exchange's
// float64 wire representation.

func ExchangeInt64(e *Engine, data []int64, stride int) error {
	wide := int64sToFloats(data)
	if err := Exchange(e, wide, stride); err != nil {
		return err
	}
	copy(data, floatsToInt64s(wide))
	return nil
}

func ExchangeBool(e *Engine, data []bool, stride int) error {
	wide := boolsToFloats(data)
	if err := Exchange(e, wide, stride); err != nil {
		return err
	}
	copy(data, floatsToBools(wide))
	return nil
}

// ExchangeString exchanges a fixed-width character field, width bytes
// per element (truncated or zero-padded), the same fixed-length
// string convention stringsToFloats documents. stride here is the
// per-element byte width, not a component count.
func ExchangeString(e *Engine, data []string, width int) error {
	wide := stringsToFloats(data, width)
	if err := Exchange(e, wide, width); err != nil {
		return err
	}
	copy(data, floatsToStrings(wide, width))
	return nil
}

func pack(data []float64, idx []int32, stride int) []byte {
	buf := make([]float64, len(idx)*stride)
	for k, li := range idx {
		copy(buf[k*stride:(k+1)*stride], data[int(li)*stride:int(li)*stride+stride])
	}
	return floatsToBytes(buf)
}

func unpack(data []float64, localIdx []int32, stride int, buf []byte) {
	floats := bytesToFloats(buf)
	for k, li := range localIdx {
		copy(data[int(li)*stride:int(li)*stride+stride], floats[k*stride:(k+1)*stride])
	}
}
