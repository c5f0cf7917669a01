// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broadcast implements typed, blocking collectives over a
// machenv.Group (spec.md §4.3), generalizing the single
// mpi.AllReduceSum call fem/s_implicit.go makes to assemble
// contributions from multiple domains into a full family of
// root-to-all broadcasts over the six scalar types.
package broadcast

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/oceanmesh/meshcore/machenv"
)

// Int32, Int64, Real32, Real64 broadcast a single scalar from root to
// every member of g. Non-member ranks are a no-op, matching MachEnv's
// "no error on non-members" contract.

func Int32(g *machenv.Group, root int, v *int32) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := []float64{float64(*v)}
	bcastFloats(g, root, buf)
	*v = int32(buf[0])
}

func Int64(g *machenv.Group, root int, v *int64) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := []float64{float64(*v)}
	bcastFloats(g, root, buf)
	*v = int64(buf[0])
}

func Real32(g *machenv.Group, root int, v *float32) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := []float64{float64(*v)}
	bcastFloats(g, root, buf)
	*v = float32(buf[0])
}

func Real64(g *machenv.Group, root int, v *float64) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := []float64{*v}
	bcastFloats(g, root, buf)
	*v = buf[0]
}

// Bool broadcasts a single boolean, coded as 0/1 over the same
// float64 path Real64 uses.
func Bool(g *machenv.Group, root int, v *bool) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	f := 0.0
	if *v {
		f = 1.0
	}
	buf := []float64{f}
	bcastFloats(g, root, buf)
	*v = buf[0] != 0
}

// String broadcasts size first, then content, per spec.md §4.3.
func String(g *machenv.Group, root int, v *string) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	n := int32(len(*v))
	Int32(g, root, &n)
	bytes := make([]byte, n)
	if g.Rank() == root {
		copy(bytes, *v)
	}
	floats := make([]float64, n)
	if g.Rank() == root {
		for i, b := range bytes {
			floats[i] = float64(b)
		}
	}
	bcastFloats(g, root, floats)
	out := make([]byte, n)
	for i, f := range floats {
		out[i] = byte(f)
	}
	*v = string(out)
}

// Float64Vec broadcasts a vector of the five numeric scalar types;
// the vector variants share one implementation since the wire
// encoding is float64 regardless of the element's native width.
func Float64Vec(g *machenv.Group, root int, v []float64) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	bcastFloats(g, root, v)
}

func Float32Vec(g *machenv.Group, root int, v []float32) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := make([]float64, len(v))
	for i, x := range v {
		buf[i] = float64(x)
	}
	bcastFloats(g, root, buf)
	for i, x := range buf {
		v[i] = float32(x)
	}
}

func Int32Vec(g *machenv.Group, root int, v []int32) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := make([]float64, len(v))
	for i, x := range v {
		buf[i] = float64(x)
	}
	bcastFloats(g, root, buf)
	for i, x := range buf {
		v[i] = int32(x)
	}
}

func Int64Vec(g *machenv.Group, root int, v []int64) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := make([]float64, len(v))
	for i, x := range v {
		buf[i] = float64(x)
	}
	bcastFloats(g, root, buf)
	for i, x := range buf {
		v[i] = int64(x)
	}
}

// BoolVec broadcasts a vector of booleans, each coded as 0/1 over the
// same float64 path the other vector variants use, completing the five
// vector overloads (I4, I8, R4, R8, bool).
func BoolVec(g *machenv.Group, root int, v []bool) {
	if !g.IsMember() || g.Size() == 1 {
		return
	}
	buf := make([]float64, len(v))
	for i, x := range v {
		if x {
			buf[i] = 1
		}
	}
	bcastFloats(g, root, buf)
	for i, x := range buf {
		v[i] = x != 0
	}
}

// bcastFloats performs the actual collective using gosl/mpi, via the
// group's communicator when it is a genuine subset, or the default
// world communicator for the common case (mirrors machenv.Group.Comm
// being nil for the adopted world group).
func bcastFloats(g *machenv.Group, root int, buf []float64) {
	if root < 0 || root >= g.Size() {
		chk.Panic("broadcast: root %d is outside group of size %d", root, g.Size())
	}
	if comm := g.Comm(); comm != nil {
		comm.BcastFromRoot(buf, root)
		return
	}
	mpi.World().BcastFromRoot(buf, root)
}
