// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machenv implements the process-group abstraction (MachEnv,
// spec.md §4.1): a thin wrapper over gosl/mpi that also tracks
// membership for subset groups, the same way fem.FEM and fem.Domain
// gate their Proc/Nproc/ShowMsg fields on mpi.IsOn()/mpi.Rank().
package machenv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// sentinel is the value reported by every query on a non-member group.
const sentinel = -1

// Group is a process-group record: a communicator handle, this
// process's rank within it, its size, the designated master rank, and
// whether this process is a member at all.
type Group struct {
	comm     *mpi.Communicator
	rank     int
	size     int
	master   int
	isMember bool
}

// World adopts the existing MPI_COMM_WORLD-equivalent communicator
// (construction mode (a) of spec.md §4.1). If MPI has not been
// started, the returned group reports a single-member world of rank 0
// the way fem.FEM falls back to Nproc=1 when mpi.IsOn() is false.
func World() *Group {
	if !mpi.IsOn() {
		return &Group{rank: 0, size: 1, master: 0, isMember: true}
	}
	return &Group{
		comm:     nil, // nil comm means "use the default/world communicator"
		rank:     mpi.Rank(),
		size:     mpi.Size(),
		master:   0,
		isMember: true,
	}
}

// SubsetRange constructs a contiguous-range subset [lo, hi) of parent
// (construction mode (b)). It fails with InvalidArgument if lo/hi lie
// outside the parent's rank space.
func SubsetRange(parent *Group, lo, hi int) (*Group, error) {
	if lo < 0 || hi > parent.size || lo >= hi {
		return nil, chk.Err("machenv: invalid range subset [%d,%d) of parent size %d", lo, hi, parent.size)
	}
	ranks := make([]int, 0, hi-lo)
	for r := lo; r < hi; r++ {
		ranks = append(ranks, r)
	}
	return subset(parent, ranks)
}

// SubsetStride constructs a strided subset {start, start+stride, ...}
// of parent, stopping once count elements are collected or the
// parent's rank space is exhausted (construction mode (c)).
func SubsetStride(parent *Group, start, stride, count int) (*Group, error) {
	if start < 0 || start >= parent.size || stride < 1 || count < 1 {
		return nil, chk.Err("machenv: invalid strided subset start=%d stride=%d count=%d of parent size %d", start, stride, count, parent.size)
	}
	ranks := make([]int, 0, count)
	for r := start; r < parent.size && len(ranks) < count; r += stride {
		ranks = append(ranks, r)
	}
	return subset(parent, ranks)
}

// SubsetList constructs an arbitrary subset of parent from an explicit
// rank list (construction mode (d)).
func SubsetList(parent *Group, ranks []int) (*Group, error) {
	for _, r := range ranks {
		if r < 0 || r >= parent.size {
			return nil, chk.Err("machenv: rank %d is outside parent of size %d", r, parent.size)
		}
	}
	return subset(parent, ranks)
}

// subset builds the child group and determines this process's
// membership and local rank within it.
func subset(parent *Group, ranks []int) (*Group, error) {
	g := &Group{size: len(ranks)}
	for local, r := range ranks {
		if r == parent.rank {
			g.isMember = true
			g.rank = local
		}
	}
	if !g.isMember {
		g.rank = sentinel
		return g, nil
	}
	// World's own comm is nil (it adopts the default communicator), so
	// gating on parent.comm here would mean every subset of World never
	// gets a real communicator. Gate on mpi.IsOn() instead: any subset
	// needs its own communicator whenever MPI is actually running,
	// regardless of whether the parent's comm field happens to be nil.
	if mpi.IsOn() {
		comm, err := mpi.NewCommunicator(ranks)
		if err != nil {
			return nil, chk.Err("machenv: communicator subsetting failed: %v", err)
		}
		g.comm = comm
	}
	return g, nil
}

// IsMember reports whether this process belongs to the group.
func (g *Group) IsMember() bool { return g.isMember }

// Rank returns this process's rank within the group, or the sentinel
// value on non-members.
func (g *Group) Rank() int {
	if !g.isMember {
		return sentinel
	}
	return g.rank
}

// Size returns the group's member count, or the sentinel value on
// non-members (spec.md §4.1: "non-members... report sentinel values").
func (g *Group) Size() int {
	if !g.isMember {
		return sentinel
	}
	return g.size
}

// Master returns the designated master rank (always 0 by convention).
func (g *Group) Master() int { return g.master }

// IsMaster reports whether this process is the group's master rank.
func (g *Group) IsMaster() bool { return g.isMember && g.rank == g.master }

// Comm returns the underlying communicator handle, or nil if this
// group is the adopted world communicator or this process is not a
// member.
func (g *Group) Comm() *mpi.Communicator { return g.comm }

// Default is the process-wide MachEnv entry constructed once at
// startup (spec.md §9 "Registry pattern").
var Default *Group
