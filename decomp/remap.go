// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// NewSpace builds the local index space for one element kind from its
// assembled ring order (spec.md §3). order[i] is the 1-based global id
// of local index i; haloSize are the cumulative NHalo[h] boundaries
// BuildCellRings/BuildDerivedRings produced.
func NewSpace(kind ElementKind, nGlobal, nOwned int, order []int32, haloSize []int) Space {
	nAll := len(order)
	if len(haloSize) > 0 {
		nAll = haloSize[len(haloSize)-1]
	}
	s := Space{
		Kind:         kind,
		NGlobal:      nGlobal,
		NOwned:       nOwned,
		HaloSize:     haloSize,
		NAll:         nAll,
		NSize:        nAll + 1,
		GlobalID:     make([]int32, nAll+1),
		global2local: make(map[int32]int32, nAll),
	}
	copy(s.GlobalID, order[:nAll])
	s.GlobalID[nAll] = int32(nGlobal) + 1 // boundary sentinel, spec.md §3
	for i := 0; i < nAll; i++ {
		s.global2local[order[i]] = int32(i)
	}
	return s
}

// RemapEntry converts a single 1-based global id into this rank's
// local index, or the sentinel NAll if the target is not locally
// present (spec.md §4.4 step 8: "missing targets are rewritten to the
// sentinel NAll").
func (s *Space) RemapEntry(gid int32) int32 {
	if gid <= 0 {
		return s.Sentinel()
	}
	return s.LocalOf(gid)
}

// RemapTable remaps a connectivity table given in global ids (as read
// linearly from the mesh file and redistributed, spec.md §4.4 steps
// 4/7) into local indices against target's index space. zeroIsBoundary
// must be true only for EdgesOnEdge, whose zero entries are a genuine
// "no such edge" marker (spec.md §9) that must be preserved as
// EdgeSlotMissing rather than treated as global id 0.
func RemapTable(globalFlat []int32, width int, target *Space, zeroIsBoundary bool) *Connectivity {
	c := NewConnectivity(len(globalFlat)/width, width, target.Sentinel())
	for i, gid := range globalFlat {
		if gid == 0 && zeroIsBoundary {
			c.Table[i] = EdgeSlotMissing
			continue
		}
		c.Table[i] = target.RemapEntry(gid)
	}
	return c
}
