// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "sort"

// BuildCellRings grows HaloWidth concentric rings of cells around
// ownedGids (already sorted ascending 1-based global ids), each ring
// inserted in sorted-by-global-id order for cross-rank reproducibility
// (spec.md §4.4 step 3). neighbors(gid) must return the global ids of
// gid's adjacent cells (CellsOnCell, globally indexed).
//
// It returns the full local order (owned first, then ring 1..HaloWidth
// in increasing distance) and the cumulative NHalo[h] boundaries.
func BuildCellRings(ownedGids []int32, neighbors func(gid int32) []int32, haloWidth int) (order []int32, haloSize []int) {
	order = append(order, ownedGids...)
	inSet := make(map[int32]bool, len(ownedGids))
	for _, g := range ownedGids {
		inSet[g] = true
	}
	frontier := ownedGids
	haloSize = make([]int, haloWidth)
	for h := 0; h < haloWidth; h++ {
		next := ringFrontier(frontier, neighbors, inSet)
		order = append(order, next...)
		for _, g := range next {
			inSet[g] = true
		}
		haloSize[h] = len(order)
		frontier = next
	}
	return order, haloSize
}

// ringFrontier collects the not-yet-included neighbors of frontier,
// deduplicated and sorted ascending by global id (canonical ordering).
func ringFrontier(frontier []int32, neighbors func(int32) []int32, inSet map[int32]bool) []int32 {
	seen := make(map[int32]bool)
	var out []int32
	for _, g := range frontier {
		for _, nb := range neighbors(g) {
			if nb <= 0 || inSet[nb] || seen[nb] {
				continue
			}
			seen[nb] = true
			out = append(out, nb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BuildDerivedRings constructs the local order for edges or vertices
// from the cell rings already built (spec.md §4.4 steps 5-6): ring 1
// is "elements surrounding owned cells minus owned elements", stored
// in *reverse* (descending global id) order for backward compatibility
// with the legacy mesh format (spec.md §3, §9); every subsequent ring
// is "elements surrounding cells in ring h-1", in normal ascending
// order.
//
// ownedGids must already be sorted ascending. cellRings[0] is the
// owned cells, cellRings[h] for h>=1 is the h-th cell halo ring (the
// same slices BuildCellRings produced, split at its haloSize
// boundaries by the caller). elemsOfCell returns the global ids of the
// elements (edges or vertices) incident to a given global cell id.
func BuildDerivedRings(ownedGids []int32, cellRings [][]int32, elemsOfCell func(cellGid int32) []int32, haloWidth int) (order []int32, haloSize []int) {
	order = append(order, ownedGids...)
	inSet := make(map[int32]bool, len(ownedGids))
	for _, g := range ownedGids {
		inSet[g] = true
	}
	haloSize = make([]int, haloWidth)
	for h := 0; h < haloWidth; h++ {
		var cellRing []int32
		if h < len(cellRings) {
			cellRing = cellRings[h]
		}
		seen := make(map[int32]bool)
		var fresh []int32
		for _, c := range cellRing {
			for _, e := range elemsOfCell(c) {
				if e <= 0 || inSet[e] || seen[e] {
					continue
				}
				seen[e] = true
				fresh = append(fresh, e)
			}
		}
		if h == 0 {
			// legacy reverse ordering, ring 1 only (spec.md §3, §4.4 step 5)
			sort.Slice(fresh, func(i, j int) bool { return fresh[i] > fresh[j] })
		} else {
			sort.Slice(fresh, func(i, j int) bool { return fresh[i] < fresh[j] })
		}
		order = append(order, fresh...)
		for _, e := range fresh {
			inSet[e] = true
		}
		haloSize[h] = len(order)
	}
	return order, haloSize
}

// SplitCellRingsBySize turns the flat order BuildCellRings produced
// back into per-ring slices (owned plus each of the HaloWidth rings),
// the shape BuildDerivedRings expects for cellRings.
func SplitCellRingsBySize(order []int32, nOwned int, haloSize []int) [][]int32 {
	rings := make([][]int32, len(haloSize)+1)
	rings[0] = order[:nOwned]
	prev := nOwned
	for h, boundary := range haloSize {
		rings[h+1] = order[prev:boundary]
		prev = boundary
	}
	return rings
}
