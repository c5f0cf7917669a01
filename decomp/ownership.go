// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// Owner resolves the owning rank of an edge or vertex from its
// CellsOnCell-family neighbor row (CellsOnEdge or CellsOnVertex, given
// in global cell ids with 0/missing entries trailing): ownership goes
// to the rank that owns the first valid cell in the row (spec.md §3
// "Ownership policy", invariant 2).
func Owner(row []int32, cellTask map[int32]int) (rank int, ok bool) {
	for _, gid := range row {
		if gid <= 0 {
			continue
		}
		if r, present := cellTask[gid]; present {
			return r, true
		}
	}
	return 0, false
}
