// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vertcoord implements the vertical-coordinate per-column
// operations of spec.md §4.8: hydrostatic pressure, Z-height, and
// Lagrangian target thickness, parallelised over columns and
// serialised within a column, following the stage-wise column
// recurrence style of the teacher's own geostatic stress integration
// (fem/hydrost.go).
package vertcoord

import "github.com/oceanmesh/meshcore/decomp"

// DryColumn is the sentinel MaxLayerCell value marking a column with
// no active layers (spec.md §3 "MaxLayerCell == -1 marks a dry
// column").
const DryColumn int32 = -1

// ColumnMask holds the per-column active vertical range (spec.md §3
// "vertical axis"). MinLayerCell/MaxLayerCell are inclusive, 0-based
// layer indices; a dry column has MaxLayerCell == DryColumn.
type ColumnMask struct {
	NVertLayers int
	MinLayerCell []int32
	MaxLayerCell []int32
}

// IsDry reports whether cell c has no active layers.
func (m *ColumnMask) IsDry(c int) bool { return m.MaxLayerCell[c] == DryColumn }

// EdgeLayerRange holds the four edge-level reductions spec.md §3
// defines over the two cells bordering an edge: "top" takes the
// shallower (min) value, "bot" the deeper (max) value, of the two
// cells' own min or max. A dry neighbor cell (MaxLayerCell ==
// DryColumn) is excluded from the reduction rather than allowed to
// pull a valid edge down to dry, matching the "dry column ... is
// skipped" contract of spec.md §8.
type EdgeLayerRange struct {
	MinTop, MinBot []int32
	MaxTop, MaxBot []int32
}

// ComputeEdgeLayerRange reduces a cell-indexed ColumnMask to the edge
// level via mesh.CellsOnEdge (spec.md §3).
func ComputeEdgeLayerRange(mesh *decomp.Mesh, mask *ColumnMask) *EdgeLayerRange {
	n := mesh.Edges.NSize
	r := &EdgeLayerRange{
		MinTop: make([]int32, n), MinBot: make([]int32, n),
		MaxTop: make([]int32, n), MaxBot: make([]int32, n),
	}
	cellSentinel := mesh.Cells.Sentinel()
	for e := 0; e < n; e++ {
		r.MinTop[e], r.MinBot[e] = DryColumn, DryColumn
		r.MaxTop[e], r.MaxBot[e] = DryColumn, DryColumn
		if e == mesh.Edges.NAll {
			continue // sentinel slot has no connectivity row
		}
		var mins, maxs []int32
		for j := 0; j < 2; j++ {
			c := mesh.CellsOnEdge.At(e, j)
			if c == cellSentinel || mask.IsDry(int(c)) {
				continue
			}
			mins = append(mins, mask.MinLayerCell[c])
			maxs = append(maxs, mask.MaxLayerCell[c])
		}
		reduceTopBot(mins, &r.MinTop[e], &r.MinBot[e])
		reduceTopBot(maxs, &r.MaxTop[e], &r.MaxBot[e])
	}
	return r
}

// VertexLayerRange is the vertex analogue of EdgeLayerRange, reduced
// over the up-to-VertexDegree cells meeting at a vertex (spec.md §3
// "analogous reductions over the VertexDegree neighbors").
type VertexLayerRange struct {
	MinTop, MinBot []int32
	MaxTop, MaxBot []int32
}

// ComputeVertexLayerRange reduces a cell-indexed ColumnMask to the
// vertex level via mesh.CellsOnVertex.
func ComputeVertexLayerRange(mesh *decomp.Mesh, mask *ColumnMask) *VertexLayerRange {
	n := mesh.Vertices.NSize
	r := &VertexLayerRange{
		MinTop: make([]int32, n), MinBot: make([]int32, n),
		MaxTop: make([]int32, n), MaxBot: make([]int32, n),
	}
	cellSentinel := mesh.Cells.Sentinel()
	width := mesh.VertexDegree
	for v := 0; v < n; v++ {
		r.MinTop[v], r.MinBot[v] = DryColumn, DryColumn
		r.MaxTop[v], r.MaxBot[v] = DryColumn, DryColumn
		if v == mesh.Vertices.NAll {
			continue // sentinel slot has no connectivity row
		}
		var mins, maxs []int32
		for j := 0; j < width; j++ {
			c := mesh.CellsOnVertex.At(v, j)
			if c == cellSentinel || mask.IsDry(int(c)) {
				continue
			}
			mins = append(mins, mask.MinLayerCell[c])
			maxs = append(maxs, mask.MaxLayerCell[c])
		}
		reduceTopBot(mins, &r.MinTop[v], &r.MinBot[v])
		reduceTopBot(maxs, &r.MaxTop[v], &r.MaxBot[v])
	}
	return r
}

// reduceTopBot sets *top to the min and *bot to the max of vals,
// leaving the DryColumn defaults untouched when vals is empty (every
// neighbor was dry).
func reduceTopBot(vals []int32, top, bot *int32) {
	if len(vals) == 0 {
		return
	}
	*top, *bot = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < *top {
			*top = v
		}
		if v > *bot {
			*bot = v
		}
	}
}
