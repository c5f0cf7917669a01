// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package horzmesh

import "github.com/oceanmesh/meshcore/decomp"

// computeEdgeSignOnCell derives the ±1 orientation of each cell's
// incident edges from the already-remapped CellsOnEdge table (spec.md
// §4.6): an edge's normal points from CellsOnEdge[e,0] to
// CellsOnEdge[e,1], so a cell sees +1 when it is the first of the
// pair, -1 when it is the second, 0 for a missing (sentinel) edge.
func computeEdgeSignOnCell(m *decomp.Mesh) []float64 {
	width := m.MaxEdges
	out := make([]float64, m.Cells.NSize*width)
	sentinel := m.Edges.Sentinel()
	for c := 0; c < m.Cells.NAll; c++ {
		for i := 0; i < width; i++ {
			e := m.EdgesOnCell.At(c, i)
			if e == sentinel {
				continue
			}
			c0 := m.CellsOnEdge.At(int(e), 0)
			switch int32(c) {
			case c0:
				out[c*width+i] = 1
			default:
				out[c*width+i] = -1
			}
		}
	}
	return out
}

// computeEdgeSignOnVertex is the vertex analogue, using VerticesOnEdge
// to orient each vertex's incident edges (spec.md §4.6).
func computeEdgeSignOnVertex(m *decomp.Mesh) []float64 {
	width := m.VertexDegree
	out := make([]float64, m.Vertices.NSize*width)
	sentinel := m.Edges.Sentinel()
	for v := 0; v < m.Vertices.NAll; v++ {
		for i := 0; i < width; i++ {
			e := m.EdgesOnVertex.At(v, i)
			if e == sentinel {
				continue
			}
			v0 := m.VerticesOnEdge.At(int(e), 0)
			switch int32(v) {
			case v0:
				out[v*width+i] = 1
			default:
				out[v*width+i] = -1
			}
		}
	}
	return out
}
