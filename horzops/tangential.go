// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package horzops

import (
	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/horzmesh"
)

// TangentialReconstruction computes, for an edge e and layer k, the
// weighted reconstruction of a normal velocity onto the tangential
// direction (spec.md §4.7): ∑_j WeightsOnEdge[e,j] · u[EdgesOnEdge[e,j],k].
// EdgesOnEdge slots may be either EdgeSlotMissing (a genuine zero-pad
// from the source file, decomp's resolved open question on zero vs.
// sentinel) or the ordinary connectivity sentinel (the neighbor exists
// globally but this rank holds neither owned nor halo copy); both
// contribute zero.
type TangentialReconstruction struct {
	mesh *decomp.Mesh
	view *horzmesh.View
}

// NewTangentialReconstruction captures the connectivity and weight
// fields the operator needs.
func NewTangentialReconstruction(mesh *decomp.Mesh, view *horzmesh.View) TangentialReconstruction {
	return TangentialReconstruction{mesh: mesh, view: view}
}

// Apply evaluates the tangential reconstruction at edge e, layer k, of
// u (an edge-indexed array with nLevels entries per edge).
func (t TangentialReconstruction) Apply(e, k, nLevels int, u []float64) float64 {
	width := 2 * t.mesh.MaxEdges
	sentinel := t.mesh.Edges.Sentinel()
	weights := t.view.WeightsOnEdge.Host()
	var sum float64
	for j := 0; j < width; j++ {
		n := t.mesh.EdgesOnEdge.At(e, j)
		if n == decomp.EdgeSlotMissing || n == sentinel {
			continue
		}
		sum += weights[e*width+j] * u[int(n)*nLevels+k]
	}
	return sum
}
