// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package horzops

import (
	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/horzmesh"
)

// Gradient computes, for an edge e and layer k, the edge-normal
// component of the gradient of a cell-indexed scalar field
// (spec.md §4.7): (φ[c1,k] − φ[c0,k]) / DcEdge[e].
type Gradient struct {
	mesh *decomp.Mesh
	view *horzmesh.View
}

// NewGradient captures the connectivity and geometric fields the
// operator needs.
func NewGradient(mesh *decomp.Mesh, view *horzmesh.View) Gradient {
	return Gradient{mesh: mesh, view: view}
}

// Apply evaluates the gradient at edge e, layer k, of phi (a
// cell-indexed array with nLevels entries per cell).
func (g Gradient) Apply(e, k, nLevels int, phi []float64) float64 {
	c0 := g.mesh.CellsOnEdge.At(e, 0)
	c1 := g.mesh.CellsOnEdge.At(e, 1)
	dc := g.view.DcEdge.Host()[e]
	return (phi[int(c1)*nLevels+k] - phi[int(c0)*nLevels+k]) / dc
}
