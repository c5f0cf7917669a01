// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package horzops implements the pointwise mesh operators of spec.md
// §4.7: divergence, gradient, curl, and tangential reconstruction. Each
// operator is a small stateful functor capturing the mesh views it
// needs (the small-functor-captures-its-own-parameters shape of
// msolid's material models, here applied to geometry instead of
// constitutive law), with a single Apply per element per layer. None
// of them touch halos; callers are assumed to have exchanged their
// input arrays already (spec.md §5 ordering guarantee 2).
package horzops

import (
	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/horzmesh"
)

// Divergence computes, for a cell c and layer k, the discrete
// divergence of an edge-normal flux array laid out edge-major with
// stride nLevels (spec.md §4.7): ∑_i s_ci · DvEdge[e] · F[e,k] / AreaCell[c].
type Divergence struct {
	mesh *decomp.Mesh
	view *horzmesh.View
}

// NewDivergence captures the connectivity and geometric fields the
// operator needs; the returned value has no further allocation inside
// Apply and is safe to capture into a device kernel closure.
func NewDivergence(mesh *decomp.Mesh, view *horzmesh.View) Divergence {
	return Divergence{mesh: mesh, view: view}
}

// Apply evaluates the divergence at cell c, layer k, of flux (an
// edge-indexed array with nLevels entries per edge).
func (d Divergence) Apply(c, k, nLevels int, flux []float64) float64 {
	width := d.mesh.MaxEdges
	n := int(d.mesh.NEdgesOnCell[c])
	sign := d.view.EdgeSignOnCell.Host()
	dv := d.view.DvEdge.Host()
	var sum float64
	for i := 0; i < n; i++ {
		e := d.mesh.EdgesOnCell.At(c, i)
		sum += sign[c*width+i] * dv[e] * flux[int(e)*nLevels+k]
	}
	return sum / d.view.AreaCell.Host()[c]
}
