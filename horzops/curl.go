// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package horzops

import (
	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/horzmesh"
)

// Curl computes, for a vertex v and layer k, the discrete curl of an
// edge-normal velocity array (spec.md §4.7):
// ∑_i σ_vi · DcEdge[EdgesOnVertex[v,i]] · u[e,k] / AreaTriangle[v].
// EdgesOnVertex rows may contain sentinel slots on a boundary vertex
// of degree less than VertexDegree; those contribute nothing.
type Curl struct {
	mesh *decomp.Mesh
	view *horzmesh.View
}

// NewCurl captures the connectivity and geometric fields the operator
// needs.
func NewCurl(mesh *decomp.Mesh, view *horzmesh.View) Curl {
	return Curl{mesh: mesh, view: view}
}

// Apply evaluates the curl at vertex v, layer k, of u (an edge-indexed
// array with nLevels entries per edge).
func (c Curl) Apply(v, k, nLevels int, u []float64) float64 {
	width := c.mesh.VertexDegree
	sentinel := c.mesh.Edges.Sentinel()
	sign := c.view.EdgeSignOnVertex.Host()
	dc := c.view.DcEdge.Host()
	var sum float64
	for i := 0; i < width; i++ {
		e := c.mesh.EdgesOnVertex.At(v, i)
		if e == sentinel {
			continue
		}
		sum += sign[v*width+i] * dc[e] * u[int(e)*nLevels+k]
	}
	return sum / c.view.AreaTriangle.Host()[v]
}
