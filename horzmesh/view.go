// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package horzmesh reads the horizontal-mesh geometric fields (spec.md
// §4.6): coordinates, lengths, areas, weights, remapped to this rank's
// local order through decomp, exchanged once through halo so halo
// rings carry geometric data, and exposed on host/device mirrors.
package horzmesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/halo"
	"github.com/oceanmesh/meshcore/meshio"
	"github.com/oceanmesh/meshcore/mirror"
	"github.com/oceanmesh/meshcore/pio"
)

// View is the host/device-mirrored geometric field set for one rank
// (spec.md §3 "Geometry"). Every mirror's backing slice has length
// NSize*width for its element kind, the sentinel slot zero-filled.
type View struct {
	Mesh *decomp.Mesh

	XCell, YCell, ZCell       *mirror.Mirror[float64]
	LatCell, LonCell          *mirror.Mirror[float64]
	XEdge, YEdge, ZEdge       *mirror.Mirror[float64]
	LatEdge, LonEdge          *mirror.Mirror[float64]
	XVertex, YVertex, ZVertex *mirror.Mirror[float64]
	LatVertex, LonVertex     *mirror.Mirror[float64]

	DvEdge, DcEdge, AngleEdge *mirror.Mirror[float64]
	AreaCell                  *mirror.Mirror[float64]
	AreaTriangle              *mirror.Mirror[float64]
	KiteAreasOnVertex         *mirror.Mirror[float64] // width VertexDegree
	WeightsOnEdge             *mirror.Mirror[float64] // width 2*MaxEdges
	FVertex                   *mirror.Mirror[float64]
	BottomDepth               *mirror.Mirror[float64]

	// EdgeSignOnCell/EdgeSignOnVertex are computed locally, not read
	// from file (spec.md §4.6).
	EdgeSignOnCell   *mirror.Mirror[float64] // width MaxEdges
	EdgeSignOnVertex *mirror.Mirror[float64] // width VertexDegree
}

// Halos bundles the three per-element-kind exchange engines Read uses
// for its one post-read halo pass. A nil entry skips the exchange for
// that element kind (valid on a single-rank run with no halo).
type Halos struct {
	Cells    *halo.Engine
	Edges    *halo.Engine
	Vertices *halo.Engine
}

// Read opens the geometric fields named in spec.md §3 off file under
// both naming conventions, decomposition-reads them into mesh's local
// order, exchanges each one once through the matching halo engine, and
// computes the two locally-derived sign tables.
func Read(mesh *decomp.Mesh, file *pio.File, h Halos) (*View, error) {
	v := &View{Mesh: mesh}
	var err error

	scalarCell := func(names []string) (*mirror.Mirror[float64], error) {
		return readField(file, names, &mesh.Cells, 1, h.Cells)
	}
	scalarEdge := func(names []string) (*mirror.Mirror[float64], error) {
		return readField(file, names, &mesh.Edges, 1, h.Edges)
	}
	scalarVertex := func(names []string) (*mirror.Mirror[float64], error) {
		return readField(file, names, &mesh.Vertices, 1, h.Vertices)
	}

	if v.XCell, err = scalarCell(meshio.VarXCell); err != nil {
		return nil, err
	}
	if v.YCell, err = scalarCell(meshio.VarYCell); err != nil {
		return nil, err
	}
	if v.ZCell, err = scalarCell(meshio.VarZCell); err != nil {
		return nil, err
	}
	if v.LatCell, err = scalarCell(meshio.VarLatCell); err != nil {
		return nil, err
	}
	if v.LonCell, err = scalarCell(meshio.VarLonCell); err != nil {
		return nil, err
	}
	if v.AreaCell, err = scalarCell(meshio.VarAreaCell); err != nil {
		return nil, err
	}
	if v.BottomDepth, err = scalarCell(meshio.VarBottomDepth); err != nil {
		return nil, err
	}

	if v.XEdge, err = scalarEdge(meshio.VarXEdge); err != nil {
		return nil, err
	}
	if v.YEdge, err = scalarEdge(meshio.VarYEdge); err != nil {
		return nil, err
	}
	if v.ZEdge, err = scalarEdge(meshio.VarZEdge); err != nil {
		return nil, err
	}
	if v.DvEdge, err = scalarEdge(meshio.VarDvEdge); err != nil {
		return nil, err
	}
	if v.DcEdge, err = scalarEdge(meshio.VarDcEdge); err != nil {
		return nil, err
	}
	if v.AngleEdge, err = scalarEdge(meshio.VarAngleEdge); err != nil {
		return nil, err
	}
	if v.LatEdge, err = scalarEdge(meshio.VarLatEdge); err != nil {
		return nil, err
	}
	if v.LonEdge, err = scalarEdge(meshio.VarLonEdge); err != nil {
		return nil, err
	}

	if v.XVertex, err = scalarVertex(meshio.VarXVertex); err != nil {
		return nil, err
	}
	if v.YVertex, err = scalarVertex(meshio.VarYVertex); err != nil {
		return nil, err
	}
	if v.ZVertex, err = scalarVertex(meshio.VarZVertex); err != nil {
		return nil, err
	}
	if v.AreaTriangle, err = scalarVertex(meshio.VarAreaTriangle); err != nil {
		return nil, err
	}
	if v.FVertex, err = scalarVertex(meshio.VarFVertex); err != nil {
		return nil, err
	}
	if v.LatVertex, err = scalarVertex(meshio.VarLatVertex); err != nil {
		return nil, err
	}
	if v.LonVertex, err = scalarVertex(meshio.VarLonVertex); err != nil {
		return nil, err
	}

	if v.WeightsOnEdge, err = readField(file, meshio.VarWeightsOnEdge, &mesh.Edges, 2*mesh.MaxEdges, h.Edges); err != nil {
		return nil, err
	}
	if v.KiteAreasOnVertex, err = readField(file, meshio.VarKiteAreasOnVertex, &mesh.Vertices, mesh.VertexDegree, h.Vertices); err != nil {
		return nil, err
	}

	v.EdgeSignOnCell = mirror.Wrap(computeEdgeSignOnCell(mesh))
	v.EdgeSignOnVertex = mirror.Wrap(computeEdgeSignOnVertex(mesh))

	return v, nil
}

// readField resolves the first matching candidate name, decomposition
// reads it into space's local order (width scalars per element), and
// performs one halo exchange if eng is non-nil.
func readField(file *pio.File, names []string, space *decomp.Space, width int, eng *halo.Engine) (*mirror.Mirror[float64], error) {
	name, err := meshio.Resolve(names, file.HasVar)
	if err != nil {
		return nil, err
	}
	desc := pio.DecompDescriptor{
		IOType:        pio.Real64,
		Dims:          []int64{int64(space.NGlobal) * int64(width)},
		LocalLength:   space.NAll * width,
		GlobalOffsets: globalOffsets(space, width),
	}
	decompID := file.CreateDecomp(desc)
	buf := make([]float64, space.NSize*width)
	ok, err := file.ReadArrayReal64(buf[:space.NAll*width], name, decompID, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, chk.Err("horzmesh: variable %q not found in mesh file", name)
	}
	if eng != nil {
		if err := halo.Exchange(eng, buf, width); err != nil {
			return nil, err
		}
	}
	return mirror.Wrap(buf), nil
}

// globalOffsets expands a Space's per-element global id into width
// contiguous global slots per element, the layout ParallelIO's
// decomposed arrays use for multi-component fields.
func globalOffsets(space *decomp.Space, width int) []int64 {
	offsets := make([]int64, space.NAll*width)
	for i := 0; i < space.NAll; i++ {
		base := int64(space.GlobalID[i]-1) * int64(width)
		for w := 0; w < width; w++ {
			offsets[i*width+w] = base + int64(w)
		}
	}
	return offsets
}
