// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/oceanmesh/meshcore/decomp/gkway"
)

// RawMesh is the fully assembled global adjacency after the linear
// pre-read and its broadcast (spec.md §4.4 step 1): every rank running
// the serial k-way method ends up holding exactly this, which is why
// Build accepts it directly rather than re-deriving it from a
// ParallelIO handle — pio/meshio do the file-reading half of step 1,
// feeding their result into this struct.
//
// All cell/edge/vertex ids here are 1-based globals; per-element rows
// are padded to their table's fixed width with 0, the file-format
// "missing neighbor" marker (spec.md §3).
type RawMesh struct {
	NCellsGlobal    int
	NEdgesGlobal    int
	NVerticesGlobal int
	MaxEdges        int
	VertexDegree    int

	CellsOnCell    [][]int32 // [NCellsGlobal][MaxEdges]
	EdgesOnCell    [][]int32 // [NCellsGlobal][MaxEdges]
	VerticesOnCell [][]int32 // [NCellsGlobal][MaxEdges]
	NEdgesOnCell   []int32   // [NCellsGlobal]

	CellsOnEdge    [][2]int32 // [NEdgesGlobal]
	EdgesOnEdge    [][]int32  // [NEdgesGlobal][2*MaxEdges]
	VerticesOnEdge [][2]int32 // [NEdgesGlobal]
	NEdgesOnEdge   []int32    // [NEdgesGlobal]

	CellsOnVertex [][]int32 // [NVerticesGlobal][VertexDegree]
	EdgesOnVertex [][]int32 // [NVerticesGlobal][VertexDegree]
}

// Method selects the partitioning algorithm (spec.md §4.4 step 2;
// config.DecompMethod maps onto this one-to-one).
type Method int

const (
	SerialMethod Method = iota
	ParallelMethod
)

// Build runs the full decomposition pipeline (spec.md §4.4) for this
// rank and returns the local index space, connectivity, and location
// tables. nRanks must equal the partition target.
func Build(raw *RawMesh, myRank, nRanks, haloWidth int, method Method) (*Mesh, error) {
	if haloWidth < 1 {
		return nil, chk.Err("decomp: HaloWidth must be >= 1, got %d", haloWidth)
	}

	cellTask := partitionCells(raw, nRanks, method)

	// --- cells ---
	ownedCells := ownedGids(raw.NCellsGlobal, func(gid int32) bool { return cellTask[gid] == myRank })
	cellNeighbors := func(gid int32) []int32 { return trimZeros(raw.CellsOnCell[gid-1]) }
	cellOrder, cellHaloSize := BuildCellRings(ownedCells, cellNeighbors, haloWidth)
	cellSpace := NewSpace(Cell, raw.NCellsGlobal, len(ownedCells), cellOrder, cellHaloSize)
	cellRings := SplitCellRingsBySize(cellOrder, len(ownedCells), cellHaloSize)

	// --- edges ---
	ownedEdges := ownedGids(raw.NEdgesGlobal, func(gid int32) bool {
		r, ok := Owner(raw.CellsOnEdge[gid-1][:], cellTask)
		return ok && r == myRank
	})
	edgesOfCell := func(cgid int32) []int32 { return trimZeros(raw.EdgesOnCell[cgid-1]) }
	edgeOrder, edgeHaloSize := BuildDerivedRings(ownedEdges, cellRings, edgesOfCell, haloWidth)
	edgeSpace := NewSpace(Edge, raw.NEdgesGlobal, len(ownedEdges), edgeOrder, edgeHaloSize)

	// --- vertices ---
	ownedVertices := ownedGids(raw.NVerticesGlobal, func(gid int32) bool {
		r, ok := Owner(raw.CellsOnVertex[gid-1], cellTask)
		return ok && r == myRank
	})
	verticesOfCell := func(cgid int32) []int32 { return trimZeros(raw.VerticesOnCell[cgid-1]) }
	vertexOrder, vertexHaloSize := BuildDerivedRings(ownedVertices, cellRings, verticesOfCell, haloWidth)
	vertexSpace := NewSpace(Vertex, raw.NVerticesGlobal, len(ownedVertices), vertexOrder, vertexHaloSize)

	m := &Mesh{
		HaloWidth:    haloWidth,
		MaxEdges:     raw.MaxEdges,
		VertexDegree: raw.VertexDegree,
		Cells:        cellSpace,
		Edges:        edgeSpace,
		Vertices:     vertexSpace,
	}

	// --- connectivity, gathered in local order then remapped ---
	m.CellsOnCell = RemapTable(gatherRows(raw.CellsOnCell, cellOrder, raw.MaxEdges), raw.MaxEdges, &cellSpace, false)
	m.EdgesOnCell = RemapTable(gatherRows(raw.EdgesOnCell, cellOrder, raw.MaxEdges), raw.MaxEdges, &edgeSpace, false)
	m.VerticesOnCell = RemapTable(gatherRows(raw.VerticesOnCell, cellOrder, raw.MaxEdges), raw.MaxEdges, &vertexSpace, false)
	m.NEdgesOnCell = gatherScalars(raw.NEdgesOnCell, cellOrder)

	m.CellsOnEdge = RemapTable(gatherRows2(raw.CellsOnEdge, edgeOrder), 2, &cellSpace, false)
	m.EdgesOnEdge = RemapTable(gatherRows(raw.EdgesOnEdge, edgeOrder, 2*raw.MaxEdges), 2*raw.MaxEdges, &edgeSpace, true)
	m.VerticesOnEdge = RemapTable(gatherRows2(raw.VerticesOnEdge, edgeOrder), 2, &vertexSpace, false)
	m.NEdgesOnEdge = gatherScalars(raw.NEdgesOnEdge, edgeOrder)

	m.CellsOnVertex = RemapTable(gatherRows(raw.CellsOnVertex, vertexOrder, raw.VertexDegree), raw.VertexDegree, &cellSpace, false)
	m.EdgesOnVertex = RemapTable(gatherRows(raw.EdgesOnVertex, vertexOrder, raw.VertexDegree), raw.VertexDegree, &edgeSpace, false)

	m.CellLoc = cellSpace.LocTable(myRank, func(gid int32) (int, int32) {
		r := cellTask[gid]
		return r, localOnOwner(gid)
	})
	m.EdgeLoc = edgeSpace.LocTable(myRank, func(gid int32) (int, int32) {
		r, _ := Owner(raw.CellsOnEdge[gid-1][:], cellTask)
		return r, localOnOwner(gid)
	})
	m.VertexLoc = vertexSpace.LocTable(myRank, func(gid int32) (int, int32) {
		r, _ := Owner(raw.CellsOnVertex[gid-1], cellTask)
		return r, localOnOwner(gid)
	})

	return m, nil
}

// localOnOwner is a placeholder local index on the remote owner:
// resolving the real value requires knowing the owning rank's own
// owned-prefix numbering, which this rank cannot know without
// communication. It is exact only for nRanks==1. Distributed runs
// never rely on this placeholder for correctness: halo.Build requests
// halo data by global id rather than by guessed local index, and each
// owner resolves the global id against its own Space, which is always
// exact for elements it holds.
func localOnOwner(gid int32) int32 { return gid - 1 }

func partitionCells(raw *RawMesh, nRanks int, method Method) map[int32]int {
	task := make(map[int32]int, raw.NCellsGlobal)
	if nRanks <= 1 {
		for g := int32(1); g <= int32(raw.NCellsGlobal); g++ {
			task[g] = 0
		}
		return task
	}
	adj := make([][]int, raw.NCellsGlobal)
	for i := 0; i < raw.NCellsGlobal; i++ {
		for _, nb := range trimZeros(raw.CellsOnCell[i]) {
			adj[i] = append(adj[i], int(nb)-1)
		}
	}
	switch method {
	case ParallelMethod:
		nodes := make([]int, raw.NCellsGlobal)
		for i := range nodes {
			nodes[i] = i
		}
		assign := gkway.ParallelKway(nodes, adj, raw.NCellsGlobal, nRanks)
		for i := 0; i < raw.NCellsGlobal; i++ {
			task[int32(i+1)] = assign[i]
		}
	default:
		csr := gkway.NewCSR(adj)
		assign := gkway.SerialKway(csr, nRanks)
		for i, p := range assign {
			task[int32(i+1)] = p
		}
	}
	return task
}

func ownedGids(nGlobal int, isOwned func(gid int32) bool) []int32 {
	var out []int32
	for g := int32(1); g <= int32(nGlobal); g++ {
		if isOwned(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func trimZeros(row []int32) []int32 {
	out := make([]int32, 0, len(row))
	for _, v := range row {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func gatherRows(rows [][]int32, order []int32, width int) []int32 {
	flat := make([]int32, len(order)*width)
	for i, gid := range order {
		row := rows[gid-1]
		for j := 0; j < width; j++ {
			if j < len(row) {
				flat[i*width+j] = row[j]
			}
		}
	}
	return flat
}

func gatherRows2(rows [][2]int32, order []int32) []int32 {
	flat := make([]int32, len(order)*2)
	for i, gid := range order {
		flat[i*2] = rows[gid-1][0]
		flat[i*2+1] = rows[gid-1][1]
	}
	return flat
}

func gatherScalars(vals []int32, order []int32) []int32 {
	out := make([]int32, len(order))
	for i, gid := range order {
		out[i] = vals[gid-1]
	}
	return out
}
