// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decomp implements mesh partitioning and local renumbering
// (spec.md §4.4): cell partitioning, k-ring halo construction, and the
// global<->local index maps and connectivity tables the rest of the
// core consumes.
package decomp

// ElementKind distinguishes the three primary element kinds (spec.md §3).
type ElementKind int

const (
	Cell ElementKind = iota
	Edge
	Vertex
)

func (k ElementKind) String() string {
	switch k {
	case Cell:
		return "cell"
	case Edge:
		return "edge"
	case Vertex:
		return "vertex"
	default:
		return "unknown"
	}
}

// EdgeSlotMissing is the named sentinel for an EdgesOnEdge slot that
// was a zero in the source file: a genuine "no such edge" boundary
// marker that must survive remap, not be confused with local index 0
// (spec.md §9 open question, resolved normatively here rather than
// left as a magic zero).
const EdgeSlotMissing int32 = -1

// Space holds the local index-space bookkeeping for one element kind:
// the owned prefix, the cumulative halo-ring boundaries, and the
// global<->local identity maps (spec.md §3 "Local numbering and halo
// layering").
type Space struct {
	Kind ElementKind

	NGlobal  int // size of the global id space {1..NGlobal}
	NOwned   int // size of the owned prefix [0, NOwned)
	HaloSize []int // HaloSize[h] = NHalo[h], cumulative local count through ring h (1-based length HaloWidth)

	NAll  int // NHalo[HaloWidth-1]
	NSize int // NAll + 1 (includes the trailing sentinel slot)

	// GlobalID[local] is the 1-based global id of local index local;
	// GlobalID[NAll] is the sentinel value NGlobal+1.
	GlobalID []int32

	// global2local maps a 1-based global id to this rank's local
	// index, or to Sentinel() if this rank holds neither the owned
	// element nor a halo copy of it.
	global2local map[int32]int32
}

// Sentinel returns the local sentinel index NAll (§3 "the symmetric
// local sentinel is NLocalAll").
func (s *Space) Sentinel() int32 { return int32(s.NAll) }

// LocalOf returns the local index of global id gid on this rank, or
// the sentinel if gid is not present locally.
func (s *Space) LocalOf(gid int32) int32 {
	if l, ok := s.global2local[gid]; ok {
		return l
	}
	return s.Sentinel()
}

// Loc is one row of the XxLoc location table: the owning rank and
// that rank's local index for a local element (spec.md §3 "Location table").
type Loc struct {
	Rank  int
	Local int32
}

// LocTable builds the per-element owner/local-index table; the
// sentinel row points at (myRank, NAll) as required by spec.md §3.
func (s *Space) LocTable(myRank int, owner func(gid int32) (rank int, local int32)) []Loc {
	tbl := make([]Loc, s.NSize)
	for i := 0; i < s.NAll; i++ {
		r, l := owner(s.GlobalID[i])
		tbl[i] = Loc{Rank: r, Local: l}
	}
	tbl[s.NAll] = Loc{Rank: myRank, Local: int32(s.NAll)}
	return tbl
}

// Connectivity holds the two-index tables in local indices, common to
// all three "XxOnYy" families (spec.md §3 "Connectivity").
type Connectivity struct {
	// Table[e*width+j] is the j-th neighbor of local element e, or the
	// sentinel NAll if absent (EdgesOnEdge instead holds EdgeSlotMissing
	// where the source file had a zero). Width is fixed per table
	// (MaxEdges, VertexDegree, 2, ...).
	Table []int32
	Width int
}

// At returns the j-th neighbor of local element e.
func (c *Connectivity) At(e, j int) int32 { return c.Table[e*c.Width+j] }

// Set stores the j-th neighbor of local element e.
func (c *Connectivity) Set(e, j int, v int32) { c.Table[e*c.Width+j] = v }

// NewConnectivity allocates a connectivity table for n elements with
// the given row width, every slot initialized to sentinel.
func NewConnectivity(n, width int, sentinel int32) *Connectivity {
	t := &Connectivity{Table: make([]int32, n*width), Width: width}
	for i := range t.Table {
		t.Table[i] = sentinel
	}
	return t
}

// Mesh is the full decomposition result: local index spaces for the
// three element kinds, connectivity in local indices, and location
// tables, as required by spec.md §3–§4.4.
type Mesh struct {
	HaloWidth    int
	MaxEdges     int
	VertexDegree int

	Cells    Space
	Edges    Space
	Vertices Space

	CellLoc    []Loc
	EdgeLoc    []Loc
	VertexLoc  []Loc

	CellsOnCell    *Connectivity // width MaxEdges
	EdgesOnCell    *Connectivity // width MaxEdges
	VerticesOnCell *Connectivity // width MaxEdges
	NEdgesOnCell   []int32       // valid edges per cell

	CellsOnEdge    *Connectivity // width 2
	EdgesOnEdge    *Connectivity // width 2*MaxEdges
	VerticesOnEdge *Connectivity // width 2
	NEdgesOnEdge   []int32

	CellsOnVertex *Connectivity // width VertexDegree
	EdgesOnVertex *Connectivity // width VertexDegree
}
