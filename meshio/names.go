// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshio holds the canonical/legacy variable-name candidate
// lists shared by decomp and horzmesh (spec.md §9 "Dual-named mesh
// variables"): each lookup tries every candidate in order rather than
// hard-coding two branches, so adding a third historical name later
// is a one-line change.
package meshio

import "github.com/cpmech/gosl/chk"

// Dimensions: NGlobal-scale sizes read once at mesh-open time.
var (
	DimNCells         = []string{"NCells", "nCells"}
	DimNEdges         = []string{"NEdges", "nEdges"}
	DimNVertices      = []string{"NVertices", "nVertices"}
	DimMaxEdges       = []string{"MaxEdges", "maxEdges"}
	DimVertexDegree   = []string{"VertexDegree", "vertexDegree"}
	DimMaxCellsOnEdge = []string{"MaxCellsOnEdge", "TWO"}
	DimNVertLevels    = []string{"NVertLevels", "nVertLevels"}
)

// Connectivity tables, read under the linear pre-read decomposition
// (spec.md §4.4 step 1) before being redistributed and remapped.
var (
	VarCellsOnCell     = []string{"CellsOnCell", "cellsOnCell"}
	VarEdgesOnCell     = []string{"EdgesOnCell", "edgesOnCell"}
	VarVerticesOnCell  = []string{"VerticesOnCell", "verticesOnCell"}
	VarNEdgesOnCell    = []string{"NEdgesOnCell", "nEdgesOnCell"}
	VarCellsOnEdge     = []string{"CellsOnEdge", "cellsOnEdge"}
	VarEdgesOnEdge     = []string{"EdgesOnEdge", "edgesOnEdge"}
	VarVerticesOnEdge  = []string{"VerticesOnEdge", "verticesOnEdge"}
	VarNEdgesOnEdge    = []string{"NEdgesOnEdge", "nEdgesOnEdge"}
	VarCellsOnVertex   = []string{"CellsOnVertex", "cellsOnVertex"}
	VarEdgesOnVertex   = []string{"EdgesOnVertex", "edgesOnVertex"}
)

// Geometric fields read by horzmesh.
var (
	VarXCell             = []string{"xCell", "XCell"}
	VarYCell             = []string{"yCell", "YCell"}
	VarZCell             = []string{"zCell", "ZCell"}
	VarLatCell           = []string{"latCell", "LatCell"}
	VarLonCell           = []string{"lonCell", "LonCell"}
	VarXEdge             = []string{"xEdge", "XEdge"}
	VarYEdge             = []string{"yEdge", "YEdge"}
	VarZEdge             = []string{"zEdge", "ZEdge"}
	VarLatEdge           = []string{"latEdge", "LatEdge"}
	VarLonEdge           = []string{"lonEdge", "LonEdge"}
	VarXVertex           = []string{"xVertex", "XVertex"}
	VarYVertex           = []string{"yVertex", "YVertex"}
	VarZVertex           = []string{"zVertex", "ZVertex"}
	VarLatVertex         = []string{"latVertex", "LatVertex"}
	VarLonVertex         = []string{"lonVertex", "LonVertex"}
	VarDvEdge            = []string{"dvEdge", "DvEdge"}
	VarDcEdge            = []string{"dcEdge", "DcEdge"}
	VarAreaCell          = []string{"areaCell", "AreaCell"}
	VarAreaTriangle      = []string{"areaTriangle", "AreaTriangle"}
	VarKiteAreasOnVertex = []string{"kiteAreasOnVertex", "KiteAreasOnVertex"}
	VarAngleEdge         = []string{"angleEdge", "AngleEdge"}
	VarWeightsOnEdge     = []string{"weightsOnEdge", "WeightsOnEdge"}
	VarFVertex           = []string{"fVertex", "FVertex"}
	VarBottomDepth       = []string{"bottomDepth", "BottomDepth"}
)

// Per-column vertical range, read by vertcoord (spec.md §3 "vertical axis").
var (
	VarMinLayerCell = []string{"minLevelCell", "MinLayerCell"}
	VarMaxLayerCell = []string{"maxLevelCell", "MaxLayerCell"}
)

// Lookup is satisfied by any reader that can answer "does a variable
// or dimension with this exact name exist". decomp and horzmesh each
// adapt their ParallelIO/file handle to this interface.
type Lookup func(name string) bool

// Resolve returns the first candidate name that exists according to
// exists, or a recoverable error naming every candidate tried if
// none do (spec.md §7 "missing variable / dimension").
func Resolve(candidates []string, exists Lookup) (string, error) {
	for _, name := range candidates {
		if exists(name) {
			return name, nil
		}
	}
	return "", chk.Err("meshio: none of %v found in mesh file", candidates)
}
