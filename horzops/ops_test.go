// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package horzops

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/horzmesh"
	"github.com/oceanmesh/meshcore/pio"
	"github.com/oceanmesh/meshcore/pio/scorpio"
)

// ringRawMesh mirrors decomp's own ring fixture (n cells in a cycle),
// duplicated here (as horzmesh does) so this package's tests do not
// depend on an internal fixture helper from another package.
func ringRawMesh(n int) *decomp.RawMesh {
	raw := &decomp.RawMesh{
		NCellsGlobal: n, NEdgesGlobal: n, NVerticesGlobal: n,
		MaxEdges: 2, VertexDegree: 2,
	}
	cyc := func(i int) int32 { return int32((i%n)+n)%int32(n) + 1 }
	for c := 1; c <= n; c++ {
		prev, next := cyc(c-2), cyc(c)
		raw.CellsOnCell = append(raw.CellsOnCell, []int32{prev, next})
		raw.EdgesOnCell = append(raw.EdgesOnCell, []int32{cyc(c - 2), cyc(c - 1)})
		raw.VerticesOnCell = append(raw.VerticesOnCell, []int32{cyc(c - 2), cyc(c - 1)})
		raw.NEdgesOnCell = append(raw.NEdgesOnCell, 2)
	}
	for e := 1; e <= n; e++ {
		c0, c1 := int32(e), cyc(e)
		raw.CellsOnEdge = append(raw.CellsOnEdge, [2]int32{c0, c1})
		raw.VerticesOnEdge = append(raw.VerticesOnEdge, [2]int32{c0, c1})
		raw.EdgesOnEdge = append(raw.EdgesOnEdge, []int32{cyc(e - 2), cyc(e - 1), 0, 0})
		raw.NEdgesOnEdge = append(raw.NEdgesOnEdge, 2)
	}
	for v := 1; v <= n; v++ {
		c0, c1 := int32(v), cyc(v)
		raw.CellsOnVertex = append(raw.CellsOnVertex, []int32{c0, c1})
		raw.EdgesOnVertex = append(raw.EdgesOnVertex, []int32{c0, c1})
	}
	return raw
}

// writeUniformMeshFile writes the geometric fields horzmesh.Read
// expects, with the lengths/areas held at fixed uniform constants so
// the divergence- and curl-of-a-constant-field identities (spec.md §8
// items 3 and 5) hold exactly rather than only approximately. Weights
// and coordinates vary by index so the tangential-reconstruction test
// can distinguish contributing from sentinel-skipped slots.
func writeUniformMeshFile(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.dat")
	backend := scorpio.New()
	wf, err := pio.Open(backend, path, pio.ModeWriteFailIfExists)
	if err != nil {
		t.Fatalf("open for write: %v", err)
	}
	wf.DefineDim("nCells", int64(n))
	wf.DefineDim("nEdges", int64(n))
	wf.DefineDim("nVertices", int64(n))

	writeScalar := func(varName, dim string, nGlobal int, value func(i int) float64) {
		varID := wf.DefineVar(varName, pio.Real64, []string{dim})
		offsets := make([]int64, nGlobal)
		vals := make([]float64, nGlobal)
		for i := 0; i < nGlobal; i++ {
			offsets[i] = int64(i)
			vals[i] = value(i)
		}
		decompID := wf.CreateDecomp(pio.DecompDescriptor{IOType: pio.Real64, Dims: []int64{int64(nGlobal)}, LocalLength: nGlobal, GlobalOffsets: offsets})
		wf.WriteArrayReal64(vals, -1, varID, decompID, 0)
	}
	constant := func(v float64) func(int) float64 { return func(int) float64 { return v } }
	index := func(i int) float64 { return float64(i + 1) }

	writeScalar("xCell", "nCells", n, index)
	writeScalar("yCell", "nCells", n, index)
	writeScalar("zCell", "nCells", n, index)
	writeScalar("latCell", "nCells", n, index)
	writeScalar("lonCell", "nCells", n, index)
	writeScalar("areaCell", "nCells", n, constant(3))
	writeScalar("bottomDepth", "nCells", n, index)

	writeScalar("xEdge", "nEdges", n, index)
	writeScalar("yEdge", "nEdges", n, index)
	writeScalar("zEdge", "nEdges", n, index)
	writeScalar("latEdge", "nEdges", n, index)
	writeScalar("lonEdge", "nEdges", n, index)
	writeScalar("dvEdge", "nEdges", n, constant(1))
	writeScalar("dcEdge", "nEdges", n, constant(2))
	writeScalar("angleEdge", "nEdges", n, index)

	writeScalar("xVertex", "nVertices", n, index)
	writeScalar("yVertex", "nVertices", n, index)
	writeScalar("zVertex", "nVertices", n, index)
	writeScalar("latVertex", "nVertices", n, index)
	writeScalar("lonVertex", "nVertices", n, index)
	writeScalar("areaTriangle", "nVertices", n, constant(5))
	writeScalar("fVertex", "nVertices", n, index)

	writeWide := func(varName string, nGlobal, width int, value func(i int) float64) {
		varID := wf.DefineVar(varName, pio.Real64, []string{"width"})
		offsets := make([]int64, nGlobal*width)
		vals := make([]float64, nGlobal*width)
		for i := 0; i < nGlobal*width; i++ {
			offsets[i] = int64(i)
			vals[i] = value(i)
		}
		decompID := wf.CreateDecomp(pio.DecompDescriptor{IOType: pio.Real64, Dims: []int64{int64(nGlobal * width)}, LocalLength: nGlobal * width, GlobalOffsets: offsets})
		wf.WriteArrayReal64(vals, -1, varID, decompID, 0)
	}
	writeWide("weightsOnEdge", n, 4, func(i int) float64 { return float64(i) })
	writeWide("kiteAreasOnVertex", n, 2, index)

	if err := wf.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func buildRingView(t *testing.T, n int) (*decomp.Mesh, *horzmesh.View) {
	t.Helper()
	raw := ringRawMesh(n)
	mesh, err := decomp.Build(raw, 0, 1, 1, decomp.SerialMethod)
	if err != nil {
		t.Fatalf("decomp.Build: %v", err)
	}
	path := writeUniformMeshFile(t, n)
	backend := scorpio.New()
	file, err := pio.Open(backend, path, pio.ModeRead)
	if err != nil {
		t.Fatalf("open for read: %v", err)
	}
	defer file.Close()
	view, err := horzmesh.Read(mesh, file, horzmesh.Halos{})
	if err != nil {
		t.Fatalf("horzmesh.Read: %v", err)
	}
	return mesh, view
}

func TestDivergenceOfConstantFluxIsZero(t *testing.T) {
	mesh, view := buildRingView(t, 6)
	div := NewDivergence(mesh, view)
	flux := make([]float64, mesh.Edges.NSize)
	for i := range flux {
		flux[i] = 5.0
	}
	for c := 0; c < mesh.Cells.NOwned; c++ {
		got := div.Apply(c, 0, 1, flux)
		if math.Abs(got) > 1e-12 {
			t.Fatalf("divergence at cell %d = %v, want ~0", c, got)
		}
	}
}

func TestGradientOfConstantFieldIsZero(t *testing.T) {
	mesh, view := buildRingView(t, 6)
	grad := NewGradient(mesh, view)
	phi := make([]float64, mesh.Cells.NSize)
	for i := range phi {
		phi[i] = 7.0
	}
	for e := 0; e < mesh.Edges.NOwned; e++ {
		got := grad.Apply(e, 0, 1, phi)
		if got != 0 {
			t.Fatalf("gradient at edge %d = %v, want 0", e, got)
		}
	}
}

func TestCurlOfConstantIsZero(t *testing.T) {
	mesh, view := buildRingView(t, 6)
	curl := NewCurl(mesh, view)
	u := make([]float64, mesh.Edges.NSize)
	for i := range u {
		u[i] = 1.0
	}
	for v := 0; v < mesh.Vertices.NOwned; v++ {
		got := curl.Apply(v, 0, 1, u)
		if math.Abs(got) > 1e-12 {
			t.Fatalf("curl at vertex %d = %v, want ~0", v, got)
		}
	}
}

// TestTangentialReconstructionSkipsSentinelSlots targets spec.md §8's
// boundary behavior: EdgesOnEdge zero-pad slots are preserved as
// sentinel and must not contribute to the reconstruction sum.
func TestTangentialReconstructionSkipsSentinelSlots(t *testing.T) {
	n := 6
	mesh, view := buildRingView(t, n)
	recon := NewTangentialReconstruction(mesh, view)
	width := 2 * mesh.MaxEdges

	u := make([]float64, mesh.Edges.NSize)
	for i := range u {
		u[i] = 1.0
	}
	weights := view.WeightsOnEdge.Host()
	for e := 0; e < mesh.Edges.NOwned; e++ {
		var want float64
		for j := 0; j < width; j++ {
			nb := mesh.EdgesOnEdge.At(e, j)
			if nb == decomp.EdgeSlotMissing || nb == mesh.Edges.Sentinel() {
				continue
			}
			want += weights[e*width+j] * u[nb]
		}
		got := recon.Apply(e, 0, 1, u)
		if got != want {
			t.Fatalf("edge %d: reconstruction = %v, want %v", e, got, want)
		}
	}
}
