// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"sync"
	"testing"

	"github.com/oceanmesh/meshcore/decomp"
)

// ringRawMesh mirrors decomp's own ring fixture: n cells in a cycle,
// cell i adjacent to i-1 and i+1 (mod n), one edge and one vertex per
// adjacency. It is duplicated here rather than imported since decomp's
// copy lives in an internal _test.go file.
func ringRawMesh(n int) *decomp.RawMesh {
	raw := &decomp.RawMesh{
		NCellsGlobal:    n,
		NEdgesGlobal:    n,
		NVerticesGlobal: n,
		MaxEdges:        2,
		VertexDegree:    2,
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

// TestHaloFillsOwnersValue exercises the full distributed pipeline
// (decomp.Build -> halo.Build -> halo.Exchange) across two simulated
// ranks running concurrently over a fakeNetwork, and checks the
// property spec.md §8 calls out directly: after one exchange, every
// halo slot holds exactly the value its owning rank assigned to that
// global id.
func TestHaloFillsOwnersValue(t *testing.T) {
	n := 8
	raw := ringRawMesh(n)
	nRanks := 2

	meshes := make([]*decomp.Mesh, nRanks)
	for r := 0; r < nRanks; r++ {
		m, err := decomp.Build(raw, r, nRanks, 1, decomp.SerialMethod)
		if err != nil {
			t.Fatalf("decomp.Build rank %d: %v", r, err)
		}
		meshes[r] = m
	}

	net := newFakeNetwork(nRanks)
	engines := make([]*Engine, nRanks)
	datas := make([][]float64, nRanks)

	var wg sync.WaitGroup
	errs := make([]error, nRanks)
	for r := 0; r < nRanks; r++ {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := meshes[r]
			eng, err := Build(decomp.Cell, &m.Cells, m.CellLoc, net.transport(r))
			if err != nil {
				errs[r] = err
				return
			}
			engines[r] = eng
			data := make([]float64, m.Cells.NSize)
			for i := 0; i < m.Cells.NOwned; i++ {
				data[i] = float64(m.Cells.GlobalID[i])
			}
			datas[r] = data
		}()
	}
	wg.Wait()
	for r, err := range errs {
		if err != nil {
			t.Fatalf("Build rank %d: %v", r, err)
		}
	}

	for r := 0; r < nRanks; r++ {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Exchange(engines[r], datas[r], 1); err != nil {
				errs[r] = err
			}
		}()
	}
	wg.Wait()
	for r, err := range errs {
		if err != nil {
			t.Fatalf("Exchange rank %d: %v", r, err)
		}
	}

	for r := 0; r < nRanks; r++ {
		m := meshes[r]
		data := datas[r]
		for i := 0; i < m.Cells.NAll; i++ {
			want := float64(m.Cells.GlobalID[i])
			if data[i] != want {
				t.Fatalf("rank %d local %d (gid %d): got %v, want %v", r, i, m.Cells.GlobalID[i], data[i], want)
			}
		}
	}
}

// TestExchangeIsIdempotent runs the exchange twice and checks the
// second pass leaves every value unchanged (spec.md §8 idempotence
// property).
func TestExchangeIsIdempotent(t *testing.T) {
	n := 8
	raw := ringRawMesh(n)
	nRanks := 2

	meshes := make([]*decomp.Mesh, nRanks)
	for r := 0; r < nRanks; r++ {
		m, err := decomp.Build(raw, r, nRanks, 1, decomp.SerialMethod)
		if err != nil {
			t.Fatalf("decomp.Build rank %d: %v", r, err)
		}
		meshes[r] = m
	}

	runRound := func(net *fakeNetwork, datas [][]float64) []*Engine {
		engines := make([]*Engine, nRanks)
		var wg sync.WaitGroup
		for r := 0; r < nRanks; r++ {
			r := r
			wg.Add(1)
			go func() {
				defer wg.Done()
				m := meshes[r]
				eng, err := Build(decomp.Cell, &m.Cells, m.CellLoc, net.transport(r))
				if err != nil {
					t.Errorf("Build rank %d: %v", r, err)
					return
				}
				engines[r] = eng
			}()
		}
		wg.Wait()
		for r := 0; r < nRanks; r++ {
			r := r
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := Exchange(engines[r], datas[r], 1); err != nil {
					t.Errorf("Exchange rank %d: %v", r, err)
				}
			}()
		}
		wg.Wait()
		return engines
	}

	datas := make([][]float64, nRanks)
	for r := 0; r < nRanks; r++ {
		m := meshes[r]
		data := make([]float64, m.Cells.NSize)
		for i := 0; i < m.Cells.NOwned; i++ {
			data[i] = float64(m.Cells.GlobalID[i])
		}
		datas[r] = data
	}

	runRound(newFakeNetwork(nRanks), datas)
	after1 := make([][]float64, nRanks)
	for r := range datas {
		after1[r] = append([]float64(nil), datas[r]...)
	}

	runRound(newFakeNetwork(nRanks), datas)
	for r := range datas {
		for i := range datas[r] {
			if datas[r][i] != after1[r][i] {
				t.Fatalf("rank %d local %d changed on repeat exchange: %v -> %v", r, i, after1[r][i], datas[r][i])
			}
		}
	}
}
