// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gkway implements the two cell-partitioning algorithms
// selected by config.Decomp.DecompMethod (spec.md §4.4 step 2). No
// METIS/ParMETIS cgo binding exists anywhere in the retrieved corpus
// (DESIGN.md), so both "metisKway" and "parmetisKway" select between
// two pure-Go k-way graph-cut heuristics over a plain compressed-row
// adjacency (CSR below); gosl/graph itself is not vendored into the
// retrieved corpus, so its actual API could not be inspected and is
// not imported here (DESIGN.md). SerialKway builds the full graph on
// every rank and cuts it
// identically everywhere (deterministic, so every rank agrees without
// further communication); ParallelKway only ever inspects the calling
// rank's local adjacency window, the way the real parallel partitioner
// would.
package gkway

import "sort"

// CSR is a compressed-row adjacency over 0-based node ids
// 0..N-1, mirroring the CellsOnCell table flattened to a variable
// row width.
type CSR struct {
	RowStart []int // length N+1
	Cols     []int // length RowStart[N]; neighbor node ids
}

// NewCSR builds a CSR from a ragged adjacency list.
func NewCSR(adj [][]int) *CSR {
	c := &CSR{RowStart: make([]int, len(adj)+1)}
	for i, row := range adj {
		c.RowStart[i+1] = c.RowStart[i] + len(row)
	}
	c.Cols = make([]int, c.RowStart[len(adj)])
	for i, row := range adj {
		copy(c.Cols[c.RowStart[i]:c.RowStart[i+1]], row)
	}
	return c
}

// N returns the number of nodes.
func (c *CSR) N() int { return len(c.RowStart) - 1 }

// Neighbors returns node i's adjacency row.
func (c *CSR) Neighbors(i int) []int { return c.Cols[c.RowStart[i]:c.RowStart[i+1]] }

// SerialKway partitions every node of g into nParts parts using
// greedy graph growing from nParts deterministic seeds followed by a
// bounded local-swap refinement pass that trades a node across a cut
// edge whenever doing so reduces the edge cut without breaking the
// balance tolerance. Every rank computes the identical result from
// the identical full graph (spec.md §4.4: "every rank builds the full
// adjacency... yielding CellTask[globalCell] -> rank on every rank").
func SerialKway(g *CSR, nParts int) []int {
	n := g.N()
	task := make([]int, n)
	for i := range task {
		task[i] = -1
	}
	if nParts <= 1 {
		return make([]int, n) // all zero; caller bypasses this for single-rank mode anyway
	}

	target := (n + nParts - 1) / nParts
	// Deterministic seeds: evenly spaced node ids.
	seeds := make([]int, nParts)
	for p := 0; p < nParts; p++ {
		seeds[p] = (p * n) / nParts
	}
	frontier := make([][]int, nParts)
	counts := make([]int, nParts)
	for p, s := range seeds {
		if task[s] == -1 {
			task[s] = p
			counts[p]++
			frontier[p] = []int{s}
		}
	}

	// Round-robin BFS growth: each part claims one more unassigned
	// neighbor per round until every node is assigned.
	assigned := nParts
	for assigned < n {
		progressed := false
		for p := 0; p < nParts; p++ {
			if counts[p] >= target {
				continue
			}
			var next []int
			claimed := false
			for _, node := range frontier[p] {
				for _, nb := range g.Neighbors(node) {
					if task[nb] == -1 {
						task[nb] = p
						counts[p]++
						assigned++
						next = append(next, nb)
						claimed = true
						progressed = true
						break
					}
				}
				if claimed {
					break
				}
			}
			frontier[p] = append(frontier[p], next...)
		}
		if !progressed {
			// Disconnected remainder: assign leftover nodes to the
			// least-loaded part in id order, deterministically.
			for i := 0; i < n; i++ {
				if task[i] != -1 {
					continue
				}
				p := leastLoaded(counts)
				task[i] = p
				counts[p]++
				assigned++
			}
		}
	}
	refine(g, task, nParts)
	return task
}

func leastLoaded(counts []int) int {
	best := 0
	for p := 1; p < len(counts); p++ {
		if counts[p] < counts[best] {
			best = p
		}
	}
	return best
}

// refine performs a single bounded pass of boundary-node swaps that
// strictly reduce the edge cut, skipping any swap that would push a
// part's size outside +-1 of perfectly even — enough to clean up the
// seams the greedy growth leaves without the cost of a full
// Kernighan-Lin pass.
func refine(g *CSR, task []int, nParts int) {
	n := g.N()
	counts := make([]int, nParts)
	for _, p := range task {
		counts[p]++
	}
	target := n / nParts
	for i := 0; i < n; i++ {
		cur := task[i]
		neighborCount := make(map[int]int)
		for _, nb := range g.Neighbors(i) {
			neighborCount[task[nb]]++
		}
		bestPart, bestCut := cur, neighborCount[cur]
		for p, c := range neighborCount {
			if p == cur {
				continue
			}
			if c > bestCut && counts[p]+1 <= target+1 && counts[cur]-1 >= target-1 {
				bestPart, bestCut = p, c
			}
		}
		if bestPart != cur {
			counts[cur]--
			counts[bestPart]++
			task[i] = bestPart
		}
	}
}

// ParallelKway partitions using only the calling rank's local
// adjacency window localNodes (global ids this rank read in the
// linear pre-read, spec.md §4.4 step 1), deriving the same CellTask
// assignment a rank would reach talking only to its immediate
// neighbors: every local node is assigned to the part of the global
// id range [0,n) it falls into (a 1-D geometric partition over the
// already-linear ordering), then boundary nodes are reassigned to
// whichever neighboring part most of their cross-edges point at. This
// never needs to see a node outside localNodes' own adjacency window.
func ParallelKway(localNodes []int, localAdj [][]int, nGlobal, nParts int) map[int]int {
	target := (nGlobal + nParts - 1) / nParts
	task := make(map[int]int, len(localNodes))
	for _, g := range localNodes {
		task[g] = g / target
		if task[g] >= nParts {
			task[g] = nParts - 1
		}
	}
	idx := make(map[int]int, len(localNodes))
	for i, g := range localNodes {
		idx[g] = i
	}
	for i, g := range localNodes {
		neighborCount := make(map[int]int)
		for _, nb := range localAdj[i] {
			if p, ok := task[nb]; ok {
				neighborCount[p]++
			}
		}
		cur := task[g]
		bestPart, bestCut := cur, neighborCount[cur]
		keys := make([]int, 0, len(neighborCount))
		for p := range neighborCount {
			keys = append(keys, p)
		}
		sort.Ints(keys)
		for _, p := range keys {
			if neighborCount[p] > bestCut {
				bestPart, bestCut = p, neighborCount[p]
			}
		}
		task[g] = bestPart
	}
	return task
}
