package gkway

import "testing"

// ring builds a cyclic adjacency of n nodes, each linked to its two
// neighbors, a small stand-in for a strip of mesh cells.
func ring(n int) *CSR {
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		adj[i] = []int{(i - 1 + n) % n, (i + 1) % n}
	}
	return NewCSR(adj)
}

func TestSerialKwayCoversAllNodesAndBalances(t *testing.T) {
	g := ring(12)
	task := SerialKway(g, 3)
	counts := make([]int, 3)
	for i, p := range task {
		if p < 0 || p >= 3 {
			t.Fatalf("node %d has invalid part %d", i, p)
		}
		counts[p]++
	}
	for p, c := range counts {
		if c < 2 || c > 6 {
			t.Fatalf("part %d has %d nodes, expected roughly even split of 12/3", p, c)
		}
	}
}

func TestSerialKwayDeterministic(t *testing.T) {
	g := ring(20)
	a := SerialKway(g, 4)
	b := SerialKway(g, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("partition not deterministic at node %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestParallelKwayAssignsEveryLocalNode(t *testing.T) {
	g := ring(16)
	localNodes := []int{0, 1, 2, 3}
	localAdj := make([][]int, len(localNodes))
	for i, n := range localNodes {
		localAdj[i] = g.Neighbors(n)
	}
	task := ParallelKway(localNodes, localAdj, 16, 4)
	if len(task) != len(localNodes) {
		t.Fatalf("expected %d assignments, got %d", len(localNodes), len(task))
	}
	for _, n := range localNodes {
		if _, ok := task[n]; !ok {
			t.Fatalf("node %d not assigned", n)
		}
	}
}
