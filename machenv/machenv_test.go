package machenv

import "testing"

func TestWorldSingleProcessFallback(t *testing.T) {
	w := World()
	if !w.IsMember() {
		t.Fatal("world group must always contain this process")
	}
	if w.Rank() != 0 || w.Size() != 1 {
		t.Fatalf("single-process world: rank=%d size=%d, want 0,1", w.Rank(), w.Size())
	}
	if !w.IsMaster() {
		t.Fatal("rank 0 of single-process world must be master")
	}
}

func TestSubsetRangeMembership(t *testing.T) {
	w := World() // rank=0, size=1 in this test process
	g, err := SubsetRange(w, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsMember() {
		t.Fatal("rank 0 must be a member of [0,1)")
	}
	if g.Size() != 1 {
		t.Fatalf("size = %d, want 1", g.Size())
	}
}

func TestSubsetRangeOutOfBounds(t *testing.T) {
	w := World()
	if _, err := SubsetRange(w, 1, 3); err == nil {
		t.Fatal("expected InvalidArgument-style error for out-of-range subset")
	}
}

func TestSubsetListExcludesNonMember(t *testing.T) {
	w := World()
	// empty subset: this process's rank (0) is not in the empty rank list
	g, err := SubsetList(w, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsMember() {
		t.Fatal("empty subset must not contain this process")
	}
	if g.Rank() != -1 || g.Size() != -1 {
		t.Fatalf("non-member sentinel values: rank=%d size=%d, want -1,-1", g.Rank(), g.Size())
	}
}
