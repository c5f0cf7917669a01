package broadcast

import (
	"testing"

	"github.com/oceanmesh/meshcore/machenv"
)

// In single-process mode (mpi.IsOn()==false) every group has size 1,
// so every broadcast is a local no-op that must not touch v.

func TestReal64NoopWhenSizeOne(t *testing.T) {
	g := machenv.World()
	v := 42.0
	Real64(g, 0, &v)
	if v != 42.0 {
		t.Fatalf("value mutated on size-1 group: %v", v)
	}
}

func TestStringNoopWhenSizeOne(t *testing.T) {
	g := machenv.World()
	v := "unchanged"
	String(g, 0, &v)
	if v != "unchanged" {
		t.Fatalf("value mutated on size-1 group: %q", v)
	}
}

func TestFloat64VecNoopOnNonMember(t *testing.T) {
	w := machenv.World()
	nonMember, err := machenv.SubsetList(w, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := []float64{1, 2, 3}
	Float64Vec(nonMember, 0, v)
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Fatalf("value mutated on non-member group: %v", v)
	}
}
