// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertcoord

import (
	"github.com/cpmech/gosl/chk"

	"github.com/oceanmesh/meshcore/decomp"
	"github.com/oceanmesh/meshcore/halo"
	"github.com/oceanmesh/meshcore/meshio"
	"github.com/oceanmesh/meshcore/pio"
)

// ReadColumnMask loads MinLayerCell/MaxLayerCell off file into space's
// local order (spec.md §3 "vertical axis"), exchanging the halo once
// through eng if non-nil, the same decomposition-then-exchange shape
// horzmesh.Read uses for geometry.
func ReadColumnMask(file *pio.File, space *decomp.Space, nVertLayers int, eng *halo.Engine) (*ColumnMask, error) {
	minRaw, err := readInt32Field(file, meshio.VarMinLayerCell, space, eng)
	if err != nil {
		return nil, err
	}
	maxRaw, err := readInt32Field(file, meshio.VarMaxLayerCell, space, eng)
	if err != nil {
		return nil, err
	}
	return &ColumnMask{NVertLayers: nVertLayers, MinLayerCell: minRaw, MaxLayerCell: maxRaw}, nil
}

func readInt32Field(file *pio.File, names []string, space *decomp.Space, eng *halo.Engine) ([]int32, error) {
	name, err := meshio.Resolve(names, file.HasVar)
	if err != nil {
		return nil, err
	}
	offsets := make([]int64, space.NAll)
	for i := 0; i < space.NAll; i++ {
		offsets[i] = int64(space.GlobalID[i] - 1)
	}
	desc := pio.DecompDescriptor{
		IOType:        pio.Int32,
		Dims:          []int64{int64(space.NGlobal)},
		LocalLength:   space.NAll,
		GlobalOffsets: offsets,
	}
	decompID := file.CreateDecomp(desc)
	buf := make([]int32, space.NSize)
	ok, err := file.ReadArrayInt32(buf[:space.NAll], name, decompID, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, chk.Err("vertcoord: variable %q not found in mesh file", name)
	}
	if eng != nil {
		if err := halo.ExchangeInt32(eng, buf, 1); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
