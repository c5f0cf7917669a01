// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertcoord

// ComputeHydrostaticPressure accumulates interface pressures downward
// through a column (spec.md §4.8): Piface[c,Kmin] = P0[c],
// Piface[c,k+1] = Piface[c,k] + g·ρ0·h[c,k]. h and Piface are
// cell-major arrays with nLevels+1 entries per cell for Piface and
// nLevels for h and Pmid; dry columns and layers outside
// [MinLayerCell, MaxLayerCell] are left zero.
func ComputeHydrostaticPressure(mask *ColumnMask, h, p0 []float64, g, rho0 float64, nLevels int) (piface, pmid []float64) {
	nCells := len(mask.MaxLayerCell)
	piface = make([]float64, nCells*(nLevels+1))
	pmid = make([]float64, nCells*nLevels)
	for c := 0; c < nCells; c++ {
		if mask.IsDry(c) {
			continue
		}
		kMin, kMax := int(mask.MinLayerCell[c]), int(mask.MaxLayerCell[c])
		piface[c*(nLevels+1)+kMin] = p0[c]
		for k := kMin; k <= kMax; k++ {
			top := piface[c*(nLevels+1)+k]
			bot := top + g*rho0*h[c*nLevels+k]
			piface[c*(nLevels+1)+k+1] = bot
			pmid[c*nLevels+k] = 0.5 * (top + bot)
		}
	}
	return piface, pmid
}
