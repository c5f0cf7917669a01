// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertcoord

// ComputeZHeight accumulates interface heights upward from the seafloor
// (spec.md §4.8 "analogous accumulation from the bottom upward using
// specific volume"), the mirror image of ComputeHydrostaticPressure:
// Ziface[c,Kmax+1] = seafloorZ[c], and for k from Kmax down to Kmin,
// Ziface[c,k] = Ziface[c,k+1] + specificVolume[c,k]·(Piface[c,k+1] -
// Piface[c,k])/g, the discrete hydrostatic relation dz = α·dP/g.
// specificVolume is a caller-supplied array (spec.md §1 non-goals keep
// the equation of state itself an external collaborator; Testable
// Property #3 exercises only this module's field layout and kernel
// dispatch by feeding in a fixture specific-volume value).
func ComputeZHeight(mask *ColumnMask, specificVolume, piface, seafloorZ []float64, g float64, nLevels int) (ziface, zmid []float64) {
	nCells := len(mask.MaxLayerCell)
	ziface = make([]float64, nCells*(nLevels+1))
	zmid = make([]float64, nCells*nLevels)
	for c := 0; c < nCells; c++ {
		if mask.IsDry(c) {
			continue
		}
		kMin, kMax := int(mask.MinLayerCell[c]), int(mask.MaxLayerCell[c])
		ziface[c*(nLevels+1)+kMax+1] = seafloorZ[c]
		for k := kMax; k >= kMin; k-- {
			dp := piface[c*(nLevels+1)+k+1] - piface[c*(nLevels+1)+k]
			bot := ziface[c*(nLevels+1)+k+1]
			top := bot + specificVolume[c*nLevels+k]*dp/g
			ziface[c*(nLevels+1)+k] = top
			zmid[c*nLevels+k] = 0.5 * (top + bot)
		}
	}
	return ziface, zmid
}
