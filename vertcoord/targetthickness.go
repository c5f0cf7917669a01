// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertcoord

import "github.com/cpmech/gosl/chk"

// MovementWeightType selects one of the two built-in weight profiles
// of spec.md §4.8; Config.VertCoord.MovementWeightType (spec.md §6)
// selects this at startup.
type MovementWeightType int

const (
	// FixedWeight puts all of a column's mass change into layer
	// MinLayerCell; every other active layer gets weight 0.
	FixedWeight MovementWeightType = iota
	// UniformWeight gives every active layer an equal share.
	UniformWeight
)

// ParseMovementWeightType maps the two config-string values spec.md §6
// names to a MovementWeightType.
func ParseMovementWeightType(s string) (MovementWeightType, error) {
	switch s {
	case "Fixed":
		return FixedWeight, nil
	case "Uniform":
		return UniformWeight, nil
	default:
		return 0, chk.Err("vertcoord: unknown VertCoord.MovementWeightType %q", s)
	}
}

// ColumnWeights returns column c's per-layer movement weight w[k] and
// their sum W[c] over the active range (spec.md §4.8), zero outside
// [MinLayerCell, MaxLayerCell]. len(w) == nLevels.
func ColumnWeights(profile MovementWeightType, mask *ColumnMask, c, nLevels int) (w []float64, W float64) {
	w = make([]float64, nLevels)
	if mask.IsDry(c) {
		return w, 0
	}
	kMin, kMax := int(mask.MinLayerCell[c]), int(mask.MaxLayerCell[c])
	switch profile {
	case FixedWeight:
		w[kMin] = 1
		W = 1
	case UniformWeight:
		for k := kMin; k <= kMax; k++ {
			w[k] = 1
		}
		W = float64(kMax - kMin + 1)
	}
	return w, W
}

// ComputeTargetThickness distributes a column's surface-pressure
// perturbation among its active layers in proportion to a movement
// weight profile (spec.md §4.8): h_target[c,k] = h_ref[c,k] +
// w[k]·ΔP[c] / (g·ρ0·W[c]). deltaP[c] = pSurface[c] - pAtmRef is the
// caller's responsibility (spec.md §4.8 names ΔP directly as an
// input here rather than re-deriving pAtmRef, which is a forcing
// field outside this module's scope).
func ComputeTargetThickness(profile MovementWeightType, mask *ColumnMask, hRef, deltaP []float64, g, rho0 float64, nLevels int) []float64 {
	nCells := len(mask.MaxLayerCell)
	hTarget := make([]float64, nCells*nLevels)
	copy(hTarget, hRef)
	for c := 0; c < nCells; c++ {
		if mask.IsDry(c) {
			continue
		}
		w, W := ColumnWeights(profile, mask, c, nLevels)
		if W == 0 {
			continue
		}
		kMin, kMax := int(mask.MinLayerCell[c]), int(mask.MaxLayerCell[c])
		for k := kMin; k <= kMax; k++ {
			hTarget[c*nLevels+k] = hRef[c*nLevels+k] + w[k]*deltaP[c]/(g*rho0*W)
		}
	}
	return hTarget
}
