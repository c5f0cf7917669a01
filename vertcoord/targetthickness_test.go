// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertcoord

import "testing"

func TestParseMovementWeightType(t *testing.T) {
	if got, err := ParseMovementWeightType("Fixed"); err != nil || got != FixedWeight {
		t.Fatalf("Fixed: got %v, %v", got, err)
	}
	if got, err := ParseMovementWeightType("Uniform"); err != nil || got != UniformWeight {
		t.Fatalf("Uniform: got %v, %v", got, err)
	}
	if _, err := ParseMovementWeightType("Bogus"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestColumnWeightsFixedPutsAllMassInFirstActiveLayer(t *testing.T) {
	nLevels := 4
	mask := &ColumnMask{NVertLayers: nLevels, MinLayerCell: []int32{1}, MaxLayerCell: []int32{3}}
	w, W := ColumnWeights(FixedWeight, mask, 0, nLevels)
	if W != 1 {
		t.Fatalf("W = %v, want 1", W)
	}
	for k, wk := range w {
		want := 0.0
		if k == 1 {
			want = 1
		}
		if wk != want {
			t.Fatalf("w[%d] = %v, want %v", k, wk, want)
		}
	}
}

func TestColumnWeightsUniformSharesEqually(t *testing.T) {
	nLevels := 5
	mask := &ColumnMask{NVertLayers: nLevels, MinLayerCell: []int32{1}, MaxLayerCell: []int32{3}}
	w, W := ColumnWeights(UniformWeight, mask, 0, nLevels)
	if W != 3 {
		t.Fatalf("W = %v, want 3", W)
	}
	for k, wk := range w {
		want := 0.0
		if k >= 1 && k <= 3 {
			want = 1
		}
		if wk != want {
			t.Fatalf("w[%d] = %v, want %v", k, wk, want)
		}
	}
}

func TestComputeTargetThicknessFixedProfile(t *testing.T) {
	nLevels := 3
	mask := &ColumnMask{NVertLayers: nLevels, MinLayerCell: []int32{0}, MaxLayerCell: []int32{2}}
	hRef := []float64{1, 2, 3}
	deltaP := []float64{10}
	g, rho0 := 2.0, 5.0

	got := ComputeTargetThickness(FixedWeight, mask, hRef, deltaP, g, rho0, nLevels)

	want := []float64{1 + 10/(g*rho0), 2, 3}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("hTarget[%d] = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestComputeTargetThicknessUniformProfileConservesTotal(t *testing.T) {
	nLevels := 4
	mask := &ColumnMask{NVertLayers: nLevels, MinLayerCell: []int32{0}, MaxLayerCell: []int32{3}}
	hRef := []float64{1, 1, 1, 1}
	deltaP := []float64{8}
	g, rho0 := 2.0, 1.0

	got := ComputeTargetThickness(UniformWeight, mask, hRef, deltaP, g, rho0, nLevels)

	var sumDelta float64
	for k := 0; k < nLevels; k++ {
		sumDelta += got[k] - hRef[k]
	}
	wantSumDelta := deltaP[0] / (g * rho0)
	if diff := sumDelta - wantSumDelta; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("sum of thickness perturbation = %v, want %v", sumDelta, wantSumDelta)
	}
}

func TestComputeTargetThicknessSkipsDryColumn(t *testing.T) {
	nLevels := 2
	mask := &ColumnMask{NVertLayers: nLevels, MinLayerCell: []int32{0}, MaxLayerCell: []int32{DryColumn}}
	hRef := []float64{5, 6}
	deltaP := []float64{100}
	got := ComputeTargetThickness(UniformWeight, mask, hRef, deltaP, 9.8, 1000, nLevels)
	for k, want := range hRef {
		if got[k] != want {
			t.Fatalf("dry column hTarget[%d] = %v, want unchanged %v", k, got[k], want)
		}
	}
}
