// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pio

import (
	"encoding/binary"
	"math"

	"github.com/cpmech/gosl/chk"
)

// ReadArrayReal64 reads a decomposed float64 array. ok==false with
// err==nil means "variable not found", the recoverable case the mesh
// reader retries under a legacy name (spec.md §4.2).
func (f *File) ReadArrayReal64(buf []float64, varName string, decompID int, frame int) (ok bool, err error) {
	raw := make([]byte, 8*len(buf))
	ok, err = f.backend.ReadArray(f.handle, raw, 8, varName, decompID, frame)
	if err != nil || !ok {
		return ok, err
	}
	for i := range buf {
		buf[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return true, nil
}

// WriteArrayReal64 writes a decomposed float64 array. Local entries
// with GlobalOffsets[i]==-1 are skipped by the backend; the scorpio
// backend passes fillValue through but does not write it to any slot.
// Aborts on backend error (spec.md §4.2).
func (f *File) WriteArrayReal64(buf []float64, fillValue float64, varID, decompID int, frame int) {
	raw := make([]byte, 8*len(buf))
	for i, v := range buf {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	fv := make([]byte, 8)
	binary.LittleEndian.PutUint64(fv, math.Float64bits(fillValue))
	if err := f.backend.WriteArray(f.handle, raw, 8, fv, varID, decompID, frame); err != nil {
		chk.Panic("pio: writeArray failed: %v", err)
	}
}

// ReadArrayInt32 / WriteArrayInt32 are the integer-typed counterparts,
// used for the connectivity tables (CellsOnCell et al.).
func (f *File) ReadArrayInt32(buf []int32, varName string, decompID int, frame int) (ok bool, err error) {
	raw := make([]byte, 4*len(buf))
	ok, err = f.backend.ReadArray(f.handle, raw, 4, varName, decompID, frame)
	if err != nil || !ok {
		return ok, err
	}
	for i := range buf {
		buf[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return true, nil
}

func (f *File) WriteArrayInt32(buf []int32, fillValue int32, varID, decompID int, frame int) {
	raw := make([]byte, 4*len(buf))
	for i, v := range buf {
		binary.LittleEndian.PutUint32(raw[4*i:], uint32(v))
	}
	fv := make([]byte, 4)
	binary.LittleEndian.PutUint32(fv, uint32(fillValue))
	if err := f.backend.WriteArray(f.handle, raw, 4, fv, varID, decompID, frame); err != nil {
		chk.Panic("pio: writeArray failed: %v", err)
	}
}

// ReadScalarReal64 / WriteScalarReal64 and the string variant cover
// the non-distributed typed metadata path (spec.md §4.2).
func (f *File) ReadScalarReal64(name string) (value float64, ok bool, err error) {
	v, ok, err := f.backend.ReadScalar(f.handle, name, Real64)
	if !ok || err != nil {
		return 0, ok, err
	}
	return v.(float64), true, nil
}

func (f *File) WriteScalarReal64(name string, value float64) {
	if err := f.backend.WriteScalar(f.handle, name, Real64, value); err != nil {
		chk.Panic("pio: writeScalar %q failed: %v", name, err)
	}
}

func (f *File) ReadScalarString(name string) (value string, ok bool, err error) {
	v, ok, err := f.backend.ReadScalar(f.handle, name, String)
	if !ok || err != nil {
		return "", ok, err
	}
	return v.(string), true, nil
}

func (f *File) WriteScalarString(name string, value string) {
	if err := f.backend.WriteScalar(f.handle, name, String, value); err != nil {
		chk.Panic("pio: writeScalar %q failed: %v", name, err)
	}
}
