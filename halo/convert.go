// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"encoding/binary"
	"math"
)

// int32sToFloats/floatsToInt32s carry index lists over the same
// float64 wire encoding broadcast.bcastFloats uses, so ExchangeRequests
// can reuse a single scalar transport regardless of backend.
func int32sToFloats(v []int32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func floatsToInt32s(v []float64) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

// int64sToFloats/floatsToInt64s carry the wider integer width over the
// same float64 wire, same narrowing broadcast.Int64Vec already accepts
// for values beyond float64's 53-bit exact-integer range.
func int64sToFloats(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func floatsToInt64s(v []float64) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}

// boolsToFloats/floatsToBools code each boolean as 0/1, the same
// convention broadcast.Bool uses.
func boolsToFloats(v []bool) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x {
			out[i] = 1
		}
	}
	return out
}

func floatsToBools(v []float64) []bool {
	out := make([]bool, len(v))
	for i, x := range v {
		out[i] = x != 0
	}
	return out
}

// stringsToFloats/floatsToStrings code each string as a fixed-width
// byte field of width bytes (truncated or zero-padded), the same
// fixed-length character-array convention NetCDF-style mesh formats
// use for string variables; each byte then rides the same float64
// wire encoding as every other scalar type.
func stringsToFloats(v []string, width int) []float64 {
	out := make([]float64, len(v)*width)
	for i, s := range v {
		b := []byte(s)
		if len(b) > width {
			b = b[:width]
		}
		for k, c := range b {
			out[i*width+k] = float64(c)
		}
	}
	return out
}

func floatsToStrings(v []float64, width int) []string {
	out := make([]string, len(v)/width)
	for i := range out {
		b := make([]byte, 0, width)
		for k := 0; k < width; k++ {
			c := byte(v[i*width+k])
			if c == 0 {
				break
			}
			b = append(b, c)
		}
		out[i] = string(b)
	}
	return out
}

// bytesToFloats/floatsToBytes reinterpret a byte buffer as a float64
// slice using a fixed little-endian encoding, the wire format Exchange
// packs payload buffers into regardless of the field's native scalar
// type (pio/array.go uses the same binary.LittleEndian + math.Float64bits
// convention for on-disk arrays).
func bytesToFloats(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		bits := binary.LittleEndian.Uint64(b[i*8:])
		out[i] = math.Float64frombits(bits)
	}
	return out
}

func floatsToBytes(v []float64) []byte {
	out := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(x))
	}
	return out
}
