// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the hierarchical configuration tree the
// core reads at startup. It follows the teacher's inp.Data convention
// of JSON-tagged struct groups (see inp/sim.go) rather than a generic
// key-value map, so the required keys in spec.md §6 are typed and
// validated once, at load time.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DecompMethod selects the cell-partitioning algorithm.
type DecompMethod string

// Supported partitioner selections (spec.md §6, §4.4).
const (
	MetisKway    DecompMethod = "metisKway"
	ParmetisKway DecompMethod = "parmetisKway"
)

// Rearranger selects the I/O data-rearranging strategy.
type Rearranger string

// Supported rearranger selections (spec.md §6, §4.2).
const (
	RearrangerBox     Rearranger = "box"
	RearrangerSubset  Rearranger = "subset"
	RearrangerDefault Rearranger = "default"
)

// MovementWeightType selects the vertical target-thickness weight profile.
type MovementWeightType string

// Supported weight profiles (spec.md §4.8, §6).
const (
	WeightFixed   MovementWeightType = "Fixed"
	WeightUniform MovementWeightType = "Uniform"
)

// Decomp holds Decomp.* configuration keys.
type Decomp struct {
	HaloWidth    int          `json:"haloWidth"`
	DecompMethod DecompMethod `json:"decompMethod"`
}

// IO holds IO.* configuration keys.
type IO struct {
	IODefaultFormat string     `json:"ioDefaultFormat"`
	IOTasks         int        `json:"ioTasks"`
	IOStride        int        `json:"ioStride"`
	IOBaseTask      int        `json:"ioBaseTask"`
	IORearranger    Rearranger `json:"ioRearranger"`
}

// VertCoord holds VertCoord.* configuration keys.
type VertCoord struct {
	MovementWeightType MovementWeightType `json:"movementWeightType"`
}

// Config is the full hierarchical tree the core consumes.
type Config struct {
	Decomp    Decomp    `json:"decomp"`
	IO        IO        `json:"io"`
	VertCoord VertCoord `json:"vertCoord"`
}

// Default returns the configuration the core falls back to when a
// driver does not override a group; IOTasks==0 means "use MyNproc".
func Default() *Config {
	return &Config{
		Decomp: Decomp{
			HaloWidth:    2,
			DecompMethod: MetisKway,
		},
		IO: IO{
			IODefaultFormat: "pnetcdf",
			IOTasks:         0,
			IOStride:        1,
			IOBaseTask:      0,
			IORearranger:    RearrangerBox,
		},
		VertCoord: VertCoord{
			MovementWeightType: WeightUniform,
		},
	}
}

// Load reads a JSON configuration file and validates the keys the
// core requires, following inp.ReadSim's read-then-validate shape.
func Load(filename string) (cfg *Config, err error) {
	buf, err := io.ReadFile(filename)
	if err != nil {
		return nil, chk.Err("config: cannot read %q: %v", filename, err)
	}
	cfg = Default()
	if err = json.Unmarshal(buf, cfg); err != nil {
		return nil, chk.Err("config: cannot parse %q: %v", filename, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the core depends on, returning a
// recoverable error (spec.md §7) rather than aborting directly; the
// driver decides whether a bad config is fatal.
func (c *Config) Validate() error {
	if c.Decomp.HaloWidth < 1 {
		return chk.Err("config: Decomp.HaloWidth must be >= 1, got %d", c.Decomp.HaloWidth)
	}
	switch c.Decomp.DecompMethod {
	case MetisKway, ParmetisKway:
	default:
		return chk.Err("config: Decomp.DecompMethod %q is not one of {metisKway,parmetisKway}", c.Decomp.DecompMethod)
	}
	switch c.IO.IORearranger {
	case RearrangerBox, RearrangerSubset, RearrangerDefault:
	default:
		return chk.Err("config: IO.IORearranger %q is not one of {box,subset,default}", c.IO.IORearranger)
	}
	switch c.VertCoord.MovementWeightType {
	case WeightFixed, WeightUniform:
	default:
		return chk.Err("config: VertCoord.MovementWeightType %q is not one of {Fixed,Uniform}", c.VertCoord.MovementWeightType)
	}
	if c.IO.IOStride < 1 {
		return chk.Err("config: IO.IOStride must be >= 1, got %d", c.IO.IOStride)
	}
	return nil
}
