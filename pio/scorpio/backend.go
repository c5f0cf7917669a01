// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scorpio is the default pio.Backend: an in-repo stand-in for
// the SCORPIO library gofem-class models link against in production.
// No such cgo binding exists anywhere in the retrieved corpus
// (DESIGN.md), so this package models the same contract — a "box"
// rearranger scattering each rank's local elements to their row-major
// global offset — over a flat per-variable binary segment plus a JSON
// sidecar metadata file. Data bytes go through os.File; gosl/io reads
// the sidecar file the same way inp.ReadSim reads the teacher's own
// input files.
package scorpio

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cpmech/gosl/io"

	"github.com/oceanmesh/meshcore/pio"
)

// varInfo is the on-disk record for one defined variable.
type varInfo struct {
	ID       int            `json:"id"`
	Type     pio.ScalarType `json:"type"`
	DimNames []string       `json:"dimNames"`
	Offset   int64          `json:"offset"` // byte offset of this variable's segment within the data file
}

type fileMeta struct {
	Dims    map[string]int64     `json:"dims"`
	Vars    map[string]*varInfo  `json:"vars"`
	Scalars map[string]scalarRec `json:"scalars"`
	NextVar int                  `json:"nextVar"`
	NextOff int64                `json:"nextOff"`
}

type scalarRec struct {
	Type  pio.ScalarType `json:"type"`
	Value interface{}    `json:"value"`
}

func newMeta() *fileMeta {
	return &fileMeta{
		Dims:    make(map[string]int64),
		Vars:    make(map[string]*varInfo),
		Scalars: make(map[string]scalarRec),
	}
}

// handle is the open-file state: the backing data file plus its JSON
// metadata sidecar (path+".meta.json").
type handle struct {
	mu       sync.Mutex
	dataPath string
	metaPath string
	data     *os.File
	meta     *fileMeta
	mode     pio.FileMode
}

// decompEntry records a registered decomposition for this process.
type decompEntry struct {
	desc pio.DecompDescriptor
}

// Backend implements pio.Backend. A single Backend instance may serve
// many open files; decomposition descriptors are process-local and
// keyed by a monotonically increasing id.
type Backend struct {
	mu       sync.Mutex
	decomps  []decompEntry
}

// New returns a fresh scorpio backend.
func New() *Backend {
	return &Backend{}
}

func metaPathFor(path string) string { return path + ".meta.json" }

// Open implements pio.Backend.
func (b *Backend) Open(path string, mode pio.FileMode) (pio.Handle, error) {
	h := &handle{dataPath: path, metaPath: metaPathFor(path), mode: mode}
	switch mode {
	case pio.ModeRead:
		buf, err := io.ReadFile(h.metaPath)
		if err != nil {
			return nil, fmt.Errorf("scorpio: cannot open %q for read: %v", path, err)
		}
		h.meta = newMeta()
		if err := json.Unmarshal(buf, h.meta); err != nil {
			return nil, fmt.Errorf("scorpio: corrupt metadata for %q: %v", path, err)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("scorpio: cannot open data file %q: %v", path, err)
		}
		h.data = f
	case pio.ModeWriteFailIfExists:
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("scorpio: %q already exists", path)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("scorpio: cannot create %q: %v", path, err)
		}
		h.data = f
		h.meta = newMeta()
	case pio.ModeWriteReplace:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("scorpio: cannot create %q: %v", path, err)
		}
		h.data = f
		h.meta = newMeta()
	case pio.ModeWriteAppend:
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			return nil, fmt.Errorf("scorpio: cannot open %q for append: %v", path, err)
		}
		h.data = f
		if buf, err := io.ReadFile(h.metaPath); err == nil {
			h.meta = newMeta()
			json.Unmarshal(buf, h.meta)
		} else {
			h.meta = newMeta()
		}
	default:
		return nil, fmt.Errorf("scorpio: unknown file mode %d", mode)
	}
	return h, nil
}

// Close flushes metadata (for write modes) and closes the data file.
func (b *Backend) Close(hh pio.Handle) error {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mode != pio.ModeRead {
		buf, err := json.MarshalIndent(h.meta, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(h.metaPath, buf, 0644); err != nil {
			return err
		}
	}
	return h.data.Close()
}

// CreateDecomp registers desc and returns a process-local id.
func (b *Backend) CreateDecomp(desc pio.DecompDescriptor) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := len(b.decomps)
	b.decomps = append(b.decomps, decompEntry{desc: desc})
	return id, nil
}

// DefineVar records a new variable without allocating data space
// (Offset -1). Its segment is allocated on the first WriteArray, sized
// as the product of that decomposition's Dims times elemSize; the
// named dimensions are stored but not used for sizing.
func (b *Backend) DefineVar(hh pio.Handle, name string, t pio.ScalarType, dimNames []string) (int, error) {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.meta.Vars[name]; ok {
		return v.ID, nil
	}
	id := h.meta.NextVar
	h.meta.NextVar++
	h.meta.Vars[name] = &varInfo{ID: id, Type: t, DimNames: dimNames, Offset: -1}
	return id, nil
}

func (b *Backend) DefineDim(hh pio.Handle, name string, length int64) error {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meta.Dims[name] = length
	return nil
}

func (b *Backend) HasVar(hh pio.Handle, name string) bool {
	h := hh.(*handle)
	_, ok := h.meta.Vars[name]
	return ok
}

func (b *Backend) HasDim(hh pio.Handle, name string) bool {
	h := hh.(*handle)
	_, ok := h.meta.Dims[name]
	return ok
}

func (b *Backend) DimLength(hh pio.Handle, name string) (int64, bool) {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.meta.Dims[name]
	return n, ok
}

// ReadArray reads this rank's local slots out of the named variable's
// segment using the registered decomposition's GlobalOffsets. A
// missing variable is reported as ok=false, err=nil (recoverable) so
// meshio.Resolve's candidate-name retry can proceed.
func (b *Backend) ReadArray(hh pio.Handle, buf []byte, elemSize int, varName string, decompID int, frame int) (bool, error) {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	vi, ok := h.meta.Vars[varName]
	if !ok {
		return false, nil
	}
	desc := b.decomps[decompID].desc
	n := desc.LocalLength
	for i := 0; i < n; i++ {
		off := desc.GlobalOffsets[i]
		if off < 0 {
			continue // unmapped slot: leave buf untouched, per spec.md §4.2
		}
		at := vi.Offset + off*int64(elemSize)
		if _, err := h.data.ReadAt(buf[i*elemSize:(i+1)*elemSize], at); err != nil {
			return false, fmt.Errorf("scorpio: read %q at offset %d: %v", varName, at, err)
		}
	}
	return true, nil
}

// WriteArray writes this rank's local slots into the named variable's
// segment, allocating the segment on first write. Unmapped slots are
// skipped (conceptually filled elsewhere with fillValue by a
// cooperating rank, or left as the file's zero-fill, matching the
// decomposition contract of spec.md §4.2).
func (b *Backend) WriteArray(hh pio.Handle, buf []byte, elemSize int, fillValue []byte, varID int, decompID int, frame int) error {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	var vi *varInfo
	for _, v := range h.meta.Vars {
		if v.ID == varID {
			vi = v
			break
		}
	}
	if vi == nil {
		return fmt.Errorf("scorpio: writeArray: unknown varID %d", varID)
	}
	if vi.Offset < 0 {
		vi.Offset = h.meta.NextOff
		desc := b.decomps[decompID].desc
		total := int64(1)
		for _, d := range desc.Dims {
			total *= d
		}
		h.meta.NextOff += total * int64(elemSize)
	}
	desc := b.decomps[decompID].desc
	n := desc.LocalLength
	for i := 0; i < n; i++ {
		off := desc.GlobalOffsets[i]
		if off < 0 {
			continue
		}
		at := vi.Offset + off*int64(elemSize)
		if _, err := h.data.WriteAt(buf[i*elemSize:(i+1)*elemSize], at); err != nil {
			return fmt.Errorf("scorpio: write %q at offset %d: %v", varID, at, err)
		}
	}
	return nil
}

func (b *Backend) ReadScalar(hh pio.Handle, name string, t pio.ScalarType) (interface{}, bool, error) {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, ok := h.meta.Scalars[name]
	if !ok {
		return nil, false, nil
	}
	return rec.Value, true, nil
}

func (b *Backend) WriteScalar(hh pio.Handle, name string, t pio.ScalarType, value interface{}) error {
	h := hh.(*handle)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meta.Scalars[name] = scalarRec{Type: t, Value: value}
	return nil
}
