// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/oceanmesh/meshcore/decomp"
)

// recvGroup is one source rank's contribution to the receive list: the
// local halo indices to overwrite, paired with the global id to
// request from that rank, in ascending local-index order.
type recvGroup struct {
	localIdx []int32
	globalID []int32
}

// Engine is the built halo-exchange state for one element kind: the
// per-source-rank receive lists and the per-destination-rank send
// lists derived from them (spec.md §4.5).
type Engine struct {
	kind decomp.ElementKind

	nOwned int
	nAll   int

	transport Transport

	recv map[int]recvGroup
	send map[int][]int32 // dst rank -> this rank's own local indices to pack, in the order the dst rank expects
}

// Build derives the send/receive lists for one element kind from its
// local Space and location table (spec.md §4.5 "Construction"). The
// receive side is read directly off loc: every rank already knows,
// for each of its own halo elements, which rank owns it. The request
// sent to that owner names the global id rather than a guessed local
// index on the remote rank — decomp.Build's owner-side local
// numbering for another rank's elements is only a placeholder (see
// decomp.localOnOwner), so each owner resolves the global id against
// its own Space, which is always exact for elements it holds. The
// request list doubles as the resulting send list in the identical
// order, since the owner answers with exactly the ids asked for.
func Build(kind decomp.ElementKind, space *decomp.Space, loc []decomp.Loc, t Transport) (*Engine, error) {
	nOwned, nAll := space.NOwned, space.NAll
	if nAll < nOwned {
		return nil, chk.Err("halo: nAll (%d) < nOwned (%d)", nAll, nOwned)
	}
	if len(loc) < nAll {
		return nil, chk.Err("halo: location table has %d entries, want at least %d", len(loc), nAll)
	}
	recv := make(map[int]recvGroup)
	requests := make(map[int][]int32)
	for i := nOwned; i < nAll; i++ {
		l := loc[i]
		g := recv[l.Rank]
		g.localIdx = append(g.localIdx, int32(i))
		g.globalID = append(g.globalID, space.GlobalID[i])
		recv[l.Rank] = g
	}
	// local indices are visited in ascending order above, so each
	// group's slices are ascending too; requests reuse that same order.
	for r, g := range recv {
		requests[r] = append([]int32(nil), g.globalID...)
	}

	send := map[int][]int32{}
	if t.Size() > 1 {
		requested := t.ExchangeRequests(requests)
		for r2, gids := range requested {
			ownerLocal := make([]int32, len(gids))
			for k, gid := range gids {
				ownerLocal[k] = space.LocalOf(gid)
			}
			send[r2] = ownerLocal
		}
	}

	return &Engine{
		kind:      kind,
		nOwned:    nOwned,
		nAll:      nAll,
		transport: t,
		recv:      recv,
		send:      send,
	}, nil
}

// Kind reports the element kind this engine exchanges halos for.
func (e *Engine) Kind() decomp.ElementKind { return e.kind }

// SendRanks/RecvRanks report, in ascending order, the neighbor ranks
// this engine sends to / receives from. Exposed mainly for tests and
// diagnostics.
func (e *Engine) SendRanks() []int { return sortedKeysI32(e.send) }
func (e *Engine) RecvRanks() []int { return sortedKeysRecv(e.recv) }

func sortedKeysI32(m map[int][]int32) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedKeysRecv(m map[int]recvGroup) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
