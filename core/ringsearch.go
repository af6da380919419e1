// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"time"

	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/auxlist"
	"github.com/intuitivelabs/aodv/wire"
)

// ringSearchInitialTTL is 2: TTL=1 is reserved by the mesh spec for
// single-hop-only transmissions (spec.md §4.5).
const ringSearchInitialTTL = 2

// RingSearch implements expanding-ring search (spec.md §4.5's "Ring
// search (caller-blocking)"), called by the transport when it has no
// valid route to dst. It blocks the caller until a route is learned or
// the search is abandoned at RingSearchMaxTTL.
//
// The original design busy-polls the pending-reply list every 50ms; the
// Design Notes (spec.md §9) call that out for replacement, so this
// instead blocks on auxlist.PendingList's condition variable — woken
// either by a matching pending-reply entry (RecvRREP/RecvRWAIT appending
// one) or by the ring timer's own deadline passing.
func (m *Machine) RingSearch(dst uint16, netIdx uint16) error {
	ttl := uint8(ringSearchInitialTTL)
	waitInterval := m.cfg.RingSearchWaitInterval

	for {
		if err := m.sendRingRREQ(dst, ttl, netIdx); err != nil {
			return err
		}
		deadline := time.Now().Add(waitInterval)

		for {
			e, ok := m.pending.WaitMatch(deadline, func(e *auxlist.PendingEntry) bool {
				return e.DstAddr == dst
			})
			if !ok {
				break // ring timer expired: bump TTL below
			}
			if e.HopCount != 0 {
				// RWAIT hint: stop/restart the ring timer at 4x the base
				// interval and keep waiting (spec.md §4.5 step 2).
				waitInterval = 4 * m.cfg.RingSearchWaitInterval
				deadline = time.Now().Add(waitInterval)
				continue
			}
			return nil // RREP arrived
		}

		ttl++
		if ttl >= m.cfg.RingSearchMaxTTL {
			return aodv.ErrNoReply
		}
		waitInterval = m.cfg.RingSearchWaitInterval
	}
}

func (m *Machine) sendRingRREQ(dst uint16, ttl uint8, netIdx uint16) error {
	msg := wire.RREQ{
		SrcAddr:  m.id.PrimaryAddr(),
		DstAddr:  dst,
		SrcElems: m.id.ElemCount(),
		U:        true,
		SrcSeq:   m.id.CurrentSeq(),
	}
	return m.SendRREQ(msg, ttl, netIdx)
}
