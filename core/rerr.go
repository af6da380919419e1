// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/auxlist"
	"github.com/intuitivelabs/aodv/rtable"
	"github.com/intuitivelabs/aodv/wire"
)

// searchCallback is the callback spec.md §4.5 invokes during both the
// link-drop walk and the RERR-receive fan-out: terminal routes (whose
// source is this node) are simply invalidated; intermediate routes are
// batched into an outbound RERR keyed by the reverse entry's next_hop.
func (m *Machine) searchCallback(e *rtable.Entry, netIdx uint16) {
	if aodv.LocalMatch(m.id, e.SrcAddr) {
		m.table.InvalidateRoute(e, m.cfg.LifetimeValid)
		m.removeNeighbourIfUnused(e.NextHop, netIdx)
		return
	}

	rev := m.table.BySrcDst(m.table.Valid, e.DstAddr, e.SrcAddr, int32(netIdx))
	if rev == nil {
		rev = m.table.BySrcDst(m.table.Invalid, e.DstAddr, e.SrcAddr, int32(netIdx))
	}
	if rev != nil {
		batch, err := m.rerrList.FindOrCreate(rev.NextHop, netIdx)
		if err != nil {
			aodv.WARN("RERR batch alloc for next_hop %d: %s\n", rev.NextHop, err)
		} else {
			m.rerrList.Append(batch, e.DstAddr, e.DstSeq)
		}
		m.table.InvalidateRoute(rev, m.cfg.LifetimeValid)
		m.removeNeighbourIfUnused(rev.NextHop, netIdx)
	}
	m.table.InvalidateRoute(e, m.cfg.LifetimeValid)
	m.removeNeighbourIfUnused(e.NextHop, netIdx)
}

// onNeighbourLost is the neighbour-list's expiry callback: the
// link-drop fan-out (spec.md §4.5's "Link drop").
func (m *Machine) onNeighbourLost(failed, netIdx uint16) {
	m.table.BySrcNetIdx(m.table.Valid, failed, netIdx, func(e *rtable.Entry, cur *rtable.Cursor) {
		m.searchCallback(e, netIdx)
	})
	m.flushRerrBatch()
}

// RecvRERR handles an incoming RERR (spec.md §4.5's "RERR receive").
func (m *Machine) RecvRERR(rx aodv.RxInfo, buf []byte) error {
	var msg wire.RERR
	if err := msg.Decode(buf); err != nil {
		return err
	}
	aodv.RecordFrame(wire.OpRERR, 1, len(buf))

	for _, d := range msg.Dests {
		m.table.ByDstNextHopNetIdx(m.table.Valid, d.Addr, rx.Addr, rx.NetIdx,
			func(e *rtable.Entry, cur *rtable.Cursor) {
				m.searchCallback(e, rx.NetIdx)
			})
	}
	m.flushRerrBatch()
	return nil
}

// flushRerrBatch encodes and ctl-sends every accumulated RERR batch
// entry to its next_hop, then frees it (spec.md §4.5: "for each RERR
// batch entry: encode and ctl-send ... then free the batch entry").
func (m *Machine) flushRerrBatch() {
	m.rerrList.Flush(func(b *auxlist.RerrBatch) {
		msg := wire.RERR{Dests: make([]wire.RERRDest, len(b.Dests))}
		for i, d := range b.Dests {
			msg.Dests[i] = wire.RERRDest{Addr: d.Addr, Seq: d.Seq}
		}
		if err := m.send(wire.OpRERR, &msg, b.NextHop, 0, b.NetIdx); err != nil {
			aodv.WARN("RERR send to %d failed: %s\n", b.NextHop, err)
		}
	})
}
