// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/wire"
)

// RecvRREP handles an incoming RREP (spec.md §4.5's "RREP send/receive";
// SendRREP is implicit in armReplyTimer's destination-side reply and in
// the forward below — RREP always targets a specific reverse-entry
// next_hop with send_ttl=0, so there is no separate broadcast SendRREP
// entry point).
func (m *Machine) RecvRREP(rx aodv.RxInfo, buf []byte) error {
	var msg wire.RREP
	if err := msg.Decode(buf); err != nil {
		return err
	}
	aodv.RecordFrame(wire.OpRREP, 1, len(buf))

	if aodv.LocalMatch(m.id, msg.SrcAddr) {
		return m.recvRREPAtOriginator(&msg, rx)
	}
	return m.recvRREPIntermediate(&msg, rx)
}

func (m *Machine) recvRREPAtOriginator(msg *wire.RREP, rx aodv.RxInfo) error {
	existing := m.table.BySrcDst(m.table.Valid, msg.SrcAddr, msg.DstAddr, int32(rx.NetIdx))
	newer := existing == nil || msg.DstSeq > existing.DstSeq
	if !newer {
		return nil
	}
	if existing != nil {
		m.table.InvalidateRoute(existing, m.cfg.LifetimeValid)
	}
	e, err := m.table.AllocInvalid(m.cfg.AllocationInterval)
	if err != nil {
		return err
	}
	e.SrcAddr, e.SrcElems = msg.SrcAddr, m.id.ElemCount()
	e.DstAddr, e.DstElems = msg.DstAddr, msg.DstElems
	e.DstSeq = msg.DstSeq
	e.HopCount = msg.HopCount + 1
	e.NextHop = rx.Addr
	e.RSSI = rx.RSSI
	e.Repairable = msg.R
	e.NetIdx = rx.NetIdx
	m.table.ValidateRoute(e, m.cfg.LifetimeValid)
	m.addNeighbour(rx.Addr, rx.NetIdx)

	// hop_count 0 marks the pending entry as an RREP arrival; any nonzero
	// value would be taken by RingSearch as a RWAIT hint.
	if _, err := m.pending.Append(msg.DstAddr, 0); err != nil {
		aodv.WARN("pending-reply append after RREP failed: %s\n", err)
	}
	return nil
}

func (m *Machine) recvRREPIntermediate(msg *wire.RREP, rx aodv.RxInfo) error {
	// The reverse entry's source_address is this node's own target
	// address block (set exactly to msg.DstAddr when the RREQ receive
	// path created it), so a plain BySrcDst already resolves the
	// "source+destination+destination-range" lookup spec.md names: the
	// query address equals the entry's source_address base exactly,
	// which SrcMatch always accepts regardless of the (as yet
	// uncorrected) source_number_of_elements placeholder.
	rev := m.table.BySrcDst(m.table.Invalid, msg.DstAddr, msg.SrcAddr, int32(rx.NetIdx))
	if rev == nil {
		aodv.WARN("RREP for %d/%d: no reverse entry\n", msg.SrcAddr, msg.DstAddr)
		return nil
	}
	rev.SrcElems = msg.DstElems
	m.table.ValidateRoute(rev, m.cfg.LifetimeValid)
	m.addNeighbour(rx.Addr, rx.NetIdx)

	fwd, err := m.table.AllocInvalid(m.cfg.AllocationInterval)
	if err != nil {
		return err
	}
	fwd.SrcAddr, fwd.SrcElems = rev.DstAddr, rev.DstElems
	fwd.DstAddr, fwd.DstElems = msg.DstAddr, msg.DstElems
	fwd.DstSeq = msg.DstSeq
	fwd.HopCount = msg.HopCount + 1
	fwd.NextHop = rx.Addr
	fwd.RSSI = rx.RSSI
	fwd.Repairable = msg.R
	fwd.NetIdx = rx.NetIdx
	m.table.ValidateRoute(fwd, m.cfg.LifetimeValid)

	forwarded := *msg
	forwarded.HopCount = msg.HopCount + 1
	return m.send(wire.OpRREP, &forwarded, rev.NextHop, 0, rx.NetIdx)
}
