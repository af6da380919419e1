// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"time"

	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/rtable"
	"github.com/intuitivelabs/aodv/wire"
)

// rreqSafetyFactor bounds how long a reverse-invalid entry is allowed to
// sit un-validated before it is reclaimed as a dead man's switch. At the
// destination the real RREQ_WAIT deadline is tracked by the explicit
// timer armed in armReplyTimer, which always fires first in normal
// operation and validates the entry before this one could; at a relay
// the entry must outlive that same RREQ_WAIT delay downstream so the
// returning RREP still finds it.
const rreqSafetyFactor = 4

// SendRREQ emits an RREQ at the given TTL/net_idx (spec.md §4.5 "RREQ
// send"). next-hop defaults to broadcast; if msg.I is set and a valid
// entry to the destination exists, the RREQ is instead sent directed to
// that entry's next_hop (the intermediate-node shortcut).
func (m *Machine) SendRREQ(msg wire.RREQ, ttl uint8, netIdx uint16) error {
	nextHop := aodv.AllNodes
	if msg.I {
		if e := m.table.ByDst(m.table.Valid, msg.DstAddr, int32(netIdx)); e != nil {
			nextHop = e.NextHop
		}
	}
	return m.send(wire.OpRREQ, &msg, nextHop, ttl, netIdx)
}

// allocReverseEntry unconditionally allocates a fresh reverse-direction
// invalid entry (source=msg.DstAddr, destination=msg.SrcAddr): the
// caller is responsible for having already established that no such
// entry exists.
func (m *Machine) allocReverseEntry(msg *wire.RREQ, hop uint8, rssi int8, rx aodv.RxInfo, dur time.Duration) (*rtable.Entry, error) {
	e, err := m.table.AllocInvalid(dur)
	if err != nil {
		return nil, err
	}
	e.SrcAddr, e.SrcElems = msg.DstAddr, m.id.ElemCount()
	e.DstAddr, e.DstElems = msg.SrcAddr, msg.SrcElems
	e.DstSeq = msg.SrcSeq
	e.HopCount = hop
	e.NextHop = rx.Addr
	e.RSSI = rssi
	e.NetIdx = rx.NetIdx
	return e, nil
}

// armReplyTimer schedules the RREQ_WAIT deadline at which a destination
// node validates its reverse entry and replies with an RREP (spec.md
// §4.5's "arm a callback-timer of length RREQ_WAIT; on expiry the entry
// is validated and a RREP is sent back along the reverse route").
func (m *Machine) armReplyTimer(e *rtable.Entry, originator, dst, netIdx uint16) {
	time.AfterFunc(m.cfg.RREQWait, func() {
		m.table.ValidateRoute(e, m.cfg.LifetimeValid)
		m.addNeighbour(e.NextHop, netIdx)
		rep := wire.RREP{
			SrcAddr:  originator,
			DstAddr:  dst,
			DstSeq:   m.id.CurrentSeq(),
			HopCount: 0,
			DstElems: m.id.ElemCount(),
		}
		if err := m.send(wire.OpRREP, &rep, e.NextHop, 0, netIdx); err != nil {
			aodv.WARN("RREP send to %d failed: %s\n", e.NextHop, err)
		}
	})
}

// RecvRREQ handles an incoming RREQ (spec.md §4.5's "RREQ receive").
func (m *Machine) RecvRREQ(rx aodv.RxInfo, buf []byte) error {
	var msg wire.RREQ
	if err := msg.Decode(buf); err != nil {
		return err
	}
	aodv.RecordFrame(wire.OpRREQ, 1, len(buf))

	if aodv.LocalMatch(m.id, msg.SrcAddr) {
		return aodv.ErrLocalSource
	}

	hop := msg.HopCount + 1
	rssiAvg := averageRSSI(msg.RSSI, msg.HopCount, rx.RSSI)

	if aodv.LocalMatch(m.id, msg.DstAddr) {
		return m.recvRREQAtDestination(&msg, hop, rssiAvg, rx)
	}
	if m.id.RelayEnabled() {
		return m.recvRREQRelay(&msg, hop, rssiAvg, rx)
	}
	return nil
}

func (m *Machine) recvRREQAtDestination(msg *wire.RREQ, hop uint8, rssi int8, rx aodv.RxInfo) error {
	if m.table.BySrcDst(m.table.Valid, msg.DstAddr, msg.SrcAddr, int32(rx.NetIdx)) != nil {
		return aodv.ErrAlreadyReplied
	}
	if inv := m.table.BySrcDst(m.table.Invalid, msg.DstAddr, msg.SrcAddr, int32(rx.NetIdx)); inv != nil {
		if rtable.BetterRoute(inv, hop, rssi, m.cfg.RSSIMin) {
			inv.DstSeq, inv.HopCount, inv.NextHop, inv.RSSI = msg.SrcSeq, hop, rx.Addr, rssi
		}
		return nil
	}
	e, err := m.allocReverseEntry(msg, hop, rssi, rx, rreqSafetyFactor*m.cfg.RREQWait)
	if err != nil {
		return err
	}
	m.armReplyTimer(e, msg.SrcAddr, msg.DstAddr, rx.NetIdx)
	return nil
}

func (m *Machine) recvRREQRelay(msg *wire.RREQ, hop uint8, rssi int8, rx aodv.RxInfo) error {
	valid := m.table.ByDst(m.table.Valid, msg.DstAddr, int32(rx.NetIdx))
	shortcut := valid != nil && !msg.D && !msg.I

	rev := m.table.BySrcDst(m.table.Invalid, msg.DstAddr, msg.SrcAddr, int32(rx.NetIdx))
	fresh := rev == nil
	if fresh {
		var err error
		rev, err = m.allocReverseEntry(msg, hop, rssi, rx, rreqSafetyFactor*m.cfg.RREQWait)
		if err != nil {
			return err
		}
	}

	// The shortcut and pure-relay cases are mutually exclusive: a node
	// with a route whose stored destination_sequence_number is stale
	// relative to the RREQ's does nothing further here, it does not fall
	// back to relaying.
	if shortcut {
		if valid.DstSeq >= msg.DstSeq {
			directed := *msg
			directed.I = true
			directed.DstSeq = valid.DstSeq
			directed.U = false
			if err := m.SendRREQ(directed, rx.RecvTTL-1, rx.NetIdx); err != nil {
				aodv.WARN("directed RREQ send failed: %s\n", err)
			}
			wt := wire.RWAIT{
				DstAddr:  msg.DstAddr,
				SrcAddr:  msg.SrcAddr,
				SrcSeq:   msg.SrcSeq,
				HopCount: valid.HopCount,
			}
			if err := m.send(wire.OpRWAIT, &wt, rx.Addr, 0, rx.NetIdx); err != nil {
				aodv.WARN("RWAIT send failed: %s\n", err)
			}
		}
		return nil
	}

	// pure relay: refresh the reverse entry if this RREQ carries a newer
	// sequence, drop it silently (already current) otherwise.
	if !fresh {
		if rev.DstSeq >= msg.SrcSeq {
			return nil
		}
		m.table.RefreshInvalid(rev, rreqSafetyFactor*m.cfg.RREQWait)
		rev.DstSeq, rev.HopCount, rev.NextHop, rev.RSSI = msg.SrcSeq, hop, rx.Addr, rssi
	}
	relayed := *msg
	relayed.HopCount = hop
	return m.SendRREQ(relayed, rx.RecvTTL-1, rx.NetIdx)
}
