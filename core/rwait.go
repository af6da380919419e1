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

// RecvRWAIT handles an incoming RWAIT ring-search delay hint (spec.md
// §4.5's "RWAIT receive").
func (m *Machine) RecvRWAIT(rx aodv.RxInfo, buf []byte) error {
	var msg wire.RWAIT
	if err := msg.Decode(buf); err != nil {
		return err
	}
	aodv.RecordFrame(wire.OpRWAIT, 1, len(buf))

	if aodv.LocalMatch(m.id, msg.SrcAddr) {
		return m.recvRWAITAtOriginator(&msg, rx)
	}
	return m.recvRWAITIntermediate(&msg, rx)
}

func (m *Machine) recvRWAITAtOriginator(msg *wire.RWAIT, rx aodv.RxInfo) error {
	if m.table.BySrcDst(m.table.Valid, msg.SrcAddr, msg.DstAddr, int32(rx.NetIdx)) != nil {
		return nil // already resolved, nothing for the ring-search poller to extend
	}
	_, err := m.pending.Append(msg.DstAddr, msg.HopCount)
	return err
}

// recvRWAITIntermediate relays the hint back toward the originator. The
// common case finds the invalid reverse entry this node created while
// relaying the original RREQ and forwards to its next_hop; absent that
// (spec.md §4.5's defensive fallback), the RWAIT is forwarded unchanged
// on the incoming net_idx since no better routing information exists.
func (m *Machine) recvRWAITIntermediate(msg *wire.RWAIT, rx aodv.RxInfo) error {
	nextHop := aodv.AllNodes
	if rev := m.table.BySrcDst(m.table.Invalid, msg.DstAddr, msg.SrcAddr, int32(rx.NetIdx)); rev != nil {
		nextHop = rev.NextHop
	} else {
		aodv.WARN("RWAIT relay %d->%d: no matching reverse entry, forwarding unchanged\n",
			msg.SrcAddr, msg.DstAddr)
	}
	return m.send(wire.OpRWAIT, msg, nextHop, 0, rx.NetIdx)
}
