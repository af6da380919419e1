// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import "github.com/intuitivelabs/aodv"

// encoder is satisfied by every wire message type (wire.RREQ, wire.RREP,
// wire.RWAIT, wire.RERR).
type encoder interface {
	Len() int
	Encode(b []byte) (int, error)
}

// send encodes msg, records its overhead-accounting sample (spec.md
// §4.6) and hands the buffer to the transport's ctl-send primitive
// (spec.md §6).
func (m *Machine) send(op aodv.Opcode, msg encoder, nextHop uint16, ttl uint8, netIdx uint16) error {
	if !m.id.IsProvisioned() {
		return aodv.ErrNotProvisioned
	}
	buf := make([]byte, msg.Len())
	n, err := msg.Encode(buf)
	if err != nil {
		return err
	}
	subnet, ok := m.id.SubnetGet(netIdx)
	if !ok {
		return aodv.ErrNotProvisioned
	}
	tx := aodv.NetTx{
		NetIdx:  netIdx,
		Subnet:  subnet,
		Src:     m.id.PrimaryAddr(),
		NextHop: nextHop,
		SendTTL: ttl,
		Params:  m.id.NetTransmitGet(),
		Routing: true,
	}
	aodv.RecordFrame(op, 1, n)
	if err := m.tx.CtlSend(tx, op, buf[:n]); err != nil {
		return aodv.ErrSendFailed
	}
	return nil
}
