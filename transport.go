// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package aodv

// External interfaces (spec.md §6): the core treats the link/access/
// transport layers of Bluetooth Mesh as the collaborators below. None of
// them are implemented in this module; cmd/aodvsim provides an in-memory
// fake for demonstration and the test suites provide per-test fakes.

// AllNodes is the broadcast next-hop address used for flooded RREQs.
const AllNodes uint16 = 0xffff

// Opcode identifies a control message type on the wire. The concrete
// values are assigned by the host mesh stack; this core treats them as
// opaque and never branches on their numeric value outside of dispatch.
type Opcode uint8

// NetTransmitParams bundles the lower layer's transmit tuning (retry
// count, interval, ttl hints, ...). Its fields are opaque to the core: it
// is obtained from Identity.NetTransmitGet and passed through unmodified
// in NetTx.
type NetTransmitParams struct {
	Count    uint8
	Interval uint32
}

// SubnetHandle is an opaque reference to a Bluetooth Mesh subnet, as
// returned by Identity.SubnetGet.
type SubnetHandle struct {
	NetIdx uint16
	Valid  bool
}

// NetTx bundles everything the lower layer needs to emit one control
// message (spec.md §6's ctl_send(net_tx, opcode, bytes)).
type NetTx struct {
	NetIdx  uint16
	Subnet  SubnetHandle
	Src     uint16
	NextHop uint16
	SendTTL uint8
	Params  NetTransmitParams
	Routing bool
}

// CtlSender is the upward primitive: (next-hop, net-index, opcode,
// payload) -> transmit. Implementations may block.
type CtlSender interface {
	CtlSend(tx NetTx, opcode Opcode, payload []byte) error
}

// RxInfo bundles what the lower layer hands up alongside a received
// control message: ctx.addr (link-layer source), ctx.net_idx,
// ctx.recv_ttl, the message's destination and the measured RSSI.
type RxInfo struct {
	Addr    uint16
	NetIdx  uint16
	RecvTTL uint8
	Dst     uint16
	RSSI    int8
}

// Identity exposes the small set of local-identity queries the core needs
// (spec.md §6): primary_addr, elem_count, elem_find, net.seq plus the
// subnet/provisioning/relay queries used by the state machine.
type Identity interface {
	PrimaryAddr() uint16
	ElemCount() uint16
	ElemFind(addr uint16) bool
	CurrentSeq() uint32
	NetTransmitGet() NetTransmitParams
	SubnetGet(netIdx uint16) (SubnetHandle, bool)
	IsProvisioned() bool
	RelayEnabled() bool
}

// ElemRange reports whether addr falls in the contiguous element block
// [base, base+count) that a Bluetooth-Mesh node owns (spec.md §4.2).
func ElemRange(base, count, addr uint16) bool {
	return addr >= base && uint32(addr) < uint32(base)+uint32(count)
}

// LocalMatch reports whether addr falls within this identity's own
// element range [PrimaryAddr, PrimaryAddr+ElemCount).
func LocalMatch(id Identity, addr uint16) bool {
	return id.ElemFind(addr)
}
