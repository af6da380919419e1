// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"testing"

	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/wire"
)

// unprovisionedIdentity wraps fakeIdentity but reports the node as not
// yet provisioned, mirroring the original's bt_mesh_is_provisioned()
// gate (aodv_control_messages.c:740-743).
type unprovisionedIdentity struct {
	fakeIdentity
}

func (u *unprovisionedIdentity) IsProvisioned() bool { return false }

// TestSendRejectsUnprovisioned proves send() refuses to emit any control
// message before the node is provisioned, regardless of whether a
// subnet handle would otherwise resolve.
func TestSendRejectsUnprovisioned(t *testing.T) {
	cfg := testConfig()
	id := &unprovisionedIdentity{fakeIdentity{addr: 0x0001, elems: 1, seq: 1, relay: true}}
	spy := &spySender{}
	m := NewMachine(cfg, id, spy)

	msg := wire.RREQ{SrcAddr: 0x0001, DstAddr: 0x0002, SrcElems: 1, U: true, SrcSeq: 1}
	err := m.send(wire.OpRREQ, &msg, aodv.AllNodes, 2, 0)
	if err != aodv.ErrNotProvisioned {
		t.Fatalf("expected ErrNotProvisioned, got %v", err)
	}
	if len(spy.sent) != 0 {
		t.Fatalf("expected no frame to reach the transport, got %d", len(spy.sent))
	}
}
