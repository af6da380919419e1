// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/wire"
)

// frameBytesTotal reads the current aodv_frame_bytes_total counter value
// for the given opcode straight off the default Prometheus registry,
// the same place aodv.RecordFrame publishes to.
func frameBytesTotal(t *testing.T, opcode aodv.Opcode) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	label := strconv.Itoa(int(opcode))
	for _, fam := range families {
		if fam.GetName() != "aodv_frame_bytes_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "opcode" && lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// TestRecvRREQRecordsFrameMetrics proves the RREQ decode path reports its
// overhead-accounting sample (spec.md §4.6), not just the outbound send
// helper.
func TestRecvRREQRecordsFrameMetrics(t *testing.T) {
	cfg := testConfig()
	id := &fakeIdentity{addr: 0x0003, elems: 1, seq: 1, relay: false}
	m := NewMachine(cfg, id, &spySender{})

	before := frameBytesTotal(t, wire.OpRREQ)

	msg := wire.RREQ{SrcAddr: 0x0001, DstAddr: 0x0003, SrcElems: 1, U: true, SrcSeq: 1}
	buf := make([]byte, msg.Len())
	if _, err := msg.Encode(buf); err != nil {
		t.Fatalf("encode RREQ: %v", err)
	}
	rx := aodv.RxInfo{Addr: 0x0002, NetIdx: 0, RecvTTL: 2, RSSI: -60}
	if err := m.RecvRREQ(rx, buf); err != nil {
		t.Fatalf("RecvRREQ: %v", err)
	}

	after := frameBytesTotal(t, wire.OpRREQ)
	if after <= before {
		t.Fatalf("expected aodv_frame_bytes_total{opcode=%d} to increase on receive, before=%v after=%v",
			wire.OpRREQ, before, after)
	}
}
