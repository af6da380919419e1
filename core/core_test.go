// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"sync"
	"time"

	"github.com/intuitivelabs/aodv"
)

// fakeIdentity is a minimal aodv.Identity for tests: a configurable
// element count, a fixed sequence counter, relay set per node.
type fakeIdentity struct {
	addr  uint16
	elems uint16
	seq   uint32
	relay bool
}

func (f *fakeIdentity) PrimaryAddr() uint16          { return f.addr }
func (f *fakeIdentity) ElemCount() uint16            { return f.elems }
func (f *fakeIdentity) ElemFind(addr uint16) bool    { return aodv.ElemRange(f.addr, f.elems, addr) }
func (f *fakeIdentity) CurrentSeq() uint32           { return f.seq }
func (f *fakeIdentity) IsProvisioned() bool          { return true }
func (f *fakeIdentity) RelayEnabled() bool           { return f.relay }
func (f *fakeIdentity) NetTransmitGet() aodv.NetTransmitParams {
	return aodv.NetTransmitParams{Count: 1, Interval: 100}
}
func (f *fakeIdentity) SubnetGet(netIdx uint16) (aodv.SubnetHandle, bool) {
	return aodv.SubnetHandle{NetIdx: netIdx, Valid: true}, true
}

// testNet is a tiny in-memory mesh: each node only reaches its declared
// neighbours, letting scenario tests model a multi-hop chain without a
// real transport.
type testNet struct {
	mu    sync.Mutex
	nodes map[uint16]*Machine
	adj   map[uint16][]uint16
}

func newTestNet() *testNet {
	return &testNet{nodes: map[uint16]*Machine{}, adj: map[uint16][]uint16{}}
}

func (n *testNet) link(a, b uint16) {
	n.adj[a] = append(n.adj[a], b)
	n.adj[b] = append(n.adj[b], a)
}

func (n *testNet) addNode(addr uint16, relay bool, cfg aodv.Config) *Machine {
	id := &fakeIdentity{addr: addr, elems: 1, seq: 1, relay: relay}
	tx := &testSender{net: n, self: addr}
	m := NewMachine(cfg, id, tx)
	n.mu.Lock()
	n.nodes[addr] = m
	n.mu.Unlock()
	return m
}

type testSender struct {
	net  *testNet
	self uint16
}

func (s *testSender) CtlSend(tx aodv.NetTx, op aodv.Opcode, payload []byte) error {
	s.net.mu.Lock()
	neighbours := append([]uint16(nil), s.net.adj[s.self]...)
	s.net.mu.Unlock()

	buf := append([]byte(nil), payload...)
	for _, nb := range neighbours {
		if tx.NextHop != aodv.AllNodes && tx.NextHop != nb {
			continue
		}
		s.net.mu.Lock()
		dst := s.net.nodes[nb]
		s.net.mu.Unlock()
		if dst == nil {
			continue
		}
		rx := aodv.RxInfo{Addr: s.self, NetIdx: tx.NetIdx, RecvTTL: tx.SendTTL, RSSI: -60}
		go dst.Dispatch(op, rx, buf)
	}
	return nil
}

func testConfig() aodv.Config {
	cfg := aodv.DefaultConfig()
	cfg.RREQWait = 30 * time.Millisecond
	cfg.RingSearchWaitInterval = 150 * time.Millisecond
	cfg.AllocationInterval = 50 * time.Millisecond
	return cfg
}
