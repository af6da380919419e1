// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import "github.com/intuitivelabs/aodv"

// RecvHello handles a neighbour heartbeat observation (spec.md §4.5's
// "Neighbour heartbeat (HELLO)"; spec.md §6 lists the downward call as
// hello_msg_recv(src_addr) — net_idx is carried alongside src_addr here
// for the same reason every other downward call takes an RxInfo: a
// neighbour entry is keyed by (address, net_idx), not address alone).
func (m *Machine) RecvHello(rx aodv.RxInfo) {
	if !m.neighbour.Has(rx.Addr, rx.NetIdx) {
		aodv.DBG("HELLO from %d/%d: not of interest\n", rx.Addr, rx.NetIdx)
		return
	}
	if err := m.neighbour.Add(rx.Addr, rx.NetIdx, m.cfg.HelloLifetime); err != nil {
		aodv.WARN("HELLO refresh for %d/%d: %s\n", rx.Addr, rx.NetIdx, err)
	}
}
