// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package core implements the AODV state machine (component E): the
// send/receive handlers for RREQ, RREP, RWAIT and RERR, expanding-ring
// search, and the neighbour-heartbeat wiring that ties a link failure
// back into the route-error fan-out.
package core

import (
	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/auxlist"
	"github.com/intuitivelabs/aodv/rtable"
)

// Machine bundles everything one routing context needs: the table, the
// three auxiliary lists, the local identity and the transport's send
// primitive. A process may run more than one independent Machine (e.g.
// one per simulated node in cmd/aodvsim).
type Machine struct {
	cfg aodv.Config
	id  aodv.Identity
	tx  aodv.CtlSender

	table     *rtable.Table
	pending   *auxlist.PendingList
	neighbour *auxlist.NeighbourList
	rerrList  *auxlist.RerrBatchList
}

// NewMachine wires a fresh routing context per cfg, arming the
// neighbour-expiry callback to the link-drop fan-out (spec.md §4.4:
// "expiry of a neighbour entry triggers the link-drop fan-out above").
func NewMachine(cfg aodv.Config, id aodv.Identity, tx aodv.CtlSender) *Machine {
	m := &Machine{
		cfg:       cfg,
		id:        id,
		tx:        tx,
		table:     rtable.NewTable(cfg.NumberOfEntries, cfg.AllocationInterval),
		pending:   auxlist.NewPendingList(cfg.NumberOfEntries),
		neighbour: auxlist.NewNeighbourList(cfg.NumberOfEntries),
		rerrList:  auxlist.NewRerrBatchList(cfg.NumberOfEntries, cfg.MaxRerrDestinations),
	}
	m.neighbour.OnExpire = m.onNeighbourLost
	return m
}

// Table exposes the routing table for diagnostics/tests.
func (m *Machine) Table() *rtable.Table { return m.table }

// addNeighbour ensures a heartbeat entry exists for (addr, netIdx),
// called from both the RREQ and RREP receive paths (spec.md §4.5:
// "Both paths invoke add_neighbour(next_hop, net_idx)").
func (m *Machine) addNeighbour(addr, netIdx uint16) {
	if addr == aodv.AllNodes {
		return
	}
	if err := m.neighbour.Add(addr, netIdx, m.cfg.HelloLifetime); err != nil {
		aodv.WARN("add_neighbour(%d, %d): %s\n", addr, netIdx, err)
	}
}

// removeNeighbourIfUnused deletes the neighbour entry for (addr, netIdx)
// unless some remaining valid entry still uses it as next_hop (spec.md
// §4.5: "remove_neighbour ... deletes only if no remaining valid entry
// uses that next_hop on that net_idx").
func (m *Machine) removeNeighbourIfUnused(addr, netIdx uint16) {
	if m.table.ByNextHopNetIdx(m.table.Valid, addr, netIdx) != nil {
		return
	}
	m.neighbour.Remove(addr, netIdx)
}

// averageRSSI implements the RREQ receive blend: rssi_avg =
// (peer_reported_rssi * hop + local_rx_rssi) / (hop + 1).
func averageRSSI(peerRSSI int8, hop uint8, localRSSI int8) int8 {
	return int8((int(peerRSSI)*int(hop) + int(localRSSI)) / (int(hop) + 1))
}
