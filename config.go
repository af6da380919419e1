// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package aodv

import "time"

// Config bundles the tunables of the routing core (spec.md §6). Unlike
// calltr's package-level Cfg, this is threaded explicitly through
// core.NewMachine since a single process may host more than one
// independent routing context (see cmd/aodvsim).
type Config struct {
	// NumberOfEntries is the slab size of the routing table (A).
	NumberOfEntries int

	// AllocationInterval bounds how long a slab allocation blocks before
	// failing with ErrPoolExhausted.
	AllocationInterval time.Duration

	// LifetimeValid is how long a valid route entry lives without
	// refresh.
	LifetimeValid time.Duration

	// RREQWait is how long a reverse entry waits for a better RREQ before
	// being validated and replied to, when this node is the destination.
	RREQWait time.Duration

	// RingSearchWaitInterval is the base ring-timer period; it multiplies
	// by 4 once a RWAIT hint is observed.
	RingSearchWaitInterval time.Duration

	// RingSearchMaxTTL is the TTL at which ring search is abandoned.
	RingSearchMaxTTL uint8

	// HelloLifetime is how long a neighbour is considered alive without a
	// fresh heartbeat.
	HelloLifetime time.Duration

	// RSSIMin normalises the combined hop/RSSI metric (§4.5).
	RSSIMin int8

	// MaxRerrDestinations bounds a single RERR batch entry's destination
	// sub-list (spec.md §4.4 expansion).
	MaxRerrDestinations int
}

// DefaultConfig returns the constants tabulated in spec.md §6.
func DefaultConfig() Config {
	return Config{
		NumberOfEntries:         20,
		AllocationInterval:      100 * time.Millisecond,
		LifetimeValid:           120 * time.Second,
		RREQWait:                1 * time.Second,
		RingSearchWaitInterval:  10 * time.Second,
		RingSearchMaxTTL:        10,
		HelloLifetime:           20 * time.Second,
		RSSIMin:                 -90,
		MaxRerrDestinations:     32,
	}
}
