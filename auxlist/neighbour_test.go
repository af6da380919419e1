// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package auxlist

import (
	"testing"
	"time"
)

func TestNeighbourAddIdempotent(t *testing.T) {
	nl := NewNeighbourList(4)
	if err := nl.Add(2, 0, time.Second); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := nl.Add(2, 0, time.Second); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if nl.Len() != 1 {
		t.Fatalf("expected a single entry for a repeated (addr, net_idx), got %d", nl.Len())
	}
}

func TestNeighbourExpiryTriggersOnExpire(t *testing.T) {
	nl := NewNeighbourList(4)
	fired := make(chan [2]uint16, 1)
	nl.OnExpire = func(addr, netIdx uint16) {
		fired <- [2]uint16{addr, netIdx}
	}
	if err := nl.Add(5, 1, 20*time.Millisecond); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	select {
	case got := <-fired:
		if got[0] != 5 || got[1] != 1 {
			t.Fatalf("unexpected OnExpire args %v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("OnExpire never fired")
	}
	if nl.Has(5, 1) {
		t.Fatalf("expected entry removed after expiry")
	}
}

func TestNeighbourRefreshPreventsExpiry(t *testing.T) {
	nl := NewNeighbourList(4)
	fired := false
	nl.OnExpire = func(addr, netIdx uint16) { fired = true }
	if err := nl.Add(9, 0, 40*time.Millisecond); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := nl.Add(9, 0, 200*time.Millisecond); err != nil {
		t.Fatalf("refresh Add failed: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	if fired {
		t.Fatalf("OnExpire fired despite refresh")
	}
	if !nl.Has(9, 0) {
		t.Fatalf("expected refreshed entry still present")
	}
}

func TestNeighbourExplicitRemove(t *testing.T) {
	nl := NewNeighbourList(2)
	if err := nl.Add(3, 0, time.Minute); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	nl.Remove(3, 0)
	if nl.Has(3, 0) {
		t.Fatalf("expected entry gone after Remove")
	}
	if nl.Len() != 0 {
		t.Fatalf("expected slot returned to the pool")
	}
}

func TestNeighbourPoolExhausted(t *testing.T) {
	nl := NewNeighbourList(1)
	if err := nl.Add(1, 0, time.Minute); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := nl.Add(2, 0, time.Minute); err == nil {
		t.Fatalf("expected pool exhaustion for a distinct neighbour")
	}
}
