// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package auxlist

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/intuitivelabs/aodv"
)

// Neighbour is a heartbeat-tracked entry (spec.md §3), keyed by
// (source_address, net_idx) with a HELLO_LIFETIME timer.
type Neighbour struct {
	next, prev *Neighbour
	slot       int

	Addr   uint16
	NetIdx uint16

	expire time.Time
	handle *time.Timer
	done   int32
}

func (e *Neighbour) detached() bool { return e == e.next }

// NeighbourList is the bounded neighbour-heartbeat slab (add_neighbour /
// remove_neighbour, spec.md §4.4). Unlike rtable's entryTimer, a
// neighbour's fire closure re-finds its entry by key rather than
// holding a pointer into the slab: by the time it acquires the lock the
// entry may already have been explicitly Removed and its slot reused,
// in which case the lookup simply fails and the stale fire is a no-op —
// no retry loop is needed because the closure never mutates through a
// possibly-recycled pointer.
type NeighbourList struct {
	mu    sync.Mutex
	head  Neighbour
	slab  []Neighbour
	free  []int
	count int

	// OnExpire is invoked, without the list lock held, when a neighbour's
	// HELLO_LIFETIME elapses without a refresh. Package core wires this
	// to the link-drop fan-out (spec.md §4.4: "Expiry of a neighbour
	// entry triggers the link-drop fan-out").
	OnExpire func(addr, netIdx uint16)
}

func NewNeighbourList(n int) *NeighbourList {
	l := &NeighbourList{slab: make([]Neighbour, n), free: make([]int, n)}
	l.head.next = &l.head
	l.head.prev = &l.head
	for i := range l.slab {
		l.slab[i].slot = i
		l.free[i] = n - 1 - i
	}
	return l
}

func (l *NeighbourList) find(addr, netIdx uint16) *Neighbour {
	for v := l.head.next; v != &l.head; v = v.next {
		if v.Addr == addr && v.NetIdx == netIdx {
			return v
		}
	}
	return nil
}

func (l *NeighbourList) insert(e *Neighbour) {
	e.prev = l.head.prev
	e.next = &l.head
	e.prev.next = e
	l.head.prev = e
	l.count++
}

func (l *NeighbourList) remove(e *Neighbour) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = e
	e.prev = e
	l.count--
}

func (l *NeighbourList) release(e *Neighbour) {
	slot := e.slot
	if e.handle != nil {
		e.handle.Stop()
	}
	*e = Neighbour{slot: slot}
	l.free = append(l.free, slot)
}

// Add ensures a neighbour entry exists for (addr, netIdx) and (re)arms
// its HELLO_LIFETIME timer, creating the entry if absent.
func (l *NeighbourList) Add(addr, netIdx uint16, lifetime time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.find(addr, netIdx)
	if e == nil {
		if len(l.free) == 0 {
			return aodv.ErrPoolExhausted
		}
		idx := l.free[len(l.free)-1]
		l.free = l.free[:len(l.free)-1]
		e = &l.slab[idx]
		e.Addr, e.NetIdx = addr, netIdx
		l.insert(e)
	}
	l.rearm(e, lifetime)
	return nil
}

func (l *NeighbourList) rearm(e *Neighbour, lifetime time.Duration) {
	if e.handle != nil {
		e.handle.Stop()
	}
	e.expire = time.Now().Add(lifetime)
	atomic.StoreInt32(&e.done, 0)
	addr, netIdx := e.Addr, e.NetIdx
	e.handle = time.AfterFunc(lifetime, func() { l.fire(addr, netIdx) })
}

func (l *NeighbourList) fire(addr, netIdx uint16) {
	l.mu.Lock()
	e := l.find(addr, netIdx)
	if e == nil || atomic.LoadInt32(&e.done) != 0 {
		l.mu.Unlock()
		return
	}
	if time.Now().Before(e.expire) {
		// refreshed after this fire was scheduled; the newer timer owns
		// the deadline now.
		l.mu.Unlock()
		return
	}
	atomic.StoreInt32(&e.done, 1)
	l.remove(e)
	l.release(e)
	l.mu.Unlock()

	if l.OnExpire != nil {
		l.OnExpire(addr, netIdx)
	}
}

// Remove deletes the neighbour entry for (addr, netIdx) if present.
// Core calls this (remove_neighbour) only once it has confirmed no
// remaining valid route entry uses (addr, netIdx) as next_hop.
func (l *NeighbourList) Remove(addr, netIdx uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.find(addr, netIdx)
	if e == nil {
		return
	}
	atomic.StoreInt32(&e.done, 1)
	l.remove(e)
	l.release(e)
}

// Has reports whether a live entry exists for (addr, netIdx).
func (l *NeighbourList) Has(addr, netIdx uint16) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.find(addr, netIdx) != nil
}

// Len reports the current entry count.
func (l *NeighbourList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
