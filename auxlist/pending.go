// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package auxlist

import (
	"sync"
	"time"

	"github.com/intuitivelabs/aodv"
)

// PendingEntry is a pending-reply list member (spec.md §3). A HopCount
// of 0 means an RREP arrived; nonzero is a RWAIT hint carrying the
// intermediate node's stored hop count to the destination.
type PendingEntry struct {
	next, prev *PendingEntry
	slot       int

	DstAddr  uint16
	HopCount uint8
}

func (e *PendingEntry) detached() bool { return e == e.next }

// PendingList is the ring-search wake queue. RingSearch (package core)
// blocks on its condition variable instead of the 50ms poll spec.md's
// Design Notes call out for redesign: Append broadcasts, WaitPop parks
// until an entry appears or a deadline passes.
type PendingList struct {
	mu    sync.Mutex
	cond  *sync.Cond
	head  PendingEntry
	slab  []PendingEntry
	free  []int
	count int
}

func NewPendingList(n int) *PendingList {
	l := &PendingList{slab: make([]PendingEntry, n), free: make([]int, n)}
	l.cond = sync.NewCond(&l.mu)
	l.head.next = &l.head
	l.head.prev = &l.head
	for i := range l.slab {
		l.slab[i].slot = i
		l.free[i] = n - 1 - i
	}
	return l
}

func (l *PendingList) insert(e *PendingEntry) {
	e.prev = l.head.prev
	e.next = &l.head
	e.prev.next = e
	l.head.prev = e
	l.count++
}

func (l *PendingList) remove(e *PendingEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = e
	e.prev = e
	l.count--
}

func (l *PendingList) release(e *PendingEntry) {
	slot := e.slot
	*e = PendingEntry{slot: slot}
	l.free = append(l.free, slot)
}

// Append adds a pending-reply entry and wakes any blocked WaitPop
// caller. Used both when an RREP arrives (hop_count = 0) and when a
// RWAIT hint is received (hop_count = stored hop to destination).
func (l *PendingList) Append(dst uint16, hop uint8) (*PendingEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.free) == 0 {
		return nil, aodv.ErrPoolExhausted
	}
	idx := l.free[len(l.free)-1]
	l.free = l.free[:len(l.free)-1]
	e := &l.slab[idx]
	e.DstAddr, e.HopCount = dst, hop
	l.insert(e)
	l.cond.Broadcast()
	return e, nil
}

// WaitPop blocks until an entry is available or deadline passes, then
// pops and returns the oldest (FIFO) entry.
func (l *PendingList) WaitPop(deadline time.Time) (PendingEntry, bool) {
	return l.WaitMatch(deadline, func(*PendingEntry) bool { return true })
}

// WaitMatch blocks until an entry satisfying pred is available or
// deadline passes, then pops and returns it. RingSearch uses this
// (rather than plain FIFO WaitPop) so that concurrent ring-searches for
// distinct destinations sharing one PendingList each only consume their
// own entries, inspecting HopCount to decide between "RREP arrived" (0)
// and "extend ring timer" (nonzero) per spec.md §4.5's pending-reply
// poll — reworked here into a condition-variable wait instead of the
// 50ms busy-poll the Design Notes call out for redesign.
func (l *PendingList) WaitMatch(deadline time.Time, pred func(e *PendingEntry) bool) (PendingEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		for v := l.head.next; v != &l.head; v = v.next {
			if pred(v) {
				out := *v
				out.next, out.prev = nil, nil
				l.remove(v)
				l.release(v)
				return out, true
			}
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return PendingEntry{}, false
		}
		wake := time.AfterFunc(remaining, l.cond.Broadcast)
		l.cond.Wait()
		wake.Stop()
	}
}

// Len reports the current entry count (diagnostics/tests).
func (l *PendingList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
