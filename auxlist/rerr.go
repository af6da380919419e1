// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package auxlist

import (
	"sync"

	"github.com/intuitivelabs/aodv"
)

// DestSeq is one (destination_address, destination_sequence_number)
// pair in an RERR batch entry's destination sublist (spec.md §3).
type DestSeq struct {
	Addr uint16
	Seq  uint32
}

// RerrBatch accumulates the destinations an outbound RERR to NextHop
// must list, bounded by MaxRerrDestinations ([EXPANSION], spec.md §4.4).
type RerrBatch struct {
	next, prev *RerrBatch
	slot       int

	NextHop uint16
	NetIdx  uint16
	Dests   []DestSeq
}

func (b *RerrBatch) detached() bool { return b == b.next }

// Has reports whether addr already appears in the sublist (spec.md
// §4.4: "if not already present").
func (b *RerrBatch) Has(addr uint16) bool {
	for _, d := range b.Dests {
		if d.Addr == addr {
			return true
		}
	}
	return false
}

// RerrBatchList is the outbound RERR batching list.
type RerrBatchList struct {
	mu      sync.Mutex
	head    RerrBatch
	slab    []RerrBatch
	free    []int
	count   int
	maxDest int
}

func NewRerrBatchList(n, maxDest int) *RerrBatchList {
	l := &RerrBatchList{slab: make([]RerrBatch, n), free: make([]int, n), maxDest: maxDest}
	l.head.next = &l.head
	l.head.prev = &l.head
	for i := range l.slab {
		l.slab[i].slot = i
		l.free[i] = n - 1 - i
	}
	return l
}

func (l *RerrBatchList) find(nextHop, netIdx uint16) *RerrBatch {
	for v := l.head.next; v != &l.head; v = v.next {
		if v.NextHop == nextHop && v.NetIdx == netIdx {
			return v
		}
	}
	return nil
}

func (l *RerrBatchList) insert(b *RerrBatch) {
	b.prev = l.head.prev
	b.next = &l.head
	b.prev.next = b
	l.head.prev = b
	l.count++
}

func (l *RerrBatchList) remove(b *RerrBatch) {
	b.prev.next = b.next
	b.next.prev = b.prev
	b.next = b
	b.prev = b
	l.count--
}

func (l *RerrBatchList) release(b *RerrBatch) {
	slot := b.slot
	*b = RerrBatch{slot: slot}
	l.free = append(l.free, slot)
}

// FindOrCreate locates the batch keyed by (nextHop, netIdx), creating
// one if absent (spec.md §4.4: "locate or create a RERR batch entry
// keyed by that reverse entry's next_hop + net_idx").
func (l *RerrBatchList) FindOrCreate(nextHop, netIdx uint16) (*RerrBatch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b := l.find(nextHop, netIdx); b != nil {
		return b, nil
	}
	if len(l.free) == 0 {
		return nil, aodv.ErrPoolExhausted
	}
	idx := l.free[len(l.free)-1]
	l.free = l.free[:len(l.free)-1]
	b := &l.slab[idx]
	b.NextHop, b.NetIdx = nextHop, netIdx
	l.insert(b)
	return b, nil
}

// Append adds (addr, seq) to b's destination sublist unless already
// present, bounded by MaxRerrDestinations. Returns false if the batch is
// already full — the caller drops the overflow destination rather than
// fragmenting, which spec.md places out of scope.
func (l *RerrBatchList) Append(b *RerrBatch, addr uint16, seq uint32) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b.Has(addr) {
		return true
	}
	if len(b.Dests) >= l.maxDest {
		return false
	}
	b.Dests = append(b.Dests, DestSeq{Addr: addr, Seq: seq})
	return true
}

// Flush detaches every batch entry, invokes cb for each (with the list
// lock released, so cb may ctl-send without blocking concurrent
// lookups), then returns every entry's slot to the pool — spec.md
// §4.4's "for each RERR batch entry: encode and ctl-send ... then free
// the batch entry", and the RERR-receive path's "flush the RERR batch
// list the same way".
func (l *RerrBatchList) Flush(cb func(b *RerrBatch)) {
	l.mu.Lock()
	batches := make([]*RerrBatch, 0, l.count)
	for v := l.head.next; v != &l.head; v = v.next {
		batches = append(batches, v)
	}
	for _, b := range batches {
		l.remove(b)
	}
	l.mu.Unlock()

	for _, b := range batches {
		cb(b)
		l.mu.Lock()
		l.release(b)
		l.mu.Unlock()
	}
}

// Len reports the current batch-entry count.
func (l *RerrBatchList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
