// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

import (
	"time"

	"github.com/intuitivelabs/aodv"
)

// pool is the fixed-size slab backing a Table (spec.md §3, §4.1). Unlike
// calltr/alloc_pool.go's sync.Pool-of-byte-buffers (which grows and
// shrinks with GC pressure), this pool is a true bounded array: the free
// list is a buffered channel of slot indices, so allocation can never
// exceed NumberOfEntries and a free slot is always identified by index,
// never by a retained pointer — the safe substitute for the C
// container_of trick called out in spec.md's Design Notes §9.
type pool struct {
	entries []Entry
	free    chan int
}

func newPool(n int) *pool {
	p := &pool{
		entries: make([]Entry, n),
		free:    make(chan int, n),
	}
	for i := range p.entries {
		p.entries[i].slot = i
		p.free <- i
	}
	return p
}

// alloc reserves a slot, blocking up to timeout. Returns
// aodv.ErrPoolExhausted on timeout.
func (p *pool) alloc(timeout time.Duration) (*Entry, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case slot := <-p.free:
		e := &p.entries[slot]
		e.reset()
		e.refCnt = 1
		return e, nil
	case <-t.C:
		return nil, aodv.ErrPoolExhausted
	}
}

// release returns a slot to the pool. Caller must have already unlinked
// the entry from its list and stopped its timer.
func (p *pool) release(e *Entry) {
	slot := e.slot
	e.reset()
	p.free <- slot
}

// len reports how many slots are currently free (for diagnostics/tests).
func (p *pool) len() int {
	return len(p.free)
}
