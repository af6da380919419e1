// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

import (
	"runtime"
	"time"
)

// Table is the routing table (component B), a bounded pool split between
// a Valid and an Invalid list (spec.md §3, §4.2).
type Table struct {
	pool    *pool
	Valid   *List
	Invalid *List

	allocTimeout time.Duration
}

// NewTable builds a Table with the given slab size and allocation
// timeout (spec.md's NUMBER_OF_ENTRIES / ALLOCATION_INTERVAL).
func NewTable(numberOfEntries int, allocTimeout time.Duration) *Table {
	return &Table{
		pool:         newPool(numberOfEntries),
		Valid:        newList("valid"),
		Invalid:      newList("invalid"),
		allocTimeout: allocTimeout,
	}
}

// FreeSlots returns the pool's count of free slots (diagnostics/tests).
func (t *Table) FreeSlots() int { return t.pool.len() }

// listFor returns the List a symbolic target corresponds to.
func (t *Table) listFor(valid bool) *List {
	if valid {
		return t.Valid
	}
	return t.Invalid
}

// deleterFor builds the onExpire callback bound to a given list: it is
// invoked by a fired lifetime timer after the entry has already been
// unlinked from that list, and returns the slot to the pool.
func (t *Table) deleterFor(*List) func(*Entry) {
	return func(e *Entry) {
		t.pool.release(e)
	}
}

// AllocInvalid reserves a new entry, appends it to the invalid list, and
// arms its lifetime timer (spec.md §4.1's alloc_into). Route entries are
// always created invalid (§3's lifecycle) and later validated.
func (t *Table) AllocInvalid(dur time.Duration) (*Entry, error) {
	e, err := t.pool.alloc(t.allocTimeout)
	if err != nil {
		return nil, err
	}
	t.Invalid.mu.Lock()
	t.Invalid.insert(e)
	initTimerUnsafe(e, dur)
	startTimerUnsafe(e, t.Invalid, t.deleterFor(t.Invalid))
	t.Invalid.mu.Unlock()
	return e, nil
}

// Free stops e's timer, removes it from its current list and returns its
// slot to the pool. Safe to call even if a concurrent fire is in flight:
// tryStopUnsafe's false return means the timer is already delivering the
// removal itself, so Free is a no-op in that case (the fire's onExpire
// will do the release).
func (t *Table) Free(e *Entry) {
	owner := e.owner
	if owner == nil {
		return // already detached/freed
	}
	owner.mu.Lock()
	if !tryStopUnsafe(e) {
		owner.mu.Unlock()
		return
	}
	owner.remove(e)
	owner.mu.Unlock()
	t.pool.release(e)
}

// refreshList rearms e's timer in place without changing which list it
// belongs to (validate_route / invalidate_route refresh the duration on
// every transition; refresh_lifetime_{valid,invalid} do so without a
// transition).
func (t *Table) refreshList(e *Entry, l *List, dur time.Duration) {
	l.mu.Lock()
	refreshUnsafe(e, l, dur, t.deleterFor(l))
	l.mu.Unlock()
}

// RefreshValid rearms a valid entry's LIFETIME_VALID timer.
func (t *Table) RefreshValid(e *Entry, dur time.Duration) {
	t.refreshList(e, t.Valid, dur)
}

// RefreshInvalid rearms an invalid entry's timer.
func (t *Table) RefreshInvalid(e *Entry, dur time.Duration) {
	t.refreshList(e, t.Invalid, dur)
}

// move performs the atomic from->to transition described in spec.md
// §4.1: stop the timer, unlink from `from` (its lock), append to `to`
// (its lock), rebind the timer to `to`'s deleter and restart it. Locks
// are always acquired in the fixed valid->invalid order.
func (t *Table) move(e *Entry, from, to *List, dur time.Duration) {
	// fixed global order: Valid before Invalid, always, regardless of
	// which direction this particular transition runs.
	for {
		t.Valid.mu.Lock()
		t.Invalid.mu.Lock()
		if tryStopUnsafe(e) {
			break
		}
		// timer is concurrently delivering its own fire: it needs this
		// same lock to finish, so drop ours and retry, exactly as
		// calltr/callentry_lst.go's Hash.Destroy retries around a timer
		// it could not stop.
		t.Invalid.mu.Unlock()
		t.Valid.mu.Unlock()
		runtime.Gosched()
	}
	defer t.Valid.mu.Unlock()
	defer t.Invalid.mu.Unlock()

	// an entry already on `to` (a repeated validate/invalidate) stays
	// where it is and only has its timer restarted.
	if e.owner != to {
		from.remove(e)
		to.insert(e)
	}
	initTimerUnsafe(e, dur)
	startTimerUnsafe(e, to, t.deleterFor(to))
}

// ValidateRoute moves entry INVALID -> VALID with LIFETIME_VALID.
func (t *Table) ValidateRoute(e *Entry, lifetimeValid time.Duration) {
	t.move(e, t.Invalid, t.Valid, lifetimeValid)
}

// InvalidateRoute moves entry VALID -> INVALID, kept alive for
// lifetimeValid so a reverse RERR lookup may still consult its sequence
// number (spec.md §4.2).
func (t *Table) InvalidateRoute(e *Entry, lifetimeValid time.Duration) {
	t.move(e, t.Valid, t.Invalid, lifetimeValid)
}
