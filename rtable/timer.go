// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

import (
	"sync/atomic"
	"time"
)

// Timer management, ported from calltr/cstimer.go's csTimerInitUnsafe /
// csTimerStartUnsafe / csTimerTryStopUnsafe / csTimerUpdateTimeoutUnsafe
// trio. A fired timer removes its entry from whichever list currently
// owns it and invokes onExpire outside any list lock, exactly like the
// teacher's callstTimer does with its event handler.

func initTimerUnsafe(e *Entry, after time.Duration) {
	e.timer.expire = time.Now().Add(after)
	e.timer.handle.Store(nil)
	atomic.StoreInt32(&e.timer.done, 0)
}

// startTimerUnsafe arms the lifetime timer for e, which currently
// belongs to owner. Caller must hold owner's lock and must have called
// initTimerUnsafe first. onExpire is invoked with no lock held, after
// the entry has already been unlinked from owner.
func startTimerUnsafe(e *Entry, owner *List, onExpire func(*Entry)) bool {
	fire := func() {
		now := time.Now()
		// allow a small grace period, as the teacher's callstTimer does
		expire := e.timer.expire.Add(-time.Second / 10)
		removed := false
		if !expire.After(now) {
			owner.mu.Lock()
			// re-check: we might be racing a Refresh that extended the
			// deadline just before we acquired the lock
			expire = e.timer.expire.Add(-time.Second / 10)
			if atomic.LoadInt32(&e.timer.done) == 0 && !expire.After(time.Now()) {
				owner.remove(e)
				atomic.StoreInt32(&e.timer.done, 1)
				removed = true
			}
			owner.mu.Unlock()
			if removed {
				onExpire(e)
				return
			}
			// fall through: deadline was extended, reschedule below
		}
		h := e.timer.handle.Load()
		if h != nil {
			h.Reset(e.timer.expire.Sub(time.Now()))
		}
	}

	h := time.AfterFunc(e.timer.expire.Sub(time.Now()), fire)
	e.timer.handle.Store(h)
	return true
}

// tryStopUnsafe attempts to stop e's timer before it fires. Caller must
// hold the lock of the list e currently belongs to. Returns true if the
// timer is stopped (or was already stopped/expired), false if it is
// currently running its fire callback (which is about to, or has just
// started to, acquire the same lock — the caller cannot safely proceed
// with a Move/Free in that case and must retry after releasing its own
// lock, per calltr/callentry_lst.go's Destroy retry loop).
func tryStopUnsafe(e *Entry) bool {
	h := e.timer.handle.Load()
	if h == nil || atomic.LoadInt32(&e.timer.done) != 0 {
		return true
	}
	if h.Stop() {
		atomic.StoreInt32(&e.timer.done, 1)
		return true
	}
	return false
}

// refreshUnsafe rearms e's timer in place, preserving list membership.
// Caller must hold the lock of the list e currently belongs to.
// Mirrors calltr's csTimerUpdateTimeoutUnsafe: shortening the deadline
// requires an immediate stop+restart, extending it just updates the
// deadline and lets the still-running timer reschedule itself when it
// notices the new deadline is in the future.
func refreshUnsafe(e *Entry, owner *List, after time.Duration, onExpire func(*Entry)) bool {
	newExpire := time.Now().Add(after)
	if e.timer.expire.After(newExpire) {
		// timeout reduced: stop and re-arm
		if !tryStopUnsafe(e) {
			return false
		}
		initTimerUnsafe(e, after)
		return startTimerUnsafe(e, owner, onExpire)
	}
	e.timer.expire = newExpire
	return true
}
