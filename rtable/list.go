// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

import "sync"

// List is one of the two intrusive, mutex-guarded entry lists (valid or
// invalid), shaped directly on calltr/callentry_lst.go's CallEntryLst:
// a sentinel head node used only for its next/prev pointers, a binary
// semaphore and a running entry count.
type List struct {
	head    Entry // used only as list head; only next/prev are valid
	mu      sync.Mutex
	name    string
	entries int
}

func newList(name string) *List {
	l := &List{name: name}
	l.head.next = &l.head
	l.head.prev = &l.head
	return l
}

// Lock / Unlock expose the list's binary semaphore directly; Table.move takes
// both lists' locks in the fixed valid->invalid order to preclude
// deadlock (spec.md §4.1, §5).
func (l *List) Lock()   { l.mu.Lock() }
func (l *List) Unlock() { l.mu.Unlock() }

// Name reports which list this is ("valid" or "invalid"), useful for
// diagnostics and for sanity-checking lock order in tests.
func (l *List) Name() string { return l.name }

// Len returns the current entry count. Callers should hold the lock for
// a consistent read under concurrent mutation.
func (l *List) Len() int { return l.entries }

// insert links e at the front of the list. Caller must hold the lock.
func (l *List) insert(e *Entry) {
	e.prev = &l.head
	e.next = l.head.next
	e.next.prev = e
	l.head.next = e
	e.owner = l
	l.entries++
}

// remove unlinks e and marks it detached. Caller must hold the lock.
func (l *List) remove(e *Entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = e
	e.prev = e
	e.owner = nil
	l.entries--
}

// ForEach iterates the whole list calling f(e) until f returns false or
// the list ends. f must not mutate the list (no Move/Free on e or any
// other entry) — use ForEachMatchSafe for that.
func (l *List) ForEach(f func(e *Entry) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for v := l.head.next; v != &l.head; v = v.next {
		if !f(v) {
			return
		}
	}
}

// find scans the list under lock for the first entry matching pred.
func (l *List) find(pred func(e *Entry) bool) *Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	for v := l.head.next; v != &l.head; v = v.next {
		if pred(v) {
			return v
		}
	}
	return nil
}

// Cursor is the safe-iteration handle passed to callbacks invoked by
// ForEachMatchSafe. It is the Go analogue of the C implementation's
// "CallEntry **temp" indirection (spec.md §4.2, §5): the iterator
// snapshots the successor into Cursor.Next before releasing the lock and
// invoking the callback; if the callback relocates that successor to a
// different list, it must update Cursor.Next itself so the iteration
// picks up the right node when it re-acquires the lock.
type Cursor struct {
	Next *Entry
}

// ForEachMatchSafe walks the list invoking cb for every entry matching
// pred, under the "released lock during callback" discipline required
// by the RERR fan-out and link-drop walks (spec.md §4.2):
//
//  1. snapshot the successor into a Cursor
//  2. Ref the matched entry, release the list lock
//  3. invoke cb(entry, cursor) — cb may Move entry or the snapshotted
//     successor to another list, updating cursor.Next if it does so
//  4. Unref the entry, re-acquire the lock, resume from cursor.Next
func (l *List) ForEachMatchSafe(pred func(e *Entry) bool, cb func(e *Entry, cursor *Cursor)) {
	l.mu.Lock()
	v := l.head.next
	for v != &l.head {
		if !pred(v) {
			v = v.next
			continue
		}
		cursor := &Cursor{Next: v.next}
		v.Ref()
		l.mu.Unlock()

		cb(v, cursor)

		v.Unref()
		l.mu.Lock()
		next := cursor.Next
		// if the callback moved the saved successor elsewhere without
		// updating the cursor, it is no longer on this list (detached, or
		// linked into the other list): the safest recovery is to stop
		// rather than follow it into another list's chain.
		if next != &l.head && next.owner != l {
			break
		}
		v = next
	}
	l.mu.Unlock()
}
