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

// Entry is the unit managed by components A and B (spec.md §3). It is
// always a member of exactly one of {valid list, invalid list}, or sits
// free in the pool.
type Entry struct {
	next, prev *Entry // intrusive list link; self-looped when detached

	slot   int   // index into Table.pool, the safe container_of substitute
	refCnt int32 // atomic; a borrowed search result keeps this above 0
	owner  *List // list this entry currently belongs to, nil if free

	SrcAddr  uint16 // source_address
	DstAddr  uint16 // destination_address
	DstSeq   uint32 // destination_sequence_number
	NextHop  uint16
	SrcElems uint16 // source_number_of_elements
	DstElems uint16 // destination_number_of_elements
	HopCount uint8
	RSSI     int8 // combined/average link quality
	Repairable bool
	NetIdx   uint16

	timer entryTimer
}

// reset clears every field except slot, including the list links and
// owner; the pool/list code relinks the entry when it is next inserted.
func (e *Entry) reset() {
	*e = Entry{slot: e.slot}
}

// Ref increments the reference count. A caller that holds a borrowed
// search result should Ref it before releasing the list lock and Unref
// when done, mirroring calltr.CallEntry's Ref/Unref pair.
func (e *Entry) Ref() int32 {
	return atomic.AddInt32(&e.refCnt, 1)
}

// Unref decrements the reference count.
func (e *Entry) Unref() int32 {
	return atomic.AddInt32(&e.refCnt, -1)
}

// Detached reports whether the entry is currently unlinked from any list
// (the self-loop marker left by List.remove).
func (e *Entry) Detached() bool {
	return e == e.next
}

// Slot returns the entry's index into the owning Table's pool.
func (e *Entry) Slot() int { return e.slot }

// SrcMatch reports whether q falls within this entry's source element
// range [SrcAddr, SrcAddr+SrcElems).
func (e *Entry) SrcMatch(q uint16) bool {
	return elemRange(e.SrcAddr, e.SrcElems, q)
}

// DstMatch reports whether q falls within this entry's destination
// element range [DstAddr, DstAddr+DstElems).
func (e *Entry) DstMatch(q uint16) bool {
	return elemRange(e.DstAddr, e.DstElems, q)
}

func elemRange(base, count, addr uint16) bool {
	return addr >= base && uint32(addr) < uint32(base)+uint32(count)
}

// entryTimer is the lifetime timer embedded in each Entry, modeled
// directly on calltr/cstimer.go's TimerInfo: a single-shot timer that,
// when it fires, removes the entry from whichever list currently owns
// it.
type entryTimer struct {
	expire time.Time
	handle atomic.Pointer[time.Timer]
	done   int32 // atomic; set to 1 once the timer has fired or been stopped
}
