// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wire

import "github.com/intuitivelabs/aodv"

// rerrEntryLen is the size of one (destination_address,
// destination_sequence_number) pair in an RERR's destination list
// (spec.md §4.3): a 2-byte address and a 3-byte sequence number.
const rerrEntryLen = 5

// RERRDest is one destination entry in an RERR message.
type RERRDest struct {
	Addr uint16
	Seq  uint32 // 24-bit on the wire
}

// RERR is the route-error control message: a destination_count byte
// followed by that many RERRDest entries.
type RERR struct {
	Dests []RERRDest
}

// Len reports the encoded length for the current destination count.
func (m *RERR) Len() int {
	return 1 + len(m.Dests)*rerrEntryLen
}

// Encode writes m into b. Returns aodv.ErrMalformedBuffer if
// len(m.Dests) exceeds 255 (destination_count is a single byte) or b is
// too short.
func (m *RERR) Encode(b []byte) (int, error) {
	if len(m.Dests) > 255 {
		return 0, aodv.ErrMalformedBuffer
	}
	n := m.Len()
	if err := needLen(b, n); err != nil {
		return 0, err
	}
	b[0] = byte(len(m.Dests))
	off := 1
	for _, d := range m.Dests {
		b[off] = byte(d.Addr)
		b[off+1] = byte(d.Addr >> 8)
		putUint24(b[off+2:off+5], d.Seq)
		off += rerrEntryLen
	}
	return n, nil
}

// Decode parses an RERR from b.
func (m *RERR) Decode(b []byte) error {
	if err := needLen(b, 1); err != nil {
		return err
	}
	count := int(b[0])
	need := 1 + count*rerrEntryLen
	if err := needLen(b, need); err != nil {
		return err
	}
	m.Dests = make([]RERRDest, count)
	off := 1
	for i := 0; i < count; i++ {
		addr := uint16(b[off]) | uint16(b[off+1])<<8
		seq := getUint24(b[off+2 : off+5])
		m.Dests[i] = RERRDest{Addr: addr, Seq: seq}
		off += rerrEntryLen
	}
	return nil
}
