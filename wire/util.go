// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package wire encodes and decodes the control-message wire formats
// (spec.md §4.3): RREQ, RREP, RWAIT and RERR. Layouts are little-endian
// and packed without padding, built on encoding/binary.LittleEndian the
// way kbgp/message builds BGP OPEN around encoding/binary and
// stream.Read*.
package wire

import "github.com/intuitivelabs/aodv"

// putUint24 writes the low 24 bits of v as 3 little-endian bytes.
// encoding/binary has no native 3-byte width, so sequence numbers and
// RERR destination-sequence entries are packed by hand.
func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

func getUint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// needLen returns aodv.ErrMalformedBuffer if b is shorter than n.
func needLen(b []byte, n int) error {
	if len(b) < n {
		return aodv.ErrMalformedBuffer
	}
	return nil
}
