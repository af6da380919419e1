// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wire

import "encoding/binary"

// RREPLen is the fixed RREP wire length (spec.md §4.3).
const RREPLen = 12

// RREP is the route-reply control message.
type RREP struct {
	R          bool // repairable
	SrcAddr    uint16
	DstAddr    uint16
	DstSeq     uint32
	HopCount   uint8
	DstElems   uint16
}

func (m *RREP) Len() int { return RREPLen }

func (m *RREP) Encode(b []byte) (int, error) {
	if err := needLen(b, RREPLen); err != nil {
		return 0, err
	}
	if m.R {
		b[0] = 1
	} else {
		b[0] = 0
	}
	binary.LittleEndian.PutUint16(b[1:3], m.SrcAddr)
	binary.LittleEndian.PutUint16(b[3:5], m.DstAddr)
	binary.LittleEndian.PutUint32(b[5:9], m.DstSeq)
	b[9] = m.HopCount
	binary.LittleEndian.PutUint16(b[10:12], m.DstElems)
	return RREPLen, nil
}

func (m *RREP) Decode(b []byte) error {
	if err := needLen(b, RREPLen); err != nil {
		return err
	}
	m.R = b[0] != 0
	m.SrcAddr = binary.LittleEndian.Uint16(b[1:3])
	m.DstAddr = binary.LittleEndian.Uint16(b[3:5])
	m.DstSeq = binary.LittleEndian.Uint32(b[5:9])
	m.HopCount = b[9]
	m.DstElems = binary.LittleEndian.Uint16(b[10:12])
	return nil
}
