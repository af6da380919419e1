// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wire

import "encoding/binary"

// RWAITLen is the fixed RWAIT wire length, opcode byte excluded
// (spec.md §4.3).
const RWAITLen = 9

// RWAIT carries a ring-search delay hint back to the RREQ originator.
type RWAIT struct {
	DstAddr  uint16
	SrcAddr  uint16
	SrcSeq   uint32
	HopCount uint8
}

func (m *RWAIT) Len() int { return RWAITLen }

func (m *RWAIT) Encode(b []byte) (int, error) {
	if err := needLen(b, RWAITLen); err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(b[0:2], m.DstAddr)
	binary.LittleEndian.PutUint16(b[2:4], m.SrcAddr)
	binary.LittleEndian.PutUint32(b[4:8], m.SrcSeq)
	b[8] = m.HopCount
	return RWAITLen, nil
}

func (m *RWAIT) Decode(b []byte) error {
	if err := needLen(b, RWAITLen); err != nil {
		return err
	}
	m.DstAddr = binary.LittleEndian.Uint16(b[0:2])
	m.SrcAddr = binary.LittleEndian.Uint16(b[2:4])
	m.SrcSeq = binary.LittleEndian.Uint32(b[4:8])
	m.HopCount = b[8]
	return nil
}
