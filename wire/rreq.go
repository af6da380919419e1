// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wire

import "encoding/binary"

// RREQ flag bits (spec.md §4.3 offset 8): bit0=G, bit1=D, bit2=U, bit3=I.
// U=1 means destination_sequence_number is unknown and absent from the
// wire (spec.md §9's resolution of the two conflicting source variants).
const (
	FlagG = 1 << 0
	FlagD = 1 << 1
	FlagU = 1 << 2
	FlagI = 1 << 3
)

// RREQ is the route-request control message (spec.md §4.3, 12 or 15
// bytes depending on U).
type RREQ struct {
	SrcAddr    uint16
	DstAddr    uint16
	SrcElems   uint16
	HopCount   uint8
	RSSI       int8
	G, D, U, I bool
	SrcSeq     uint32 // 24-bit on the wire
	DstSeq     uint32 // 24-bit on the wire; valid only when !U
}

func (m *RREQ) flags() byte {
	var f byte
	if m.G {
		f |= FlagG
	}
	if m.D {
		f |= FlagD
	}
	if m.U {
		f |= FlagU
	}
	if m.I {
		f |= FlagI
	}
	return f
}

// Len reports the encoded length: 12 bytes if U, else 15.
func (m *RREQ) Len() int {
	if m.U {
		return 12
	}
	return 15
}

// Encode writes m into b, which must be at least m.Len() bytes.
func (m *RREQ) Encode(b []byte) (int, error) {
	n := m.Len()
	if err := needLen(b, n); err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(b[0:2], m.SrcAddr)
	binary.LittleEndian.PutUint16(b[2:4], m.DstAddr)
	binary.LittleEndian.PutUint16(b[4:6], m.SrcElems)
	b[6] = m.HopCount
	b[7] = byte(m.RSSI)
	b[8] = m.flags()
	putUint24(b[9:12], m.SrcSeq)
	if !m.U {
		putUint24(b[12:15], m.DstSeq)
	}
	return n, nil
}

// Decode parses an RREQ from b, taking U from the flags byte: with U=1
// dest_seq is absent and 12 bytes suffice, with U=0 b must hold all 15
// bytes (spec.md §4.3, §9).
func (m *RREQ) Decode(b []byte) error {
	if err := needLen(b, 12); err != nil {
		return err
	}
	m.SrcAddr = binary.LittleEndian.Uint16(b[0:2])
	m.DstAddr = binary.LittleEndian.Uint16(b[2:4])
	m.SrcElems = binary.LittleEndian.Uint16(b[4:6])
	m.HopCount = b[6]
	m.RSSI = int8(b[7])
	flags := b[8]
	m.G = flags&FlagG != 0
	m.D = flags&FlagD != 0
	m.U = flags&FlagU != 0
	m.I = flags&FlagI != 0
	m.SrcSeq = getUint24(b[9:12])
	m.DstSeq = 0
	if !m.U {
		if err := needLen(b, 15); err != nil {
			return err
		}
		m.DstSeq = getUint24(b[12:15])
	}
	return nil
}
