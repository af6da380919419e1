// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

// AnyNetIdx is the sentinel passed to the netIdx parameter of every
// search below to mean "no net_idx filter" (spec.md §4.2 describes the
// net_idx filter as optional on each lookup kind).
const AnyNetIdx int32 = -1

func netIdxMatch(e *Entry, netIdx int32) bool {
	return netIdx == AnyNetIdx || uint16(netIdx) == e.NetIdx
}

// BySrcDst finds an entry whose source and destination element ranges
// both contain the given addresses (spec.md §4.2's "by source+destination
// (each matched within its element range)").
func (t *Table) BySrcDst(l *List, src, dst uint16, netIdx int32) *Entry {
	return l.find(func(e *Entry) bool {
		return e.SrcMatch(src) && e.DstMatch(dst) && netIdxMatch(e, netIdx)
	})
}

// ByDst finds an entry whose destination element range contains dst.
func (t *Table) ByDst(l *List, dst uint16, netIdx int32) *Entry {
	return l.find(func(e *Entry) bool {
		return e.DstMatch(dst) && netIdxMatch(e, netIdx)
	})
}

// BySrc finds an entry whose source element range contains src.
func (t *Table) BySrc(l *List, src uint16, netIdx int32) *Entry {
	return l.find(func(e *Entry) bool {
		return e.SrcMatch(src) && netIdxMatch(e, netIdx)
	})
}

// BySrcDstRange finds an entry whose source_address matches src exactly
// and whose destination_address lies within [dst, dst+rangeLen).
func (t *Table) BySrcDstRange(l *List, src, dst uint16, rangeLen uint16, netIdx int32) *Entry {
	return l.find(func(e *Entry) bool {
		return e.SrcAddr == src && elemRange(dst, rangeLen, e.DstAddr) && netIdxMatch(e, netIdx)
	})
}

// BySrcRangeDst is the symmetric variant: destination_address matches dst
// exactly and source_address lies within [src, src+rangeLen).
func (t *Table) BySrcRangeDst(l *List, src, dst uint16, rangeLen uint16, netIdx int32) *Entry {
	return l.find(func(e *Entry) bool {
		return e.DstAddr == dst && elemRange(src, rangeLen, e.SrcAddr) && netIdxMatch(e, netIdx)
	})
}

// ByNextHopNetIdx finds any single entry using the given next_hop on the
// given net_idx.
func (t *Table) ByNextHopNetIdx(l *List, nextHop, netIdx uint16) *Entry {
	return l.find(func(e *Entry) bool {
		return e.NextHop == nextHop && e.NetIdx == netIdx
	})
}

// ByDstNextHopNetIdx invokes cb for every entry matching (destination in
// range, next_hop, net_idx), under the released-lock iteration discipline
// of List.ForEachMatchSafe. Used by the RERR receive fan-out (spec.md
// §4.5), which must be able to invalidate matched entries from inside cb.
func (t *Table) ByDstNextHopNetIdx(l *List, dst, nextHop, netIdx uint16, cb func(e *Entry, cur *Cursor)) {
	l.ForEachMatchSafe(
		func(e *Entry) bool {
			return e.DstMatch(dst) && e.NextHop == nextHop && e.NetIdx == netIdx
		},
		cb,
	)
}

// BySrcNetIdx invokes cb for every entry using next_hop `src` on netIdx
// (spec.md names the parameter "source" because from the perspective of
// the link-drop walk the failed neighbour is being matched against the
// entries' next_hop field — see core's link-drop handler). Kept as a
// distinct search, matching ByNextHopNetIdx's single-match sibling, for
// the callback fan-out used when a neighbour goes silent.
func (t *Table) BySrcNetIdx(l *List, nextHop, netIdx uint16, cb func(e *Entry, cur *Cursor)) {
	l.ForEachMatchSafe(
		func(e *Entry) bool {
			return e.NextHop == nextHop && e.NetIdx == netIdx
		},
		cb,
	)
}
