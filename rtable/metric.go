// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package rtable

// CombinedMetric computes M = hop_count*10 + (rssi*10)/rssiMin, the
// tie-break metric used when two RREQs reach the same node with
// different paths (spec.md §4.5). Lower M wins.
func CombinedMetric(hopCount uint8, rssi int8, rssiMin int8) float64 {
	return float64(hopCount)*10 + float64(rssi)*10/float64(rssiMin)
}

// BetterRoute reports whether a candidate (hop, rssi) beats the entry's
// currently stored metric — used by the no-two-overlapping-valid-ranges
// invariant's explicit "replace" exception (spec.md §3) and by RREQ
// receive's invalid-entry tie-break (spec.md §4.5).
func BetterRoute(e *Entry, hopCount uint8, rssi int8, rssiMin int8) bool {
	candidate := CombinedMetric(hopCount, rssi, rssiMin)
	current := CombinedMetric(e.HopCount, e.RSSI, rssiMin)
	return candidate < current
}
