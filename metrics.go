// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package aodv

// Diagnostic-only overhead accounting (spec.md §4.6). Every decode path
// in package core reports its byte-count approximation here; nothing in
// this module ever branches on the recorded values.

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// define and register the metrics used by the routing core.
func init() {
	initFrameMetrics()
}

var frameMetrics = struct {
	bytesTotal *prometheus.CounterVec
	overhead   *prometheus.HistogramVec
}{}

func initFrameMetrics() {
	const ns = "aodv"
	frameMetrics.bytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "frame",
		Name:      "bytes_total",
		Help:      "Approximate link-layer bytes accounted per control opcode.",
	}, []string{"opcode"})
	frameMetrics.overhead = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "frame",
		Name:      "overhead_bytes",
		Help:      "segments*overhead + payload approximation per decoded frame.",
		Buckets:   prometheus.LinearBuckets(0, 16, 10),
	}, []string{"opcode"})
}

// FrameOverhead is the per-segment framing cost assumed by the byte-count
// approximation (transport header + MIC, not modeled further since
// encryption/fragmentation belong to the lower layer, out of scope here).
const FrameOverhead = 14

// RecordFrame computes segments*FrameOverhead+payload and records it,
// labeled by opcode. It is called from every successful decode path in
// package core; the computation is observational only.
func RecordFrame(opcode Opcode, segments int, payloadLen int) int {
	approx := segments*FrameOverhead + payloadLen
	label := strconv.Itoa(int(opcode))
	frameMetrics.bytesTotal.WithLabelValues(label).Add(float64(approx))
	frameMetrics.overhead.WithLabelValues(label).Observe(float64(approx))
	return approx
}
