// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package aodv

import "errors"

// Error taxonomy (spec.md §7). Receive-path handlers (Recv*, Dispatch)
// return these to their caller without logging them; the transport
// decides whether to log. Send-path and ring-search callers get them back
// directly.

var (
	// ErrLocalSource is returned (and dropped) when an RREQ's source
	// address belongs to one of the node's own elements.
	ErrLocalSource = errors.New("aodv: rreq source is a local element")

	// ErrAlreadyReplied is returned (and dropped) when an RREQ for a
	// destination this node already answered arrives again.
	ErrAlreadyReplied = errors.New("aodv: rreq already replied")

	// ErrPoolExhausted is returned when a bounded slab (route entries,
	// pending-reply, neighbour or RERR-batch records) could not allocate
	// within its configured timeout.
	ErrPoolExhausted = errors.New("aodv: pool exhausted")

	// ErrNoReply is returned by RingSearch when the ring reached
	// RREQ_RING_SEARCH_MAX_TTL without a matching RREP.
	ErrNoReply = errors.New("aodv: ring search exhausted, no reply")

	// ErrMalformedBuffer is returned by a wire decoder when the input is
	// shorter than the message's fixed minimum length.
	ErrMalformedBuffer = errors.New("aodv: malformed control message buffer")

	// ErrNotProvisioned is returned when the lower layer rejects an
	// operation because the node is not provisioned.
	ErrNotProvisioned = errors.New("aodv: node not provisioned")

	// ErrSendFailed is returned when the ctl-send primitive reports
	// failure.
	ErrSendFailed = errors.New("aodv: ctl-send failed")
)
