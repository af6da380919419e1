// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package auxlist holds the three auxiliary lists that support the
// AODV state machine (spec.md §3, §4.4): the pending-reply list (the
// ring-search wake queue), the neighbour heartbeat list, and the
// outbound RERR batching list.
//
// Each is, like rtable, a fixed-capacity slab plus a free-index stack
// plus a mutex-guarded intrusive list — sized independently since the
// three serve unrelated purposes and have no reason to share a lock.
// The fixed global lock order (spec.md §5) places all three after
// rtable's valid/invalid pair: pending-reply, then RERR-batch, then
// neighbour. No function in this package calls back into rtable while
// holding one of its own locks; cross-package notifications (e.g. "this
// neighbour expired, walk the valid list") happen via a callback
// invoked after the originating lock has been released.
package auxlist
