// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package rtable implements components A (entry pool & timed lists) and
// B (routing table) of the AODV routing core: a bounded slab of route
// entries split between a valid and an invalid intrusive list, each
// guarded by its own mutex, with per-entry lifetime timers and a family
// of range-aware lookups.
//
// Lock order: when both lists must be held (Table.move), Valid is always
// locked before Invalid. Nothing in this package calls back into package
// auxlist or core while holding either lock.
package rtable
