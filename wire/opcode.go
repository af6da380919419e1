// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wire

import "github.com/intuitivelabs/aodv"

// Opcode values are opaque constants assigned by the host mesh transport
// (spec.md §6); these are placeholders for a standalone deployment and a
// simulated transport (cmd/aodvsim), not a claim about any particular
// mesh profile's numbering.
const (
	OpRREQ      aodv.Opcode = 1
	OpRREP      aodv.Opcode = 2
	OpRWAIT     aodv.Opcode = 3
	OpRERR      aodv.Opcode = 4
	OpHeartbeat aodv.Opcode = 5
)
