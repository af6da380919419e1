// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package core

import (
	"github.com/intuitivelabs/aodv"
	"github.com/intuitivelabs/aodv/wire"
)

// Dispatch routes a received control message to the matching handler by
// opcode. It is the single entry point a transport (or cmd/aodvsim's
// simulated one) needs to drive a Machine from ctl-recv upcalls.
func (m *Machine) Dispatch(op aodv.Opcode, rx aodv.RxInfo, payload []byte) error {
	switch op {
	case wire.OpRREQ:
		return m.RecvRREQ(rx, payload)
	case wire.OpRREP:
		return m.RecvRREP(rx, payload)
	case wire.OpRWAIT:
		return m.RecvRWAIT(rx, payload)
	case wire.OpRERR:
		return m.RecvRERR(rx, payload)
	case wire.OpHeartbeat:
		m.RecvHello(rx)
		return nil
	default:
		return aodv.ErrMalformedBuffer
	}
}
