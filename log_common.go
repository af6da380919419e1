// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package aodv

// logging functions

import (
	"github.com/intuitivelabs/slog"
)

// Log is the generic log for the routing core.
var Log slog.Log = slog.New(slog.LERR, slog.LbackTraceL|slog.LlocInfoL,
	slog.LStdErr)

// BuildTags records which optional build tags were compiled in (currently
// just the debug/nodebug logging split); useful for diagnostics dumps.
var BuildTags []string

// WARN is a shorthand for logging a warning message.
func WARN(f string, a ...interface{}) {
	Log.LLog(slog.LWARN, 1, "WARNING: aodv: ", f, a...)
}

// ERR is a shorthand for logging an error message.
func ERR(f string, a ...interface{}) {
	Log.LLog(slog.LERR, 1, "ERROR: aodv: ", f, a...)
}

// BUG is a shorthand for logging a bug message.
func BUG(f string, a ...interface{}) {
	Log.LLog(slog.LBUG, 1, "BUG: aodv: ", f, a...)
}
