package cp

import (
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Lightweight, opt-in tracing for fix-point and search events. Enable by
// setting env var GOCP_TRACE=1 or by calling EnableTrace. Disabled by
// default: a solver running millions of propagations per second cannot pay
// for structured logging on every node.

var traceEnabled atomic.Bool

var traceLog = logrus.New()

func init() {
	traceLog.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	traceLog.SetLevel(logrus.DebugLevel)
	if os.Getenv("GOCP_TRACE") == "1" {
		traceEnabled.Store(true)
	}
}

// EnableTrace turns on structured tracing of fix-point and search events.
func EnableTrace() { traceEnabled.Store(true) }

// DisableTrace turns tracing back off.
func DisableTrace() { traceEnabled.Store(false) }

func trace(fields logrus.Fields, msg string) {
	if !traceEnabled.Load() {
		return
	}
	traceLog.WithFields(fields).Debug(msg)
}
