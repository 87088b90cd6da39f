// Package stats exports the core's counters the way the teacher exports
// its own perf counters: package-level metric.Counter values published
// over expvar.
package stats

import (
	"expvar"

	"github.com/encodeous/metric"
)

var (
	RxDropped          = metric.NewCounter("10s1s")
	TxDropped          = metric.NewCounter("10s1s")
	FramesForwarded    = metric.NewCounter("10s1s")
	FramesReplicated   = metric.NewCounter("10s1s")
	FramesDecapsulated = metric.NewCounter("10s1s")
)

func init() {
	expvar.Publish("rbridge:RxDropped/s", RxDropped)
	expvar.Publish("rbridge:TxDropped/s", TxDropped)
	expvar.Publish("rbridge:FramesForwarded/s", FramesForwarded)
	expvar.Publish("rbridge:FramesReplicated/s", FramesReplicated)
	expvar.Publish("rbridge:FramesDecapsulated/s", FramesDecapsulated)
}

// DropKind records one drop against the rx counter when isRx is set, else
// against the tx counter.
func DropKind(isRx bool) {
	if isRx {
		RxDropped.Add(1)
	} else {
		TxDropped.Add(1)
	}
}
