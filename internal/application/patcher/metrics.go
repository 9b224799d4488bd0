package patcher

import "time"

// Resource outcomes passed to Metrics.RecordResource.
const (
	ResourceLoaded  = "loaded"
	ResourceSkipped = "skipped"
	ResourceFailed  = "failed"
)

// Run modes and outcomes passed to Metrics.RecordRun.
const (
	ModeLocal   = "local"
	ModeCluster = "cluster"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics records patch activity
type Metrics interface {
	RecordResource(name, outcome string)
	RecordCodecsRemoved(n int)
	RecordRun(mode, outcome string, duration time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RecordResource(string, string)           {}
func (nopMetrics) RecordCodecsRemoved(int)                 {}
func (nopMetrics) RecordRun(string, string, time.Duration) {}
