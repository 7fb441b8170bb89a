// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from a schema export run.
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data (histograms).
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//
// Concrete metric systems live in subpackages (prompush, datadog).
package metrics

import "time"

// Metric names shared by all backends.
const (
	StepTotal    = "schemagen_step_total"
	StepDuration = "schemagen_step_duration_seconds"
	TablesTotal  = "schemagen_tables_total"
	ColumnsTotal = "schemagen_columns_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency + success/failure of one run step
// (fetch, load, render, write, apply).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordTables increments the table counter for the given kind:
//   - "emitted": a CREATE TABLE statement was rendered
//   - "skipped": the table matched the system table exclusion
//   - "applied": the statement was executed against Postgres
func RecordTables(job, kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(TablesTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordColumns increments the rendered column counter.
func RecordColumns(job string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(ColumnsTotal, float64(delta), Labels{
		"job": job,
	})
}
