package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schemagen/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCount reads the sample count from a SummaryVec child.
func readSummaryCount(t *testing.T, v *prometheus.SummaryVec, labels ...string) uint64 {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	if m.GetSummary() == nil {
		t.Fatalf("metric did not contain Summary value")
	}
	return m.GetSummary().GetSampleCount()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL returns error", jobName: "x", wantErr: true},
		{name: "empty job name uses default", gatewayURL: "http://pushgateway:9091", wantJobName: "schemagen"},
		{name: "explicit job name is preserved", jobName: "nightly", gatewayURL: "http://pushgateway:9091", wantJobName: "nightly"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend(%q, %q) = (%v, %v), want (nil, error)", tt.jobName, tt.gatewayURL, b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q, %q) error = %v", tt.jobName, tt.gatewayURL, err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("backend.jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

// TestIncCounterAndObserve verifies routing of known metric names and that
// unknown names are ignored.
func TestIncCounterAndObserve(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("job", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "render", "status": "success"})
	b.IncCounter(metrics.TablesTotal, 4, metrics.Labels{"kind": "emitted"})
	b.IncCounter(metrics.TablesTotal, 2, metrics.Labels{"kind": "skipped"})
	b.IncCounter(metrics.ColumnsTotal, 17, nil)
	b.IncCounter("unknown_metric", 99, nil)
	b.ObserveHistogram(metrics.StepDuration, 0.25, metrics.Labels{"step": "render", "status": "success"})
	b.ObserveHistogram("unknown_hist", 1, nil)

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("render", "success")); got != 1 {
		t.Fatalf("step counter = %v, want 1", got)
	}
	if got := readCounterValue(t, b.tableCounter.WithLabelValues("emitted")); got != 4 {
		t.Fatalf("emitted tables = %v, want 4", got)
	}
	if got := readCounterValue(t, b.tableCounter.WithLabelValues("skipped")); got != 2 {
		t.Fatalf("skipped tables = %v, want 2", got)
	}
	if got := readCounterValue(t, b.columnCounter); got != 17 {
		t.Fatalf("columns = %v, want 17", got)
	}
	if got := readSummaryCount(t, b.stepDuration, "render", "success"); got != 1 {
		t.Fatalf("step duration samples = %d, want 1", got)
	}
}

// TestIncCounterNilMetrics verifies a zero Backend does not panic.
func TestIncCounterNilMetrics(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.IncCounter(metrics.TablesTotal, 1, nil)
	b.IncCounter(metrics.ColumnsTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDuration, 1, nil)
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway under the job grouping key.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method string
		path   string
		body   string
	}
	reqCh := make(chan pushRequestInfo, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushRequestInfo{method: r.Method, path: r.URL.Path, body: string(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("schemagen-test", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.TablesTotal, 1, metrics.Labels{"kind": "emitted"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}

	if got.method != http.MethodPut {
		t.Fatalf("push method = %q, want PUT", got.method)
	}
	if !strings.Contains(got.path, "/job/schemagen-test") {
		t.Fatalf("push path = %q, want job grouping", got.path)
	}
	if len(got.body) == 0 {
		t.Fatalf("push body is empty")
	}
}
