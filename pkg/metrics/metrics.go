// Package metrics keeps lightweight local counters in an embedded time-series
// store under the application workdir. It is intentionally not a full
// observability stack; the admin dashboard reads these series directly.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

const (
	MetricHTTPRequests   = "http_requests"
	MetricOrdersCart     = "orders_cart"
	MetricOrdersCustom   = "orders_custom"
	MetricNotifyFailures = "notify_failures"
)

var (
	storage tstorage.Storage
	mu      sync.Mutex
)

// InitMetrics opens the time-series storage below workdir. Safe to call once
// at process start; counters become no-ops if it was never called.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Incr records a single occurrence of the named metric at the current time.
func Incr(name string) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{Metric: name, DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: 1}},
	})
}

// CountSince sums the recorded datapoints of a metric from start until now.
func CountSince(name string, start time.Time) float64 {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return 0
	}
	points, err := storage.Select(name, nil, start.Unix(), time.Now().Unix()+1)
	if err != nil {
		return 0
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total
}

// Close flushes and closes the underlying storage.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
