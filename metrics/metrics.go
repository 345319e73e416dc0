// Package metrics collects Prometheus instrumentation for transfer batches.
//
// The collector is optional. A nil *Collector is safe to use and records
// nothing, so callers that do not scrape metrics pay no cost.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Transfer direction label values.
const (
	DirectionDownload = "download"
	DirectionUpload   = "upload"
)

// Transfer status label values.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Collector collects and exposes transfer metrics.
type Collector struct {
	transfersTotal *prometheus.CounterVec
	bytesTotal     *prometheus.CounterVec
	inflight       prometheus.Gauge
	duration       *prometheus.HistogramVec
}

// New creates a metrics collector and registers it with reg. Passing
// prometheus.DefaultRegisterer wires the collector into the process-wide
// registry; a nil reg leaves the metrics unregistered, which is useful
// in tests.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robinzhon_transfers_total",
				Help: "Total number of object transfers by direction and status",
			},
			[]string{"direction", "status"},
		),
		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robinzhon_transfer_bytes_total",
				Help: "Total bytes moved by direction",
			},
			[]string{"direction"},
		),
		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "robinzhon_inflight_transfers",
				Help: "Number of transfers currently running",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "robinzhon_transfer_duration_seconds",
				Help:    "Time taken to transfer a single object",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"direction"},
		),
	}

	if reg != nil {
		reg.MustRegister(c.transfersTotal, c.bytesTotal, c.inflight, c.duration)
	}

	return c
}

// IncSucceeded increments the succeeded transfer counter.
func (c *Collector) IncSucceeded(direction string) {
	if c == nil {
		return
	}
	c.transfersTotal.WithLabelValues(direction, StatusSucceeded).Inc()
}

// IncFailed increments the failed transfer counter.
func (c *Collector) IncFailed(direction string) {
	if c == nil {
		return
	}
	c.transfersTotal.WithLabelValues(direction, StatusFailed).Inc()
}

// IncCancelled increments the cancelled transfer counter.
func (c *Collector) IncCancelled(direction string) {
	if c == nil {
		return
	}
	c.transfersTotal.WithLabelValues(direction, StatusCancelled).Inc()
}

// AddBytes adds to the total bytes moved in the given direction.
func (c *Collector) AddBytes(direction string, bytes int64) {
	if c == nil {
		return
	}
	c.bytesTotal.WithLabelValues(direction).Add(float64(bytes))
}

// TransferStarted marks one more transfer as running.
func (c *Collector) TransferStarted() {
	if c == nil {
		return
	}
	c.inflight.Inc()
}

// TransferFinished marks one transfer as no longer running.
func (c *Collector) TransferFinished() {
	if c == nil {
		return
	}
	c.inflight.Dec()
}

// ObserveDuration records how long a single transfer took.
func (c *Collector) ObserveDuration(direction string, d time.Duration) {
	if c == nil {
		return
	}
	c.duration.WithLabelValues(direction).Observe(d.Seconds())
}
