package transfer

import (
	"fmt"
	"sync"
)

// Results is the immutable aggregate over a completed batch. Sequences are
// in completion order, which under concurrency is not submission order.
// Every submitted item appears in exactly one sequence, exactly once.
type Results struct {
	successful []string
	failed     []string
	cancelled  []string
	failures   []Failure
}

// NewResults builds a Results from completed sequences. Successful entries
// are resulting paths; failed entries are item identifiers.
func NewResults(successful, failed []string) *Results {
	return &Results{successful: successful, failed: failed}
}

// Successful returns the resulting paths of all completed transfers.
func (r *Results) Successful() []string {
	return r.successful
}

// Failed returns the identifiers of all failed transfers.
func (r *Results) Failed() []string {
	return r.failed
}

// Cancelled returns the identifiers of items the batch never dispatched.
func (r *Results) Cancelled() []string {
	return r.cancelled
}

// Failures returns the failed items together with their classifications.
func (r *Results) Failures() []Failure {
	return r.failures
}

// TotalCount returns the number of items that reached a terminal state.
func (r *Results) TotalCount() int {
	return len(r.successful) + len(r.failed) + len(r.cancelled)
}

// SuccessRate returns the fraction of items that succeeded, 0 for an empty
// batch.
func (r *Results) SuccessRate() float64 {
	total := r.TotalCount()
	if total == 0 {
		return 0
	}
	return float64(len(r.successful)) / float64(total)
}

// HasSuccess reports whether any item succeeded.
func (r *Results) HasSuccess() bool {
	return len(r.successful) > 0
}

// HasFailures reports whether any item failed.
func (r *Results) HasFailures() bool {
	return len(r.failed) > 0
}

// IsCompleteSuccess reports whether every item succeeded. An empty batch has
// nothing failed and counts as a complete success.
func (r *Results) IsCompleteSuccess() bool {
	return len(r.failed) == 0 && len(r.cancelled) == 0
}

// String returns a one-line summary of the batch.
func (r *Results) String() string {
	if len(r.cancelled) > 0 {
		return fmt.Sprintf("transfer results: %d succeeded, %d failed, %d cancelled",
			len(r.successful), len(r.failed), len(r.cancelled))
	}
	return fmt.Sprintf("transfer results: %d succeeded, %d failed",
		len(r.successful), len(r.failed))
}

// Collector accumulates outcomes from concurrently completing transfer
// units. Record is safe for concurrent use; each outcome is appended to
// exactly one sequence.
type Collector struct {
	mu         sync.Mutex
	successful []string
	failed     []string
	cancelled  []string
	failures   []Failure
}

// NewCollector creates a Collector sized for a batch of capacity items.
func NewCollector(capacity int) *Collector {
	return &Collector{
		successful: make([]string, 0, capacity),
	}
}

// Record appends one terminal outcome.
func (c *Collector) Record(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch o.Status {
	case StatusSucceeded:
		c.successful = append(c.successful, o.Path)
	case StatusFailed:
		c.failed = append(c.failed, o.Key)
		c.failures = append(c.failures, Failure{Key: o.Key, Kind: o.Kind, Err: o.Err})
	case StatusCancelled:
		c.cancelled = append(c.cancelled, o.Key)
	}
}

// Results seals the collector into its immutable aggregate. The collector
// must not record further outcomes afterwards.
func (c *Collector) Results() *Results {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &Results{
		successful: c.successful,
		failed:     c.failed,
		cancelled:  c.cancelled,
		failures:   c.failures,
	}
}
