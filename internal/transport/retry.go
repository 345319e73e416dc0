package transport

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	rzerrors "github.com/rohaquinlop/robinzhon/errors"
)

// defaultRetryInterval is the initial backoff delay between attempts.
const defaultRetryInterval = 500 * time.Millisecond

// Retrying wraps a Transport and re-attempts calls that fail with a
// transient classification, using exponential backoff between attempts.
// Non-transient and fatal failures are returned immediately.
type Retrying struct {
	inner       Transport
	maxAttempts int
	interval    time.Duration
}

// NewRetrying creates a retrying decorator that makes at most maxAttempts
// calls per operation. Values below 1 are clamped to 1, which disables
// retries entirely.
func NewRetrying(inner Transport, maxAttempts int) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrying{
		inner:       inner,
		maxAttempts: maxAttempts,
		interval:    defaultRetryInterval,
	}
}

// WithInterval sets the initial backoff delay and returns the decorator.
func (r *Retrying) WithInterval(d time.Duration) *Retrying {
	if d > 0 {
		r.interval = d
	}
	return r
}

var _ Transport = (*Retrying)(nil)

// Download retries the wrapped download on transient failures.
func (r *Retrying) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	return r.retry(ctx, func() (int64, error) {
		return r.inner.Download(ctx, bucket, key, localPath)
	})
}

// Upload retries the wrapped upload on transient failures.
func (r *Retrying) Upload(ctx context.Context, bucket, localPath, key string) (int64, error) {
	return r.retry(ctx, func() (int64, error) {
		return r.inner.Upload(ctx, bucket, localPath, key)
	})
}

func (r *Retrying) retry(ctx context.Context, attempt func() (int64, error)) (int64, error) {
	var n int64

	op := func() error {
		written, err := attempt()
		if err == nil {
			n = written
			return nil
		}
		if c := rzerrors.Classify(err); c.Kind != rzerrors.KindTransient || c.Fatal {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.interval
	policy.MaxElapsedTime = 0

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx))
	return n, err
}
