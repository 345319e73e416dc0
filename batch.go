package robinzhon

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rohaquinlop/robinzhon/errors"
	"github.com/rohaquinlop/robinzhon/internal/executor"
	"github.com/rohaquinlop/robinzhon/transfer"
)

// transferFn moves a single object and reports the identity recorded on
// success plus the number of bytes moved.
type transferFn func(ctx context.Context, item transfer.Item) (string, int64, error)

// runBatch executes items under the client's concurrency budget and collects
// per-item outcomes. One item's failure never stops the others; a slot freed
// by any finished transfer is immediately handed to the next pending item.
//
// With fail-fast enabled, the first fatal failure stops admission of new
// items. Transfers already running are drained and items that never started
// are recorded as cancelled.
func (c *Client) runBatch(ctx context.Context, direction string, items []transfer.Item, run transferFn) (*transfer.Results, error) {
	collector := transfer.NewCollector(len(items))
	exec := executor.New(c.budget).WithFailFast(c.failFast)

	admitted, fatal := exec.Run(ctx, len(items), func(ctx context.Context, i int) error {
		return c.runUnit(ctx, direction, items[i], collector, run)
	})

	// Items past the admission point never started.
	for _, item := range items[admitted:] {
		collector.Record(transfer.Cancelled(item.Key))
		c.metrics.IncCancelled(direction)
	}

	results := collector.Results()

	if fatal != nil && c.failFast {
		return results, errors.NewError(direction+" batch", fmt.Errorf("%w: %w", errors.ErrBatchAborted, fatal))
	}
	if err := ctx.Err(); err != nil && admitted < len(items) {
		return results, errors.NewError(direction+" batch", err)
	}

	return results, nil
}

// runUnit performs one transfer and records its outcome. The returned error
// feeds the executor's fatality check; the outcome itself always lands in
// the collector.
func (c *Client) runUnit(ctx context.Context, direction string, item transfer.Item, collector *transfer.Collector, run transferFn) error {
	c.metrics.TransferStarted()
	start := time.Now()

	path, written, err := run(ctx, item)

	c.metrics.TransferFinished()
	c.metrics.ObserveDuration(direction, time.Since(start))

	if err != nil {
		class := errors.Classify(err)
		collector.Record(transfer.Failed(item.Key, err, class.Kind))
		c.metrics.IncFailed(direction)
		c.logger.Warn("Transfer failed",
			zap.String("direction", direction),
			zap.String("key", item.Key),
			zap.String("kind", class.Kind.String()),
			zap.Error(err),
		)
		return err
	}

	collector.Record(transfer.Succeeded(item.Key, path))
	c.metrics.IncSucceeded(direction)
	c.metrics.AddBytes(direction, written)
	c.logger.Debug("Transfer complete",
		zap.String("direction", direction),
		zap.String("key", item.Key),
		zap.Int64("bytes", written),
	)

	return nil
}
