// Package transfer defines the batch vocabulary shared across the engine:
// items, terminal outcomes, and aggregated results.
package transfer

import (
	"github.com/rohaquinlop/robinzhon/errors"
)

// Item identifies one unit of transfer work within a batch.
type Item struct {
	// Key is the remote object key. It is the item's identity within its
	// batch; uniqueness is assumed, not enforced.
	Key string

	// LocalPath is the file a download writes to or an upload reads from.
	LocalPath string
}

// Status is the terminal status of a transfer item.
type Status string

const (
	// StatusSucceeded marks an item whose transfer completed.
	StatusSucceeded Status = "succeeded"

	// StatusFailed marks an item whose transfer failed.
	StatusFailed Status = "failed"

	// StatusCancelled marks an item that was never dispatched because the
	// batch stopped admitting work.
	StatusCancelled Status = "cancelled"
)

// Outcome records the terminal state of a single item.
// Exactly one Outcome is produced per submitted item.
type Outcome struct {
	// Status is the terminal status.
	Status Status

	// Key is the item identifier (the remote object key).
	Key string

	// Path is the resulting path of a successful transfer: the local path
	// for downloads, the remote key for uploads.
	Path string

	// Err is the failure cause of a failed transfer.
	Err error

	// Kind classifies Err.
	Kind errors.Kind
}

// Succeeded builds the outcome for a completed transfer.
func Succeeded(key, path string) Outcome {
	return Outcome{Status: StatusSucceeded, Key: key, Path: path}
}

// Failed builds the outcome for a failed transfer.
func Failed(key string, err error, kind errors.Kind) Outcome {
	return Outcome{Status: StatusFailed, Key: key, Err: err, Kind: kind}
}

// Cancelled builds the outcome for an item the batch never dispatched.
func Cancelled(key string) Outcome {
	return Outcome{Status: StatusCancelled, Key: key}
}

// Failure pairs a failed item with its error and classification.
type Failure struct {
	// Key is the item identifier.
	Key string

	// Kind is the classified failure category.
	Kind errors.Kind

	// Err is the underlying failure.
	Err error
}
