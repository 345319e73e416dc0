// Package errors provides error types and classification for transfer operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a transfer operation error with context about the operation
// that failed. It wraps the underlying AWS SDK or OS error so the original
// failure text stays part of the message.
type Error struct {
	// Op is the operation that failed (e.g., "download", "uploadMany")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("robinzhon.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("robinzhon.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("robinzhon.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("robinzhon.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common transfer failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates that the client was constructed with invalid
	// configuration, such as a concurrency budget below one
	ErrInvalidConfig = errors.New("robinzhon: invalid configuration")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("robinzhon: invalid input")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("robinzhon: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("robinzhon: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("robinzhon: access denied")

	// ErrInvalidCredentials indicates that the credentials were rejected
	ErrInvalidCredentials = errors.New("robinzhon: invalid credentials")

	// ErrTooManyRequests indicates that the request rate is too high
	ErrTooManyRequests = errors.New("robinzhon: too many requests")

	// ErrTimeout indicates that the operation timed out
	ErrTimeout = errors.New("robinzhon: operation timeout")

	// ErrConnection indicates a connection error
	ErrConnection = errors.New("robinzhon: connection error")

	// ErrLocalIO indicates a local filesystem read or write failure
	ErrLocalIO = errors.New("robinzhon: local I/O error")

	// ErrBatchAborted indicates that a batch stopped admitting new items
	// after a fatal condition was detected
	ErrBatchAborted = errors.New("robinzhon: batch aborted")
)

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidConfig checks if an error indicates invalid client configuration.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsBatchAborted checks if an error indicates a short-circuited batch.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBatchAborted(err error) bool {
	return errors.Is(err, ErrBatchAborted)
}
