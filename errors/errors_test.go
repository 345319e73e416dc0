package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	underlying := errors.New("api error NoSuchKey: The specified key does not exist.")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bucket and key",
			err:  NewObjectError("download", "my-bucket", "data/file.bin", underlying),
			want: "robinzhon.download my-bucket/data/file.bin: api error NoSuchKey: The specified key does not exist.",
		},
		{
			name: "bucket only",
			err:  NewBucketError("downloadMany", "my-bucket", underlying),
			want: "robinzhon.downloadMany bucket my-bucket: api error NoSuchKey: The specified key does not exist.",
		},
		{
			name: "key only",
			err:  NewError("upload", underlying).WithKey("data/file.bin"),
			want: "robinzhon.upload object data/file.bin: api error NoSuchKey: The specified key does not exist.",
		},
		{
			name: "operation only",
			err:  NewError("new", underlying),
			want: "robinzhon.new: api error NoSuchKey: The specified key does not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorPreservesOriginalMessage(t *testing.T) {
	underlying := errors.New("connect: connection refused on 10.0.0.7:443")

	err := NewObjectError("download", "bucket", "key", underlying)

	// The wrapped message must still contain the original failure verbatim.
	assert.Contains(t, err.Error(), underlying.Error())
}

func TestErrorUnwrap(t *testing.T) {
	err := NewObjectError("download", "bucket", "key", ErrObjectNotFound)

	require.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, ErrObjectNotFound, errors.Unwrap(err))
}

func TestErrorWithMessage(t *testing.T) {
	err := NewError("upload", ErrLocalIO).WithMessage("reading source file")

	assert.Contains(t, err.Error(), "reading source file")
	assert.ErrorIs(t, err, ErrLocalIO)
}

func TestErrorBuilders(t *testing.T) {
	err := NewError("download", ErrAccessDenied).WithBucket("b").WithKey("k")

	assert.Equal(t, "b", err.Bucket)
	assert.Equal(t, "k", err.Key)
	assert.Equal(t, "download", err.Op)
}

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"object not found wrapped", fmt.Errorf("get failed: %w", ErrObjectNotFound), IsObjectNotFound, true},
		{"object not found mismatch", ErrAccessDenied, IsObjectNotFound, false},
		{"bucket not found", NewBucketError("download", "b", ErrBucketNotFound), IsBucketNotFound, true},
		{"access denied", NewObjectError("upload", "b", "k", ErrAccessDenied), IsAccessDenied, true},
		{"invalid input", fmt.Errorf("bucket name: %w", ErrInvalidInput), IsInvalidInput, true},
		{"invalid config", NewError("new", ErrInvalidConfig), IsInvalidConfig, true},
		{"batch aborted", fmt.Errorf("%w: credentials rejected", ErrBatchAborted), IsBatchAborted, true},
		{"nil error", nil, IsObjectNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}
