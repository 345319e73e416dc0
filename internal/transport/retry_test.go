package transport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rzerrors "github.com/rohaquinlop/robinzhon/errors"
)

// scriptedTransport pops one scripted error per call, then succeeds.
type scriptedTransport struct {
	errs      []error
	bytes     int64
	downloads int
	uploads   int
}

func (s *scriptedTransport) next() error {
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedTransport) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	s.downloads++
	if err := s.next(); err != nil {
		return 0, err
	}
	return s.bytes, nil
}

func (s *scriptedTransport) Upload(ctx context.Context, bucket, localPath, key string) (int64, error) {
	s.uploads++
	if err := s.next(); err != nil {
		return 0, err
	}
	return s.bytes, nil
}

func transientErr(msg string) error {
	return fmt.Errorf("%w: %s", rzerrors.ErrConnection, msg)
}

func TestRetryingRecoversFromTransientFailures(t *testing.T) {
	inner := &scriptedTransport{
		errs:  []error{transientErr("reset one"), transientErr("reset two")},
		bytes: 128,
	}
	rt := NewRetrying(inner, 3).WithInterval(time.Millisecond)

	n, err := rt.Download(context.Background(), "bucket", "key", "/tmp/file")

	require.NoError(t, err)
	assert.Equal(t, int64(128), n)
	assert.Equal(t, 3, inner.downloads)
}

func TestRetryingStopsOnNonTransientFailure(t *testing.T) {
	inner := &scriptedTransport{
		errs: []error{fmt.Errorf("%w: key gone", rzerrors.ErrObjectNotFound)},
	}
	rt := NewRetrying(inner, 5).WithInterval(time.Millisecond)

	_, err := rt.Download(context.Background(), "bucket", "key", "/tmp/file")

	require.Error(t, err)
	assert.True(t, rzerrors.IsObjectNotFound(err))
	assert.Contains(t, err.Error(), "key gone")
	assert.Equal(t, 1, inner.downloads, "non-transient failures must not be retried")
}

func TestRetryingExhaustsAttempts(t *testing.T) {
	inner := &scriptedTransport{
		errs: []error{transientErr("a"), transientErr("b"), transientErr("c"), transientErr("d")},
	}
	rt := NewRetrying(inner, 3).WithInterval(time.Millisecond)

	_, err := rt.Download(context.Background(), "bucket", "key", "/tmp/file")

	require.Error(t, err)
	assert.Equal(t, 3, inner.downloads)
	// The last attempt's error is what surfaces.
	assert.Contains(t, err.Error(), "c")
}

func TestRetryingSingleAttempt(t *testing.T) {
	inner := &scriptedTransport{
		errs: []error{transientErr("reset")},
	}
	rt := NewRetrying(inner, 1).WithInterval(time.Millisecond)

	_, err := rt.Download(context.Background(), "bucket", "key", "/tmp/file")

	require.Error(t, err)
	assert.Equal(t, 1, inner.downloads)
}

func TestRetryingClampsAttempts(t *testing.T) {
	inner := &scriptedTransport{errs: []error{transientErr("reset")}}
	rt := NewRetrying(inner, 0).WithInterval(time.Millisecond)

	_, err := rt.Download(context.Background(), "bucket", "key", "/tmp/file")

	require.Error(t, err)
	assert.Equal(t, 1, inner.downloads)
}

func TestRetryingUploadDelegates(t *testing.T) {
	inner := &scriptedTransport{
		errs:  []error{transientErr("reset")},
		bytes: 256,
	}
	rt := NewRetrying(inner, 2).WithInterval(time.Millisecond)

	n, err := rt.Upload(context.Background(), "bucket", "/tmp/file", "key")

	require.NoError(t, err)
	assert.Equal(t, int64(256), n)
	assert.Equal(t, 2, inner.uploads)
}
