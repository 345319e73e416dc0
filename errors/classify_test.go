package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

// statusError fakes an unmodeled SDK failure that only carries a status code.
type statusError struct {
	status int
}

func (e *statusError) Error() string       { return fmt.Sprintf("https response error StatusCode: %d", e.status) }
func (e *statusError) HTTPStatusCode() int { return e.status }

// timeoutError fakes a net.Error that timed out.
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o deadline reached" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  Kind
		wantFatal bool
	}{
		{
			name:     "sentinel object not found",
			err:      fmt.Errorf("get failed: %w", ErrObjectNotFound),
			wantKind: KindNotFound,
		},
		{
			name:      "sentinel bucket not found is fatal",
			err:       NewBucketError("download", "missing", ErrBucketNotFound),
			wantKind:  KindNotFound,
			wantFatal: true,
		},
		{
			name:     "sentinel access denied",
			err:      ErrAccessDenied,
			wantKind: KindPermissionDenied,
		},
		{
			name:      "sentinel invalid credentials is fatal",
			err:       NewError("download", ErrInvalidCredentials),
			wantKind:  KindPermissionDenied,
			wantFatal: true,
		},
		{
			name:     "sentinel timeout",
			err:      ErrTimeout,
			wantKind: KindTransient,
		},
		{
			name:     "sentinel local io",
			err:      fmt.Errorf("%w: create /tmp/x", ErrLocalIO),
			wantKind: KindLocalIO,
		},
		{
			name:     "typed NoSuchKey",
			err:      &s3types.NoSuchKey{},
			wantKind: KindNotFound,
		},
		{
			name:      "typed NoSuchBucket is fatal",
			err:       &s3types.NoSuchBucket{},
			wantKind:  KindNotFound,
			wantFatal: true,
		},
		{
			name:     "api error AccessDenied",
			err:      &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"},
			wantKind: KindPermissionDenied,
		},
		{
			name:      "api error InvalidAccessKeyId is fatal",
			err:       &smithy.GenericAPIError{Code: "InvalidAccessKeyId", Message: "The AWS Access Key Id you provided does not exist"},
			wantKind:  KindPermissionDenied,
			wantFatal: true,
		},
		{
			name:      "api error SignatureDoesNotMatch is fatal",
			err:       &smithy.GenericAPIError{Code: "SignatureDoesNotMatch", Message: "signature mismatch"},
			wantKind:  KindPermissionDenied,
			wantFatal: true,
		},
		{
			name:     "api error SlowDown",
			err:      &smithy.GenericAPIError{Code: "SlowDown", Message: "Please reduce your request rate"},
			wantKind: KindTransient,
		},
		{
			name:     "api error InternalError",
			err:      &smithy.GenericAPIError{Code: "InternalError", Message: "We encountered an internal error"},
			wantKind: KindTransient,
		},
		{
			name:     "wrapped api error",
			err:      NewObjectError("download", "b", "k", &smithy.GenericAPIError{Code: "NoSuchKey"}),
			wantKind: KindNotFound,
		},
		{
			name:     "http 404",
			err:      &statusError{status: 404},
			wantKind: KindNotFound,
		},
		{
			name:     "http 403",
			err:      &statusError{status: 403},
			wantKind: KindPermissionDenied,
		},
		{
			name:     "http 503",
			err:      &statusError{status: 503},
			wantKind: KindTransient,
		},
		{
			name:     "http 429",
			err:      &statusError{status: 429},
			wantKind: KindTransient,
		},
		{
			name:     "context deadline",
			err:      context.DeadlineExceeded,
			wantKind: KindTransient,
		},
		{
			name:      "context cancelled is fatal",
			err:       fmt.Errorf("download: %w", context.Canceled),
			wantKind:  KindUnknown,
			wantFatal: true,
		},
		{
			name:      "dns failure is fatal",
			err:       &net.DNSError{Err: "no such host", Name: "s3.invalid"},
			wantKind:  KindTransient,
			wantFatal: true,
		},
		{
			name:      "dial failure is fatal",
			err:       &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")},
			wantKind:  KindTransient,
			wantFatal: true,
		},
		{
			name:     "mid-stream connection error",
			err:      &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")},
			wantKind: KindTransient,
		},
		{
			name:     "net timeout",
			err:      &timeoutError{},
			wantKind: KindTransient,
		},
		{
			name:     "path error",
			err:      &fs.PathError{Op: "open", Path: "/missing/file", Err: fs.ErrNotExist},
			wantKind: KindLocalIO,
		},
		{
			name:     "bare permission error",
			err:      fmt.Errorf("write target: %w", fs.ErrPermission),
			wantKind: KindLocalIO,
		},
		{
			name:     "transient marker fallback",
			err:      errors.New("read tcp 10.0.0.1:443: connection reset by peer"),
			wantKind: KindTransient,
		},
		{
			name:     "unknown error",
			err:      errors.New("object storage returned something inexplicable"),
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantFatal, got.Fatal)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, Classification{}, Classify(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrObjectNotFound))
	assert.Equal(t, KindUnknown, KindOf(errors.New("mystery")))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrInvalidCredentials))
	assert.False(t, IsFatal(ErrObjectNotFound))
	assert.False(t, IsFatal(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "permission_denied", KindPermissionDenied.String())
}
