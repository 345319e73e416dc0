package errors

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"os"
	"strings"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Kind buckets a transfer failure into the categories callers act on.
type Kind string

const (
	// KindNotFound means the remote object (or bucket) does not exist.
	KindNotFound Kind = "not_found"

	// KindPermissionDenied means the remote side refused access.
	KindPermissionDenied Kind = "permission_denied"

	// KindTransient means a retriable network or service condition.
	KindTransient Kind = "transient"

	// KindLocalIO means the local filesystem could not be read or written.
	KindLocalIO Kind = "local_io"

	// KindUnknown means the failure did not match any known category.
	KindUnknown Kind = "unknown"
)

// String returns the kind as a plain label.
func (k Kind) String() string {
	return string(k)
}

// Classification is the result of classifying a transfer failure.
// Fatal marks conditions that doom the whole batch, such as rejected
// credentials or an unreachable endpoint, as opposed to object-specific
// conditions that only fail one item.
type Classification struct {
	Kind  Kind
	Fatal bool
}

// Classify maps a raw transfer failure to its Classification.
// Sentinel errors are checked first so wrapped and injected errors classify
// the same way as raw SDK errors.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return Classification{Kind: KindNotFound}
	case errors.Is(err, ErrBucketNotFound):
		return Classification{Kind: KindNotFound, Fatal: true}
	case errors.Is(err, ErrAccessDenied):
		return Classification{Kind: KindPermissionDenied}
	case errors.Is(err, ErrInvalidCredentials):
		return Classification{Kind: KindPermissionDenied, Fatal: true}
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrConnection), errors.Is(err, ErrTooManyRequests):
		return Classification{Kind: KindTransient}
	case errors.Is(err, ErrLocalIO):
		return Classification{Kind: KindLocalIO}
	}

	var noKey *s3types.NoSuchKey
	var notFound *s3types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return Classification{Kind: KindNotFound}
	}
	var noBucket *s3types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return Classification{Kind: KindNotFound, Fatal: true}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if c, ok := classifyAPICode(apiErr.ErrorCode()); ok {
			return c
		}
	}

	var httpErr interface{ HTTPStatusCode() int }
	if errors.As(err, &httpErr) {
		if c, ok := classifyHTTPStatus(httpErr.HTTPStatusCode()); ok {
			return c
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Classification{Kind: KindTransient}
	}
	if errors.Is(err, context.Canceled) {
		// The context governs the whole batch, so its cancellation is
		// never an object-specific condition.
		return Classification{Kind: KindUnknown, Fatal: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Classification{Kind: KindTransient, Fatal: true}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		// A failed dial means the endpoint itself is unreachable.
		return Classification{Kind: KindTransient, Fatal: opErr.Op == "dial"}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Classification{Kind: KindTransient}
	}

	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var sysErr *os.SyscallError
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &sysErr) {
		return Classification{Kind: KindLocalIO}
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrClosed) {
		return Classification{Kind: KindLocalIO}
	}

	if containsTransientMarker(err.Error()) {
		return Classification{Kind: KindTransient}
	}

	return Classification{Kind: KindUnknown}
}

// KindOf returns the classified kind of err.
func KindOf(err error) Kind {
	return Classify(err).Kind
}

// IsFatal reports whether err indicates a condition that dooms the whole
// batch rather than a single item.
func IsFatal(err error) bool {
	return Classify(err).Fatal
}

// classifyAPICode maps S3 API error codes to classifications.
// Codes outside the table fall through to the later structural checks.
func classifyAPICode(code string) (Classification, bool) {
	switch code {
	case "NoSuchKey", "NotFound":
		return Classification{Kind: KindNotFound}, true
	case "NoSuchBucket":
		return Classification{Kind: KindNotFound, Fatal: true}, true
	case "AccessDenied":
		return Classification{Kind: KindPermissionDenied}, true
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "TokenRefreshRequired":
		return Classification{Kind: KindPermissionDenied, Fatal: true}, true
	case "SlowDown", "Throttling", "ThrottlingException", "RequestTimeout", "RequestLimitExceeded",
		"InternalError", "ServiceUnavailable":
		return Classification{Kind: KindTransient}, true
	}
	return Classification{}, false
}

// classifyHTTPStatus maps raw HTTP response codes for errors the SDK did not
// resolve to a modeled API error.
func classifyHTTPStatus(status int) (Classification, bool) {
	switch {
	case status == 404:
		return Classification{Kind: KindNotFound}, true
	case status == 401 || status == 403:
		return Classification{Kind: KindPermissionDenied}, true
	case status == 408 || status == 429:
		return Classification{Kind: KindTransient}, true
	case status >= 500:
		return Classification{Kind: KindTransient}, true
	}
	return Classification{}, false
}

// transientMarkers is the substring fallback for errors that arrive as bare
// strings, typically from wrapped transport failures.
var transientMarkers = []string{
	"timeout",
	"timed out",
	"connection reset",
	"connection refused",
	"broken pipe",
	"temporarily unavailable",
	"service unavailable",
	"unexpected eof",
	"slow down",
	"too many requests",
}

func containsTransientMarker(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
