// Package robinzhon provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package robinzhon

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"

	"github.com/rohaquinlop/robinzhon/metrics"
)

// DefaultConcurrency is the number of transfers that run in parallel when
// no budget is configured.
const DefaultConcurrency = 5

// clientConfig holds the settings gathered from functional options.
type clientConfig struct {
	region          string
	endpoint        string
	forcePathStyle  bool
	timeout         time.Duration
	concurrency     int
	retries         int
	retryInterval   time.Duration
	failFast        bool
	accessKeyID     string
	secretAccessKey string
	sessionToken    string
	customAWSConfig *aws.Config
	customHTTP      *http.Client
	logger          *zap.Logger
	metrics         *metrics.Collector
}

// Option configures the client.
type Option func(*clientConfig)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) Option {
	return func(c *clientConfig) {
		c.region = region
	}
}

// WithConcurrency sets the maximum number of transfers that run in parallel
// during batch operations. Default is DefaultConcurrency. Values below 1
// cause New to fail with ErrInvalidConfig.
func WithConcurrency(concurrency int) Option {
	return func(c *clientConfig) {
		c.concurrency = concurrency
	}
}

// WithRetries enables retrying of transient transfer failures. retries is
// the number of additional attempts after the first one; 0 disables
// retrying, which is the default.
func WithRetries(retries int) Option {
	return func(c *clientConfig) {
		if retries > 0 {
			c.retries = retries
		}
	}
}

// WithRetryInterval sets the initial delay between retry attempts.
// The delay grows exponentially from this value. Default is 500ms.
// Only meaningful together with WithRetries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// WithFailFast makes batch operations stop admitting new transfers after
// the first fatal failure. Transfers already running are drained, and
// items never started are reported as cancelled. Default is to keep going
// and report every item's outcome.
func WithFailFast() Option {
	return func(c *clientConfig) {
		c.failFast = true
	}
}

// WithTimeout sets the timeout for individual S3 requests.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *clientConfig) {
		c.forcePathStyle = forcePathStyle
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *clientConfig) {
		c.endpoint = endpoint
	}
}

// WithStaticCredentials sets fixed credentials instead of the default
// credential chain. This is common with MinIO and other S3-compatible
// services. sessionToken may be empty.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(c *clientConfig) {
		c.accessKeyID = accessKeyID
		c.secretAccessKey = secretAccessKey
		c.sessionToken = sessionToken
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) Option {
	return func(c *clientConfig) {
		c.customAWSConfig = config
	}
}

// WithCustomHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithCustomHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.customHTTP = client
	}
}

// WithLogger sets the logger used for per-transfer diagnostics.
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collector that batch operations report to.
// Default is no metrics.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *clientConfig) {
		c.metrics = collector
	}
}
