// Package robinzhon provides client initialization and configuration.
//
// The Client provides a high-level interface for moving objects between
// local disk and S3-compatible storage, with bounded concurrency and
// per-item failure isolation for batch transfers.
package robinzhon

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/rohaquinlop/robinzhon/errors"
	"github.com/rohaquinlop/robinzhon/internal/s3api"
	"github.com/rohaquinlop/robinzhon/internal/transport"
	"github.com/rohaquinlop/robinzhon/metrics"
)

// Client moves objects between local disk and S3-compatible storage.
// It is safe for concurrent use; every batch operation gets its own
// bookkeeping and shares only the underlying SDK client.
type Client struct {
	// api is the underlying AWS SDK S3 client
	api s3api.S3API

	// transport executes single GET/PUT attempts, possibly decorated
	// with retries
	transport transport.Transport

	// budget is the maximum number of transfers in flight per batch
	budget int

	// failFast stops admitting batch items after the first fatal failure
	failFast bool

	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a new transfer client with the provided options.
// It loads AWS credentials using the default credential chain
// and applies the specified configuration options.
//
// Example:
//
//	client, err := robinzhon.New(
//	    robinzhon.WithRegion("us-west-2"),
//	    robinzhon.WithConcurrency(10),
//	)
func New(opts ...Option) (*Client, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	var awsCfg aws.Config
	if cfg.customAWSConfig != nil {
		awsCfg = *cfg.customAWSConfig
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.accessKeyID != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.accessKeyID, cfg.secretAccessKey, cfg.sessionToken),
			))
		}

		awsCfg, err = config.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	// Apply region from options if specified, otherwise ensure a region is set
	if cfg.region != "" {
		awsCfg.Region = cfg.region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1" // AWS default region
	}

	var s3Opts []func(*s3.Options)

	if cfg.forcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if cfg.endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.endpoint)
		})
	}

	switch {
	case cfg.customHTTP != nil:
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = cfg.customHTTP
		})
	case cfg.timeout > 0:
		httpClient := &http.Client{
			Timeout: cfg.timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return newClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

// NewWithClient creates a transfer client around a custom S3API implementation.
// This is primarily used for testing with mocked clients. Options that shape
// AWS configuration have no effect here since the caller supplies the
// API client.
func NewWithClient(api s3api.S3API, opts ...Option) (*Client, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	return newClient(api, cfg), nil
}

// resolveConfig applies the options over defaults and validates the result.
func resolveConfig(opts []Option) (*clientConfig, error) {
	cfg := &clientConfig{
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.concurrency < 1 {
		return nil, errors.NewError("client initialization", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("concurrency must be at least 1, got %d", cfg.concurrency))
	}

	return cfg, nil
}

func newClient(api s3api.S3API, cfg *clientConfig) *Client {
	var tr transport.Transport = transport.New(api)
	if cfg.retries > 0 {
		retrying := transport.NewRetrying(tr, cfg.retries+1)
		if cfg.retryInterval > 0 {
			retrying = retrying.WithInterval(cfg.retryInterval)
		}
		tr = retrying
	}

	return &Client{
		api:       api,
		transport: tr,
		budget:    cfg.concurrency,
		failFast:  cfg.failFast,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}
}

// Concurrency returns the number of transfers the client runs in parallel
// during batch operations.
func (c *Client) Concurrency() int {
	return c.budget
}
