// Package robinzhon provides tests for client initialization and configuration.
package robinzhon

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rohaquinlop/robinzhon/errors"
	"github.com/rohaquinlop/robinzhon/internal/testutil"
	"github.com/rohaquinlop/robinzhon/metrics"
)

// TestClient_New tests the New() constructor configuration handling.
func TestClient_New(t *testing.T) {
	// A pre-built AWS config keeps these tests off the credential chain.
	awsCfg := &aws.Config{Region: "us-east-1"}

	tests := []struct {
		name        string
		opts        []Option
		wantErr     bool
		errContains string
		wantBudget  int
	}{
		{
			name:       "default configuration",
			opts:       []Option{WithAWSConfig(awsCfg)},
			wantErr:    false,
			wantBudget: DefaultConcurrency,
		},
		{
			name: "with region and concurrency",
			opts: []Option{
				WithAWSConfig(awsCfg),
				WithRegion("us-west-2"),
				WithConcurrency(10),
			},
			wantErr:    false,
			wantBudget: 10,
		},
		{
			name: "with endpoint and path style",
			opts: []Option{
				WithAWSConfig(awsCfg),
				WithEndpoint("http://localhost:9000"),
				WithForcePathStyle(true),
				WithStaticCredentials("minioadmin", "minioadmin", ""),
			},
			wantErr:    false,
			wantBudget: DefaultConcurrency,
		},
		{
			name: "with timeout and retries",
			opts: []Option{
				WithAWSConfig(awsCfg),
				WithTimeout(30 * time.Second),
				WithRetries(2),
			},
			wantErr:    false,
			wantBudget: DefaultConcurrency,
		},
		{
			name:        "zero concurrency is rejected",
			opts:        []Option{WithAWSConfig(awsCfg), WithConcurrency(0)},
			wantErr:     true,
			errContains: "concurrency must be at least 1, got 0",
		},
		{
			name:        "negative concurrency is rejected",
			opts:        []Option{WithAWSConfig(awsCfg), WithConcurrency(-3)},
			wantErr:     true,
			errContains: "concurrency must be at least 1, got -3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, client)
				assert.True(t, errors.IsInvalidConfig(err))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NotNil(t, client.api)
			assert.NotNil(t, client.transport)
			assert.Equal(t, tt.wantBudget, client.Concurrency())
		})
	}
}

// TestClient_NewWithClient tests constructing a client around a mocked API.
func TestClient_NewWithClient(t *testing.T) {
	t.Run("applies options", func(t *testing.T) {
		mock := &testutil.MockS3Client{}
		client, err := NewWithClient(mock,
			WithConcurrency(3),
			WithFailFast(),
			WithLogger(zap.NewNop()),
			WithMetrics(metrics.New(nil)),
		)

		require.NoError(t, err)
		assert.Equal(t, 3, client.Concurrency())
		assert.True(t, client.failFast)
	})

	t.Run("uses defaults", func(t *testing.T) {
		client, err := NewWithClient(&testutil.MockS3Client{})

		require.NoError(t, err)
		assert.Equal(t, DefaultConcurrency, client.Concurrency())
		assert.False(t, client.failFast)
		assert.NotNil(t, client.logger)
	})

	t.Run("rejects invalid concurrency", func(t *testing.T) {
		client, err := NewWithClient(&testutil.MockS3Client{}, WithConcurrency(0))

		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("negative retries are ignored", func(t *testing.T) {
		client, err := NewWithClient(&testutil.MockS3Client{}, WithRetries(-1))

		require.NoError(t, err)
		require.NotNil(t, client)
	})
}
