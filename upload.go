package robinzhon

import (
	"context"

	"github.com/rohaquinlop/robinzhon/internal/validation"
	"github.com/rohaquinlop/robinzhon/metrics"
	"github.com/rohaquinlop/robinzhon/transfer"
)

// UploadFile stores a single local file at bucket/key and returns the key.
// The content type is detected from the file's leading bytes, falling back
// to the extension.
//
// The returned error keeps the storage service's original failure text, so
// callers see exactly why the transfer failed.
func (c *Client) UploadFile(ctx context.Context, bucket, key, localPath string) (string, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return "", err
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return "", err
	}
	if err := validation.ValidateLocalPath(localPath); err != nil {
		return "", err
	}

	if _, err := c.transport.Upload(ctx, bucket, localPath, key); err != nil {
		return "", err
	}

	return key, nil
}

// UploadMany stores local files at their keys, running up to the client's
// concurrency budget in parallel. One file's failure never stops the
// others. The returned Results reports every item exactly once, with
// succeeded and failed items identified by their object keys.
func (c *Client) UploadMany(ctx context.Context, bucket string, items []transfer.Item) (*transfer.Results, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := validation.ValidateObjectKey(item.Key); err != nil {
			return nil, err
		}
		if err := validation.ValidateLocalPath(item.LocalPath); err != nil {
			return nil, err
		}
	}

	return c.runBatch(ctx, metrics.DirectionUpload, items, c.uploadRunner(bucket))
}

// uploadRunner binds a bucket to the per-item upload step.
func (c *Client) uploadRunner(bucket string) transferFn {
	return func(ctx context.Context, item transfer.Item) (string, int64, error) {
		n, err := c.transport.Upload(ctx, bucket, item.LocalPath, item.Key)
		if err != nil {
			return "", 0, err
		}

		return item.Key, n, nil
	}
}
