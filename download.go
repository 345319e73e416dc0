package robinzhon

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/rohaquinlop/robinzhon/errors"
	"github.com/rohaquinlop/robinzhon/internal/transport"
	"github.com/rohaquinlop/robinzhon/internal/validation"
	"github.com/rohaquinlop/robinzhon/metrics"
	"github.com/rohaquinlop/robinzhon/transfer"
)

// DownloadFile fetches a single object into localPath, creating parent
// directories as needed, and returns the path written.
//
// The returned error keeps the storage service's original failure text, so
// callers see exactly why the transfer failed.
func (c *Client) DownloadFile(ctx context.Context, bucket, key, localPath string) (string, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return "", err
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return "", err
	}
	if err := validation.ValidateLocalPath(localPath); err != nil {
		return "", err
	}

	if err := ensureParentDir(localPath); err != nil {
		return "", err
	}

	if _, err := c.transport.Download(ctx, bucket, key, localPath); err != nil {
		return "", err
	}

	return localPath, nil
}

// DownloadMany fetches keys into destRoot, running up to the client's
// concurrency budget in parallel. Each object lands at destRoot joined with
// the base name of its key.
//
// The destination root is created before any transfer starts; failure to
// create it fails the whole call. After that, one object's failure never
// stops the others. The returned Results reports every item exactly once.
func (c *Client) DownloadMany(ctx context.Context, bucket string, keys []string, destRoot string) (*transfer.Results, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateLocalPath(destRoot); err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := validation.ValidateObjectKey(key); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, errors.NewError("download batch", err)
	}

	items := make([]transfer.Item, len(keys))
	for i, key := range keys {
		items[i] = transfer.Item{
			Key:       key,
			LocalPath: filepath.Join(destRoot, filepath.Base(key)),
		}
	}

	return c.runBatch(ctx, metrics.DirectionDownload, items, c.downloadRunner(bucket))
}

// DownloadManyTo fetches objects to caller-chosen local paths. Unlike
// DownloadMany, each item names its own destination, and parent directories
// are created per item, so a bad path fails only that item.
func (c *Client) DownloadManyTo(ctx context.Context, bucket string, items []transfer.Item) (*transfer.Results, error) {
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

	return c.runBatch(ctx, metrics.DirectionDownload, items, c.downloadRunner(bucket))
}

// DownloadPrefix fetches every object under prefix into destRoot, preserving
// the key structure below the prefix. An empty listing yields an empty
// Results with no error.
func (c *Client) DownloadPrefix(ctx context.Context, bucket, prefix, destRoot string) (*transfer.Results, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateLocalPath(destRoot); err != nil {
		return nil, err
	}

	items, err := c.listPrefix(ctx, bucket, prefix, destRoot)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, errors.NewError("download batch", err)
	}

	return c.runBatch(ctx, metrics.DirectionDownload, items, c.downloadRunner(bucket))
}

// listPrefix enumerates the keys under prefix and derives their local paths.
func (c *Client) listPrefix(ctx context.Context, bucket, prefix, destRoot string) ([]transfer.Item, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var items []transfer.Item

	paginator := s3.NewListObjectsV2Paginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.NewError("list", transport.MapRemoteError(err)).WithBucket(bucket)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)

			// Directory placeholder objects have nothing to download.
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}

			// A listed key still has to be safe to join below destRoot.
			if err := validation.ValidateObjectKey(key); err != nil {
				c.logger.Warn("Skipping unsafe object key",
					zap.String("bucket", bucket),
					zap.String("key", key),
					zap.Error(err),
				)
				continue
			}

			rel := strings.TrimPrefix(key, prefix)
			rel = strings.TrimPrefix(rel, "/")
			items = append(items, transfer.Item{
				Key:       key,
				LocalPath: filepath.Join(destRoot, filepath.FromSlash(rel)),
			})
		}
	}

	return items, nil
}

// downloadRunner binds a bucket to the per-item download step.
func (c *Client) downloadRunner(bucket string) transferFn {
	return func(ctx context.Context, item transfer.Item) (string, int64, error) {
		if err := ensureParentDir(item.LocalPath); err != nil {
			return "", 0, err
		}

		n, err := c.transport.Download(ctx, bucket, item.Key, item.LocalPath)
		if err != nil {
			return "", 0, err
		}

		return item.LocalPath, n, nil
	}
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewError("download", err)
	}
	return nil
}
