// Package transport executes single GET and PUT attempts against the object
// store. It is the only package that touches the network and the local
// filesystem directly.
//
// A transport call is exactly one attempt; retry policy belongs to the
// Retrying decorator or to the caller.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"

	rzerrors "github.com/rohaquinlop/robinzhon/errors"
	"github.com/rohaquinlop/robinzhon/internal/pool"
	"github.com/rohaquinlop/robinzhon/internal/s3api"
)

// DefaultContentType is used when the upload payload type cannot be determined.
const DefaultContentType = "application/octet-stream"

// Transport executes exactly one GET or PUT per call.
type Transport interface {
	// Download fetches bucket/key into localPath and returns the bytes written.
	Download(ctx context.Context, bucket, key, localPath string) (int64, error)

	// Upload stores localPath at bucket/key and returns the bytes read.
	Upload(ctx context.Context, bucket, localPath, key string) (int64, error)
}

// S3 is the AWS SDK backed Transport.
type S3 struct {
	client s3api.S3API
}

// New creates a new SDK-backed transport.
func New(client s3api.S3API) *S3 {
	return &S3{
		client: client,
	}
}

var _ Transport = (*S3)(nil)

// Download performs a single GetObject and streams the body to localPath.
// The destination file is created or truncated; parent directories must
// already exist.
func (t *S3) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	output, err := t.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, rzerrors.NewError("download", MapRemoteError(err)).WithBucket(bucket).WithKey(key)
	}
	defer output.Body.Close()

	file, err := os.Create(localPath)
	if err != nil {
		return 0, rzerrors.NewError("download", err).WithBucket(bucket).WithKey(key)
	}

	buf := pool.GetCopyBuffer()
	written, err := io.CopyBuffer(file, output.Body, buf)
	pool.PutCopyBuffer(buf)
	if err != nil {
		file.Close()
		return written, rzerrors.NewError("download", err).WithBucket(bucket).WithKey(key)
	}

	// Close surfaces delayed write failures.
	if err := file.Close(); err != nil {
		return written, rzerrors.NewError("download", err).WithBucket(bucket).WithKey(key)
	}

	return written, nil
}

// Upload performs a single PutObject streaming localPath as the body.
func (t *S3) Upload(ctx context.Context, bucket, localPath, key string) (int64, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return 0, rzerrors.NewError("upload", err).WithBucket(bucket).WithKey(key)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, rzerrors.NewError("upload", err).WithBucket(bucket).WithKey(key)
	}
	size := info.Size()

	contentType, err := sniffContentType(file, localPath)
	if err != nil {
		return 0, rzerrors.NewError("upload", err).WithBucket(bucket).WithKey(key)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}

	if _, err := t.client.PutObject(ctx, input); err != nil {
		return 0, rzerrors.NewError("upload", MapRemoteError(err)).WithBucket(bucket).WithKey(key)
	}

	return size, nil
}

// sniffContentType detects the payload type from the file's leading bytes.
// Empty files fall back to extension-based lookup. The file position is
// restored afterwards.
func sniffContentType(file *os.File, path string) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String(), nil
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt, nil
		}
	}

	return DefaultContentType, nil
}

// MapRemoteError converts well-known S3 failures to sentinel errors while
// keeping the original SDK message in the wrapped text.
func MapRemoteError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", rzerrors.ErrObjectNotFound, err)
		case "NoSuchBucket":
			return fmt.Errorf("%w: %v", rzerrors.ErrBucketNotFound, err)
		case "AccessDenied":
			return fmt.Errorf("%w: %v", rzerrors.ErrAccessDenied, err)
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return fmt.Errorf("%w: %v", rzerrors.ErrInvalidCredentials, err)
		}
	}
	return err
}
