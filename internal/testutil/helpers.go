// Package testutil provides test helper functions.
package testutil

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StringPtr returns a pointer to the given string.
// This is useful for AWS SDK inputs that require string pointers.
func StringPtr(s string) *string {
	return aws.String(s)
}

// Int64Ptr returns a pointer to the given int64.
// This is useful for AWS SDK inputs that require int64 pointers.
func Int64Ptr(i int64) *int64 {
	return aws.Int64(i)
}

// Int32Ptr returns a pointer to the given int32.
// This is useful for AWS SDK inputs that require int32 pointers.
func Int32Ptr(i int32) *int32 {
	return aws.Int32(i)
}

// BoolPtr returns a pointer to the given bool.
// This is useful for AWS SDK inputs that require bool pointers.
func BoolPtr(b bool) *bool {
	return aws.Bool(b)
}

// TimePtr returns a pointer to the given time.
// This is useful for AWS SDK outputs that return time pointers.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// GenerateRandomData generates random bytes of the specified size.
// This is useful for creating test payloads.
func GenerateRandomData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(rand.Intn(256))
	}
	return data
}

// GenerateTestKey generates a test S3 object key with optional prefix.
// This helps ensure test isolation by using unique keys.
func GenerateTestKey(prefix string) string {
	timestamp := time.Now().UnixNano()
	random := rand.Int63n(100000)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%stest-object-%d-%d", prefix, timestamp, random)
}

// GenerateTestBucketName generates a valid test bucket name.
// Bucket names must be DNS-compliant and globally unique.
func GenerateTestBucketName(prefix string) string {
	timestamp := time.Now().Unix()
	random := rand.Int31n(10000)
	name := fmt.Sprintf("%s-%d-%d", prefix, timestamp, random)
	// Ensure DNS compliance
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// CalculateETag calculates the ETag for the given data.
// For simple uploads, this is the MD5 hash.
func CalculateETag(data []byte) string {
	h := md5.Sum(data)
	return fmt.Sprintf(`"%x"`, h)
}

// CreateTestObject creates a test S3 object structure.
// This is useful for mocking ListObjectsV2 responses.
func CreateTestObject(key string, size int64, lastModified time.Time) types.Object {
	return types.Object{
		Key:          StringPtr(key),
		Size:         Int64Ptr(size),
		LastModified: TimePtr(lastModified),
		ETag:         StringPtr(fmt.Sprintf(`"%x"`, md5.Sum([]byte(key)))),
		StorageClass: types.ObjectStorageClassStandard,
	}
}

// CreateListObjectsV2Output creates a test ListObjectsV2Output structure.
// This is useful for mocking S3 list operations.
func CreateListObjectsV2Output(
	objects []types.Object, prefix string, truncated bool,
) *s3.ListObjectsV2Output {
	output := &s3.ListObjectsV2Output{
		Contents:    objects,
		KeyCount:    Int32Ptr(int32(len(objects))),
		MaxKeys:     Int32Ptr(1000),
		Name:        StringPtr("test-bucket"),
		Prefix:      StringPtr(prefix),
		IsTruncated: BoolPtr(truncated),
	}
	if truncated && len(objects) > 0 {
		output.NextContinuationToken = StringPtr("next-token")
	}
	return output
}

// CreatePutObjectOutput creates a test PutObjectOutput structure.
// This is useful for mocking upload operations.
func CreatePutObjectOutput(etag string) *s3.PutObjectOutput {
	return &s3.PutObjectOutput{
		ETag: StringPtr(etag),
	}
}

// CreateGetObjectOutput creates a test GetObjectOutput structure.
// This is useful for mocking download operations.
func CreateGetObjectOutput(data []byte, contentType string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: Int64Ptr(int64(len(data))),
		ContentType:   StringPtr(contentType),
		ETag:          StringPtr(CalculateETag(data)),
		LastModified:  TimePtr(time.Now()),
	}
}
