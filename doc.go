// Package robinzhon provides fast, concurrent transfer of objects between
// local disk and S3-compatible storage. It wraps AWS SDK v2 with a bounded
// scheduler so large batches move at a configurable parallelism while every
// item's outcome is reported individually.
//
// The package emphasizes predictable batch behavior: a concurrency budget
// that is never exceeded, work-conserving slot reuse, and per-item failure
// isolation so one bad object never sinks the rest of the batch.
//
// Key features:
//   - Simple, zero-configuration usage with AWS credential chain
//   - Progressive enhancement through functional options
//   - Concurrent batch download and upload with a strict parallelism bound
//   - Per-item failure isolation with classified error outcomes
//   - Optional fail-fast short-circuiting and transient-error retries
//   - Works with S3-compatible services such as MinIO and LocalStack
//
// Example usage:
//
//	client, err := robinzhon.New(
//	    robinzhon.WithRegion("us-west-2"),
//	    robinzhon.WithConcurrency(10),
//	)
//	if err != nil {
//	    return err
//	}
//
//	results, err := client.DownloadMany(ctx, "my-bucket", keys, "downloads")
//	if err != nil {
//	    return err
//	}
//	for _, f := range results.Failures() {
//	    log.Printf("failed %s: %v", f.Key, f.Err)
//	}
package robinzhon
