// Package internal contains private implementation details for the transfer engine.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - s3api: Narrow S3 interface the engine consumes
//   - transport: Single-attempt GET/PUT execution against the object store
//   - executor: Bounded-concurrency dispatch of transfer units
//   - validation: Input validation logic
//   - pool: Memory management optimizations
//   - testutil: Mocks and helpers shared by tests
package internal
