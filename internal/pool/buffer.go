// Package pool provides memory management optimizations.
// This includes buffer pooling to reduce allocations on the download path.
//
// Download units stream object bodies to disk through pooled copy buffers so
// high-concurrency batches do not allocate a fresh buffer per transfer.
package pool

import (
	"sync"
)

// CopyBufferSize defines the size of the buffers used for streaming copies (1MB)
const CopyBufferSize = 1024 * 1024

// BufferPool manages reusable full-length copy buffers.
type BufferPool struct {
	buffers *sync.Pool
}

// NewBufferPool creates a new buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		buffers: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, CopyBufferSize)
				return &buf
			},
		},
	}
}

// Get returns a copy buffer from the pool. The buffer keeps its full length
// so it can be handed to io.CopyBuffer directly.
// The caller is responsible for calling Put to return the buffer to the pool.
func (bp *BufferPool) Get() []byte {
	bufPtr := bp.buffers.Get().(*[]byte)
	return *bufPtr
}

// Put returns a copy buffer to the pool.
// The buffer should not be used after calling Put.
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != CopyBufferSize {
		// Foreign buffers are not pooled
		return
	}
	buf = buf[:CopyBufferSize]
	bp.buffers.Put(&buf)
}

// Global buffer pool instance for use throughout the module.
var globalBufferPool = NewBufferPool()

// GetCopyBuffer returns a copy buffer from the global pool.
func GetCopyBuffer() []byte {
	return globalBufferPool.Get()
}

// PutCopyBuffer returns a copy buffer to the global pool.
func PutCopyBuffer(buf []byte) {
	globalBufferPool.Put(buf)
}
