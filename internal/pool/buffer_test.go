package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferPool(t *testing.T) {
	bp := NewBufferPool()
	require.NotNil(t, bp)
	assert.NotNil(t, bp.buffers)
}

func TestBufferPool_Get(t *testing.T) {
	bp := NewBufferPool()

	buf := bp.Get()
	require.NotNil(t, buf)
	assert.Equal(t, CopyBufferSize, cap(buf))
	assert.Equal(t, CopyBufferSize, len(buf)) // full length for io.CopyBuffer

	// Return to pool
	bp.Put(buf)
}

func TestBufferPool_BufferReuse(t *testing.T) {
	bp := NewBufferPool()

	buf1 := bp.Get()
	copy(buf1, []byte("first use"))
	bp.Put(buf1)

	// Get another buffer - should come back at full length
	buf2 := bp.Get()
	assert.Equal(t, CopyBufferSize, cap(buf2))
	assert.Equal(t, CopyBufferSize, len(buf2))

	bp.Put(buf2)
}

func TestBufferPool_PutForeignBuffer(t *testing.T) {
	bp := NewBufferPool()

	// Buffers of the wrong capacity are dropped, not pooled.
	bp.Put(make([]byte, 16))

	buf := bp.Get()
	assert.Equal(t, CopyBufferSize, cap(buf))
	bp.Put(buf)
}

func TestGlobalBufferPool(t *testing.T) {
	buf := GetCopyBuffer()
	require.NotNil(t, buf)
	assert.Equal(t, CopyBufferSize, cap(buf))

	PutCopyBuffer(buf)
}

func BenchmarkBufferPool_GetPut(b *testing.B) {
	bp := NewBufferPool()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := bp.Get()
			bp.Put(buf)
		}
	})
}

func BenchmarkBufferAllocation_NewEachTime(b *testing.B) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := make([]byte, CopyBufferSize)
			_ = buf
		}
	})
}
