package util

import "sync"

type BufferPool struct {
	bufferSize int

	buffers [][]byte
	mu      sync.Mutex
}

func NewBufferPool(bufferSize int) *BufferPool {
	if bufferSize <= 0 {
		panic("Buffer size must be greater than zero")
	}
	return &BufferPool{bufferSize: bufferSize}
}

func (bp *BufferPool) Get() []byte {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if len(bp.buffers) > 0 {
		b := bp.buffers[0]
		bp.buffers = bp.buffers[1:]
		return b
	}
	return make([]byte, bp.bufferSize)
}

func (bp *BufferPool) Put(b []byte) {
	if len(b) != bp.bufferSize || cap(b) != bp.bufferSize {
		panic("Trying to put buffer with invalid size into pool")
	}
	bp.mu.Lock()
	bp.buffers = append(bp.buffers, b)
	bp.mu.Unlock()
}
