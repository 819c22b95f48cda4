// Package bufpool reuses pixel buffers for offscreen layers.
package bufpool

import "sync"

// Pool is a thread-safe pool for reusing pixel buffers.
//
// Pool groups buffers by length, so a window that pushes one layer per
// frame at a stable size allocates its layer buffer once.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// New creates a pool retaining at most maxPerBucket buffers of each length.
// A maxPerBucket of 0 means unlimited.
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of length n, reusing a pooled one if possible.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}

	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]byte, n)
}

// Put returns a buffer to the pool. Buffers beyond the bucket limit are
// dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(buf)
	if p.maxSize > 0 && len(p.buckets[n]) >= p.maxSize {
		return
	}
	p.buckets[n] = append(p.buckets[n], buf)
}

// Len returns the number of pooled buffers of length n.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}
