package generic

import "sync"

// Pool is a typed sync.Pool. Values are reset before they are returned to
// the pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) T
}

func NewPool[T any](generate func() T, reset func(T) T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		value = p.reset(value)
	}
	p.pool.Put(value)
}

// Buffers is a pool of byte slices with at least size bytes of capacity.
func Buffers(size int) *Pool[*[]byte] {
	return NewPool(
		func() *[]byte {
			buf := make([]byte, 0, size)
			return &buf
		},
		func(buf *[]byte) *[]byte {
			*buf = (*buf)[:0]
			return buf
		},
	)
}
