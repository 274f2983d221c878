package buffer

import "sync"

// Pool recycles Buffers through a sync.Pool so hosts can hand out blocks
// without feeding the garbage collector on every callback.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return New(0)
			},
		},
	}
}

// Get returns a zeroed Buffer of the requested length. Return it with Put.
func (p *Pool) Get(length int) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	if b == nil {
		b = &Buffer{}
	}

	b.Resize(length)
	b.Zero()

	return b
}

// GetBlock returns channels zeroed buffers of frames samples each.
func (p *Pool) GetBlock(channels, frames int) Block {
	blk := make(Block, max(channels, 0))
	for i := range blk {
		blk[i] = p.Get(frames)
	}

	return blk
}

// Put returns a Buffer to the pool. The caller must not use it afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}

// PutBlock returns every buffer of blk to the pool.
func (p *Pool) PutBlock(blk Block) {
	for _, b := range blk {
		p.Put(b)
	}
}
