package mandel

import "sync"

// BufferPool recycles count and color buffers of one grid size so hosts
// that render repeatedly do not allocate a fresh frame every time.
type BufferPool struct {
	width, height int
	counts        sync.Pool
	grids         sync.Pool
}

func NewBufferPool(width, height int) *BufferPool {
	p := &BufferPool{width: width, height: height}
	p.counts.New = func() any { return NewCounts(width, height, 0) }
	p.grids.New = func() any { return NewGrid(width, height) }
	return p
}

func (p *BufferPool) Size() (width, height int) {
	return p.width, p.height
}

// Counts returns a buffer with stale contents; CountsInto overwrites every
// pixel.
func (p *BufferPool) Counts() *Counts {
	return p.counts.Get().(*Counts)
}

func (p *BufferPool) Grid() *Grid {
	return p.grids.Get().(*Grid)
}

// PutCounts returns c to the pool. Buffers of another size are dropped.
func (p *BufferPool) PutCounts(c *Counts) {
	if c != nil && c.Width == p.width && c.Height == p.height {
		p.counts.Put(c)
	}
}

func (p *BufferPool) PutGrid(g *Grid) {
	if g != nil && g.Width == p.width && g.Height == p.height {
		p.grids.Put(g)
	}
}
