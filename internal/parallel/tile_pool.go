package parallel

import "sync"

// SamplePool reuses float64 scratch rows between tiles.
//
// Filters that accumulate a window of samples per pixel (rank, convolution
// rows) borrow a buffer per tile instead of allocating one per pixel.
//
// Thread safety: SamplePool is safe for concurrent use.
type SamplePool struct {
	// pools holds a sync.Pool per buffer length.
	pools sync.Map
}

// NewSamplePool creates a new sample pool.
func NewSamplePool() *SamplePool {
	return &SamplePool{}
}

// Get returns a zeroed buffer of length n. It returns nil for n <= 0.
func (p *SamplePool) Get(n int) []float64 {
	if n <= 0 {
		return nil
	}
	buf := *p.pool(n).Get().(*[]float64)
	clear(buf)
	return buf
}

// Put returns a buffer to the pool. Nil and empty buffers are ignored.
func (p *SamplePool) Put(buf []float64) {
	if len(buf) == 0 {
		return
	}
	p.pool(len(buf)).Put(&buf)
}

func (p *SamplePool) pool(n int) *sync.Pool {
	if v, ok := p.pools.Load(n); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(n, &sync.Pool{
		New: func() any {
			buf := make([]float64, n)
			return &buf
		},
	})
	return v.(*sync.Pool)
}
