package imaging

import (
	"fmt"

	"github.com/gogpu/imaging/raster"
)

// Chain applies ops in sequence, feeding each result to the next op.
// Intermediates are allocated with each op's CreateDestination.
// Under Concurrent, each op is tiled with its own strategy.
type Chain struct {
	ops []Op
}

// NewChain returns a chain of at least one op.
func NewChain(ops ...Op) (*Chain, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("imaging: empty chain: %w", ErrInvalidParameter)
	}
	for i, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("imaging: chain op %d is nil: %w", i, ErrInvalidParameter)
		}
	}
	return &Chain{ops: append([]Op(nil), ops...)}, nil
}

// Tiling implements Op.
func (c *Chain) Tiling() Tiling {
	return Tiling{Strategy: Staged, Stages: c.ops}
}

// CreateDestination implements Op. It returns the destination of the last
// op; intermediate images are allocated to learn their geometry.
func (c *Chain) CreateDestination(src *raster.Image) (*raster.Image, error) {
	cur := src
	for _, op := range c.ops {
		next, err := op.CreateDestination(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Filter implements Op.
func (c *Chain) Filter(src, dst *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("imaging: nil source: %w", ErrInvalidParameter)
	}
	cur := src
	for i, op := range c.ops {
		var out *raster.Image
		if i == len(c.ops)-1 {
			out = dst
		}
		next, err := op.Filter(cur, out)
		if err != nil {
			return nil, fmt.Errorf("imaging: chain op %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}
