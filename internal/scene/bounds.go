package scene

import (
	"math"
	"sync/atomic"
)

// Bounds holds the scene extents. Width and height are written by the UI
// goroutine whenever the surface resizes (debounced upstream) and read
// lock-free by the update step on the pacer goroutine. A stale value for one
// debounce interval causes at most one wrong reflection decision, which is
// accepted; the float64-bits atomics only rule out torn words.
type Bounds struct {
	width  atomic.Uint64
	height atomic.Uint64

	MarginX float64
	MarginY float64
}

func NewBounds(width, height, marginX, marginY float64) *Bounds {
	b := &Bounds{MarginX: marginX, MarginY: marginY}
	b.Set(width, height)
	return b
}

// Set replaces the width and height. Calling it repeatedly with the same
// values is a no-op as far as entity trajectories are concerned.
func (b *Bounds) Set(width, height float64) {
	b.width.Store(math.Float64bits(width))
	b.height.Store(math.Float64bits(height))
}

func (b *Bounds) Width() float64  { return math.Float64frombits(b.width.Load()) }
func (b *Bounds) Height() float64 { return math.Float64frombits(b.height.Load()) }
