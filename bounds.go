package repaint

import (
	"image"

	"github.com/gogpu/repaint/geom"
)

// BoundRecord is one rectangle a renderable painted on a surface in a frame.
type BoundRecord struct {
	// Clip is the painted area in device pixels: Unclip rounded outward,
	// padded by the anti-aliasing margin and intersected with the surface
	// clip. An empty Clip marks a free slot.
	Clip image.Rectangle

	// Unclip is the transformed local bounds before clipping.
	Unclip geom.Rect

	// Identity is the paint and geometry version the record was made with.
	Identity Token
}

// IsFree reports whether the slot holds no bound.
func (b BoundRecord) IsFree() bool {
	return b.Clip.Empty()
}

// sameAs reports whether b and o describe the same paint, geometry and
// transform at the same place.
func (b BoundRecord) sameAs(o BoundRecord) bool {
	return b.Identity == o.Identity && b.Clip == o.Clip && b.Unclip.Min == o.Unclip.Min
}

// boundChain holds the bounds of one renderable on one surface for this
// frame (current) and the last one (previous). The two slices never share
// a backing array; rotate swaps them.
type boundChain struct {
	current  []BoundRecord
	previous []BoundRecord
}

// rotate makes current the previous chain and empties current. With keep
// false the previous chain is discarded. It reports whether the chain that
// became previous held any bound.
func (c *boundChain) rotate(keep bool) bool {
	c.current, c.previous = c.previous[:0], c.current
	drawn := false
	for _, b := range c.previous {
		if !b.IsFree() {
			drawn = true
			break
		}
	}
	if !keep {
		clear(c.previous)
		c.previous = c.previous[:0]
	}
	return drawn
}

// write appends rec to the current chain and returns its slot.
func (c *boundChain) write(rec BoundRecord, limit int) (int, error) {
	if limit > 0 && len(c.current) >= limit {
		return -1, ErrChainExhausted
	}
	c.current = append(c.current, rec)
	return len(c.current) - 1, nil
}

// match consumes the first previous record equal to rec.
func (c *boundChain) match(rec BoundRecord) bool {
	for i := range c.previous {
		if c.previous[i].IsFree() || !c.previous[i].sameAs(rec) {
			continue
		}
		c.previous[i].Clip = image.Rectangle{}
		return true
	}
	return false
}

// drain calls fn for every unconsumed previous record and empties the
// previous chain. It returns the number of records drained.
func (c *boundChain) drain(fn func(image.Rectangle)) int {
	n := 0
	for _, b := range c.previous {
		if !b.IsFree() {
			fn(b.Clip)
			n++
		}
	}
	clear(c.previous)
	c.previous = c.previous[:0]
	return n
}

// drainAll drains both chains.
func (c *boundChain) drainAll(fn func(image.Rectangle)) int {
	n := c.drain(fn)
	c.current, c.previous = c.previous, c.current
	n += c.drain(fn)
	c.current, c.previous = c.previous, c.current
	return n
}

// live returns the non-free records of the current chain.
func (c *boundChain) live() []BoundRecord {
	var out []BoundRecord
	for _, b := range c.current {
		if !b.IsFree() {
			out = append(out, b)
		}
	}
	return out
}

// shared reports whether current and previous alias one backing array.
func (c *boundChain) shared() bool {
	if cap(c.current) == 0 || cap(c.previous) == 0 {
		return false
	}
	return &c.current[:cap(c.current)][0] == &c.previous[:cap(c.previous)][0]
}
