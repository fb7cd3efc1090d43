package baf

import (
	"fmt"
	"slices"
	"sort"
)

// span is a half-open byte range [start, start+len) of the stream.
type span struct {
	start  uint64
	length uint64
}

func (s span) end() uint64 { return s.start + s.length }

// coverage tracks which byte ranges of the stream are occupied: the header,
// every file table segment, and every live file's content range. Everything
// else is free and may be handed out for new writes.
//
// Occupied spans are kept sorted by start and never overlap. Ranges are freed
// at the same granularity they were reserved. Free zones are the gaps between
// occupied spans, so a freed range next to other free space reads back as
// part of one larger zone.
type coverage struct {
	// size is the logical length of the stream. Grows monotonically.
	size  uint64
	spans []span
}

func newCoverage(size uint64) coverage {
	return coverage{size: size}
}

// growTo extends the logical stream length. Shrinking is not supported.
func (c *coverage) growTo(size uint64) {
	if size < c.size {
		panic(fmt.Sprintf("coverage: grow from %d to %d would shrink", c.size, size))
	}

	c.size = size
}

// markUsed records [start, start+length) as occupied. Overlap with an
// existing span means the file table references the same bytes twice.
func (c *coverage) markUsed(start, length uint64) error {
	if length == 0 {
		return nil
	}

	i := sort.Search(len(c.spans), func(i int) bool { return c.spans[i].start >= start })

	if i > 0 && c.spans[i-1].end() > start {
		return fmt.Errorf("range %d+%d overlaps range %d+%d: %w",
			start, length, c.spans[i-1].start, c.spans[i-1].length, ErrCorrupt)
	}

	if i < len(c.spans) && start+length > c.spans[i].start {
		return fmt.Errorf("range %d+%d overlaps range %d+%d: %w",
			start, length, c.spans[i].start, c.spans[i].length, ErrCorrupt)
	}

	c.spans = slices.Insert(c.spans, i, span{start: start, length: length})

	return nil
}

// markFree removes a span by exact match.
func (c *coverage) markFree(start, length uint64) error {
	if length == 0 {
		return nil
	}

	i := sort.Search(len(c.spans), func(i int) bool { return c.spans[i].start >= start })

	if i == len(c.spans) || c.spans[i].start != start || c.spans[i].length != length {
		return fmt.Errorf("range %d+%d is not marked used: %w", start, length, ErrCorrupt)
	}

	c.spans = slices.Delete(c.spans, i, i+1)

	return nil
}

// freeZones yields the gaps between occupied spans within [0, size), in
// address order, skipping zero-length gaps. Usable as a range-over-func.
func (c *coverage) freeZones() func(yield func(span) bool) {
	return func(yield func(span) bool) {
		var prevEnd uint64

		for _, s := range c.spans {
			if s.start > prevEnd {
				if !yield(span{start: prevEnd, length: s.start - prevEnd}) {
					return
				}
			}

			prevEnd = s.end()
		}

		if prevEnd < c.size {
			yield(span{start: prevEnd, length: c.size - prevEnd})
		}
	}
}

// bestFit returns the smallest free zone of at least capacity bytes, ties
// broken by lowest address.
func (c *coverage) bestFit(capacity uint64) (span, bool) {
	var best span

	found := false

	for z := range c.freeZones() {
		if z.length >= capacity && (!found || z.length < best.length) {
			best = z
			found = true
		}
	}

	return best, found
}

// nextWritableAddr is one past the highest occupied byte, 0 if nothing is
// occupied.
func (c *coverage) nextWritableAddr() uint64 {
	if len(c.spans) == 0 {
		return 0
	}

	return c.spans[len(c.spans)-1].end()
}

// wastedBytes is the total size of all free zones.
func (c *coverage) wastedBytes() uint64 {
	var total uint64

	for z := range c.freeZones() {
		total += z.length
	}

	return total
}
