package segment

import (
	"sort"

	"github.com/hexforge/ihex/pkg/record"
)

// Builder accumulates segments without merging on every insert, for bulk
// construction while parsing a whole file. Add is a plain append; the
// single coalescing pass happens in Build. A record-at-a-time container
// Add would reallocate the combined buffer once per record, which is
// quadratic over a large file.
type Builder struct {
	pending []*Segment
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add queues seg for the next Build. The builder owns seg afterwards.
func (b *Builder) Add(seg *Segment) {
	b.pending = append(b.pending, seg)
}

// span is a placeholder address range discovered during Build.
type span struct {
	start, end uint64
}

// Build sorts the queued segments, computes the final coalesced address
// ranges in one pass, materializes one zero-filled segment per range and
// then re-adds every queued segment on top in insertion order, so that on
// true overlaps the later-added bytes win. Unless allowOverlap is set, a
// true overlap (anything beyond an exact boundary join) is an error.
func (b *Builder) Build(allowOverlap bool) (*Container, error) {
	ordered := make([]*Segment, len(b.pending))
	copy(ordered, b.pending)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].start < ordered[j].start
	})

	var spans []span
	for _, seg := range ordered {
		joined := false
		for i := range spans {
			p := &spans[i]
			if seg.start > p.end || seg.End() < p.start {
				continue
			}
			if seg.start < p.end && seg.End() > p.start && !allowOverlap {
				return nil, record.NewRangeError("segments overlap at [0x%X,0x%X)", seg.start, seg.End())
			}
			p.start = min64(p.start, seg.start)
			p.end = max64(p.end, seg.End())
			joined = true
			break
		}
		if !joined {
			spans = append(spans, span{start: seg.start, end: seg.End()})
		}
	}

	c := NewContainer()
	for _, p := range spans {
		c.Add(NewEmpty(p.start, int(p.end-p.start)))
	}
	for _, seg := range b.pending {
		c.Add(seg)
	}
	b.pending = nil
	return c, nil
}
