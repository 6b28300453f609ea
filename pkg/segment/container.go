package segment

import (
	"bufio"
	"io"
	"sort"

	"github.com/hexforge/ihex/pkg/record"
)

// Container is an ordered collection of non-overlapping segments, sorted
// ascending by start address. Segments handed to Add are owned by the
// container afterwards.
type Container struct {
	segments []*Segment
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Segments returns the container's segments in ascending address order.
// The slice is a view of the container's state.
func (c *Container) Segments() []*Segment {
	c.sortSegments()
	return c.segments
}

// Add inserts seg into the container. If seg overlaps or touches an
// existing segment the two are combined, with seg's bytes winning on
// overlap. Afterwards the whole list is re-sorted and merged so that no
// two segments overlap or touch.
func (c *Container) Add(seg *Segment) {
	merged := false
	for _, s := range c.segments {
		if s.Overlaps(seg) {
			s.Combine(seg)
			merged = true
			break
		}
	}
	if !merged {
		c.segments = append(c.segments, seg)
	}
	c.mergeSegments()
}

// mergeSegments restores the no-overlap invariant: sort ascending, then
// combine every segment into its overlapping or touching predecessor.
func (c *Container) mergeSegments() {
	c.sortSegments()
	for i := 0; i < len(c.segments)-1; {
		if c.segments[i].Overlaps(c.segments[i+1]) {
			c.segments[i].Combine(c.segments[i+1])
			c.segments = append(c.segments[:i+1], c.segments[i+2:]...)
		} else {
			i++
		}
	}
}

// sortSegments sorts the segments ascending by start address. Sorted
// order is a precondition for deterministic serialization and for the
// pairwise merge scan.
func (c *Container) sortSegments() {
	sort.SliceStable(c.segments, func(i, j int) bool {
		return c.segments[i].start < c.segments[j].start
	})
}

// MaxAddress returns the greatest end address (exclusive) over all
// segments, 0 for an empty container.
func (c *Container) MaxAddress() uint64 {
	max := uint64(0)
	for _, s := range c.segments {
		if s.End() > max {
			max = s.End()
		}
	}
	return max
}

// Unique reports whether no two segments have overlapping [start,end)
// ranges. Touching segments are fine here; only true overlap counts.
func (c *Container) Unique() bool {
	for i, a := range c.segments {
		for _, b := range c.segments[i+1:] {
			if a.start < b.End() && b.start < a.End() {
				return false
			}
		}
	}
	return true
}

// Binary flattens the image into a byte slice of the given size starting
// at address. Gaps between segments are filled with padding.
func (c *Container) Binary(address uint64, size int, padding byte) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = padding
	}
	end := address + uint64(size)
	for _, s := range c.segments {
		lo := max64(address, s.start)
		hi := min64(end, s.End())
		if lo < hi {
			copy(out[lo-address:hi-address], s.data[lo-s.start:hi-s.start])
		}
	}
	return out
}

// Dump serializes every segment as data records of at most lineLength
// bytes each, in ascending address order. For I16HEX and I32HEX an
// extended segment or linear address record is emitted whenever a chunk
// leaves the 64 KiB block of the last emitted base. The image must fit
// the address range of the chosen format.
func (c *Container) Dump(w io.Writer, codec *record.Codec, format record.Format, lineLength int) error {
	if lineLength < 1 || lineLength > 255 {
		return record.NewValueError(0, "invalid line length %d, must be 1-255", lineLength)
	}
	if max := c.MaxAddress(); max > 0 && max-1 > format.MaxAddress() {
		return record.NewRangeError("image ends at 0x%X, beyond the %s limit 0x%X", max-1, format, format.MaxAddress())
	}
	c.sortSegments()

	bw := bufio.NewWriter(w)
	base := uint64(0)
	for _, s := range c.segments {
		addr := s.start
		for addr < s.End() {
			if format != record.I8HEX {
				block := addr &^ 0xFFFF
				if block != base {
					var line string
					var err error
					if format == record.I16HEX {
						line, err = codec.EncodeExtendedSegmentAddress(uint32(block))
						if err != nil {
							return err
						}
					} else {
						line = codec.EncodeExtendedLinearAddress(uint32(block))
					}
					if _, err := bw.WriteString(line); err != nil {
						return err
					}
					base = block
				}
			}
			chunkEnd := min64(addr+uint64(lineLength), s.End())
			if format != record.I8HEX {
				chunkEnd = min64(chunkEnd, (addr&^0xFFFF)+0x10000)
			}
			line, err := codec.EncodeData(uint32(addr-base), s.data[addr-s.start:chunkEnd-s.start])
			if err != nil {
				return err
			}
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			addr = chunkEnd
		}
	}
	return bw.Flush()
}
