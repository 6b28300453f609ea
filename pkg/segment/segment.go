// Package segment maintains sparse memory images as ordered sets of
// non-overlapping contiguous byte ranges, and serializes them into Intel
// HEX records.
package segment

import (
	"encoding/binary"
	"math"

	"github.com/hexforge/ihex/pkg/record"
)

// Segment is a contiguous run of bytes anchored at an absolute start
// address. The buffer is exclusively owned by the segment; constructors
// copy their input.
type Segment struct {
	start uint64
	data  []byte
}

// New builds a segment holding a copy of data at the given start address.
func New(start uint64, data []byte) *Segment {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Segment{start: start, data: buf}
}

// NewEmpty builds a zero-filled segment of the given size.
func NewEmpty(start uint64, size int) *Segment {
	return &Segment{start: start, data: make([]byte, size)}
}

// Start returns the absolute address of the first byte.
func (s *Segment) Start() uint64 { return s.start }

// End returns the address one past the last byte.
func (s *Segment) End() uint64 { return s.start + uint64(len(s.data)) }

// Len returns the number of bytes in the segment.
func (s *Segment) Len() int { return len(s.data) }

// Bytes returns the segment's buffer. The slice is a view, not a copy;
// writes through it are visible to the segment.
func (s *Segment) Bytes() []byte { return s.data }

// ByteAt returns the byte at the absolute address addr.
func (s *Segment) ByteAt(addr uint64) (byte, error) {
	if addr < s.start || addr >= s.End() {
		return 0, record.NewRangeError("address 0x%X outside segment [0x%X,0x%X)", addr, s.start, s.End())
	}
	return s.data[addr-s.start], nil
}

// WriteByte stores v at the absolute address addr. The segment does not
// grow; writing outside its range is an error.
func (s *Segment) WriteByte(addr uint64, v byte) error {
	if addr < s.start || addr >= s.End() {
		return record.NewRangeError("address 0x%X outside segment [0x%X,0x%X)", addr, s.start, s.End())
	}
	s.data[addr-s.start] = v
	return nil
}

// Fill sets every byte of the segment to v.
func (s *Segment) Fill(v byte) {
	for i := range s.data {
		s.data[i] = v
	}
}

// Append grows the segment by one byte.
func (s *Segment) Append(b byte) {
	s.AppendBytes([]byte{b})
}

// AppendBytes grows the segment by len(p) bytes, preserving existing
// content at its absolute addresses. The buffer is reallocated to the
// exact new size on every call.
func (s *Segment) AppendBytes(p []byte) {
	buf := make([]byte, len(s.data)+len(p))
	copy(buf, s.data)
	copy(buf[len(s.data):], p)
	s.data = buf
}

// AppendUint16 appends v in the given byte order.
func (s *Segment) AppendUint16(order binary.ByteOrder, v uint16) {
	var buf [2]byte
	order.PutUint16(buf[:], v)
	s.AppendBytes(buf[:])
}

// AppendUint32 appends v in the given byte order.
func (s *Segment) AppendUint32(order binary.ByteOrder, v uint32) {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	s.AppendBytes(buf[:])
}

// AppendUint64 appends v in the given byte order.
func (s *Segment) AppendUint64(order binary.ByteOrder, v uint64) {
	var buf [8]byte
	order.PutUint64(buf[:], v)
	s.AppendBytes(buf[:])
}

// AppendFloat32 appends the IEEE 754 bits of v in the given byte order.
func (s *Segment) AppendFloat32(order binary.ByteOrder, v float32) {
	s.AppendUint32(order, math.Float32bits(v))
}

// AppendFloat64 appends the IEEE 754 bits of v in the given byte order.
func (s *Segment) AppendFloat64(order binary.ByteOrder, v float64) {
	s.AppendUint64(order, math.Float64bits(v))
}

// Resize re-anchors the segment to [newStart, newStart+newLen), copying
// the bytes in the overlap of the old and new ranges and zero-filling the
// rest. A resize to the current bounds keeps the buffer as is.
func (s *Segment) Resize(newStart uint64, newLen int) {
	if newStart == s.start && newLen == len(s.data) {
		return
	}
	buf := make([]byte, newLen)
	lo := max64(s.start, newStart)
	hi := min64(s.End(), newStart+uint64(newLen))
	if lo < hi {
		copy(buf[lo-newStart:hi-newStart], s.data[lo-s.start:hi-s.start])
	}
	s.start = newStart
	s.data = buf
}

// Combine grows the segment to the union of its range and other's, then
// writes every byte of other on top. On overlapping addresses other's
// bytes win.
func (s *Segment) Combine(other *Segment) {
	lo := min64(s.start, other.start)
	hi := max64(s.End(), other.End())
	s.Resize(lo, int(hi-lo))
	copy(s.data[other.start-lo:], other.data)
}

// Overlaps reports whether the closed ranges [Start,End] of the two
// segments intersect. The inclusive end makes touching segments count as
// overlapping, which is what lets gap-free neighbors coalesce.
func (s *Segment) Overlaps(other *Segment) bool {
	return s.start <= other.End() && other.start <= s.End()
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
