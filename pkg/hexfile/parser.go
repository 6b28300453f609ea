package hexfile

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/hexforge/ihex/pkg/record"
	"github.com/hexforge/ihex/pkg/segment"
)

// StartSegmentAddress is the CPU entry point of an image expressed as
// 8086 CS and IP register values.
type StartSegmentAddress struct {
	CodeSegment        uint16
	InstructionPointer uint16
}

// parser is the state of one parse call: the two address-extension
// registers, the two write-once start addresses and the current line
// number. It lives for a single Parse and is never shared.
type parser struct {
	codec   *record.Codec
	builder *segment.Builder

	extendedSegment uint64 // extended segment base, pre-multiplied by 16
	extendedLinear  uint64 // extended linear base, pre-shifted by 16 bits
	startSegment    *StartSegmentAddress
	startLinear     *uint32

	line int
	eof  bool
}

func newParser(codec *record.Codec) *parser {
	return &parser{codec: codec, builder: segment.NewBuilder(), line: 1}
}

// run scans source in a single forward pass, decoding every record behind
// a start code and dispatching it. Text between records is ignored, which
// permits blank lines and comments. Parsing stops at the end of file
// record; any decode or dispatch error aborts the whole parse.
func (p *parser) run(source []byte) error {
	pos := 0
	for !p.eof {
		idx := bytes.IndexByte(source[pos:], p.codec.Mark)
		if idx < 0 {
			break
		}
		markerAt := pos + idx
		p.line += bytes.Count(source[pos:markerAt], []byte{'\n'})

		rec, next, err := p.codec.Decode(source, markerAt)
		if err != nil {
			return p.atLine(err)
		}
		if err := p.dispatch(rec); err != nil {
			return p.atLine(err)
		}
		pos = next
	}
	if !p.eof {
		return record.NewValueError(p.line, "missing end of file record")
	}
	return nil
}

// atLine stamps the current line number onto a ValueError that does not
// carry one yet.
func (p *parser) atLine(err error) error {
	var ve *record.ValueError
	if errors.As(err, &ve) && ve.Line == 0 {
		ve.Line = p.line
	}
	return err
}

func (p *parser) dispatch(rec *record.Record) error {
	switch rec.Type {
	case record.TypeData:
		if rec.Length == 0 {
			return nil
		}
		addr := uint64(rec.Address) + p.extendedLinear + p.extendedSegment
		p.builder.Add(segment.New(addr, rec.Data))
	case record.TypeEndOfFile:
		if rec.Length != 0 {
			return record.NewValueError(0, "nonempty payload in end of file record")
		}
		if rec.Address != 0 {
			return record.NewValueError(0, "nonzero address field in end of file record")
		}
		p.eof = true
	case record.TypeExtendedSegmentAddress:
		if rec.Length != 2 {
			return record.NewValueError(0, "extended segment address record needs a 2-byte payload, got %d", rec.Length)
		}
		if rec.Address != 0 {
			return record.NewValueError(0, "nonzero address field in extended segment address record")
		}
		p.extendedSegment = uint64(binary.BigEndian.Uint16(rec.Data)) * 16
	case record.TypeExtendedLinearAddress:
		if rec.Length != 2 {
			return record.NewValueError(0, "extended linear address record needs a 2-byte payload, got %d", rec.Length)
		}
		if rec.Address != 0 {
			return record.NewValueError(0, "nonzero address field in extended linear address record")
		}
		p.extendedLinear = uint64(binary.BigEndian.Uint16(rec.Data)) << 16
	case record.TypeStartSegmentAddress:
		if rec.Length != 4 {
			return record.NewValueError(0, "start segment address record needs a 4-byte payload, got %d", rec.Length)
		}
		if rec.Address != 0 {
			return record.NewValueError(0, "nonzero address field in start segment address record")
		}
		if p.startSegment != nil {
			return record.NewValueError(0, "duplicate start segment address record")
		}
		p.startSegment = &StartSegmentAddress{
			CodeSegment:        binary.BigEndian.Uint16(rec.Data[0:2]),
			InstructionPointer: binary.BigEndian.Uint16(rec.Data[2:4]),
		}
	case record.TypeStartLinearAddress:
		if rec.Length != 4 {
			return record.NewValueError(0, "start linear address record needs a 4-byte payload, got %d", rec.Length)
		}
		if rec.Address != 0 {
			return record.NewValueError(0, "nonzero address field in start linear address record")
		}
		if p.startLinear != nil {
			return record.NewValueError(0, "duplicate start linear address record")
		}
		v := binary.BigEndian.Uint32(rec.Data)
		p.startLinear = &v
	}
	return nil
}
