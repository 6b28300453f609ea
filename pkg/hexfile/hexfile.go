// Package hexfile reads and writes whole Intel HEX files: it owns the
// presentation format, the record start code and the optional start
// addresses, and holds the parsed image as a segment container.
package hexfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hexforge/ihex/pkg/record"
	"github.com/hexforge/ihex/pkg/segment"
)

// DefaultLineLength is the number of payload bytes per data record used
// when the configuration does not say otherwise.
const DefaultLineLength = 16

// Config configures a File. Zero values select the defaults: the ':'
// start code, the I32HEX format and 16-byte data records.
type Config struct {
	// Mark is the record start code, a single character.
	Mark string
	// Format selects the presentation format written by Dump and the
	// address range the image may occupy.
	Format record.Format
	// LineLength is the maximum payload bytes per data record, 1-255.
	LineLength int
	// AllowOverlap accepts input whose data records cover overlapping
	// address ranges; the later record wins. When false such input is
	// rejected.
	AllowOverlap bool
}

// File is an Intel HEX file: a sparse memory image plus the optional
// start addresses and the presentation settings used to render it.
type File struct {
	codec        *record.Codec
	format       record.Format
	lineLength   int
	allowOverlap bool

	segments     *segment.Container
	startSegment *StartSegmentAddress
	startLinear  *uint32
}

// New builds an empty file with the given configuration.
func New(cfg Config) (*File, error) {
	mark := record.DefaultMark
	if cfg.Mark != "" {
		if len(cfg.Mark) != 1 {
			return nil, record.NewValueError(0, "invalid mark %q, must be a single character", cfg.Mark)
		}
		mark = cfg.Mark[0]
	}
	format := cfg.Format
	if format == 0 {
		format = record.I32HEX
	}
	lineLength := cfg.LineLength
	if lineLength == 0 {
		lineLength = DefaultLineLength
	}
	if lineLength < 1 || lineLength > 255 {
		return nil, record.NewValueError(0, "invalid line length %d, must be 1-255", lineLength)
	}
	return &File{
		codec:        &record.Codec{Mark: mark},
		format:       format,
		lineLength:   lineLength,
		allowOverlap: cfg.AllowOverlap,
		segments:     segment.NewContainer(),
	}, nil
}

// Parse reads an Intel HEX stream and replaces the file's contents with
// it. Input hex digits may be either case. A malformed record, a
// duplicate start address or (unless AllowOverlap is set) overlapping
// data ranges abort the parse; on error the file keeps its previous
// contents.
func (f *File) Parse(r io.Reader) error {
	source, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	p := newParser(f.codec)
	if err := p.run(source); err != nil {
		return err
	}
	segments, err := p.builder.Build(f.allowOverlap)
	if err != nil {
		return err
	}
	f.segments = segments
	f.startSegment = p.startSegment
	f.startLinear = p.startLinear
	return nil
}

// Dump writes the file as Intel HEX text: start address records first,
// then every segment chunked into data records, then the end of file
// record. I8HEX has no start address records, so they are omitted there.
func (f *File) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if f.format != record.I8HEX {
		if f.startSegment != nil {
			if _, err := bw.WriteString(f.codec.EncodeStartSegmentAddress(f.startSegment.CodeSegment, f.startSegment.InstructionPointer)); err != nil {
				return err
			}
		}
		if f.startLinear != nil {
			if _, err := bw.WriteString(f.codec.EncodeStartLinearAddress(*f.startLinear)); err != nil {
				return err
			}
		}
	}
	if err := f.segments.Dump(bw, f.codec, f.format, f.lineLength); err != nil {
		return err
	}
	if _, err := bw.WriteString(f.codec.EncodeEndOfFile()); err != nil {
		return err
	}
	return bw.Flush()
}

// Segments returns the file's segment container.
func (f *File) Segments() *segment.Container {
	return f.segments
}

// AddBinary places a copy of data at the given absolute address, merging
// with existing segments where ranges overlap or touch; data wins on
// overlap.
func (f *File) AddBinary(address uint64, data []byte) {
	f.segments.Add(segment.New(address, data))
}

// Binary flattens the image into a byte slice of the given size starting
// at address, filling gaps with padding.
func (f *File) Binary(address uint64, size int, padding byte) []byte {
	return f.segments.Binary(address, size, padding)
}

// MaxAddress returns the end address (exclusive) of the highest segment,
// 0 for an empty image.
func (f *File) MaxAddress() uint64 {
	return f.segments.MaxAddress()
}

// Format returns the presentation format.
func (f *File) Format() record.Format {
	return f.format
}

// StartSegmentAddress returns the CS:IP entry point, if the file has one.
func (f *File) StartSegmentAddress() (StartSegmentAddress, bool) {
	if f.startSegment == nil {
		return StartSegmentAddress{}, false
	}
	return *f.startSegment, true
}

// SetStartSegmentAddress sets the CS:IP entry point.
func (f *File) SetStartSegmentAddress(codeSegment, instructionPointer uint16) {
	f.startSegment = &StartSegmentAddress{CodeSegment: codeSegment, InstructionPointer: instructionPointer}
}

// StartLinearAddress returns the 32-bit entry point, if the file has one.
func (f *File) StartLinearAddress() (uint32, bool) {
	if f.startLinear == nil {
		return 0, false
	}
	return *f.startLinear, true
}

// SetStartLinearAddress sets the 32-bit entry point.
func (f *File) SetStartLinearAddress(address uint32) {
	f.startLinear = &address
}
