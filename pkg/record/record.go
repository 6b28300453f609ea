package record

import (
	"bytes"
	"encoding/hex"
)

// Type identifies one of the six Intel HEX record types.
type Type byte

const (
	TypeData                   Type = 0x00
	TypeEndOfFile              Type = 0x01
	TypeExtendedSegmentAddress Type = 0x02
	TypeStartSegmentAddress    Type = 0x03
	TypeExtendedLinearAddress  Type = 0x04
	TypeStartLinearAddress     Type = 0x05
)

// DefaultMark is the standard record start code.
const DefaultMark byte = ':'

// headerSize is the number of record bytes before the payload: length,
// address high, address low and type.
const headerSize = 4

// Record is one decoded Intel HEX line.
type Record struct {
	Length   byte   // declared payload length
	Address  uint16 // 16-bit record-local address field
	Type     Type
	Data     []byte // payload, Length bytes for data records
	Checksum byte
}

// bytes returns the raw record bytes including the checksum.
func (r *Record) bytes() []byte {
	raw := make([]byte, 0, int(r.Length)+headerSize+1)
	raw = append(raw, r.Length, byte(r.Address>>8), byte(r.Address), byte(r.Type))
	raw = append(raw, r.Data...)
	return append(raw, r.Checksum)
}

// Validate checks the internal consistency of the record: the declared
// length byte must match the actual payload length, and the record bytes
// including the checksum must sum to zero modulo 256. The length check is
// distinct from the checksum check; a record with a mismatched length
// fails even when its checksum happens to add up.
func (r *Record) Validate() error {
	if int(r.Length) != len(r.Data) {
		return NewValueError(0, "declared length %d does not match payload length %d", r.Length, len(r.Data))
	}
	if !ChecksumValid(r.bytes()) {
		return NewValueError(0, "invalid checksum (expected %02X)", Checksum(r.bytes()[:int(r.Length)+headerSize]))
	}
	return nil
}

// Codec encodes and decodes Intel HEX records. Mark is the single
// character that starts every record, ':' unless overridden.
type Codec struct {
	Mark byte
}

// NewCodec returns a codec using the standard ':' start code.
func NewCodec() *Codec {
	return &Codec{Mark: DefaultMark}
}

const hexDigits = "0123456789ABCDEF"

// encode renders a record line: start code, uppercase hex digit pairs for
// the header, payload and checksum, and a trailing newline.
func (c *Codec) encode(t Type, address uint16, payload []byte) string {
	raw := make([]byte, 0, len(payload)+headerSize+1)
	raw = append(raw, byte(len(payload)), byte(address>>8), byte(address), byte(t))
	raw = append(raw, payload...)
	raw = AppendChecksum(raw)

	out := make([]byte, 0, 2*len(raw)+2)
	out = append(out, c.Mark)
	for _, b := range raw {
		out = append(out, hexDigits[b>>4], hexDigits[b&0x0F])
	}
	out = append(out, '\n')
	return string(out)
}

// EncodeData renders a data record. The address must fit 16 bits and the
// payload must not exceed 255 bytes.
func (c *Codec) EncodeData(address uint32, data []byte) (string, error) {
	if address > 0xFFFF {
		return "", NewRangeError("data record address 0x%X exceeds 16 bits", address)
	}
	if len(data) > 255 {
		return "", NewRangeError("data record payload of %d bytes exceeds 255", len(data))
	}
	return c.encode(TypeData, uint16(address), data), nil
}

// EncodeEndOfFile renders the end of file record, ":00000001FF".
func (c *Codec) EncodeEndOfFile() string {
	return c.encode(TypeEndOfFile, 0, nil)
}

// EncodeExtendedSegmentAddress renders an extended segment address record
// for the given base address. The base is divided by 16 on the wire and
// the quotient must fit 16 bits.
func (c *Codec) EncodeExtendedSegmentAddress(address uint32) (string, error) {
	segment := address / 16
	if segment > 0xFFFF {
		return "", NewRangeError("segment base 0x%X exceeds 16 bits after division by 16", address)
	}
	return c.encode(TypeExtendedSegmentAddress, 0, []byte{byte(segment >> 8), byte(segment)}), nil
}

// EncodeExtendedLinearAddress renders an extended linear address record
// carrying the upper 16 bits of the given address. The lower 16 bits are
// discarded without complaint.
func (c *Codec) EncodeExtendedLinearAddress(address uint32) string {
	upper := uint16(address >> 16)
	return c.encode(TypeExtendedLinearAddress, 0, []byte{byte(upper >> 8), byte(upper)})
}

// EncodeStartSegmentAddress renders a start segment address record from
// the CS and IP register values.
func (c *Codec) EncodeStartSegmentAddress(codeSegment, instructionPointer uint16) string {
	return c.encode(TypeStartSegmentAddress, 0, []byte{
		byte(codeSegment >> 8), byte(codeSegment),
		byte(instructionPointer >> 8), byte(instructionPointer),
	})
}

// EncodeStartLinearAddress renders a start linear address record carrying
// all 32 bits of the entry point, big-endian.
func (c *Codec) EncodeStartLinearAddress(address uint32) string {
	return c.encode(TypeStartLinearAddress, 0, []byte{
		byte(address >> 24), byte(address >> 16), byte(address >> 8), byte(address),
	})
}

// Decode scans source from offset for the next start code and decodes the
// record behind it. It returns the record and the offset just past its
// last hex digit, so repeated calls walk a whole buffer in one forward
// pass. A record of declared length n must be followed by 2n+11
// characters after the start code; a record flush against the end of the
// buffer with no trailing character is reported as truncated.
func (c *Codec) Decode(source []byte, offset int) (*Record, int, error) {
	idx := bytes.IndexByte(source[offset:], c.Mark)
	if idx < 0 {
		return nil, 0, NewValueError(0, "start code %q not found", string(c.Mark))
	}
	start := offset + idx
	rest := len(source) - start - 1
	if rest < 2 {
		return nil, 0, NewValueError(0, "truncated record")
	}

	var lengthByte [1]byte
	if _, err := hex.Decode(lengthByte[:], source[start+1:start+3]); err != nil {
		return nil, 0, NewValueError(0, "malformed hex digits in record length: %v", err)
	}
	n := int(lengthByte[0])
	if rest < 2*n+11 {
		return nil, 0, NewValueError(0, "truncated record: %d characters after start code, need %d", rest, 2*n+11)
	}

	raw := make([]byte, n+headerSize+1)
	end := start + 1 + 2*len(raw)
	if _, err := hex.Decode(raw, source[start+1:end]); err != nil {
		return nil, 0, NewValueError(0, "malformed hex digits: %v", err)
	}
	rec := &Record{
		Length:   raw[0],
		Address:  uint16(raw[1])<<8 | uint16(raw[2]),
		Type:     Type(raw[3]),
		Data:     raw[headerSize : headerSize+n],
		Checksum: raw[len(raw)-1],
	}
	if err := rec.Validate(); err != nil {
		return nil, 0, err
	}
	if raw[3] > byte(TypeStartLinearAddress) {
		return nil, 0, NewValueError(0, "unknown record type 0x%02X", raw[3])
	}
	return rec, end, nil
}
