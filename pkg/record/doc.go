// Package record implements encoding and decoding of Intel HEX records.
//
// Intel HEX is an ASCII text format for sparse binary memory images, used
// to program firmware onto microcontrollers and EPROMs. Every record is a
// single text line with fixed field widths and a one-byte checksum.
//
// # Record Format
//
// A record is rendered as hex digit pairs behind a start code (':' by
// default):
//
//	:llaaaattdd...ddcc
//
// Fields:
//   - ll: payload length in bytes (0-255)
//   - aaaa: 16-bit record address, big-endian
//   - tt: record type (see below)
//   - dd: payload, ll bytes, two hex digits per byte
//   - cc: checksum byte
//
// Hex digits are case-insensitive on input and uppercase on output. Lines
// end with a newline character.
//
// # Record Types
//
//	00  Data
//	01  End Of File (empty payload, terminates a file)
//	02  Extended Segment Address (16-bit base, multiplied by 16)
//	03  Start Segment Address (CS and IP registers, 4 bytes)
//	04  Extended Linear Address (upper 16 address bits)
//	05  Start Linear Address (32-bit entry point)
//
// Any other type byte is rejected during decoding.
//
// # Checksum
//
// The checksum is the two's complement of the 8-bit truncated sum of all
// preceding record bytes (length, address, type and payload). Summing a
// full record including its checksum byte therefore yields zero modulo
// 256. Any single flipped byte is detected.
//
// # Usage
//
// Encoding and decoding go through a Codec, which carries the start code:
//
//	c := record.NewCodec()
//
//	line, err := c.EncodeData(0x0030, []byte{0x02, 0x33, 0x7A})
//	// line == ":0300300002337A1E\n"
//
//	rec, next, err := c.Decode([]byte(line), 0)
//	// rec.Type == record.TypeData, rec.Address == 0x0030
//
// Decode scans forward from the given offset for the start code, so it can
// run embedded in a single pass over a whole file buffer; next is the
// offset just past the decoded record.
//
// # Errors
//
// Decoding problems (malformed hex digits, truncated records, checksum
// mismatch, length mismatch, unknown type) are reported as *ValueError.
// Encoding problems (a value too large for its field) are reported as
// *RangeError. Callers discriminate with errors.As.
package record
