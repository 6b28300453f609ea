package record

import "strings"

// Format selects one of the three Intel HEX presentation formats. The
// formats trade addressable range for record-type vocabulary: I8HEX uses
// only Data and End Of File records, I16HEX adds Extended Segment Address
// records, I32HEX adds Extended Linear Address records.
type Format int

const (
	I8HEX Format = iota + 1
	I16HEX
	I32HEX
)

// MaxAddress returns the highest byte address the format can represent.
func (f Format) MaxAddress() uint64 {
	switch f {
	case I8HEX:
		return 0xFFFF
	case I16HEX:
		return 0xFFFF0
	default:
		return 0xFFFFFFFF
	}
}

func (f Format) String() string {
	switch f {
	case I8HEX:
		return "i8hex"
	case I16HEX:
		return "i16hex"
	case I32HEX:
		return "i32hex"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name ("i8hex", "i16hex" or "i32hex",
// case-insensitive, the "hex" suffix optional) into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimSuffix(strings.ToLower(s), "hex") {
	case "i8":
		return I8HEX, nil
	case "i16":
		return I16HEX, nil
	case "i32":
		return I32HEX, nil
	}
	return 0, NewValueError(0, "unknown format %q", s)
}
