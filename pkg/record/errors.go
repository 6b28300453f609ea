package record

import "fmt"

// RangeError reports a value that does not fit its target field, an image
// that exceeds the address range of a presentation format, or overlapping
// segments when uniqueness was required.
type RangeError struct {
	Msg string
}

func (e *RangeError) Error() string {
	return "range error: " + e.Msg
}

// NewRangeError builds a RangeError from a format string.
func NewRangeError(format string, args ...interface{}) *RangeError {
	return &RangeError{Msg: fmt.Sprintf(format, args...)}
}

// ValueError reports malformed input: bad checksum, bad declared length,
// unknown record type, truncated records and invalid configuration values.
// Line is the 1-based input line number when the error was detected while
// parsing a stream, 0 otherwise.
type ValueError struct {
	Line int
	Msg  string
}

func (e *ValueError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("value error: %s at line %d", e.Msg, e.Line)
	}
	return "value error: " + e.Msg
}

// NewValueError builds a ValueError from a format string. Pass line 0 when
// the error is not tied to an input line.
func NewValueError(line int, format string, args ...interface{}) *ValueError {
	return &ValueError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
