package record

// Checksum computes the Intel HEX checksum of b: the two's complement of
// the truncated 8-bit sum of all bytes.
func Checksum(b []byte) byte {
	sum := byte(0)
	for _, v := range b {
		sum += v
	}
	return -sum
}

// AppendChecksum appends the checksum of b to b and returns the extended
// slice. The byte sum of the result is zero modulo 256.
func AppendChecksum(b []byte) []byte {
	return append(b, Checksum(b))
}

// ChecksumValid reports whether b, including its trailing checksum byte,
// sums to zero modulo 256.
func ChecksumValid(b []byte) bool {
	sum := byte(0)
	for _, v := range b {
		sum += v
	}
	return sum == 0
}
