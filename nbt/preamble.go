package nbt

// PreambleSize is the length of the version and length header that
// some containers (level.dat for instance) put before the root tag.
const PreambleSize = 8

// HasPreamble sniffs whether data starts with the 8-byte wrapper
// header. This is a best effort check: the buffer must be longer
// than the header, start with the Compound kind byte, and have
// zero as the next three bytes.
func HasPreamble(data []byte) bool {
	return len(data) > PreambleSize &&
		data[0] == byte(KindCompound) &&
		data[1] == 0 &&
		data[2] == 0 &&
		data[3] == 0
}

// SkipPreamble returns data without the wrapper header when
// HasPreamble reports one, or data itself otherwise.
func SkipPreamble(data []byte) []byte {
	if HasPreamble(data) {
		return data[PreambleSize:]
	}
	return data
}
