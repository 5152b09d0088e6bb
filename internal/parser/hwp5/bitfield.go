package hwp5

// ReadBits extracts the inclusive bit range [start, end] of word.
// Requires start <= end <= 31.
func ReadBits(word uint32, start, end uint8) uint32 {
	width := end - start + 1
	if width >= 32 {
		return word >> start
	}
	return (word >> start) & (uint32(1)<<width - 1)
}

// readFlag reports whether a single bit of word is set.
func readFlag(word uint32, bit uint8) bool {
	return ReadBits(word, bit, bit) != 0
}

// bitEnum maps the values of a bit range to names. Values missing from
// the table resolve to the fallback.
type bitEnum[T any] struct {
	start, end uint8
	values     map[uint32]T
	fallback   T
}

func (e bitEnum[T]) decode(word uint32) T {
	if v, ok := e.values[ReadBits(word, e.start, e.end)]; ok {
		return v
	}
	return e.fallback
}

// bitFlag is a named single-bit attribute.
type bitFlag struct {
	bit uint8
	set func(on bool)
}

// applyFlags calls each setter with the state of its bit.
func applyFlags(word uint32, flags []bitFlag) {
	for _, f := range flags {
		f.set(readFlag(word, f.bit))
	}
}
