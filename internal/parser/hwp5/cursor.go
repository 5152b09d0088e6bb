package hwp5

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// byteCursor reads little-endian fields from a record body. A read past
// the end sets short and yields zero values, so decoders can read a
// version-gated layout without checking every field.
type byteCursor struct {
	data  []byte
	pos   int
	short bool
}

func newCursor(data []byte) *byteCursor {
	return &byteCursor{data: data}
}

func (c *byteCursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *byteCursor) take(n int) []byte {
	if n < 0 || c.remaining() < n {
		c.short = true
		c.pos = len(c.data)
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *byteCursor) u8() uint8 {
	if b := c.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (c *byteCursor) i8() int8 { return int8(c.u8()) }

func (c *byteCursor) u16() uint16 {
	if b := c.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (c *byteCursor) i16() int16 { return int16(c.u16()) }

func (c *byteCursor) u32() uint32 {
	if b := c.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (c *byteCursor) i32() int32 { return int32(c.u32()) }

func (c *byteCursor) skip(n int) {
	c.take(n)
}

func (c *byteCursor) bytes(n int) []byte {
	b := c.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// wstring reads a WCHAR string prefixed by its u16 length in code units.
func (c *byteCursor) wstring() string {
	n := int(c.u16())
	return decodeUTF16(c.take(n * 2))
}

// wchars reads n UTF-16LE code units as a string.
func (c *byteCursor) wchars(n int) string {
	return decodeUTF16(c.take(n * 2))
}

// controlID reads a 4-byte control id stored in reverse order.
func (c *byteCursor) controlID() string {
	return controlIDFromUint32(c.u32())
}

// decodeBounded runs fn on a sub-cursor of exactly size bytes starting at
// the current position, then seeks past those bytes whatever fn consumed.
// It reports whether fn tried to read beyond the bound.
func (c *byteCursor) decodeBounded(size int, fn func(sub *byteCursor)) (short bool) {
	if size > c.remaining() {
		size = c.remaining()
		short = true
	}
	sub := newCursor(c.data[c.pos : c.pos+size])
	fn(sub)
	c.pos += size
	return short || sub.short
}

// controlIDFromUint32 turns a little-endian control id word into its
// 4-character name ("tbl " is stored as " lbt").
func controlIDFromUint32(v uint32) string {
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// DecodeUTF16LE decodes UTF-16LE bytes to a string, dropping trailing NULs.
func DecodeUTF16LE(data []byte) string {
	s := decodeUTF16(data)
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}

func decodeUTF16(data []byte) string {
	if len(data) < 2 {
		return ""
	}
	out, err := utf16LE.NewDecoder().Bytes(data[:len(data)&^1])
	if err != nil {
		return ""
	}
	return string(out)
}
