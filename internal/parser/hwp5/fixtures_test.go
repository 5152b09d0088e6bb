package hwp5

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// payload builds a little-endian record body.
type payload struct {
	b []byte
}

func newPayload() *payload { return &payload{} }

func (p *payload) u8(v uint8) *payload { p.b = append(p.b, v); return p }
func (p *payload) i8(v int8) *payload  { return p.u8(uint8(v)) }

func (p *payload) u16(v uint16) *payload {
	p.b = binary.LittleEndian.AppendUint16(p.b, v)
	return p
}

func (p *payload) i16(v int16) *payload { return p.u16(uint16(v)) }

func (p *payload) u32(v uint32) *payload {
	p.b = binary.LittleEndian.AppendUint32(p.b, v)
	return p
}

func (p *payload) i32(v int32) *payload { return p.u32(uint32(v)) }

func (p *payload) zeros(n int) *payload {
	p.b = append(p.b, make([]byte, n)...)
	return p
}

// wstr writes a length-prefixed UTF-16LE string.
func (p *payload) wstr(s string) *payload {
	units := utf16.Encode([]rune(s))
	p.u16(uint16(len(units)))
	return p.units(units...)
}

func (p *payload) units(us ...uint16) *payload {
	for _, u := range us {
		p.u16(u)
	}
	return p
}

// text writes UTF-16LE code units without a length prefix.
func (p *payload) text(s string) *payload {
	return p.units(utf16.Encode([]rune(s))...)
}

// ctrlID writes a control id in stream order.
func (p *payload) ctrlID(id string) *payload {
	return p.u32(ctrlIDWord(id))
}

func (p *payload) bytes() []byte { return p.b }

func ctrlIDWord(id string) uint32 {
	return uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])
}

// recordBuilder assembles a record stream.
type recordBuilder struct {
	buf bytes.Buffer
}

func (b *recordBuilder) add(tag, level uint16, data []byte) *recordBuilder {
	size := uint32(len(data))
	if size >= extendedSize {
		b.header(tag, level, extendedSize)
		binary.Write(&b.buf, binary.LittleEndian, size)
	} else {
		b.header(tag, level, size)
	}
	b.buf.Write(data)
	return b
}

func (b *recordBuilder) header(tag, level uint16, size uint32) {
	word := uint32(tag) | uint32(level)<<10 | size<<20
	binary.Write(&b.buf, binary.LittleEndian, word)
}

func (b *recordBuilder) bytes() []byte { return b.buf.Bytes() }

// 인라인/확장 제어 문자 블록 (8 코드 유닛)
func inlineCtrl(code uint16) []uint16 {
	return []uint16{code, 0, 0, 0, 0, 0, 0, code}
}

func extendedCtrl(code uint16, id string) []uint16 {
	w := ctrlIDWord(id)
	return []uint16{code, uint16(w), uint16(w >> 16), 0, 0, 0, 0, code}
}

// paraText builds a PARA_TEXT body from literal strings and code unit
// slices, ending with a paragraph break.
func paraText(parts ...any) []byte {
	p := newPayload()
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			p.text(v)
		case []uint16:
			p.units(v...)
		}
	}
	p.u16(CharPara)
	return p.bytes()
}

// DocInfo 레코드

func documentPropertiesRecord(sections uint16) []byte {
	p := newPayload().u16(sections)
	for i := 0; i < 6; i++ {
		p.u16(1)
	}
	return p.u32(0).u32(0).u32(0).bytes()
}

func idMappingsRecord(counts map[string]int32) []byte {
	p := newPayload().i32(counts["bin"])
	for _, k := range []string{"hangul", "latin", "hanja", "japanese", "other", "symbol", "user"} {
		p.i32(counts[k])
	}
	for _, k := range []string{"border", "char", "tab", "numbering", "bullet", "para", "style"} {
		p.i32(counts[k])
	}
	return p.i32(0).bytes()
}

func faceNameRecord(name string) []byte {
	return newPayload().u8(0).wstr(name).bytes()
}

// charShapeRecord lays out a CHAR_SHAPE body for version. Every script
// uses font id font.
func charShapeRecord(version uint32, font uint16, attr uint32) []byte {
	p := newPayload()
	for i := 0; i < 7; i++ {
		p.u16(font)
	}
	for i := 0; i < 7; i++ {
		p.u8(100)
	}
	for i := 0; i < 7; i++ {
		p.i8(0)
	}
	for i := 0; i < 7; i++ {
		p.u8(100)
	}
	for i := 0; i < 7; i++ {
		p.i8(0)
	}
	p.i32(1000).u32(attr).i8(10).i8(10)
	p.u32(0x000000).u32(0x0000FF).u32(0xFFFFFF).u32(0xB2B2B2)
	if version >= Version5021 {
		p.u16(0)
	}
	if version >= Version5030 {
		p.u32(0x00FF00)
	}
	return p.bytes()
}

func paraShapeRecord(version uint32, attr uint32) []byte {
	p := newPayload().u32(attr)
	p.i32(0).i32(0).i32(0).i32(0).i32(0).i32(160)
	p.u16(0).u16(0).u16(0)
	p.i16(0).i16(0).i16(0).i16(0)
	if version >= Version5017 {
		p.u32(0)
	}
	if version >= Version5025 {
		p.u32(0).u32(160)
	}
	return p.bytes()
}

func styleRecord(name string, paraShape, charShape uint16) []byte {
	return newPayload().wstr(name).wstr("Normal").u8(0).u8(0).i16(1042).
		u16(paraShape).u16(charShape).bytes()
}

func borderFillRecord(fill uint32) []byte {
	p := newPayload().u16(0)
	for i := 0; i < 5; i++ {
		p.u8(1).u8(0).u32(0)
	}
	p.u32(fill)
	if fill&fillSolid != 0 {
		p.u32(0xFFFFFF).u32(0).i32(-1)
	}
	return p.bytes()
}

func embeddedBinDataRecord(binID uint16, ext string, attr uint16) []byte {
	return newPayload().u16(attr | 1).u16(binID).wstr(ext).bytes()
}

func linkedBinDataRecord(abs string) []byte {
	return newPayload().u16(0).wstr(abs).wstr("").bytes()
}

// docInfoFixture is a small DocInfo: one face name, two char shapes
// (plain, bold+italic+underline), one para shape, one style and one
// border fill.
func docInfoFixture(version uint32, extra func(b *recordBuilder)) []byte {
	b := &recordBuilder{}
	b.add(TagDocumentProperties, 0, documentPropertiesRecord(1))
	b.add(TagFaceName, 1, faceNameRecord("함초롬바탕"))
	b.add(TagBorderFill, 1, borderFillRecord(fillSolid))
	b.add(TagCharShape, 1, charShapeRecord(version, 0, 0))
	b.add(TagCharShape, 1, charShapeRecord(version, 0, 0x3|1<<2))
	b.add(TagParaShape, 1, paraShapeRecord(version, 0))
	b.add(TagStyle, 1, styleRecord("바탕글", 0, 0))
	if extra != nil {
		extra(b)
	}
	return b.bytes()
}

func decodeDocInfoFixture(t *testing.T, version uint32, extra func(b *recordBuilder)) *DocInfoTables {
	t.Helper()
	tables, err := NewDocInfoDecoder(version, nil).Decode(docInfoFixture(version, extra))
	if err != nil {
		t.Fatalf("DocInfo decode failed: %v", err)
	}
	return tables
}

// 본문 레코드

func paraHeaderRecord(chars uint32, paraShape uint16, style uint8) []byte {
	return newPayload().u32(chars).u32(0).u16(paraShape).u8(style).u8(0).
		u16(1).u16(0).u16(1).u32(0).bytes()
}

func paraCharShapeRecord(runs ...[2]uint32) []byte {
	p := newPayload()
	for _, r := range runs {
		p.u32(r[0]).u32(r[1])
	}
	return p.bytes()
}

func lineSegRecord(vertical int32) []byte {
	return newPayload().u32(0).i32(vertical).i32(1000).i32(1000).i32(850).
		i32(600).i32(0).i32(42520).u32(0x60000).bytes()
}

func objectCtrlRecord(id string, width, height uint32) []byte {
	p := newPayload().ctrlID(id).u32(0x1).i32(0).i32(0).u32(width).u32(height).i32(0)
	return p.u16(0).u16(0).u16(0).u16(0).u32(1).i32(0).bytes()
}

func tableRecord(rows, cols uint16, borderFill uint16) []byte {
	p := newPayload().u32(0).u16(rows).u16(cols).u16(0)
	p.u16(510).u16(510).u16(141).u16(141)
	for i := uint16(0); i < rows; i++ {
		p.u16(cols)
	}
	return p.u16(borderFill).u16(0).bytes()
}

func cellListRecord(paras int16, row, col uint16) []byte {
	p := newPayload().i16(paras).u16(0).u32(0)
	p.u16(col).u16(row).u16(1).u16(1).u32(21000).u32(282)
	return p.u16(510).u16(510).u16(141).u16(141).u16(1).bytes()
}

func captionListRecord(paras int16) []byte {
	return newPayload().i16(paras).u16(0).u32(0).u32(3).u32(8000).u16(850).u32(42520).bytes()
}

func textBoxListRecord(paras int16) []byte {
	return newPayload().i16(paras).u16(0).u32(1 << 5).u16(283).u16(283).u16(283).u16(283).u32(0).bytes()
}

func shapeComponentRecord(id string, width, height uint32, top bool) []byte {
	p := newPayload().ctrlID(id)
	if top {
		p.ctrlID(id)
	}
	p.i32(0).i32(0).u16(0).u16(1).u32(width).u32(height).u32(width).u32(height)
	return p.u32(0).i16(0).i32(int32(width / 2)).i32(int32(height / 2)).bytes()
}

func pictureRecord(binID uint16) []byte {
	p := newPayload().u32(0).i32(0).u32(0)
	for i := 0; i < 8; i++ {
		p.i32(0)
	}
	p.i32(0).i32(0).i32(100).i32(100)
	p.u16(0).u16(0).u16(0).u16(0)
	return p.i8(0).i8(0).u8(0).u16(binID).u8(0).u32(0).bytes()
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("flate write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("flate close: %v", err)
	}
	return buf.Bytes()
}
