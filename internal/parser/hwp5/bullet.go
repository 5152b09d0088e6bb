package hwp5

import (
	"github.com/roboco-io/hwpmodel/internal/ir"
)

// bulletGlyph is the display form of a bullet code. Codes in the private
// use area come from the Wingdings-like symbol font used by 한글.
type bulletGlyph struct {
	glyph string
	small bool
}

var bulletGlyphs = map[uint16]bulletGlyph{
	45:    {"‐", false},
	61548: {"●", false},
	61599: {"●", true},
	61550: {"◼", false},
	61607: {"◼", true},
	61557: {"◆", false},
	61559: {"◆", true},
	9654:  {"▶", false},
	61601: {"○", false},
	61551: {"□", false},
	9671:  {"◇", false},
	9655:  {"▷", false},
	61558: {"❖", false},
	61604: {"◉", false},
	61692: {"✓", false},
	61694: {"☑", false},
	61611: {"★", false},
	61510: {"☞", false},
	9728:  {"☀", false},
}

// BulletGlyph maps a bullet character code to the glyph shown for it.
// Unknown codes map to the character itself.
func BulletGlyph(code uint16) (glyph string, small bool) {
	if g, ok := bulletGlyphs[code]; ok {
		return g.glyph, g.small
	}
	if code == 0 {
		return "", false
	}
	return string(rune(code)), false
}

var (
	headAlignEnum = bitEnum[ir.Alignment]{start: 0, end: 1, fallback: ir.AlignLeft,
		values: map[uint32]ir.Alignment{1: ir.AlignCenter, 2: ir.AlignRight}}
	distanceTypeEnum = bitEnum[string]{start: 4, end: 4, fallback: "ratio",
		values: map[uint32]string{1: "value"}}
)

func decodeBullet(t *DocInfoTables, c *byteCursor) {
	attr := c.u32()
	b := &ir.Bullet{
		Alignment:    headAlignEnum.decode(attr),
		LikeLetters:  readFlag(attr, 2),
		AutoOutdent:  readFlag(attr, 3),
		DistanceType: distanceTypeEnum.decode(attr),
	}
	b.Width = ir.HwpUnit(c.u16())
	b.Space = ir.HwpUnit(c.u16())
	b.CharShapeID = c.i32()
	b.Code = c.u16()
	b.Glyph, b.Small = BulletGlyph(b.Code)

	// 이미지 글머리표와 체크 글머리표는 선택 항목
	if c.remaining() >= 4 {
		b.ImageBullet = c.i32()
	}
	if c.remaining() >= 4 {
		c.skip(4) // 밝기, 명암, 효과, ID
	}
	if c.remaining() >= 2 {
		check := c.u16()
		if check != 0 {
			b.CheckGlyph, _ = BulletGlyph(check)
		}
	}

	t.bullets = append(t.bullets, b)
}

func decodeNumbering(t *DocInfoTables, c *byteCursor) {
	n := &ir.Numbering{}
	for i := range n.Levels {
		attr := c.u32()
		lv := &n.Levels[i]
		lv.Alignment = headAlignEnum.decode(attr)
		lv.LikeLetters = readFlag(attr, 2)
		lv.AutoOutdent = readFlag(attr, 3)
		lv.DistanceType = distanceTypeEnum.decode(attr)
		lv.Width = ir.HwpUnit(c.u16())
		lv.Distance = ir.HwpUnit(c.u16())
		lv.CharShapeID = c.u32()
		lv.Format = c.wstring()
	}
	n.StartNumber = c.u16()

	if t.version >= Version5025 && c.remaining() >= 4*len(n.Levels) {
		n.LevelStartNumbers = make([]uint32, len(n.Levels))
		for i := range n.LevelStartNumbers {
			n.LevelStartNumbers[i] = c.u32()
		}
	}
	// 확장 수준(8~10)의 번호 형식
	for i := 0; i < 3 && c.remaining() >= 2+2*int(peekU16(c)); i++ {
		n.ExtendedFormats = append(n.ExtendedFormats, c.wstring())
	}

	t.numberings = append(t.numberings, n)
}
