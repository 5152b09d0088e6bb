package hwp5

import (
	"github.com/roboco-io/hwpmodel/internal/ir"
)

// 선 종류 (표 27): 밑줄/취소선 모양, 0부터 실선
var strokeKinds = []ir.LineKind{
	ir.LineSolid, ir.LineDash, ir.LineDot, ir.LineDashDot, ir.LineDashDotDot,
	ir.LineLongDash, ir.LineCircle, ir.LineDouble, ir.LineThinThick, ir.LineThickThin,
	ir.LineThinThickThin, ir.LineWave, ir.LineDoubleWave, ir.LineThick3D,
	ir.LineThick3DInset, ir.Line3D, ir.Line3DInset,
}

func strokeKind(v uint32) ir.LineKind {
	if int(v) < len(strokeKinds) {
		return strokeKinds[v]
	}
	return ir.LineSolid
}

// borderLineKind maps a border line type, where 0 means no line and the
// remaining values follow the stroke table.
func borderLineKind(v uint8) ir.LineKind {
	if v == 0 {
		return ir.LineNone
	}
	return strokeKind(uint32(v) - 1)
}

var (
	underlineEnum = bitEnum[ir.UnderlineKind]{start: 2, end: 3, fallback: ir.UnderlineNone,
		values: map[uint32]ir.UnderlineKind{1: ir.UnderlineBelow, 3: ir.UnderlineAbove}}
	outlineEnum = bitEnum[string]{start: 8, end: 10, fallback: "none",
		values: map[uint32]string{1: "solid", 2: "dot", 3: "thick", 4: "dash", 5: "dash_dot", 6: "dash_dot_dot"}}
	shadowEnum = bitEnum[string]{start: 11, end: 12, fallback: "none",
		values: map[uint32]string{1: "discrete", 2: "continuous"}}
	emphasisEnum = bitEnum[string]{start: 21, end: 24, fallback: "none",
		values: map[uint32]string{1: "dot_above", 2: "ring_above", 3: "caron", 4: "tilde", 5: "dot_middle", 6: "colon"}}

	alignEnum = bitEnum[ir.Alignment]{start: 2, end: 4, fallback: ir.AlignJustify,
		values: map[uint32]ir.Alignment{1: ir.AlignLeft, 2: ir.AlignRight, 3: ir.AlignCenter, 4: ir.AlignDistribute, 5: ir.AlignDivide}}
	lineSpacingEnum = bitEnum[string]{start: 0, end: 1, fallback: "percent",
		values: map[uint32]string{1: "fixed", 2: "margin"}}
	lineSpacing3Enum = bitEnum[string]{start: 0, end: 4, fallback: "percent",
		values: map[uint32]string{1: "fixed", 2: "margin", 3: "minimum"}}
	latinBreakEnum = bitEnum[string]{start: 5, end: 6, fallback: "word",
		values: map[uint32]string{1: "hyphen", 2: "char"}}
	koreanBreakEnum = bitEnum[string]{start: 7, end: 7, fallback: "word",
		values: map[uint32]string{1: "char"}}
	paraVAlignEnum = bitEnum[string]{start: 20, end: 21, fallback: "font",
		values: map[uint32]string{1: "top", 2: "center", 3: "bottom"}}
	headKindEnum = bitEnum[ir.HeadKind]{start: 23, end: 24, fallback: ir.HeadNone,
		values: map[uint32]ir.HeadKind{1: ir.HeadOutline, 2: ir.HeadNumber, 3: ir.HeadBullet}}

	tabKindEnum = bitEnum[string]{start: 0, end: 7, fallback: "left",
		values: map[uint32]string{1: "right", 2: "center", 3: "decimal"}}
	styleKindEnum = bitEnum[string]{start: 0, end: 2, fallback: "para",
		values: map[uint32]string{1: "char"}}
)

func decodeCharShape(t *DocInfoTables, c *byteCursor) {
	cs := &ir.CharShape{}
	for i := range cs.FontIDs {
		cs.FontIDs[i] = c.u16()
	}
	for i := range cs.Stretch {
		cs.Stretch[i] = c.u8()
	}
	for i := range cs.Spacing {
		cs.Spacing[i] = c.i8()
	}
	for i := range cs.RelativeSize {
		cs.RelativeSize[i] = c.u8()
	}
	for i := range cs.Position {
		cs.Position[i] = c.i8()
	}
	cs.BaseSize = c.i32()
	cs.Attributes = c.u32()
	cs.ShadowOffsetX = c.i8()
	cs.ShadowOffsetY = c.i8()
	cs.TextColor = ir.ColorRef(c.u32())
	cs.UnderColor = ir.ColorRef(c.u32())
	cs.ShadeColor = ir.ColorRef(c.u32())
	cs.ShadowColor = ir.ColorRef(c.u32())
	if t.version >= Version5021 {
		cs.BorderFillID = c.u16()
	}
	if t.version >= Version5030 {
		strike := ir.ColorRef(c.u32())
		cs.StrikeColor = &strike
	}

	applyCharShapeAttributes(cs)
	t.charShapes = append(t.charShapes, cs)
}

func applyCharShapeAttributes(cs *ir.CharShape) {
	a := cs.Attributes
	applyFlags(a, []bitFlag{
		{0, func(on bool) { cs.Italic = on }},
		{1, func(on bool) { cs.Bold = on }},
		{13, func(on bool) { cs.Emboss = on }},
		{14, func(on bool) { cs.Engrave = on }},
		{15, func(on bool) { cs.Superscript = on }},
		{16, func(on bool) { cs.Subscript = on }},
		{25, func(on bool) { cs.UseFontSpacing = on }},
		{30, func(on bool) { cs.Kerning = on }},
	})
	cs.Underline = underlineEnum.decode(a)
	cs.UnderlineShape = strokeKind(ReadBits(a, 4, 7))
	cs.Outline = outlineEnum.decode(a)
	cs.Shadow = shadowEnum.decode(a)
	cs.Strikethrough = ReadBits(a, 18, 20) != 0
	cs.StrikethroughShape = strokeKind(ReadBits(a, 26, 29))
	cs.Emphasis = emphasisEnum.decode(a)
}

func decodeParaShape(t *DocInfoTables, c *byteCursor) {
	ps := &ir.ParaShape{}
	ps.Attributes = c.u32()
	ps.MarginLeft = ir.HwpUnit(c.i32())
	ps.MarginRight = ir.HwpUnit(c.i32())
	ps.Indent = ir.HwpUnit(c.i32())
	ps.SpacingTop = ir.HwpUnit(c.i32())
	ps.SpacingBottom = ir.HwpUnit(c.i32())
	ps.LineSpacing = c.i32()
	ps.TabDefID = c.u16()
	ps.NumberBulletID = c.u16()
	ps.BorderFillID = c.u16()
	for i := range ps.BorderSpacing {
		ps.BorderSpacing[i] = c.i16()
	}

	a := ps.Attributes
	ps.LineSpacingMode = lineSpacingEnum.decode(a)
	ps.Alignment = alignEnum.decode(a)
	ps.LatinBreak = latinBreakEnum.decode(a)
	ps.KoreanBreak = koreanBreakEnum.decode(a)
	ps.MinSpacePercent = uint8(ReadBits(a, 9, 15))
	ps.VerticalAlign = paraVAlignEnum.decode(a)
	ps.HeadKind = headKindEnum.decode(a)
	ps.Level = uint8(ReadBits(a, 25, 27))
	applyFlags(a, []bitFlag{
		{8, func(on bool) { ps.UseGrid = on }},
		{16, func(on bool) { ps.WidowOrphan = on }},
		{17, func(on bool) { ps.KeepWithNext = on }},
		{18, func(on bool) { ps.KeepLines = on }},
		{19, func(on bool) { ps.PageBreakBefore = on }},
		{22, func(on bool) { ps.FontLineHeight = on }},
		{28, func(on bool) { ps.ConnectBorder = on }},
		{29, func(on bool) { ps.IgnoreMargin = on }},
		{30, func(on bool) { ps.TailShape = on }},
	})

	if t.version >= Version5017 {
		ps.Attributes2 = c.u32()
	}
	if t.version >= Version5025 {
		ps.Attributes3 = c.u32()
		spacing := c.u32()
		// 5.0.2.5 이상에서는 속성3과 32비트 줄 간격이 우선
		ps.LineSpacingMode = lineSpacing3Enum.decode(ps.Attributes3)
		ps.LineSpacing = int32(spacing)
	}

	t.paraShapes = append(t.paraShapes, ps)
}

func decodeStyle(t *DocInfoTables, c *byteCursor) {
	st := &ir.Style{}
	st.LocalName = c.wstring()
	st.EnglishName = c.wstring()
	st.Kind = styleKindEnum.decode(uint32(c.u8()))
	st.NextStyleID = c.u8()
	st.LangID = c.i16()
	st.ParaShapeID = c.u16()
	st.CharShapeID = c.u16()
	t.styles = append(t.styles, st)
}

func decodeTabDef(t *DocInfoTables, c *byteCursor) {
	td := &ir.TabDef{}
	attr := c.u32()
	td.AutoTabLeft = readFlag(attr, 0)
	td.AutoTabRight = readFlag(attr, 1)

	// 개수 필드는 문서에 따라 INT16 또는 INT32로 기록되어 있어 레코드 크기로 판별
	var count int
	n16 := int(int16(peekU16(c)))
	if n16 >= 0 && c.remaining() == 2+8*n16 {
		count = int(c.i16())
	} else {
		count = int(c.i32())
	}
	for i := 0; i < count && c.remaining() >= 8; i++ {
		stop := ir.TabStop{}
		stop.Position = ir.HwpUnit(c.u32())
		stop.Kind = tabKindEnum.decode(uint32(c.u8()))
		stop.Fill = c.u8()
		c.skip(2)
		td.Stops = append(td.Stops, stop)
	}
	t.tabDefs = append(t.tabDefs, td)
}

func peekU16(c *byteCursor) uint16 {
	if c.remaining() < 2 {
		return 0
	}
	return uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
}
