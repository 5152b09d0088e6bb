package hwp5

import (
	"strings"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// 개체 공통 속성 (표 70)
var (
	vertRelEnum = bitEnum[string]{start: 3, end: 4, fallback: "para",
		values: map[uint32]string{0: "paper", 1: "page", 2: "para"}}
	vertAlignEnum = bitEnum[string]{start: 5, end: 7, fallback: "top",
		values: map[uint32]string{1: "center", 2: "bottom", 3: "inside", 4: "outside"}}
	horzRelEnum = bitEnum[string]{start: 8, end: 9, fallback: "page",
		values: map[uint32]string{0: "paper", 1: "page", 2: "column", 3: "para"}}
	horzAlignEnum = bitEnum[string]{start: 10, end: 12, fallback: "left",
		values: map[uint32]string{1: "center", 2: "right", 3: "inside", 4: "outside"}}
	widthRelEnum = bitEnum[string]{start: 15, end: 17, fallback: "absolute",
		values: map[uint32]string{0: "paper", 1: "page", 2: "column", 3: "para"}}
	heightRelEnum = bitEnum[string]{start: 18, end: 19, fallback: "absolute",
		values: map[uint32]string{0: "paper", 1: "page"}}
	wrapEnum = bitEnum[string]{start: 21, end: 23, fallback: "square",
		values: map[uint32]string{1: "tight", 2: "through", 3: "top_and_bottom", 4: "behind_text", 5: "in_front_of_text"}}
	textSideEnum = bitEnum[string]{start: 24, end: 25, fallback: "both",
		values: map[uint32]string{1: "left", 2: "right", 3: "largest"}}
	categoryEnum = bitEnum[string]{start: 26, end: 28, fallback: "none",
		values: map[uint32]string{1: "figure", 2: "table", 3: "equation"}}
)

// 단 정의, 머리말/꼬리말, 번호 컨트롤 속성
var (
	columnKindEnum = bitEnum[string]{start: 0, end: 1, fallback: "normal",
		values: map[uint32]string{1: "distribute", 2: "parallel"}}
	columnDirEnum = bitEnum[string]{start: 10, end: 11, fallback: "left",
		values: map[uint32]string{1: "right", 2: "both"}}
	applyPageEnum = bitEnum[string]{start: 0, end: 1, fallback: "both",
		values: map[uint32]string{1: "even", 2: "odd"}}
	autoNumberKindEnum = bitEnum[string]{start: 0, end: 3, fallback: "page",
		values: map[uint32]string{1: "footnote", 2: "endnote", 3: "picture", 4: "table", 5: "equation"}}
	pageNumberPosEnum = bitEnum[string]{start: 8, end: 11, fallback: "none",
		values: map[uint32]string{1: "top_left", 2: "top_center", 3: "top_right", 4: "bottom_left",
			5: "bottom_center", 6: "bottom_right", 7: "outside_top", 8: "outside_bottom",
			9: "inside_top", 10: "inside_bottom"}}
	sectionDirEnum = bitEnum[string]{start: 16, end: 18, fallback: "horizontal",
		values: map[uint32]string{1: "vertical"}}
)

var fieldKinds = map[string]string{
	CtrlFieldHyperlink: "hyperlink",
	CtrlFieldBookmark:  "bookmark",
	CtrlFieldDate:      "date",
	CtrlFieldDocDate:   "doc_date",
	CtrlFieldPath:      "path",
	CtrlFieldMailMerge: "mail_merge",
	CtrlFieldCrossRef:  "cross_ref",
	CtrlFieldFormula:   "formula",
	CtrlFieldClickHere: "click_here",
	CtrlFieldSummary:   "summary",
	CtrlFieldUserInfo:  "user_info",
	CtrlFieldMemo:      "memo",
	CtrlFieldTOC:       "toc",
}

// ctrlBodyDecoders decode the part of a control header after its id.
var ctrlBodyDecoders = map[string]func(r *CtrlHeaderRecord, c *byteCursor){
	CtrlTable:         decodeObjectCommon,
	CtrlGSO:           decodeObjectCommon,
	CtrlEquation:      decodeObjectCommon,
	CtrlFormObject:    decodeObjectCommon,
	CtrlColumn:        decodeColumnDef,
	CtrlSection:       decodeSectionDef,
	CtrlHeader:        decodeHeaderFooter,
	CtrlFooter:        decodeHeaderFooter,
	CtrlFootnote:      decodeNoteCtrl,
	CtrlEndnote:       decodeNoteCtrl,
	CtrlAutoNumber:    decodeAutoNumber,
	CtrlNewNumber:     decodeAutoNumber,
	CtrlPageNumberPos: decodePageNumberPos,
	CtrlBookmark:      decodeBookmark,
}

func decodeCtrlHeader(c *byteCursor) *CtrlHeaderRecord {
	r := &CtrlHeaderRecord{ControlID: c.controlID()}
	if fn, ok := ctrlBodyDecoders[r.ControlID]; ok {
		fn(r, c)
	} else if strings.HasPrefix(r.ControlID, "%") {
		decodeField(r, c)
	}
	return r
}

// IsObjectControl reports whether the control anchors a table, drawing
// object or equation with common object geometry.
func IsObjectControl(id string) bool {
	switch id {
	case CtrlTable, CtrlGSO, CtrlEquation, CtrlFormObject:
		return true
	}
	return false
}

func decodeObjectCommon(r *CtrlHeaderRecord, c *byteCursor) {
	p := &ir.ObjectPlacement{ControlID: r.ControlID}
	a := c.u32()
	p.Attributes = a
	p.OffsetY = ir.HwpUnit(c.i32())
	p.OffsetX = ir.HwpUnit(c.i32())
	p.Width = ir.HwpUnit(c.u32())
	p.Height = ir.HwpUnit(c.u32())
	p.ZOrder = c.i32()
	for i := range p.Margins {
		p.Margins[i] = ir.HwpUnit(c.u16())
	}
	p.InstanceID = c.u32()
	if c.remaining() >= 4 {
		p.PageDivide = c.i32()
	}
	if c.remaining() >= 2+2*int(peekU16(c)) {
		p.Description = c.wstring()
	}

	p.LikeLetters = readFlag(a, 0)
	p.VertRelTo = vertRelEnum.decode(a)
	p.VertAlign = vertAlignEnum.decode(a)
	p.HorzRelTo = horzRelEnum.decode(a)
	p.HorzAlign = horzAlignEnum.decode(a)
	p.FlowWithText = readFlag(a, 13)
	p.AllowOverlap = readFlag(a, 14)
	p.WidthRelTo = widthRelEnum.decode(a)
	p.HeightRelTo = heightRelEnum.decode(a)
	p.Protect = readFlag(a, 20)
	p.Wrap = wrapEnum.decode(a)
	p.TextSide = textSideEnum.decode(a)
	p.Category = categoryEnum.decode(a)
	r.Object = p
}

func decodeColumnDef(r *CtrlHeaderRecord, c *byteCursor) {
	attr := uint32(c.u16())
	col := &ir.ColumnDef{
		Kind:      columnKindEnum.decode(attr),
		Count:     int(ReadBits(attr, 2, 9)),
		Direction: columnDirEnum.decode(attr),
		SameWidth: readFlag(attr, 12),
	}
	col.Spacing = ir.HwpUnit(c.u16())
	if !col.SameWidth {
		for i := 0; i < col.Count && c.remaining() >= 2; i++ {
			col.Widths = append(col.Widths, ir.HwpUnit(c.u16()))
		}
	}
	c.skip(2) // 속성의 상위 16비트
	col.DividerType = borderLineKind(c.u8())
	col.DividerWidth = borderWidthMM(c.u8())
	col.DividerColor = ir.ColorRef(c.u32())
	r.Column = col
}

func decodeSectionDef(r *CtrlHeaderRecord, c *byteCursor) {
	a := c.u32()
	sd := &ir.SectionDef{Attributes: a, TextDirection: sectionDirEnum.decode(a)}
	applyFlags(a, []bitFlag{
		{0, func(on bool) { sd.HideHeader = on }},
		{1, func(on bool) { sd.HideFooter = on }},
		{2, func(on bool) { sd.HideMasterPage = on }},
		{3, func(on bool) { sd.HideBorder = on }},
		{4, func(on bool) { sd.HideFill = on }},
		{5, func(on bool) { sd.HidePageNumber = on }},
	})
	sd.ColumnGap = ir.HwpUnit(c.u16())
	sd.VerticalGrid = ir.HwpUnit(c.u16())
	sd.HorizontalGrid = ir.HwpUnit(c.u16())
	sd.DefaultTabSpacing = ir.HwpUnit(c.u32())
	sd.NumberingShapeID = c.u16()
	sd.PageStartNumber = c.u16()
	sd.PictureStartNumber = c.u16()
	sd.TableStartNumber = c.u16()
	sd.EquationStart = c.u16()
	r.SectionDef = sd
}

func decodeHeaderFooter(r *CtrlHeaderRecord, c *byteCursor) {
	r.HeaderFooter = &HeaderFooterCtrl{
		Footer:  r.ControlID == CtrlFooter,
		ApplyTo: applyPageEnum.decode(c.u32()),
	}
}

func decodeNoteCtrl(r *CtrlHeaderRecord, c *byteCursor) {
	n := &NoteCtrl{Endnote: r.ControlID == CtrlEndnote}
	if c.remaining() >= 1 {
		n.Number = uint32(c.u8())
	}
	r.Note = n
}

func decodeAutoNumber(r *CtrlHeaderRecord, c *byteCursor) {
	a := c.u32()
	shape := ir.NumberShape(ReadBits(a, 4, 11))
	an := &ir.AutoNumber{
		New:    r.ControlID == CtrlNewNumber,
		Kind:   autoNumberKindEnum.decode(a),
		Shape:  shape.String(),
		Number: c.u16(),
	}
	if !an.New && c.remaining() >= 6 {
		c.skip(2) // 사용자 기호
		prefix, suffix := c.wchars(1), c.wchars(1)
		an.Formatted = trimNUL(prefix) + ir.FormatNumber(shape, int(an.Number)) + trimNUL(suffix)
	} else {
		an.Formatted = ir.FormatNumber(shape, int(an.Number))
	}
	r.AutoNumber = an
}

func decodePageNumberPos(r *CtrlHeaderRecord, c *byteCursor) {
	a := c.u32()
	p := &ir.PageNumberPos{
		Shape:    ir.NumberShape(ReadBits(a, 0, 7)).String(),
		Position: pageNumberPosEnum.decode(a),
	}
	p.UserSymbol = trimNUL(c.wchars(1))
	p.Prefix = trimNUL(c.wchars(1))
	p.Suffix = trimNUL(c.wchars(1))
	if c.remaining() >= 2 {
		p.Dash = trimNUL(c.wchars(1))
	}
	r.PageNumberPos = p
}

func decodeBookmark(r *CtrlHeaderRecord, c *byteCursor) {
	b := &BookmarkCtrl{}
	if c.remaining() >= 2+2*int(peekU16(c)) {
		b.Name = c.wstring()
	}
	r.Bookmark = b
}

func decodeField(r *CtrlHeaderRecord, c *byteCursor) {
	f := &ir.Field{ControlID: r.ControlID, Kind: fieldKinds[r.ControlID]}
	if f.Kind == "" {
		f.Kind = "unknown"
	}
	attr := c.u32()
	f.Editable = readFlag(attr, 0)
	c.skip(1) // 기타 속성
	f.Command = c.wstring()
	if c.remaining() >= 4 {
		f.ID = c.u32()
	}
	r.Field = f
}

func trimNUL(s string) string {
	return strings.TrimRight(s, "\x00")
}
