package hwp5

import (
	"github.com/roboco-io/hwpmodel/internal/ir"
)

func decodeShapeComponent(c *byteCursor) *ShapeComponentRecord {
	r := &ShapeComponentRecord{}
	g := &r.ShapeGeometry
	g.ControlID = c.controlID()
	// 최상위 그리기 개체는 ID가 두 번 기록됨
	if c.remaining() >= 4 && controlIDFromUint32(uint32(peekU16At(c, 0))|uint32(peekU16At(c, 2))<<16) == g.ControlID {
		c.skip(4)
	}
	g.OffsetX = c.i32()
	g.OffsetY = c.i32()
	g.GroupLevel = c.u16()
	g.LocalVersion = c.u16()
	g.InitialWidth = ir.HwpUnit(c.u32())
	g.InitialHeight = ir.HwpUnit(c.u32())
	g.Width = ir.HwpUnit(c.u32())
	g.Height = ir.HwpUnit(c.u32())
	flip := c.u32()
	g.FlipHorz = readFlag(flip, 0)
	g.FlipVert = readFlag(flip, 1)
	g.Rotation = c.i16()
	g.RotationX = c.i32()
	g.RotationY = c.i32()
	// 변환 행렬과 테두리/채우기 정보는 모델에 반영하지 않음
	return r
}

func peekU16At(c *byteCursor, off int) uint16 {
	if c.remaining() < off+2 {
		return 0
	}
	return uint16(c.data[c.pos+off]) | uint16(c.data[c.pos+off+1])<<8
}

func readPoint(c *byteCursor) ir.Point {
	x := c.i32()
	return ir.Point{X: x, Y: c.i32()}
}

func decodeShapeLine(c *byteCursor) *ShapeLineRecord {
	r := &ShapeLineRecord{}
	r.Start = readPoint(c)
	r.End = readPoint(c)
	if c.remaining() >= 2 {
		r.StartedRightOrBot = c.u16() != 0
	}
	return r
}

func decodeShapeRectangle(c *byteCursor) *ShapeRectangleRecord {
	r := &ShapeRectangleRecord{}
	r.Curvature = c.u8()
	for i := range r.Corners {
		r.Corners[i].X = c.i32()
	}
	for i := range r.Corners {
		r.Corners[i].Y = c.i32()
	}
	return r
}

func decodeShapeEllipse(c *byteCursor) *ShapeEllipseRecord {
	r := &ShapeEllipseRecord{}
	e := &r.EllipseShape
	e.Attributes = c.u32()
	e.IsArc = readFlag(e.Attributes, 1)
	e.ArcType = uint8(ReadBits(e.Attributes, 2, 9))
	e.Center = readPoint(c)
	e.Axis1 = readPoint(c)
	e.Axis2 = readPoint(c)
	e.Start = readPoint(c)
	e.End = readPoint(c)
	return r
}

func decodeShapeArc(c *byteCursor) *ShapeEllipseRecord {
	r := &ShapeEllipseRecord{}
	e := &r.EllipseShape
	e.Attributes = c.u32()
	e.IsArc = true
	e.ArcType = uint8(ReadBits(e.Attributes, 0, 7))
	e.Center = readPoint(c)
	e.Axis1 = readPoint(c)
	e.Axis2 = readPoint(c)
	return r
}

// readPoints reads count x coordinates followed by count y coordinates.
func readPoints(c *byteCursor, count int) []ir.Point {
	if count <= 0 || c.remaining() < count*8 {
		return nil
	}
	pts := make([]ir.Point, count)
	for i := range pts {
		pts[i].X = c.i32()
	}
	for i := range pts {
		pts[i].Y = c.i32()
	}
	return pts
}

func decodeShapePolygon(c *byteCursor) *ShapePolygonRecord {
	count := int(c.i16())
	return &ShapePolygonRecord{Points: readPoints(c, count)}
}

func decodeShapeCurve(c *byteCursor) *ShapeCurveRecord {
	count := int(c.i16())
	r := &ShapeCurveRecord{Points: readPoints(c, count)}
	if len(r.Points) > 1 {
		r.Segments = c.bytes(len(r.Points) - 1)
	}
	return r
}

func decodeShapePicture(c *byteCursor) *ShapePictureRecord {
	r := &ShapePictureRecord{}
	r.BorderColor = ir.ColorRef(c.u32())
	r.BorderWidth = c.i32()
	r.BorderAttr = c.u32()
	for i := range r.Corners {
		r.Corners[i].X = c.i32()
	}
	for i := range r.Corners {
		r.Corners[i].Y = c.i32()
	}
	for i := range r.Crop {
		r.Crop[i] = c.i32()
	}
	for i := range r.Padding {
		r.Padding[i] = c.u16()
	}
	r.Brightness = c.i8()
	r.Contrast = c.i8()
	r.Effect = c.u8()
	r.BinItemID = c.u16()
	if c.remaining() >= 1 {
		r.BorderOpacity = c.u8()
	}
	if c.remaining() >= 4 {
		r.InstanceID = c.u32()
	}
	return r
}

func decodeShapeOLE(c *byteCursor) *ShapeOLERecord {
	r := &ShapeOLERecord{}
	r.Attributes = uint32(c.u16())
	r.ExtentX = c.i32()
	r.ExtentY = c.i32()
	r.BinItemID = c.u16()
	return r
}

func decodeShapeContainer(c *byteCursor) *ShapeContainerRecord {
	r := &ShapeContainerRecord{}
	count := int(c.u16())
	for i := 0; i < count && c.remaining() >= 4; i++ {
		r.ChildIDs = append(r.ChildIDs, c.controlID())
	}
	return r
}

func decodeEqEdit(c *byteCursor) *EqEditRecord {
	r := &EqEditRecord{}
	r.Attributes = c.u32()
	r.Script = c.wstring()
	r.Size = ir.HwpUnit(c.u32())
	r.Color = ir.ColorRef(c.u32())
	r.Baseline = c.i16()
	if c.remaining() >= 2+2*int(peekU16(c)) {
		r.Version = c.wstring()
	}
	if c.remaining() >= 2+2*int(peekU16(c)) {
		r.Font = c.wstring()
	}
	return r
}

var (
	pageBreakEnum = bitEnum[string]{start: 0, end: 1, fallback: "none",
		values: map[uint32]string{1: "cell", 2: "table"}}
)

func decodeTable(c *byteCursor, version uint32) *TableRecord {
	r := &TableRecord{}
	r.Attributes = c.u32()
	r.PageBreak = pageBreakEnum.decode(r.Attributes)
	r.RepeatHeader = readFlag(r.Attributes, 2)
	r.Rows = c.u16()
	r.Cols = c.u16()
	r.CellSpacing = c.u16()
	for i := range r.Padding {
		r.Padding[i] = c.u16()
	}
	if c.remaining() >= 2*int(r.Rows) {
		r.RowSizes = make([]uint16, r.Rows)
		for i := range r.RowSizes {
			r.RowSizes[i] = c.u16()
		}
	} else {
		c.skip(2 * int(r.Rows))
	}
	r.BorderFillID = c.u16()
	if version >= Version5010 && c.remaining() >= 2 {
		count := int(c.u16())
		for i := 0; i < count && c.remaining() >= 10; i++ {
			r.Zones = append(r.Zones, ir.CellZone{
				StartCol:     c.u16(),
				StartRow:     c.u16(),
				EndCol:       c.u16(),
				EndRow:       c.u16(),
				BorderFillID: c.u16(),
			})
		}
	}
	return r
}

var (
	textDirEnum = bitEnum[string]{start: 0, end: 2, fallback: "horizontal",
		values: map[uint32]string{1: "vertical"}}
	lineBreakEnum = bitEnum[string]{start: 3, end: 4, fallback: "normal",
		values: map[uint32]string{1: "single_line", 2: "expand"}}
	listVAlignEnum = bitEnum[string]{start: 5, end: 6, fallback: "top",
		values: map[uint32]string{1: "center", 2: "bottom"}}
	captionDirEnum = bitEnum[string]{start: 0, end: 1, fallback: "left",
		values: map[uint32]string{1: "right", 2: "top", 3: "bottom"}}
)

const (
	cellFieldsSize = 26 // 셀 속성 (표 80)
	listHeaderWide = 8  // [문단 수:2][예약:2][속성:4]
	listHeaderNarr = 6  // [문단 수:2][속성:4]
)

// decodeListHeader decodes a paragraph list header. The role is decided by
// the caller from the owning control; the header bytes do not carry it.
func decodeListHeader(c *byteCursor, role ListRole) *ListHeaderRecord {
	size := c.remaining()
	r := &ListHeaderRecord{Role: role}

	header := listHeaderWide
	if role == ListCell && size < listHeaderWide+cellFieldsSize && size >= listHeaderNarr+cellFieldsSize {
		header = listHeaderNarr
	} else if size < listHeaderWide {
		header = listHeaderNarr
	}

	r.ParaCount = int(c.i16())
	if header == listHeaderWide {
		c.skip(2)
	}
	r.Attributes = c.u32()
	r.TextDirection = textDirEnum.decode(r.Attributes)
	r.LineBreak = lineBreakEnum.decode(r.Attributes)
	r.VerticalAlign = listVAlignEnum.decode(r.Attributes)

	switch role {
	case ListCell:
		if c.remaining() < cellFieldsSize {
			return r
		}
		cell := &CellInfo{}
		cell.Col = c.u16()
		cell.Row = c.u16()
		cell.ColSpan = c.u16()
		cell.RowSpan = c.u16()
		cell.Width = c.u32()
		cell.Height = c.u32()
		for i := range cell.Margins {
			cell.Margins[i] = c.u16()
		}
		cell.BorderFillID = c.u16()
		r.Cell = cell
	case ListCaption:
		if c.remaining() < 14 {
			return r
		}
		attr := c.u32()
		r.Caption = &CaptionInfo{
			Direction:     captionDirEnum.decode(attr),
			IncludeMargin: readFlag(attr, 2),
			Width:         c.u32(),
			Spacing:       c.u16(),
			MaxWidth:      c.u32(),
		}
	case ListTextBox:
		if c.remaining() < 12 {
			return r
		}
		tb := &TextBoxInfo{}
		for i := range tb.Margins {
			tb.Margins[i] = c.u16()
		}
		tb.MaxWidth = c.u32()
		r.TextBox = tb
	case ListHeaderFooter:
		if c.remaining() < 8 {
			return r
		}
		r.SubSize = &SubListSize{Width: c.u32(), Height: c.u32()}
	}
	return r
}

var (
	bindingEnum = bitEnum[string]{start: 1, end: 2, fallback: "single",
		values: map[uint32]string{1: "facing", 2: "top"}}
	notePlacementEnum = bitEnum[string]{start: 8, end: 9, fallback: "each_column",
		values: map[uint32]string{1: "merged_column", 2: "right_column"}}
	noteNumberingEnum = bitEnum[string]{start: 10, end: 11, fallback: "continue",
		values: map[uint32]string{1: "restart_section", 2: "restart_page"}}
	pageBorderRelEnum = bitEnum[string]{start: 0, end: 0, fallback: "body",
		values: map[uint32]string{1: "paper"}}
	fillAreaEnum = bitEnum[string]{start: 3, end: 4, fallback: "paper",
		values: map[uint32]string{1: "page", 2: "border"}}
)

func decodePageDef(c *byteCursor) *PageDefRecord {
	r := &PageDefRecord{}
	p := &r.PageDef
	p.Width = ir.HwpUnit(c.u32())
	p.Height = ir.HwpUnit(c.u32())
	p.MarginLeft = ir.HwpUnit(c.u32())
	p.MarginRight = ir.HwpUnit(c.u32())
	p.MarginTop = ir.HwpUnit(c.u32())
	p.MarginBottom = ir.HwpUnit(c.u32())
	p.MarginHeader = ir.HwpUnit(c.u32())
	p.MarginFooter = ir.HwpUnit(c.u32())
	p.Gutter = ir.HwpUnit(c.u32())
	attr := c.u32()
	p.Landscape = readFlag(attr, 0)
	p.Binding = bindingEnum.decode(attr)
	return r
}

func decodeFootnoteShape(c *byteCursor) *FootnoteShapeRecord {
	r := &FootnoteShapeRecord{}
	n := &r.NoteShape
	attr := c.u32()
	n.NumberShape = ir.NumberShape(ReadBits(attr, 0, 7)).String()
	n.Placement = notePlacementEnum.decode(attr)
	n.Numbering = noteNumberingEnum.decode(attr)
	n.Superscript = readFlag(attr, 12)
	n.UserSymbol = trimNUL(c.wchars(1))
	n.Prefix = trimNUL(c.wchars(1))
	n.Suffix = trimNUL(c.wchars(1))
	n.StartNumber = c.u16()
	n.DividerLength = ir.HwpUnit(c.u16())
	n.DividerTop = ir.HwpUnit(c.u16())
	n.DividerBottom = ir.HwpUnit(c.u16())
	n.NoteSpacing = ir.HwpUnit(c.u16())
	n.DividerType = borderLineKind(c.u8())
	n.DividerWidth = borderWidthMM(c.u8())
	n.DividerColor = ir.ColorRef(c.u32())
	return r
}

func decodePageBorderFill(c *byteCursor) *PageBorderFillRecord {
	r := &PageBorderFillRecord{}
	p := &r.PageBorderFill
	p.Attributes = c.u32()
	p.RelativeTo = pageBorderRelEnum.decode(p.Attributes)
	p.IncludeHead = readFlag(p.Attributes, 1)
	p.IncludeFoot = readFlag(p.Attributes, 2)
	p.FillArea = fillAreaEnum.decode(p.Attributes)
	for i := range p.Spacing {
		p.Spacing[i] = ir.HwpUnit(c.u16())
	}
	p.BorderFillID = c.u16()
	return r
}

func decodeParaHeader(c *byteCursor, version uint32) *ParaHeaderRecord {
	r := &ParaHeaderRecord{}
	n := c.u32()
	r.CharCount = n & 0x7FFFFFFF
	r.LastInList = n&0x80000000 != 0
	r.ControlMask = c.u32()
	r.ParaShapeID = c.u16()
	r.StyleID = c.u8()
	r.BreakType = c.u8()
	r.CharShapeCount = c.u16()
	r.RangeTagCount = c.u16()
	r.LineAlignCount = c.u16()
	r.InstanceID = c.u32()
	if version >= Version5032 && c.remaining() >= 2 {
		r.TrackChangeMerge = c.u16()
	}
	return r
}

func decodeParaCharShape(c *byteCursor) *ParaCharShapeRecord {
	r := &ParaCharShapeRecord{}
	for c.remaining() >= 8 {
		pos := c.u32()
		r.Runs = append(r.Runs, ir.CharShapeRun{Position: pos, ShapeID: c.u32()})
	}
	return r
}

const lineSegSize = 36

func decodeParaLineSeg(c *byteCursor) *ParaLineSegRecord {
	r := &ParaLineSegRecord{}
	for c.remaining() >= lineSegSize {
		r.Segments = append(r.Segments, ir.LineSegment{
			TextStart:    c.u32(),
			VerticalPos:  c.i32(),
			LineHeight:   c.i32(),
			TextHeight:   c.i32(),
			Baseline:     c.i32(),
			LineSpacing:  c.i32(),
			ColumnStart:  c.i32(),
			SegmentWidth: c.i32(),
			Flags:        c.u32(),
		})
	}
	return r
}

func decodeParaRangeTag(c *byteCursor) *ParaRangeTagRecord {
	r := &ParaRangeTagRecord{}
	for c.remaining() >= 12 {
		start := c.u32()
		end := c.u32()
		tag := c.u32()
		r.Tags = append(r.Tags, ir.RangeTag{
			Start: start,
			End:   end,
			Kind:  uint8(ReadBits(tag, 24, 31)),
			Data:  ReadBits(tag, 0, 23),
		})
	}
	return r
}
