package hwp5

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	// 그림 크기 판별용 디코더 등록
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// ResourceLookup returns the stored bytes of a BinData item by its DocInfo
// id together with the extension known for it. The bytes may still be
// deflated.
type ResourceLookup interface {
	LookupBinData(id uint16) (data []byte, ext string, err error)
}

// BuildOptions controls how a section model is built.
type BuildOptions struct {
	Index      int          // 구역 번호
	Compressed bool         // 문서 압축 플래그 (BinData 기본 압축 여부)
	LoadImages bool         // 그림 데이터를 읽어 Image.Data에 채움
	Logger     *slog.Logger // nil이면 slog.Default()
}

// Builder turns the records of one section into the resolved model.
type Builder struct {
	tables *DocInfoTables
	lookup ResourceLookup
	opts   BuildOptions
	logger *slog.Logger
}

// NewBuilder creates a builder. lookup may be nil when pictures are not
// loaded.
func NewBuilder(tables *DocInfoTables, lookup ResourceLookup, opts BuildOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{tables: tables, lookup: lookup, opts: opts, logger: logger}
}

// listFrame is an open paragraph list: the section body, a cell, a text
// box, a caption, a header/footer or a note.
type listFrame struct {
	level int
	role  ListRole
	paras *[]*ir.Paragraph
	owed  int // 남은 문단 수
	start int // 리스트 헤더 오프셋

	para *ir.Paragraph   // 현재 주소 지정된 문단
	text *ClassifiedText // para의 텍스트, 글자 모양 위치 변환용
}

// objectFrame is an open control header and the records nested below it.
type objectFrame struct {
	ctrl   *CtrlHeaderRecord
	level  int
	anchor *ir.Paragraph // 컨트롤을 포함한 문단
	top    bool          // 본문 최상위 문단에 앵커됨

	table    *ir.Table
	textBox  *ir.TextBox
	caption  *ir.Caption
	equation *ir.Equation
	header   *ir.HeaderFooter
	note     *ir.Note
	root     *ir.Shape
	shapes   map[int]*ir.Shape // 개체 요소 레벨별 도형
}

// buildState is the state machine over one section's records.
type buildState struct {
	*Builder
	sec     *ir.Section
	diags   *diagnostics
	records []Record
	pos     int

	lists   []*listFrame // lists[0]은 본문
	objects []*objectFrame

	topAnchored bool // 현재 최상위 문단이 표/글상자의 앵커로 들어감
}

// Build assembles the section. Every id found in the records is resolved
// against the DocInfo tables; ids that do not resolve are replaced by the
// first entry of their collection, or nil, with a diagnostic.
func (b *Builder) Build(recs *SectionRecords) *ir.Section {
	sec := ir.NewSection(b.opts.Index)
	s := &buildState{
		Builder: b,
		sec:     sec,
		diags:   newDiagnostics(recs.Stream, b.logger),
		records: recs.Records,
	}
	var body []*ir.Paragraph
	s.lists = []*listFrame{{level: 0, role: ListOther, paras: &body, owed: -1}}

	for i, rec := range recs.Records {
		s.pos = i
		h := rec.Header()
		s.unwind(int(h.Level), h.TagID == TagListHeader)
		s.apply(rec)
	}
	s.unwind(-1, false)
	s.flushTop()

	sec.Diagnostics = append(append([]ir.Diagnostic(nil), recs.Diagnostics...), s.diags.items()...)
	b.logger.Debug("built section",
		slog.Int("index", b.opts.Index),
		slog.Int("blocks", len(sec.Blocks)),
		slog.Int("diagnostics", len(sec.Diagnostics)),
	)
	return sec
}

func (s *buildState) list() *listFrame { return s.lists[len(s.lists)-1] }

func (s *buildState) object() *objectFrame {
	if len(s.objects) == 0 {
		return nil
	}
	return s.objects[len(s.objects)-1]
}

// unwind closes the frames a record at level is no longer nested in.
// Frame levels strictly increase from the body list inward, so the
// innermost frame is whichever of the two stacks has the higher level.
func (s *buildState) unwind(level int, listHeader bool) {
	for {
		lo, ll := -1, -1
		if o := s.object(); o != nil {
			lo = o.level
		}
		if len(s.lists) > 1 {
			ll = s.list().level
		}
		switch {
		case lo > ll && lo >= level:
			s.closeObject()
		case ll > lo && (ll > level || (listHeader && ll == level)):
			s.closeList()
		default:
			return
		}
	}
}

func (s *buildState) apply(rec Record) {
	switch r := rec.(type) {
	case *ParaHeaderRecord:
		s.openParagraph(r)
	case *ParaTextRecord:
		if l := s.target(r); l != nil {
			l.para.Text = r.Text
			l.para.Markers = r.Markers
			l.text = &r.ClassifiedText
		}
	case *ParaCharShapeRecord:
		if l := s.target(r); l != nil {
			s.attachCharShapes(l, r)
		}
	case *ParaLineSegRecord:
		if l := s.target(r); l != nil {
			l.para.LineSegments = r.Segments
		}
	case *ParaRangeTagRecord:
		if l := s.target(r); l != nil {
			l.para.RangeTags = r.Tags
		}
	case *CtrlHeaderRecord:
		s.openObject(r)
	case *ListHeaderRecord:
		s.openList(r)
	case *TableRecord:
		s.buildTable(r)
	case *ShapeComponentRecord:
		s.openShape(r)
	case *PageDefRecord:
		pd := r.PageDef
		s.sec.PageDef = &pd
	case *FootnoteShapeRecord:
		s.sec.NoteShapes = append(s.sec.NoteShapes, r.NoteShape)
	case *PageBorderFillRecord:
		pbf := r.PageBorderFill
		if pbf.BorderFillID > 0 {
			pbf.BorderFill, _ = s.tables.BorderFill(int(pbf.BorderFillID))
		}
		s.sec.PageBorderFills = append(s.sec.PageBorderFills, pbf)
	case *EqEditRecord:
		o := s.object()
		if o == nil || o.equation == nil {
			s.mismatch(r, "equation body outside an eqed control")
			return
		}
		eq := o.equation
		eq.Script, eq.Size, eq.Color, eq.Baseline = r.Script, r.Size, r.Color, r.Baseline
		eq.Version, eq.Font = r.Version, r.Font
	case *OpaqueRecord:
	default:
		s.applyShapeBody(rec)
	}
}

func (s *buildState) mismatch(rec Record, format string, args ...any) {
	s.diags.add(ir.DiagStructuralMismatch, rec.StreamOffset(), rec.Header().TagID, format, args...)
}

// target returns the list whose addressed paragraph a paragraph child
// record belongs to.
func (s *buildState) target(rec Record) *listFrame {
	l := s.list()
	if l.para == nil {
		s.mismatch(rec, "%s outside a paragraph", TagName(rec.Header().TagID))
		return nil
	}
	return l
}

func (s *buildState) openParagraph(r *ParaHeaderRecord) {
	level := int(r.Level)
	l := s.list()
	if l.level != level {
		if o := s.object(); o != nil && o.level == level-1 {
			// 리스트 헤더 없이 문단이 바로 이어지는 컨트롤
			role := listRoleOfControl(o.ctrl.ControlID)
			l = s.pushList(role, s.listDest(o, role), level, -1, r.Offset)
		} else {
			s.mismatch(r, "paragraph at level %d in a list at level %d", level, l.level)
		}
	}

	p := s.newParagraph(r)
	if l == s.lists[0] {
		s.flushTop()
	}
	*l.paras = append(*l.paras, p)
	l.para = p
	l.text = nil
	if l.owed > 0 {
		l.owed--
	} else if l.owed == 0 {
		s.mismatch(r, "list holds more paragraphs than its header declares")
		l.owed = -1
	}
}

// flushTop emits the pending top-level paragraph unless a table or text
// box took it as its anchor.
func (s *buildState) flushTop() {
	body := s.lists[0]
	if body.para != nil && !s.topAnchored {
		s.sec.AddParagraph(body.para)
	}
	body.para = nil
	body.text = nil
	*body.paras = (*body.paras)[:0]
	s.topAnchored = false
}

func (s *buildState) newParagraph(r *ParaHeaderRecord) *ir.Paragraph {
	p := &ir.Paragraph{
		CharCount:   r.CharCount,
		ControlMask: r.ControlMask,
		ParaShapeID: r.ParaShapeID,
		StyleID:     r.StyleID,
		BreakType:   r.BreakType,
		InstanceID:  r.InstanceID,
	}
	if ps, ok := s.tables.ParaShape(int(r.ParaShapeID)); ok {
		p.ParaShape = ps
	} else {
		s.diags.add(ir.DiagInconsistentReference, r.Offset, TagParaHeader,
			"para shape id %d out of range", r.ParaShapeID)
		p.ParaShape, _ = s.tables.ParaShape(0)
	}
	if st, ok := s.tables.Style(int(r.StyleID)); ok {
		p.Style = st
	} else {
		s.diags.add(ir.DiagInconsistentReference, r.Offset, TagParaHeader,
			"style id %d out of range", r.StyleID)
		p.Style, _ = s.tables.Style(0)
	}
	if ps := p.ParaShape; ps != nil {
		p.Bullet = ps.Bullet
		p.Numbering = ps.Numbering
		p.BorderFill = ps.BorderFill
	}
	return p
}

func (s *buildState) attachCharShapes(l *listFrame, r *ParaCharShapeRecord) {
	runs := make([]ir.CharShapeRun, len(r.Runs))
	for i, run := range r.Runs {
		run.TextOffset = 0
		if l.text != nil {
			run.TextOffset = l.text.TextOffset(int(run.Position))
		}
		if cs, ok := s.tables.CharShape(int(run.ShapeID)); ok {
			run.Shape = cs
		} else {
			s.diags.add(ir.DiagInconsistentReference, r.Offset, TagParaCharShape,
				"char shape id %d out of range", run.ShapeID)
			run.Shape, _ = s.tables.CharShape(0)
		}
		runs[i] = run
	}
	l.para.CharShapeRuns = runs
}

func listRoleOfControl(id string) ListRole {
	switch id {
	case CtrlHeader, CtrlFooter:
		return ListHeaderFooter
	case CtrlFootnote, CtrlEndnote:
		return ListNote
	}
	return ListOther
}

func (s *buildState) openObject(r *CtrlHeaderRecord) {
	anchor := s.list().para
	o := &objectFrame{
		ctrl:   r,
		level:  int(r.Level),
		anchor: anchor,
		top:    len(s.lists) == 1 && anchor != nil,
	}
	s.objects = append(s.objects, o)

	switch {
	case r.SectionDef != nil:
		s.sec.Definition = r.SectionDef
		return
	case r.PageNumberPos != nil:
		s.sec.PageNumbers = append(s.sec.PageNumbers, *r.PageNumberPos)
		return
	case r.HeaderFooter != nil:
		o.header = &ir.HeaderFooter{Footer: r.HeaderFooter.Footer, ApplyTo: r.HeaderFooter.ApplyTo}
		s.sec.HeadersFooters = append(s.sec.HeadersFooters, o.header)
		return
	}

	if anchor == nil {
		if r.ControlID != CtrlColumn {
			s.mismatch(r, "control %q outside a paragraph", r.ControlID)
		}
		return
	}
	switch {
	case r.ControlID == CtrlEquation:
		o.equation = &ir.Equation{Placement: r.Object}
		anchor.Equations = append(anchor.Equations, o.equation)
	case r.Column != nil:
		anchor.ColumnDef = r.Column
	case r.Note != nil:
		o.note = &ir.Note{Endnote: r.Note.Endnote, Number: r.Note.Number}
		anchor.Notes = append(anchor.Notes, o.note)
	case r.AutoNumber != nil:
		anchor.AutoNumbers = append(anchor.AutoNumbers, r.AutoNumber)
	case r.Field != nil:
		anchor.Fields = append(anchor.Fields, r.Field)
	case r.Bookmark != nil:
		anchor.Bookmarks = append(anchor.Bookmarks, r.Bookmark.Name)
	}
}

func (s *buildState) closeObject() {
	o := s.object()
	s.objects = s.objects[:len(s.objects)-1]

	switch o.ctrl.ControlID {
	case CtrlTable:
		if o.table == nil {
			s.mismatch(o.ctrl, "table control without a TABLE record")
			return
		}
		o.table.Caption = o.caption
		s.placeBlock(o, ir.Block{Type: ir.BlockTypeTable, Table: o.table})
	case CtrlGSO:
		s.closeDrawing(o)
	case CtrlEquation:
		if o.equation != nil {
			o.equation.Caption = o.caption
		}
	}
}

// placeBlock puts a table or text box either into the section, taking the
// top-level paragraph as its anchor, or into the anchoring paragraph.
func (s *buildState) placeBlock(o *objectFrame, blk ir.Block) {
	if o.anchor == nil {
		return
	}
	if !o.top {
		o.anchor.Objects = append(o.anchor.Objects, blk)
		return
	}
	var anchor *ir.Paragraph
	if !s.topAnchored && s.lists[0].para == o.anchor {
		anchor = o.anchor
		s.topAnchored = true
	}
	switch blk.Type {
	case ir.BlockTypeTable:
		blk.Table.Anchor = anchor
		s.sec.AddTable(blk.Table)
	case ir.BlockTypeTextBox:
		blk.TextBox.Anchor = anchor
		s.sec.AddTextBox(blk.TextBox)
	}
}

func (s *buildState) closeDrawing(o *objectFrame) {
	if o.textBox != nil {
		tb := o.textBox
		tb.Placement = o.ctrl.Object
		tb.Caption = o.caption
		if o.root != nil {
			tb.Geometry = o.root.Geometry
			tb.Width, tb.Height = o.root.Geometry.Width, o.root.Geometry.Height
		} else if o.ctrl.Object != nil {
			tb.Width, tb.Height = o.ctrl.Object.Width, o.ctrl.Object.Height
		}
		s.placeBlock(o, ir.Block{Type: ir.BlockTypeTextBox, TextBox: tb})
		return
	}
	if o.root == nil {
		s.mismatch(o.ctrl, "drawing object without a shape component")
		return
	}
	if o.anchor == nil {
		return
	}
	if o.root.Kind == ir.ShapePicture && o.root.Picture != nil {
		img := o.root.Picture
		img.Placement = o.ctrl.Object
		img.Caption = o.caption
		o.anchor.Images = append(o.anchor.Images, img)
		return
	}
	o.root.Placement = o.ctrl.Object
	o.root.Caption = o.caption
	o.anchor.Shapes = append(o.anchor.Shapes, o.root)
}

// listDest returns the paragraph slice a list of the given role fills.
func (s *buildState) listDest(o *objectFrame, role ListRole) *[]*ir.Paragraph {
	switch role {
	case ListCaption:
		return &o.caption.Paragraphs
	case ListTextBox:
		return &o.textBox.Paragraphs
	case ListHeaderFooter:
		if o.header == nil {
			o.header = &ir.HeaderFooter{}
			s.sec.HeadersFooters = append(s.sec.HeadersFooters, o.header)
		}
		return &o.header.Paragraphs
	case ListNote:
		if o.note == nil {
			o.note = &ir.Note{}
			if o.anchor != nil {
				o.anchor.Notes = append(o.anchor.Notes, o.note)
			}
		}
		return &o.note.Paragraphs
	}
	return new([]*ir.Paragraph)
}

func (s *buildState) pushList(role ListRole, dest *[]*ir.Paragraph, level, count, offset int) *listFrame {
	if count > 0 && *dest == nil {
		*dest = make([]*ir.Paragraph, 0, count)
	}
	l := &listFrame{level: level, role: role, paras: dest, owed: count, start: offset}
	s.lists = append(s.lists, l)
	return l
}

func (s *buildState) closeList() {
	l := s.list()
	s.lists = s.lists[:len(s.lists)-1]
	if l.owed > 0 {
		s.diags.add(ir.DiagStructuralMismatch, l.start, TagListHeader,
			"%s list is missing %d declared paragraphs", l.role, l.owed)
	}
}

func (s *buildState) openList(r *ListHeaderRecord) {
	o := s.object()
	if o == nil {
		s.mismatch(r, "list header outside a control")
		s.pushList(ListOther, new([]*ir.Paragraph), int(r.Level), r.ParaCount, r.Offset)
		return
	}

	role := r.Role
	switch role {
	case ListCell:
		if o.table == nil {
			s.mismatch(r, "cell list before the TABLE record")
			role = ListOther
			break
		}
		cell := s.newCell(r, o.table)
		s.pushList(ListCell, &cell.Paragraphs, int(r.Level), r.ParaCount, r.Offset)
		return
	case ListCaption:
		if c := r.Caption; c != nil {
			o.caption = &ir.Caption{
				Direction:     c.Direction,
				IncludeMargin: c.IncludeMargin,
				Width:         ir.HwpUnit(c.Width),
				Spacing:       ir.HwpUnit(c.Spacing),
				MaxWidth:      ir.HwpUnit(c.MaxWidth),
			}
		} else {
			o.caption = &ir.Caption{}
		}
	case ListTextBox:
		tb := &ir.TextBox{VerticalAlign: r.VerticalAlign}
		if r.TextBox != nil {
			for i, m := range r.TextBox.Margins {
				tb.Margins[i] = ir.HwpUnit(m)
			}
		}
		o.textBox = tb
	case ListHeaderFooter:
		if o.header != nil && r.SubSize != nil {
			o.header.Width = ir.HwpUnit(r.SubSize.Width)
			o.header.Height = ir.HwpUnit(r.SubSize.Height)
		}
	}
	s.pushList(role, s.listDest(o, role), int(r.Level), r.ParaCount, r.Offset)
}

func (s *buildState) newCell(r *ListHeaderRecord, t *ir.Table) *ir.Cell {
	c := &ir.Cell{VerticalAlign: r.VerticalAlign, RowSpan: 1, ColSpan: 1}
	if info := r.Cell; info != nil {
		c.Row, c.Col = int(info.Row), int(info.Col)
		c.RowSpan, c.ColSpan = int(info.RowSpan), int(info.ColSpan)
		c.Width, c.Height = ir.HwpUnit(info.Width), ir.HwpUnit(info.Height)
		for i, m := range info.Margins {
			c.Margins[i] = ir.HwpUnit(m)
		}
		c.BorderFillID = info.BorderFillID
		if info.BorderFillID > 0 {
			c.BorderFill, _ = s.tables.BorderFill(int(info.BorderFillID))
		}
	} else {
		c.Row, c.Col = nextFreeCell(t)
	}
	row, col := c.Row, c.Col
	if prev := t.Cell(row, col); prev != nil {
		s.mismatch(r, "cell (%d,%d) overlaps the cell at (%d,%d)", row, col, prev.Row, prev.Col)
	}
	if t.Place(c) {
		s.mismatch(r, "cell (%d,%d) does not fit the %dx%d grid, clamped", row, col, t.Rows, t.Cols)
	}
	return c
}

// nextFreeCell returns the first unoccupied grid position in row-major
// order, for cell lists that carry no address.
func nextFreeCell(t *ir.Table) (row, col int) {
	for r := range t.Cells {
		for c := range t.Cells[r] {
			if t.Cells[r][c] == nil {
				return r, c
			}
		}
	}
	return t.Rows, 0
}

func (s *buildState) buildTable(r *TableRecord) {
	o := s.object()
	if o == nil || o.ctrl.ControlID != CtrlTable {
		s.mismatch(r, "TABLE record outside a tbl control")
		return
	}
	t := ir.NewTable(int(r.Rows), int(r.Cols))
	t.RowSizes = r.RowSizes
	t.CellSpacing = ir.HwpUnit(r.CellSpacing)
	for i, p := range r.Padding {
		t.Padding[i] = ir.HwpUnit(p)
	}
	t.PageBreak = r.PageBreak
	t.RepeatHeader = r.RepeatHeader
	t.BorderFillID = r.BorderFillID
	if r.BorderFillID > 0 {
		t.BorderFill, _ = s.tables.BorderFill(int(r.BorderFillID))
	}
	for _, z := range r.Zones {
		z.BorderFill, _ = s.tables.BorderFill(int(z.BorderFillID))
		t.Zones = append(t.Zones, z)
	}
	t.Placement = o.ctrl.Object

	sum := t.CellCount()
	if sum > t.Rows*t.Cols {
		s.mismatch(r, "row sizes declare %d cells for a %dx%d grid", sum, t.Rows, t.Cols)
	}
	s.tableGeometry(o, t)
	o.table = t
}

// tableGeometry takes the size from the control header right before the
// TABLE record and the start line from the line segments before that.
// When a caption list sits in between, the object placement and the
// anchor paragraph are used instead.
func (s *buildState) tableGeometry(o *objectFrame, t *ir.Table) {
	sized, lined := false, false
	if s.pos >= 1 {
		if ch, ok := s.records[s.pos-1].(*CtrlHeaderRecord); ok && ch.Object != nil {
			t.Width, t.Height = ch.Object.Width, ch.Object.Height
			sized = true
		}
	}
	if sized && s.pos >= 2 {
		if ls, ok := s.records[s.pos-2].(*ParaLineSegRecord); ok && len(ls.Segments) > 0 {
			t.StartLine = ls.Segments[0].VerticalPos
			lined = true
		}
	}
	if !sized && o.ctrl.Object != nil {
		t.Width, t.Height = o.ctrl.Object.Width, o.ctrl.Object.Height
	}
	if !lined && o.anchor != nil && len(o.anchor.LineSegments) > 0 {
		t.StartLine = o.anchor.LineSegments[0].VerticalPos
	}
}

var shapeKinds = map[string]ir.ShapeKind{
	ShapeIDPicture:   ir.ShapePicture,
	ShapeIDLine:      ir.ShapeLine,
	ShapeIDRectangle: ir.ShapeRectangle,
	ShapeIDEllipse:   ir.ShapeEllipse,
	ShapeIDArc:       ir.ShapeArc,
	ShapeIDPolygon:   ir.ShapePolygon,
	ShapeIDCurve:     ir.ShapeCurve,
	ShapeIDContainer: ir.ShapeContainer,
	ShapeIDOLE:       ir.ShapeOLE,
}

func (s *buildState) openShape(r *ShapeComponentRecord) {
	o := s.object()
	if o == nil || o.ctrl.ControlID != CtrlGSO {
		s.mismatch(r, "shape component outside a gso control")
		return
	}
	kind, ok := shapeKinds[r.ControlID]
	if !ok {
		kind = ir.ShapeUnknown
	}
	sh := &ir.Shape{Kind: kind, Geometry: r.ShapeGeometry}

	level := int(r.Level)
	if o.shapes == nil {
		o.shapes = make(map[int]*ir.Shape)
	}
	for l := range o.shapes {
		if l >= level {
			delete(o.shapes, l)
		}
	}
	if parent := o.shapes[level-1]; parent != nil {
		parent.Children = append(parent.Children, sh)
	} else if o.root == nil {
		o.root = sh
	} else {
		s.mismatch(r, "second top-level shape component in one drawing object")
	}
	o.shapes[level] = sh
}

// applyShapeBody attaches a shape body record to the shape component it
// is nested in.
func (s *buildState) applyShapeBody(rec Record) {
	o := s.object()
	var sh *ir.Shape
	if o != nil {
		sh = o.shapes[int(rec.Header().Level)-1]
	}
	if sh == nil {
		s.mismatch(rec, "%s outside a shape component", TagName(rec.Header().TagID))
		return
	}

	switch r := rec.(type) {
	case *ShapeLineRecord:
		sh.Kind = ir.ShapeLine
		ls := r.LineShape
		sh.Line = &ls
	case *ShapeRectangleRecord:
		sh.Kind = ir.ShapeRectangle
		rs := r.RectShape
		sh.Rectangle = &rs
	case *ShapeEllipseRecord:
		sh.Kind = ir.ShapeEllipse
		if r.Header().TagID == TagShapeArc {
			sh.Kind = ir.ShapeArc
		}
		es := r.EllipseShape
		sh.Ellipse = &es
	case *ShapePolygonRecord:
		sh.Kind = ir.ShapePolygon
		sh.Points = r.Points
	case *ShapeCurveRecord:
		sh.Kind = ir.ShapeCurve
		sh.Points = r.Points
		sh.Segments = r.Segments
	case *ShapeContainerRecord:
		sh.Kind = ir.ShapeContainer
	case *ShapeOLERecord:
		sh.Kind = ir.ShapeOLE
		ole := r.OLEShape
		sh.OLE = &ole
	case *ShapePictureRecord:
		sh.Kind = ir.ShapePicture
		sh.Picture = s.resolveImage(r, sh.Geometry)
	}
}

// resolveImage builds an image from a picture record. Failures to locate
// or decode the resource leave the image marked Unresolved.
func (s *buildState) resolveImage(r *ShapePictureRecord, g ir.ShapeGeometry) *ir.Image {
	img := &ir.Image{
		BinItemID:     r.BinItemID,
		DisplayWidth:  g.Width,
		DisplayHeight: g.Height,
		Corners:       r.Corners,
		Crop:          r.Crop,
		Brightness:    r.Brightness,
		Contrast:      r.Contrast,
		Effect:        r.Effect,
		BorderColor:   r.BorderColor,
		BorderWidth:   r.BorderWidth,
	}
	for i, p := range r.Padding {
		img.Padding[i] = ir.HwpUnit(p)
	}

	bd, ok := s.tables.BinData(int(r.BinItemID))
	if !ok {
		img.Unresolved = true
		img.Reason = fmt.Sprintf("BinData %d is not declared", r.BinItemID)
		return img
	}
	img.Format = bd.Extension
	if bd.StorageKind == ir.StorageLink {
		img.Path = bd.AbsPath
		if img.Path == "" {
			img.Path = bd.RelPath
		}
		img.Unresolved = true
		img.Reason = "linked file"
		return img
	}
	img.Path = bd.ContainerPath

	if !s.opts.LoadImages || s.lookup == nil {
		return img
	}
	unresolved := func(format string, args ...any) *ir.Image {
		img.Unresolved = true
		img.Reason = fmt.Sprintf(format, args...)
		s.diags.add(ir.DiagInconsistentReference, r.Offset, TagShapePicture, "picture %s: %s", img.Path, img.Reason)
		return img
	}

	data, ext, err := s.lookup.LookupBinData(r.BinItemID)
	if err != nil {
		return unresolved("%v", err)
	}
	if ext != "" {
		img.Format = ext
	}
	if bd.Compressed(s.opts.Compressed) {
		data, err = DecompressStream(data)
		if err != nil {
			return unresolved("inflate: %v", err)
		}
	}
	img.Data = data
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}
	return img
}
