package hwp5

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// SectionDecoder decodes BodyText/SectionN streams into typed records.
// The DocInfo tables are only read, so one decoder may serve several
// sections concurrently.
type SectionDecoder struct {
	tables *DocInfoTables
	logger *slog.Logger

	// KeepLeading disables dropping the section/column definition block at
	// the start of the first paragraph text.
	KeepLeading bool
}

// NewSectionDecoder creates a section decoder. A nil logger means
// slog.Default().
func NewSectionDecoder(tables *DocInfoTables, logger *slog.Logger) *SectionDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SectionDecoder{tables: tables, logger: logger}
}

// 본문 레코드 중 모델에 반영하지 않는 태그
var sectionOpaque = map[uint16]bool{
	TagCtrlData:     true,
	TagShapeTextArt: true,
	TagFormObject:   true,
	TagMemoShape:    true,
	TagMemoList:     true,
	TagChartData:    true,
	TagVideoData:    true,
	TagShapeUnknown: true,
}

// ownerState tracks the control header that owns the lists and records
// nested below it.
type ownerState struct {
	id        string
	level     uint16
	offset    int
	tableSeen bool
	shapeSeen bool
	cellsOwed int
}

// sectionState is the per-stream decoding state.
type sectionState struct {
	firstTextSeen bool
	owners        map[uint16]*ownerState   // 컨트롤 헤더 레벨별 소유자
	pending       map[uint16][]anchorEntry // 문단 텍스트 레벨별 대기 중인 확장 컨트롤
}

type anchorEntry struct {
	marker ir.ControlMarker
	offset int
}

// Decode decodes a decompressed section stream under the given name
// (for example "BodyText/Section0"). When the stream is cut short the
// records decoded so far are returned together with an error wrapping
// ErrUnexpectedEOF.
func (d *SectionDecoder) Decode(stream string, data []byte) (*SectionRecords, error) {
	out := &SectionRecords{Stream: stream}
	diags := newDiagnostics(stream, d.logger)
	st := &sectionState{
		owners:  make(map[uint16]*ownerState),
		pending: make(map[uint16][]anchorEntry),
	}
	reader := NewRecordStreamReader(data)

	var streamErr error
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags.add(ir.DiagUnexpectedEOF, reader.Offset(), 0, "%v", err)
			streamErr = fmt.Errorf("failed to read %s: %w", stream, err)
			break
		}
		if rec := d.decodeRecord(st, raw, diags); rec != nil {
			out.Records = append(out.Records, rec)
		}
	}

	st.flushPending(0, diags)
	st.closeFrom(0, diags)

	out.Diagnostics = diags.items()
	d.logger.Debug("decoded section",
		slog.String("stream", stream),
		slog.Int("records", len(out.Records)),
		slog.Int("diagnostics", len(out.Diagnostics)),
	)
	return out, streamErr
}

func (d *SectionDecoder) decodeRecord(st *sectionState, raw *RawRecord, diags *diagnostics) Record {
	base := recordBase{RecordHeader: raw.RecordHeader, Offset: raw.Offset}
	version := d.tables.Version()

	var rec Record
	decode := func(fn func(c *byteCursor)) {
		c := newCursor(raw.Data)
		if c.decodeBounded(len(raw.Data), fn) {
			diags.add(ir.DiagStructuralMismatch, raw.Offset, raw.TagID,
				"%s record of %d bytes is shorter than its layout", TagName(raw.TagID), raw.Size)
		}
	}

	switch raw.TagID {
	case TagParaHeader:
		st.enterParagraph(raw.Level, diags)
		var r *ParaHeaderRecord
		decode(func(c *byteCursor) { r = decodeParaHeader(c, version) })
		r.recordBase = base
		rec = r

	case TagParaText:
		r := &ParaTextRecord{recordBase: base}
		r.SkippedLeading = !st.firstTextSeen && !d.KeepLeading && hasLeadingDefinitions(raw.Data)
		st.firstTextSeen = true
		r.ClassifiedText = ClassifyText(raw.Data, r.SkippedLeading)
		if r.Truncated {
			diags.add(ir.DiagStructuralMismatch, raw.Offset, raw.TagID,
				"paragraph text ends inside a control block")
		}
		st.queueAnchors(raw.Level, raw.Offset, r.Anchors())
		rec = r

	case TagParaCharShape:
		var r *ParaCharShapeRecord
		decode(func(c *byteCursor) { r = decodeParaCharShape(c) })
		r.recordBase = base
		rec = r

	case TagParaLineSeg:
		var r *ParaLineSegRecord
		decode(func(c *byteCursor) { r = decodeParaLineSeg(c) })
		r.recordBase = base
		rec = r

	case TagParaRangeTag:
		var r *ParaRangeTagRecord
		decode(func(c *byteCursor) { r = decodeParaRangeTag(c) })
		r.recordBase = base
		rec = r

	case TagCtrlHeader:
		var r *CtrlHeaderRecord
		decode(func(c *byteCursor) { r = decodeCtrlHeader(c) })
		r.recordBase = base
		st.openOwner(r.ControlID, raw.Level, raw.Offset, diags)
		r.Anchor = st.popAnchor(r.ControlID, raw.Level, raw.Offset, diags)
		rec = r

	case TagListHeader:
		owner := st.ownerOf(raw.Level)
		role := listRoleOf(owner, raw.Level)
		var r *ListHeaderRecord
		decode(func(c *byteCursor) { r = decodeListHeader(c, role) })
		r.recordBase = base
		if owner != nil {
			r.OwnerID = owner.id
		}
		if role == ListCell {
			if owner.cellsOwed == 0 {
				diags.add(ir.DiagStructuralMismatch, raw.Offset, raw.TagID,
					"cell list beyond the %s table's declared cells", owner.id)
			} else {
				owner.cellsOwed--
			}
			if r.Cell != nil {
				d.checkBorderFill(r.Cell.BorderFillID, "cell", raw, diags)
			}
		}
		rec = r

	case TagPageDef:
		var r *PageDefRecord
		decode(func(c *byteCursor) { r = decodePageDef(c) })
		r.recordBase = base
		rec = r

	case TagFootnoteShape:
		var r *FootnoteShapeRecord
		decode(func(c *byteCursor) { r = decodeFootnoteShape(c) })
		r.recordBase = base
		rec = r

	case TagPageBorderFill:
		var r *PageBorderFillRecord
		decode(func(c *byteCursor) { r = decodePageBorderFill(c) })
		r.recordBase = base
		d.checkBorderFill(r.BorderFillID, "page border", raw, diags)
		rec = r

	case TagTable:
		var r *TableRecord
		decode(func(c *byteCursor) { r = decodeTable(c, version) })
		r.recordBase = base
		if owner := st.owners[raw.Level-1]; raw.Level > 0 && owner != nil {
			owner.tableSeen = true
			owner.cellsOwed = 0
			for _, n := range r.RowSizes {
				owner.cellsOwed += int(n)
			}
		}
		d.checkBorderFill(r.BorderFillID, "table", raw, diags)
		for _, z := range r.Zones {
			d.checkBorderFill(z.BorderFillID, "cell zone", raw, diags)
		}
		rec = r

	case TagShapeComponent:
		var r *ShapeComponentRecord
		decode(func(c *byteCursor) { r = decodeShapeComponent(c) })
		r.recordBase = base
		if owner := st.owners[raw.Level-1]; raw.Level > 0 && owner != nil {
			owner.shapeSeen = true
		}
		rec = r

	case TagShapeLine:
		var r *ShapeLineRecord
		decode(func(c *byteCursor) { r = decodeShapeLine(c) })
		r.recordBase = base
		rec = r

	case TagShapeRectangle:
		var r *ShapeRectangleRecord
		decode(func(c *byteCursor) { r = decodeShapeRectangle(c) })
		r.recordBase = base
		rec = r

	case TagShapeEllipse:
		var r *ShapeEllipseRecord
		decode(func(c *byteCursor) { r = decodeShapeEllipse(c) })
		r.recordBase = base
		rec = r

	case TagShapeArc:
		var r *ShapeEllipseRecord
		decode(func(c *byteCursor) { r = decodeShapeArc(c) })
		r.recordBase = base
		rec = r

	case TagShapePolygon:
		var r *ShapePolygonRecord
		decode(func(c *byteCursor) { r = decodeShapePolygon(c) })
		r.recordBase = base
		rec = r

	case TagShapeCurve:
		var r *ShapeCurveRecord
		decode(func(c *byteCursor) { r = decodeShapeCurve(c) })
		r.recordBase = base
		rec = r

	case TagShapePicture:
		var r *ShapePictureRecord
		decode(func(c *byteCursor) { r = decodeShapePicture(c) })
		r.recordBase = base
		if _, ok := d.tables.BinData(int(r.BinItemID)); !ok {
			diags.add(ir.DiagInconsistentReference, raw.Offset, raw.TagID,
				"picture references BinData %d of %d", r.BinItemID, len(d.tables.BinDataList()))
		}
		rec = r

	case TagShapeOLE:
		var r *ShapeOLERecord
		decode(func(c *byteCursor) { r = decodeShapeOLE(c) })
		r.recordBase = base
		if bd, ok := d.tables.BinData(int(r.BinItemID)); ok {
			r.BinData = bd
		} else {
			diags.add(ir.DiagInconsistentReference, raw.Offset, raw.TagID,
				"OLE object references BinData %d of %d", r.BinItemID, len(d.tables.BinDataList()))
		}
		rec = r

	case TagShapeContainer:
		var r *ShapeContainerRecord
		decode(func(c *byteCursor) { r = decodeShapeContainer(c) })
		r.recordBase = base
		rec = r

	case TagEqEdit:
		var r *EqEditRecord
		decode(func(c *byteCursor) { r = decodeEqEdit(c) })
		r.recordBase = base
		rec = r

	default:
		if sectionOpaque[raw.TagID] {
			return &OpaqueRecord{recordBase: base, Data: raw.Data}
		}
		diags.add(ir.DiagUnknownTag, raw.Offset, raw.TagID,
			"skipped %d bytes of %s", raw.Size, TagName(raw.TagID))
		return nil
	}
	return rec
}

func (d *SectionDecoder) checkBorderFill(id uint16, what string, raw *RawRecord, diags *diagnostics) {
	if id == 0 {
		return
	}
	if _, ok := d.tables.BorderFill(int(id)); !ok {
		diags.add(ir.DiagInconsistentReference, raw.Offset, raw.TagID,
			"%s references border fill %d", what, id)
	}
}

// hasLeadingDefinitions reports whether a paragraph text starts with two
// extended control blocks, the section and column definitions written in
// front of the first paragraph of a section.
func hasLeadingDefinitions(payload []byte) bool {
	if len(payload) < leadingUnits*2 {
		return false
	}
	first := binary.LittleEndian.Uint16(payload)
	second := binary.LittleEndian.Uint16(payload[controlUnits*2:])
	return ClassifyUnit(first) == ClassExtended && ClassifyUnit(second) == ClassExtended
}

// listRoleOf decides what a list header at level belongs to. A table's
// lists before the TABLE record are captions, those after it are cells.
// A drawing object's list below its shape component is a text box.
func listRoleOf(owner *ownerState, level uint16) ListRole {
	if owner == nil {
		return ListOther
	}
	switch owner.id {
	case CtrlTable:
		if owner.tableSeen {
			return ListCell
		}
		return ListCaption
	case CtrlGSO:
		if owner.shapeSeen && level > owner.level+1 {
			return ListTextBox
		}
		return ListCaption
	case CtrlEquation:
		return ListCaption
	case CtrlHeader, CtrlFooter:
		return ListHeaderFooter
	case CtrlFootnote, CtrlEndnote:
		return ListNote
	}
	return ListOther
}

// ownerOf returns the nearest control header above level.
func (st *sectionState) ownerOf(level uint16) *ownerState {
	for l := int(level) - 1; l >= 0; l-- {
		if o, ok := st.owners[uint16(l)]; ok {
			return o
		}
	}
	return nil
}

func (st *sectionState) openOwner(id string, level uint16, offset int, diags *diagnostics) {
	st.closeFrom(level, diags)
	st.owners[level] = &ownerState{id: id, level: level, offset: offset}
}

// closeFrom drops the owners at level and below it in the tree.
func (st *sectionState) closeFrom(level uint16, diags *diagnostics) {
	for _, l := range slices.Sorted(maps.Keys(st.owners)) {
		if l >= level {
			st.closeOwner(st.owners[l], diags)
			delete(st.owners, l)
		}
	}
}

func (st *sectionState) closeOwner(o *ownerState, diags *diagnostics) {
	if o.tableSeen && o.cellsOwed > 0 {
		diags.add(ir.DiagStructuralMismatch, o.offset, TagCtrlHeader,
			"table is missing %d declared cells", o.cellsOwed)
		o.cellsOwed = 0
	}
}

// enterParagraph starts a paragraph at level. Anchors left over by the
// previous paragraph at the same level never got their control header.
func (st *sectionState) enterParagraph(level uint16, diags *diagnostics) {
	st.flushPending(level+1, diags)
	st.closeFrom(level+1, diags)
}

func (st *sectionState) flushPending(from uint16, diags *diagnostics) {
	for _, l := range slices.Sorted(maps.Keys(st.pending)) {
		if l < from {
			continue
		}
		for _, a := range st.pending[l] {
			diags.add(ir.DiagStructuralMismatch, a.offset, TagParaText,
				"control %q in text has no control header", a.marker.ControlID)
		}
		delete(st.pending, l)
	}
}

func (st *sectionState) queueAnchors(level uint16, offset int, anchors []ir.ControlMarker) {
	q := make([]anchorEntry, 0, len(anchors))
	for _, m := range anchors {
		q = append(q, anchorEntry{marker: m, offset: offset})
	}
	st.pending[level] = q
}

// popAnchor pairs a control header with the next pending extended control
// of its paragraph. Section and column definitions may have been dropped
// with the leading block and are accepted without an anchor.
func (st *sectionState) popAnchor(id string, level uint16, offset int, diags *diagnostics) *ir.ControlMarker {
	q := st.pending[level]
	for i, a := range q {
		if a.marker.ControlID != id {
			continue
		}
		for _, skipped := range q[:i] {
			diags.add(ir.DiagStructuralMismatch, skipped.offset, TagParaText,
				"control %q in text has no control header", skipped.marker.ControlID)
		}
		st.pending[level] = q[i+1:]
		m := a.marker
		return &m
	}
	if id != CtrlSection && id != CtrlColumn {
		diags.add(ir.DiagStructuralMismatch, offset, TagCtrlHeader,
			"control header %q has no matching control in text", id)
	}
	return nil
}
