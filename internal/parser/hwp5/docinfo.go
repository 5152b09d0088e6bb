package hwp5

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// DocumentProperties는 문서 속성 (HWPTAG_DOCUMENT_PROPERTIES)
type DocumentProperties struct {
	SectionCount  uint16 `json:"section_count"`  // 구역 개수
	PageStart     uint16 `json:"page_start"`     // 시작 페이지 번호
	FootnoteStart uint16 `json:"footnote_start"` // 각주 시작 번호
	EndnoteStart  uint16 `json:"endnote_start"`  // 미주 시작 번호
	PictureStart  uint16 `json:"picture_start"`  // 그림 시작 번호
	TableStart    uint16 `json:"table_start"`    // 표 시작 번호
	EquationStart uint16 `json:"equation_start"` // 수식 시작 번호
	CaretListID   uint32 `json:"caret_list_id"`  // 캐럿 위치: 리스트 ID
	CaretParaID   uint32 `json:"caret_para_id"`  // 캐럿 위치: 문단 ID
	CaretCharPos  uint32 `json:"caret_char_pos"` // 캐럿 위치: 글자 단위
}

// IDMappings는 ID 매핑 테이블 크기 (HWPTAG_ID_MAPPINGS)
type IDMappings struct {
	BinData           int32
	FaceNames         [ir.ScriptCount]int32 // 언어별 글꼴 개수
	BorderFill        int32
	CharShape         int32
	TabDef            int32
	Numbering         int32
	Bullet            int32
	ParaShape         int32
	Style             int32
	MemoShape         int32 // 5.0.2.1 이상
	TrackChange       int32 // 5.0.3.2 이상
	TrackChangeAuthor int32 // 5.0.3.2 이상
}

// TotalFaceNames returns the sum of the per-script face name counts.
func (m *IDMappings) TotalFaceNames() int {
	n := 0
	for _, c := range m.FaceNames {
		n += int(c)
	}
	return n
}

func (m *IDMappings) validFaceCounts(total int) bool {
	for _, c := range m.FaceNames {
		if c < 0 {
			return false
		}
	}
	return m.TotalFaceNames() == total
}

// DocInfoTables holds the decoded DocInfo collections. Collections are
// indexed by decode order and never change after Decode returns.
type DocInfoTables struct {
	version          uint32
	properties       DocumentProperties
	idMappings       *IDMappings
	binData          []*ir.BinData
	faceNames        []*ir.FaceName
	faceByScript     [ir.ScriptCount][]*ir.FaceName
	borderFills      []*ir.BorderFill
	charShapes       []*ir.CharShape
	tabDefs          []*ir.TabDef
	numberings       []*ir.Numbering
	bullets          []*ir.Bullet
	paraShapes       []*ir.ParaShape
	styles           []*ir.Style
	compatibleTarget uint32
	diagnostics      []ir.Diagnostic
}

// Version returns the document version number used for field gating.
func (t *DocInfoTables) Version() uint32 { return t.version }

// Properties returns the document properties record.
func (t *DocInfoTables) Properties() DocumentProperties { return t.properties }

// IDMappings returns the declared collection sizes when the record was present.
func (t *DocInfoTables) IDMappings() (IDMappings, bool) {
	if t.idMappings == nil {
		return IDMappings{}, false
	}
	return *t.idMappings, true
}

// CompatibleTarget returns the target program of COMPATIBLE_DOCUMENT
// (0 = 한글 문서, 1 = 한글 2007 호환, 2 = MS 워드 호환).
func (t *DocInfoTables) CompatibleTarget() uint32 { return t.compatibleTarget }

// Diagnostics returns the problems recorded while decoding DocInfo.
func (t *DocInfoTables) Diagnostics() []ir.Diagnostic {
	return append([]ir.Diagnostic(nil), t.diagnostics...)
}

// CharShape returns the character shape with the given 0-based id.
func (t *DocInfoTables) CharShape(id int) (*ir.CharShape, bool) { return at(t.charShapes, id) }

// ParaShape returns the paragraph shape with the given 0-based id.
func (t *DocInfoTables) ParaShape(id int) (*ir.ParaShape, bool) { return at(t.paraShapes, id) }

// Style returns the style with the given 0-based id.
func (t *DocInfoTables) Style(id int) (*ir.Style, bool) { return at(t.styles, id) }

// TabDef returns the tab definition with the given 0-based id.
func (t *DocInfoTables) TabDef(id int) (*ir.TabDef, bool) { return at(t.tabDefs, id) }

// BorderFill returns the border fill with the given 1-based id.
func (t *DocInfoTables) BorderFill(id int) (*ir.BorderFill, bool) { return at(t.borderFills, id-1) }

// Bullet returns the bullet with the given 1-based id.
func (t *DocInfoTables) Bullet(id int) (*ir.Bullet, bool) { return at(t.bullets, id-1) }

// Numbering returns the numbering with the given 1-based id.
func (t *DocInfoTables) Numbering(id int) (*ir.Numbering, bool) { return at(t.numberings, id-1) }

// FaceName returns the face with the given id inside a script's list.
func (t *DocInfoTables) FaceName(script ir.Script, id int) (*ir.FaceName, bool) {
	if script < 0 || script >= ir.ScriptCount {
		return nil, false
	}
	return at(t.faceByScript[script], id)
}

// BinData returns the BinData entry whose storage id matches, falling back
// to the 1-based position in decode order.
func (t *DocInfoTables) BinData(id int) (*ir.BinData, bool) {
	for _, b := range t.binData {
		if b.StorageKind != ir.StorageLink && int(b.BinID) == id {
			return b, true
		}
	}
	return at(t.binData, id-1)
}

// BinDataList returns a copy of every BinData entry in decode order.
func (t *DocInfoTables) BinDataList() []ir.BinData {
	out := make([]ir.BinData, len(t.binData))
	for i, b := range t.binData {
		out[i] = *b
	}
	return out
}

// CharShapes returns the character shapes in decode order.
func (t *DocInfoTables) CharShapes() []*ir.CharShape { return append([]*ir.CharShape(nil), t.charShapes...) }

// ParaShapes returns the paragraph shapes in decode order.
func (t *DocInfoTables) ParaShapes() []*ir.ParaShape { return append([]*ir.ParaShape(nil), t.paraShapes...) }

// Styles returns the styles in decode order.
func (t *DocInfoTables) Styles() []*ir.Style { return append([]*ir.Style(nil), t.styles...) }

// FaceNames returns every face name in decode order.
func (t *DocInfoTables) FaceNames() []*ir.FaceName { return append([]*ir.FaceName(nil), t.faceNames...) }

// Counts returns the size of each collection, keyed by record name.
func (t *DocInfoTables) Counts() map[string]int {
	return map[string]int{
		"BIN_DATA":    len(t.binData),
		"FACE_NAME":   len(t.faceNames),
		"BORDER_FILL": len(t.borderFills),
		"CHAR_SHAPE":  len(t.charShapes),
		"TAB_DEF":     len(t.tabDefs),
		"NUMBERING":   len(t.numberings),
		"BULLET":      len(t.bullets),
		"PARA_SHAPE":  len(t.paraShapes),
		"STYLE":       len(t.styles),
	}
}

func at[T any](list []*T, id int) (*T, bool) {
	if id < 0 || id >= len(list) {
		return nil, false
	}
	return list[id], true
}

// DocInfoDecoder decodes the DocInfo stream of one document.
type DocInfoDecoder struct {
	version uint32
	logger  *slog.Logger
}

// NewDocInfoDecoder creates a decoder for the given version number
// (see Version.Number). A nil logger means slog.Default().
func NewDocInfoDecoder(version uint32, logger *slog.Logger) *DocInfoDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocInfoDecoder{version: version, logger: logger}
}

// docInfoDecodeFunc decodes one record body into the tables under
// construction.
type docInfoDecodeFunc func(t *DocInfoTables, c *byteCursor)

var docInfoDecoders = map[uint16]docInfoDecodeFunc{
	TagDocumentProperties: decodeDocumentProperties,
	TagIDMappings:         decodeIDMappings,
	TagBinData:            decodeBinData,
	TagFaceName:           decodeFaceName,
	TagBorderFill:         decodeBorderFill,
	TagCharShape:          decodeCharShape,
	TagTabDef:             decodeTabDef,
	TagNumbering:          decodeNumbering,
	TagBullet:             decodeBullet,
	TagParaShape:          decodeParaShape,
	TagStyle:              decodeStyle,
	TagCompatibleDocument: decodeCompatibleDocument,
}

// 알려져 있지만 모델에 반영하지 않는 태그
var docInfoIgnored = map[uint16]bool{
	TagDocData:           true,
	TagDistributeDocData: true,
	TagLayoutCompatible:  true,
	TagTrackChangeInfo:   true,
	TagMemoShape:         true,
	TagForbiddenChar:     true,
	TagTrackChange:       true,
	TagTrackChangeAuthor: true,
}

// Decode decodes a decompressed DocInfo stream. When the stream is cut
// short the tables decoded so far are returned together with an error
// wrapping ErrUnexpectedEOF.
func (d *DocInfoDecoder) Decode(data []byte) (*DocInfoTables, error) {
	t := &DocInfoTables{version: d.version}
	diags := newDiagnostics(StreamDocInfo, d.logger)
	reader := NewRecordStreamReader(data)

	var streamErr error
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags.add(ir.DiagUnexpectedEOF, reader.Offset(), 0, "%v", err)
			streamErr = fmt.Errorf("failed to read DocInfo: %w", err)
			break
		}

		decode, ok := docInfoDecoders[rec.TagID]
		if !ok {
			if !docInfoIgnored[rec.TagID] {
				diags.add(ir.DiagUnknownTag, rec.Offset, rec.TagID, "skipped %d bytes of %s", rec.Size, TagName(rec.TagID))
			}
			continue
		}

		c := newCursor(rec.Data)
		short := c.decodeBounded(len(rec.Data), func(sub *byteCursor) { decode(t, sub) })
		if short {
			diags.add(ir.DiagStructuralMismatch, rec.Offset, rec.TagID,
				"%s record of %d bytes is shorter than its layout for version %d", TagName(rec.TagID), rec.Size, d.version)
		}
	}

	t.link(diags)
	t.diagnostics = diags.items()

	d.logger.Debug("decoded DocInfo",
		slog.Int("char_shapes", len(t.charShapes)),
		slog.Int("para_shapes", len(t.paraShapes)),
		slog.Int("styles", len(t.styles)),
		slog.Int("diagnostics", len(t.diagnostics)),
	)
	return t, streamErr
}

// IsUnexpectedEOF reports whether err was caused by a truncated stream.
func IsUnexpectedEOF(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF)
}

func decodeDocumentProperties(t *DocInfoTables, c *byteCursor) {
	p := &t.properties
	p.SectionCount = c.u16()
	p.PageStart = c.u16()
	p.FootnoteStart = c.u16()
	p.EndnoteStart = c.u16()
	p.PictureStart = c.u16()
	p.TableStart = c.u16()
	p.EquationStart = c.u16()
	p.CaretListID = c.u32()
	p.CaretParaID = c.u32()
	p.CaretCharPos = c.u32()
}

func decodeIDMappings(t *DocInfoTables, c *byteCursor) {
	m := &IDMappings{}
	m.BinData = c.i32()
	for i := range m.FaceNames {
		m.FaceNames[i] = c.i32()
	}
	m.BorderFill = c.i32()
	m.CharShape = c.i32()
	m.TabDef = c.i32()
	m.Numbering = c.i32()
	m.Bullet = c.i32()
	m.ParaShape = c.i32()
	m.Style = c.i32()
	// 버전에 따라 뒤쪽 항목이 없을 수 있음
	if c.remaining() >= 4 {
		m.MemoShape = c.i32()
	}
	if c.remaining() >= 8 {
		m.TrackChange = c.i32()
		m.TrackChangeAuthor = c.i32()
	}
	t.idMappings = m
}

func decodeCompatibleDocument(t *DocInfoTables, c *byteCursor) {
	t.compatibleTarget = c.u32()
}

// link resolves references between DocInfo collections. Out-of-range ids
// leave the resolved pointer nil and record a diagnostic.
func (t *DocInfoTables) link(diags *diagnostics) {
	t.groupFaceNames(diags)

	for i, cs := range t.charShapes {
		for s := ir.Script(0); s < ir.ScriptCount; s++ {
			face, ok := t.FaceName(s, int(cs.FontIDs[s]))
			if !ok {
				if len(t.faceNames) > 0 {
					diags.add(ir.DiagInconsistentReference, 0, TagCharShape,
						"char shape %d: %s font id %d out of range", i, s, cs.FontIDs[s])
				}
				continue
			}
			cs.Fonts[s] = face.Name
		}
		if cs.BorderFillID > 0 {
			bf, ok := t.BorderFill(int(cs.BorderFillID))
			if !ok {
				diags.add(ir.DiagInconsistentReference, 0, TagCharShape,
					"char shape %d: border fill id %d out of range", i, cs.BorderFillID)
			}
			cs.BorderFill = bf
		}
	}

	for i, ps := range t.paraShapes {
		if td, ok := t.TabDef(int(ps.TabDefID)); ok {
			ps.TabDef = td
		} else if len(t.tabDefs) > 0 {
			diags.add(ir.DiagInconsistentReference, 0, TagParaShape,
				"para shape %d: tab def id %d out of range", i, ps.TabDefID)
		}
		if ps.BorderFillID > 0 {
			bf, ok := t.BorderFill(int(ps.BorderFillID))
			if !ok {
				diags.add(ir.DiagInconsistentReference, 0, TagParaShape,
					"para shape %d: border fill id %d out of range", i, ps.BorderFillID)
			}
			ps.BorderFill = bf
		}
		if ps.NumberBulletID == 0 {
			continue
		}
		switch ps.HeadKind {
		case ir.HeadBullet:
			b, ok := t.Bullet(int(ps.NumberBulletID))
			if !ok {
				diags.add(ir.DiagInconsistentReference, 0, TagParaShape,
					"para shape %d: bullet id %d out of range", i, ps.NumberBulletID)
			}
			ps.Bullet = b
		case ir.HeadNumber, ir.HeadOutline:
			n, ok := t.Numbering(int(ps.NumberBulletID))
			if !ok {
				diags.add(ir.DiagInconsistentReference, 0, TagParaShape,
					"para shape %d: numbering id %d out of range", i, ps.NumberBulletID)
			}
			ps.Numbering = n
		}
	}

	for i, st := range t.styles {
		ps, ok := t.ParaShape(int(st.ParaShapeID))
		if !ok {
			diags.add(ir.DiagInconsistentReference, 0, TagStyle,
				"style %d: para shape id %d out of range", i, st.ParaShapeID)
		}
		st.ParaShape = ps
		cs, ok := t.CharShape(int(st.CharShapeID))
		if !ok {
			diags.add(ir.DiagInconsistentReference, 0, TagStyle,
				"style %d: char shape id %d out of range", i, st.CharShapeID)
		}
		st.CharShape = cs
	}
}

// groupFaceNames splits the face name list into per-script lists using
// the ID_MAPPINGS counts. Without usable counts every script shares the
// whole list.
func (t *DocInfoTables) groupFaceNames(diags *diagnostics) {
	if t.idMappings == nil || !t.idMappings.validFaceCounts(len(t.faceNames)) {
		if t.idMappings != nil {
			diags.add(ir.DiagStructuralMismatch, 0, TagIDMappings,
				"ID_MAPPINGS declares %d face names, found %d", t.idMappings.TotalFaceNames(), len(t.faceNames))
		}
		for s := range t.faceByScript {
			t.faceByScript[s] = t.faceNames
		}
		return
	}
	start := 0
	for s, n := range t.idMappings.FaceNames {
		end := start + int(n)
		t.faceByScript[s] = t.faceNames[start:end:end]
		start = end
	}
}
