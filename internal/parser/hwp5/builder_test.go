package hwp5

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

type fakeLookup struct {
	data  map[uint16][]byte
	err   error
	calls int
}

func (f *fakeLookup) LookupBinData(id uint16) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	data, ok := f.data[id]
	if !ok {
		return nil, "", errors.New("no such item")
	}
	return data, "png", nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func buildSection(t *testing.T, tables *DocInfoTables, data []byte, lookup ResourceLookup, opts BuildOptions) *ir.Section {
	t.Helper()
	recs := decodeSection(t, tables, data, false)
	return NewBuilder(tables, lookup, opts).Build(recs)
}

func blockTypes(sec *ir.Section) []ir.BlockType {
	var out []ir.BlockType
	for _, b := range sec.Blocks {
		out = append(out, b.Type)
	}
	return out
}

func TestBuilder_TableOrdering(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	addPara(b, 0, "첫째")
	addPara(b, 0, "둘째")
	text := paraText("표:", extendedCtrl(CharDrawingObj, CtrlTable))
	b.add(TagParaHeader, 0, paraHeaderRecord(uint32(len(text)/2), 0, 0))
	b.add(TagParaText, 1, text)
	b.add(TagParaCharShape, 1, paraCharShapeRecord([2]uint32{0, 0}))
	b.add(TagParaLineSeg, 1, lineSegRecord(1200))
	addTable(b, 1, 2, 2, "A1", "B1", "A2", "B2")
	addPara(b, 0, "끝")

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{Index: 0})

	want := []ir.BlockType{ir.BlockTypeParagraph, ir.BlockTypeParagraph, ir.BlockTypeTable, ir.BlockTypeParagraph}
	if diff := cmp.Diff(want, blockTypes(sec)); diff != "" {
		t.Fatalf("block order mismatch (-want +got):\n%s", diff)
	}
	if sec.Blocks[0].Paragraph.Text != "첫째" || sec.Blocks[3].Paragraph.Text != "끝" {
		t.Errorf("Unexpected paragraph texts %q, %q", sec.Blocks[0].Paragraph.Text, sec.Blocks[3].Paragraph.Text)
	}

	tbl := sec.Blocks[2].Table
	if tbl.Anchor == nil || tbl.Anchor.Text != "표:" {
		t.Fatalf("Expected the table anchored at its paragraph, got %+v", tbl.Anchor)
	}
	if len(tbl.Anchor.MarkersOf(CtrlTable)) != 1 {
		t.Error("Expected the anchor to carry the table marker")
	}
	if tbl.Rows != 2 || tbl.Cols != 2 || len(tbl.DistinctCells()) != 4 {
		t.Errorf("Expected 2x2 table with 4 cells, got %dx%d with %d", tbl.Rows, tbl.Cols, len(tbl.DistinctCells()))
	}
	for _, c := range []struct {
		row, col int
		text     string
	}{{0, 0, "A1"}, {0, 1, "B1"}, {1, 0, "A2"}, {1, 1, "B2"}} {
		cell := tbl.Cell(c.row, c.col)
		if cell == nil || cell.Text() != c.text {
			t.Errorf("cell (%d,%d): expected %q, got %+v", c.row, c.col, c.text, cell)
			continue
		}
		if cell.BorderFill == nil {
			t.Errorf("cell (%d,%d): expected border fill 1 to resolve", c.row, c.col)
		}
	}
	if tbl.Width != 30000 || tbl.Height != 2000 {
		t.Errorf("Expected table size 30000x2000, got %dx%d", tbl.Width, tbl.Height)
	}
	if tbl.StartLine != 1200 {
		t.Errorf("Expected start line 1200, got %d", tbl.StartLine)
	}
	if tbl.BorderFill == nil || tbl.Placement == nil {
		t.Error("Expected border fill and placement on the table")
	}
	if len(sec.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", sec.Diagnostics)
	}
}

func TestBuilder_NestedTable(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	addPara(b, 0, extendedCtrl(CharDrawingObj, CtrlTable))
	b.add(TagCtrlHeader, 1, objectCtrlRecord(CtrlTable, 30000, 2000))
	b.add(TagTable, 2, tableRecord(1, 1, 1))
	b.add(TagListHeader, 2, cellListRecord(1, 0, 0))
	addPara(b, 2, "안쪽:", extendedCtrl(CharDrawingObj, CtrlTable))
	addTable(b, 3, 1, 1, "내부")

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	if len(sec.Blocks) != 1 || sec.Blocks[0].Type != ir.BlockTypeTable {
		t.Fatalf("Expected one top-level table, got %v", blockTypes(sec))
	}
	outer := sec.Blocks[0].Table.Cell(0, 0)
	if outer == nil || len(outer.Paragraphs) != 1 {
		t.Fatalf("Expected one paragraph in the outer cell, got %+v", outer)
	}
	objs := outer.Paragraphs[0].Objects
	if len(objs) != 1 || objs[0].Type != ir.BlockTypeTable {
		t.Fatalf("Expected the inner table anchored in the cell paragraph, got %+v", objs)
	}
	if inner := objs[0].Table; inner.Anchor != nil || inner.Cell(0, 0).Text() != "내부" {
		t.Errorf("Unexpected inner table %+v", inner)
	}
	if got := len(sec.Paragraphs()); got != 3 {
		t.Errorf("Expected 3 paragraphs in document order, got %d", got)
	}
}

func TestBuilder_CharShapeRuns(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	text := paraText("굵게보통")
	b.add(TagParaHeader, 0, paraHeaderRecord(uint32(len(text)/2), 0, 0))
	b.add(TagParaText, 1, text)
	b.add(TagParaCharShape, 1, paraCharShapeRecord([2]uint32{0, 1}, [2]uint32{2, 0}))

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	p := sec.Blocks[0].Paragraph
	if p.ParaShape == nil || p.Style == nil || p.Style.LocalName != "바탕글" {
		t.Errorf("Expected para shape and style to resolve, got %+v / %+v", p.ParaShape, p.Style)
	}
	if p.CharShapeRuns[1].TextOffset != len("굵게") {
		t.Errorf("Expected second run at byte %d, got %d", len("굵게"), p.CharShapeRuns[1].TextOffset)
	}

	runs := p.Runs()
	if len(runs) != 2 || runs[0].Text != "굵게" || runs[1].Text != "보통" {
		t.Fatalf("Unexpected runs %+v", runs)
	}
	bold := runs[0].Shape
	if !bold.Bold || !bold.Italic || bold.Underline != ir.UnderlineBelow {
		t.Errorf("Expected bold italic underlined run, got bold=%v italic=%v underline=%s",
			bold.Bold, bold.Italic, bold.Underline)
	}
	if plain := runs[1].Shape; plain.Bold || plain.Italic || plain.Underline != ir.UnderlineNone {
		t.Errorf("Expected plain run, got %+v", plain)
	}
	if bold.Fonts[ir.ScriptKorean] != "함초롬바탕" {
		t.Errorf("Expected resolved font 함초롬바탕, got %q", bold.Fonts[ir.ScriptKorean])
	}
}

func TestBuilder_UnresolvedIDsFallBack(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	text := paraText("가")
	b.add(TagParaHeader, 0, paraHeaderRecord(uint32(len(text)/2), 9, 4))
	b.add(TagParaText, 1, text)
	b.add(TagParaCharShape, 1, paraCharShapeRecord([2]uint32{0, 7}))

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	p := sec.Blocks[0].Paragraph
	first, _ := tables.ParaShape(0)
	if p.ParaShape != first {
		t.Error("Expected para shape to fall back to entry 0")
	}
	if p.CharShapeRuns[0].Shape == nil {
		t.Error("Expected char shape to fall back to entry 0")
	}
	if n := countKinds(sec.Diagnostics, ir.DiagInconsistentReference); n != 3 {
		t.Errorf("Expected 3 inconsistent references, got %d: %v", n, sec.Diagnostics)
	}
}

// pictureSection is a paragraph anchoring one picture with a caption.
func pictureSection(binID uint16) []byte {
	b := &recordBuilder{}
	addPara(b, 0, "그림:", extendedCtrl(CharDrawingObj, CtrlGSO))
	b.add(TagCtrlHeader, 1, objectCtrlRecord(CtrlGSO, 5000, 4000))
	b.add(TagListHeader, 2, captionListRecord(1))
	addPara(b, 2, "그림 1")
	b.add(TagShapeComponent, 2, shapeComponentRecord(ShapeIDPicture, 5000, 4000, true))
	b.add(TagShapePicture, 3, pictureRecord(binID))
	return b.bytes()
}

func TestBuilder_Picture(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, func(b *recordBuilder) {
		b.add(TagBinData, 1, embeddedBinDataRecord(1, "png", 0))
		b.add(TagBinData, 1, linkedBinDataRecord(`C:\img\a.png`))
	})
	raw := pngBytes(t, 3, 2)

	tests := []struct {
		name           string
		binID          uint16
		lookup         *fakeLookup
		opts           BuildOptions
		wantUnresolved bool
		wantReason     string
		wantSize       [2]int
		wantDiags      int
	}{
		{
			name:     "embedded loaded",
			binID:    1,
			lookup:   &fakeLookup{data: map[uint16][]byte{1: raw}},
			opts:     BuildOptions{LoadImages: true},
			wantSize: [2]int{3, 2},
		},
		{
			name:   "embedded not loaded",
			binID:  1,
			lookup: &fakeLookup{data: map[uint16][]byte{1: raw}},
			opts:   BuildOptions{},
		},
		{
			name:           "lookup failure",
			binID:          1,
			lookup:         &fakeLookup{err: errors.New("스트림을 찾을 수 없습니다")},
			opts:           BuildOptions{LoadImages: true},
			wantUnresolved: true,
			wantReason:     "스트림을 찾을 수 없습니다",
			wantDiags:      1,
		},
		{
			name:           "inflate failure",
			binID:          1,
			lookup:         &fakeLookup{data: map[uint16][]byte{1: {0xFF, 0xFF, 0xFF}}},
			opts:           BuildOptions{LoadImages: true, Compressed: true},
			wantUnresolved: true,
			wantReason:     "inflate",
			wantDiags:      1,
		},
		{
			name:           "linked",
			binID:          2,
			lookup:         &fakeLookup{},
			opts:           BuildOptions{LoadImages: true},
			wantUnresolved: true,
			wantReason:     "linked file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := buildSection(t, tables, pictureSection(tt.binID), tt.lookup, tt.opts)
			if len(sec.Blocks) != 1 {
				t.Fatalf("Expected 1 block, got %v", blockTypes(sec))
			}
			p := sec.Blocks[0].Paragraph
			if len(p.Images) != 1 {
				t.Fatalf("Expected 1 image, got %d", len(p.Images))
			}
			img := p.Images[0]
			if img.Unresolved != tt.wantUnresolved {
				t.Errorf("Expected Unresolved=%v, got %v (%s)", tt.wantUnresolved, img.Unresolved, img.Reason)
			}
			if !strings.Contains(img.Reason, tt.wantReason) {
				t.Errorf("Expected reason containing %q, got %q", tt.wantReason, img.Reason)
			}
			if img.Width != tt.wantSize[0] || img.Height != tt.wantSize[1] {
				t.Errorf("Expected pixel size %v, got %dx%d", tt.wantSize, img.Width, img.Height)
			}
			if img.DisplayWidth != 5000 || img.Placement == nil {
				t.Errorf("Expected display width 5000 with placement, got %d", img.DisplayWidth)
			}
			if img.Caption == nil || len(img.Caption.Paragraphs) != 1 || img.Caption.Paragraphs[0].Text != "그림 1" {
				t.Errorf("Expected caption '그림 1', got %+v", img.Caption)
			}
			if n := countKinds(sec.Diagnostics, ir.DiagInconsistentReference); n != tt.wantDiags {
				t.Errorf("Expected %d inconsistent references, got %d: %v", tt.wantDiags, n, sec.Diagnostics)
			}
		})
	}
}

func TestBuilder_PictureCompressed(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, func(b *recordBuilder) {
		b.add(TagBinData, 1, embeddedBinDataRecord(1, "png", 0))
	})
	raw := pngBytes(t, 4, 4)
	lookup := &fakeLookup{data: map[uint16][]byte{1: deflate(t, raw)}}

	sec := buildSection(t, tables, pictureSection(1), lookup, BuildOptions{LoadImages: true, Compressed: true})
	img := sec.Blocks[0].Paragraph.Images[0]
	if img.Unresolved {
		t.Fatalf("Expected resolved image, got %s", img.Reason)
	}
	if !bytes.Equal(img.Data, raw) {
		t.Error("Expected inflated image data")
	}
	if img.Path != "BinData/BIN0001.png" || img.Format != "png" {
		t.Errorf("Unexpected path/format %s/%s", img.Path, img.Format)
	}
}

func TestBuilder_TextBox(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	addPara(b, 0, extendedCtrl(CharDrawingObj, CtrlGSO))
	b.add(TagCtrlHeader, 1, objectCtrlRecord(CtrlGSO, 6000, 3000))
	b.add(TagShapeComponent, 2, shapeComponentRecord(ShapeIDRectangle, 6000, 3000, true))
	b.add(TagListHeader, 3, textBoxListRecord(2))
	addPara(b, 3, "상자 첫째")
	addPara(b, 3, "상자 둘째")
	addPara(b, 0, "끝")

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	want := []ir.BlockType{ir.BlockTypeTextBox, ir.BlockTypeParagraph}
	if diff := cmp.Diff(want, blockTypes(sec)); diff != "" {
		t.Fatalf("block order mismatch (-want +got):\n%s", diff)
	}
	tb := sec.Blocks[0].TextBox
	if tb.Anchor == nil || len(tb.Anchor.MarkersOf(CtrlGSO)) != 1 {
		t.Errorf("Expected the text box anchored at its paragraph")
	}
	if len(tb.Paragraphs) != 2 || tb.Paragraphs[1].Text != "상자 둘째" {
		t.Errorf("Unexpected text box paragraphs %+v", tb.Paragraphs)
	}
	if tb.VerticalAlign != "center" || tb.Width != 6000 || tb.Margins[0] != 283 {
		t.Errorf("Unexpected text box %+v", tb)
	}
	if len(sec.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", sec.Diagnostics)
	}
}

func TestBuilder_HeaderFooterAndNote(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	addPara(b, 0, extendedCtrl(CharHeaderFooter, CtrlHeader))
	b.add(TagCtrlHeader, 1, newPayload().ctrlID(CtrlHeader).u32(0).bytes())
	b.add(TagListHeader, 2, newPayload().i16(1).u16(0).u32(0).u32(42520).u32(4252).bytes())
	addPara(b, 2, "머리말")
	addPara(b, 0, "본문", extendedCtrl(CharNote, CtrlFootnote))
	b.add(TagCtrlHeader, 1, newPayload().ctrlID(CtrlFootnote).u8(1).zeros(7).bytes())
	b.add(TagListHeader, 2, newPayload().i16(1).u16(0).u32(0).bytes())
	addPara(b, 2, "각주 내용")

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	if len(sec.HeadersFooters) != 1 {
		t.Fatalf("Expected 1 header, got %d", len(sec.HeadersFooters))
	}
	hf := sec.HeadersFooters[0]
	if hf.Footer || hf.ApplyTo != "both" || hf.Width != 42520 {
		t.Errorf("Unexpected header %+v", hf)
	}
	if len(hf.Paragraphs) != 1 || hf.Paragraphs[0].Text != "머리말" {
		t.Errorf("Unexpected header paragraphs %+v", hf.Paragraphs)
	}

	if len(sec.Blocks) != 2 {
		t.Fatalf("Expected 2 body paragraphs, got %v", blockTypes(sec))
	}
	p := sec.Blocks[1].Paragraph
	if len(p.Notes) != 1 || p.Notes[0].Number != 1 {
		t.Fatalf("Expected footnote 1, got %+v", p.Notes)
	}
	if got := p.Notes[0].Paragraphs; len(got) != 1 || got[0].Text != "각주 내용" {
		t.Errorf("Unexpected note paragraphs %+v", got)
	}
	if len(sec.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", sec.Diagnostics)
	}
}

func TestBuilder_SectionDefinitions(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	sectionColumnPrefix(b)
	b.add(TagPageDef, 1, newPayload().u32(59528).u32(84188).u32(8504).u32(8504).
		u32(5668).u32(4252).u32(4252).u32(4252).u32(0).u32(0).bytes())

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{Index: 2})
	if sec.Index != 2 {
		t.Errorf("Expected index 2, got %d", sec.Index)
	}
	if sec.Definition == nil {
		t.Error("Expected section definition")
	}
	if sec.PageDef == nil || sec.PageDef.Width != 59528 {
		t.Errorf("Unexpected page def %+v", sec.PageDef)
	}
	p := sec.Blocks[0].Paragraph
	if p.ColumnDef == nil || p.Text != "제목" {
		t.Errorf("Expected first paragraph with column def, got %+v", p)
	}
}

func TestBuilder_ListParagraphCountMismatch(t *testing.T) {
	tables := decodeDocInfoFixture(t, 5030, nil)
	b := &recordBuilder{}
	addPara(b, 0, extendedCtrl(CharDrawingObj, CtrlTable))
	b.add(TagCtrlHeader, 1, objectCtrlRecord(CtrlTable, 1000, 1000))
	b.add(TagTable, 2, tableRecord(1, 1, 1))
	b.add(TagListHeader, 2, cellListRecord(2, 0, 0))
	addPara(b, 2, "하나뿐")

	sec := buildSection(t, tables, b.bytes(), nil, BuildOptions{})
	if n := countKinds(sec.Diagnostics, ir.DiagStructuralMismatch); n != 1 {
		t.Errorf("Expected 1 structural mismatch, got %d: %v", n, sec.Diagnostics)
	}
	if got := sec.Blocks[0].Table.Cell(0, 0).Text(); got != "하나뿐" {
		t.Errorf("Expected the cell text kept, got %q", got)
	}
}
