package hwp5

import (
	"testing"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

func decodeCtrl(data []byte) *CtrlHeaderRecord {
	return decodeCtrlHeader(newCursor(data))
}

func TestDecodeCtrlHeader_ObjectCommon(t *testing.T) {
	attr := uint32(0x1 | 3<<21 | 2<<26)
	data := newPayload().ctrlID(CtrlTable).u32(attr).i32(100).i32(200).u32(30000).u32(5000).i32(3).
		u16(10).u16(20).u16(30).u16(40).u32(77).i32(0).wstr("표 설명").bytes()

	r := decodeCtrl(data)
	if r.ControlID != CtrlTable {
		t.Fatalf("Expected control id %q, got %q", CtrlTable, r.ControlID)
	}
	p := r.Object
	if p == nil {
		t.Fatal("Expected object placement")
	}
	if !p.LikeLetters {
		t.Error("Expected LikeLetters")
	}
	if p.Width != 30000 || p.Height != 5000 {
		t.Errorf("Expected 30000x5000, got %dx%d", p.Width, p.Height)
	}
	if p.OffsetY != 100 || p.OffsetX != 200 {
		t.Errorf("Expected offsets (x=200, y=100), got (x=%d, y=%d)", p.OffsetX, p.OffsetY)
	}
	// 바깥 여백은 왼쪽, 오른쪽, 위, 아래 순서
	if p.Margins != [4]ir.HwpUnit{10, 20, 30, 40} {
		t.Errorf("Unexpected margins %v", p.Margins)
	}
	if p.Wrap != "top_and_bottom" || p.Category != "table" {
		t.Errorf("Expected top_and_bottom/table, got %s/%s", p.Wrap, p.Category)
	}
	if p.InstanceID != 77 || p.Description != "표 설명" {
		t.Errorf("Unexpected instance %d / description %q", p.InstanceID, p.Description)
	}
}

func TestDecodeCtrlHeader_ObjectWithoutDescription(t *testing.T) {
	r := decodeCtrl(objectCtrlRecord(CtrlGSO, 1000, 2000))
	if r.Object == nil || r.Object.Description != "" {
		t.Errorf("Expected placement without description, got %+v", r.Object)
	}
	if !IsObjectControl(CtrlGSO) || IsObjectControl(CtrlHeader) {
		t.Error("IsObjectControl misclassifies gso/head")
	}
}

func TestDecodeCtrlHeader_AutoNumber(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantKind  string
		wantNew   bool
		formatted string
	}{
		{
			name: "footnote roman with prefix and suffix",
			data: newPayload().ctrlID(CtrlAutoNumber).u32(1|uint32(ir.NumberRomanUpper)<<4).
				u16(4).u16(0).text("(").text(")").bytes(),
			wantKind:  "footnote",
			formatted: "(IV)",
		},
		{
			name:      "page arabic without affixes",
			data:      newPayload().ctrlID(CtrlAutoNumber).u32(0).u16(12).bytes(),
			wantKind:  "page",
			formatted: "12",
		},
		{
			name:      "new number",
			data:      newPayload().ctrlID(CtrlNewNumber).u32(4).u16(3).bytes(),
			wantKind:  "table",
			wantNew:   true,
			formatted: "3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			an := decodeCtrl(tt.data).AutoNumber
			if an == nil {
				t.Fatal("Expected auto number")
			}
			if an.Kind != tt.wantKind || an.New != tt.wantNew {
				t.Errorf("Expected kind %s new=%v, got %s new=%v", tt.wantKind, tt.wantNew, an.Kind, an.New)
			}
			if an.Formatted != tt.formatted {
				t.Errorf("Expected formatted %q, got %q", tt.formatted, an.Formatted)
			}
		})
	}
}

func TestDecodeCtrlHeader_HeaderFooterAndNotes(t *testing.T) {
	foot := decodeCtrl(newPayload().ctrlID(CtrlFooter).u32(2).bytes())
	if foot.HeaderFooter == nil || !foot.HeaderFooter.Footer || foot.HeaderFooter.ApplyTo != "odd" {
		t.Errorf("Unexpected footer %+v", foot.HeaderFooter)
	}

	head := decodeCtrl(newPayload().ctrlID(CtrlHeader).u32(0).bytes())
	if head.HeaderFooter == nil || head.HeaderFooter.Footer || head.HeaderFooter.ApplyTo != "both" {
		t.Errorf("Unexpected header %+v", head.HeaderFooter)
	}

	fn := decodeCtrl(newPayload().ctrlID(CtrlFootnote).u8(3).zeros(7).bytes())
	if fn.Note == nil || fn.Note.Endnote || fn.Note.Number != 3 {
		t.Errorf("Unexpected footnote %+v", fn.Note)
	}

	en := decodeCtrl(newPayload().ctrlID(CtrlEndnote).bytes())
	if en.Note == nil || !en.Note.Endnote || en.Note.Number != 0 {
		t.Errorf("Unexpected endnote %+v", en.Note)
	}
}

func TestDecodeCtrlHeader_Field(t *testing.T) {
	data := newPayload().ctrlID(CtrlFieldHyperlink).u32(1).u8(0).
		wstr(`https\://example.com/a\;b;1;0;0;`).u32(7).bytes()
	f := decodeCtrl(data).Field
	if f == nil {
		t.Fatal("Expected field")
	}
	if f.Kind != "hyperlink" || !f.Editable || f.ID != 7 {
		t.Errorf("Unexpected field %+v", f)
	}
	if got := f.URL(); got != "https://example.com/a;b" {
		t.Errorf("Expected URL https://example.com/a;b, got %q", got)
	}

	unknown := decodeCtrl(newPayload().ctrlID("%zzz").u32(0).u8(0).wstr("").bytes()).Field
	if unknown == nil || unknown.Kind != "unknown" {
		t.Errorf("Expected unknown field kind, got %+v", unknown)
	}
}

func TestDecodeCtrlHeader_ColumnAndSection(t *testing.T) {
	col := decodeCtrl(newPayload().ctrlID(CtrlColumn).u16(2<<2|1<<12).u16(1134).u16(0).
		u8(1).u8(0).u32(0x0000FF).bytes()).Column
	if col == nil {
		t.Fatal("Expected column definition")
	}
	if col.Count != 2 || !col.SameWidth || col.Spacing != 1134 {
		t.Errorf("Unexpected column def %+v", col)
	}
	if col.DividerType != ir.LineSolid || col.DividerWidth != 0.1 {
		t.Errorf("Expected 0.1mm solid divider, got %s %.2f", col.DividerType, col.DividerWidth)
	}

	sd := decodeCtrl(newPayload().ctrlID(CtrlSection).u32(1).u16(0).u16(0).u16(0).u32(8000).
		u16(1).u16(1).u16(0).u16(0).u16(0).bytes()).SectionDef
	if sd == nil || !sd.HideHeader || sd.HideFooter {
		t.Errorf("Unexpected section def %+v", sd)
	}
	if sd.DefaultTabSpacing != 8000 || sd.PageStartNumber != 1 {
		t.Errorf("Expected tab 8000 / page start 1, got %d / %d", sd.DefaultTabSpacing, sd.PageStartNumber)
	}
}

func TestDecodeCtrlHeader_PageNumberAndBookmark(t *testing.T) {
	pn := decodeCtrl(newPayload().ctrlID(CtrlPageNumberPos).u32(5<<8).u16(0).text("-").text("-").bytes()).PageNumberPos
	if pn == nil {
		t.Fatal("Expected page number position")
	}
	if pn.Position != "bottom_center" || pn.Shape != "arabic" {
		t.Errorf("Unexpected page number position %+v", pn)
	}
	if pn.Prefix != "-" || pn.Suffix != "-" || pn.UserSymbol != "" || pn.Dash != "" {
		t.Errorf("Unexpected page number affixes %+v", pn)
	}

	bm := decodeCtrl(newPayload().ctrlID(CtrlBookmark).wstr("서론").bytes()).Bookmark
	if bm == nil || bm.Name != "서론" {
		t.Errorf("Unexpected bookmark %+v", bm)
	}
}

func TestDecodeCtrlHeader_Unknown(t *testing.T) {
	r := decodeCtrl(newPayload().ctrlID("zzzz").u32(0).bytes())
	if r.ControlID != "zzzz" {
		t.Errorf("Expected control id zzzz, got %q", r.ControlID)
	}
	if r.Object != nil || r.Field != nil || r.AutoNumber != nil {
		t.Error("Expected no decoded body for an unknown control")
	}
}
