package hwp5

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

func TestClassifyUnit(t *testing.T) {
	tests := []struct {
		unit     uint16
		expected ControlClass
	}{
		{'A', ClassText},
		{0xAC00, ClassText},
		{CharPara, ClassChar},
		{CharLineBreak, ClassChar},
		{CharHyphen, ClassChar},
		{CharTab, ClassInline},
		{CharFieldEnd, ClassInline},
		{CharSectionColumn, ClassExtended},
		{CharDrawingObj, ClassExtended},
		{CharAutoNumber, ClassExtended},
	}
	for _, tt := range tests {
		if got := ClassifyUnit(tt.unit); got != tt.expected {
			t.Errorf("ClassifyUnit(0x%04X) = %d, want %d", tt.unit, got, tt.expected)
		}
	}
}

func TestClassifyText_InlineControl(t *testing.T) {
	// A, B, 인라인 제어 문자 블록(8 유닛), C: 22바이트
	data := newPayload().text("AB").units(inlineCtrl(CharFieldEnd)[:7]...).u16(0).text("C").bytes()
	if len(data) != 22 {
		t.Fatalf("fixture is %d bytes, want 22", len(data))
	}

	ct := ClassifyText(data, false)
	if ct.Text != "ABC" {
		t.Errorf("Expected text 'ABC', got %q", ct.Text)
	}
	want := []ir.ControlMarker{{Code: CharFieldEnd, Kind: ir.MarkerInline, RawOffset: 2, TextOffset: 2}}
	if diff := cmp.Diff(want, ct.Markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
	if ct.Truncated {
		t.Error("Expected complete payload")
	}
}

func TestClassifyText_ExtendedControl(t *testing.T) {
	data := paraText("가A", extendedCtrl(CharDrawingObj, CtrlTable), "나")
	ct := ClassifyText(data, false)

	if ct.Text != "가A나" {
		t.Errorf("Expected text '가A나', got %q", ct.Text)
	}
	anchors := ct.Anchors()
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].ControlID != CtrlTable {
		t.Errorf("Expected control id %q, got %q", CtrlTable, anchors[0].ControlID)
	}
	if anchors[0].RawOffset != 2 || anchors[0].TextOffset != 4 {
		t.Errorf("Expected raw 2 / text 4, got raw %d / text %d", anchors[0].RawOffset, anchors[0].TextOffset)
	}

	// 문단 끝 제어 문자는 한 유닛짜리 표식
	last := ct.Markers[len(ct.Markers)-1]
	if last.Code != CharPara || last.Kind != ir.MarkerChar || last.RawOffset != 11 {
		t.Errorf("Unexpected paragraph break marker %+v", last)
	}
}

func TestClassifyText_TextOffset(t *testing.T) {
	data := newPayload().text("가A").units(extendedCtrl(CharDrawingObj, CtrlTable)...).text("😀x").bytes()
	ct := ClassifyText(data, false)

	tests := []struct {
		raw      int
		expected int
	}{
		{0, 0},
		{1, 3},
		{2, 4},
		{5, 4},  // 제어 문자 블록 내부
		{10, 4}, // 😀 시작
		{12, 8}, // 서로게이트 쌍 다음
		{13, 9},
		{99, 9},
	}
	for _, tt := range tests {
		if got := ct.TextOffset(tt.raw); got != tt.expected {
			t.Errorf("TextOffset(%d) = %d, want %d", tt.raw, got, tt.expected)
		}
	}
}

func TestClassifyText_UnusableSkipped(t *testing.T) {
	data := newPayload().text("A").u16(CharUnusable).text("B").bytes()
	ct := ClassifyText(data, false)
	if ct.Text != "AB" {
		t.Errorf("Expected text 'AB', got %q", ct.Text)
	}
	if len(ct.Markers) != 0 {
		t.Errorf("Expected no markers, got %v", ct.Markers)
	}
}

func TestClassifyText_SkipLeading(t *testing.T) {
	data := paraText(extendedCtrl(CharSectionColumn, CtrlSection),
		extendedCtrl(CharSectionColumn, CtrlColumn), "본문")

	skipped := ClassifyText(data, true)
	if skipped.Text != "본문" {
		t.Errorf("Expected text '본문', got %q", skipped.Text)
	}
	if len(skipped.Anchors()) != 0 {
		t.Errorf("Expected no anchors after skipping, got %v", skipped.Anchors())
	}
	if m := skipped.Markers[0]; m.RawOffset != 18 {
		t.Errorf("Expected raw offsets from payload start, got %d", m.RawOffset)
	}

	kept := ClassifyText(data, false)
	var ids []string
	for _, a := range kept.Anchors() {
		ids = append(ids, a.ControlID)
	}
	if diff := cmp.Diff([]string{CtrlSection, CtrlColumn}, ids); diff != "" {
		t.Errorf("anchors mismatch (-want +got):\n%s", diff)
	}

	if !hasLeadingDefinitions(data) {
		t.Error("Expected leading definitions to be detected")
	}
	if hasLeadingDefinitions(paraText("본문")) {
		t.Error("Expected plain text not to have leading definitions")
	}
}

func TestClassifyText_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		text string
	}{
		{"control cut short", newPayload().text("AB").units(CharDrawingObj, 1, 2).bytes(), "AB"},
		{"odd length", append(newPayload().text("AB").bytes(), 0x41), "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := ClassifyText(tt.data, false)
			if !ct.Truncated {
				t.Error("Expected Truncated")
			}
			if ct.Text != tt.text {
				t.Errorf("Expected text %q, got %q", tt.text, ct.Text)
			}
		})
	}

	ct := ClassifyText(newPayload().text("AB").units(CharDrawingObj, 1, 2).bytes(), false)
	if len(ct.Markers) != 1 || !ct.Markers[0].Truncated {
		t.Errorf("Expected one truncated marker, got %v", ct.Markers)
	}
}

func TestPlainText(t *testing.T) {
	data := newPayload().text("첫째").units(inlineCtrl(CharTab)...).text("둘째").
		u16(CharLineBreak).text("셋째").u16(CharNBSP).text("끝").bytes()
	ct := ClassifyText(data, false)

	if ct.Text != "첫째둘째셋째끝" {
		t.Errorf("Expected plain text without controls, got %q", ct.Text)
	}
	if got := ct.PlainText(); got != "첫째\t둘째\n셋째 끝" {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"ASCII", []byte{0x48, 0x00, 0x65, 0x00, 0x6C, 0x00, 0x6C, 0x00, 0x6F, 0x00}, "Hello"},
		{"Korean", []byte{0x5C, 0xD5, 0x00, 0xAE}, "한글"},
		{"trailing NUL", []byte{0x41, 0x00, 0x00, 0x00, 0x00, 0x00}, "A"},
		{"empty", []byte{}, ""},
		{"single byte", []byte{0x41}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUTF16LE(tt.input); got != tt.expected {
				t.Errorf("DecodeUTF16LE() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
