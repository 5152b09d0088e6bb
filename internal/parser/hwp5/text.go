package hwp5

import (
	"encoding/binary"
	"strings"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

const (
	controlUnits = 8  // 인라인/확장 제어 문자가 차지하는 코드 유닛 수
	leadingUnits = 16 // 구역 첫 문단 텍스트 앞의 구역/단 정의 블록
)

// ControlClass tells how many code units a control character occupies.
type ControlClass int

const (
	ClassText ControlClass = iota
	ClassChar
	ClassInline
	ClassExtended
)

var controlClasses = func() [32]ControlClass {
	var t [32]ControlClass
	for _, c := range []uint16{0, 10, 13, 24, 25, 26, 27, 28, 29, 30, 31} {
		t[c] = ClassChar
	}
	for _, c := range []uint16{4, 5, 6, 7, 8, 9, 19, 20} {
		t[c] = ClassInline
	}
	for _, c := range []uint16{1, 2, 3, 11, 12, 14, 15, 16, 17, 18, 21, 22, 23} {
		t[c] = ClassExtended
	}
	return t
}()

// ClassifyUnit returns the class of a single UTF-16 code unit.
func ClassifyUnit(u uint16) ControlClass {
	if u < 32 {
		return controlClasses[u]
	}
	return ClassText
}

// ClassifiedText is a PARA_TEXT payload split into visible text and
// control markers.
type ClassifiedText struct {
	Text      string
	Markers   []ir.ControlMarker
	Truncated bool // 마지막 제어 문자 블록이 레코드 끝에서 잘림

	spans []textSpan
}

// textSpan is a run of literal text starting at a raw code unit position.
type textSpan struct {
	raw     int
	byteOff int
	text    string
}

// Anchors returns the extended control markers in order.
func (ct *ClassifiedText) Anchors() []ir.ControlMarker {
	var out []ir.ControlMarker
	for _, m := range ct.Markers {
		if m.Kind == ir.MarkerExtended {
			out = append(out, m)
		}
	}
	return out
}

// TextOffset maps a raw code unit position of the payload to a byte offset
// in Text. Positions inside a control block map to the next visible
// character.
func (ct *ClassifiedText) TextOffset(raw int) int {
	for _, sp := range ct.spans {
		if raw <= sp.raw {
			return sp.byteOff
		}
		units := sp.raw
		for i, r := range sp.text {
			if units >= raw {
				return sp.byteOff + i
			}
			units++
			if r >= 0x10000 {
				units++
			}
		}
		if units >= raw {
			return sp.byteOff + len(sp.text)
		}
	}
	return len(ct.Text)
}

// ClassifyText scans a raw little-endian UTF-16 PARA_TEXT payload. With
// skipLeading the first 16 code units are dropped before classification.
// Raw offsets always count from the start of the payload. The scan never
// reads past the payload; a control block cut short by the end is consumed
// and flagged.
func ClassifyText(payload []byte, skipLeading bool) ClassifiedText {
	var ct ClassifiedText
	var sb strings.Builder

	n := len(payload) / 2
	if len(payload)%2 != 0 {
		ct.Truncated = true
	}
	i := 0
	if skipLeading {
		i = min(leadingUnits, n)
	}

	textStart := -1
	flush := func(end int) {
		if textStart < 0 {
			return
		}
		s := decodeUTF16(payload[textStart*2 : end*2])
		ct.spans = append(ct.spans, textSpan{raw: textStart, byteOff: sb.Len(), text: s})
		sb.WriteString(s)
		textStart = -1
	}

	for i < n {
		u := binary.LittleEndian.Uint16(payload[i*2:])
		class := ClassifyUnit(u)
		if class == ClassText {
			if textStart < 0 {
				textStart = i
			}
			i++
			continue
		}
		flush(i)

		m := ir.ControlMarker{Code: u, RawOffset: i, TextOffset: sb.Len()}
		switch class {
		case ClassChar:
			i++
			if u == CharUnusable {
				continue
			}
			m.Kind = ir.MarkerChar
		case ClassInline, ClassExtended:
			m.Kind = ir.MarkerInline
			if class == ClassExtended {
				m.Kind = ir.MarkerExtended
			}
			if n-i < controlUnits {
				m.Truncated = true
				ct.Truncated = true
			}
			if class == ClassExtended && n-i >= 3 {
				m.ControlID = controlIDFromUint32(binary.LittleEndian.Uint32(payload[(i+1)*2:]))
			}
			i = min(i+controlUnits, n)
		}
		ct.Markers = append(ct.Markers, m)
	}
	flush(n)

	ct.Text = sb.String()
	return ct
}

// PlainText renders classified text with line breaks and tabs restored,
// for callers that want a readable string rather than marker positions.
func (ct *ClassifiedText) PlainText() string {
	if len(ct.Markers) == 0 {
		return ct.Text
	}
	var sb strings.Builder
	last := 0
	for _, m := range ct.Markers {
		var s string
		switch m.Code {
		case CharLineBreak:
			s = "\n"
		case CharTab:
			s = "\t"
		case CharNBSP, CharFixedWidthNBSP:
			s = " "
		case CharHyphen:
			s = "-"
		default:
			continue
		}
		off := clamp(m.TextOffset, last, len(ct.Text))
		sb.WriteString(ct.Text[last:off])
		sb.WriteString(s)
		last = off
	}
	sb.WriteString(ct.Text[last:])
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
