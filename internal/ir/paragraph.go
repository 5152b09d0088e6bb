package ir

import "sort"

// MarkerKind classifies an embedded control character.
type MarkerKind string

const (
	MarkerChar     MarkerKind = "char"     // 1 코드 유닛 제어 문자
	MarkerInline   MarkerKind = "inline"   // 8 코드 유닛 인라인 제어 문자
	MarkerExtended MarkerKind = "extended" // 8 코드 유닛 확장 제어 문자 (개체 앵커)
)

// ControlMarker is a control character found in paragraph text.
type ControlMarker struct {
	Code       uint16     `json:"code"`
	Kind       MarkerKind `json:"kind"`
	ControlID  string     `json:"control_id,omitempty"` // 확장 제어 문자의 4글자 ID
	RawOffset  int        `json:"raw_offset"`           // 원본 코드 유닛 위치
	TextOffset int        `json:"text_offset"`          // Text 내 바이트 위치
	Truncated  bool       `json:"truncated,omitempty"`
}

// CharShapeRun marks where a character shape starts applying.
type CharShapeRun struct {
	Position   uint32     `json:"position"`    // 원본 코드 유닛 위치
	TextOffset int        `json:"text_offset"` // Text 내 바이트 위치
	ShapeID    uint32     `json:"shape_id"`
	Shape      *CharShape `json:"shape,omitempty"`
}

// LineSegment is the cached layout of one line (PARA_LINE_SEG entry).
type LineSegment struct {
	TextStart    uint32 `json:"text_start"`
	VerticalPos  int32  `json:"vertical_pos"`
	LineHeight   int32  `json:"line_height"`
	TextHeight   int32  `json:"text_height"`
	Baseline     int32  `json:"baseline"`
	LineSpacing  int32  `json:"line_spacing"`
	ColumnStart  int32  `json:"column_start"`
	SegmentWidth int32  `json:"segment_width"`
	Flags        uint32 `json:"flags"`
}

// FirstOfPage reports whether the line starts a page.
func (l LineSegment) FirstOfPage() bool { return l.Flags&0x1 != 0 }

// FirstOfColumn reports whether the line starts a column.
func (l LineSegment) FirstOfColumn() bool { return l.Flags&0x2 != 0 }

// RangeTag is a text range with an attached tag (PARA_RANGE_TAG entry).
type RangeTag struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Kind  uint8  `json:"kind"` // 상위 8비트
	Data  uint32 `json:"data"` // 하위 24비트
}

// Paragraph is a resolved paragraph.
type Paragraph struct {
	Text          string          `json:"text"`
	Markers       []ControlMarker `json:"markers,omitempty"`
	CharShapeRuns []CharShapeRun  `json:"char_shape_runs,omitempty"`
	LineSegments  []LineSegment   `json:"line_segments,omitempty"`
	RangeTags     []RangeTag      `json:"range_tags,omitempty"`

	CharCount   uint32 `json:"char_count"`
	ControlMask uint32 `json:"control_mask"`
	ParaShapeID uint16 `json:"para_shape_id"`
	StyleID     uint8  `json:"style_id"`
	BreakType   uint8  `json:"break_type"` // 구역/다단/쪽/단 나누기 비트
	InstanceID  uint32 `json:"instance_id,omitempty"`

	ParaShape  *ParaShape  `json:"para_shape,omitempty"`
	Style      *Style      `json:"style,omitempty"`
	Bullet     *Bullet     `json:"bullet,omitempty"`
	Numbering  *Numbering  `json:"numbering,omitempty"`
	BorderFill *BorderFill `json:"border_fill,omitempty"`

	ColumnDef   *ColumnDef    `json:"column_def,omitempty"`
	Objects     []Block       `json:"objects,omitempty"` // 문단에 앵커된 중첩 표/글상자
	Images      []*Image      `json:"images,omitempty"`
	Shapes      []*Shape      `json:"shapes,omitempty"`
	Equations   []*Equation   `json:"equations,omitempty"`
	Notes       []*Note       `json:"notes,omitempty"`
	Fields      []*Field      `json:"fields,omitempty"`
	AutoNumbers []*AutoNumber `json:"auto_numbers,omitempty"`
	Bookmarks   []string      `json:"bookmarks,omitempty"`
}

// Run is a slice of paragraph text sharing one character shape.
type Run struct {
	Text  string     `json:"text"`
	Shape *CharShape `json:"shape,omitempty"`
}

// NewParagraph creates a new paragraph with the given text.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Text: text}
}

// IsEmpty returns true if the paragraph has no text and no anchored objects.
func (p *Paragraph) IsEmpty() bool {
	return p.Text == "" && len(p.Objects) == 0 && len(p.Images) == 0 &&
		len(p.Shapes) == 0 && len(p.Equations) == 0
}

// Runs splits the text at the character shape boundaries.
func (p *Paragraph) Runs() []Run {
	if len(p.CharShapeRuns) == 0 {
		if p.Text == "" {
			return nil
		}
		return []Run{{Text: p.Text}}
	}
	runs := append([]CharShapeRun(nil), p.CharShapeRuns...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].TextOffset < runs[j].TextOffset })

	out := make([]Run, 0, len(runs))
	for i, r := range runs {
		start := clampOffset(r.TextOffset, len(p.Text))
		end := len(p.Text)
		if i+1 < len(runs) {
			end = clampOffset(runs[i+1].TextOffset, len(p.Text))
		}
		if i == 0 {
			start = 0
		}
		if end <= start {
			continue
		}
		out = append(out, Run{Text: p.Text[start:end], Shape: r.Shape})
	}
	return out
}

// OutlineLevel returns the outline level (1-7) when the paragraph uses an
// outline head, or 0.
func (p *Paragraph) OutlineLevel() int {
	if p.ParaShape == nil || p.ParaShape.HeadKind != HeadOutline {
		return 0
	}
	return int(p.ParaShape.Level) + 1
}

// MarkersOf returns the markers whose control id matches.
func (p *Paragraph) MarkersOf(controlID string) []ControlMarker {
	var out []ControlMarker
	for _, m := range p.Markers {
		if m.ControlID == controlID {
			out = append(out, m)
		}
	}
	return out
}

func (p *Paragraph) appendTree(out []*Paragraph) []*Paragraph {
	out = append(out, p)
	for _, b := range p.Objects {
		out = b.appendParagraphs(out)
	}
	for _, n := range p.Notes {
		for _, np := range n.Paragraphs {
			out = np.appendTree(out)
		}
	}
	return out
}

func clampOffset(off, n int) int {
	if off < 0 {
		return 0
	}
	if off > n {
		return n
	}
	return off
}
