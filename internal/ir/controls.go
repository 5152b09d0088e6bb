package ir

// ColumnDef is a column definition (cold control).
type ColumnDef struct {
	Kind         string    `json:"kind"` // normal, distribute, parallel
	Count        int       `json:"count"`
	Direction    string    `json:"direction"` // left, right, both
	SameWidth    bool      `json:"same_width"`
	Spacing      HwpUnit   `json:"spacing"`
	Widths       []HwpUnit `json:"widths,omitempty"`
	DividerType  LineKind  `json:"divider_type"`
	DividerWidth float64   `json:"divider_width_mm"`
	DividerColor ColorRef  `json:"divider_color"`
}

// HeaderFooter is page header or footer content (head/foot control).
type HeaderFooter struct {
	Footer     bool         `json:"footer"`
	ApplyTo    string       `json:"apply_to"` // both, even, odd
	Width      HwpUnit      `json:"width"`
	Height     HwpUnit      `json:"height"`
	Paragraphs []*Paragraph `json:"paragraphs"`
}

// Note is a footnote or endnote (fn/en control).
type Note struct {
	Endnote    bool         `json:"endnote"`
	Number     uint32       `json:"number"`
	Paragraphs []*Paragraph `json:"paragraphs"`
}

// SectionDef holds section-wide settings (secd control).
type SectionDef struct {
	Attributes         uint32  `json:"attributes"`
	HideHeader         bool    `json:"hide_header"`
	HideFooter         bool    `json:"hide_footer"`
	HideMasterPage     bool    `json:"hide_master_page"`
	HideBorder         bool    `json:"hide_border"`
	HideFill           bool    `json:"hide_fill"`
	HidePageNumber     bool    `json:"hide_page_number"`
	TextDirection      string  `json:"text_direction"` // horizontal, vertical
	ColumnGap          HwpUnit `json:"column_gap"`
	VerticalGrid       HwpUnit `json:"vertical_grid"`
	HorizontalGrid     HwpUnit `json:"horizontal_grid"`
	DefaultTabSpacing  HwpUnit `json:"default_tab_spacing"`
	NumberingShapeID   uint16  `json:"numbering_shape_id"`
	PageStartNumber    uint16  `json:"page_start_number"`
	PictureStartNumber uint16  `json:"picture_start_number"`
	TableStartNumber   uint16  `json:"table_start_number"`
	EquationStart      uint16  `json:"equation_start_number"`
}

// PageDef is the paper setup of a section (PAGE_DEF).
type PageDef struct {
	Width        HwpUnit `json:"width"`
	Height       HwpUnit `json:"height"`
	MarginLeft   HwpUnit `json:"margin_left"`
	MarginRight  HwpUnit `json:"margin_right"`
	MarginTop    HwpUnit `json:"margin_top"`
	MarginBottom HwpUnit `json:"margin_bottom"`
	MarginHeader HwpUnit `json:"margin_header"`
	MarginFooter HwpUnit `json:"margin_footer"`
	Gutter       HwpUnit `json:"gutter"`
	Landscape    bool    `json:"landscape"`
	Binding      string  `json:"binding"` // single, facing, top
}

// ContentWidth returns the page width minus side margins and gutter.
func (p *PageDef) ContentWidth() HwpUnit {
	w, h := p.Width, p.Height
	if p.Landscape {
		w = h
	}
	return w - p.MarginLeft - p.MarginRight - p.Gutter
}

// NoteShape is the footnote or endnote layout of a section (FOOTNOTE_SHAPE).
type NoteShape struct {
	NumberShape   string   `json:"number_shape"`
	Placement     string   `json:"placement"`
	Numbering     string   `json:"numbering"` // continue, restart_section, restart_page
	Superscript   bool     `json:"superscript"`
	UserSymbol    string   `json:"user_symbol,omitempty"`
	Prefix        string   `json:"prefix,omitempty"`
	Suffix        string   `json:"suffix,omitempty"`
	StartNumber   uint16   `json:"start_number"`
	DividerLength HwpUnit  `json:"divider_length"`
	DividerTop    HwpUnit  `json:"divider_top"`
	DividerBottom HwpUnit  `json:"divider_bottom"`
	NoteSpacing   HwpUnit  `json:"note_spacing"`
	DividerType   LineKind `json:"divider_type"`
	DividerWidth  float64  `json:"divider_width_mm"`
	DividerColor  ColorRef `json:"divider_color"`
}

// PageBorderFill is a page border setting (PAGE_BORDER_FILL).
type PageBorderFill struct {
	Attributes   uint32      `json:"attributes"`
	RelativeTo   string      `json:"relative_to"` // body, paper
	IncludeHead  bool        `json:"include_header"`
	IncludeFoot  bool        `json:"include_footer"`
	FillArea     string      `json:"fill_area"` // paper, page, border
	Spacing      [4]HwpUnit  `json:"spacing"`   // left, right, top, bottom
	BorderFillID uint16      `json:"border_fill_id"`
	BorderFill   *BorderFill `json:"border_fill,omitempty"`
}

// Field is a field control such as a hyperlink (%hlk).
type Field struct {
	ControlID string `json:"control_id"`
	Kind      string `json:"kind"` // hyperlink, bookmark, date, ...
	Command   string `json:"command"`
	ID        uint32 `json:"id"`
	Editable  bool   `json:"editable"`
}

// URL returns the link target of a hyperlink field.
func (f *Field) URL() string {
	if f.Kind != "hyperlink" {
		return ""
	}
	// 명령 문자열: "url;..." 형식, 세미콜론 앞부분이 대상
	cmd := f.Command
	for i := 0; i < len(cmd); i++ {
		if cmd[i] == '\\' {
			i++
			continue
		}
		if cmd[i] == ';' {
			return unescapeField(cmd[:i])
		}
	}
	return unescapeField(cmd)
}

func unescapeField(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		out = append(out, s[i])
	}
	return string(out)
}

// AutoNumber is an automatic or new number control (atno/nwno).
type AutoNumber struct {
	New       bool   `json:"new"` // nwno
	Kind      string `json:"kind"` // page, footnote, endnote, picture, table, equation
	Shape     string `json:"shape"`
	Number    uint16 `json:"number"`
	Formatted string `json:"formatted"`
}

// PageNumberPos places the page number on every page (pgnp control).
type PageNumberPos struct {
	Shape      string `json:"shape"`
	Position   string `json:"position"` // none, top_left, top_center, ...
	UserSymbol string `json:"user_symbol,omitempty"`
	Prefix     string `json:"prefix,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	Dash       string `json:"dash,omitempty"`
}
