// Package ir defines the resolved document model for HWP documents.
// Every numeric reference found in the binary streams is already
// dereferenced when a value of this package is handed out.
package ir

// Document represents a decoded HWP document.
type Document struct {
	Version      string       `json:"version"` // HWP 파일 버전 (예: 5.0.3.0)
	Compressed   bool         `json:"compressed"`
	Distribution bool         `json:"distribution,omitempty"` // 배포용 문서
	Metadata     Metadata     `json:"metadata"`
	Sections     []*Section   `json:"sections"`
	BinData      []BinData    `json:"bin_data,omitempty"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty"` // DocInfo 및 컨테이너 진단
}

// Metadata contains document metadata from the summary information stream.
type Metadata struct {
	Title       string            `json:"title,omitempty"`
	Author      string            `json:"author,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Keywords    string            `json:"keywords,omitempty"`
	Description string            `json:"description,omitempty"`
	Creator     string            `json:"creator,omitempty"`
	Created     string            `json:"created,omitempty"`
	Modified    string            `json:"modified,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"` // 원본 속성 이름 → 값
}

// BlockType represents the type of a top-level content block.
type BlockType string

const (
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeTable     BlockType = "table"
	BlockTypeTextBox   BlockType = "textbox"
)

// Block is one top-level object of a section or a nested object anchored
// in a paragraph. Exactly one of the pointers is set, matching Type.
type Block struct {
	Type      BlockType  `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Table     *Table     `json:"table,omitempty"`
	TextBox   *TextBox   `json:"textbox,omitempty"`
}

// Section is the resolved content of one BodyText/SectionN stream.
type Section struct {
	Index           int              `json:"index"`
	Blocks          []Block          `json:"blocks"`
	Definition      *SectionDef      `json:"definition,omitempty"`
	PageDef         *PageDef         `json:"page_def,omitempty"`
	NoteShapes      []NoteShape      `json:"note_shapes,omitempty"` // 각주, 미주 순
	PageBorderFills []PageBorderFill `json:"page_border_fills,omitempty"`
	HeadersFooters  []*HeaderFooter  `json:"headers_footers,omitempty"`
	PageNumbers     []PageNumberPos  `json:"page_numbers,omitempty"`
	Diagnostics     []Diagnostic     `json:"diagnostics,omitempty"`
	Error           string           `json:"error,omitempty"` // 스트림이 중간에 끊긴 경우
}

// NewDocument creates a new document for the given file version.
func NewDocument(version string) *Document {
	return &Document{
		Version:  version,
		Sections: make([]*Section, 0),
	}
}

// NewSection creates an empty section with the given index.
func NewSection(index int) *Section {
	return &Section{
		Index:  index,
		Blocks: make([]Block, 0),
	}
}

// AddParagraph adds a paragraph block to the section.
func (s *Section) AddParagraph(p *Paragraph) {
	s.Blocks = append(s.Blocks, Block{
		Type:      BlockTypeParagraph,
		Paragraph: p,
	})
}

// AddTable adds a table block to the section.
func (s *Section) AddTable(t *Table) {
	s.Blocks = append(s.Blocks, Block{
		Type:  BlockTypeTable,
		Table: t,
	})
}

// AddTextBox adds a text box block to the section.
func (s *Section) AddTextBox(tb *TextBox) {
	s.Blocks = append(s.Blocks, Block{
		Type:    BlockTypeTextBox,
		TextBox: tb,
	})
}

// Paragraphs returns every paragraph of the section in document order,
// descending into tables, text boxes and nested objects.
func (s *Section) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range s.Blocks {
		out = b.appendParagraphs(out)
	}
	return out
}

func (b Block) appendParagraphs(out []*Paragraph) []*Paragraph {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			out = b.Paragraph.appendTree(out)
		}
	case BlockTypeTable:
		if b.Table != nil {
			if b.Table.Anchor != nil {
				out = b.Table.Anchor.appendTree(out)
			}
			for _, c := range b.Table.DistinctCells() {
				for _, p := range c.Paragraphs {
					out = p.appendTree(out)
				}
			}
		}
	case BlockTypeTextBox:
		if b.TextBox != nil {
			if b.TextBox.Anchor != nil {
				out = b.TextBox.Anchor.appendTree(out)
			}
			for _, p := range b.TextBox.Paragraphs {
				out = p.appendTree(out)
			}
		}
	}
	return out
}

// AddSection appends a section to the document.
func (d *Document) AddSection(s *Section) {
	d.Sections = append(d.Sections, s)
}

// AllDiagnostics returns document-level diagnostics followed by the
// diagnostics of every section.
func (d *Document) AllDiagnostics() []Diagnostic {
	out := append([]Diagnostic(nil), d.Diagnostics...)
	for _, s := range d.Sections {
		if s != nil {
			out = append(out, s.Diagnostics...)
		}
	}
	return out
}

// Text returns the visible text of the whole document, one paragraph
// per line.
func (d *Document) Text() string {
	var buf []byte
	for _, s := range d.Sections {
		if s == nil {
			continue
		}
		for _, p := range s.Paragraphs() {
			if p.Text == "" {
				continue
			}
			buf = append(buf, p.Text...)
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
