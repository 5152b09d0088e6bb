package ir

import "encoding/json"

// Table is a resolved table.
type Table struct {
	Rows         int         `json:"rows"`
	Cols         int         `json:"cols"`
	Cells        [][]*Cell   `json:"-"` // [row][col], 병합 셀은 같은 포인터를 공유
	RowSizes     []uint16    `json:"row_sizes"` // 행별 셀 개수
	CellSpacing  HwpUnit     `json:"cell_spacing"`
	Padding      [4]HwpUnit  `json:"padding"` // left, right, top, bottom
	PageBreak    string      `json:"page_break"` // none, cell, table
	RepeatHeader bool        `json:"repeat_header"`
	BorderFillID uint16      `json:"border_fill_id"`
	BorderFill   *BorderFill `json:"border_fill,omitempty"`
	Zones        []CellZone  `json:"zones,omitempty"`

	Width     HwpUnit          `json:"width"`
	Height    HwpUnit          `json:"height"`
	StartLine int32            `json:"start_line"` // 앵커 줄의 세로 위치
	Placement *ObjectPlacement `json:"placement,omitempty"`
	Caption   *Caption         `json:"caption,omitempty"`
	Anchor    *Paragraph       `json:"anchor,omitempty"` // 표를 앵커한 문단
}

// Cell is a single table cell.
type Cell struct {
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	RowSpan       int          `json:"row_span"`
	ColSpan       int          `json:"col_span"`
	Width         HwpUnit      `json:"width"`
	Height        HwpUnit      `json:"height"`
	Margins       [4]HwpUnit   `json:"margins"` // left, right, top, bottom
	BorderFillID  uint16       `json:"border_fill_id"`
	BorderFill    *BorderFill  `json:"border_fill,omitempty"`
	VerticalAlign string       `json:"vertical_align"`
	Paragraphs    []*Paragraph `json:"paragraphs"`
}

// Text joins the text of the cell's paragraphs with newlines.
func (c *Cell) Text() string {
	var buf []byte
	for i, p := range c.Paragraphs {
		if i > 0 {
			buf = append(buf, '\n')
		}
		if p != nil {
			buf = append(buf, p.Text...)
		}
	}
	return string(buf)
}

// CellZone applies a border fill to a rectangular cell range.
type CellZone struct {
	StartRow     uint16      `json:"start_row"`
	StartCol     uint16      `json:"start_col"`
	EndRow       uint16      `json:"end_row"`
	EndCol       uint16      `json:"end_col"`
	BorderFillID uint16      `json:"border_fill_id"`
	BorderFill   *BorderFill `json:"border_fill,omitempty"`
}

// Caption is a table or object caption.
type Caption struct {
	Direction     string       `json:"direction"` // left, right, top, bottom
	IncludeMargin bool         `json:"include_margin"`
	Width         HwpUnit      `json:"width"`
	Spacing       HwpUnit      `json:"spacing"`
	MaxWidth      HwpUnit      `json:"max_width"`
	Paragraphs    []*Paragraph `json:"paragraphs"`
}

// NewTable creates a new table with an empty rows × cols grid.
func NewTable(rows, cols int) *Table {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([][]*Cell, rows)
	for i := range cells {
		cells[i] = make([]*Cell, cols)
	}
	return &Table{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// Place puts a cell into the grid at its address, covering its span.
// Addresses and spans outside the grid are clamped; the return value
// reports whether clamping was needed.
func (t *Table) Place(c *Cell) (clamped bool) {
	if t.Rows == 0 || t.Cols == 0 {
		return true
	}
	if c.Row < 0 || c.Row >= t.Rows {
		c.Row = clampIndex(c.Row, t.Rows)
		clamped = true
	}
	if c.Col < 0 || c.Col >= t.Cols {
		c.Col = clampIndex(c.Col, t.Cols)
		clamped = true
	}
	if c.RowSpan < 1 {
		c.RowSpan = 1
	}
	if c.ColSpan < 1 {
		c.ColSpan = 1
	}
	if c.Row+c.RowSpan > t.Rows {
		c.RowSpan = t.Rows - c.Row
		clamped = true
	}
	if c.Col+c.ColSpan > t.Cols {
		c.ColSpan = t.Cols - c.Col
		clamped = true
	}
	for r := c.Row; r < c.Row+c.RowSpan; r++ {
		for col := c.Col; col < c.Col+c.ColSpan; col++ {
			t.Cells[r][col] = c
		}
	}
	return clamped
}

// Cell returns the cell covering the given position, or nil.
func (t *Table) Cell(row, col int) *Cell {
	if row >= 0 && row < t.Rows && col >= 0 && col < len(t.Cells[row]) {
		return t.Cells[row][col]
	}
	return nil
}

// DistinctCells returns each placed cell once, in row-major order of
// their top-left position.
func (t *Table) DistinctCells() []*Cell {
	var out []*Cell
	seen := make(map[*Cell]bool)
	for _, row := range t.Cells {
		for _, c := range row {
			if c == nil || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// CellCount returns the declared number of cells (sum of RowSizes).
func (t *Table) CellCount() int {
	n := 0
	for _, s := range t.RowSizes {
		n += int(s)
	}
	return n
}

// MarshalJSON writes the distinct cells instead of the shared-pointer grid.
func (t *Table) MarshalJSON() ([]byte, error) {
	type plain Table
	return json.Marshal(struct {
		*plain
		CellList []*Cell `json:"cells"`
	}{(*plain)(t), t.DistinctCells()})
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
