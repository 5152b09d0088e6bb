package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

func formatOutput(doc *ir.Document, format string, pretty bool) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if pretty {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatAsText(doc), nil

	case "summary":
		return formatSummary(doc), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

// formatAsText renders the visible content: paragraphs one per line,
// tables as pipe-separated rows, objects as bracketed placeholders.
func formatAsText(doc *ir.Document) string {
	var sb strings.Builder

	if doc.Metadata.Title != "" {
		fmt.Fprintf(&sb, "제목: %s\n", doc.Metadata.Title)
	}
	if doc.Metadata.Author != "" {
		fmt.Fprintf(&sb, "작성자: %s\n", doc.Metadata.Author)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n---\n\n")
	}

	for i, sec := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if sec.Error != "" {
			fmt.Fprintf(&sb, "[구역 %d 오류: %s]\n", sec.Index, sec.Error)
		}
		for _, block := range sec.Blocks {
			writeBlock(&sb, block)
		}
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, block ir.Block) {
	switch block.Type {
	case ir.BlockTypeParagraph:
		if block.Paragraph != nil {
			writeParagraph(sb, block.Paragraph)
		}
	case ir.BlockTypeTable:
		if t := block.Table; t != nil {
			if t.Anchor != nil {
				writeParagraph(sb, t.Anchor)
			}
			sb.WriteString(formatTableAsText(t))
			writeCaption(sb, t.Caption)
		}
	case ir.BlockTypeTextBox:
		if tb := block.TextBox; tb != nil {
			if tb.Anchor != nil {
				writeParagraph(sb, tb.Anchor)
			}
			for _, p := range tb.Paragraphs {
				sb.WriteString("[글상자] ")
				writeParagraph(sb, p)
			}
			writeCaption(sb, tb.Caption)
		}
	}
}

func writeParagraph(sb *strings.Builder, p *ir.Paragraph) {
	if p.Text != "" {
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	for _, img := range p.Images {
		name := img.Path
		if name == "" {
			name = fmt.Sprintf("BinData %d", img.BinItemID)
		}
		if img.Unresolved {
			fmt.Fprintf(sb, "[그림: %s (%s)]\n", name, img.Reason)
		} else {
			fmt.Fprintf(sb, "[그림: %s]\n", name)
		}
		writeCaption(sb, img.Caption)
	}
	for _, eq := range p.Equations {
		fmt.Fprintf(sb, "[수식: %s]\n", eq.Script)
	}
	for _, obj := range p.Objects {
		writeBlock(sb, obj)
	}
	for _, n := range p.Notes {
		kind := "각주"
		if n.Endnote {
			kind = "미주"
		}
		for _, np := range n.Paragraphs {
			fmt.Fprintf(sb, "[%s %d] %s\n", kind, n.Number, np.Text)
		}
	}
}

func writeCaption(sb *strings.Builder, c *ir.Caption) {
	if c == nil {
		return
	}
	for _, p := range c.Paragraphs {
		if p.Text != "" {
			fmt.Fprintf(sb, "(%s)\n", p.Text)
		}
	}
}

// formatTableAsText prints each grid row; a merged cell is printed once
// at its top-left position.
func formatTableAsText(t *ir.Table) string {
	var sb strings.Builder
	for r := 0; r < t.Rows; r++ {
		for c := 0; c < t.Cols; c++ {
			if c > 0 {
				sb.WriteString(" | ")
			}
			cell := t.Cell(r, c)
			if cell != nil && cell.Row == r && cell.Col == c {
				sb.WriteString(strings.ReplaceAll(cell.Text(), "\n", " "))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatSummary renders per-section statistics as a table.
func formatSummary(doc *ir.Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "버전: %s  압축: %v  배포용: %v\n", doc.Version, doc.Compressed, doc.Distribution)
	if doc.Metadata.Title != "" {
		fmt.Fprintf(&sb, "제목: %s\n", doc.Metadata.Title)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(&sb)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"구역", "블록", "문단", "표", "글상자", "그림", "진단", "오류"})
	for _, sec := range doc.Sections {
		var tables, boxes, images int
		for _, b := range sec.Blocks {
			switch b.Type {
			case ir.BlockTypeTable:
				tables++
			case ir.BlockTypeTextBox:
				boxes++
			}
		}
		paras := sec.Paragraphs()
		for _, p := range paras {
			images += len(p.Images)
			for _, obj := range p.Objects {
				if obj.Type == ir.BlockTypeTable {
					tables++
				}
			}
		}
		tw.AppendRow(table.Row{sec.Index, len(sec.Blocks), len(paras), tables, boxes, images, len(sec.Diagnostics), sec.Error})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "", len(doc.AllDiagnostics()), ""})
	tw.Render()
	return sb.String()
}

var diagColors = map[ir.DiagnosticKind]*color.Color{
	ir.DiagUnknownTag:            color.New(color.FgCyan),
	ir.DiagInconsistentReference: color.New(color.FgYellow),
	ir.DiagStructuralMismatch:    color.New(color.FgMagenta),
	ir.DiagUnexpectedEOF:         color.New(color.FgRed, color.Bold),
}

// printDiagnostics writes a per-kind tally followed by at most limit
// diagnostics (all of them when limit <= 0).
func printDiagnostics(w io.Writer, diags []ir.Diagnostic, limit int) {
	if len(diags) == 0 {
		return
	}

	counts := ir.CountByKind(diags)
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s %d", colorKind(ir.DiagnosticKind(k)), counts[ir.DiagnosticKind(k)])
	}
	fmt.Fprintf(w, "진단 %d건: %s\n", len(diags), strings.Join(parts, ", "))

	shown := diags
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, d := range shown {
		loc := fmt.Sprintf("%s @%d", d.Stream, d.Offset)
		if d.TagID != 0 {
			loc += fmt.Sprintf(" tag=0x%03X", d.TagID)
		}
		fmt.Fprintf(w, "  %s [%s] %s\n", colorKind(d.Kind), loc, d.Message)
	}
	if rest := len(diags) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... 외 %d건 (--log-level debug로 전체 확인)\n", rest)
	}
}

func colorKind(k ir.DiagnosticKind) string {
	if c, ok := diagColors[k]; ok {
		return c.Sprint(k)
	}
	return string(k)
}
