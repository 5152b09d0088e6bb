package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roboco-io/hwpmodel/internal/parser/hwp5"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "HWP 문서 헤더와 DocInfo 정보 표시",
	Long: `HWP 5.x 문서의 파일 헤더, 요약 정보, DocInfo 테이블 크기,
BinData 항목과 구역 스트림 목록을 표시합니다. 본문은 디코딩하지 않습니다.

예시:
  hwpmodel info document.hwp`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// DocInfo 테이블 표시 순서
var countOrder = []string{
	"BIN_DATA", "FACE_NAME", "BORDER_FILL", "CHAR_SHAPE", "TAB_DEF",
	"NUMBERING", "BULLET", "PARA_SHAPE", "STYLE",
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	tables, err := c.DocInfo()
	if err != nil {
		return err
	}
	meta, _ := c.Summary()

	out := cmd.OutOrStdout()
	writeHeaderInfo(out, c.Header())
	if meta.Title != "" {
		fmt.Fprintf(out, "제목:     %s\n", meta.Title)
	}
	if meta.Author != "" {
		fmt.Fprintf(out, "작성자:   %s\n", meta.Author)
	}
	fmt.Fprintln(out)

	writeCounts(out, tables)
	writeBinData(out, tables)

	streams := c.SectionStreams()
	fmt.Fprintf(out, "구역 스트림 %d개 (선언 %d개)\n", len(streams), tables.Properties().SectionCount)
	for _, s := range streams {
		fmt.Fprintf(out, "  %s\n", s)
	}

	printDiagnostics(cmd.ErrOrStderr(), tables.Diagnostics(), 0)
	return nil
}

func writeHeaderInfo(w io.Writer, h *hwp5.FileHeader) {
	fmt.Fprintf(w, "버전:     %s\n", h.Version)
	flags := h.FlagNames()
	if len(flags) == 0 {
		flags = []string{"-"}
	}
	fmt.Fprintf(w, "속성:     %s\n", strings.Join(flags, ", "))
}

func writeCounts(w io.Writer, tables *hwp5.DocInfoTables) {
	counts := tables.Counts()
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"DocInfo", "개수"})
	for _, name := range countOrder {
		tw.AppendRow(table.Row{name, counts[name]})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func writeBinData(w io.Writer, tables *hwp5.DocInfoTables) {
	items := tables.BinDataList()
	if len(items) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "종류", "압축", "경로"})
	for _, bd := range items {
		path := bd.ContainerPath
		if path == "" {
			path = bd.AbsPath
		}
		tw.AppendRow(table.Row{bd.ID, bd.StorageKind, bd.Compression, path})
	}
	tw.Render()
	fmt.Fprintln(w)
}
