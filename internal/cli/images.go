package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var imagesDir string

var imagesCmd = &cobra.Command{
	Use:   "images <file>",
	Short: "문서에 포함된 BinData 항목을 파일로 저장",
	Long: `문서에 포함된 그림과 OLE 데이터를 압축 해제하여 BINxxxx.확장자 이름으로
저장합니다. 외부 파일로 연결된 항목은 건너뜁니다.

예시:
  hwpmodel images document.hwp -d ./images`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().StringVarP(&imagesDir, "dir", "d", "", "저장 디렉토리 (기본: 설정의 output.images_dir)")

	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	dir := imagesDir
	if dir == "" {
		dir = cfg.Output.ImagesDir
	}

	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	files, err := c.ExtractImages(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "포함된 BinData 항목이 없습니다")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "파일", "크기"})
	for _, f := range files {
		tw.AppendRow(table.Row{f.ID, f.Path, f.Size})
	}
	tw.Render()
	return nil
}
