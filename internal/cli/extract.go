package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roboco-io/hwpmodel/internal/config"
	"github.com/roboco-io/hwpmodel/internal/parser"
	"github.com/roboco-io/hwpmodel/internal/parser/hwp5"
)

var (
	extractOutput      string
	extractFormat      string
	extractImagesFlag  bool
	extractImagesDir   string
	extractPrettyPrint bool
	extractKeepLeading bool
	extractStrict      bool
	extractWorkers     int
	extractDiagLimit   int
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "HWP 문서에서 문서 모델 추출",
	Long: `HWP 5.x 문서를 디코딩하여 해석된 문서 모델을 출력합니다.

출력 형식:
  json     전체 문서 모델 (기본)
  text     문단, 표, 글상자의 본문
  summary  구역별 통계

플래그를 지정하지 않은 항목은 설정 파일 값을 따릅니다.

예시:
  hwpmodel extract document.hwp
  hwpmodel extract document.hwp -o output.json
  hwpmodel extract document.hwp --format text
  hwpmodel extract document.hwp --extract-images --images-dir ./images`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 (json, text, summary)")
	extractCmd.Flags().BoolVar(&extractImagesFlag, "extract-images", false, "그림 데이터를 읽어 이미지 파일로 저장")
	extractCmd.Flags().StringVar(&extractImagesDir, "images-dir", "./images", "추출된 이미지 저장 디렉토리")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")
	extractCmd.Flags().BoolVar(&extractKeepLeading, "keep-leading", false, "첫 문단의 구역/단 정의 제어 문자 유지")
	extractCmd.Flags().BoolVar(&extractStrict, "strict", false, "진단이 있으면 실패로 처리")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 4, "동시에 디코딩할 구역 수")
	extractCmd.Flags().IntVar(&extractDiagLimit, "max-diagnostics", 20, "표시할 진단 최대 개수 (0이면 전체)")

	rootCmd.AddCommand(extractCmd)
}

// applyExtractFlags overrides configuration values with the flags the
// user actually set.
func applyExtractFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		if err := c.Set("output.format", extractFormat); err != nil {
			return err
		}
	}
	if flags.Changed("pretty") {
		c.Output.Pretty = extractPrettyPrint
	}
	if flags.Changed("extract-images") {
		c.Decode.ExtractImages = extractImagesFlag
	}
	if flags.Changed("images-dir") {
		c.Output.ImagesDir = extractImagesDir
	}
	if flags.Changed("keep-leading") {
		c.Decode.SkipLeadingPadding = !extractKeepLeading
	}
	if flags.Changed("strict") {
		c.Decode.Strict = extractStrict
	}
	if flags.Changed("workers") {
		if extractWorkers < 0 {
			return fmt.Errorf("유효하지 않은 워커 수: %d", extractWorkers)
		}
		c.Decode.Workers = extractWorkers
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := applyExtractFlags(cmd, cfg); err != nil {
		return err
	}

	c, err := openContainer(inputPath)
	if err != nil {
		return err
	}
	defer c.Close()

	doc, err := c.Parse()
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}

	if cfg.Decode.ExtractImages {
		files, err := c.ExtractImages(cfg.Output.ImagesDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "이미지 %d개 저장: %s\n", len(files), cfg.Output.ImagesDir)
	}

	output, err := formatOutput(doc, cfg.Output.Format, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("파일 저장 실패: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "문서 모델 추출 완료: %s\n", extractOutput)
	}

	diags := doc.AllDiagnostics()
	printDiagnostics(cmd.ErrOrStderr(), diags, extractDiagLimit)
	if cfg.Decode.Strict && len(diags) > 0 {
		return fmt.Errorf("진단 %d건이 발생했습니다 (strict 모드)", len(diags))
	}
	return nil
}

// openContainer checks the input and opens it as an HWP 5.x compound file.
func openContainer(path string) (*hwp5.Container, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
	}

	format := parser.DetectFormat(path)
	if format == parser.FormatUnknown {
		// 확장자로 판별할 수 없으면 매직 바이트 확인
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("HWP 파일을 열 수 없습니다: %w", err)
		}
		format, err = parser.DetectFormatFromReader(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case parser.FormatHWP:
		return hwp5.New(path, cfg.ParserOptions(logger))
	case parser.FormatHWPX:
		return nil, fmt.Errorf("HWPX 형식은 지원하지 않습니다: %s", path)
	default:
		return nil, fmt.Errorf("지원하지 않는 파일 형식입니다: %s", filepath.Ext(path))
	}
}
