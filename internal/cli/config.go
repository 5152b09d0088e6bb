package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/hwpmodel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `hwpmodel 설정을 관리합니다.

설정 파일 위치: ~/.hwpmodel/config.yaml (--config로 변경)

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
	// 잘못된 설정 파일도 고칠 수 있도록 검증 없이 실행
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 설정 파일의 내용을 표시합니다.

설정 파일이 없으면 기본값이 표시됩니다.
환경 변수가 설정되어 있으면 실행 시 해당 값이 우선합니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.hwpmodel/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  decode.workers               동시에 디코딩할 구역 수 (0이면 제한 없음)
  decode.extract_images        그림 데이터 추출 (true, false)
  decode.strict                진단이 있으면 실패 (true, false)
  decode.skip_leading_padding  첫 문단의 구역/단 정의 건너뛰기 (true, false)
  output.format                출력 형식 (json, text, summary)
  output.pretty                JSON 들여쓰기 (true, false)
  output.images_dir            이미지 저장 디렉토리
  log.level                    로그 레벨 (debug, info, warn, error)

예시:
  hwpmodel config set decode.workers 8
  hwpmodel config set output.format text`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := configLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}

	c, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvWorkers, "decode.workers 덮어쓰기"},
		{config.EnvLogLevel, "log.level 덮어쓰기"},
		{config.EnvStrict, "decode.strict 활성화"},
	}
	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	value := args[1]

	loader, err := configLoader()
	if err != nil {
		return err
	}

	c, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := c.Set(key, value); err != nil {
		return err
	}
	if err := loader.Save(c); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}
