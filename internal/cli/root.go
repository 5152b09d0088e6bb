// Package cli implements the hwpmodel command line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roboco-io/hwpmodel/internal/config"
)

var (
	version = "dev"

	cfgFile      string
	logLevelFlag string

	// PersistentPreRunE에서 채워짐
	cfg    = config.DefaultConfig()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "hwpmodel",
	Short: "HWP 5.x 문서를 해석된 문서 모델로 디코딩",
	Long: `hwpmodel은 HWP 5.x 바이너리 문서를 읽어 문단, 표, 글상자, 그림과
서식 정보가 모두 해석된 문서 모델을 출력합니다.

디코딩 중 발견된 문제는 실패 대신 진단(diagnostic)으로 기록됩니다.

예시:
  hwpmodel extract document.hwp
  hwpmodel extract document.hwp --format text
  hwpmodel info document.hwp
  hwpmodel images document.hwp -d ./images`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 출력",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hwpmodel %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "설정 파일 경로 (기본: ~/.hwpmodel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "로그 레벨 (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configLoader() (*config.Loader, error) {
	if cfgFile != "" {
		return config.NewLoaderWithPath(cfgFile), nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	return loader, nil
}

// loadConfig reads the configuration and installs the logger before any
// subcommand runs.
func loadConfig(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}
	c, err := loader.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if logLevelFlag != "" {
		if err := c.Set("log.level", logLevelFlag); err != nil {
			return err
		}
	}

	level, _ := config.ParseLevel(c.Log.Level)
	logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)
	cfg = c
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
