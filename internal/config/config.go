// Package config manages application configuration.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/roboco-io/hwpmodel/internal/parser"
)

// Config represents the application configuration.
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// DecodeConfig controls the HWP decoder.
type DecodeConfig struct {
	Workers            int  `yaml:"workers"`              // 동시에 디코딩할 구역 수 (0이면 제한 없음)
	ExtractImages      bool `yaml:"extract_images"`       // 그림 데이터를 모델에 포함
	Strict             bool `yaml:"strict"`               // 진단이 하나라도 있으면 실패
	SkipLeadingPadding bool `yaml:"skip_leading_padding"` // 첫 문단의 구역/단 정의 제어 문자 건너뛰기
}

// OutputConfig contains output options.
type OutputConfig struct {
	Format    string `yaml:"format"` // json, text, summary
	Pretty    bool   `yaml:"pretty"`
	ImagesDir string `yaml:"images_dir"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// OutputFormats lists the supported output formats.
var OutputFormats = []string{"json", "text", "summary"}

// LogLevels lists the supported log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			Workers:            4,
			SkipLeadingPadding: true,
		},
		Output: OutputConfig{
			Format:    "json",
			Pretty:    true,
			ImagesDir: "./images",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Keys lists the keys accepted by Set, in display order.
func Keys() []string {
	return []string{
		"decode.workers",
		"decode.extract_images",
		"decode.strict",
		"decode.skip_leading_padding",
		"output.format",
		"output.pretty",
		"output.images_dir",
		"log.level",
	}
}

// Set updates one value by its dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "decode.workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("유효하지 않은 워커 수: %s", value)
		}
		c.Decode.Workers = n
	case "decode.extract_images":
		return setBool(&c.Decode.ExtractImages, value)
	case "decode.strict":
		return setBool(&c.Decode.Strict, value)
	case "decode.skip_leading_padding":
		return setBool(&c.Decode.SkipLeadingPadding, value)
	case "output.format":
		if !slices.Contains(OutputFormats, value) {
			return fmt.Errorf("유효하지 않은 출력 형식: %s (지원: %s)", value, strings.Join(OutputFormats, ", "))
		}
		c.Output.Format = value
	case "output.pretty":
		return setBool(&c.Output.Pretty, value)
	case "output.images_dir":
		if value == "" {
			return fmt.Errorf("이미지 디렉토리는 비어 있을 수 없습니다")
		}
		c.Output.ImagesDir = value
	case "log.level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.Log.Level = strings.ToLower(value)
	default:
		return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func setBool(dst *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("유효하지 않은 불리언 값: %s", value)
	}
	*dst = b
	return nil
}

// Validate checks values that may have come from a hand-edited file.
func (c *Config) Validate() error {
	if c.Decode.Workers < 0 {
		return fmt.Errorf("decode.workers는 0 이상이어야 합니다: %d", c.Decode.Workers)
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("유효하지 않은 출력 형식: %s", c.Output.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ApplyEnv overrides values from HWPMODEL_* environment variables.
func (c *Config) ApplyEnv() {
	if v := GetEnvOrDefault(EnvWorkers, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Decode.Workers = n
		}
	}
	if v := GetEnvOrDefault(EnvLogLevel, ""); v != "" {
		if _, err := ParseLevel(v); err == nil {
			c.Log.Level = strings.ToLower(v)
		}
	}
	if GetEnvBool(EnvStrict) {
		c.Decode.Strict = true
	}
}

// ParserOptions converts the decode settings into decoder options.
func (c *Config) ParserOptions(logger *slog.Logger) parser.Options {
	return parser.Options{
		Workers:     c.Decode.Workers,
		LoadImages:  c.Decode.ExtractImages,
		KeepLeading: !c.Decode.SkipLeadingPadding,
		Logger:      logger,
	}
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("유효하지 않은 로그 레벨: %s (지원: %s)", s, strings.Join(LogLevels, ", "))
	}
}
