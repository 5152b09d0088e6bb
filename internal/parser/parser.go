// Package parser provides the format detection and options shared by the
// document decoders.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// Parser is the interface for document decoders.
type Parser interface {
	// Parse reads the document and returns the resolved model.
	Parse() (*ir.Document, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents a document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatHWPX           // 인식만 함, 디코딩은 지원하지 않음
	FormatHWP            // HWP 5.x binary format
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatHWPX:
		return "hwpx"
	case FormatHWP:
		return "hwp"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".hwpx":
		return FormatHWPX
	case ".hwp", ".hwp5":
		return FormatHWP
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// ZIP magic number (HWPX)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatHWPX, nil
	}

	// OLE/CFBF magic number (HWP 5.x)
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		return FormatHWP, nil
	}

	// 추출된 FileHeader 스트림
	if string(buf[:3]) == "HWP" {
		return FormatHWP, nil
	}

	return FormatUnknown, nil
}

// Options contains decoder configuration options.
type Options struct {
	Workers     int          // 동시에 디코딩할 구역 수 (0 이하면 구역 수만큼)
	LoadImages  bool         // 그림 데이터를 모델에 포함
	KeepLeading bool         // 첫 문단 앞머리 구역/단 정의 제어 문자를 유지
	Logger      *slog.Logger // nil이면 slog.Default()
}

// DefaultOptions returns default decoder options.
func DefaultOptions() Options {
	return Options{
		Workers:    4,
		LoadImages: false,
	}
}
