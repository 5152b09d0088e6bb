package hwp5

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

var (
	// ErrUnexpectedEOF reports a record or field that claims more bytes than
	// remain in the stream. It is fatal for the stream being read only.
	ErrUnexpectedEOF = errors.New("hwp5: unexpected end of stream")

	// ErrEncrypted reports a password-encrypted document.
	ErrEncrypted = errors.New("hwp5: encrypted documents are not supported")

	// ErrNotHWP reports a file that is not an HWP 5.x compound document.
	ErrNotHWP = errors.New("hwp5: not an HWP 5.x document")
)

// diagnostics collects non-fatal problems of one stream and mirrors them
// to the logger at debug level.
type diagnostics struct {
	stream string
	logger *slog.Logger
	list   []ir.Diagnostic
}

func newDiagnostics(stream string, logger *slog.Logger) *diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &diagnostics{stream: stream, logger: logger}
}

func (d *diagnostics) add(kind ir.DiagnosticKind, offset int, tag uint16, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.list = append(d.list, ir.Diagnostic{
		Kind:    kind,
		Stream:  d.stream,
		Offset:  offset,
		TagID:   tag,
		Message: msg,
	})
	d.logger.Debug(msg,
		slog.String("kind", string(kind)),
		slog.String("stream", d.stream),
		slog.Int("offset", offset),
		slog.String("tag", TagName(tag)),
	)
}

func (d *diagnostics) items() []ir.Diagnostic {
	return append([]ir.Diagnostic(nil), d.list...)
}
