package ir

import "fmt"

// DiagnosticKind classifies a non-fatal decoding problem.
type DiagnosticKind string

const (
	// DiagUnknownTag: 알 수 없는 태그, 건너뜀
	DiagUnknownTag DiagnosticKind = "unknown_tag"
	// DiagInconsistentReference: DocInfo 범위를 벗어난 ID, 기본값으로 대체
	DiagInconsistentReference DiagnosticKind = "inconsistent_reference"
	// DiagStructuralMismatch: 레코드 구조 불일치, 범위로 보정
	DiagStructuralMismatch DiagnosticKind = "structural_mismatch"
	// DiagUnexpectedEOF: 스트림이 중간에 끊김
	DiagUnexpectedEOF DiagnosticKind = "unexpected_eof"
)

// Diagnostic is a recorded non-fatal problem found while decoding.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Stream  string         `json:"stream"`           // 예: DocInfo, BodyText/Section0
	Offset  int            `json:"offset"`           // 레코드 시작 오프셋
	TagID   uint16         `json:"tag_id,omitempty"` // 관련 레코드 태그
	Message string         `json:"message"`
}

// String formats the diagnostic on one line.
func (d Diagnostic) String() string {
	if d.TagID != 0 {
		return fmt.Sprintf("%s [%s @%d tag=0x%03X] %s", d.Kind, d.Stream, d.Offset, d.TagID, d.Message)
	}
	return fmt.Sprintf("%s [%s @%d] %s", d.Kind, d.Stream, d.Offset, d.Message)
}

// CountByKind tallies diagnostics per kind.
func CountByKind(diags []Diagnostic) map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}
