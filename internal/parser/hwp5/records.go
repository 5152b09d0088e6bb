package hwp5

import (
	"github.com/roboco-io/hwpmodel/internal/ir"
)

// Record is a decoded section record. Each variant embeds recordBase and
// carries the typed fields of one tag.
type Record interface {
	Header() RecordHeader
	StreamOffset() int
}

type recordBase struct {
	RecordHeader
	Offset int // 헤더 시작 오프셋
}

func (b recordBase) Header() RecordHeader { return b.RecordHeader }
func (b recordBase) StreamOffset() int    { return b.Offset }

type (
	// ParaHeaderRecord starts a paragraph (PARA_HEADER).
	ParaHeaderRecord struct {
		recordBase
		CharCount        uint32 // 최상위 비트 제외
		LastInList       bool   // 글자 수 최상위 비트
		ControlMask      uint32
		ParaShapeID      uint16
		StyleID          uint8
		BreakType        uint8
		CharShapeCount   uint16
		RangeTagCount    uint16
		LineAlignCount   uint16
		InstanceID       uint32
		TrackChangeMerge uint16 // 5.0.3.2 이상
	}

	// ParaTextRecord is a classified PARA_TEXT payload.
	ParaTextRecord struct {
		recordBase
		ClassifiedText
		SkippedLeading bool
	}

	// ParaCharShapeRecord lists (position, char shape id) pairs.
	ParaCharShapeRecord struct {
		recordBase
		Runs []ir.CharShapeRun
	}

	// ParaLineSegRecord lists the cached line layout.
	ParaLineSegRecord struct {
		recordBase
		Segments []ir.LineSegment
	}

	// ParaRangeTagRecord lists tagged text ranges.
	ParaRangeTagRecord struct {
		recordBase
		Tags []ir.RangeTag
	}

	// CtrlHeaderRecord is a control header. ControlID selects which of the
	// body pointers is set.
	CtrlHeaderRecord struct {
		recordBase
		ControlID string

		Object        *ir.ObjectPlacement // tbl, gso, eqed
		Column        *ir.ColumnDef       // cold
		SectionDef    *ir.SectionDef      // secd
		HeaderFooter  *HeaderFooterCtrl   // head, foot
		Note          *NoteCtrl           // fn, en
		AutoNumber    *ir.AutoNumber      // atno, nwno
		PageNumberPos *ir.PageNumberPos   // pgnp
		Field         *ir.Field           // %xxx
		Bookmark      *BookmarkCtrl       // bokm

		// Anchor is the extended control marker of the paragraph text this
		// header pairs with, when one was pending.
		Anchor *ir.ControlMarker
	}

	// ListHeaderRecord starts a paragraph list. Role is derived from the
	// control header that owns the list.
	ListHeaderRecord struct {
		recordBase
		Role          ListRole
		OwnerID       string // 소유 컨트롤 ID
		ParaCount     int
		Attributes    uint32
		TextDirection string
		LineBreak     string
		VerticalAlign string

		Cell    *CellInfo
		Caption *CaptionInfo
		TextBox *TextBoxInfo
		SubSize *SubListSize // 머리말/꼬리말 영역 크기
	}

	// PageDefRecord is the paper setup of the section.
	PageDefRecord struct {
		recordBase
		ir.PageDef
	}

	// FootnoteShapeRecord is a footnote or endnote layout.
	FootnoteShapeRecord struct {
		recordBase
		ir.NoteShape
	}

	// PageBorderFillRecord is a page border setting.
	PageBorderFillRecord struct {
		recordBase
		ir.PageBorderFill
	}

	// TableRecord is the table body following a tbl control header.
	TableRecord struct {
		recordBase
		Attributes   uint32
		PageBreak    string
		RepeatHeader bool
		Rows         uint16
		Cols         uint16
		CellSpacing  uint16
		Padding      [4]uint16
		RowSizes     []uint16
		BorderFillID uint16
		Zones        []ir.CellZone
	}

	// ShapeComponentRecord is the common part of a drawing object.
	ShapeComponentRecord struct {
		recordBase
		ir.ShapeGeometry
	}

	// ShapeLineRecord is a line body.
	ShapeLineRecord struct {
		recordBase
		ir.LineShape
	}

	// ShapeRectangleRecord is a rectangle body.
	ShapeRectangleRecord struct {
		recordBase
		ir.RectShape
	}

	// ShapeEllipseRecord is an ellipse or arc body.
	ShapeEllipseRecord struct {
		recordBase
		ir.EllipseShape
	}

	// ShapePolygonRecord is a polygon body.
	ShapePolygonRecord struct {
		recordBase
		Points []ir.Point
	}

	// ShapeCurveRecord is a curve body.
	ShapeCurveRecord struct {
		recordBase
		Points   []ir.Point
		Segments []uint8
	}

	// ShapePictureRecord is a picture body.
	ShapePictureRecord struct {
		recordBase
		BorderColor   ir.ColorRef
		BorderWidth   int32
		BorderAttr    uint32
		Corners       [4]ir.Point
		Crop          [4]int32
		Padding       [4]uint16
		Brightness    int8
		Contrast      int8
		Effect        uint8
		BinItemID     uint16
		BorderOpacity uint8
		InstanceID    uint32
	}

	// ShapeOLERecord is an OLE object body.
	ShapeOLERecord struct {
		recordBase
		ir.OLEShape
	}

	// ShapeContainerRecord lists the child control ids of a group.
	ShapeContainerRecord struct {
		recordBase
		ChildIDs []string
	}

	// EqEditRecord is an equation body.
	EqEditRecord struct {
		recordBase
		Attributes uint32
		ir.Equation
	}

	// OpaqueRecord keeps the payload of a known tag that is not decoded.
	OpaqueRecord struct {
		recordBase
		Data []byte
	}
)

// HeaderFooterCtrl is the body of a head/foot control.
type HeaderFooterCtrl struct {
	Footer  bool
	ApplyTo string
}

// NoteCtrl is the body of a fn/en control.
type NoteCtrl struct {
	Endnote bool
	Number  uint32
}

// BookmarkCtrl is the body of a bokm control.
type BookmarkCtrl struct {
	Name string
}

// ListRole tells what a paragraph list belongs to.
type ListRole string

const (
	ListCell         ListRole = "cell"
	ListCaption      ListRole = "caption"
	ListTextBox      ListRole = "textbox"
	ListHeaderFooter ListRole = "header_footer"
	ListNote         ListRole = "note"
	ListOther        ListRole = "other"
)

// CellInfo is the cell part of a cell list header.
type CellInfo struct {
	Col, Row         uint16
	ColSpan, RowSpan uint16
	Width, Height    uint32
	Margins          [4]uint16 // left, right, top, bottom
	BorderFillID     uint16
}

// CaptionInfo is the caption part of a caption list header.
type CaptionInfo struct {
	Direction     string
	IncludeMargin bool
	Width         uint32
	Spacing       uint16
	MaxWidth      uint32
}

// TextBoxInfo is the text box part of a drawing object list header.
type TextBoxInfo struct {
	Margins  [4]uint16
	MaxWidth uint32
}

// SubListSize is the text area size of a header/footer list.
type SubListSize struct {
	Width, Height uint32
}

// SectionRecords is the decoded record list of one section stream.
type SectionRecords struct {
	Records     []Record
	Diagnostics []ir.Diagnostic
	Stream      string
}
