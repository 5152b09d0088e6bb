package ir

// Image is a picture resolved against BinData.
type Image struct {
	BinItemID  uint16 `json:"bin_item_id"`
	Path       string `json:"path,omitempty"`   // 컨테이너 내 경로 (BinData/BIN0001.png)
	Format     string `json:"format,omitempty"` // 저장된 확장자
	Data       []byte `json:"-"`                // 압축 해제된 이미지 데이터
	Width      int    `json:"width,omitempty"`  // 픽셀 폭 (디코딩 가능한 경우)
	Height     int    `json:"height,omitempty"` // 픽셀 높이
	Unresolved bool   `json:"unresolved,omitempty"`
	Reason     string `json:"reason,omitempty"` // 해석 실패 사유

	DisplayWidth  HwpUnit          `json:"display_width"`
	DisplayHeight HwpUnit          `json:"display_height"`
	Corners       [4]Point         `json:"corners"`
	Crop          [4]int32         `json:"crop"`    // left, top, right, bottom
	Padding       [4]HwpUnit       `json:"padding"` // left, right, top, bottom
	Brightness    int8             `json:"brightness"`
	Contrast      int8             `json:"contrast"`
	Effect        uint8            `json:"effect"`
	BorderColor   ColorRef         `json:"border_color"`
	BorderWidth   int32            `json:"border_width"`
	Placement     *ObjectPlacement `json:"placement,omitempty"`
	Caption       *Caption         `json:"caption,omitempty"`
}

// HasData returns true if the image has raw data loaded.
func (img *Image) HasData() bool {
	return len(img.Data) > 0
}

// Point is a coordinate in HWP units.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// ObjectPlacement is the common geometry of a table, drawing object or
// equation, decoded from its control header.
type ObjectPlacement struct {
	ControlID    string     `json:"control_id"`
	Attributes   uint32     `json:"attributes"`
	LikeLetters  bool       `json:"like_letters"` // 글자처럼 취급
	VertRelTo    string     `json:"vert_rel_to"`
	VertAlign    string     `json:"vert_align"`
	HorzRelTo    string     `json:"horz_rel_to"`
	HorzAlign    string     `json:"horz_align"`
	FlowWithText bool       `json:"flow_with_text"`
	AllowOverlap bool       `json:"allow_overlap"`
	WidthRelTo   string     `json:"width_rel_to"`
	HeightRelTo  string     `json:"height_rel_to"`
	Protect      bool       `json:"protect"`
	Wrap         string     `json:"wrap"`
	TextSide     string     `json:"text_side"`
	Category     string     `json:"category"`
	OffsetX      HwpUnit    `json:"offset_x"`
	OffsetY      HwpUnit    `json:"offset_y"`
	Width        HwpUnit    `json:"width"`
	Height       HwpUnit    `json:"height"`
	ZOrder       int32      `json:"z_order"`
	Margins      [4]HwpUnit `json:"margins"` // left, right, top, bottom
	InstanceID   uint32     `json:"instance_id"`
	PageDivide   int32      `json:"page_divide"`
	Description  string     `json:"description,omitempty"`
}

// ShapeKind identifies the variant of a Shape.
type ShapeKind string

const (
	ShapePicture   ShapeKind = "picture"
	ShapeLine      ShapeKind = "line"
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeArc       ShapeKind = "arc"
	ShapePolygon   ShapeKind = "polygon"
	ShapeCurve     ShapeKind = "curve"
	ShapeContainer ShapeKind = "container"
	ShapeOLE       ShapeKind = "ole"
	ShapeUnknown   ShapeKind = "unknown"
)

// ShapeGeometry is the common shape component part of a drawing object.
type ShapeGeometry struct {
	ControlID     string  `json:"control_id"` // $pic, $rec, $lin ...
	OffsetX       int32   `json:"offset_x"`   // 그룹 내 위치
	OffsetY       int32   `json:"offset_y"`
	GroupLevel    uint16  `json:"group_level"`
	LocalVersion  uint16  `json:"local_version"`
	InitialWidth  HwpUnit `json:"initial_width"`
	InitialHeight HwpUnit `json:"initial_height"`
	Width         HwpUnit `json:"width"`
	Height        HwpUnit `json:"height"`
	FlipHorz      bool    `json:"flip_horz"`
	FlipVert      bool    `json:"flip_vert"`
	Rotation      int16   `json:"rotation"`
	RotationX     int32   `json:"rotation_x"`
	RotationY     int32   `json:"rotation_y"`
}

// Shape is a drawing object. Geometry fields apply to every kind; the
// kind-specific pointer matching Kind is set.
type Shape struct {
	Kind      ShapeKind        `json:"kind"`
	Geometry  ShapeGeometry    `json:"geometry"`
	Placement *ObjectPlacement `json:"placement,omitempty"`

	Line      *LineShape    `json:"line,omitempty"`
	Rectangle *RectShape    `json:"rectangle,omitempty"`
	Ellipse   *EllipseShape `json:"ellipse,omitempty"`
	Points    []Point       `json:"points,omitempty"`   // polygon, curve
	Segments  []uint8       `json:"segments,omitempty"` // curve segment types
	Picture   *Image        `json:"picture,omitempty"`
	OLE       *OLEShape     `json:"ole,omitempty"`
	Children  []*Shape      `json:"children,omitempty"` // container
	Caption   *Caption      `json:"caption,omitempty"`
}

// LineShape is the body of a line object.
type LineShape struct {
	Start             Point `json:"start"`
	End               Point `json:"end"`
	StartedRightOrBot bool  `json:"started_right_or_bottom"`
}

// RectShape is the body of a rectangle object.
type RectShape struct {
	Curvature uint8    `json:"curvature"` // 모서리 곡률 (%)
	Corners   [4]Point `json:"corners"`
}

// EllipseShape is the body of an ellipse or arc object.
type EllipseShape struct {
	Attributes uint32 `json:"attributes"`
	IsArc      bool   `json:"is_arc"`
	ArcType    uint8  `json:"arc_type"`
	Center     Point  `json:"center"`
	Axis1      Point  `json:"axis1"`
	Axis2      Point  `json:"axis2"`
	Start      Point  `json:"start,omitempty"`
	End        Point  `json:"end,omitempty"`
}

// OLEShape is the body of an embedded OLE object.
type OLEShape struct {
	Attributes uint32   `json:"attributes"`
	ExtentX    int32    `json:"extent_x"`
	ExtentY    int32    `json:"extent_y"`
	BinItemID  uint16   `json:"bin_item_id"`
	BinData    *BinData `json:"bin_data,omitempty"`
}

// TextBox is a drawing object carrying its own paragraph list.
type TextBox struct {
	Width         HwpUnit          `json:"width"`
	Height        HwpUnit          `json:"height"`
	Margins       [4]HwpUnit       `json:"margins"`
	VerticalAlign string           `json:"vertical_align"`
	Placement     *ObjectPlacement `json:"placement,omitempty"`
	Geometry      ShapeGeometry    `json:"geometry"`
	Paragraphs    []*Paragraph     `json:"paragraphs"`
	Caption       *Caption         `json:"caption,omitempty"`
	Anchor        *Paragraph       `json:"anchor,omitempty"`
}

// Equation is an equation object (EQEDIT).
type Equation struct {
	Script    string           `json:"script"`
	Size      HwpUnit          `json:"size"`
	Color     ColorRef         `json:"color"`
	Baseline  int16            `json:"baseline"`
	Version   string           `json:"version,omitempty"`
	Font      string           `json:"font,omitempty"`
	Placement *ObjectPlacement `json:"placement,omitempty"`
	Caption   *Caption         `json:"caption,omitempty"`
}
