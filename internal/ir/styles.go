package ir

// Script는 글꼴/글자 모양 배열의 언어 구분 순서
type Script int

const (
	ScriptKorean Script = iota
	ScriptEnglish
	ScriptChinese
	ScriptJapanese
	ScriptOther
	ScriptSymbol
	ScriptUser
	ScriptCount
)

var scriptNames = [ScriptCount]string{"ko", "en", "cn", "jp", "other", "symbol", "user"}

// String returns the short script name used in JSON keys.
func (s Script) String() string {
	if s >= 0 && s < ScriptCount {
		return scriptNames[s]
	}
	return "unknown"
}

// FaceName is a font face entry (HWPTAG_FACE_NAME).
type FaceName struct {
	Name        string      `json:"name"`
	Substitute  *FaceSubst  `json:"substitute,omitempty"`   // 대체 글꼴
	Metrics     *[10]byte   `json:"metrics,omitempty"`      // 글꼴 유형 정보
	DefaultName string      `json:"default_name,omitempty"` // 기본 글꼴 이름
}

// FaceSubst is an alternative face used when the primary face is missing.
type FaceSubst struct {
	Kind string `json:"kind"` // unknown, ttf, hft
	Name string `json:"name"`
}

// UnderlineKind is the position of an underline.
type UnderlineKind string

const (
	UnderlineNone  UnderlineKind = "none"
	UnderlineBelow UnderlineKind = "below"
	UnderlineAbove UnderlineKind = "above"
)

// LineKind is a border/underline stroke style.
type LineKind string

const (
	LineNone          LineKind = "none"
	LineSolid         LineKind = "solid"
	LineDash          LineKind = "dash"
	LineDot           LineKind = "dot"
	LineDashDot       LineKind = "dash_dot"
	LineDashDotDot    LineKind = "dash_dot_dot"
	LineLongDash      LineKind = "long_dash"
	LineCircle        LineKind = "circle"
	LineDouble        LineKind = "double"
	LineThinThick     LineKind = "thin_thick"
	LineThickThin     LineKind = "thick_thin"
	LineThinThickThin LineKind = "thin_thick_thin"
	LineWave          LineKind = "wave"
	LineDoubleWave    LineKind = "double_wave"
	LineThick3D       LineKind = "thick_3d"
	LineThick3DInset  LineKind = "thick_3d_inset"
	Line3D            LineKind = "3d"
	Line3DInset       LineKind = "3d_inset"
)

// CharShape is a resolved character shape (HWPTAG_CHAR_SHAPE).
type CharShape struct {
	FontIDs       [ScriptCount]uint16 `json:"font_ids"`
	Fonts         [ScriptCount]string `json:"fonts"` // FontIDs를 언어별 글꼴 목록에서 해석한 이름
	Stretch       [ScriptCount]uint8  `json:"stretch"`
	Spacing       [ScriptCount]int8   `json:"spacing"`
	RelativeSize  [ScriptCount]uint8  `json:"relative_size"`
	Position      [ScriptCount]int8   `json:"position"`
	BaseSize      int32               `json:"base_size"` // 1/100 pt
	Attributes    uint32              `json:"attributes"`
	ShadowOffsetX int8                `json:"shadow_offset_x"`
	ShadowOffsetY int8                `json:"shadow_offset_y"`
	TextColor     ColorRef            `json:"text_color"`
	UnderColor    ColorRef            `json:"underline_color"`
	ShadeColor    ColorRef            `json:"shade_color"`
	ShadowColor   ColorRef            `json:"shadow_color"`
	BorderFillID  uint16              `json:"border_fill_id,omitempty"` // 5.0.2.1 이상
	StrikeColor   *ColorRef           `json:"strike_color,omitempty"`   // 5.0.3.0 이상

	Italic             bool          `json:"italic"`
	Bold               bool          `json:"bold"`
	Underline          UnderlineKind `json:"underline"`
	UnderlineShape     LineKind      `json:"underline_shape"`
	Outline            string        `json:"outline"`
	Shadow             string        `json:"shadow"`
	Emboss             bool          `json:"emboss"`
	Engrave            bool          `json:"engrave"`
	Superscript        bool          `json:"superscript"`
	Subscript          bool          `json:"subscript"`
	Strikethrough      bool          `json:"strikethrough"`
	StrikethroughShape LineKind      `json:"strikethrough_shape"`
	Emphasis           string        `json:"emphasis"`
	UseFontSpacing     bool          `json:"use_font_spacing"`
	Kerning            bool          `json:"kerning"`

	BorderFill *BorderFill `json:"-"`
}

// Size returns the base size in points.
func (c *CharShape) Size() PointValue {
	return CharSizeToPoint(c.BaseSize)
}

// Alignment is a horizontal paragraph alignment.
type Alignment string

const (
	AlignJustify    Alignment = "justify"
	AlignLeft       Alignment = "left"
	AlignRight      Alignment = "right"
	AlignCenter     Alignment = "center"
	AlignDistribute Alignment = "distribute"
	AlignDivide     Alignment = "divide"
)

// HeadKind is the paragraph head type (문단 머리 모양).
type HeadKind string

const (
	HeadNone    HeadKind = "none"
	HeadOutline HeadKind = "outline"
	HeadNumber  HeadKind = "number"
	HeadBullet  HeadKind = "bullet"
)

// ParaShape is a resolved paragraph shape (HWPTAG_PARA_SHAPE).
type ParaShape struct {
	Attributes      uint32    `json:"attributes"`
	Alignment       Alignment `json:"alignment"`
	LineSpacingMode string    `json:"line_spacing_mode"` // percent, fixed, margin, minimum
	LineSpacing     int32     `json:"line_spacing"`
	LatinBreak      string    `json:"latin_break"` // word, hyphen, char
	KoreanBreak     string    `json:"korean_break"`
	UseGrid         bool      `json:"use_grid"`
	MinSpacePercent uint8     `json:"min_space_percent"`
	WidowOrphan     bool      `json:"widow_orphan"`
	KeepWithNext    bool      `json:"keep_with_next"`
	KeepLines       bool      `json:"keep_lines"`
	PageBreakBefore bool      `json:"page_break_before"`
	VerticalAlign   string    `json:"vertical_align"` // font, top, center, bottom
	FontLineHeight  bool      `json:"font_line_height"`
	HeadKind        HeadKind  `json:"head_kind"`
	Level           uint8     `json:"level"`
	ConnectBorder   bool      `json:"connect_border"`
	IgnoreMargin    bool      `json:"ignore_margin"`
	TailShape       bool      `json:"tail_shape"`

	MarginLeft    HwpUnit `json:"margin_left"`
	MarginRight   HwpUnit `json:"margin_right"`
	Indent        HwpUnit `json:"indent"`
	SpacingTop    HwpUnit `json:"spacing_top"`
	SpacingBottom HwpUnit `json:"spacing_bottom"`

	TabDefID       uint16    `json:"tab_def_id"`
	NumberBulletID uint16    `json:"number_bullet_id"`
	BorderFillID   uint16    `json:"border_fill_id"`
	BorderSpacing  [4]int16  `json:"border_spacing"` // left, right, top, bottom
	Attributes2    uint32    `json:"attributes2,omitempty"` // 5.0.1.7 이상
	Attributes3    uint32    `json:"attributes3,omitempty"` // 5.0.2.5 이상

	TabDef     *TabDef     `json:"-"`
	Bullet     *Bullet     `json:"-"`
	Numbering  *Numbering  `json:"-"`
	BorderFill *BorderFill `json:"-"`
}

// Style is a named style (HWPTAG_STYLE).
type Style struct {
	LocalName   string `json:"local_name"`
	EnglishName string `json:"english_name"`
	Kind        string `json:"kind"` // para, char
	NextStyleID uint8  `json:"next_style_id"`
	LangID      int16  `json:"lang_id"`
	ParaShapeID uint16 `json:"para_shape_id"`
	CharShapeID uint16 `json:"char_shape_id"`

	ParaShape *ParaShape `json:"-"`
	CharShape *CharShape `json:"-"`
}

// Name returns the English name when present, the local name otherwise.
func (s *Style) Name() string {
	if s.EnglishName != "" {
		return s.EnglishName
	}
	return s.LocalName
}

// BorderLine is one stroke of a border.
type BorderLine struct {
	Line    LineKind   `json:"line"`
	WidthMM float64    `json:"width_mm"`
	Color   ColorRef   `json:"color"`
}

// FillKind identifies the fill variant of a BorderFill.
type FillKind string

const (
	FillNone     FillKind = "none"
	FillSolid    FillKind = "solid"
	FillPattern  FillKind = "pattern"
	FillGradient FillKind = "gradient"
	FillImage    FillKind = "image"
)

// Fill is the background of a BorderFill.
type Fill struct {
	Kind            FillKind    `json:"kind"`
	BackgroundColor ColorRef    `json:"background_color,omitempty"`
	PatternColor    ColorRef    `json:"pattern_color,omitempty"`
	PatternType     int32       `json:"pattern_type,omitempty"`
	Gradient        *Gradient   `json:"gradient,omitempty"`
	Image           *ImageFill  `json:"image,omitempty"`
}

// Gradient is a gradation fill.
type Gradient struct {
	Type      int16      `json:"type"`
	Angle     int16      `json:"angle"`
	CenterX   int16      `json:"center_x"`
	CenterY   int16      `json:"center_y"`
	Spread    int16      `json:"spread"`
	Positions []int32    `json:"positions,omitempty"`
	Colors    []ColorRef `json:"colors"`
}

// ImageFill is a picture fill referencing BinData.
type ImageFill struct {
	Mode       uint8  `json:"mode"`
	Brightness int8   `json:"brightness"`
	Contrast   int8   `json:"contrast"`
	Effect     uint8  `json:"effect"`
	BinItemID  uint16 `json:"bin_item_id"`
}

// BorderFill is a border/background definition (HWPTAG_BORDER_FILL).
type BorderFill struct {
	Attributes   uint16        `json:"attributes"`
	ThreeD       bool          `json:"three_d"`
	Shadow       bool          `json:"shadow"`
	Edges        [4]BorderLine `json:"edges"` // left, right, top, bottom
	Diagonal     BorderLine    `json:"diagonal"`
	Fill         Fill          `json:"fill"`
}

// Edge indexes into BorderFill.Edges.
const (
	EdgeLeft = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Bullet is a bullet definition (HWPTAG_BULLET).
type Bullet struct {
	Glyph        string    `json:"glyph"`
	Code         uint16    `json:"code"`
	Small        bool      `json:"small,omitempty"`
	Alignment    Alignment `json:"alignment"`
	LikeLetters  bool      `json:"like_letters"`
	AutoOutdent  bool      `json:"auto_outdent"`
	DistanceType string    `json:"distance_type"` // ratio, value
	Width        HwpUnit   `json:"width"`
	Space        HwpUnit   `json:"space"`
	CharShapeID  int32     `json:"char_shape_id"`
	ImageBullet  int32     `json:"image_bullet,omitempty"`
	CheckGlyph   string    `json:"check_glyph,omitempty"`
}

// NumberingLevel is one of the seven level definitions of a Numbering.
type NumberingLevel struct {
	Alignment    Alignment `json:"alignment"`
	LikeLetters  bool      `json:"like_letters"`
	AutoOutdent  bool      `json:"auto_outdent"`
	DistanceType string    `json:"distance_type"`
	Width        HwpUnit   `json:"width"`
	Distance     HwpUnit   `json:"distance"`
	CharShapeID  uint32    `json:"char_shape_id"`
	Format       string    `json:"format"`
}

// Numbering is a paragraph numbering definition (HWPTAG_NUMBERING).
type Numbering struct {
	Levels            [7]NumberingLevel `json:"levels"`
	StartNumber       uint16            `json:"start_number"`
	LevelStartNumbers []uint32          `json:"level_start_numbers,omitempty"` // 5.0.2.5 이상
	ExtendedFormats   []string          `json:"extended_formats,omitempty"`    // 8~10 수준 번호 형식
}

// TabStop is a single tab stop of a TabDef.
type TabStop struct {
	Position HwpUnit `json:"position"`
	Kind     string  `json:"kind"` // left, right, center, decimal
	Fill     uint8   `json:"fill"`
}

// TabDef is a tab definition (HWPTAG_TAB_DEF).
type TabDef struct {
	AutoTabLeft  bool      `json:"auto_tab_left"`
	AutoTabRight bool      `json:"auto_tab_right"`
	Stops        []TabStop `json:"stops"`
}

// StorageKind is how a BinData item is stored.
type StorageKind string

const (
	StorageLink     StorageKind = "link"
	StorageEmbedded StorageKind = "embedded"
	StorageStorage  StorageKind = "storage"
)

// BinData is metadata for an embedded or linked binary resource.
type BinData struct {
	ID            uint16      `json:"id"` // 디코딩 순서로 부여된 1-based ID
	StorageKind   StorageKind `json:"storage_kind"`
	Compression   string      `json:"compression"` // default, compress, none
	Status        string      `json:"status"`      // none, success, error, ignored
	AbsPath       string      `json:"abs_path,omitempty"`
	RelPath       string      `json:"rel_path,omitempty"`
	BinID         uint16      `json:"bin_id,omitempty"`
	Extension     string      `json:"extension,omitempty"`
	IsImage       bool        `json:"is_image"`
	ContainerPath string      `json:"container_path,omitempty"`
}

// Compressed reports whether the stored bytes are deflated, given the
// document-wide compression flag.
func (b *BinData) Compressed(documentCompressed bool) bool {
	switch b.Compression {
	case "compress":
		return true
	case "none":
		return false
	default:
		return documentCompressed
	}
}
