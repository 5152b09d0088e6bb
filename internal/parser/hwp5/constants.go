// Package hwp5 decodes HWP 5.x binary documents into the resolved model
// of package ir.
package hwp5

// HWP 5.x 파일 포맷 상수 정의
// 참조: https://cdn.hancom.com/link/docs/한글문서파일형식_5.0_revision1.3.pdf

const (
	// FileHeader 시그니처
	Signature = "HWP Document File"

	// FileHeader 크기 (고정)
	FileHeaderSize = 256

	// 속성 플래그 비트
	FlagCompressed      uint32 = 1 << 0  // 압축 여부
	FlagEncrypted       uint32 = 1 << 1  // 암호화 여부
	FlagDistributable   uint32 = 1 << 2  // 배포용 문서
	FlagScript          uint32 = 1 << 3  // 스크립트 저장
	FlagDRM             uint32 = 1 << 4  // DRM 보안
	FlagXMLTemplate     uint32 = 1 << 5  // XMLTemplate 저장
	FlagHistory         uint32 = 1 << 6  // 문서 이력 관리
	FlagSignature       uint32 = 1 << 7  // 전자 서명
	FlagCertEncrypt     uint32 = 1 << 8  // 공인 인증서 암호화
	FlagSignatureReserv uint32 = 1 << 9  // 전자 서명 예비
	FlagCertDRM         uint32 = 1 << 10 // 공인 인증서 DRM
	FlagCCL             uint32 = 1 << 11 // CCL 문서
	FlagMobile          uint32 = 1 << 12 // 모바일 최적화
)

// 스트림 이름
const (
	StreamFileHeader  = "FileHeader"
	StreamDocInfo     = "DocInfo"
	StreamBodyText    = "BodyText"
	StreamViewText    = "ViewText"
	StreamSummaryInfo = "\x05HwpSummaryInformation"
	StreamBinData     = "BinData"
	StreamPrvText     = "PrvText"
	StreamPrvImage    = "PrvImage"
)

// 버전 경계값 (Version.Number 기준)
const (
	Version5010 uint32 = 5010 // 표 영역 속성
	Version5017 uint32 = 5017 // 문단 모양 속성2
	Version5021 uint32 = 5021 // 글자 모양 테두리/배경 ID
	Version5025 uint32 = 5025 // 문단 모양 속성3, 문단 번호 수준별 시작 번호
	Version5030 uint32 = 5030 // 글자 모양 취소선 색
	Version5032 uint32 = 5032 // 문단 헤더 변경 추적 병합
)

const tagBegin uint16 = 0x010

// 레코드 태그 ID (HWPTAG_*)
// 참조: HWP 5.0 명세서 4장 데이터 레코드
const (
	// DocInfo 레코드 태그
	TagDocumentProperties = tagBegin      // 문서 속성
	TagIDMappings         = tagBegin + 1  // ID 매핑 테이블 크기
	TagBinData            = tagBegin + 2  // 바이너리 데이터
	TagFaceName           = tagBegin + 3  // 글꼴
	TagBorderFill         = tagBegin + 4  // 테두리/배경
	TagCharShape          = tagBegin + 5  // 글자 모양
	TagTabDef             = tagBegin + 6  // 탭 정의
	TagNumbering          = tagBegin + 7  // 문단 번호
	TagBullet             = tagBegin + 8  // 글머리표
	TagParaShape          = tagBegin + 9  // 문단 모양
	TagStyle              = tagBegin + 10 // 스타일
	TagDocData            = tagBegin + 11 // 문서 임의 데이터
	TagDistributeDocData  = tagBegin + 12 // 배포용 문서 데이터
	TagCompatibleDocument = tagBegin + 14 // 호환 문서
	TagLayoutCompatible   = tagBegin + 15 // 레이아웃 호환성
	TagTrackChangeInfo    = tagBegin + 16 // 변경 추적 정보
	TagMemoShape          = tagBegin + 76 // 메모 모양
	TagForbiddenChar      = tagBegin + 78 // 금칙 문자
	TagTrackChange        = tagBegin + 80 // 변경 추적 내용 및 모양
	TagTrackChangeAuthor  = tagBegin + 81 // 변경 추적 작성자

	// BodyText 레코드 태그
	TagParaHeader         = tagBegin + 50 // 문단 헤더
	TagParaText           = tagBegin + 51 // 문단 텍스트
	TagParaCharShape      = tagBegin + 52 // 문단 글자 모양
	TagParaLineSeg        = tagBegin + 53 // 문단 레이아웃
	TagParaRangeTag       = tagBegin + 54 // 문단 영역 태그
	TagCtrlHeader         = tagBegin + 55 // 컨트롤 헤더
	TagListHeader         = tagBegin + 56 // 문단 리스트 헤더
	TagPageDef            = tagBegin + 57 // 용지 설정
	TagFootnoteShape      = tagBegin + 58 // 각주/미주 모양
	TagPageBorderFill     = tagBegin + 59 // 쪽 테두리/배경
	TagShapeComponent     = tagBegin + 60 // 개체 요소
	TagTable              = tagBegin + 61 // 표
	TagShapeLine          = tagBegin + 62 // 직선
	TagShapeRectangle     = tagBegin + 63 // 사각형
	TagShapeEllipse       = tagBegin + 64 // 타원
	TagShapeArc           = tagBegin + 65 // 호
	TagShapePolygon       = tagBegin + 66 // 다각형
	TagShapeCurve         = tagBegin + 67 // 곡선
	TagShapeOLE           = tagBegin + 68 // OLE
	TagShapePicture       = tagBegin + 69 // 그림
	TagShapeContainer     = tagBegin + 70 // 묶음 개체
	TagCtrlData           = tagBegin + 71 // 컨트롤 임의 데이터
	TagEqEdit             = tagBegin + 72 // 수식
	TagShapeTextArt       = tagBegin + 74 // 글맵시
	TagFormObject         = tagBegin + 75 // 양식 개체
	TagMemoList           = tagBegin + 77 // 메모 리스트 헤더
	TagChartData          = tagBegin + 79 // 차트 데이터
	TagVideoData          = tagBegin + 82 // 비디오 데이터
	TagShapeUnknown       = tagBegin + 99 // 알 수 없는 개체
)

// 컨트롤 ID (4글자, 스트림에는 역순으로 저장)
const (
	CtrlSection       = "secd" // 구역 정의
	CtrlColumn        = "cold" // 단 정의
	CtrlHeader        = "head" // 머리말
	CtrlFooter        = "foot" // 꼬리말
	CtrlFootnote      = "fn  " // 각주
	CtrlEndnote       = "en  " // 미주
	CtrlAutoNumber    = "atno" // 자동 번호
	CtrlNewNumber     = "nwno" // 새 번호
	CtrlPageHide      = "pghd" // 감추기
	CtrlPageOddEven   = "pgct" // 홀/짝수 조정
	CtrlPageNumberPos = "pgnp" // 쪽 번호 위치
	CtrlIndexMark     = "idxm" // 찾아보기 표식
	CtrlBookmark      = "bokm" // 책갈피
	CtrlOverlapping   = "tcps" // 글자 겹침
	CtrlHiddenComment = "tdut" // 숨은 설명
	CtrlTable         = "tbl " // 표
	CtrlGSO           = "gso " // 그리기 개체
	CtrlEquation      = "eqed" // 수식
	CtrlFormObject    = "form" // 양식 개체

	// 필드 컨트롤 (첫 글자 '%')
	CtrlFieldHyperlink = "%hlk" // 하이퍼링크
	CtrlFieldBookmark  = "%bmk" // 책갈피 필드
	CtrlFieldDate      = "%dte" // 날짜
	CtrlFieldDocDate   = "%ddt" // 문서 날짜
	CtrlFieldPath      = "%pat" // 파일 경로
	CtrlFieldMailMerge = "%mmg" // 메일 머지
	CtrlFieldCrossRef  = "%xrf" // 상호 참조
	CtrlFieldFormula   = "%fmu" // 계산식
	CtrlFieldClickHere = "%clk" // 누름틀
	CtrlFieldSummary   = "%smr" // 문서 요약
	CtrlFieldUserInfo  = "%usr" // 사용자 정보
	CtrlFieldMemo      = "%%me" // 메모
	CtrlFieldTOC       = "%toc" // 차례

	// 개체 요소 ID (SHAPE_COMPONENT)
	ShapeIDPicture   = "$pic"
	ShapeIDRectangle = "$rec"
	ShapeIDLine      = "$lin"
	ShapeIDEllipse   = "$ell"
	ShapeIDArc       = "$arc"
	ShapeIDPolygon   = "$pol"
	ShapeIDCurve     = "$cur"
	ShapeIDContainer = "$con"
	ShapeIDOLE       = "$ole"
	ShapeIDTextArt   = "$tat"
)

// 특수 문자 코드
const (
	CharUnusable       = 0x0000 // 사용 불가
	CharSectionColumn  = 0x0002 // 구역/단 정의
	CharFieldStart     = 0x0003 // 필드 시작
	CharFieldEnd       = 0x0004 // 필드 끝
	CharTab            = 0x0009 // 탭
	CharLineBreak      = 0x000A // 줄 나눔
	CharDrawingObj     = 0x000B // 그리기 개체/표
	CharPara           = 0x000D // 문단 나눔
	CharHiddenComment  = 0x000F // 숨은 설명
	CharHeaderFooter   = 0x0010 // 머리말/꼬리말
	CharNote           = 0x0011 // 각주/미주
	CharAutoNumber     = 0x0012 // 자동 번호
	CharPageControl    = 0x0015 // 쪽 컨트롤
	CharBookmark       = 0x0016 // 책갈피/찾아보기 표식
	CharHyphen         = 0x0018 // 하이픈
	CharNBSP           = 0x001E // 묶음 빈칸
	CharFixedWidthNBSP = 0x001F // 고정폭 빈칸
)
