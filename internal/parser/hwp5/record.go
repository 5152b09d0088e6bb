package hwp5

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// RecordHeader는 레코드 헤더
// 구조: [TagID:10비트][Level:10비트][Size:12비트], Size가 0xFFF이면 다음 4바이트가 실제 크기
type RecordHeader struct {
	TagID uint16 // 레코드 종류
	Level uint16 // 논리적 계층
	Size  uint32 // 데이터 크기
}

const extendedSize = 0xFFF

// NextRecord reads one record header at *cursor and advances the cursor
// past it (4 bytes, or 8 with the extended size escape).
func NextRecord(buf []byte, cursor *int) (RecordHeader, error) {
	off := *cursor
	if off < 0 || off+4 > len(buf) {
		return RecordHeader{}, fmt.Errorf("record header at offset %d: %w", off, ErrUnexpectedEOF)
	}
	word := binary.LittleEndian.Uint32(buf[off : off+4])
	h := RecordHeader{
		TagID: uint16(ReadBits(word, 0, 9)),
		Level: uint16(ReadBits(word, 10, 19)),
		Size:  ReadBits(word, 20, 31),
	}
	off += 4

	if h.Size == extendedSize {
		// 확장 크기: 다음 4바이트에서 실제 크기 읽기
		if off+4 > len(buf) {
			return RecordHeader{}, fmt.Errorf("extended record size at offset %d: %w", off, ErrUnexpectedEOF)
		}
		h.Size = binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
	}

	*cursor = off
	return h, nil
}

// RawRecord is a record header with its undecoded body.
type RawRecord struct {
	RecordHeader
	Offset int    // 헤더 시작 오프셋
	Data   []byte // 레코드 데이터
}

// RecordStreamReader reads records from a decompressed stream.
type RecordStreamReader struct {
	data   []byte
	offset int
}

// NewRecordStreamReader creates a new record reader from raw stream data.
func NewRecordStreamReader(data []byte) *RecordStreamReader {
	return &RecordStreamReader{data: data}
}

// Offset returns the position of the next record.
func (r *RecordStreamReader) Offset() int {
	return r.offset
}

// Next reads the next record. It returns io.EOF at a clean end of stream
// and an error wrapping ErrUnexpectedEOF when a header or body is cut short.
func (r *RecordStreamReader) Next() (*RawRecord, error) {
	if r.offset >= len(r.data) {
		return nil, io.EOF
	}

	start := r.offset
	cursor := r.offset
	h, err := NextRecord(r.data, &cursor)
	if err != nil {
		return nil, err
	}

	end := cursor + int(h.Size)
	if int(h.Size) < 0 || end > len(r.data) {
		return nil, fmt.Errorf("record %s at offset %d needs %d bytes, have %d: %w",
			TagName(h.TagID), start, h.Size, len(r.data)-cursor, ErrUnexpectedEOF)
	}
	r.offset = end

	return &RawRecord{
		RecordHeader: h,
		Offset:       start,
		Data:         r.data[cursor:end],
	}, nil
}

// ReadAll reads all records from the stream. On error the records read so
// far are returned together with the error.
func (r *RecordStreamReader) ReadAll() ([]*RawRecord, error) {
	var records []*RawRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// DecompressStream decompresses zlib/deflate-compressed stream data.
// HWP 5.x uses raw deflate (no zlib header) for stream compression.
func DecompressStream(data []byte) ([]byte, error) {
	// zlib 헤더가 있으면 먼저 시도
	if len(data) >= 2 && data[0] == 0x78 {
		reader, err := zlib.NewReader(bytes.NewReader(data))
		if err == nil {
			decompressed, err := io.ReadAll(reader)
			reader.Close()
			if err == nil {
				return decompressed, nil
			}
		}
	}

	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress (tried zlib and deflate): %w", err)
	}

	return decompressed, nil
}

var tagNames = map[uint16]string{
	TagDocumentProperties: "DOCUMENT_PROPERTIES",
	TagIDMappings:         "ID_MAPPINGS",
	TagBinData:            "BIN_DATA",
	TagFaceName:           "FACE_NAME",
	TagBorderFill:         "BORDER_FILL",
	TagCharShape:          "CHAR_SHAPE",
	TagTabDef:             "TAB_DEF",
	TagNumbering:          "NUMBERING",
	TagBullet:             "BULLET",
	TagParaShape:          "PARA_SHAPE",
	TagStyle:              "STYLE",
	TagDocData:            "DOC_DATA",
	TagDistributeDocData:  "DISTRIBUTE_DOC_DATA",
	TagCompatibleDocument: "COMPATIBLE_DOCUMENT",
	TagLayoutCompatible:   "LAYOUT_COMPATIBILITY",
	TagTrackChangeInfo:    "TRACKCHANGE",
	TagMemoShape:          "MEMO_SHAPE",
	TagForbiddenChar:      "FORBIDDEN_CHAR",
	TagTrackChange:        "TRACK_CHANGE",
	TagTrackChangeAuthor:  "TRACK_CHANGE_AUTHOR",
	TagParaHeader:         "PARA_HEADER",
	TagParaText:           "PARA_TEXT",
	TagParaCharShape:      "PARA_CHAR_SHAPE",
	TagParaLineSeg:        "PARA_LINE_SEG",
	TagParaRangeTag:       "PARA_RANGE_TAG",
	TagCtrlHeader:         "CTRL_HEADER",
	TagListHeader:         "LIST_HEADER",
	TagPageDef:            "PAGE_DEF",
	TagFootnoteShape:      "FOOTNOTE_SHAPE",
	TagPageBorderFill:     "PAGE_BORDER_FILL",
	TagShapeComponent:     "SHAPE_COMPONENT",
	TagTable:              "TABLE",
	TagShapeLine:          "SHAPE_COMPONENT_LINE",
	TagShapeRectangle:     "SHAPE_COMPONENT_RECTANGLE",
	TagShapeEllipse:       "SHAPE_COMPONENT_ELLIPSE",
	TagShapeArc:           "SHAPE_COMPONENT_ARC",
	TagShapePolygon:       "SHAPE_COMPONENT_POLYGON",
	TagShapeCurve:         "SHAPE_COMPONENT_CURVE",
	TagShapeOLE:           "SHAPE_COMPONENT_OLE",
	TagShapePicture:       "SHAPE_COMPONENT_PICTURE",
	TagShapeContainer:     "SHAPE_COMPONENT_CONTAINER",
	TagCtrlData:           "CTRL_DATA",
	TagEqEdit:             "EQEDIT",
	TagShapeTextArt:       "SHAPE_COMPONENT_TEXTART",
	TagFormObject:         "FORM_OBJECT",
	TagMemoList:           "MEMO_LIST",
	TagChartData:          "CHART_DATA",
	TagVideoData:          "VIDEO_DATA",
	TagShapeUnknown:       "SHAPE_COMPONENT_UNKNOWN",
}

// TagName returns the human-readable name for a tag ID.
func TagName(tagID uint16) string {
	if name, ok := tagNames[tagID]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%04X)", tagID)
}
