package hwp5

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roboco-io/hwpmodel/internal/ir"
	"github.com/roboco-io/hwpmodel/internal/parser"
)

func fileHeaderBytes(version uint32, flags uint32) []byte {
	data := make([]byte, FileHeaderSize)
	copy(data, Signature)
	v := VersionFromNumber(version)
	data[32], data[33], data[34], data[35] = v.Revision, v.Build, v.Minor, v.Major
	data[36] = byte(flags)
	data[37] = byte(flags >> 8)
	return data
}

func quietOptions() parser.Options {
	opts := parser.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

// openStreams builds a Container over in-memory streams, as New does for
// an OLE2 file.
func openStreams(t *testing.T, flags uint32, streams map[string][]byte, opts parser.Options) (*Container, error) {
	t.Helper()
	streams[StreamFileHeader] = fileHeaderBytes(5030, flags)
	c := newContainer(nil, streams, opts)
	return c, c.readHeader()
}

func sectionWith(text string) []byte {
	b := &recordBuilder{}
	addPara(b, 0, text)
	return b.bytes()
}

func TestContainer_ParseCompressed(t *testing.T) {
	streams := map[string][]byte{
		StreamDocInfo:       deflate(t, docInfoFixture(5030, nil)),
		"BodyText/Section0": deflate(t, sectionWith("첫 구역")),
		"BodyText/Section1": deflate(t, sectionWith("둘째 구역")),
	}
	c, err := openStreams(t, FlagCompressed, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}

	doc, err := c.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Version != "5.0.3.0" || !doc.Compressed || doc.Distribution {
		t.Errorf("Unexpected document header %s compressed=%v distribution=%v", doc.Version, doc.Compressed, doc.Distribution)
	}
	if len(doc.Sections) != 2 || doc.Sections[1].Index != 1 {
		t.Fatalf("Expected 2 sections in order, got %d", len(doc.Sections))
	}
	if got := doc.Text(); got != "첫 구역\n둘째 구역\n" {
		t.Errorf("Unexpected document text %q", got)
	}

	// DocInfo는 구역 1개를 선언
	var mismatches []ir.Diagnostic
	for _, d := range doc.Diagnostics {
		if d.Kind == ir.DiagStructuralMismatch {
			mismatches = append(mismatches, d)
		}
	}
	if len(mismatches) != 1 || mismatches[0].Stream != StreamDocInfo {
		t.Errorf("Expected one section count mismatch on DocInfo, got %v", mismatches)
	}
}

func TestContainer_SectionStreamOrder(t *testing.T) {
	streams := map[string][]byte{
		"BodyText/Section10": nil,
		"BodyText/Section2":  nil,
		"BodyText/Section0":  nil,
		"BodyText/SectionX":  nil,
		"ViewText/Section1":  nil,
	}
	c, err := openStreams(t, 0, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	want := []string{"BodyText/Section0", "BodyText/Section2", "BodyText/Section10"}
	if diff := cmp.Diff(want, c.SectionStreams()); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_Distribution(t *testing.T) {
	view := encryptViewText(t, distributionData(), deflate(t, sectionWith("배포 본문")))
	streams := map[string][]byte{
		StreamDocInfo:       deflate(t, docInfoFixture(5030, nil)),
		"BodyText/Section0": deflate(t, sectionWith("가짜 본문")),
		"ViewText/Section0": view,
	}
	c, err := openStreams(t, FlagCompressed|FlagDistributable, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}

	doc, err := c.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.Distribution {
		t.Error("Expected distribution flag")
	}
	if got := doc.Text(); got != "배포 본문\n" {
		t.Errorf("Expected ViewText content, got %q", got)
	}
}

func TestContainer_FailingSectionKept(t *testing.T) {
	truncated := append(sectionWith("온전"), 0x42, 0x00)
	streams := map[string][]byte{
		StreamDocInfo:       docInfoFixture(5030, nil),
		"BodyText/Section0": truncated,
		"BodyText/Section1": sectionWith("다음"),
	}
	c, err := openStreams(t, 0, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}

	doc, err := c.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	first := doc.Sections[0]
	if first.Error == "" {
		t.Error("Expected the truncated section to keep its error")
	}
	if ps := first.Paragraphs(); len(ps) != 1 || ps[0].Text != "온전" {
		t.Errorf("Expected partial content to survive, got %v", ps)
	}
	if doc.Sections[1].Error != "" || doc.Sections[1].Paragraphs()[0].Text != "다음" {
		t.Errorf("Expected the next section to decode, got %+v", doc.Sections[1])
	}
}

func TestContainer_UndecompressableSection(t *testing.T) {
	streams := map[string][]byte{
		StreamDocInfo:       deflate(t, docInfoFixture(5030, nil)),
		"BodyText/Section0": {0xFF, 0xFF, 0xFF},
	}
	c, err := openStreams(t, FlagCompressed, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	doc, err := c.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sec := doc.Sections[0]
	if sec.Error == "" || len(sec.Blocks) != 0 {
		t.Errorf("Expected an empty section with an error, got %+v", sec)
	}
	if len(sec.Diagnostics) != 1 || sec.Diagnostics[0].Stream != "BodyText/Section0" {
		t.Errorf("Expected one diagnostic on the section stream, got %v", sec.Diagnostics)
	}
}

func TestContainer_TruncatedDocInfo(t *testing.T) {
	info := docInfoFixture(5030, nil)
	streams := map[string][]byte{
		StreamDocInfo:       info[:len(info)-5],
		"BodyText/Section0": sectionWith("본문"),
	}
	c, err := openStreams(t, 0, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	if _, err := c.Parse(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestContainer_Encrypted(t *testing.T) {
	for _, flags := range []uint32{FlagEncrypted, FlagDRM | FlagCompressed} {
		_, err := openStreams(t, flags, map[string][]byte{}, quietOptions())
		if !errors.Is(err, ErrEncrypted) {
			t.Errorf("flags 0x%x: expected ErrEncrypted, got %v", flags, err)
		}
	}
}

func TestNew_NotHWP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.hwp")
	if err := os.WriteFile(path, []byte("not a compound file at all"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path, quietOptions()); !errors.Is(err, ErrNotHWP) {
		t.Errorf("Expected ErrNotHWP, got %v", err)
	}
	if _, err := New(filepath.Join(t.TempDir(), "missing.hwp"), quietOptions()); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func binDataDocInfo(b *recordBuilder) {
	b.add(TagBinData, 1, embeddedBinDataRecord(1, "png", 0))
	b.add(TagBinData, 1, embeddedBinDataRecord(2, "jpg", 0))
	b.add(TagBinData, 1, linkedBinDataRecord(`C:\그림\외부.png`))
	b.add(TagBinData, 1, embeddedBinDataRecord(4, "bmp", 0))
}

func TestContainer_LookupBinData(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	streams := map[string][]byte{
		StreamDocInfo:         docInfoFixture(5030, binDataDocInfo),
		"BinData/BIN0001.png": img,
		"BinData/bin0002.JPG": {0xFF, 0xD8},
	}
	c, err := openStreams(t, 0, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	if _, _, err := c.LookupBinData(1); err == nil {
		t.Error("Expected an error before DocInfo is decoded")
	}
	if _, err := c.DocInfo(); err != nil {
		t.Fatalf("DocInfo failed: %v", err)
	}

	data, ext, err := c.LookupBinData(1)
	if err != nil || ext != "png" || !bytes.Equal(data, img) {
		t.Errorf("Expected png item, got %v %q %v", data, ext, err)
	}
	if data, _, err := c.LookupBinData(2); err != nil || len(data) != 2 {
		t.Errorf("Expected case-insensitive match, got %v %v", data, err)
	}
	if _, _, err := c.LookupBinData(3); err == nil {
		t.Error("Expected an error for a linked item")
	}
	if _, _, err := c.LookupBinData(4); err == nil {
		t.Error("Expected an error for a missing stream")
	}
	if _, _, err := c.LookupBinData(9); err == nil {
		t.Error("Expected an error for an undeclared item")
	}
}

func TestContainer_ExtractImages(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	streams := map[string][]byte{
		StreamDocInfo:         docInfoFixture(5030, binDataDocInfo),
		"BinData/BIN0001.png": img,
	}
	c, err := openStreams(t, 0, streams, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "images")
	files, err := c.ExtractImages(dir)
	if err != nil {
		t.Fatalf("ExtractImages failed: %v", err)
	}
	if len(files) != 1 || files[0].ID != 1 || files[0].Size != len(img) {
		t.Fatalf("Expected one extracted file, got %+v", files)
	}
	if filepath.Base(files[0].Path) != "BIN0001.png" {
		t.Errorf("Expected BIN0001.png, got %s", files[0].Path)
	}
	got, err := os.ReadFile(files[0].Path)
	if err != nil || !bytes.Equal(got, img) {
		t.Errorf("Unexpected file content %v (%v)", got, err)
	}
}

func TestContainer_SummaryMissing(t *testing.T) {
	c, err := openStreams(t, 0, map[string][]byte{}, quietOptions())
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	meta, err := c.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if meta.Title != "" || meta.Properties != nil {
		t.Errorf("Expected empty metadata, got %+v", meta)
	}
}
