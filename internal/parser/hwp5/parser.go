package hwp5

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
	"golang.org/x/sync/errgroup"

	"github.com/roboco-io/hwpmodel/internal/ir"
	"github.com/roboco-io/hwpmodel/internal/parser"
)

// Container decodes an HWP 5.x compound file. Streams are read from the
// OLE2 container on first use and cached, so a Container can serve
// LookupBinData calls from concurrent section builders.
type Container struct {
	path    string
	file    *os.File
	options parser.Options
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]*mscfb.File // 아직 읽지 않은 스트림
	streams map[string][]byte      // 읽은 스트림 (전체 경로)

	header *FileHeader
	tables *DocInfoTables
}

// New opens an HWP 5.x file and reads its FileHeader. Encrypted documents
// are rejected with ErrEncrypted.
func New(path string, opts parser.Options) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("HWP 파일을 열 수 없습니다: %w", err)
	}

	doc, err := mscfb.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("OLE2 문서 파싱 실패: %w", ErrNotHWP)
	}

	entries := make(map[string]*mscfb.File)
	for _, entry := range doc.File {
		entries[streamPath(entry.Path, entry.Name)] = entry
	}

	c := newContainer(entries, nil, opts)
	c.path = path
	c.file = f
	if err := c.readHeader(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func newContainer(entries map[string]*mscfb.File, streams map[string][]byte, opts parser.Options) *Container {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if entries == nil {
		entries = make(map[string]*mscfb.File)
	}
	if streams == nil {
		streams = make(map[string][]byte)
	}
	return &Container{
		options: opts,
		logger:  logger,
		entries: entries,
		streams: streams,
	}
}

func streamPath(dir []string, name string) string {
	return strings.Join(append(slices.Clone(dir), name), "/")
}

// Close releases resources.
func (c *Container) Close() error {
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// Header returns the parsed file header.
func (c *Container) Header() *FileHeader {
	return c.header
}

func (c *Container) readHeader() error {
	data, err := c.readStream(StreamFileHeader)
	if err != nil {
		return fmt.Errorf("FileHeader 스트림을 읽을 수 없습니다: %w", err)
	}

	header, err := ParseFileHeader(data)
	if err != nil {
		return err
	}
	c.header = header

	if header.IsEncrypted() {
		return ErrEncrypted
	}
	if header.Flags&FlagDRM != 0 {
		return fmt.Errorf("DRM 보호된 HWP 문서는 지원하지 않습니다: %w", ErrEncrypted)
	}
	return nil
}

// readStream returns the bytes of a stream by its full path.
func (c *Container) readStream(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.streams[path]; ok {
		return data, nil
	}
	entry, ok := c.entries[path]
	if !ok {
		return nil, fmt.Errorf("스트림을 찾을 수 없습니다: %s", path)
	}
	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("스트림 %s 읽기 실패: %w", path, err)
	}
	delete(c.entries, path)
	c.streams[path] = data
	return data, nil
}

// streamNames lists every known stream path in sorted order.
func (c *Container) streamNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.entries)+len(c.streams))
	for name := range c.entries {
		names = append(names, name)
	}
	for name := range c.streams {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SectionStreams returns the section stream paths ordered by section
// number: ViewText for distribution documents, BodyText otherwise.
func (c *Container) SectionStreams() []string {
	storage := StreamBodyText
	if c.header.IsDistributable() {
		storage = StreamViewText
	}
	type numbered struct {
		n    int
		path string
	}
	var found []numbered
	for _, name := range c.streamNames() {
		rest, ok := strings.CutPrefix(name, storage+"/Section")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		found = append(found, numbered{n, name})
	}
	slices.SortFunc(found, func(a, b numbered) int { return a.n - b.n })

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths
}

// DocInfo decodes the DocInfo stream once and returns its tables. A
// truncated DocInfo is a hard error.
func (c *Container) DocInfo() (*DocInfoTables, error) {
	if c.tables != nil {
		return c.tables, nil
	}

	data, err := c.readStream(StreamDocInfo)
	if err != nil {
		return nil, fmt.Errorf("DocInfo 스트림을 읽을 수 없습니다: %w", err)
	}
	if c.header.IsCompressed() {
		data, err = DecompressStream(data)
		if err != nil {
			return nil, fmt.Errorf("DocInfo 압축 해제 실패: %w", err)
		}
	}

	tables, err := NewDocInfoDecoder(c.header.Version.Number(), c.logger).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("DocInfo 파싱 실패: %w", err)
	}
	c.tables = tables
	return tables, nil
}

// Parse implements parser.Parser. DocInfo is decoded first; sections are
// then decoded in parallel, each into its own slot. A section that fails
// keeps its error and partial content and does not stop the others.
func (c *Container) Parse() (*ir.Document, error) {
	tables, err := c.DocInfo()
	if err != nil {
		return nil, err
	}

	doc := ir.NewDocument(c.header.Version.String())
	doc.Compressed = c.header.IsCompressed()
	doc.Distribution = c.header.IsDistributable()
	doc.BinData = tables.BinDataList()
	doc.Diagnostics = tables.Diagnostics()

	diags := newDiagnostics(StreamDocInfo, c.logger)
	meta, err := c.Summary()
	if err != nil {
		c.logger.Debug("summary information unavailable", slog.Any("error", err))
	}
	doc.Metadata = meta

	names := c.SectionStreams()
	if want := int(tables.Properties().SectionCount); want != 0 && want != len(names) {
		diags.add(ir.DiagStructuralMismatch, 0, TagDocumentProperties,
			"document declares %d sections, container has %d", want, len(names))
	}

	raws := make([][]byte, len(names))
	for i, name := range names {
		if raws[i], err = c.readStream(name); err != nil {
			return nil, err
		}
	}

	sections := make([]*ir.Section, len(names))
	var g errgroup.Group
	if c.options.Workers > 0 {
		g.SetLimit(c.options.Workers)
	}
	for i, name := range names {
		g.Go(func() error {
			sections[i] = c.decodeSection(tables, i, name, raws[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, sec := range sections {
		doc.AddSection(sec)
	}
	doc.Diagnostics = append(doc.Diagnostics, diags.items()...)

	c.logger.Info("decoded document",
		slog.String("version", doc.Version),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("diagnostics", len(doc.AllDiagnostics())),
	)
	return doc, nil
}

// decodeSection turns one raw section stream into its model. Stream level
// failures are recorded on the section instead of being returned.
func (c *Container) decodeSection(tables *DocInfoTables, index int, name string, data []byte) *ir.Section {
	failed := func(err error) *ir.Section {
		sec := ir.NewSection(index)
		sec.Error = err.Error()
		sec.Diagnostics = []ir.Diagnostic{{Kind: ir.DiagUnexpectedEOF, Stream: name, Message: err.Error()}}
		return sec
	}

	var err error
	if c.header.IsDistributable() {
		if data, err = decryptViewText(data); err != nil {
			return failed(fmt.Errorf("%s 복호화 실패: %w", name, err))
		}
	}
	if c.header.IsCompressed() {
		if data, err = DecompressStream(data); err != nil {
			return failed(fmt.Errorf("%s 압축 해제 실패: %w", name, err))
		}
	}

	dec := NewSectionDecoder(tables, c.logger)
	dec.KeepLeading = c.options.KeepLeading
	recs, err := dec.Decode(name, data)

	sec := NewBuilder(tables, c, BuildOptions{
		Index:      index,
		Compressed: c.header.IsCompressed(),
		LoadImages: c.options.LoadImages,
		Logger:     c.logger,
	}).Build(recs)
	if err != nil {
		sec.Error = err.Error()
	}
	return sec
}

// LookupBinData implements ResourceLookup over the BinData storage. The
// returned bytes are stored as-is and may still be deflated.
func (c *Container) LookupBinData(id uint16) ([]byte, string, error) {
	if c.tables == nil {
		return nil, "", fmt.Errorf("DocInfo가 디코딩되지 않았습니다")
	}
	bd, ok := c.tables.BinData(int(id))
	if !ok {
		return nil, "", fmt.Errorf("BinData %d가 정의되지 않았습니다", id)
	}
	if bd.StorageKind == ir.StorageLink {
		return nil, "", fmt.Errorf("BinData %d는 외부 파일입니다", id)
	}

	candidates := []string{
		bd.ContainerPath,
		fmt.Sprintf("%s/BIN%04X", StreamBinData, bd.BinID),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := c.readStream(path); err == nil {
			return data, bd.Extension, nil
		}
	}
	// 대소문자가 다르게 저장된 경우
	for _, name := range c.streamNames() {
		for _, path := range candidates {
			if path != "" && strings.EqualFold(name, path) {
				data, err := c.readStream(name)
				return data, bd.Extension, err
			}
		}
	}
	return nil, "", fmt.Errorf("스트림을 찾을 수 없습니다: %s", bd.ContainerPath)
}

// 요약 정보 속성 이름 → Metadata 필드
var summaryFields = map[string]func(m *ir.Metadata, v string){
	"Title":        func(m *ir.Metadata, v string) { m.Title = v },
	"Subject":      func(m *ir.Metadata, v string) { m.Subject = v },
	"Author":       func(m *ir.Metadata, v string) { m.Author = v },
	"Keywords":     func(m *ir.Metadata, v string) { m.Keywords = v },
	"Comments":     func(m *ir.Metadata, v string) { m.Description = v },
	"LastAuthor":   func(m *ir.Metadata, v string) { m.Creator = v },
	"CreateTime":   func(m *ir.Metadata, v string) { m.Created = v },
	"LastSaveTime": func(m *ir.Metadata, v string) { m.Modified = v },
}

// Summary reads the HwpSummaryInformation property set. A document
// without one yields empty metadata.
func (c *Container) Summary() (ir.Metadata, error) {
	var meta ir.Metadata
	data, err := c.readStream(StreamSummaryInfo)
	if err != nil {
		return meta, nil
	}

	props := msoleps.New()
	if err := props.Reset(bytes.NewReader(data)); err != nil {
		return meta, fmt.Errorf("요약 정보 파싱 실패: %w", err)
	}
	for _, p := range props.Property {
		v := strings.TrimRight(p.String(), "\x00")
		if v == "" {
			continue
		}
		if meta.Properties == nil {
			meta.Properties = make(map[string]string)
		}
		meta.Properties[p.Name] = v
		if set, ok := summaryFields[p.Name]; ok {
			set(&meta, v)
		}
	}
	return meta, nil
}

// ExtractedFile is one BinData item written by ExtractImages.
type ExtractedFile struct {
	ID   uint16
	Path string
	Size int
}

// ExtractImages writes every embedded BinData item, inflated, into dir as
// BINxxxx.ext and returns what was written. Linked items are skipped.
func (c *Container) ExtractImages(dir string) ([]ExtractedFile, error) {
	tables, err := c.DocInfo()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("이미지 디렉토리 생성 실패: %w", err)
	}

	var out []ExtractedFile
	for _, bd := range tables.BinDataList() {
		if bd.StorageKind != ir.StorageEmbedded {
			continue
		}
		data, _, err := c.LookupBinData(bd.BinID)
		if err != nil {
			c.logger.Warn("BinData 추출 건너뜀", slog.Int("id", int(bd.ID)), slog.Any("error", err))
			continue
		}
		if bd.Compressed(c.header.IsCompressed()) {
			if data, err = DecompressStream(data); err != nil {
				c.logger.Warn("BinData 압축 해제 실패", slog.Int("id", int(bd.ID)), slog.Any("error", err))
				continue
			}
		}

		name := fmt.Sprintf("BIN%04X", bd.BinID)
		if bd.Extension != "" {
			name += "." + bd.Extension
		}
		outPath := filepath.Join(dir, name)
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return out, fmt.Errorf("이미지 저장 실패: %w", err)
		}
		out = append(out, ExtractedFile{ID: bd.ID, Path: outPath, Size: len(data)})
	}
	return out, nil
}
