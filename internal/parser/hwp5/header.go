package hwp5

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FileHeader는 HWP 5.x 파일 헤더 구조체
// 참조: HWP 5.0 명세서 2.1 파일 인식 정보
type FileHeader struct {
	Signature      [32]byte // 파일 시그니처 "HWP Document File"
	Version        Version  // 파일 버전
	Flags          uint32   // 속성 플래그
	License        uint32   // 라이선스 정보 (CCL, 복제 제한)
	EncryptVersion uint32   // 암호 버전
}

// Version은 HWP 파일 버전 (예: 5.0.3.0)
type Version struct {
	Major    uint8
	Minor    uint8
	Build    uint8
	Revision uint8
}

// String returns version string like "5.0.3.0"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Number returns the version as the decimal used for field gating,
// e.g. 5.0.2.9 -> 5029.
func (v Version) Number() uint32 {
	return uint32(v.Major)*1000 + uint32(v.Minor)*100 + uint32(v.Build)*10 + uint32(v.Revision)
}

// VersionFromNumber is the inverse of Version.Number for single-digit parts.
func VersionFromNumber(n uint32) Version {
	return Version{
		Major:    uint8(n / 1000),
		Minor:    uint8(n / 100 % 10),
		Build:    uint8(n / 10 % 10),
		Revision: uint8(n % 10),
	}
}

// ParseFileHeader parses the FileHeader from raw bytes.
func ParseFileHeader(data []byte) (*FileHeader, error) {
	if len(data) < FileHeaderSize {
		return nil, fmt.Errorf("file header too small: %d bytes: %w", len(data), ErrNotHWP)
	}

	h := &FileHeader{}

	// 시그니처 (32 bytes)
	copy(h.Signature[:], data[0:32])

	// 시그니처 검증
	sigStr := string(bytes.TrimRight(h.Signature[:], "\x00"))
	if sigStr != Signature {
		return nil, fmt.Errorf("invalid HWP signature %q: %w", sigStr, ErrNotHWP)
	}

	// 버전 (4 bytes, little-endian)
	// 포맷: [Revision][Build][Minor][Major]
	h.Version.Revision = data[32]
	h.Version.Build = data[33]
	h.Version.Minor = data[34]
	h.Version.Major = data[35]

	// 속성 플래그 (4 bytes, little-endian)
	h.Flags = binary.LittleEndian.Uint32(data[36:40])

	h.License = binary.LittleEndian.Uint32(data[40:44])
	h.EncryptVersion = binary.LittleEndian.Uint32(data[44:48])

	return h, nil
}

// IsCompressed returns true if the document is compressed.
func (h *FileHeader) IsCompressed() bool {
	return h.Flags&FlagCompressed != 0
}

// IsEncrypted returns true if the document is encrypted.
func (h *FileHeader) IsEncrypted() bool {
	return h.Flags&FlagEncrypted != 0
}

// IsDistributable returns true if this is a distribution document.
func (h *FileHeader) IsDistributable() bool {
	return h.Flags&FlagDistributable != 0
}

// FlagNames lists the names of the set flags, in bit order.
func (h *FileHeader) FlagNames() []string {
	var names []string
	for _, f := range flagNames {
		if h.Flags&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

var flagNames = []struct {
	flag uint32
	name string
}{
	{FlagCompressed, "compressed"},
	{FlagEncrypted, "encrypted"},
	{FlagDistributable, "distribution"},
	{FlagScript, "script"},
	{FlagDRM, "drm"},
	{FlagXMLTemplate, "xml_template"},
	{FlagHistory, "history"},
	{FlagSignature, "signature"},
	{FlagCertEncrypt, "cert_encrypt"},
	{FlagSignatureReserv, "signature_reserved"},
	{FlagCertDRM, "cert_drm"},
	{FlagCCL, "ccl"},
	{FlagMobile, "mobile"},
}

