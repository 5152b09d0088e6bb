package hwp5

import (
	"bytes"
	"crypto/aes"
	"encoding/binary"
	"testing"
)

func distributionData() []byte {
	dist := make([]byte, distributeDataSize)
	for i := range dist {
		dist[i] = byte(i*7 + 3)
	}
	return dist
}

// encryptViewText builds a ViewText stream: the distribution record
// followed by the zero padded plaintext encrypted block by block.
func encryptViewText(t *testing.T, dist, plain []byte) []byte {
	t.Helper()
	key, err := deriveKey(dist)
	if err != nil {
		t.Fatalf("deriveKey: %v", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	padded := make([]byte, (len(plain)+aes.BlockSize-1)/aes.BlockSize*aes.BlockSize)
	copy(padded, plain)

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(TagDistributeDocData)|distributeDataSize<<20)
	buf.Write(dist)
	out := make([]byte, aes.BlockSize)
	for off := 0; off < len(padded); off += aes.BlockSize {
		block.Encrypt(out, padded[off:off+aes.BlockSize])
		buf.Write(out)
	}
	return buf.Bytes()
}

func TestDecryptViewText(t *testing.T) {
	plain := []byte("배포용 문서 본문")
	data := encryptViewText(t, distributionData(), plain)

	got, err := decryptViewText(data)
	if err != nil {
		t.Fatalf("decryptViewText failed: %v", err)
	}
	if !bytes.HasPrefix(got, plain) {
		t.Errorf("Expected plaintext prefix %q, got %q", plain, got)
	}
	if len(got)%aes.BlockSize != 0 {
		t.Errorf("Expected block aligned output, got %d bytes", len(got))
	}
}

func TestDecryptViewText_Invalid(t *testing.T) {
	valid := encryptViewText(t, distributionData(), []byte("0123456789abcdef"))

	wrongTag := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(wrongTag, uint32(TagParaText)|distributeDataSize<<20)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong tag", wrongTag},
		{"truncated distribution data", valid[:100]},
		{"misaligned body", valid[:len(valid)-3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decryptViewText(tt.data); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestDeriveKey(t *testing.T) {
	if _, err := deriveKey(make([]byte, 10)); err == nil {
		t.Error("Expected an error for short distribution data")
	}

	dist := distributionData()
	a, err := deriveKey(dist)
	if err != nil {
		t.Fatalf("deriveKey failed: %v", err)
	}
	b, _ := deriveKey(dist)
	if len(a) != aes.BlockSize || !bytes.Equal(a, b) {
		t.Errorf("Expected a stable 16 byte key, got %x / %x", a, b)
	}
}

func TestMsvcRand(t *testing.T) {
	// MSVC srand(1) 이후 rand() 값
	r := &msvcRand{state: 1}
	want := []uint32{41, 18467, 6334, 26500, 19169}
	for i, w := range want {
		if got := r.next(); got != w {
			t.Errorf("rand #%d = %d, want %d", i, got, w)
		}
	}
}
