package hwp5

import (
	"crypto/aes"
	"encoding/binary"
	"fmt"
)

// 배포용 문서 데이터 크기 (HWPTAG_DISTRIBUTE_DOC_DATA)
const distributeDataSize = 256

// decryptViewText strips the distribution record at the head of a
// ViewText/SectionN stream and decrypts the rest with the AES-128 key it
// carries. The result is still deflated when the document is compressed.
func decryptViewText(data []byte) ([]byte, error) {
	cursor := 0
	h, err := NextRecord(data, &cursor)
	if err != nil {
		return nil, fmt.Errorf("distribution header: %w", err)
	}
	if h.TagID != TagDistributeDocData || h.Size != distributeDataSize {
		return nil, fmt.Errorf("invalid distribution record (tag=0x%x, size=%d)", h.TagID, h.Size)
	}
	if cursor+distributeDataSize > len(data) {
		return nil, fmt.Errorf("distribution data: %w", ErrUnexpectedEOF)
	}

	key, err := deriveKey(data[cursor : cursor+distributeDataSize])
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	body := data[cursor+distributeDataSize:]
	if len(body)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("encrypted body of %d bytes is not block aligned", len(body))
	}
	// ECB: 16바이트 블록 단위 복호화
	out := make([]byte, len(body))
	for off := 0; off < len(body); off += aes.BlockSize {
		block.Decrypt(out[off:off+aes.BlockSize], body[off:off+aes.BlockSize])
	}
	return out, nil
}

// deriveKey recovers the AES key: the first four bytes seed an MSVC rand()
// sequence that is XORed over the data, and the key is the 16 bytes at
// (seed & 0x0F) + 4.
func deriveKey(distData []byte) ([]byte, error) {
	if len(distData) != distributeDataSize {
		return nil, fmt.Errorf("invalid distribution data size %d", len(distData))
	}

	seed := binary.LittleEndian.Uint32(distData[0:4])
	rng := &msvcRand{state: seed}
	mask := make([]byte, distributeDataSize)
	for i := 0; i < len(mask); {
		val := byte(rng.next() & 0xFF)
		count := int(rng.next()&0x0F) + 1
		for j := 0; j < count && i < len(mask); j++ {
			mask[i] = val
			i++
		}
	}

	offset := int(seed&0x0F) + 4
	key := make([]byte, aes.BlockSize)
	for i := range key {
		key[i] = distData[offset+i] ^ mask[offset+i]
	}
	return key, nil
}

// msvcRand is the linear congruential generator of MSVC rand().
type msvcRand struct {
	state uint32
}

func (r *msvcRand) next() uint32 {
	r.state = r.state*214013 + 2531011
	return (r.state >> 16) & 0x7FFF
}
