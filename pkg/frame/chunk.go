package frame

import (
	"encoding/binary"

	"nstego/pkg/stegoerr"
)

// ChunkHeaderSize is the 12-byte multi-frame split-mode chunk header of §3.
const ChunkHeaderSize = 12

// ChunkHeader describes one piece of a framed payload split across several
// carrier frames (C7, §4.7).
type ChunkHeader struct {
	ChunkIndex  uint32
	TotalChunks uint32
	ChunkSize   uint32
}

func (h ChunkHeader) Encode() []byte {
	out := make([]byte, ChunkHeaderSize)
	binary.LittleEndian.PutUint32(out[0:4], h.ChunkIndex)
	binary.LittleEndian.PutUint32(out[4:8], h.TotalChunks)
	binary.LittleEndian.PutUint32(out[8:12], h.ChunkSize)
	return out
}

func DecodeChunkHeader(b []byte) (ChunkHeader, error) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, stegoerr.Truncated("chunk header requires %d bytes, got %d", ChunkHeaderSize, len(b))
	}
	return ChunkHeader{
		ChunkIndex:  binary.LittleEndian.Uint32(b[0:4]),
		TotalChunks: binary.LittleEndian.Uint32(b[4:8]),
		ChunkSize:   binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// PlausibleChunkHeader implements the §4.7 probe predicate used for
// mode-detection on read: chunk_size <= 1,000,000, total_chunks < 10,000,
// and chunk_index < total_chunks.
func PlausibleChunkHeader(h ChunkHeader) bool {
	return h.ChunkSize > 0 &&
		h.ChunkSize <= 1_000_000 &&
		h.TotalChunks > 0 &&
		h.TotalChunks < 10_000 &&
		h.ChunkIndex < h.TotalChunks
}
