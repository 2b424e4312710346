package frame

import "encoding/binary"

// ImageHeaderSize is the 4-byte little-endian length header the pixel LSB
// text helper prepends ahead of the UTF-8 message (§3, §4.6).
const ImageHeaderSize = 4

func EncodeImageHeader(length uint32) []byte {
	out := make([]byte, ImageHeaderSize)
	binary.LittleEndian.PutUint32(out, length)
	return out
}

func DecodeImageHeader(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[:ImageHeaderSize])
}
