package pixelstego

import (
	"image"

	"nstego/pkg/bitstream"
	"nstego/pkg/frame"
	"nstego/pkg/stegoerr"
)

// EmbedText prepends a 4-byte little-endian length then the UTF-8 message
// (§4.6's text helper semantics) and embeds the result into img at the given
// bit depth.
func EmbedText(img *image.RGBA, message string, depth byte) error {
	header := frame.EncodeImageHeader(uint32(len(message)))
	payload := append(header, []byte(message)...)

	needed := int64(len(payload)) * 8
	if cap := Capacity(img.Bounds().Dx(), img.Bounds().Dy(), depth) * 8; needed > cap {
		return stegoerr.CapacityExceeded(needed, cap, stegoerr.DefaultCapacityRemedy)
	}

	return EmbedBits(img, 0, bitstream.BytesToBits(payload), depth)
}

// ExtractText reads the 32-bit length header, then reads 8*length more bits
// starting at bit offset 32, and returns the decoded UTF-8 message.
func ExtractText(img *image.RGBA, depth byte) (string, error) {
	headerBits, err := ExtractBits(img, 0, frame.ImageHeaderSize*8, depth)
	if err != nil {
		return "", err
	}
	headerBytes := bitstream.BitsToBytes(headerBits)
	length := frame.DecodeImageHeader(headerBytes)

	bodyBits, err := ExtractBits(img, frame.ImageHeaderSize*8, int64(length)*8, depth)
	if err != nil {
		return "", err
	}
	return string(bitstream.BitsToBytes(bodyBits)), nil
}
