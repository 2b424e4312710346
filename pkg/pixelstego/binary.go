package pixelstego

import (
	"image"

	"nstego/pkg/bitstream"
	"nstego/pkg/stegoerr"
)

// EmbedData embeds raw bytes with no internal header — the caller must
// remember the length to extract it later (§4.6's binary helper semantics).
func EmbedData(img *image.RGBA, data []byte, depth byte) error {
	needed := int64(len(data)) * 8
	if cap := Capacity(img.Bounds().Dx(), img.Bounds().Dy(), depth) * 8; needed > cap {
		return stegoerr.CapacityExceeded(needed, cap, stegoerr.DefaultCapacityRemedy)
	}
	return EmbedBits(img, 0, bitstream.BytesToBits(data), depth)
}

// ExtractData reads exactly length bytes' worth of bits, starting at the
// beginning of the channel stream, the inverse of EmbedData.
func ExtractData(img *image.RGBA, length int, depth byte) ([]byte, error) {
	bits, err := ExtractBits(img, 0, int64(length)*8, depth)
	if err != nil {
		return nil, err
	}
	return bitstream.BitsToBytes(bits), nil
}
