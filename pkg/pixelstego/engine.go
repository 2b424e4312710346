// Package pixelstego implements C6: the pixel LSB engine. It embeds a bit
// stream into the low bits of the R, G, B channels of an RGBA pixel buffer
// at a configurable bit depth (1-4), always skipping the alpha channel — the
// hard invariant of §4.6 and the Design Note of §9. The mechanics are the
// teacher's (nsteg/pkg/image.Encoder/Decoder), generalized: the teacher
// additionally reserved the first pixel to self-describe its own bit depth
// and only wrote to fully-opaque pixels; this spec instead takes the depth
// as an explicit parameter and writes to every pixel uniformly, since
// capacity (§3) is defined over the whole channel count, not just opaque
// ones.
package pixelstego

import (
	"image"

	"nstego/pkg/stegoerr"
)

// MinBitDepth and MaxBitDepth bound the configurable bit depth of §4.6.
const (
	MinBitDepth = 1
	MaxBitDepth = 4
)

func validateDepth(depth byte) error {
	if depth < MinBitDepth || depth > MaxBitDepth {
		return stegoerr.InvalidArgument("bit depth must be between %d and %d, got %d", MinBitDepth, MaxBitDepth, depth)
	}
	return nil
}

// Capacity returns floor(width*height*3*depth/8) bytes, the pixel LSB
// capacity of §3.
func Capacity(width, height int, depth byte) int64 {
	return int64(width) * int64(height) * 3 * int64(depth) / 8
}

// channelPixIndex maps a 0-based "visited channel number" (counting only R,
// G, B bytes, in order, across all pixels) to its index in img.Pix.
func channelPixIndex(n int) int {
	return (n/3)*4 + n%3
}

// bitCursor walks the R/G/B channel stream of an RGBA buffer one bit at a
// time, at a fixed depth, skipping alpha unconditionally. It is the shared
// mechanism behind both embedding and extraction, and behind the mandatory
// bit-offset parameter the text helper's extractor exposes (§4.6): seeking
// to an offset is just constructing a cursor with that many bits already
// consumed.
type bitCursor struct {
	pix        []byte
	depth      byte
	channelNum int
	bitInChan  byte
}

func newBitCursor(img *image.RGBA, depth byte) *bitCursor {
	return &bitCursor{pix: img.Pix, depth: depth}
}

// seekBits advances the cursor by n bits without reading or writing them.
func (c *bitCursor) seekBits(n int64) {
	total := int64(c.channelNum)*int64(c.depth) + int64(c.bitInChan) + n
	c.channelNum = int(total / int64(c.depth))
	c.bitInChan = byte(total % int64(c.depth))
}

func (c *bitCursor) atEnd() bool {
	return channelPixIndex(c.channelNum) >= len(c.pix)
}

func (c *bitCursor) advanceBit() {
	c.bitInChan++
	if c.bitInChan == c.depth {
		c.bitInChan = 0
		c.channelNum++
	}
}

func (c *bitCursor) writeBit(b byte) {
	idx := channelPixIndex(c.channelNum)
	mask := byte(1) << c.bitInChan
	if b&1 == 1 {
		c.pix[idx] |= mask
	} else {
		c.pix[idx] &^= mask
	}
	c.advanceBit()
}

func (c *bitCursor) readBit() byte {
	idx := channelPixIndex(c.channelNum)
	mask := byte(1) << c.bitInChan
	b := byte(0)
	if c.pix[idx]&mask != 0 {
		b = 1
	}
	c.advanceBit()
	return b
}

// EmbedBits writes the given 0/1 bits (LSB-first per byte, as produced by
// bitstream.BytesToBits) into img starting at bitOffset, overwriting only
// the low `depth` bits of each visited R/G/B channel byte (mask 0xFF<<depth
// preserves the rest, per §4.6).
func EmbedBits(img *image.RGBA, bitOffset int64, bits []byte, depth byte) error {
	if err := validateDepth(depth); err != nil {
		return err
	}
	cursor := newBitCursor(img, depth)
	cursor.seekBits(bitOffset)

	for _, b := range bits {
		if cursor.atEnd() {
			return stegoerr.CapacityExceeded(bitOffset+int64(len(bits)), bitOffset+capacityBitsConsumed(cursor), stegoerr.DefaultCapacityRemedy)
		}
		cursor.writeBit(b)
	}
	return nil
}

// ExtractBits reads n bits starting at bitOffset, LSB-first per byte, the
// inverse of EmbedBits.
func ExtractBits(img *image.RGBA, bitOffset int64, n int64, depth byte) ([]byte, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	cursor := newBitCursor(img, depth)
	cursor.seekBits(bitOffset)

	out := make([]byte, n)
	for i := int64(0); i < n; i++ {
		if cursor.atEnd() {
			return nil, stegoerr.Truncated("carrier exhausted after %d of %d requested bits", i, n)
		}
		out[i] = cursor.readBit()
	}
	return out, nil
}

func capacityBitsConsumed(c *bitCursor) int64 {
	return int64(c.channelNum)*int64(c.depth) + int64(c.bitInChan)
}
