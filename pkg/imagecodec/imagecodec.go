// Package imagecodec implements §4.11's external image codec adapter: format
// detection over a registered handler list, decode to *image.RGBA, and
// encode back out, the way the teacher's getImageFromFilePath normalizes any
// source format before handing a pixel buffer to the LSB engine.
package imagecodec

import (
	"bytes"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"nstego/pkg/stegoerr"
)

// Format identifies one of the handlers below.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

// FormatInfo is returned alongside a decoded image so callers can re-encode
// in the same format or reject formats the operation doesn't support.
type FormatInfo struct {
	Format Format
}

// handler is what each registered format exposes; CanDecode sniffs a byte
// prefix without consuming the reader, mirroring the stdlib's own
// image.RegisterFormat sniffing but surfaced as an explicit list we control.
type handler struct {
	format   Format
	canDecode func([]byte) bool
	decode   func(io.Reader) (image.Image, error)
}

var handlers = []handler{
	{FormatPNG, func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) }, png.Decode},
	{FormatJPEG, func(b []byte) bool { return len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 }, jpeg.Decode},
	{FormatGIF, func(b []byte) bool { return bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")) }, gif.Decode},
	{FormatTIFF, func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("II*\x00")) || bytes.HasPrefix(b, []byte("MM\x00*"))
	}, tiff.Decode},
	{FormatWebP, func(b []byte) bool { return len(b) >= 12 && bytes.HasPrefix(b, []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")) }, webp.Decode},
}

const sniffLen = 16

// Decode walks the registered handler list, sniffing the first bytes of r to
// pick a decoder, then normalizes the result to *image.RGBA the way the
// teacher's getImageFromFilePath does via draw.Draw.
func Decode(r io.Reader) (*image.RGBA, FormatInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FormatInfo{}, err
	}

	prefix := data
	if len(prefix) > sniffLen {
		prefix = prefix[:sniffLen]
	}

	for _, h := range handlers {
		if !h.canDecode(prefix) {
			continue
		}
		img, err := h.decode(bytes.NewReader(data))
		if err != nil {
			return nil, FormatInfo{}, err
		}
		return toRGBA(img), FormatInfo{Format: h.format}, nil
	}
	return nil, FormatInfo{}, stegoerr.UnsupportedFormat("no registered codec recognized the supplied image bytes")
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// EncodeOptions carries the few per-format knobs callers need.
type EncodeOptions struct {
	PngCompressionLevel png.CompressionLevel
}

// Encode writes img back out in format. JPEG is intentionally unsupported:
// re-encoding a pixel carrier to JPEG destroys the LSBs a pixel-LSB round
// trip depends on, and the spec's recompression-survival Non-goal already
// rules this path out; only the DCT engine (pkg/jpegstego, via
// ExtractCoefficients/EncodeFromCoefficients below) touches JPEG bytes.
func Encode(img *image.RGBA, format Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: opts.PngCompressionLevel}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatGIF:
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	case FormatTIFF:
		if err := tiff.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		return nil, stegoerr.UnsupportedFormat("encoding to %s is not supported", format)
	}
	return buf.Bytes(), nil
}
