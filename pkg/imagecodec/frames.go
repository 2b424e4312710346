package imagecodec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"io"

	"golang.org/x/image/tiff"

	"nstego/pkg/stegoerr"
)

// Frame is one page/frame of a multi-image carrier, generalizing GIF's
// image/gif.GIF and TIFF's multi-IFD page list to a single shape C7's
// orchestrator can walk regardless of container format.
type Frame struct {
	Image    *image.RGBA
	Delay    int // GIF: hundredths of a second; unused for TIFF
	Disposal byte
}

// FrameSet is the decoded frame sequence plus the container-level metadata
// EncodeFrames needs to rebuild a bit-exact container.
type FrameSet struct {
	Format    Format
	Frames    []Frame
	LoopCount int
}

// DecodeFrames extracts every page of an animated GIF or multi-page TIFF.
func DecodeFrames(r io.Reader) (*FrameSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch {
	case len(data) >= 6 && (bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))):
		return decodeGIFFrames(data)
	case len(data) >= 8 && (bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))):
		return decodeTIFFFrames(data)
	default:
		return nil, stegoerr.UnsupportedFormat("frame decoding supports only GIF and TIFF containers")
	}
}

func decodeGIFFrames(data []byte) (*FrameSet, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	fs := &FrameSet{Format: FormatGIF, LoopCount: g.LoopCount}
	for i, img := range g.Image {
		fs.Frames = append(fs.Frames, Frame{
			Image:    toRGBA(img),
			Delay:    g.Delay[i],
			Disposal: g.Disposal[i],
		})
	}
	return fs, nil
}

// EncodeFrames rebuilds an animated GIF or multi-page TIFF from fs.
func EncodeFrames(fs *FrameSet) ([]byte, error) {
	switch fs.Format {
	case FormatGIF:
		return encodeGIFFrames(fs)
	case FormatTIFF:
		return encodeTIFFFrames(fs)
	default:
		return nil, stegoerr.UnsupportedFormat("frame encoding supports only GIF and TIFF containers")
	}
}

func encodeGIFFrames(fs *FrameSet) ([]byte, error) {
	g := &gif.GIF{LoopCount: fs.LoopCount}
	for _, f := range fs.Frames {
		palettedImg := toPaletted(f.Image)
		g.Image = append(g.Image, palettedImg)
		g.Delay = append(g.Delay, f.Delay)
		g.Disposal = append(g.Disposal, f.Disposal)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toPaletted(img *image.RGBA) *image.Paletted {
	bounds := img.Bounds()
	p := image.NewPaletted(bounds, paletteFromImage(img))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p.Set(x, y, img.At(x, y))
		}
	}
	return p
}

// paletteFromImage builds a palette from the first 256 distinct colors found
// scanning the image row by row; colors beyond those are mapped to their
// nearest palette entry by image.Paletted.Set. GIF's 8-bit-per-pixel format cannot carry arbitrary RGBA losslessly; this
// mirrors the lossy nature every GIF writer accepts, not a defect specific
// to this package.
func paletteFromImage(img *image.RGBA) color.Palette {
	seen := make(map[uint32]color.Color)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && len(seen) < 256; y++ {
		for x := bounds.Min.X; x < bounds.Max.X && len(seen) < 256; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			key := r>>8<<24 | g>>8<<16 | b>>8<<8 | a>>8
			if _, ok := seen[key]; !ok {
				seen[key] = img.At(x, y)
			}
		}
	}
	palette := make(color.Palette, 0, len(seen)+1)
	for _, c := range seen {
		palette = append(palette, c)
	}
	if len(palette) == 0 {
		palette = append(palette, color.Transparent)
	}
	return palette
}

// --- TIFF multi-page support ---
//
// x/image/tiff decodes and encodes only a single page. To support multiple
// pages this package walks the IFD chain itself for decode, and for encode
// rebases each independently-encoded page's absolute file offsets into a
// shared address space and chains their IFDs together. TIFF offsets are
// always absolute from the start of the file, which is what makes rebasing
// by a constant per-page base correct.

type tiffOrder struct {
	order binary.ByteOrder
}

func detectTIFFOrder(data []byte) (binary.ByteOrder, error) {
	switch {
	case bytes.HasPrefix(data, []byte("II*\x00")):
		return binary.LittleEndian, nil
	case bytes.HasPrefix(data, []byte("MM\x00*")):
		return binary.BigEndian, nil
	default:
		return nil, stegoerr.UnsupportedFormat("not a classic TIFF header")
	}
}

func decodeTIFFFrames(data []byte) (*FrameSet, error) {
	order, err := detectTIFFOrder(data)
	if err != nil {
		return nil, err
	}

	offsets, err := walkTIFFIFDChain(data, order)
	if err != nil {
		return nil, err
	}

	fs := &FrameSet{Format: FormatTIFF}
	for _, off := range offsets {
		page := append([]byte{}, data...)
		order.PutUint32(page[4:8], uint32(off))
		img, err := tiff.Decode(bytes.NewReader(page))
		if err != nil {
			return nil, err
		}
		fs.Frames = append(fs.Frames, Frame{Image: toRGBA(img)})
	}
	return fs, nil
}

// walkTIFFIFDChain returns the file offset of every IFD in the header's
// next-IFD linked list.
func walkTIFFIFDChain(data []byte, order binary.ByteOrder) ([]uint32, error) {
	if len(data) < 8 {
		return nil, stegoerr.Truncated("TIFF header shorter than 8 bytes")
	}
	var offsets []uint32
	next := order.Uint32(data[4:8])
	for next != 0 {
		offsets = append(offsets, next)
		if int(next)+2 > len(data) {
			return nil, stegoerr.Truncated("IFD offset %d beyond end of file", next)
		}
		count := int(order.Uint16(data[next : next+2]))
		entriesEnd := int(next) + 2 + count*12
		if entriesEnd+4 > len(data) {
			return nil, stegoerr.Truncated("IFD at %d runs past end of file", next)
		}
		next = order.Uint32(data[entriesEnd : entriesEnd+4])
	}
	return offsets, nil
}

// tiffTypeSize returns the byte size of one value of the given TIFF field
// type (TIFF 6.0 §2, types 1-12 plus the handful the baseline spec defines).
func tiffTypeSize(typ uint16) int {
	switch typ {
	case 1, 2, 6, 7: // BYTE, ASCII, SBYTE, UNDEFINED
		return 1
	case 3, 8: // SHORT, SSHORT
		return 2
	case 4, 9, 11: // LONG, SLONG, FLOAT
		return 4
	case 5, 10, 12: // RATIONAL, SRATIONAL, DOUBLE
		return 8
	default:
		return 4
	}
}

// offsetBearingTag reports whether a tag's value is itself an absolute file
// offset to external data, beyond the generic "doesn't fit in 4 bytes" rule.
func offsetBearingTag(tag uint16) bool {
	switch tag {
	case 273, 288, 324, 519: // StripOffsets, FreeOffsets, TileOffsets, JPEGQTables-family
		return true
	default:
		return false
	}
}

// rebaseIFD walks one page's IFD at localOffset within page (a standalone
// single-page TIFF byte slice) and adds base to every absolute offset it
// finds, so the page can be relocated to start at file position base within
// a larger combined file. It returns the offset of the IFD's 4-byte "next"
// field, so the caller can chain pages together.
func rebaseIFD(page []byte, order binary.ByteOrder, localOffset, base uint32) (nextFieldOffset uint32, err error) {
	if int(localOffset)+2 > len(page) {
		return 0, stegoerr.Truncated("IFD offset out of range")
	}
	count := int(order.Uint16(page[localOffset : localOffset+2]))
	entryBase := int(localOffset) + 2

	for i := 0; i < count; i++ {
		entryOff := entryBase + i*12
		tag := order.Uint16(page[entryOff : entryOff+2])
		typ := order.Uint16(page[entryOff+2 : entryOff+4])
		cnt := order.Uint32(page[entryOff+4 : entryOff+8])
		valOff := entryOff + 8
		byteLen := tiffTypeSize(typ) * int(cnt)

		if byteLen > 4 {
			dataPtr := order.Uint32(page[valOff : valOff+4])
			order.PutUint32(page[valOff:valOff+4], dataPtr+base)
			if offsetBearingTag(tag) {
				rebaseOffsetArray(page, order, dataPtr+base, int(cnt), tiffTypeSize(typ), base)
			}
		} else if offsetBearingTag(tag) {
			v := order.Uint32(page[valOff : valOff+4])
			order.PutUint32(page[valOff:valOff+4], v+base)
		}
	}

	return uint32(entryBase + count*12), nil
}

func rebaseOffsetArray(page []byte, order binary.ByteOrder, start uint32, count, elemSize int, base uint32) {
	for i := 0; i < count && elemSize == 4; i++ {
		off := int(start) + i*elemSize
		if off+4 > len(page) {
			return
		}
		v := order.Uint32(page[off : off+4])
		order.PutUint32(page[off:off+4], v+base)
	}
}

// encodeTIFFFrames encodes each frame independently via x/image/tiff, then
// relocates every page's address space to its final offset in the combined
// file and chains the IFDs together via the header/next-IFD pointers.
func encodeTIFFFrames(fs *FrameSet) ([]byte, error) {
	if len(fs.Frames) == 0 {
		return nil, stegoerr.InvalidArgument("cannot encode a TIFF with zero frames")
	}

	var pages [][]byte
	for _, f := range fs.Frames {
		var buf bytes.Buffer
		if err := tiff.Encode(&buf, f.Image, nil); err != nil {
			return nil, err
		}
		pages = append(pages, buf.Bytes())
	}

	order, err := detectTIFFOrder(pages[0])
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(pages[0][:8]) // header, first-IFD offset patched below

	pageBase := make([]uint32, len(pages))
	for i, p := range pages {
		pageBase[i] = uint32(out.Len())
		out.Write(p[8:])
	}

	// rebase each page's own addressable region (everything after its
	// 8-byte header) by its position in the combined file.
	combined := out.Bytes()
	firstIFD := order.Uint32(pages[0][4:8])

	for i, p := range pages {
		localIFD := order.Uint32(p[4:8])
		base := pageBase[i] - 8 // pages[i][8:] landed at combined offset pageBase[i]
		nextField, err := rebaseIFD(combined, order, localIFD+base, base)
		if err != nil {
			return nil, err
		}
		var nextIFDAbs uint32
		if i+1 < len(pages) {
			nextLocalIFD := order.Uint32(pages[i+1][4:8])
			nextIFDAbs = nextLocalIFD + (pageBase[i+1] - 8)
		}
		order.PutUint32(combined[nextField:nextField+4], nextIFDAbs)
	}

	order.PutUint32(combined[4:8], firstIFD+(pageBase[0]-8))
	return combined, nil
}
