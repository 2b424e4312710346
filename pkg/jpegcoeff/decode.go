package jpegcoeff

import (
	"io"

	"nstego/pkg/stegoerr"
)

const (
	markerPrefix = 0xFF

	soiMarker  = 0xD8
	eoiMarker  = 0xD9
	sof0Marker = 0xC0
	dhtMarker  = 0xC4
	dqtMarker  = 0xDB
	driMarker  = 0xDD
	sosMarker  = 0xDA
	app0Marker = 0xE0
	rst0Marker = 0xD0
	rst7Marker = 0xD7
)

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) byte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, stegoerr.Truncated("unexpected end of jpeg stream")
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, stegoerr.Truncated("unexpected end of jpeg stream")
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) uint16() (int, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return int(b[0])<<8 | int(b[1]), nil
}

// Decode reads a baseline sequential JPEG and returns its quantized DCT
// coefficients without dequantizing or IDCT-ing them (§4.9's carrier model).
func Decode(r io.Reader) (*Coefficients, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := &cursor{data: data}

	marker, err := expectMarker(c)
	if err != nil {
		return nil, err
	}
	if marker != soiMarker {
		return nil, stegoerr.UnsupportedFormat("jpeg stream does not start with SOI")
	}

	coeffs := &Coefficients{}
	var sofSeen bool

	for {
		marker, err := expectMarker(c)
		if err != nil {
			return nil, err
		}

		switch {
		case marker == eoiMarker:
			if !sofSeen {
				return nil, stegoerr.UnsupportedFormat("jpeg stream has no SOF marker")
			}
			return coeffs, nil

		case marker == sof0Marker:
			if err := decodeSOF0(c, coeffs); err != nil {
				return nil, err
			}
			sofSeen = true

		case marker == dqtMarker:
			if err := decodeDQT(c, coeffs); err != nil {
				return nil, err
			}

		case marker == dhtMarker:
			if err := decodeDHT(c, coeffs); err != nil {
				return nil, err
			}

		case marker == driMarker:
			n, err := c.uint16()
			if err != nil {
				return nil, err
			}
			if n != 4 {
				return nil, stegoerr.UnsupportedFormat("malformed DRI segment")
			}
			interval, err := c.uint16()
			if err != nil {
				return nil, err
			}
			coeffs.restartInterval = interval
			if interval > 0 {
				return nil, stegoerr.UnsupportedFormat("jpeg uses restart markers, which this decoder does not support")
			}

		case marker == sosMarker:
			if err := decodeSOS(c, coeffs); err != nil {
				return nil, err
			}

		case marker == app0Marker:
			n, err := c.uint16()
			if err != nil {
				return nil, err
			}
			payload, err := c.bytes(n - 2)
			if err != nil {
				return nil, err
			}
			coeffs.app0 = append([]byte{}, payload...)

		case marker >= 0xE0 && marker <= 0xEF, marker == 0xFE:
			n, err := c.uint16()
			if err != nil {
				return nil, err
			}
			if _, err := c.bytes(n - 2); err != nil {
				return nil, err
			}

		default:
			return nil, stegoerr.UnsupportedFormat("unsupported jpeg marker 0x%02X", marker)
		}
	}
}

// expectMarker reads bytes until it finds 0xFF followed by a non-zero,
// non-0xFF byte, and returns that marker code.
func expectMarker(c *cursor) (byte, error) {
	for {
		b, err := c.byte()
		if err != nil {
			return 0, err
		}
		if b != markerPrefix {
			continue
		}
		m, err := c.byte()
		if err != nil {
			return 0, err
		}
		if m == 0x00 || m == markerPrefix {
			continue
		}
		return m, nil
	}
}

func decodeSOF0(c *cursor, coeffs *Coefficients) error {
	n, err := c.uint16()
	if err != nil {
		return err
	}
	hdr, err := c.bytes(n - 2)
	if err != nil {
		return err
	}
	if len(hdr) < 6 {
		return stegoerr.UnsupportedFormat("malformed SOF0 segment")
	}
	precision := hdr[0]
	if precision != 8 {
		return stegoerr.UnsupportedFormat("only 8-bit jpeg samples are supported")
	}
	coeffs.Height = int(hdr[1])<<8 | int(hdr[2])
	coeffs.Width = int(hdr[3])<<8 | int(hdr[4])
	nComp := int(hdr[5])
	if len(hdr) != 6+3*nComp {
		return stegoerr.UnsupportedFormat("malformed SOF0 segment")
	}
	for i := 0; i < nComp; i++ {
		base := 6 + 3*i
		comp := Component{
			ID: hdr[base],
			H:  int(hdr[base+1] >> 4),
			V:  int(hdr[base+1] & 0x0F),
		}
		qSel := hdr[base+2]
		if int(qSel) >= len(coeffs.quantTables) {
			return stegoerr.UnsupportedFormat("invalid quantization table selector")
		}
		comp.QuantTable = coeffs.quantTables[qSel]
		comp.QuantSel = int(qSel)
		coeffs.Components = append(coeffs.Components, comp)
	}
	return nil
}

func decodeDQT(c *cursor, coeffs *Coefficients) error {
	n, err := c.uint16()
	if err != nil {
		return err
	}
	end := c.pos + n - 2
	for c.pos < end {
		pqTq, err := c.byte()
		if err != nil {
			return err
		}
		precision := pqTq >> 4
		sel := pqTq & 0x0F
		if int(sel) >= len(coeffs.quantTables) {
			return stegoerr.UnsupportedFormat("invalid quantization table selector")
		}
		var table [blockSize]uint16
		for i := 0; i < blockSize; i++ {
			if precision == 0 {
				b, err := c.byte()
				if err != nil {
					return err
				}
				table[i] = uint16(b)
			} else {
				v, err := c.uint16()
				if err != nil {
					return err
				}
				table[i] = uint16(v)
			}
		}
		coeffs.quantTables[sel] = table
	}
	return nil
}

func decodeDHT(c *cursor, coeffs *Coefficients) error {
	n, err := c.uint16()
	if err != nil {
		return err
	}
	end := c.pos + n - 2
	for c.pos < end {
		tcTh, err := c.byte()
		if err != nil {
			return err
		}
		class := tcTh >> 4
		sel := tcTh & 0x0F
		if class > 1 || int(sel) >= 4 {
			return stegoerr.UnsupportedFormat("invalid huffman table class/selector")
		}
		countBytes, err := c.bytes(maxCodeLen)
		if err != nil {
			return err
		}
		var counts [maxCodeLen + 1]int
		total := 0
		for i := 0; i < maxCodeLen; i++ {
			counts[i+1] = int(countBytes[i])
			total += int(countBytes[i])
		}
		values, err := c.bytes(total)
		if err != nil {
			return err
		}
		coeffs.huffTables[class][sel] = buildHuffTable(counts, append([]byte{}, values...))
	}
	return nil
}

func decodeSOS(c *cursor, coeffs *Coefficients) error {
	n, err := c.uint16()
	if err != nil {
		return err
	}
	hdr, err := c.bytes(n - 2)
	if err != nil {
		return err
	}
	if len(hdr) < 1 {
		return stegoerr.UnsupportedFormat("malformed SOS segment")
	}
	nComp := int(hdr[0])
	if len(hdr) != 1+2*nComp+3 {
		return stegoerr.UnsupportedFormat("malformed SOS segment")
	}

	type scanComp struct {
		compIndex int
		td, ta    int
	}
	scan := make([]scanComp, nComp)
	for i := 0; i < nComp; i++ {
		cs := hdr[1+2*i]
		idx := -1
		for j := range coeffs.Components {
			if coeffs.Components[j].ID == cs {
				idx = j
			}
		}
		if idx < 0 {
			return stegoerr.UnsupportedFormat("SOS references unknown component")
		}
		scan[i].compIndex = idx
		scan[i].td = int(hdr[2+2*i] >> 4)
		scan[i].ta = int(hdr[2+2*i] & 0x0F)
		coeffs.Components[idx].DCTable = scan[i].td
		coeffs.Components[idx].ACTable = scan[i].ta
	}

	hMax, vMax := 1, 1
	for _, comp := range coeffs.Components {
		if comp.H > hMax {
			hMax = comp.H
		}
		if comp.V > vMax {
			vMax = comp.V
		}
	}
	mcuWidth, mcuHeight := 8*hMax, 8*vMax
	mcusAcross := (coeffs.Width + mcuWidth - 1) / mcuWidth
	mcusDown := (coeffs.Height + mcuHeight - 1) / mcuHeight

	for ci := range coeffs.Components {
		comp := &coeffs.Components[ci]
		comp.BlocksWide = mcusAcross * comp.H
		comp.BlocksHigh = mcusDown * comp.V
		comp.Blocks = make([]Block, comp.BlocksWide*comp.BlocksHigh)
	}

	// entropy-coded segment runs from here to the next real marker.
	segStart := c.pos
	segEnd := findEntropySegmentEnd(c.data, segStart)
	br := newBitReader(c.data[segStart:segEnd])
	c.pos = segEnd

	dcPred := make([]int32, len(coeffs.Components))

	for my := 0; my < mcusDown; my++ {
		for mx := 0; mx < mcusAcross; mx++ {
			for i := 0; i < nComp; i++ {
				ci := scan[i].compIndex
				comp := &coeffs.Components[ci]
				dcTable := coeffs.huffTables[dcTableClass][scan[i].td]
				acTable := coeffs.huffTables[acTableClass][scan[i].ta]
				if dcTable == nil || acTable == nil {
					return stegoerr.UnsupportedFormat("SOS references an undefined huffman table")
				}
				for v := 0; v < comp.V; v++ {
					for h := 0; h < comp.H; h++ {
						blk, err := decodeBlock(br, dcTable, acTable, &dcPred[ci])
						if err != nil {
							return err
						}
						bx := mx*comp.H + h
						by := my*comp.V + v
						comp.Blocks[by*comp.BlocksWide+bx] = blk
					}
				}
			}
		}
	}

	return nil
}

func decodeBlock(br *bitReader, dcTable, acTable *huffTable, dcPred *int32) (Block, error) {
	var blk Block

	size, err := br.decodeHuffman(dcTable)
	if err != nil {
		return blk, err
	}
	if size > 16 {
		return blk, stegoerr.UnsupportedFormat("excessive DC coefficient size")
	}
	diff, err := br.receiveExtend(size)
	if err != nil {
		return blk, err
	}
	*dcPred += diff
	blk[0] = *dcPred

	zig := 1
	for zig < blockSize {
		rs, err := br.decodeHuffman(acTable)
		if err != nil {
			return blk, err
		}
		run := int(rs >> 4)
		sz := rs & 0x0F
		if sz == 0 {
			if run != 15 {
				break // EOB
			}
			zig += 16
			continue
		}
		zig += run
		if zig >= blockSize {
			break
		}
		ac, err := br.receiveExtend(sz)
		if err != nil {
			return blk, err
		}
		blk[zig] = ac
		zig++
	}

	return blk, nil
}

// findEntropySegmentEnd scans forward from start for the next marker that is
// not a byte-stuffed 0xFF 0x00 pair, which delimits the entropy-coded data.
func findEntropySegmentEnd(data []byte, start int) int {
	i := start
	for i < len(data)-1 {
		if data[i] == markerPrefix && data[i+1] != 0x00 {
			return i
		}
		i++
	}
	return len(data)
}
