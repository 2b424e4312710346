package jpegcoeff

import (
	"io"

	"nstego/pkg/stegoerr"
)

// Encode re-emits Coefficients as a baseline sequential JPEG: the same
// quantization and Huffman tables decoded from the original file, a single
// non-interleaved-or-interleaved scan matching the original sampling
// factors, and freshly Huffman-encoded entropy data built from whatever
// coefficient values are in c now (i.e. after an engine has mutated them).
func Encode(w io.Writer, c *Coefficients) error {
	if len(c.Components) == 0 {
		return stegoerr.InvalidArgument("coefficients have no components to encode")
	}

	buf := &writeBuf{}
	buf.marker(soiMarker)

	if c.app0 != nil {
		buf.marker(app0Marker)
		buf.uint16(len(c.app0) + 2)
		buf.bytes(c.app0)
	}

	writeDQT(buf, c)
	writeSOF0(buf, c)
	writeDHT(buf, c)
	if err := writeSOS(buf, c); err != nil {
		return err
	}

	buf.marker(eoiMarker)

	_, err := w.Write(buf.out)
	return err
}

type writeBuf struct {
	out []byte
}

func (b *writeBuf) marker(m byte) {
	b.out = append(b.out, markerPrefix, m)
}

func (b *writeBuf) uint16(v int) {
	b.out = append(b.out, byte(v>>8), byte(v))
}

func (b *writeBuf) byte(v byte) {
	b.out = append(b.out, v)
}

func (b *writeBuf) bytes(v []byte) {
	b.out = append(b.out, v...)
}

func writeDQT(buf *writeBuf, c *Coefficients) {
	seen := map[int]bool{}
	for _, comp := range c.Components {
		if seen[comp.QuantSel] {
			continue
		}
		seen[comp.QuantSel] = true
		buf.marker(dqtMarker)
		buf.uint16(2 + 1 + blockSize)
		buf.byte(byte(comp.QuantSel)) // precision nibble 0 (8-bit), selector in low nibble
		for _, v := range comp.QuantTable {
			buf.byte(byte(v))
		}
	}
}

func writeSOF0(buf *writeBuf, c *Coefficients) {
	buf.marker(sof0Marker)
	buf.uint16(2 + 6 + 3*len(c.Components))
	buf.byte(8) // sample precision
	buf.uint16(c.Height)
	buf.uint16(c.Width)
	buf.byte(byte(len(c.Components)))
	for _, comp := range c.Components {
		buf.byte(comp.ID)
		buf.byte(byte(comp.H<<4 | comp.V))
		buf.byte(byte(comp.QuantSel))
	}
}

func writeDHT(buf *writeBuf, c *Coefficients) {
	for class := 0; class < 2; class++ {
		for sel, h := range c.huffTables[class] {
			if h == nil {
				continue
			}
			length := 2 + 1 + maxCodeLen + len(h.values)
			buf.marker(dhtMarker)
			buf.uint16(length)
			buf.byte(byte(class<<4 | sel))
			for l := 1; l <= maxCodeLen; l++ {
				buf.byte(byte(h.counts[l]))
			}
			buf.bytes(h.values)
		}
	}
}

func writeSOS(buf *writeBuf, c *Coefficients) error {
	n := len(c.Components)
	buf.marker(sosMarker)
	buf.uint16(2 + 1 + 2*n + 3)
	buf.byte(byte(n))
	for _, comp := range c.Components {
		buf.byte(comp.ID)
		buf.byte(byte(comp.DCTable<<4 | comp.ACTable))
	}
	buf.byte(0) // start of spectral selection
	buf.byte(63)
	buf.byte(0) // successive approximation

	hMax, vMax := 1, 1
	for _, comp := range c.Components {
		if comp.H > hMax {
			hMax = comp.H
		}
		if comp.V > vMax {
			vMax = comp.V
		}
	}
	mcuWidth, mcuHeight := 8*hMax, 8*vMax
	mcusAcross := (c.Width + mcuWidth - 1) / mcuWidth
	mcusDown := (c.Height + mcuHeight - 1) / mcuHeight

	bw := newBitWriter()
	dcPred := make([]int32, n)

	for my := 0; my < mcusDown; my++ {
		for mx := 0; mx < mcusAcross; mx++ {
			for i, comp := range c.Components {
				dcTable := c.huffTables[dcTableClass][comp.DCTable]
				acTable := c.huffTables[acTableClass][comp.ACTable]
				if dcTable == nil || acTable == nil {
					return stegoerr.InvalidArgument("component references an undefined huffman table")
				}
				for v := 0; v < comp.V; v++ {
					for h := 0; h < comp.H; h++ {
						bx := mx*comp.H + h
						by := my*comp.V + v
						blk := comp.Blocks[by*comp.BlocksWide+bx]
						encodeBlock(bw, dcTable, acTable, blk, &dcPred[i])
					}
				}
			}
		}
	}
	bw.flush()
	buf.bytes(bw.bytes())
	return nil
}

func encodeBlock(bw *bitWriter, dcTable, acTable *huffTable, blk Block, dcPred *int32) {
	diff := blk[0] - *dcPred
	*dcPred = blk[0]
	size, bits := bitsForValue(diff)
	encodeHuffman(bw, dcTable, size)
	bw.writeBits(bits, uint(size))

	run := 0
	for zig := 1; zig < blockSize; zig++ {
		v := blk[zig]
		if v == 0 {
			run++
			continue
		}
		for run > 15 {
			encodeHuffman(bw, acTable, 0xF0)
			run -= 16
		}
		sz, acBits := bitsForValue(v)
		encodeHuffman(bw, acTable, byte(run<<4)|sz)
		bw.writeBits(acBits, uint(sz))
		run = 0
	}
	if run > 0 {
		encodeHuffman(bw, acTable, 0x00) // EOB
	}
}
