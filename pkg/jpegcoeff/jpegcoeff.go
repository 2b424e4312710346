// Package jpegcoeff decodes and re-encodes the quantized DCT coefficients of
// a baseline sequential JPEG file. The standard library's image/jpeg decoder
// never exposes these — it dequantizes and IDCTs straight into pixels — so
// this package is a small decoder/encoder of its own, grounded on the same
// marker grammar the stdlib decoder walks (SOI, APPn/COM, DQT, SOF0, DHT,
// DRI, SOS, EOI) and on the technique lukechampine/jsteg uses to reach into a
// forked copy of that decoder's Huffman loop: read the coefficients out as an
// intermediate representation, hand it to pkg/jpegstego for bit embedding,
// then re-run the same Huffman tables forward to re-emit entropy-coded data.
//
// Only baseline (non-progressive, non-arithmetic) sequential JPEGs with one
// scan are supported — the common case produced by every mainstream encoder.
// Restart markers are not supported; Decode returns an UnsupportedFormat
// error if a DRI segment sets a non-zero restart interval, since resyncing
// requires reinserting RSTn markers at the exact byte the original did.
package jpegcoeff

const blockSize = 64

// Block holds the 64 coefficients of one 8x8 component block, in zigzag
// scan order (index 0 is the DC coefficient), as decoded straight off the
// entropy-coded stream without dequantization.
type Block [blockSize]int32

// Component is one scan component (Y, Cb, or Cr in the common case).
type Component struct {
	ID         byte
	H, V       int // horizontal/vertical sampling factors
	QuantTable [blockSize]uint16
	QuantSel   int // selector this table was read from, reused verbatim on encode
	DCTable    int // index into Coefficients.huffTables[dcTableClass]
	ACTable    int // index into Coefficients.huffTables[acTableClass]
	BlocksWide int
	BlocksHigh int
	Blocks     []Block
}

// Coefficients is the full decoded-but-not-dequantized representation of a
// baseline JPEG, plus everything needed to re-encode it byte-faithfully
// apart from the embedded bits.
type Coefficients struct {
	Width, Height int
	Components    []Component

	quantTables [4][blockSize]uint16
	huffTables  [2][4]*huffTable // [dcTableClass/acTableClass][selector]

	restartInterval int
	app0            []byte // raw APP0 (JFIF) payload, if present, replayed verbatim on encode
}

// Component returns the component with the given id, or nil if there is
// none. This package does not decide which coefficients are usable;
// pkg/jpegstego does, by inspecting the coefficient values directly.
func (c *Coefficients) Component(id byte) *Component {
	for i := range c.Components {
		if c.Components[i].ID == id {
			return &c.Components[i]
		}
	}
	return nil
}

// Clone deep-copies Coefficients so an engine can mutate a working copy
// while leaving the caller's original intact.
func (c *Coefficients) Clone() *Coefficients {
	out := *c
	out.Components = make([]Component, len(c.Components))
	for i, comp := range c.Components {
		out.Components[i] = comp
		out.Components[i].Blocks = make([]Block, len(comp.Blocks))
		copy(out.Components[i].Blocks, comp.Blocks)
	}
	return &out
}
