package jpegcoeff

import (
	"bytes"
	"testing"
)

// buildTestCoefficients constructs a single-component, single-block
// Coefficients value with hand-built canonical Huffman tables, small enough
// to verify the encode/decode pair agree without needing a real JPEG file.
func buildTestCoefficients() *Coefficients {
	dc := buildHuffTable([maxCodeLen + 1]int{1: 1}, []byte{4})
	ac := buildHuffTable([maxCodeLen + 1]int{1: 1, 2: 2}, []byte{0x00, 0x02, 0x03})

	c := &Coefficients{Width: 8, Height: 8}
	c.huffTables[dcTableClass][0] = dc
	c.huffTables[acTableClass][0] = ac

	var quant [blockSize]uint16
	for i := range quant {
		quant[i] = 1
	}

	blk := Block{}
	blk[0] = 10
	blk[1] = 5
	blk[2] = -3

	c.Components = []Component{{
		ID: 1, H: 1, V: 1,
		QuantTable: quant, QuantSel: 0,
		DCTable: 0, ACTable: 0,
		BlocksWide: 1, BlocksHigh: 1,
		Blocks: []Block{blk},
	}}
	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	orig := buildTestCoefficients()

	var buf bytes.Buffer
	if err := Encode(&buf, orig); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Width != orig.Width || decoded.Height != orig.Height {
		t.Fatalf("dimensions changed: got %dx%d, want %dx%d", decoded.Width, decoded.Height, orig.Width, orig.Height)
	}
	if len(decoded.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(decoded.Components))
	}
	gotBlk := decoded.Components[0].Blocks[0]
	wantBlk := orig.Components[0].Blocks[0]
	if gotBlk != wantBlk {
		t.Fatalf("block mismatch: got %v, want %v", gotBlk, wantBlk)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := buildTestCoefficients()
	clone := orig.Clone()
	clone.Components[0].Blocks[0][1] = 99

	if orig.Components[0].Blocks[0][1] == 99 {
		t.Fatal("mutating the clone affected the original")
	}
}

func TestComponentLookup(t *testing.T) {
	c := buildTestCoefficients()
	if got := c.Component(1); got == nil {
		t.Fatal("expected to find component with id 1")
	}
	if got := c.Component(99); got != nil {
		t.Fatal("expected no component with id 99")
	}
}
