package jpegstego

import (
	"testing"

	"nstego/pkg/jpegcoeff"
)

// synthCoefficients builds components with a mix of usable and unusable AC
// coefficients, deterministically, without needing a real JPEG file.
func synthCoefficients(withChroma bool) *jpegcoeff.Coefficients {
	c := &jpegcoeff.Coefficients{Width: 16, Height: 16}

	makeComp := func(id byte, blockCount int, seed int32) jpegcoeff.Component {
		blocks := make([]jpegcoeff.Block, blockCount)
		for b := range blocks {
			for i := 1; i < 64; i++ {
				// cycle through a range that includes -1, 0, 1 (unusable)
				// and other values (usable), deterministically.
				blocks[b][i] = int32((i+b)%7) - 3 + seed
			}
		}
		return jpegcoeff.Component{ID: id, H: 1, V: 1, BlocksWide: blockCount, BlocksHigh: 1, Blocks: blocks}
	}

	comps := []jpegcoeff.Component{makeComp(1, 4, 0)}
	if withChroma {
		comps = append(comps, makeComp(2, 4, 10), makeComp(3, 4, 20))
	}
	c.Components = comps
	return c
}

func TestCapacityCountsOnlyUsableCoefficients(t *testing.T) {
	c := synthCoefficients(false)
	cap := Capacity(c, false)
	if cap <= 0 {
		t.Fatalf("expected positive capacity, got %d", cap)
	}

	var manual int64
	for _, comp := range c.Components {
		for _, blk := range comp.Blocks {
			for i := 1; i < 64; i++ {
				if blk[i] != -1 && blk[i] != 0 && blk[i] != 1 {
					manual++
				}
			}
		}
	}
	if cap != manual {
		t.Fatalf("got capacity %d, want %d", cap, manual)
	}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	c := synthCoefficients(true)
	n := Capacity(c, true)
	if n < 16 {
		t.Fatalf("test carrier too small: capacity %d", n)
	}

	bits := make([]byte, 16)
	for i := range bits {
		bits[i] = byte(i % 2)
	}

	if err := EmbedBits(c, bits, true); err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractBits(c, int64(len(bits)), true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for i := range bits {
		if got[i] != bits[i] {
			t.Fatalf("bit %d: got %d, want %d", i, got[i], bits[i])
		}
	}
}

func TestEmbedPreservesUsableSet(t *testing.T) {
	c := synthCoefficients(false)
	before := Capacity(c, false)

	bits := make([]byte, before)
	for i := range bits {
		bits[i] = byte((i + 1) % 2)
	}
	if err := EmbedBits(c, bits, false); err != nil {
		t.Fatalf("embed: %v", err)
	}

	after := Capacity(c, false)
	if before != after {
		t.Fatalf("usable coefficient count changed: before %d, after %d", before, after)
	}
}

func TestEmbedCapacityExceeded(t *testing.T) {
	c := synthCoefficients(false)
	n := Capacity(c, false)

	bits := make([]byte, n+100)
	err := EmbedBits(c, bits, false)
	if err == nil {
		t.Fatal("expected a capacity error")
	}
}

func TestChromaToggleChangesCapacity(t *testing.T) {
	c := synthCoefficients(true)
	lumaOnly := Capacity(c, false)
	withChroma := Capacity(c, true)
	if withChroma <= lumaOnly {
		t.Fatalf("expected chroma to add capacity: luma-only %d, with-chroma %d", lumaOnly, withChroma)
	}
}
