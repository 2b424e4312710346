package zwctext

import (
	"strings"
	"testing"
)

func TestEncodeDecodeBytesRoundTrip(t *testing.T) {
	data := []byte{0, 1, 42, 255, 128, 7}
	zwc := encodeBytes(data)
	if len(zwc) != 4*len(data) {
		t.Fatalf("got %d code points, want %d", len(zwc), 4*len(data))
	}
	got, err := decodeRunes(zwc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("got %v, want %v", got, data)
	}
}

func TestDecodeRunesRejectsNonMultipleOfFour(t *testing.T) {
	_, err := decodeRunes(alphabet[:3])
	if err == nil {
		t.Fatal("expected an error for a non-multiple-of-four run")
	}
}

func TestAppendedEmbedExtractRoundTrip(t *testing.T) {
	cover := "just a normal sentence."
	framed := append([]byte{1, 22, 0, 0, 0}, "a small hidden message"...)

	out := Embed(cover, framed, false)
	if !strings.HasPrefix(string(out), cover) {
		t.Fatal("appended mode should keep the cover text as a prefix")
	}

	if !HasHiddenData(out) {
		t.Fatal("expected HasHiddenData to detect the embedded run")
	}

	got, err := Extract(out)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != string(framed) {
		t.Fatalf("got %q, want %q", got, framed)
	}
}

func TestDistributedEmbedExtractRoundTrip(t *testing.T) {
	cover := "Hello, world. This is a cover sentence, with punctuation! Does it work?"
	framed := append([]byte{1, 32, 0, 0, 0}, "distributed hidden payload bytes"...)

	out := Embed(cover, framed, true)

	got, err := Extract(out)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != string(framed) {
		t.Fatalf("got %q, want %q", got, framed)
	}

	stripped := StripZWC(out)
	if stripped != cover {
		t.Fatalf("stripped text should equal the original cover; got %q, want %q", stripped, cover)
	}
}

func TestDistributedFallsBackToAppendedWithoutBreakPoints(t *testing.T) {
	cover := "nobreakpointshere"
	framed := []byte("x")

	out := Embed(cover, framed, true)
	if !strings.HasPrefix(string(out), cover) {
		t.Fatal("expected fallback to appended mode when no insertion points exist")
	}
}

func TestHasHiddenDataFalseForPlainText(t *testing.T) {
	if HasHiddenData(AsText("just some ordinary text")) {
		t.Fatal("expected no hidden data in plain text")
	}
}

func TestExtractTooShortRun(t *testing.T) {
	short := start + string(alphabet[0]) + end
	_, err := Extract(AsText(short))
	if err == nil {
		t.Fatal("expected an error for a run shorter than one header")
	}
}

func TestSentinelsMatchWireFormat(t *testing.T) {
	wantStart := string([]rune{'​', '‌', '​'})
	wantEnd := string([]rune{'‌', '​', '‌'})
	if start != wantStart {
		t.Fatalf("start sentinel = %q, want %q", start, wantStart)
	}
	if end != wantEnd {
		t.Fatalf("end sentinel = %q, want %q", end, wantEnd)
	}
}

func TestExtractSurvivesEndLookalikeInsidePayload(t *testing.T) {
	cover := "ordinary cover text."
	// craft a payload whose encoded digits happen to contain the literal
	// end-sentinel rune sequence A[1] A[0] A[1]; extraction must still
	// recover the whole thing since it bounds on the header length, not
	// a literal search for end. header declares a 2-byte body (flags=1,
	// len=2 LE); the body bytes 6 and 216 encode to digits
	// 0,0,1,0,1,0,0,0, which contains the 1,0,1 end lookalike.
	framed := []byte{1, 2, 0, 0, 0, 6, 216}

	out := Embed(cover, framed, false)
	if !strings.Contains(string(encodeBytes(framed)), end) {
		t.Fatal("expected this payload's encoding to contain an end-sentinel lookalike, test is not exercising the case it claims to")
	}

	got, err := Extract(out)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != string(framed) {
		t.Fatalf("got %v, want %v", got, framed)
	}
}

func TestCapacityHeuristic(t *testing.T) {
	cover := strings.Repeat("a", 100)
	got := CapacityHeuristic(cover)
	want := int64((100 - 26) / 4)
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestVisualizeAnnotatesSentinelsAndDigits(t *testing.T) {
	out := Embed("hi", []byte("y"), false)
	tokens := Visualize(out)

	var sawStart, sawEnd bool
	for _, tok := range tokens {
		switch tok.Name {
		case "START":
			sawStart = true
		case "END":
			sawEnd = true
		}
	}
	if !sawStart || !sawEnd {
		t.Fatal("expected both START and END sentinels to be annotated")
	}
}
