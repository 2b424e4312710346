package pixelstego

import (
	"image"
	"strings"
	"testing"

	"nstego/pkg/config"
	"nstego/pkg/model"
)

// synthRGBA builds an opaque w*h RGBA image with deterministic pixel values,
// large enough to give EmbedPayload real room to work with.
func synthRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i % 251)
	}
	return img
}

func TestEmbedPayloadExtractPayloadRoundTrip(t *testing.T) {
	img := synthRGBA(64, 64)
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("hidden in the pixels")}

	_, err := EmbedPayload(img, payload, config.ImageEncodeConfig{BitDepth: 2})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractPayload(img, 2, "", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}
}

func TestEmbedPayloadExtractPayloadWithPassword(t *testing.T) {
	img := synthRGBA(64, 64)
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: []byte("a secret worth double-wrapping")}
	cfg := config.ImageEncodeConfig{BitDepth: 2, Password: "hunter2"}

	_, err := EmbedPayload(img, payload, cfg)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractPayload(img, 2, "hunter2", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}

	if _, err := ExtractPayload(img, 2, "wrong", nil); err == nil {
		t.Fatal("expected extraction with the wrong password to fail")
	}
}

// TestEmbedPayloadWarnsOnEstimatedCapacityExceeded exercises a payload whose
// raw length makes the pre-compression heuristic estimate overshoot the
// carrier's capacity, while its actual post-compression size (a long run of
// a single repeated character compresses to almost nothing) comfortably
// fits. The heuristic check must still append a warning in non-strict mode
// even though the later exact check ends up satisfied.
func TestEmbedPayloadWarnsOnEstimatedCapacityExceeded(t *testing.T) {
	img := synthRGBA(32, 32)
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte(strings.Repeat("a", 1000))}

	warnings, err := EmbedPayload(img, payload, config.ImageEncodeConfig{BitDepth: 1, StrictCapacity: false})
	if err != nil {
		t.Fatalf("non-strict mode should not error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a capacity warning when the heuristic estimate exceeds carrier capacity")
	}
}
