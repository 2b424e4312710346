package jpegstego

import (
	"testing"

	"nstego/pkg/config"
	"nstego/pkg/model"
)

func TestEmbedPayloadExtractPayloadRoundTrip(t *testing.T) {
	c := synthCoefficients(true)
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("hidden in the coefficients")}

	_, err := EmbedPayload(c, payload, config.JpegEncodeConfig{UseChroma: true})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractPayload(c, config.JpegEncodeConfig{UseChroma: true}, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}
}

func TestEmbedPayloadExtractPayloadWithPassword(t *testing.T) {
	c := synthCoefficients(true)
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: []byte("a secret worth double-wrapping")}
	cfg := config.JpegEncodeConfig{UseChroma: true, Password: "hunter2"}

	_, err := EmbedPayload(c, payload, cfg)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractPayload(c, cfg, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}

	if _, err := ExtractPayload(c, config.JpegEncodeConfig{UseChroma: true, Password: "wrong"}, nil); err == nil {
		t.Fatal("expected extraction with the wrong password to fail")
	}
}
