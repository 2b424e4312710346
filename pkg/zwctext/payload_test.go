package zwctext

import (
	"testing"

	"nstego/pkg/config"
	"nstego/pkg/model"
)

func TestEmbedPayloadExtractPayloadRoundTrip(t *testing.T) {
	cover := "Cover sentence. It has punctuation, and more than one clause!"
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("a secret note")}

	_, out, err := EmbedPayload(cover, payload, config.TextEncodeConfig{Distributed: true})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := ExtractPayload(out, "", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}
	if got.Type != payload.Type {
		t.Fatalf("got type %v, want %v", got.Type, payload.Type)
	}
}

func TestEmbedPayloadWithPassword(t *testing.T) {
	cover := "Encrypted cover text goes here."
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: []byte{1, 2, 3, 4, 5}}

	_, out, err := EmbedPayload(cover, payload, config.TextEncodeConfig{Password: "hunter2"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	if _, err := ExtractPayload(out, "wrong-password", nil); err == nil {
		t.Fatal("expected decryption to fail with the wrong password")
	}

	got, err := ExtractPayload(out, "hunter2", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %v, want %v", got.Bytes, payload.Bytes)
	}
}
