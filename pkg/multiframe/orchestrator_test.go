package multiframe

import (
	"image"
	"testing"

	"nstego/pkg/config"
	"nstego/pkg/model"
	"nstego/pkg/stegoerr"
)

func newTestFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xF0
	}
	return img
}

func testCfg(mode config.FrameMode) config.MultiFrameConfig {
	return config.MultiFrameConfig{
		ImageEncodeConfig: config.ImageEncodeConfig{BitDepth: 2, StrictCapacity: true},
		Mode:              mode,
	}
}

func TestEmbedExtractFirst(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(40, 40), newTestFrame(40, 40)}
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("hidden in frame zero")}

	if _, err := Embed(frames, payload, testCfg(config.FrameModeFirst)); err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := Extract(frames, testCfg(config.FrameModeFirst), "", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got.Bytes) != string(payload.Bytes) {
		t.Fatalf("got %q, want %q", got.Bytes, payload.Bytes)
	}
}

func TestEmbedExtractAll(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(40, 40), newTestFrame(40, 40), newTestFrame(40, 40)}
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("broadcast message")}

	if _, err := Embed(frames, payload, testCfg(config.FrameModeAll)); err != nil {
		t.Fatalf("embed: %v", err)
	}

	for i := range frames {
		cfg := testCfg(config.FrameModeAll)
		cfg.FrameIndex = i
		got, err := Extract(frames, cfg, "", nil)
		if err != nil {
			t.Fatalf("extract frame %d: %v", i, err)
		}
		if string(got.Bytes) != string(payload.Bytes) {
			t.Fatalf("frame %d: got %q, want %q", i, got.Bytes, payload.Bytes)
		}
	}
}

func TestEmbedExtractSplit(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(20, 20), newTestFrame(20, 20), newTestFrame(20, 20)}
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: make([]byte, 200)}
	for i := range payload.Bytes {
		payload.Bytes[i] = byte(i)
	}

	if _, err := Embed(frames, payload, testCfg(config.FrameModeSplit)); err != nil {
		t.Fatalf("embed: %v", err)
	}

	got, err := Extract(frames, testCfg(config.FrameModeSplit), "", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got.Bytes) != len(payload.Bytes) {
		t.Fatalf("got %d bytes, want %d", len(got.Bytes), len(payload.Bytes))
	}
	for i := range payload.Bytes {
		if got.Bytes[i] != payload.Bytes[i] {
			t.Fatalf("byte %d mismatch: got %d, want %d", i, got.Bytes[i], payload.Bytes[i])
		}
	}
}

func TestDetectModeFindsSplit(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(20, 20), newTestFrame(20, 20)}
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: make([]byte, 120)}

	if _, err := Embed(frames, payload, testCfg(config.FrameModeSplit)); err != nil {
		t.Fatalf("embed: %v", err)
	}

	if mode := DetectMode(frames, 2); mode != config.FrameModeSplit {
		t.Fatalf("got mode %v, want split", mode)
	}
}

func TestEmbedNoUsableFrames(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(1, 1)}
	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte("x")}

	_, err := Embed(frames, payload, testCfg(config.FrameModeFirst))
	if err == nil {
		t.Fatal("expected an error for an all-too-small carrier set")
	}
	if !isKind(err, stegoerr.KindNoUsableFrames) {
		t.Fatalf("got %v, want KindNoUsableFrames", err)
	}
}

func TestEmbedFirstStrictCapacityExceeded(t *testing.T) {
	frames := []*image.RGBA{newTestFrame(5, 5)}
	payload := model.Payload{Type: model.PayloadTypeBinary, Bytes: make([]byte, 1000)}
	for i := range payload.Bytes {
		payload.Bytes[i] = byte(i*2654435761 + 17)
	}

	_, err := Embed(frames, payload, testCfg(config.FrameModeFirst))
	if !isKind(err, stegoerr.KindCapacityExceeded) {
		t.Fatalf("got %v, want KindCapacityExceeded", err)
	}
}

func isKind(err error, kind stegoerr.Kind) bool {
	se, ok := err.(*stegoerr.Error)
	return ok && se.Kind == kind
}
