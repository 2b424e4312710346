// Package multiframe implements C7: applying the pixel LSB engine (C6)
// across the frames of an animated/paged image under one of three modes —
// first, all, or split — generalizing the teacher's single-frame encoder
// loop (nsteg/pkg/image.Encoder.encodeDataToRawImage) to a frame sequence.
package multiframe

import (
	"image"
	"sort"

	"nstego/pkg/bitstream"
	"nstego/pkg/config"
	"nstego/pkg/frame"
	"nstego/pkg/model"
	"nstego/pkg/pixelstego"
	"nstego/pkg/stegoerr"
	"nstego/pkg/xorstream"
)

// minUsableBytes is the minimum pixel-LSB byte capacity (§4.7) a frame must
// offer to be considered usable at all.
const minUsableBytes = 8

// probeFrames is how many leading frames the decoder inspects for a
// plausible chunk header before falling back to first/all mode (§4.7).
const probeFrames = 5

func usable(img *image.RGBA, depth byte) bool {
	return pixelstego.Capacity(img.Bounds().Dx(), img.Bounds().Dy(), depth) >= minUsableBytes
}

func usableIndexes(frames []*image.RGBA, depth byte) []int {
	var idxs []int
	for i, f := range frames {
		if usable(f, depth) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Embed embeds payload into frames in place, according to cfg.Mode, and
// returns any soft-capacity warnings collected along the way.
func Embed(frames []*image.RGBA, payload model.Payload, cfg config.MultiFrameConfig) ([]model.Warning, error) {
	cfg.ImageEncodeConfig = cfg.ImageEncodeConfig.PopulateUnsetConfigVars()

	framed, err := frame.EncodePayload(payload, cfg.Password)
	if err != nil {
		return nil, err
	}

	idxs := usableIndexes(frames, cfg.BitDepth)
	if len(idxs) == 0 {
		return nil, stegoerr.NoUsableFrames("no frame offers at least %d bytes of pixel-LSB capacity", minUsableBytes)
	}

	// first/all frames hold the same XOR-obfuscated stream that
	// pixelstego.EmbedPayload writes, since Extract reads them back through
	// pixelstego.ExtractPayload.
	switch cfg.Mode {
	case config.FrameModeFirst:
		return embedFirst(frames[idxs[0]], xorstream.Apply(framed, cfg.Password), cfg)
	case config.FrameModeAll:
		return embedAll(frames, idxs, xorstream.Apply(framed, cfg.Password), cfg)
	case config.FrameModeSplit:
		return embedSplit(frames, idxs, framed, cfg)
	default:
		return nil, stegoerr.InvalidArgument("unknown multi-frame mode %v", cfg.Mode)
	}
}

func embedFirst(img *image.RGBA, framed []byte, cfg config.MultiFrameConfig) ([]model.Warning, error) {
	warnings, err := checkCapacity(img, int64(len(framed))*8, cfg)
	if err != nil {
		return warnings, err
	}
	return warnings, pixelstego.EmbedBits(img, 0, bitstream.BytesToBits(framed), cfg.BitDepth)
}

func embedAll(frames []*image.RGBA, idxs []int, framed []byte, cfg config.MultiFrameConfig) ([]model.Warning, error) {
	bits := bitstream.BytesToBits(framed)
	var warnings []model.Warning
	for _, i := range idxs {
		img := frames[i]
		if pixelstego.Capacity(img.Bounds().Dx(), img.Bounds().Dy(), cfg.BitDepth)*8 < int64(len(bits)) {
			continue // too small for the full payload, pass through unchanged
		}
		w, err := checkCapacity(img, int64(len(bits)), cfg)
		warnings = append(warnings, w...)
		if err != nil {
			return warnings, err
		}
		if err := pixelstego.EmbedBits(img, 0, bits, cfg.BitDepth); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

// embedSplit partitions framed across the usable frames, reserving a
// 12-byte chunk header at the start of each frame's bit stream (§4.7).
func embedSplit(frames []*image.RGBA, idxs []int, framed []byte, cfg config.MultiFrameConfig) ([]model.Warning, error) {
	type plan struct {
		frameIdx int
		offset   int
		size     int
	}
	var plans []plan
	remaining := framed
	for _, fi := range idxs {
		if len(remaining) == 0 {
			break
		}
		img := frames[fi]
		byteCap := pixelstego.Capacity(img.Bounds().Dx(), img.Bounds().Dy(), cfg.BitDepth)
		usableCap := byteCap - frame.ChunkHeaderSize
		if usableCap <= 0 {
			continue
		}
		take := int64(len(remaining))
		if take > usableCap {
			take = usableCap
		}
		plans = append(plans, plan{frameIdx: fi, offset: len(framed) - len(remaining), size: int(take)})
		remaining = remaining[take:]
	}

	var warnings []model.Warning
	if len(remaining) > 0 {
		required := int64(len(framed))
		var available int64
		for _, p := range plans {
			available += int64(p.size)
		}
		if cfg.StrictCapacity {
			return nil, stegoerr.CapacityExceeded(required, available, stegoerr.DefaultCapacityRemedy)
		}
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "payload does not fit across the usable frames",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	total := uint32(len(plans))
	for chunkIdx, p := range plans {
		header := frame.ChunkHeader{
			ChunkIndex:  uint32(chunkIdx),
			TotalChunks: total,
			ChunkSize:   uint32(p.size),
		}
		chunkBytes := append(header.Encode(), framed[p.offset:p.offset+p.size]...)
		if err := pixelstego.EmbedBits(frames[p.frameIdx], 0, bitstream.BytesToBits(chunkBytes), cfg.BitDepth); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func checkCapacity(img *image.RGBA, neededBits int64, cfg config.MultiFrameConfig) ([]model.Warning, error) {
	available := pixelstego.Capacity(img.Bounds().Dx(), img.Bounds().Dy(), cfg.BitDepth) * 8
	if neededBits <= available {
		return nil, nil
	}
	if cfg.StrictCapacity {
		return nil, stegoerr.CapacityExceeded(neededBits, available, stegoerr.DefaultCapacityRemedy)
	}
	return []model.Warning{{
		Code:    "capacity_exceeded",
		Message: "payload exceeds frame capacity",
		Detail:  stegoerr.DefaultCapacityRemedy,
	}}, nil
}

// DetectMode probes up to the first five frames for a plausible chunk
// header; if any matches, the carrier is treated as split mode, otherwise
// first/all mode is assumed (§4.7's mode-detection-on-read heuristic).
func DetectMode(frames []*image.RGBA, depth byte) config.FrameMode {
	limit := probeFrames
	if limit > len(frames) {
		limit = len(frames)
	}
	for i := 0; i < limit; i++ {
		bits, err := pixelstego.ExtractBits(frames[i], 0, frame.ChunkHeaderSize*8, depth)
		if err != nil {
			continue
		}
		h, err := frame.DecodeChunkHeader(bitstream.BitsToBytes(bits))
		if err != nil {
			continue
		}
		if frame.PlausibleChunkHeader(h) {
			return config.FrameModeSplit
		}
	}
	return config.FrameModeFirst
}

// Extract reverses Embed. For split mode it scans all frames, parses any
// chunk header present, validates bounds, sorts by chunk index, and
// concatenates the chunk payloads before running the result back through
// C5 decoding. For first/all mode it reads frames[frameIndex] only.
func Extract(frames []*image.RGBA, cfg config.MultiFrameConfig, password string, expectedType *model.PayloadType) (model.Payload, error) {
	mode := cfg.Mode
	if mode == config.FrameModeFirst && cfg.FrameIndex == 0 {
		mode = DetectMode(frames, cfg.BitDepth)
	}

	if mode == config.FrameModeSplit {
		return extractSplit(frames, cfg.BitDepth, password, expectedType)
	}

	idx := cfg.FrameIndex
	if idx < 0 || idx >= len(frames) {
		idx = 0
	}
	return pixelstego.ExtractPayload(frames[idx], cfg.BitDepth, password, expectedType)
}

type chunkRead struct {
	header  frame.ChunkHeader
	payload []byte
}

func extractSplit(frames []*image.RGBA, depth byte, password string, expectedType *model.PayloadType) (model.Payload, error) {
	var chunks []chunkRead
	for _, img := range frames {
		headerBits, err := pixelstego.ExtractBits(img, 0, frame.ChunkHeaderSize*8, depth)
		if err != nil {
			continue
		}
		h, err := frame.DecodeChunkHeader(bitstream.BitsToBytes(headerBits))
		if err != nil || !frame.PlausibleChunkHeader(h) {
			continue
		}
		bodyBits, err := pixelstego.ExtractBits(img, frame.ChunkHeaderSize*8, int64(h.ChunkSize)*8, depth)
		if err != nil {
			continue
		}
		chunks = append(chunks, chunkRead{header: h, payload: bitstream.BitsToBytes(bodyBits)})
	}

	if len(chunks) == 0 {
		return model.Payload{}, stegoerr.NoUsableFrames("no frame carried a plausible chunk header")
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].header.ChunkIndex < chunks[j].header.ChunkIndex })

	var framed []byte
	for _, c := range chunks {
		framed = append(framed, c.payload...)
	}

	return frame.DecodePayload(framed, password, expectedType)
}
