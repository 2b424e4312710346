package pixelstego

import (
	"image"

	"nstego/pkg/bitstream"
	"nstego/pkg/capacity"
	"nstego/pkg/config"
	"nstego/pkg/frame"
	"nstego/pkg/model"
	"nstego/pkg/stegoerr"
	"nstego/pkg/xorstream"
)

// EmbedPayload runs a Payload through the C5 framing layer (compress,
// optionally encrypt, then the [type,len] header) and embeds the result
// into img at cfg.BitDepth. It is the entry point the CLI and HTTP server
// use; the raw EmbedText/EmbedData helpers above implement only §4.6's
// headerless/length-prefixed wire formats directly.
func EmbedPayload(img *image.RGBA, payload model.Payload, cfg config.ImageEncodeConfig) ([]model.Warning, error) {
	cfg = cfg.PopulateUnsetConfigVars()

	bounds := img.Bounds()
	if err := capacity.CheckImageDimensions(bounds.Dx(), bounds.Dy(), cfg.Limits); err != nil {
		return nil, err
	}
	if payload.Type == model.PayloadTypeText {
		if err := capacity.CheckMessageLength(len(payload.Bytes), cfg.Limits); err != nil {
			return nil, err
		}
	} else if err := capacity.CheckEmbedFileSize(int64(len(payload.Bytes)), cfg.Limits); err != nil {
		return nil, err
	}

	var warnings []model.Warning

	estimated := capacity.EstimatePostFramingSize(len(payload.Bytes), payload.Type == model.PayloadTypeText, cfg.Password != "")
	estimatedAvailable := Capacity(bounds.Dx(), bounds.Dy(), cfg.BitDepth)
	if err := capacity.CheckEstimatedCapacity(estimated, estimatedAvailable, cfg.StrictCapacity); err != nil {
		return nil, err
	}
	if estimated > estimatedAvailable {
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "estimated post-compression size exceeds carrier capacity",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	framed, err := frame.EncodePayload(payload, cfg.Password)
	if err != nil {
		return nil, err
	}

	needed := int64(len(framed)) * 8
	available := Capacity(img.Bounds().Dx(), img.Bounds().Dy(), cfg.BitDepth) * 8

	if needed > available {
		if cfg.StrictCapacity {
			return nil, stegoerr.CapacityExceeded(needed, available, stegoerr.DefaultCapacityRemedy)
		}
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "payload exceeds carrier capacity",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	// C2: a lightweight XOR obfuscation pass over the whole framed stream,
	// layered outside C5/C4 rather than in place of them.
	obfuscated := xorstream.Apply(framed, cfg.Password)
	if err := EmbedBits(img, 0, bitstream.BytesToBits(obfuscated), cfg.BitDepth); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ExtractPayload reads the 5-byte frame header starting at bit 0, then the
// declared length, and runs the result back through C5 decoding.
func ExtractPayload(img *image.RGBA, depth byte, password string, expectedType *model.PayloadType) (model.Payload, error) {
	headerBits, err := ExtractBits(img, 0, frame.HeaderSize*8, depth)
	if err != nil {
		return model.Payload{}, err
	}
	header := xorstream.ApplyAt(bitstream.BitsToBytes(headerBits), password, 0)
	declaredLen := int64(header[1]) | int64(header[2])<<8 | int64(header[3])<<16 | int64(header[4])<<24

	bodyBits, err := ExtractBits(img, frame.HeaderSize*8, declaredLen*8, depth)
	if err != nil {
		return model.Payload{}, err
	}
	body := xorstream.ApplyAt(bitstream.BitsToBytes(bodyBits), password, frame.HeaderSize)

	framed := append(header, body...)
	return frame.DecodePayload(framed, password, expectedType)
}
