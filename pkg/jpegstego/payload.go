package jpegstego

import (
	"nstego/pkg/bitstream"
	"nstego/pkg/capacity"
	"nstego/pkg/config"
	"nstego/pkg/frame"
	"nstego/pkg/jpegcoeff"
	"nstego/pkg/model"
	"nstego/pkg/stegoerr"
	"nstego/pkg/xorstream"
)

// EmbedPayload frames payload through C5 and embeds the result into c's
// usable AC coefficients in place. A caller that needs the original
// coefficients afterwards passes a Clone(); the CLI and HTTP handlers pass
// the freshly decoded coefficients directly.
func EmbedPayload(c *jpegcoeff.Coefficients, payload model.Payload, cfg config.JpegEncodeConfig) ([]model.Warning, error) {
	cfg = cfg.PopulateUnsetConfigVars()

	if payload.Type == model.PayloadTypeText {
		if err := capacity.CheckMessageLength(len(payload.Bytes), cfg.Limits); err != nil {
			return nil, err
		}
	} else if err := capacity.CheckEmbedFileSize(int64(len(payload.Bytes)), cfg.Limits); err != nil {
		return nil, err
	}

	var warnings []model.Warning

	estimated := capacity.EstimatePostFramingSize(len(payload.Bytes), payload.Type == model.PayloadTypeText, cfg.Password != "")
	estimatedAvailable := Capacity(c, cfg.UseChroma) / 8
	if err := capacity.CheckEstimatedCapacity(estimated, estimatedAvailable, cfg.StrictCapacity); err != nil {
		return nil, err
	}
	if estimated > estimatedAvailable {
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "estimated post-compression size exceeds usable AC coefficient capacity",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	framed, err := frame.EncodePayload(payload, cfg.Password)
	if err != nil {
		return nil, err
	}

	needed := int64(len(framed)) * 8
	available := Capacity(c, cfg.UseChroma)

	if needed > available {
		if cfg.StrictCapacity {
			return nil, stegoerr.CapacityExceeded(needed, available, stegoerr.DefaultCapacityRemedy)
		}
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "payload exceeds usable AC coefficient capacity",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	// C2: a lightweight XOR obfuscation pass over the whole framed stream,
	// layered outside C5/C4 rather than in place of them.
	obfuscated := xorstream.Apply(framed, cfg.Password)
	if err := EmbedBits(c, bitstream.BytesToBits(obfuscated), cfg.UseChroma); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ExtractPayload reads the 5-byte C5 header off c's usable AC coefficients,
// then the declared body length, and decodes the result.
func ExtractPayload(c *jpegcoeff.Coefficients, cfg config.JpegEncodeConfig, expectedType *model.PayloadType) (model.Payload, error) {
	headerBits, err := ExtractBits(c, frame.HeaderSize*8, cfg.UseChroma)
	if err != nil {
		return model.Payload{}, err
	}
	header := xorstream.Apply(bitstream.BitsToBytes(headerBits), cfg.Password)
	declaredLen := int64(header[1]) | int64(header[2])<<8 | int64(header[3])<<16 | int64(header[4])<<24

	allBits, err := ExtractBits(c, (frame.HeaderSize+declaredLen)*8, cfg.UseChroma)
	if err != nil {
		return model.Payload{}, err
	}

	framed := xorstream.Apply(bitstream.BitsToBytes(allBits), cfg.Password)
	return frame.DecodePayload(framed, cfg.Password, expectedType)
}
