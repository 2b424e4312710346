package zwctext

import (
	"nstego/pkg/capacity"
	"nstego/pkg/config"
	"nstego/pkg/frame"
	"nstego/pkg/model"
	"nstego/pkg/stegoerr"
)

// EmbedPayload frames payload through C5 and hides the result in cover's
// zero-width code points.
func EmbedPayload(cover string, payload model.Payload, cfg config.TextEncodeConfig) ([]model.Warning, StegaText, error) {
	cfg = cfg.PopulateUnsetConfigVars()

	if err := capacity.CheckCoverLength(len(cover), cfg.Limits); err != nil {
		return nil, "", err
	}
	if payload.Type == model.PayloadTypeText {
		if err := capacity.CheckSecretLength(len(payload.Bytes), cfg.Limits); err != nil {
			return nil, "", err
		}
	} else if err := capacity.CheckEmbedFileSize(int64(len(payload.Bytes)), cfg.Limits); err != nil {
		return nil, "", err
	}

	framed, err := frame.EncodePayload(payload, cfg.Password)
	if err != nil {
		return nil, "", err
	}

	var warnings []model.Warning
	if cfg.MaxPayloadBytes > 0 && int64(len(framed)) > cfg.MaxPayloadBytes {
		if cfg.StrictCapacity {
			return nil, "", stegoerr.CapacityExceeded(int64(len(framed)), cfg.MaxPayloadBytes, stegoerr.DefaultCapacityRemedy)
		}
		warnings = append(warnings, model.Warning{
			Code:    "capacity_exceeded",
			Message: "framed payload exceeds the configured maximum",
			Detail:  stegoerr.DefaultCapacityRemedy,
		})
	}

	return warnings, Embed(cover, framed, cfg.Distributed), nil
}

// ExtractPayload reverses EmbedPayload.
func ExtractPayload(s stegaTextLike, password string, expectedType *model.PayloadType) (model.Payload, error) {
	framed, err := Extract(s)
	if err != nil {
		return model.Payload{}, err
	}
	return frame.DecodePayload(framed, password, expectedType)
}
