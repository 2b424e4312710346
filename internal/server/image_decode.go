package server

import (
	"bytes"
	"image"
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/model"
	"nstego/pkg/multiframe"
	"nstego/pkg/pixelstego"
)

// ExtractImageHandler godoc
//
// @Summary Extract a previously embedded message or file from an image
// @Description Reads the payload embedded in the supplied image by the pixel LSB engine
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.DecodeImageRequest true "Image to extract from"
// @Success 200 {object} api.DecodeImageResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Router /image/extract [post]
func ExtractImageHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("processing image extract request")

	var req api.DecodeImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	var payload model.Payload
	var err error
	if fs, ferr := imagecodec.DecodeFrames(bytes.NewReader(req.Image)); ferr == nil {
		mfCfg := config.MultiFrameConfig{
			ImageEncodeConfig: config.ImageEncodeConfig{BitDepth: req.BitDepth},
			Mode:              config.ParseFrameMode(req.FrameMode),
			FrameIndex:        req.FrameIndex,
		}
		payload, err = multiframe.Extract(framesOf(fs), mfCfg, req.Password, nil)
	} else {
		var cover *image.RGBA
		cover, _, err = imagecodec.Decode(bytes.NewReader(req.Image))
		if err != nil {
			logger.WithError(err).Error("error decoding request image")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
			return
		}
		payload, err = pixelstego.ExtractPayload(cover, req.BitDepth, req.Password, nil)
	}
	if err != nil {
		handleEngineError(ctx, logger, "error extracting from image", err)
		return
	}

	resp := api.DecodeImageResponse{IsText: payload.Type == model.PayloadTypeText}
	if resp.IsText {
		resp.Text = string(payload.Bytes)
	} else {
		resp.File = payload.Bytes
	}

	logger.Info("image extraction was successful")
	ctx.JSON(http.StatusOK, resp)
}
