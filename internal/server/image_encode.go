package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/capacity"
	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/model"
	"nstego/pkg/multiframe"
	"nstego/pkg/pixelstego"
)

// EmbedImageHandler godoc
//
// @Summary Embed a message or file into an image
// @Description Embeds the supplied text or file into the cover image using the pixel LSB engine, and returns the resulting PNG
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.EncodeImageRequest true "Cover image plus payload and encoding options"
// @Success 200 {object} api.EncodeImageResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Router /image/embed [post]
func EmbedImageHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	var req api.EncodeImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte(req.Text)}
	var fileName string
	if req.File != nil {
		payload = model.Payload{Type: model.PayloadTypeBinary, Bytes: req.File}
		fileName = capacity.SanitizeFilename(req.FileName, config.DefaultLimits())
	}

	imgCfg := config.ImageEncodeConfig{
		BitDepth:       req.BitDepth,
		Password:       req.Password,
		StrictCapacity: req.StrictCapacity,
	}

	if fs, ferr := imagecodec.DecodeFrames(bytes.NewReader(req.Image)); ferr == nil {
		mfCfg := config.MultiFrameConfig{ImageEncodeConfig: imgCfg, Mode: config.ParseFrameMode(req.FrameMode), FrameIndex: req.FrameIndex}
		frames := framesOf(fs)
		warnings, err := multiframe.Embed(frames, payload, mfCfg)
		if err != nil {
			handleEngineError(ctx, logger, "error embedding into frames", err)
			return
		}
		setFrames(fs, frames)
		encoded, err := imagecodec.EncodeFrames(fs)
		if err != nil {
			logger.WithError(err).Error("error encoding output frames")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, api.Error{Error: "error encoding output image"})
			return
		}
		ctx.JSON(http.StatusOK, api.EncodeImageResponse{EncodedImage: encoded, Warnings: warningMessages(warnings), FileName: fileName})
		return
	}

	cover, _, err := imagecodec.Decode(bytes.NewReader(req.Image))
	if err != nil {
		logger.WithError(err).Error("error decoding cover image")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
		return
	}

	warnings, err := pixelstego.EmbedPayload(cover, payload, imgCfg)
	if err != nil {
		handleEngineError(ctx, logger, "error embedding into image", err)
		return
	}

	encoded, err := imagecodec.Encode(cover, imagecodec.FormatPNG, imagecodec.EncodeOptions{})
	if err != nil {
		logger.WithError(err).Error("error encoding output image")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, api.Error{Error: "error encoding output image"})
		return
	}

	ctx.JSON(http.StatusOK, api.EncodeImageResponse{EncodedImage: encoded, Warnings: warningMessages(warnings), FileName: fileName})
}
