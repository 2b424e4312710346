package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/capacity"
	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/jpegstego"
	"nstego/pkg/model"
)

// EmbedJpegHandler godoc
//
// @Summary Embed a message or file into a JPEG's DCT coefficients
// @Description Embeds the supplied text or file into the cover JPEG's AC coefficients, and returns the resulting JPEG
// @Tags jpeg
// @Accept json
// @Produce json
// @Param requestBody body api.EncodeJpegRequest true "Cover JPEG plus payload and encoding options"
// @Success 200 {object} api.EncodeJpegResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Router /jpeg/embed [post]
func EmbedJpegHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	var req api.EncodeJpegRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	coeffs, err := imagecodec.ExtractCoefficients(req.Jpeg)
	if err != nil {
		logger.WithError(err).Error("error decoding cover JPEG")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidJpeg)
		return
	}

	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte(req.Text)}
	var fileName string
	if req.File != nil {
		payload = model.Payload{Type: model.PayloadTypeBinary, Bytes: req.File}
		fileName = capacity.SanitizeFilename(req.FileName, config.DefaultLimits())
	}

	cfg := config.JpegEncodeConfig{
		UseChroma:      req.UseChroma,
		Password:       req.Password,
		StrictCapacity: req.StrictCapacity,
	}

	warnings, err := jpegstego.EmbedPayload(coeffs, payload, cfg)
	if err != nil {
		handleEngineError(ctx, logger, "error embedding into JPEG", err)
		return
	}

	encoded, err := imagecodec.EncodeFromCoefficients(coeffs)
	if err != nil {
		logger.WithError(err).Error("error re-encoding output JPEG")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, api.Error{Error: "error re-encoding output JPEG"})
		return
	}

	ctx.JSON(http.StatusOK, api.EncodeJpegResponse{EncodedJpeg: encoded, Warnings: warningMessages(warnings), FileName: fileName})
}
