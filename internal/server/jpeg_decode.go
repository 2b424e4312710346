package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/jpegstego"
	"nstego/pkg/model"
)

// ExtractJpegHandler godoc
//
// @Summary Extract a previously embedded message or file from a JPEG's DCT coefficients
// @Description Reads the payload embedded in the supplied JPEG by the DCT coefficient engine
// @Tags jpeg
// @Accept json
// @Produce json
// @Param requestBody body api.DecodeJpegRequest true "JPEG to extract from"
// @Success 200 {object} api.DecodeJpegResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Router /jpeg/extract [post]
func ExtractJpegHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("processing jpeg extract request")

	var req api.DecodeJpegRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	coeffs, err := imagecodec.ExtractCoefficients(req.Jpeg)
	if err != nil {
		logger.WithError(err).Error("error decoding request JPEG")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidJpeg)
		return
	}

	cfg := config.JpegEncodeConfig{UseChroma: req.UseChroma, Password: req.Password}
	payload, err := jpegstego.ExtractPayload(coeffs, cfg, nil)
	if err != nil {
		handleEngineError(ctx, logger, "error extracting from JPEG", err)
		return
	}

	resp := api.DecodeJpegResponse{IsText: payload.Type == model.PayloadTypeText}
	if resp.IsText {
		resp.Text = string(payload.Bytes)
	} else {
		resp.File = payload.Bytes
	}

	logger.Info("jpeg extraction was successful")
	ctx.JSON(http.StatusOK, resp)
}
