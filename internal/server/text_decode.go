package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/zwctext"
)

// ExtractTextHandler godoc
//
// @Summary Extract a previously embedded message from stega text
// @Description Reads the message hidden in the supplied text's zero-width code points
// @Tags text
// @Accept json
// @Produce json
// @Param requestBody body api.DecodeTextRequest true "Stega text to extract from"
// @Success 200 {object} api.DecodeTextResponse
// @Failure 422 {object} api.Error
// @Router /text/extract [post]
func ExtractTextHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	var req api.DecodeTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	payload, err := zwctext.ExtractPayload(zwctext.AsText(req.StegaText), req.Password, nil)
	if err != nil {
		handleEngineError(ctx, logger, "error extracting from text", err)
		return
	}

	ctx.JSON(http.StatusOK, api.DecodeTextResponse{Message: string(payload.Bytes)})
}

// DetectTextHandler godoc
//
// @Summary Check whether text carries a hidden zero-width payload
// @Tags text
// @Accept json
// @Produce json
// @Param requestBody body api.DetectTextRequest true "Text to inspect"
// @Success 200 {object} api.DetectTextResponse
// @Router /text/detect [get]
func DetectTextHandler(ctx *gin.Context) {
	var req api.DetectTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	ctx.JSON(http.StatusOK, api.DetectTextResponse{HasHiddenData: zwctext.HasHiddenData(zwctext.AsText(req.Text))})
}
