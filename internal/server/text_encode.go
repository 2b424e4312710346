package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/config"
	"nstego/pkg/model"
	"nstego/pkg/zwctext"
)

// EmbedTextHandler godoc
//
// @Summary Embed a message into cover text using zero-width characters
// @Description Hides the supplied message inside the cover text's zero-width code points
// @Tags text
// @Accept json
// @Produce json
// @Param requestBody body api.EncodeTextRequest true "Cover text plus message and encoding options"
// @Success 200 {object} api.EncodeTextResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Router /text/embed [post]
func EmbedTextHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	var req api.EncodeTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errRequestBodyDecode)
		return
	}

	cfg := config.TextEncodeConfig{
		Distributed:    req.Distributed,
		Password:       req.Password,
		StrictCapacity: req.StrictCapacity,
	}

	warnings, stegaText, err := zwctext.EmbedPayload(req.Cover, model.Payload{Type: model.PayloadTypeText, Bytes: []byte(req.Message)}, cfg)
	if err != nil {
		handleEngineError(ctx, logger, "error embedding into text", err)
		return
	}

	ctx.JSON(http.StatusOK, api.EncodeTextResponse{StegaText: string(stegaText), Warnings: warningMessages(warnings)})
}
