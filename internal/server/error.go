package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nstego/api"
	"nstego/internal/logging"
	"nstego/pkg/model"
	"nstego/pkg/stegoerr"
)

var (
	errRequestBodyDecode = api.Error{Error: "error reading request body"}
	errInvalidImage      = api.Error{Code: "invalid_image", Error: "supplied image is invalid"}
	errInvalidJpeg       = api.Error{Code: "invalid_jpeg", Error: "supplied JPEG is invalid"}
)

// statusForKind maps a stegoerr.Kind to the HTTP status a caller should see:
// malformed input is a 400, everything else an engine raises (capacity,
// truncation, format problems) is a 422 rather than a 500, since it reflects
// the request's data rather than a server fault.
func statusForKind(kind stegoerr.Kind) int {
	if kind == stegoerr.KindInvalidArgument {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

// handleEngineError writes the appropriate status/body for any error an
// engine call returns, logging it first the way the teacher's
// handleDecodeError does.
func handleEngineError(ctx *gin.Context, logger *logging.Logger, action string, err error) {
	logger.WithError(err).Error(action)

	var se *stegoerr.Error
	if errors.As(err, &se) {
		ctx.AbortWithStatusJSON(statusForKind(se.Kind), api.Error{Code: string(se.Kind), Error: se.Message})
		return
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, api.Error{Error: err.Error()})
}

func warningMessages(warnings []model.Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Message
	}
	return out
}
