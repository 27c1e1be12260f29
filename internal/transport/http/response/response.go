package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agritradehub/internal/domain"
	"agritradehub/internal/tts"
)

// ErrBody is the error envelope the API contract fixes: {"error": "..."}.
type ErrBody struct {
	Error string `json:"error"`
}

func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrBody{Error: msg})
}

// FromError maps a domain error to its status and client-safe body.
// Anything unrecognized becomes a generic 500; the caller logs the detail.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Fail(c, http.StatusBadRequest, MsgValidation)
	case errors.Is(err, domain.ErrDuplicateEmail):
		Fail(c, http.StatusConflict, MsgDuplicate)
	case errors.Is(err, domain.ErrDuplicateProduct):
		Fail(c, http.StatusConflict, MsgDuplicateProduct)
	case errors.Is(err, domain.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, MsgBadCreds)
	case errors.Is(err, domain.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		Fail(c, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, tts.ErrUpstream):
		Fail(c, http.StatusInternalServerError, MsgTTSUnavailable)
	default:
		Fail(c, http.StatusInternalServerError, MsgServerError)
	}
}

// FromBindError maps a request decode failure. A body that blew past the
// MaxBytesReader cap is a 413, anything else malformed is a 400.
func FromBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Fail(c, http.StatusRequestEntityTooLarge, MsgTooLarge)
		return
	}
	Fail(c, http.StatusBadRequest, MsgValidation)
}
