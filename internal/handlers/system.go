package handlers

import (
	"errors"
	"net/http"

	"tenability/internal/brisk"
	"tenability/internal/fed"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusFor maps service and computation errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSimulationNotFound),
		errors.Is(err, fed.ErrRoomNotFound),
		errors.Is(err, brisk.ErrVariableNotFound):
		return http.StatusNotFound
	case errors.Is(err, fed.ErrInvalidPath),
		errors.Is(err, fed.ErrOutOfRange),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrUnknownModel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Client errors echo the
// message; server errors are logged and hidden.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logAndJSONError(c, code, errInternal, logKey, err, kv...)
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
