package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/service"
)

// upstreamError is implemented by platform errors that carry an HTTP status
type upstreamError interface {
	error
	HTTPStatus() int
}

// statusFor maps an error to the status returned to the console
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDealNotEditable),
		errors.Is(err, service.ErrDealNotSubmittable):
		return http.StatusConflict
	}

	var upstream upstreamError
	if errors.As(err, &upstream) {
		// Client errors pass through, everything else is the platform's fault
		if status := upstream.HTTPStatus(); status >= 400 && status < 500 {
			return status
		}
		return http.StatusBadGateway
	}

	var transport *url.Error
	if errors.As(err, &transport) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope and logs server-side failures
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("status", status),
			zap.Error(err))
	}

	message := err.Error()
	var upstream upstreamError
	if errors.As(err, &upstream) {
		message = upstream.Error()
	}
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	c.JSON(status, Response{Success: false, Error: message})
}

func (h *Handlers) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}
