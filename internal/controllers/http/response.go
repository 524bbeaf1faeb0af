package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/payment"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Paged struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// okNull reports success with an explicit "data": null.
func okNull(c *gin.Context, status int) {
	c.JSON(status, Envelope{Success: true, Data: json.RawMessage("null")})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg})
}

// writeError maps err to a status code. Causes of 500s are logged, never
// returned.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderCancelled),
		errors.Is(err, domain.ErrOrderDelivered):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusGatewayTimeout, domain.ErrTimeout.Error())
	case errors.Is(err, payment.ErrDisabled):
		fail(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
}
