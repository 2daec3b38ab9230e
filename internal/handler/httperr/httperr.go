package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records the original error on the context for the error
// middleware and writes the public envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the usecase error taxonomy onto HTTP statuses. Unknown
// errors are internal.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrPartialOutcome):
		return http.StatusMultiStatus
	case errors.Is(err, usecase.ErrPostPaymentInconsistency):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DetailOf surfaces the user-safe details attached to err, so a canned
// envelope message still names the resource that failed. Errors carry no
// detail unless a usecase attached one with errs.WithDetail.
func DetailOf(err error) any {
	details := errs.Details(err)
	switch len(details) {
	case 0:
		return nil
	case 1:
		return details[0]
	default:
		return details
	}
}

// MessageOf gives the user-safe message for each taxonomy mark; the detailed
// cause stays in the error middleware's log, never in the body.
func MessageOf(err error) string {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return "Invalid request"
	case errors.Is(err, usecase.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, usecase.ErrConflict):
		return "Resource conflict"
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return "Payment declined"
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return "Upstream service unavailable"
	case errors.Is(err, usecase.ErrPartialOutcome):
		return "Operation partially completed"
	case errors.Is(err, usecase.ErrPostPaymentInconsistency):
		return "Operation left an inconsistency; do not retry blindly"
	default:
		return "Internal server error"
	}
}
