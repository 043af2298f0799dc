package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"creanalytics/server/internal/analytics"
)

const (
	errorTypeHTTP        = "http_error"
	errorTypeValidation  = "validation_error"
	errorTypeComputation = "computation_error"
	errorTypeServer      = "server_error"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Type    string       `json:"type"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, errType, message string, details ...FieldError) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:    status,
		Message: message,
		Type:    errType,
		Details: details,
	}})
}

func notFound(c *gin.Context, message string) {
	abortWithError(c, http.StatusNotFound, errorTypeHTTP, message)
}

func validationFailed(c *gin.Context, details ...FieldError) {
	abortWithError(c, http.StatusUnprocessableEntity, errorTypeValidation, "Validation error", details...)
}

// bindingDetails turns a query binding error into per-field messages.
func bindingDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "query", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var message string
		switch fe.Tag() {
		case "min":
			message = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", fe.Param())
		default:
			message = fmt.Sprintf("failed the %s check", fe.Tag())
		}
		details = append(details, FieldError{Field: fe.Field(), Message: message})
	}
	return details
}

// computationFailed reports an analytics error. A zero benchmark is a data
// problem rather than a bug, so it gets its own error type.
func (h *Handler) computationFailed(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrZeroBenchmark) {
		h.logger.WithError(err).Warn("Variance against a zero market benchmark")
		abortWithError(c, http.StatusInternalServerError, errorTypeComputation, err.Error())
		return
	}
	h.logger.WithError(err).Error("Analytics computation failed")
	abortWithError(c, http.StatusInternalServerError, errorTypeServer, "Internal server error")
}
