// internal/api/response.go
package api

import (
	"net/http"

	"transit-report/internal/common/errors"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err in the error envelope with the status its code maps to.
func RespondError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	msg := stdErr.Message
	if stdErr.Details != "" {
		msg += ": " + stdErr.Details
	}
	c.JSON(statusFor(stdErr.Code), ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(stdErr.Code),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInputValidationFailed:
		return http.StatusBadRequest
	case errors.ErrCodePlanAlreadyExists:
		return http.StatusConflict
	case errors.ErrCodePlanNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTextGenerationFailed, errors.ErrCodeRendererRequestFailed:
		return http.StatusBadGateway
	case errors.ErrCodeTextGenerationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
