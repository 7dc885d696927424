package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/http/middleware"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var v domain.ValidationError
		errors.As(err, &v)
		code := v.Code
		if code == "" {
			code = "validation_error"
		}
		respondError(c, http.StatusBadRequest, code, err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		var ce domain.ConflictError
		errors.As(err, &ce)
		respondError(c, http.StatusConflict, ce.Code(), err.Error(), nil)
	case domain.IsCredentials(err):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	case domain.IsLocked(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsInternal(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "store_error", err.Error()+": "+causeOf(err))
		respondError(c, http.StatusUnprocessableEntity, "unprocessable_entity", err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "unexpected_error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}

func causeOf(err error) string {
	var ie domain.InternalError
	if errors.As(err, &ie) && ie.Err != nil {
		return ie.Err.Error()
	}
	return "-"
}
