package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
)

type APIError struct {
	Message    string   `json:"message"`
	Code       string   `json:"code,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the domain error taxonomy onto HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
	if v := apperrors.AsValidation(err); v != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{
				Message:    v.Error(),
				Code:       "validation_error",
				Violations: v.Violations,
			},
		})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		RespondError(c, http.StatusPreconditionFailed, "precondition_failed", err)
	case errors.Is(err, apperrors.ErrIdentifierCollision),
		errors.Is(err, apperrors.ErrTransactionFailure):
		RespondError(c, http.StatusServiceUnavailable, "retryable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
