package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
)

// writeError maps the error taxonomy onto HTTP status codes. The message is
// the user-visible text; the presentation layer renders it as-is.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicateApplication),
		errors.Is(err, apperrors.ErrJobNotOpen),
		errors.Is(err, apperrors.ErrNoAcceptedApplication),
		errors.Is(err, apperrors.ErrInvalidTransition):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
