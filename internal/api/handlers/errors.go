package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/viewmodel"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSKUNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrFeedNotFound),
		errors.Is(err, domain.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidThreshold),
		errors.Is(err, domain.ErrUnknownCondition),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, viewmodel.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
