package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/media"
	"marketplace/models"
	"marketplace/payment"
	"marketplace/repository"
	"marketplace/services"
)

// respondError maps the service/repository error taxonomy onto HTTP
// statuses. Unknown errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrIntentNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, repository.ErrDuplicateCategory),
		errors.Is(err, repository.ErrCategoryInUse),
		errors.Is(err, repository.ErrProductInUse),
		errors.Is(err, repository.ErrIntentConsumed),
		errors.Is(err, services.ErrCartChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, payment.ErrVerificationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, payment.ErrUpstream), errors.Is(err, media.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
