package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/repository"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/service"
)

// Handlers holds all HTTP handlers for the POS service.
type Handlers struct {
	catalogService    *service.CatalogService
	discountService   *service.DiscountService
	completionService *service.CompletionService
	settings          repository.SettingsStore
	config            *config.Config
	logger            *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	catalogService *service.CatalogService,
	discountService *service.DiscountService,
	completionService *service.CompletionService,
	settings repository.SettingsStore,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalogService:    catalogService,
		discountService:   discountService,
		completionService: completionService,
		settings:          settings,
		config:            cfg,
		logger:            logger.Named("handlers"),
	}
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var remoteErr *apperrors.RemoteError
	if errors.As(err, &remoteErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   remoteErr.Error(),
			"service": remoteErr.Service,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
