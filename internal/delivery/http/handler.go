package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myskyn/backend/internal/domain"
	"github.com/myskyn/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalogService *usecase.CatalogService
	pairingService *usecase.PairingService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *usecase.CatalogService, pairingService *usecase.PairingService) *Handler {
	return &Handler{
		catalogService: catalogService,
		pairingService: pairingService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "myskyn-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the product catalog, optionally filtered by the "q"
// query parameter (case-insensitive substring over name and brand).
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ListCategories returns the distinct product categories present in the catalog.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.DistinctCategories(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// Recommend computes ranked pairing recommendations for a selected product
// and target category. An empty candidate pool is a valid 200 response with
// an empty list, so the caller can render a "no matches" state.
func (h *Handler) Recommend(c *gin.Context) {
	var request domain.PairingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "selectedProductId and targetCategory are required",
		})
		return
	}

	recommendations, err := h.pairingService.Recommend(c.Request.Context(), &request)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// renderError maps domain errors to HTTP responses
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDataUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "product store unavailable",
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
