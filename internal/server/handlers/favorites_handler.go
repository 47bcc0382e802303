package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/apperr"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/brewing"
	"github.com/mamadbah2/meadery/internal/service/favorites"
)

// FavoritesHandler exposes the saved-recipe collection.
type FavoritesHandler struct {
	svc    *favorites.Service
	logger *zap.Logger
}

// NewFavoritesHandler constructs the favorites HTTP adapter.
func NewFavoritesHandler(svc *favorites.Service, logger *zap.Logger) *FavoritesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesHandler{svc: svc, logger: logger}
}

// List serves the mirrored favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Save builds a recipe from raw calculator inputs and persists it as a
// favorite. This is one of the few writes that awaits the remote result.
func (h *FavoritesHandler) Save(c *gin.Context) {
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recipe payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe := brewing.BuildRecipe(req)
	id, err := h.svc.Save(c.Request.Context(), recipe)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed saving favorite", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Delete removes a favorite; the remote delete is fire-and-forget.
func (h *FavoritesHandler) Delete(c *gin.Context) {
	h.svc.Delete(c.Param("id"))
	c.Status(http.StatusAccepted)
}
