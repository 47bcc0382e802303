package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/apperr"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/batches"
	"github.com/mamadbah2/meadery/internal/service/brewing"
	"github.com/mamadbah2/meadery/internal/service/favorites"
)

// BatchesHandler exposes batch lifecycle and gravity log operations.
type BatchesHandler struct {
	svc       *batches.Service
	favorites *favorites.Service
	logger    *zap.Logger
}

// NewBatchesHandler constructs the batches HTTP adapter.
func NewBatchesHandler(svc *batches.Service, favoritesSvc *favorites.Service, logger *zap.Logger) *BatchesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchesHandler{svc: svc, favorites: favoritesSvc, logger: logger}
}

// List serves the mirrored batches.
func (h *BatchesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Get serves one batch with its display-ordered readings and derived
// gravity figures.
func (h *BatchesHandler) Get(c *gin.Context) {
	batch, ok := h.svc.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, models.BatchDetail{
		Batch:          batch,
		DisplayLogs:    slices.Collect(batches.DisplayLogs(batch)),
		CurrentGravity: batches.CurrentGravity(batch),
		CurrentAbv:     batches.CurrentAbv(batch),
	})
}

// Start creates a batch from a saved favorite or from inline recipe inputs.
// This write awaits the remote result.
func (h *BatchesHandler) Start(c *gin.Context) {
	var req models.StartBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var recipe models.Recipe
	switch {
	case req.FavoriteID != "":
		favorite, ok := h.favorites.Get(req.FavoriteID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}
		recipe = favorite
	case req.Recipe != nil:
		recipe = brewing.BuildRecipe(*req.Recipe)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "favoriteId or recipe is required"})
		return
	}

	id, err := h.svc.Start(c.Request.Context(), recipe)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed starting batch", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to start batch"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Delete removes a batch; the remote delete is fire-and-forget.
func (h *BatchesHandler) Delete(c *gin.Context) {
	h.svc.Delete(c.Param("id"))
	c.Status(http.StatusAccepted)
}

// SetStatus moves a batch to a new lifecycle status.
func (h *BatchesHandler) SetStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SetStatus(c.Param("id"), req.Status); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// AddLog appends a gravity reading to the batch's log.
func (h *BatchesHandler) AddLog(c *gin.Context) {
	var req models.LogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid log entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.AddLogEntry(c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// EditLog rewrites an existing gravity reading.
func (h *BatchesHandler) EditLog(c *gin.Context) {
	var req models.LogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid log entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.EditLogEntry(c.Param("id"), c.Param("entryID"), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// DeleteLog removes a gravity reading. Deleting an id that no longer exists
// is a no-op.
func (h *BatchesHandler) DeleteLog(c *gin.Context) {
	if err := h.svc.DeleteLogEntry(c.Param("id"), c.Param("entryID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *BatchesHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("batch operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
