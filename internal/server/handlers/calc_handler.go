package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/brewing"
)

// CalcHandler exposes the gravity solver and the fruit preset table.
type CalcHandler struct {
	logger *zap.Logger
}

// NewCalcHandler constructs the calculator HTTP adapter.
func NewCalcHandler(logger *zap.Logger) *CalcHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalcHandler{logger: logger}
}

// SolveTarget computes the honey mass required for a target ABV.
func (h *CalcHandler) SolveTarget(c *gin.Context) {
	var req models.TargetCalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid target calc payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := brewing.SolveTarget(brewing.TargetInput{
		VolumeLiters: orZero(req.VolumeLiters),
		TargetAbv:    orZero(req.TargetAbv),
	})

	c.JSON(http.StatusOK, gin.H{"og": result.OG, "honeyKg": result.HoneyKg})
}

// SolveIngredients computes OG and ABV from ingredient masses.
func (h *CalcHandler) SolveIngredients(c *gin.Context) {
	var req models.IngredientsCalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ingredients calc payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fruits := make([]brewing.FruitInput, 0, len(req.Fruits))
	for _, fruit := range req.Fruits {
		fruits = append(fruits, brewing.FruitInput{AmountKg: fruit.AmountKg, SugarPercent: fruit.SugarPercent})
	}

	result := brewing.SolveIngredients(brewing.IngredientsInput{
		VolumeLiters: orZero(req.VolumeLiters),
		HoneyKg:      orZero(req.HoneyKg),
		Fruits:       fruits,
	})

	c.JSON(http.StatusOK, gin.H{"og": result.OG, "abv": result.Abv})
}

// ListFruits serves the ordered fruit sugar preset table.
func (h *CalcHandler) ListFruits(c *gin.Context) {
	c.JSON(http.StatusOK, brewing.FruitPresets())
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
