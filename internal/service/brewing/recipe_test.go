package brewing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/meadery/internal/domain/models"
)

func float(v float64) *float64 { return &v }

func TestBuildRecipeTargetMode(t *testing.T) {
	recipe := BuildRecipe(models.RecipeRequest{
		Name:         "Traditional",
		Mode:         models.ModeTarget,
		VolumeLiters: float(5),
		TargetAbv:    float(12),
	})

	assert.Equal(t, models.ModeTarget, recipe.Mode)
	assert.Equal(t, "1.091", recipe.CalculatedOG)
	assert.Equal(t, "12.0", recipe.CalculatedAbv)
	assert.InDelta(t, 1.57, recipe.HoneyKg, 0.005, "target mode fills the honey mass")
}

func TestBuildRecipeIngredientsMode(t *testing.T) {
	recipe := BuildRecipe(models.RecipeRequest{
		Name:         "Melomel",
		Mode:         models.ModeIngredients,
		VolumeLiters: float(5),
		HoneyKg:      float(1.5),
	})

	assert.Equal(t, "1.088", recipe.CalculatedOG)
	assert.Equal(t, "11.5", recipe.CalculatedAbv)
	assert.Equal(t, 1.5, recipe.HoneyKg)
}

func TestBuildRecipeDropsBlankFruits(t *testing.T) {
	recipe := BuildRecipe(models.RecipeRequest{
		Name: "Melomel",
		Mode: models.ModeIngredients,
		Fruits: []models.FruitAddition{
			{Name: "Apple", AmountKg: 1, SugarPercent: 13},
			{Name: "", AmountKg: 2, SugarPercent: 10},
			{Name: "Cherry", AmountKg: 0.5, SugarPercent: 14},
		},
	})

	require.Len(t, recipe.Fruits, 2)
	assert.Equal(t, "Apple", recipe.Fruits[0].Name)
	assert.Equal(t, "Cherry", recipe.Fruits[1].Name)
}

func TestBuildRecipeNilNumericsSolveAsZero(t *testing.T) {
	recipe := BuildRecipe(models.RecipeRequest{Name: "Empty", Mode: models.ModeIngredients})

	assert.Equal(t, "1.000", recipe.CalculatedOG)
	assert.Equal(t, 0.0, recipe.VolumeLiters)
}

func TestBuildRecipeCarriesFavoriteID(t *testing.T) {
	recipe := BuildRecipe(models.RecipeRequest{
		Name:       "From favorite",
		FavoriteID: "fav-42",
	})

	assert.Equal(t, "fav-42", recipe.OriginalRecipeID)
	assert.Equal(t, models.ModeTarget, recipe.Mode, "mode defaults to target")
}
