package brewing

import "github.com/mamadbah2/meadery/internal/domain/models"

// BuildRecipe assembles a persist-ready recipe from the raw calculator
// inputs. Fruits with blank names are dropped, the solver output for the
// selected mode fills the calculated fields, and the originating favorite id
// is carried when present. Nil numeric inputs mean "not entered" and solve
// as 0.
func BuildRecipe(req models.RecipeRequest) models.Recipe {
	volume := orZero(req.VolumeLiters)
	targetAbv := orZero(req.TargetAbv)
	honeyKg := orZero(req.HoneyKg)

	fruits := make([]models.FruitAddition, 0, len(req.Fruits))
	for _, fruit := range req.Fruits {
		if fruit.Name == "" {
			continue
		}
		fruits = append(fruits, fruit)
	}

	recipe := models.Recipe{
		RecipeCore: models.RecipeCore{
			Name:         req.Name,
			Mode:         req.Mode,
			VolumeLiters: volume,
			TargetAbv:    targetAbv,
			HoneyKg:      honeyKg,
			Fruits:       fruits,
		},
		OriginalRecipeID: req.FavoriteID,
	}
	if recipe.Mode == "" {
		recipe.Mode = models.ModeTarget
	}

	switch recipe.Mode {
	case models.ModeIngredients:
		result := SolveIngredients(IngredientsInput{
			VolumeLiters: volume,
			HoneyKg:      honeyKg,
			Fruits:       fruitInputs(fruits),
		})
		recipe.CalculatedOG = result.OG
		recipe.CalculatedAbv = result.Abv
	default:
		result := SolveTarget(TargetInput{VolumeLiters: volume, TargetAbv: targetAbv})
		recipe.CalculatedOG = result.OG
		recipe.HoneyKg = result.HoneyKg
		recipe.CalculatedAbv = FormatAbv(targetAbv)
	}

	return recipe
}

func fruitInputs(fruits []models.FruitAddition) []FruitInput {
	inputs := make([]FruitInput, 0, len(fruits))
	for _, fruit := range fruits {
		inputs = append(inputs, FruitInput{AmountKg: fruit.AmountKg, SugarPercent: fruit.SugarPercent})
	}
	return inputs
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
