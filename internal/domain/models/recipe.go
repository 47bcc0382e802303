package models

// RecipeMode selects which direction the gravity solver runs in.
type RecipeMode string

const (
	// ModeTarget computes the honey mass needed to hit a target ABV.
	ModeTarget RecipeMode = "target"
	// ModeIngredients computes OG and ABV from the ingredient masses.
	ModeIngredients RecipeMode = "ingredients"
)

// FruitAddition is a single fruit ingredient of a recipe.
type FruitAddition struct {
	Name         string  `bson:"name" json:"name"`
	AmountKg     float64 `bson:"amountKg" json:"amountKg"`
	SugarPercent float64 `bson:"sugarPercent" json:"sugarPercent"`
}

// RecipeCore holds the fields shared between a saved recipe and a batch
// started from it.
type RecipeCore struct {
	Name          string          `bson:"name" json:"name"`
	Mode          RecipeMode      `bson:"mode" json:"mode"`
	VolumeLiters  float64         `bson:"volumeLiters" json:"volumeLiters"`
	TargetAbv     float64         `bson:"targetAbv" json:"targetAbv"`
	HoneyKg       float64         `bson:"honeyKg" json:"honeyKg"`
	Fruits        []FruitAddition `bson:"fruits" json:"fruits"`
	CalculatedOG  string          `bson:"calculatedOg" json:"calculatedOg"`
	CalculatedAbv string          `bson:"calculatedAbv" json:"calculatedAbv"`
}

// Recipe is a persist-ready recipe record. The ID is assigned by the store
// and only becomes visible through collection snapshots.
type Recipe struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	User string `bson:"user,omitempty" json:"-"`

	RecipeCore `bson:",inline"`

	// OriginalRecipeID is set when this record was derived from a saved
	// favorite.
	OriginalRecipeID string `bson:"originalRecipeId,omitempty" json:"originalRecipeId,omitempty"`
}
