package brewing

import "github.com/mamadbah2/meadery/internal/domain/models"

// DefaultSugarPercent is the sugar-by-weight percentage a new fruit addition
// starts with before a preset is chosen.
const DefaultSugarPercent = 10

// CustomPresetName is the table entry that opts out of the presets: the
// fruit name is cleared and the current sugar percent is kept.
const CustomPresetName = "Custom"

// FruitPreset maps an ingredient name to its default sugar-by-weight percent.
type FruitPreset struct {
	Name         string  `json:"name"`
	SugarPercent float64 `json:"sugarPercent"`
}

var fruitPresets = []FruitPreset{
	{Name: "Apple", SugarPercent: 13},
	{Name: "Apricot", SugarPercent: 9},
	{Name: "Blackberry", SugarPercent: 10},
	{Name: "Blueberry", SugarPercent: 12},
	{Name: "Cherry", SugarPercent: 14},
	{Name: "Cranberry", SugarPercent: 4},
	{Name: "Grape", SugarPercent: 18},
	{Name: "Mango", SugarPercent: 14},
	{Name: "Orange", SugarPercent: 12},
	{Name: "Peach", SugarPercent: 10},
	{Name: "Pear", SugarPercent: 12},
	{Name: "Pineapple", SugarPercent: 13},
	{Name: "Plum", SugarPercent: 11},
	{Name: "Raspberry", SugarPercent: 9},
	{Name: "Strawberry", SugarPercent: 7},
	{Name: "Raisins", SugarPercent: 59},
	{Name: "Dates", SugarPercent: 65},
	{Name: CustomPresetName, SugarPercent: DefaultSugarPercent},
}

// FruitPresets returns the ordered preset table.
func FruitPresets() []FruitPreset {
	out := make([]FruitPreset, len(fruitPresets))
	copy(out, fruitPresets)
	return out
}

// SelectPreset applies a preset choice to an existing fruit addition.
// Picking a named preset sets both the name and the sugar percent; picking
// Custom clears the name and keeps the current percent. An unknown preset
// name leaves the addition unchanged.
func SelectPreset(preset string, current models.FruitAddition) models.FruitAddition {
	if preset == CustomPresetName {
		current.Name = ""
		return current
	}
	for _, p := range fruitPresets {
		if p.Name == preset {
			current.Name = p.Name
			current.SugarPercent = p.SugarPercent
			return current
		}
	}
	return current
}
