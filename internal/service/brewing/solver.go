// Package brewing implements the mead calculation engine: unit conversions,
// the fruit sugar preset table, the two-directional gravity solver and the
// recipe builder. Everything here is pure; invalid numeric inputs are
// coerced to 0 rather than rejected, validation belongs to the callers.
package brewing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// Points per pound per gallon contributed by each fermentable.
	honeyPPG   = 35
	sucrosePPG = 46

	// abvFactor converts a gravity drop into percent alcohol by volume.
	abvFactor = 131.25
)

// TargetInput feeds the target-mode solve: how much honey is needed to hit
// the requested ABV at the given volume.
type TargetInput struct {
	VolumeLiters float64
	TargetAbv    float64
}

// TargetResult is the target-mode output. OG is rendered to 3 decimals,
// HoneyKg is rounded to 2.
type TargetResult struct {
	OG      string
	HoneyKg float64
}

// SolveTarget computes the original gravity implied by the target ABV and
// the honey mass required to reach it.
func SolveTarget(in TargetInput) TargetResult {
	og := 1 + in.TargetAbv/abvFactor
	points := (og - 1) * 1000 * LitersToGallons(in.VolumeLiters)
	honeyKg := math.Max(0, points/honeyPPG/lbsPerKg)

	return TargetResult{
		OG:      FormatSG(og),
		HoneyKg: math.Round(honeyKg*100) / 100,
	}
}

// FruitInput is one fruit line of an ingredients-mode solve.
type FruitInput struct {
	AmountKg     float64
	SugarPercent float64
}

// IngredientsInput feeds the ingredients-mode solve: what strength do these
// masses produce at the given volume.
type IngredientsInput struct {
	VolumeLiters float64
	HoneyKg      float64
	Fruits       []FruitInput
}

// IngredientsResult is the ingredients-mode output. OG carries 3 decimals,
// Abv carries 1.
type IngredientsResult struct {
	OG  string
	Abv string
}

// SolveIngredients computes OG and the ABV the must would reach fermented
// dry (final gravity 1.000).
func SolveIngredients(in IngredientsInput) IngredientsResult {
	totalPoints := KgToLbs(in.HoneyKg) * honeyPPG
	for _, fruit := range in.Fruits {
		totalPoints += KgToLbs(fruit.AmountKg) * (fruit.SugarPercent / 100 * sucrosePPG)
	}

	gallons := LitersToGallons(in.VolumeLiters)
	gravityPoints := 0.0
	if gallons > 0 {
		gravityPoints = totalPoints / gallons
	}

	og := 1 + gravityPoints/1000
	return IngredientsResult{
		OG:  FormatSG(og),
		Abv: FormatAbv(SgToAbv(og, 1.000)),
	}
}

// SgToAbv converts an original/final gravity pair into percent alcohol by
// volume.
func SgToAbv(og, fg float64) float64 {
	return (og - fg) * abvFactor
}

// FormatSG renders a specific gravity to the canonical 3 decimals.
func FormatSG(sg float64) string {
	return strconv.FormatFloat(sg, 'f', 3, 64)
}

// FormatAbv renders an ABV percentage to 1 decimal.
func FormatAbv(abv float64) string {
	return fmt.Sprintf("%.1f", abv)
}

// ParseSG coerces a numeric string into a gravity value. Empty or malformed
// input yields 0; range policing is a caller concern.
func ParseSG(value string) float64 {
	sg, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return sg
}
