package brewing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/meadery/internal/domain/models"
)

func TestFruitPresetsTable(t *testing.T) {
	presets := FruitPresets()
	require.NotEmpty(t, presets)

	assert.Equal(t, "Apple", presets[0].Name)
	assert.Equal(t, 13.0, presets[0].SugarPercent)
	assert.Equal(t, CustomPresetName, presets[len(presets)-1].Name)

	// Returned slice is a copy; mutating it must not leak into the table.
	presets[0].SugarPercent = 99
	assert.Equal(t, 13.0, FruitPresets()[0].SugarPercent)
}

func TestSelectPresetNamed(t *testing.T) {
	current := models.FruitAddition{Name: "Apple", AmountKg: 2, SugarPercent: 13}

	updated := SelectPreset("Dates", current)

	assert.Equal(t, "Dates", updated.Name)
	assert.Equal(t, 65.0, updated.SugarPercent)
	assert.Equal(t, 2.0, updated.AmountKg, "amount is untouched by preset selection")
}

func TestSelectPresetCustomClearsNameKeepsPercent(t *testing.T) {
	current := models.FruitAddition{Name: "Cherry", AmountKg: 1, SugarPercent: 14}

	updated := SelectPreset(CustomPresetName, current)

	assert.Empty(t, updated.Name)
	assert.Equal(t, 14.0, updated.SugarPercent)
}

func TestSelectPresetUnknownIsNoop(t *testing.T) {
	current := models.FruitAddition{Name: "Cherry", SugarPercent: 14}

	assert.Equal(t, current, SelectPreset("Durian", current))
}
