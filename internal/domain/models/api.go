package models

// Numeric inputs arrive as pointers so an omitted field is distinguishable
// from an explicit zero; the calculation layer coerces nil to 0.

// TargetCalcRequest asks for the honey mass required to reach a target ABV.
type TargetCalcRequest struct {
	VolumeLiters *float64 `json:"volumeLiters"`
	TargetAbv    *float64 `json:"targetAbv"`
}

// IngredientsCalcRequest asks for the OG and ABV produced by a set of
// ingredient masses.
type IngredientsCalcRequest struct {
	VolumeLiters *float64        `json:"volumeLiters"`
	HoneyKg      *float64        `json:"honeyKg"`
	Fruits       []FruitAddition `json:"fruits"`
}

// RecipeRequest carries the raw calculator inputs used to build a
// persist-ready recipe, either for saving as a favorite or for starting a
// batch.
type RecipeRequest struct {
	Name         string          `json:"name"`
	Mode         RecipeMode      `json:"mode"`
	VolumeLiters *float64        `json:"volumeLiters"`
	TargetAbv    *float64        `json:"targetAbv"`
	HoneyKg      *float64        `json:"honeyKg"`
	Fruits       []FruitAddition `json:"fruits"`

	// FavoriteID references the saved favorite this recipe was loaded from.
	FavoriteID string `json:"favoriteId"`
}

// StartBatchRequest starts a batch either from a saved favorite or from
// inline recipe inputs.
type StartBatchRequest struct {
	FavoriteID string         `json:"favoriteId"`
	Recipe     *RecipeRequest `json:"recipe"`
}

// StatusUpdateRequest changes a batch's lifecycle status.
type StatusUpdateRequest struct {
	Status BatchStatus `json:"status"`
}

// LogEntryRequest creates or rewrites a gravity reading.
type LogEntryRequest struct {
	Date string `json:"date"`
	SG   string `json:"sg"`
	Note string `json:"note"`
}

// BatchDetail is the read model served for a single batch: the record plus
// its display-ordered readings and derived gravity figures.
type BatchDetail struct {
	Batch          Batch      `json:"batch"`
	DisplayLogs    []LogEntry `json:"displayLogs"`
	CurrentGravity string     `json:"currentGravity"`
	CurrentAbv     string     `json:"currentAbv"`
}
