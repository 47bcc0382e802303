package models

import "time"

// BatchStatus is the lifecycle stage of a fermenting batch. The transition
// relation is deliberately unrestricted: any status may follow any other,
// driven only by explicit user selection.
type BatchStatus string

const (
	StatusBrewing  BatchStatus = "brewing"
	StatusRacked   BatchStatus = "racked"
	StatusBottled  BatchStatus = "bottled"
	StatusArchived BatchStatus = "archived"
)

// BatchStatuses lists every accepted status value, in lifecycle order.
var BatchStatuses = []BatchStatus{StatusBrewing, StatusRacked, StatusBottled, StatusArchived}

// Valid reports whether s is one of the known status values.
func (s BatchStatus) Valid() bool {
	for _, known := range BatchStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// LogEntry is a single gravity reading. The ID is a synthetic identifier
// assigned at creation time so that two readings sharing the same date and
// gravity remain individually addressable for edit and delete.
type LogEntry struct {
	ID   string `bson:"id" json:"id"`
	Date string `bson:"date" json:"date"` // client-supplied, YYYY-MM-DD
	SG   string `bson:"sg" json:"sg"`     // numeric string, 3 decimals
	Note string `bson:"note" json:"note"`
}

// Batch is an in-progress fermentation started from a recipe. Logs keep
// insertion order; sorting happens only in display views. Mutations to Logs
// are persisted as whole-array replacements, never per-element patches.
type Batch struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	User string `bson:"user,omitempty" json:"-"`

	RecipeCore `bson:",inline"`

	// StartDate is stamped by the store adapter at insert time.
	StartDate time.Time   `bson:"startDate" json:"startDate"`
	Status    BatchStatus `bson:"status" json:"status"`
	Logs      []LogEntry  `bson:"logs" json:"logs"`

	OriginalRecipeID string `bson:"originalRecipeId,omitempty" json:"originalRecipeId,omitempty"`
}
