// Package batches manages the lifecycle of fermenting batches and their
// gravity logs on top of the sync coordinator. Log mutations always replace
// the whole array remotely; the store offers no per-element patch.
package batches

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/apperr"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/brewing"
	"github.com/mamadbah2/meadery/internal/service/syncer"
)

const logDateLayout = "2006-01-02"

// Gravity readings outside this range are rejected before any mutation.
const (
	minSG = 0.990
	maxSG = 1.200
)

// Service runs batch operations against the session's batches coordinator.
type Service struct {
	coord  *syncer.Coordinator[models.Batch]
	logger *zap.Logger
	newID  func() string
}

// NewService wires a batch service instance.
func NewService(coord *syncer.Coordinator[models.Batch], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		coord:  coord,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Start creates a batch from a recipe: the recipe fields are copied, status
// begins at brewing with an empty log, and the start date is stamped by the
// store. The create is awaited so remote failures surface to the caller.
func (s *Service) Start(ctx context.Context, recipe models.Recipe) (string, error) {
	if recipe.Name == "" {
		return "", fmt.Errorf("%w: recipe name is required to start a batch", apperr.ErrValidation)
	}

	batch := models.Batch{
		RecipeCore:       recipe.RecipeCore,
		Status:           models.StatusBrewing,
		Logs:             []models.LogEntry{},
		OriginalRecipeID: recipe.ID,
	}
	if batch.OriginalRecipeID == "" {
		batch.OriginalRecipeID = recipe.OriginalRecipeID
	}

	id, err := s.coord.Create(ctx, batch)
	if err != nil {
		return "", fmt.Errorf("start batch %q: %w", recipe.Name, err)
	}

	s.logger.Info("batch started", zap.String("id", id), zap.String("name", recipe.Name))
	return id, nil
}

// Get reads a batch from the local mirror.
func (s *Service) Get(id string) (models.Batch, bool) {
	return s.coord.Get(id)
}

// List returns the mirrored batches, most recently started first.
func (s *Service) List() []models.Batch {
	docs := s.coord.Snapshot()
	out := make([]models.Batch, 0, len(docs))
	for _, batch := range docs {
		out = append(out, batch)
	}
	sortBatches(out)
	return out
}

// Delete removes a batch. The remote delete is fire-and-forget; the record
// drops out of the mirror on the next snapshot.
func (s *Service) Delete(id string) {
	s.coord.Delete(id)
}

// WatchDetail registers the batch currently open in a detail view so a
// concurrent deletion can force navigation back to the list.
func (s *Service) WatchDetail(id string, onEvicted func(id string)) {
	s.coord.WatchDetail(id, onEvicted)
}

// ClearDetail drops the detail watch.
func (s *Service) ClearDetail() {
	s.coord.ClearDetail()
}

// SetStatus moves a batch to the given status. Any known status may follow
// any other; only unknown values are rejected.
func (s *Service) SetStatus(id string, status models.BatchStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, status)
	}
	if _, ok := s.coord.Get(id); !ok {
		return fmt.Errorf("batch %s: %w", id, apperr.ErrNotFound)
	}

	s.coord.Update(id, syncer.Patch[models.Batch]{
		Fields: map[string]any{"status": status},
		Apply: func(batch models.Batch) models.Batch {
			batch.Status = status
			return batch
		},
	})
	return nil
}

// AddLogEntry validates and appends a gravity reading, assigning it a stable
// synthetic id so later edits and deletes address exactly this reading even
// if another one shares the same date and gravity.
func (s *Service) AddLogEntry(batchID string, req models.LogEntryRequest) (models.LogEntry, error) {
	entry := models.LogEntry{
		ID:   s.newID(),
		Date: req.Date,
		SG:   req.SG,
		Note: req.Note,
	}
	if err := validateLogEntry(entry); err != nil {
		return models.LogEntry{}, err
	}
	entry.SG = brewing.FormatSG(brewing.ParseSG(entry.SG))

	batch, ok := s.coord.Get(batchID)
	if !ok {
		return models.LogEntry{}, fmt.Errorf("batch %s: %w", batchID, apperr.ErrNotFound)
	}

	logs := make([]models.LogEntry, 0, len(batch.Logs)+1)
	logs = append(logs, batch.Logs...)
	logs = append(logs, entry)

	s.replaceLogs(batchID, logs)
	return entry, nil
}

// EditLogEntry rewrites the reading with the given id, keeping the id itself
// stable. The new values are re-validated before any mutation.
func (s *Service) EditLogEntry(batchID, entryID string, req models.LogEntryRequest) error {
	updated := models.LogEntry{
		ID:   entryID,
		Date: req.Date,
		SG:   req.SG,
		Note: req.Note,
	}
	if err := validateLogEntry(updated); err != nil {
		return err
	}
	updated.SG = brewing.FormatSG(brewing.ParseSG(updated.SG))

	batch, ok := s.coord.Get(batchID)
	if !ok {
		return fmt.Errorf("batch %s: %w", batchID, apperr.ErrNotFound)
	}

	logs := make([]models.LogEntry, len(batch.Logs))
	copy(logs, batch.Logs)
	found := false
	for i, entry := range logs {
		if entry.ID == entryID {
			logs[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("log entry %s: %w", entryID, apperr.ErrNotFound)
	}

	s.replaceLogs(batchID, logs)
	return nil
}

// DeleteLogEntry removes the reading with the given id. Deleting an id that
// no longer exists is a no-op and leaves the array unchanged.
func (s *Service) DeleteLogEntry(batchID, entryID string) error {
	batch, ok := s.coord.Get(batchID)
	if !ok {
		return fmt.Errorf("batch %s: %w", batchID, apperr.ErrNotFound)
	}

	logs := make([]models.LogEntry, 0, len(batch.Logs))
	found := false
	for _, entry := range batch.Logs {
		if !found && entry.ID == entryID {
			found = true
			continue
		}
		logs = append(logs, entry)
	}
	if !found {
		return nil
	}

	s.replaceLogs(batchID, logs)
	return nil
}

// replaceLogs pushes the whole new array, optimistically locally and
// asynchronously to the store.
func (s *Service) replaceLogs(batchID string, logs []models.LogEntry) {
	s.coord.Update(batchID, syncer.Patch[models.Batch]{
		Fields: map[string]any{"logs": logs},
		Apply: func(batch models.Batch) models.Batch {
			batch.Logs = logs
			return batch
		},
	})
}

func validateLogEntry(entry models.LogEntry) error {
	err := validation.ValidateStruct(&entry,
		validation.Field(&entry.Date, validation.Required, validation.Date(logDateLayout)),
		validation.Field(&entry.SG, validation.Required, validation.By(checkGravityRange)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

func checkGravityRange(value interface{}) error {
	raw, _ := value.(string)
	sg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("must be a numeric gravity reading")
	}
	if sg < minSG || sg > maxSG {
		return fmt.Errorf("must be between %.3f and %.3f", minSG, maxSG)
	}
	return nil
}

func sortBatches(batches []models.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].StartDate.After(batches[j].StartDate)
	})
}
