// Package favorites manages the user's saved recipes on top of the sync
// coordinator.
package favorites

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/apperr"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/syncer"
)

// Service runs favorite-recipe operations against the session's favorites
// coordinator.
type Service struct {
	coord  *syncer.Coordinator[models.Recipe]
	logger *zap.Logger
}

// NewService wires a favorites service instance.
func NewService(coord *syncer.Coordinator[models.Recipe], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{coord: coord, logger: logger}
}

// Save persists a recipe as a favorite. The name is required; the create is
// awaited so remote failures surface to the caller. The returned id only
// shows up in the mirror once a snapshot delivers the new document.
func (s *Service) Save(ctx context.Context, recipe models.Recipe) (string, error) {
	if recipe.Name == "" {
		return "", fmt.Errorf("%w: recipe name is required", apperr.ErrValidation)
	}

	id, err := s.coord.Create(ctx, recipe)
	if err != nil {
		return "", fmt.Errorf("save favorite %q: %w", recipe.Name, err)
	}

	s.logger.Info("favorite saved", zap.String("id", id), zap.String("name", recipe.Name))
	return id, nil
}

// Get reads a favorite from the local mirror.
func (s *Service) Get(id string) (models.Recipe, bool) {
	return s.coord.Get(id)
}

// List returns the mirrored favorites sorted by name.
func (s *Service) List() []models.Recipe {
	docs := s.coord.Snapshot()
	out := make([]models.Recipe, 0, len(docs))
	for _, recipe := range docs {
		out = append(out, recipe)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Delete removes a favorite. Fire-and-forget; the record drops out of the
// mirror on the next snapshot.
func (s *Service) Delete(id string) {
	s.coord.Delete(id)
}
