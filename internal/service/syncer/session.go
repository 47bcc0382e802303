package syncer

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/domain/models"
)

// Session owns the two per-user subscription channels: one for the favorites
// collection, one for the batches collection. Each is independently
// cancelable and both are torn down when the session ends.
type Session struct {
	Favorites *Coordinator[models.Recipe]
	Batches   *Coordinator[models.Batch]

	user   string
	logger *zap.Logger
}

// NewSession binds the session's coordinators to the injected stores.
func NewSession(user string, favorites Store[models.Recipe], batches Store[models.Batch], logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Favorites: NewCoordinator(favorites, logger.Named("favorites")),
		Batches:   NewCoordinator(batches, logger.Named("batches")),
		user:      user,
		logger:    logger,
	}
}

// User returns the authenticated user the session is scoped to.
func (s *Session) User() string {
	return s.user
}

// Open starts both subscriptions. If the second registration fails the first
// is torn down so a failed open leaves nothing running.
func (s *Session) Open(ctx context.Context) error {
	if err := s.Favorites.Open(ctx); err != nil {
		return err
	}
	if err := s.Batches.Open(ctx); err != nil {
		s.Favorites.Close()
		return err
	}
	s.logger.Info("session opened", zap.String("user", s.user))
	return nil
}

// Close tears down both subscriptions.
func (s *Session) Close() {
	s.Favorites.Close()
	s.Batches.Close()
	s.logger.Info("session closed", zap.String("user", s.user))
}
