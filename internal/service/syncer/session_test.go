package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/meadery/internal/domain/models"
)

// sessionStore is a minimal generic Store used only to exercise the session
// lifecycle.
type sessionStore[T any] struct {
	mu           sync.Mutex
	subscribeErr error
	subscribed   bool
	unsubscribed bool
}

func (s *sessionStore[T]) Create(context.Context, T) (string, error) { return "", nil }

func (s *sessionStore[T]) Update(context.Context, string, map[string]any) error { return nil }

func (s *sessionStore[T]) Delete(context.Context, string) error { return nil }

func (s *sessionStore[T]) Subscribe(_ context.Context, onSnapshot func(map[string]T), _ func(error)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	s.subscribed = true
	onSnapshot(map[string]T{})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.unsubscribed = true
	}, nil
}

func TestSessionOpenAndClose(t *testing.T) {
	favStore := &sessionStore[models.Recipe]{}
	batchStore := &sessionStore[models.Batch]{}
	session := NewSession("user-1", favStore, batchStore, nil)

	require.NoError(t, session.Open(context.Background()))
	assert.True(t, favStore.subscribed)
	assert.True(t, batchStore.subscribed)
	assert.Equal(t, "user-1", session.User())

	session.Close()
	assert.True(t, favStore.unsubscribed)
	assert.True(t, batchStore.unsubscribed)
}

func TestSessionOpenTearsDownOnPartialFailure(t *testing.T) {
	favStore := &sessionStore[models.Recipe]{}
	batchStore := &sessionStore[models.Batch]{subscribeErr: errors.New("no channel")}
	session := NewSession("user-1", favStore, batchStore, nil)

	require.Error(t, session.Open(context.Background()))
	assert.True(t, favStore.unsubscribed, "the favorites channel must not leak")
}
