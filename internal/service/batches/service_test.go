package batches

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/meadery/internal/apperr"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/syncer"
)

type fieldUpdate struct {
	id     string
	fields map[string]any
}

// batchStore implements syncer.Store for batches in tests.
type batchStore struct {
	mu         sync.Mutex
	initial    map[string]models.Batch
	createID   string
	created    []models.Batch
	updates    []fieldUpdate
	deletes    []string
	onSnapshot func(map[string]models.Batch)
}

func (s *batchStore) Create(_ context.Context, batch models.Batch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, batch)
	return s.createID, nil
}

func (s *batchStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, fieldUpdate{id: id, fields: fields})
	return nil
}

func (s *batchStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	return nil
}

func (s *batchStore) Subscribe(_ context.Context, onSnapshot func(map[string]models.Batch), _ func(error)) (func(), error) {
	s.mu.Lock()
	s.onSnapshot = onSnapshot
	initial := s.initial
	s.mu.Unlock()

	if initial == nil {
		initial = map[string]models.Batch{}
	}
	onSnapshot(initial)
	return func() {}, nil
}

func (s *batchStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func (s *batchStore) lastLogs(t *testing.T) []models.LogEntry {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.updates)
	logs, ok := s.updates[len(s.updates)-1].fields["logs"].([]models.LogEntry)
	require.True(t, ok, "log mutations must replace the whole array")
	return logs
}

func newTestService(t *testing.T, store *batchStore) *Service {
	t.Helper()
	coord := syncer.NewCoordinator[models.Batch](store, nil)
	require.NoError(t, coord.Open(context.Background()))

	svc := NewService(coord, nil)
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("entry-%d", seq)
	}
	return svc
}

func testBatch(id string, logs ...models.LogEntry) models.Batch {
	return models.Batch{
		ID: id,
		RecipeCore: models.RecipeCore{
			Name:         "Traditional",
			Mode:         models.ModeTarget,
			CalculatedOG: "1.091",
		},
		Status: models.StatusBrewing,
		Logs:   logs,
	}
}

func TestStartBatch(t *testing.T) {
	store := &batchStore{createID: "b1"}
	svc := newTestService(t, store)

	recipe := models.Recipe{
		ID:         "fav-1",
		RecipeCore: models.RecipeCore{Name: "Traditional", CalculatedOG: "1.091"},
	}

	id, err := svc.Start(context.Background(), recipe)
	require.NoError(t, err)
	assert.Equal(t, "b1", id)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Equal(t, models.StatusBrewing, created.Status)
	assert.Empty(t, created.Logs)
	assert.Equal(t, "fav-1", created.OriginalRecipeID)
}

func TestStartBatchRequiresName(t *testing.T) {
	svc := newTestService(t, &batchStore{})

	_, err := svc.Start(context.Background(), models.Recipe{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSetStatusAcceptsAnyTransition(t *testing.T) {
	store := &batchStore{initial: map[string]models.Batch{"b1": testBatch("b1")}}
	svc := newTestService(t, store)

	// The transition relation is unrestricted, including backwards moves.
	for _, status := range []models.BatchStatus{
		models.StatusArchived,
		models.StatusBrewing,
		models.StatusBottled,
		models.StatusRacked,
	} {
		require.NoError(t, svc.SetStatus("b1", status))
		got, _ := svc.Get("b1")
		assert.Equal(t, status, got.Status)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	store := &batchStore{initial: map[string]models.Batch{"b1": testBatch("b1")}}
	svc := newTestService(t, store)

	assert.ErrorIs(t, svc.SetStatus("b1", "exploded"), apperr.ErrValidation)
}

func TestAddLogEntryValidationBoundaries(t *testing.T) {
	cases := []struct {
		sg string
		ok bool
	}{
		{sg: "0.989", ok: false},
		{sg: "0.990", ok: true},
		{sg: "1.200", ok: true},
		{sg: "1.201", ok: false},
		{sg: "abc", ok: false},
		{sg: "", ok: false},
	}

	for _, tc := range cases {
		store := &batchStore{initial: map[string]models.Batch{"b1": testBatch("b1")}}
		svc := newTestService(t, store)

		_, err := svc.AddLogEntry("b1", models.LogEntryRequest{Date: "2026-08-01", SG: tc.sg})
		if tc.ok {
			require.NoError(t, err, "sg %q must be accepted", tc.sg)
			continue
		}
		require.ErrorIs(t, err, apperr.ErrValidation, "sg %q must be rejected", tc.sg)

		// A rejected reading causes no mutation, local or remote.
		got, _ := svc.Get("b1")
		assert.Empty(t, got.Logs)
		assert.Zero(t, store.updateCount())
	}
}

func TestAddLogEntryAppendsAndReplacesWholeArray(t *testing.T) {
	store := &batchStore{initial: map[string]models.Batch{"b1": testBatch("b1")}}
	svc := newTestService(t, store)

	first, err := svc.AddLogEntry("b1", models.LogEntryRequest{Date: "2026-08-01", SG: "1.09", Note: "pitched"})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", first.ID)
	assert.Equal(t, "1.090", first.SG, "gravity is normalized to 3 decimals")

	_, err = svc.AddLogEntry("b1", models.LogEntryRequest{Date: "2026-08-05", SG: "1.050"})
	require.NoError(t, err)

	got, _ := svc.Get("b1")
	require.Len(t, got.Logs, 2)
	assert.Equal(t, "entry-1", got.Logs[0].ID, "backing array keeps insertion order")

	require.Eventually(t, func() bool { return store.updateCount() == 2 }, time.Second, time.Millisecond)
	assert.Len(t, store.lastLogs(t), 2)
}

func TestDisplayLogsDescendingByDate(t *testing.T) {
	batch := testBatch("b1",
		models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.090"},
		models.LogEntry{ID: "e2", Date: "2026-08-10", SG: "1.020"},
		models.LogEntry{ID: "e3", Date: "2026-08-05", SG: "1.050"},
	)

	display := slices.Collect(DisplayLogs(batch))

	require.Len(t, display, 3)
	assert.Equal(t, []string{"e2", "e3", "e1"}, []string{display[0].ID, display[1].ID, display[2].ID})

	// Restartable: a second iteration yields the same order.
	again := slices.Collect(DisplayLogs(batch))
	assert.Equal(t, display, again)

	// Presentation-only: the backing array is untouched.
	assert.Equal(t, "e1", batch.Logs[0].ID)
}

func TestEditLogEntryTouchesOnlyThatEntry(t *testing.T) {
	// Two readings sharing the same date and gravity stay distinguishable
	// through their synthetic ids.
	batch := testBatch("b1",
		models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.050"},
		models.LogEntry{ID: "e2", Date: "2026-08-01", SG: "1.050"},
	)
	store := &batchStore{initial: map[string]models.Batch{"b1": batch}}
	svc := newTestService(t, store)

	require.NoError(t, svc.EditLogEntry("b1", "e2", models.LogEntryRequest{
		Date: "2026-08-01", SG: "1.040", Note: "re-measured",
	}))

	got, _ := svc.Get("b1")
	require.Len(t, got.Logs, 2)
	assert.Equal(t, "1.050", got.Logs[0].SG)
	assert.Equal(t, "1.040", got.Logs[1].SG)
	assert.Equal(t, "e2", got.Logs[1].ID, "the id survives the edit")
}

func TestEditLogEntryRevalidatesRange(t *testing.T) {
	batch := testBatch("b1", models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.050"})
	store := &batchStore{initial: map[string]models.Batch{"b1": batch}}
	svc := newTestService(t, store)

	err := svc.EditLogEntry("b1", "e1", models.LogEntryRequest{Date: "2026-08-01", SG: "1.500"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	got, _ := svc.Get("b1")
	assert.Equal(t, "1.050", got.Logs[0].SG)
}

func TestEditLogEntryMissingID(t *testing.T) {
	batch := testBatch("b1", models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.050"})
	store := &batchStore{initial: map[string]models.Batch{"b1": batch}}
	svc := newTestService(t, store)

	err := svc.EditLogEntry("b1", "ghost", models.LogEntryRequest{Date: "2026-08-01", SG: "1.040"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteLogEntry(t *testing.T) {
	batch := testBatch("b1",
		models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.090"},
		models.LogEntry{ID: "e2", Date: "2026-08-05", SG: "1.050"},
	)
	store := &batchStore{initial: map[string]models.Batch{"b1": batch}}
	svc := newTestService(t, store)

	require.NoError(t, svc.DeleteLogEntry("b1", "e1"))
	got, _ := svc.Get("b1")
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "e2", got.Logs[0].ID)
}

func TestDeleteLogEntryMissingIsNoop(t *testing.T) {
	batch := testBatch("b1", models.LogEntry{ID: "e1", Date: "2026-08-01", SG: "1.090"})
	store := &batchStore{initial: map[string]models.Batch{"b1": batch}}
	svc := newTestService(t, store)

	require.NoError(t, svc.DeleteLogEntry("b1", "ghost"))

	got, _ := svc.Get("b1")
	assert.Len(t, got.Logs, 1)
	assert.Zero(t, store.updateCount(), "a no-op delete issues no remote write")
}

func TestCurrentGravityFallsBackToCalculatedOG(t *testing.T) {
	batch := testBatch("b1")
	assert.Equal(t, "1.091", CurrentGravity(batch))

	batch.Logs = []models.LogEntry{
		{ID: "e1", Date: "2026-08-01", SG: "1.090"},
		{ID: "e2", Date: "2026-08-12", SG: "1.010"},
	}
	assert.Equal(t, "1.010", CurrentGravity(batch))
}

func TestCurrentAbv(t *testing.T) {
	batch := testBatch("b1", models.LogEntry{ID: "e1", Date: "2026-08-12", SG: "1.010"})

	// (1.091 - 1.010) * 131.25 = 10.63
	assert.Equal(t, "10.6", CurrentAbv(batch))
}

func TestListSortsByStartDateDescending(t *testing.T) {
	older := testBatch("b1")
	older.StartDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := testBatch("b2")
	newer.StartDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	store := &batchStore{initial: map[string]models.Batch{"b1": older, "b2": newer}}
	svc := newTestService(t, store)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[0].ID)
}
