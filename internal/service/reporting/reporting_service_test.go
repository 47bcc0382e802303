package reporting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/repository/sheets"
	"github.com/mamadbah2/meadery/internal/service/batches"
	"github.com/mamadbah2/meadery/internal/service/syncer"
)

type staticStore struct {
	docs map[string]models.Batch
}

func (s *staticStore) Create(context.Context, models.Batch) (string, error) { return "", nil }

func (s *staticStore) Update(context.Context, string, map[string]any) error { return nil }

func (s *staticStore) Delete(context.Context, string) error { return nil }

func (s *staticStore) Subscribe(_ context.Context, onSnapshot func(map[string]models.Batch), _ func(error)) (func(), error) {
	onSnapshot(s.docs)
	return func() {}, nil
}

type recordingExporter struct {
	mu   sync.Mutex
	rows [][]interface{}
}

func (e *recordingExporter) AppendRow(_ context.Context, _ string, values []interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = append(e.rows, values)
	return nil
}

func newTestReporting(t *testing.T, docs map[string]models.Batch, exporter sheets.Exporter, now time.Time) *Service {
	t.Helper()
	coord := syncer.NewCoordinator[models.Batch](&staticStore{docs: docs}, nil)
	require.NoError(t, coord.Open(context.Background()))

	svc := NewService(batches.NewService(coord, nil), exporter, 7, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func batchFixture(id, name string, status models.BatchStatus, start time.Time, logs ...models.LogEntry) models.Batch {
	return models.Batch{
		ID: id,
		RecipeCore: models.RecipeCore{
			Name:         name,
			CalculatedOG: "1.091",
		},
		StartDate: start,
		Status:    status,
		Logs:      logs,
	}
}

func TestBuildSummaries(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	docs := map[string]models.Batch{
		"b1": batchFixture("b1", "Traditional", models.StatusBrewing, now.AddDate(0, 0, -10),
			models.LogEntry{ID: "e1", Date: "2026-08-18", SG: "1.020"}),
		"b2": batchFixture("b2", "Melomel", models.StatusRacked, now.AddDate(0, 0, -30),
			models.LogEntry{ID: "e2", Date: "2026-08-01", SG: "1.005"}),
		"b3": batchFixture("b3", "Done", models.StatusBottled, now.AddDate(0, 0, -90)),
	}

	svc := newTestReporting(t, docs, nil, now)
	summaries := svc.BuildSummaries()

	require.Len(t, summaries, 2, "bottled batches are excluded from the digest")

	byName := map[string]BatchSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}

	fresh := byName["Traditional"]
	assert.Equal(t, "1.020", fresh.CurrentGravity)
	assert.Equal(t, 10, fresh.DaysFermenting)
	assert.Equal(t, 2, fresh.DaysSinceReading)
	assert.False(t, fresh.Stale)

	stale := byName["Melomel"]
	assert.Equal(t, 19, stale.DaysSinceReading)
	assert.True(t, stale.Stale)
}

func TestBuildSummariesNoReadings(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	docs := map[string]models.Batch{
		"b1": batchFixture("b1", "Fresh", models.StatusBrewing, now.AddDate(0, 0, -1)),
		"b2": batchFixture("b2", "Forgotten", models.StatusBrewing, now.AddDate(0, 0, -20)),
	}

	svc := newTestReporting(t, docs, nil, now)
	byName := map[string]BatchSummary{}
	for _, s := range svc.BuildSummaries() {
		byName[s.Name] = s
	}

	assert.Equal(t, -1, byName["Fresh"].DaysSinceReading)
	assert.False(t, byName["Fresh"].Stale)
	assert.True(t, byName["Forgotten"].Stale, "an old batch with no readings counts as stale")
}

func TestFormatDigestEmpty(t *testing.T) {
	svc := newTestReporting(t, nil, nil, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Fermentation digest: no active batches.", svc.FormatDigest(nil))
}

func TestRunDigestExportsRows(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	docs := map[string]models.Batch{
		"b1": batchFixture("b1", "Traditional", models.StatusBrewing, now.AddDate(0, 0, -10),
			models.LogEntry{ID: "e1", Date: "2026-08-18", SG: "1.020"}),
	}
	exporter := &recordingExporter{}

	svc := newTestReporting(t, docs, exporter, now)
	text, err := svc.RunDigest(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Traditional")
	assert.Contains(t, text, "SG 1.020")

	require.Len(t, exporter.rows, 1)
	assert.Equal(t, "2026-08-20", exporter.rows[0][0])
	assert.Equal(t, "Traditional", exporter.rows[0][1])
}
