package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/repository/sheets"
	"github.com/mamadbah2/meadery/internal/service/batches"
)

const (
	dateLayout  = "2006-01-02"
	exportRange = "Digest!A:G"
)

// BatchSummary is one line of the fermentation digest.
type BatchSummary struct {
	Name             string
	Status           models.BatchStatus
	DaysFermenting   int
	CurrentGravity   string
	CurrentAbv       string
	DaysSinceReading int // -1 when no readings exist yet
	Stale            bool
}

// Service builds fermentation digests over the mirrored batches and exports
// them to a spreadsheet when an exporter is configured.
type Service struct {
	batches    *batches.Service
	exporter   sheets.Exporter
	logger     *zap.Logger
	now        func() time.Time
	staleAfter time.Duration
}

// NewService wires a reporting service. The exporter may be nil, in which
// case digests are only rendered, never exported.
func NewService(batchSvc *batches.Service, exporter sheets.Exporter, staleAfterDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if staleAfterDays <= 0 {
		staleAfterDays = 7
	}
	return &Service{
		batches:    batchSvc,
		exporter:   exporter,
		logger:     logger,
		now:        time.Now,
		staleAfter: time.Duration(staleAfterDays) * 24 * time.Hour,
	}
}

// BuildSummaries derives a summary per active batch. Bottled and archived
// batches are excluded; they no longer need readings.
func (s *Service) BuildSummaries() []BatchSummary {
	now := s.now().UTC()

	var summaries []BatchSummary
	for _, batch := range s.batches.List() {
		if batch.Status == models.StatusBottled || batch.Status == models.StatusArchived {
			continue
		}

		summary := BatchSummary{
			Name:             batch.Name,
			Status:           batch.Status,
			CurrentGravity:   batches.CurrentGravity(batch),
			CurrentAbv:       batches.CurrentAbv(batch),
			DaysFermenting:   int(now.Sub(batch.StartDate).Hours() / 24),
			DaysSinceReading: -1,
		}

		if last, ok := lastReadingDate(batch); ok {
			sinceReading := now.Sub(last)
			summary.DaysSinceReading = int(sinceReading.Hours() / 24)
			summary.Stale = sinceReading > s.staleAfter
		} else {
			// Never measured; stale once the batch itself is old enough.
			summary.Stale = now.Sub(batch.StartDate) > s.staleAfter
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// FormatDigest renders the summaries as a plain-text digest.
func (s *Service) FormatDigest(summaries []BatchSummary) string {
	if len(summaries) == 0 {
		return "Fermentation digest: no active batches."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Fermentation digest (%s):", s.now().UTC().Format(dateLayout)))
	for _, summary := range summaries {
		b.WriteString(fmt.Sprintf("\n%s [%s]: SG %s, ABV %s%%, day %d.",
			summary.Name, summary.Status, summary.CurrentGravity, summary.CurrentAbv, summary.DaysFermenting))
		switch {
		case summary.DaysSinceReading < 0:
			b.WriteString(" No readings yet.")
		case summary.Stale:
			b.WriteString(fmt.Sprintf(" Last reading %d days ago, take a new one.", summary.DaysSinceReading))
		default:
			b.WriteString(fmt.Sprintf(" Last reading %d days ago.", summary.DaysSinceReading))
		}
	}

	return b.String()
}

// RunDigest builds the digest, exports one spreadsheet row per summary when
// an exporter is configured and returns the rendered text.
func (s *Service) RunDigest(ctx context.Context) (string, error) {
	summaries := s.BuildSummaries()
	text := s.FormatDigest(summaries)

	if s.exporter == nil {
		return text, nil
	}

	today := s.now().UTC().Format(dateLayout)
	for _, summary := range summaries {
		values := []interface{}{
			today,
			summary.Name,
			string(summary.Status),
			summary.CurrentGravity,
			summary.CurrentAbv,
			summary.DaysFermenting,
			summary.DaysSinceReading,
		}
		if err := s.exporter.AppendRow(ctx, exportRange, values); err != nil {
			return text, fmt.Errorf("export digest row for %q: %w", summary.Name, err)
		}
	}

	return text, nil
}

func lastReadingDate(batch models.Batch) (time.Time, bool) {
	for entry := range batches.DisplayLogs(batch) {
		parsed, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			continue
		}
		return parsed, true
	}
	return time.Time{}, false
}
