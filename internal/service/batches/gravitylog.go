package batches

import (
	"iter"
	"sort"

	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/service/brewing"
)

// DisplayLogs returns a restartable, descending-by-date view of the batch's
// readings. Sorting is presentation-only: the backing array keeps insertion
// order, and entries sharing a date keep their relative backing order.
func DisplayLogs(batch models.Batch) iter.Seq[models.LogEntry] {
	return func(yield func(models.LogEntry) bool) {
		sorted := make([]models.LogEntry, len(batch.Logs))
		copy(sorted, batch.Logs)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date > sorted[j].Date
		})
		for _, entry := range sorted {
			if !yield(entry) {
				return
			}
		}
	}
}

// CurrentGravity is the gravity of the most recent reading in display order,
// falling back to the recipe's calculated OG when no readings exist.
func CurrentGravity(batch models.Batch) string {
	for entry := range DisplayLogs(batch) {
		return entry.SG
	}
	return batch.CalculatedOG
}

// CurrentAbv derives the alcohol reached so far from the calculated OG and
// the current gravity.
func CurrentAbv(batch models.Batch) string {
	og := brewing.ParseSG(batch.CalculatedOG)
	fg := brewing.ParseSG(CurrentGravity(batch))
	return brewing.FormatAbv(brewing.SgToAbv(og, fg))
}
