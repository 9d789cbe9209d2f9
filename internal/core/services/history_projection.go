package services

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// ProjectHistory annotates records, in store order, with their entry/exit
// pairing:
//   - an EXIT gets the time of the closest preceding ENTRY with the same PIN
//     as EntryTime (its own time when there is none), its own time as
//     ExitTime, and COMPLETED;
//   - an ENTRY gets its own time as EntryTime and is ACTIVE until an EXIT with
//     the same PIN appears later in the log.
func ProjectHistory(records []domain.LogRecord) []domain.HistoryItem {
	items := make([]domain.HistoryItem, len(records))

	lastEntry := make(map[string]time.Time)
	for i, rec := range records {
		ts := rec.Timestamp
		item := domain.HistoryItem{LogRecord: rec}
		switch {
		case rec.IsEntry():
			item.EntryTime = &ts
			item.Status = domain.StatusActive
			lastEntry[rec.Pin] = ts
		case rec.IsExit():
			item.ExitTime = &ts
			item.Status = domain.StatusCompleted
			entryTime, ok := lastEntry[rec.Pin]
			if !ok {
				entryTime = ts
			}
			item.EntryTime = &entryTime
		}
		items[i] = item
	}

	exitSeen := make(map[string]bool)
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.IsExit() {
			exitSeen[rec.Pin] = true
			continue
		}
		if rec.IsEntry() && exitSeen[rec.Pin] {
			items[i].Status = domain.StatusCompleted
		}
	}
	return items
}
