package service

import (
	"time"

	"bookshelf/internal/microservices/http-api/models"
)

// ResolveStatusChange applies an explicit status change to a copy of ub.
// The new status is taken verbatim. Moving to completed stamps completed_at
// once; any other status clears it. The returned flag is the completion
// event: true only when the record crossed into completed.
func ResolveStatusChange(ub models.UserBook, next models.ReadingStatus, now time.Time) (models.UserBook, bool) {
	wasCompleted := ub.Status == models.StatusCompleted

	ub.Status = next
	if next == models.StatusCompleted {
		if ub.CompletedAt == nil {
			ub.CompletedAt = timePtr(now)
		}
	} else {
		ub.CompletedAt = nil
	}

	return ub, !wasCompleted && next == models.StatusCompleted
}

// ResolveProgressUpdate records a new current page on a copy of ub.
//
// A to-read record with a positive page starts reading (started_at is only
// ever set once). Reaching totalPages completes the record and wins over
// the reading rule. Progress never moves a record out of completed.
func ResolveProgressUpdate(ub models.UserBook, page, totalPages int, now time.Time) (models.UserBook, bool, error) {
	if page < 0 {
		return ub, false, invalidArgument("current page must be >= 0, got %d", page)
	}

	prior := ub.Status
	ub.CurrentPage = page

	if prior == models.StatusToRead && page > 0 {
		ub.Status = models.StatusReading
		if ub.StartedAt == nil {
			ub.StartedAt = timePtr(now)
		}
	}

	if page >= totalPages && prior != models.StatusCompleted {
		ub.Status = models.StatusCompleted
		ub.CompletedAt = timePtr(now)
		return ub, true, nil
	}

	// legacy rows may be completed without a timestamp
	if ub.Status == models.StatusCompleted && ub.CompletedAt == nil {
		ub.CompletedAt = timePtr(now)
	}

	return ub, false, nil
}

// resolveInitialStatus builds the state of a brand new record. Starting out
// as completed counts as a completion.
func resolveInitialStatus(ub models.UserBook, initial models.ReadingStatus, now time.Time) (models.UserBook, bool) {
	ub.Status = models.StatusToRead
	return ResolveStatusChange(ub, initial, now)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
