package service

import (
	"time"

	"github.com/jarx/after15/internal/domain"
)

// OvertimeService is the query surface the CLI consumes. One invocation
// performs one synchronous batch pass; there is no internal parallelism
// and no cancellation mid-run.
type OvertimeService interface {
	// Overview loads the persisted ledger, recomputes overtime from log
	// files touched within the lookback window, overlays the fresh data,
	// and merges the result back into the ledger. The returned totals are
	// always valid; the error reports a failed ledger write only.
	Overview(lookbackDays int) (domain.DayTotals, error)

	// ExplainDate recomputes sessions over the full log history and
	// returns every session overlapping the given local date with its
	// overtime contribution to that date.
	ExplainDate(date time.Time) (*DateExplanation, error)

	// Resync rebuilds the ledger from scratch over the full log history
	// and reports how many day entries were written.
	Resync() (int, error)
}

// DateExplanation is the single-day breakdown behind "explain".
type DateExplanation struct {
	Date   time.Time
	Shift  domain.ShiftClass
	Window *domain.Window // nil when the whole day is overtime

	Sessions []SessionView
	// TotalOvertimeHours sums the per-session contributions to Date.
	TotalOvertimeHours float64
}

// SessionView is one reconstructed session as shown to the user, with
// instants localized and overtime restricted to the explained date.
type SessionView struct {
	StartLocal    time.Time
	EndLocal      time.Time
	Duration      time.Duration
	OvertimeHours float64
	// Projects lists real sources by descending event count; empty for
	// transcript-only sessions.
	Projects []ProjectShare
}

// ProjectShare is one source's weight within a session.
type ProjectShare struct {
	Name  string
	Count int
	// Share is this source's event-count fraction in [0,1].
	Share float64
}
