package domain

import "time"

const (
	// SessionGap is the silence threshold: an event further than this from
	// the previous one starts a new session. The comparison is strictly
	// greater-than, so a gap of exactly SessionGap extends the session.
	SessionGap = 30 * time.Minute

	// MinSessionDuration is the shortest session worth keeping. Anything
	// shorter (including single-event zero-duration sessions) is discarded.
	MinSessionDuration = 5 * time.Minute
)

// Session is a contiguous run of events with no internal gap exceeding
// SessionGap. Sessions are derived values rebuilt on every run and never
// persisted.
type Session struct {
	Start time.Time
	End   time.Time
	// SourceCounts maps source label to the number of events it
	// contributed. Used as a best-effort weight for attribution.
	SourceCounts map[string]int
}

func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Reconstruct groups a timestamp-sorted event stream into sessions.
// Events must already be sorted ascending (see SortEvents).
func Reconstruct(events []Event) []Session {
	if len(events) == 0 {
		return nil
	}

	var sessions []Session
	current := Session{
		Start:        events[0].Timestamp,
		End:          events[0].Timestamp,
		SourceCounts: map[string]int{events[0].Source: 1},
	}

	for _, e := range events[1:] {
		if e.Timestamp.Sub(current.End) > SessionGap {
			if current.Duration() >= MinSessionDuration {
				sessions = append(sessions, current)
			}
			current = Session{
				Start:        e.Timestamp,
				End:          e.Timestamp,
				SourceCounts: make(map[string]int),
			}
		}
		current.End = e.Timestamp
		current.SourceCounts[e.Source]++
	}

	if current.Duration() >= MinSessionDuration {
		sessions = append(sessions, current)
	}

	return sessions
}
