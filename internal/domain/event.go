package domain

import (
	"sort"
	"time"
)

// SourceTranscripts is the sentinel label for events collected from
// transcript files that could not be attributed to a concrete project.
const SourceTranscripts = "transcripts"

// SourceUnknown is the synthetic project that absorbs overtime from
// sessions with no real project events.
const SourceUnknown = "unknown"

// Event is a single recorded activity timestamp with its originating
// source label. Timestamps have one-second precision.
type Event struct {
	Timestamp time.Time
	Source    string
}

// SortEvents orders events ascending by timestamp in place. Session
// reconstruction requires the global timeline across all sources; sorting
// per source would manufacture spurious sessions where sources interleave.
func SortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
