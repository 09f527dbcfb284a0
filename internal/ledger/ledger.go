// Package ledger owns the persisted day/month overtime summary. It is the
// only durable state in the engine: loaded once at process start, rewritten
// atomically at process end, never touched concurrently within a run.
package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jarx/after15/internal/domain"
)

// CurrentVersion is the on-disk schema version.
const CurrentVersion = 2

// File is the on-disk document: a schema version plus day and month maps.
type File struct {
	Version int                   `json:"version"`
	Days    map[string]DayEntry   `json:"days"`
	Months  map[string]MonthEntry `json:"months"`
}

// DayEntry is one finalized day record. Processed entries with non-zero
// hours are protected from being overwritten by later recomputations.
type DayEntry struct {
	Hours     float64                 `json:"hours"`
	Formatted string                  `json:"formatted"`
	Shift     string                  `json:"shift"`
	Processed bool                    `json:"processed"`
	Projects  map[string]ProjectEntry `json:"projects,omitempty"`
}

type ProjectEntry struct {
	WeekdayHours float64 `json:"weekday_hours"`
	WeekendHours float64 `json:"weekend_hours"`
}

type MonthEntry struct {
	TotalHours float64 `json:"total_hours"`
	Formatted  string  `json:"formatted"`
}

// NewFile returns an empty ledger at the current schema version.
func NewFile() *File {
	return &File{
		Version: CurrentVersion,
		Days:    make(map[string]DayEntry),
		Months:  make(map[string]MonthEntry),
	}
}

// DayTotals converts the persisted day records back into in-memory
// totals: days with zero hours are omitted, as are empty project maps.
func (f *File) DayTotals() domain.DayTotals {
	totals := domain.NewDayTotals()
	for dateStr, entry := range f.Days {
		if entry.Hours > 0 {
			totals.Hours[dateStr] = entry.Hours
		}
		if len(entry.Projects) == 0 {
			continue
		}
		projects := make(map[string]domain.ProjectHours, len(entry.Projects))
		for name, p := range entry.Projects {
			projects[name] = domain.ProjectHours{Weekday: p.WeekdayHours, Weekend: p.WeekendHours}
		}
		totals.Projects[dateStr] = projects
	}
	return totals
}

// Store reads and writes the ledger file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// DefaultPath resolves the ledger location under the user data directory,
// honoring XDG_DATA_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "after15", "daily_summary.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "after15", "daily_summary.json"), nil
}

// Load reads the ledger from disk. A missing or malformed file degrades
// to an empty ledger so a broken summary never fails the run.
func (s *Store) Load() *File {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Debug("ledger not readable, starting empty", "path", s.path, "error", err)
		return NewFile()
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Debug("ledger malformed, starting empty", "path", s.path, "error", err)
		return NewFile()
	}
	if f.Days == nil {
		f.Days = make(map[string]DayEntry)
	}
	if f.Months == nil {
		f.Months = make(map[string]MonthEntry)
	}
	return &f
}

// Save writes the ledger atomically: the document goes to a uniquely
// named temp file in the same directory and is renamed over the
// destination, so a crash never leaves a partial ledger and two racing
// processes never share a temp path.
func (s *Store) Save(f *File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}
