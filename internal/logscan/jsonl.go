package logscan

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jarx/after15/internal/domain"
)

// rawRecord maps only the JSONL fields the engine cares about.
type rawRecord struct {
	Timestamp string `json:"timestamp"`
	ToolInput *struct {
		FilePath string `json:"filePath"`
		Path     string `json:"path"`
		Workdir  string `json:"workdir"`
	} `json:"tool_input"`
}

// CollectEvents parses every file and returns the merged event stream
// sorted by timestamp, ready for session reconstruction. Unreadable
// files and malformed lines are skipped; they never abort the batch.
func (s *Scanner) CollectEvents(paths []string) []domain.Event {
	var events []domain.Event
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			slog.Debug("skipping unreadable log file", "path", path, "error", err)
			continue
		}
		events = append(events, s.parseFile(f, path)...)
		f.Close()
	}

	domain.SortEvents(events)
	return events
}

func (s *Scanner) parseFile(r io.Reader, path string) []domain.Event {
	var events []domain.Event

	defaultSource := s.sourceFromPath(path)
	isTranscript := defaultSource == domain.SourceTranscripts

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec rawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if rec.Timestamp == "" {
			continue
		}

		ts, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}

		source := defaultSource
		if isTranscript {
			if project, ok := s.projectFromToolInput(rec); ok {
				source = project
			}
		}

		events = append(events, domain.Event{Timestamp: ts, Source: source})
	}

	return events
}

// parseTimestamp accepts RFC3339 with or without sub-second precision and
// truncates to whole seconds.
func parseTimestamp(raw string) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		ts, err = time.Parse("2006-01-02T15:04:05", raw)
		if err != nil {
			return time.Time{}, false
		}
	}
	return ts.UTC().Truncate(time.Second), true
}

// sourceFromPath labels an event stream by its originating log file:
// files under projects/ get the project name decoded from the directory
// label, transcript files the sentinel label.
func (s *Scanner) sourceFromPath(path string) string {
	if strings.Contains(path, string(filepath.Separator)+"transcripts"+string(filepath.Separator)) {
		return domain.SourceTranscripts
	}

	parent := filepath.Base(filepath.Dir(path))
	if parent != "" && parent != "projects" && parent != "." {
		return s.projectLabel(parent)
	}
	return domain.SourceUnknown
}

// projectLabel reduces an encoded projects-directory label to the bare
// project name when the label encodes a path under the tracked
// directory. Transcript-derived events carry the same bare name, so
// both streams for one project aggregate under a single key.
func (s *Scanner) projectLabel(label string) string {
	if s.TrackedPath == "" {
		return label
	}
	marker := "-" + s.TrackedPath + "-"
	if idx := strings.Index(label, marker); idx >= 0 {
		if name := strings.Trim(label[idx+len(marker):], "-"); name != "" {
			return name
		}
	}
	return label
}

// projectFromToolInput recovers a project label for a transcript record
// from the file path its tool call touched, when that path lies under
// the tracked workspace directory.
func (s *Scanner) projectFromToolInput(rec rawRecord) (string, bool) {
	if rec.ToolInput == nil || s.TrackedPath == "" {
		return "", false
	}

	candidate := rec.ToolInput.FilePath
	if candidate == "" {
		candidate = rec.ToolInput.Path
	}
	if candidate == "" {
		candidate = rec.ToolInput.Workdir
	}
	if candidate == "" {
		return "", false
	}

	marker := "/" + s.TrackedPath + "/"
	idx := strings.Index(candidate, marker)
	if idx < 0 {
		return "", false
	}

	rest := candidate[idx+len(marker):]
	project := rest
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		project = rest[:slash]
	}
	if project == "" {
		return "", false
	}

	return strings.ReplaceAll(project, "_", "-"), true
}
