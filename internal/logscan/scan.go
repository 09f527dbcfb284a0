// Package logscan locates and parses the raw activity logs: JSONL files
// under the watched root, one JSON object per line, each carrying a
// timestamp. It is the engine's only input; everything downstream works
// on the Event values produced here.
package logscan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scanner finds log files under Root and turns them into events.
type Scanner struct {
	// Root is the watched directory, typically ~/.claude. Log files live
	// under Root/projects/<project>/*.jsonl and Root/transcripts/.
	Root string
	// TrackedPath names the directory segment that marks project
	// workspaces, used to attribute transcript events to projects.
	TrackedPath string
	// Loc is the local region used to bucket file modification times.
	Loc *time.Location
}

// DefaultRoot resolves ~/.claude.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude"), nil
}

// FindAll returns every log file under the root.
func (s *Scanner) FindAll() []string {
	return s.find(nil)
}

// FindRecent returns log files modified within the last `days` days.
func (s *Scanner) FindRecent(days int, now time.Time) []string {
	cutoff := now.In(s.Loc).AddDate(0, 0, -days).Format("2006-01-02")
	return s.find(&cutoff)
}

func (s *Scanner) find(sinceDay *string) []string {
	var files []string

	for _, dir := range []string{
		filepath.Join(s.Root, "projects"),
		filepath.Join(s.Root, "transcripts"),
	} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if filepath.Ext(path) != ".jsonl" {
				return nil
			}
			// Subagent transcripts duplicate the parent session timeline.
			if strings.Contains(path, string(filepath.Separator)+"subagents"+string(filepath.Separator)) {
				return nil
			}

			if sinceDay != nil {
				info, err := d.Info()
				if err != nil {
					return nil
				}
				modDay := info.ModTime().In(s.Loc).Format("2006-01-02")
				if modDay < *sinceDay {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
	}

	slog.Debug("log scan complete", "root", s.Root, "files", len(files))
	return files
}
