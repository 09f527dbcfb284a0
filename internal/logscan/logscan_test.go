package logscan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarx/after15/internal/domain"
)

func writeLog(t *testing.T, root string, rel string, lines ...string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func newScanner(root string) *Scanner {
	return &Scanner{Root: root, TrackedPath: "Programowanie", Loc: time.UTC}
}

func TestFindAll(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "projects/alpha/a.jsonl", `{}`)
	writeLog(t, root, "projects/beta/b.jsonl", `{}`)
	writeLog(t, root, "transcripts/t.jsonl", `{}`)
	writeLog(t, root, "projects/alpha/notes.txt", `not a log`)
	writeLog(t, root, "projects/alpha/subagents/sub.jsonl", `{}`)

	files := newScanner(root).FindAll()
	assert.Len(t, files, 3, "only top-level .jsonl files count")
	for _, f := range files {
		assert.NotContains(t, f, "subagents")
	}
}

func TestFindAll_MissingDirsIgnored(t *testing.T) {
	assert.Empty(t, newScanner(t.TempDir()).FindAll())
}

func TestFindRecent_FiltersByModTime(t *testing.T) {
	root := t.TempDir()
	now := time.Now()

	fresh := writeLog(t, root, "projects/alpha/fresh.jsonl", `{}`)
	stale := writeLog(t, root, "projects/alpha/stale.jsonl", `{}`)
	old := now.AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(stale, old, old))

	files := newScanner(root).FindRecent(7, now)
	require.Len(t, files, 1)
	assert.Equal(t, fresh, files[0])
}

func TestCollectEvents_ParsesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "projects/alpha/a.jsonl",
		`{"timestamp":"2025-08-04T10:05:00.123Z"}`,
		`{"timestamp":"2025-08-04T10:00:00Z"}`,
	)
	writeLog(t, root, "projects/beta/b.jsonl",
		`{"timestamp":"2025-08-04T10:02:30Z"}`,
	)

	s := newScanner(root)
	events := s.CollectEvents(s.FindAll())

	require.Len(t, events, 3)
	assert.Equal(t, "alpha", events[0].Source)
	assert.Equal(t, "beta", events[1].Source)
	assert.Equal(t, "alpha", events[2].Source)
	assert.Equal(t, time.Date(2025, 8, 4, 10, 5, 0, 0, time.UTC), events[2].Timestamp,
		"sub-second precision is truncated")
}

func TestCollectEvents_SkipsMalformedLines(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "projects/alpha/a.jsonl",
		`{"timestamp":"2025-08-04T10:00:00Z"}`,
		`{not json at all`,
		`{"timestamp":"yesterday-ish"}`,
		`{"no_timestamp":true}`,
		``,
		`{"timestamp":"2025-08-04T10:01:00Z"}`,
	)

	s := newScanner(root)
	events := s.CollectEvents(s.FindAll())
	assert.Len(t, events, 2, "bad lines are dropped, the rest of the file survives")
}

func TestCollectEvents_TranscriptLabels(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "transcripts/t.jsonl",
		`{"timestamp":"2025-08-04T10:00:00Z"}`,
		`{"timestamp":"2025-08-04T10:01:00Z","tool_input":{"filePath":"/home/u/Programowanie/farm_app/main.go"}}`,
		`{"timestamp":"2025-08-04T10:02:00Z","tool_input":{"workdir":"/tmp/elsewhere"}}`,
	)

	s := newScanner(root)
	events := s.CollectEvents(s.FindAll())

	require.Len(t, events, 3)
	assert.Equal(t, domain.SourceTranscripts, events[0].Source)
	assert.Equal(t, "farm-app", events[1].Source, "underscores normalize to dashes")
	assert.Equal(t, domain.SourceTranscripts, events[2].Source,
		"paths outside the tracked directory keep the sentinel label")
}

func TestSourceFromPath(t *testing.T) {
	s := &Scanner{TrackedPath: "Programowanie"}
	sep := string(filepath.Separator)
	tests := []struct {
		path string
		want string
	}{
		{filepath.Join("x", "projects", "-home-u-Programowanie-farm", "s.jsonl"), "farm"},
		{filepath.Join("x", "projects", "alpha", "s.jsonl"), "alpha"},
		{filepath.Join("x", "projects", "-home-u-Elsewhere-x", "s.jsonl"), "-home-u-Elsewhere-x"},
		{filepath.Join("x", "transcripts", "s.jsonl"), domain.SourceTranscripts},
		{"projects" + sep + "s.jsonl", domain.SourceUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.sourceFromPath(tt.path), "path=%s", tt.path)
	}
}

func TestCollectEvents_TranscriptAndDirectoryLabelsShareKey(t *testing.T) {
	root := t.TempDir()
	s := newScanner(root)

	writeLog(t, root, filepath.Join("projects", "-home-u-Programowanie-farm", "a.jsonl"),
		`{"timestamp":"2025-08-04T10:00:00Z"}`)
	writeLog(t, root, filepath.Join("transcripts", "b.jsonl"),
		`{"timestamp":"2025-08-04T10:05:00Z","tool_input":{"filePath":"/home/u/Programowanie/farm/main.go"}}`)

	events := s.CollectEvents(s.FindAll())
	require.Len(t, events, 2)
	assert.Equal(t, "farm", events[0].Source)
	assert.Equal(t, "farm", events[1].Source)
}
