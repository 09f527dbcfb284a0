package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarx/after15/internal/config"
	"github.com/jarx/after15/internal/domain"
	"github.com/jarx/after15/internal/ledger"
	"github.com/jarx/after15/internal/logscan"
	"github.com/jarx/after15/internal/service"
)

// testApp wires a full App over temp dirs with the clock pinned to
// 2025-08-06 noon Warsaw time.
func testApp(t *testing.T) (*App, string) {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	root := t.TempDir()
	scanner := &logscan.Scanner{Root: root, TrackedPath: "Programowanie", Loc: loc}
	store := ledger.NewStore(filepath.Join(t.TempDir(), "daily_summary.json"))

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, loc)
	clock := func() time.Time { return now }

	app := &App{
		Overtime: service.NewOvertimeService(scanner, store, domain.DefaultSchedule(), loc,
			service.WithClock(clock)),
		Config:   config.DefaultConfig(),
		Schedule: domain.DefaultSchedule(),
		Loc:      loc,
		Now:      clock,
	}
	return app, root
}

// writeSession writes a log file with one event every five minutes from
// start to end inclusive (UTC instants).
func writeSession(t *testing.T, root, project string, start, end time.Time) {
	t.Helper()

	var lines []string
	for ts := start; !ts.After(end); ts = ts.Add(5 * time.Minute) {
		lines = append(lines, fmt.Sprintf(`{"timestamp":%q}`, ts.UTC().Format(time.RFC3339)))
	}

	path := filepath.Join(root, "projects", project, "session.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

// executeCmd runs a cobra command and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_ShowsReport(t *testing.T) {
	app, root := testApp(t)
	// 12:00-15:00 UTC is 14:00-17:00 Warsaw on a regular Monday.
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app)
	require.NoError(t, err)

	assert.Contains(t, out, "TOTAL OVERTIME: 2:00")
	assert.Contains(t, out, "2025-08-04")
	assert.Contains(t, out, "CURRENT MONTH (2025-08): 2:00")
	assert.Contains(t, out, "alpha")
}

func TestReportCmd_MonthFilter(t *testing.T) {
	app, root := testApp(t)
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app, "report", "--month", "2025-07")
	require.NoError(t, err)
	assert.Contains(t, out, "OVERTIME FOR 2025-07: 0:00")

	_, err = executeCmd(t, app, "report", "--month", "august")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid month")
}

func TestStatuslineCmd(t *testing.T) {
	app, root := testApp(t)
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app, "statusline")
	require.NoError(t, err)

	// 12:00 Warsaw is inside the regular window; the month holds the
	// Monday session's two hours past 15:00.
	assert.Equal(t, "🏢 0:00/2:00\n", out)
}

func TestExplainCmd(t *testing.T) {
	app, root := testApp(t)
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app, "explain", "2025-08-04")
	require.NoError(t, err)

	assert.Contains(t, out, "EXPLANATION FOR 2025-08-04")
	assert.Contains(t, out, "Found 1 session(s):")
	assert.Contains(t, out, "alpha (100%)")
	assert.Contains(t, out, "TOTAL OVERTIME: 2:00")
}

func TestExplainCmd_BadDate(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "explain", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestRootCmd_RendersDespiteLedgerWriteFailure(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	root := t.TempDir()
	scanner := &logscan.Scanner{Root: root, TrackedPath: "Programowanie", Loc: loc}
	// A directory at the ledger path makes the final rename fail.
	store := ledger.NewStore(t.TempDir())

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, loc)
	clock := func() time.Time { return now }

	app := &App{
		Overtime: service.NewOvertimeService(scanner, store, domain.DefaultSchedule(), loc,
			service.WithClock(clock)),
		Config:   config.DefaultConfig(),
		Schedule: domain.DefaultSchedule(),
		Loc:      loc,
		Now:      clock,
	}
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app)
	require.NoError(t, err)

	assert.Contains(t, out, "TOTAL OVERTIME: 2:00")
	assert.Contains(t, out, "Warning:")

	out, err = executeCmd(t, app, "statusline")
	require.NoError(t, err)
	assert.Contains(t, out, "0:00/2:00")
}

func TestPdfCmd(t *testing.T) {
	app, root := testApp(t)
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	path := filepath.Join(t.TempDir(), "report.pdf")
	out, err := executeCmd(t, app, "pdf", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPdfCmd_BadMonth(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "pdf", "--month", "08-2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid month")
}

func TestResyncCmd(t *testing.T) {
	app, root := testApp(t)
	writeSession(t, root, "alpha",
		time.Date(2025, 8, 4, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 4, 15, 0, 0, 0, time.UTC))

	out, err := executeCmd(t, app, "resync")
	require.NoError(t, err)
	assert.Contains(t, out, "Resynced 1 day(s) from logs.")
}
