package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarx/after15/internal/config"
)

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := WritePDF(path, sampleTotals(), config.DefaultConfig(), "2025-08", reportNow())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 500)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestWritePDF_DefaultsToCurrentMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := WritePDF(path, sampleTotals(), config.DefaultConfig(), "", reportNow())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWritePDF_NoDataForMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := WritePDF(path, sampleTotals(), config.DefaultConfig(), "2024-01", reportNow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no overtime recorded for 2024-01")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMonthProjectTotals(t *testing.T) {
	cfg := config.DefaultConfig()

	projects := monthProjectTotals(sampleTotals(), cfg, "2025-08")
	require.Contains(t, projects, "farm")
	assert.InDelta(t, 2.0, projects["farm"].Weekday, 1e-9)
	assert.InDelta(t, 3.0, projects["farm"].Weekend, 1e-9)
	assert.InDelta(t, 1.0, projects["unknown"].Weekend, 1e-9)

	cfg.Projects.ExcludedProjects = []string{"farm"}
	projects = monthProjectTotals(sampleTotals(), cfg, "2025-08")
	assert.NotContains(t, projects, "farm")
}
