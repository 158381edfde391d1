package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcast/internal/forecast"
)

func TestWrite(t *testing.T) {
	res := &forecast.Result{
		ProjectName: "Q3 Release",
		Backlog:     80,
		Trials:      10000,
		Seed:        42,
		Periods:     forecast.Percentiles{P50: 11, P85: 13, P95: 14},
		Distribution: []forecast.DistBucket{
			{Periods: 11, Count: 4800},
			{Periods: 13, Count: 900},
		},
		Deadline: &forecast.DeadlineAssessment{
			PeriodsToDeadline: 12,
			P85Periods:        13,
			Classification:    forecast.Partial,
			CompletableItems:  68,
			CompletablePct:    85.0,
		},
		Warnings: []string{"Only 3 throughput samples; forecasts stabilize from 5 samples on."},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Write(path, res, []int{6, 8, 5, 9}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Flow Forecast: Q3 Release")
	assert.Contains(t, html, "xychart-beta")
	assert.Contains(t, html, "partial")
	assert.Contains(t, html, "68 items")
	assert.Contains(t, html, "throughput samples")
	assert.False(t, strings.Contains(html, "```"), "code fences must be stripped for the client-side renderer")
}

func TestStripFence(t *testing.T) {
	in := "```mermaid\nxychart-beta\n    bar [1, 2]\n```"
	assert.Equal(t, "xychart-beta\n    bar [1, 2]", stripFence(in))
}
