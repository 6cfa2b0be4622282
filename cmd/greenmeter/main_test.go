package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/greenmeter/pkg/projection"
	"github.com/ja7ad/greenmeter/pkg/report"
	"github.com/ja7ad/greenmeter/pkg/types"
)

func TestSplitCommands(t *testing.T) {
	got := splitCommands([]string{
		"go", "test", "./a", ":::", ":::", "make", "lint", ":::", "go", "test", "./a",
	})
	require.Len(t, got, 3)
	assert.Equal(t, "go test ./a", got[0].id)
	assert.Equal(t, []string{"go", "test", "./a"}, got[0].argv)
	assert.Equal(t, "make lint", got[1].id)
	assert.Equal(t, "go test ./a#2", got[2].id)

	assert.Empty(t, splitCommands([]string{":::"}))
	assert.Empty(t, splitCommands(nil))
}

func TestRunExec_WritesArtifacts(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process tree probing needs /proc")
	}
	dir := t.TempDir()

	err := runExec(context.Background(), execOpts{
		label:    "baseline",
		out:      dir,
		suite:    "shell",
		parallel: 2,
	}, []string{"true", ":::", "false", ":::", "/nonexistent/binary"})
	require.NoError(t, err)

	s, err := report.ReadSummary(filepath.Join(dir, "baseline_summary.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Tests)
	assert.Equal(t, "exec", s.Meta["command"])
	assert.NotEmpty(t, s.Meta["run_id"])

	units, err := report.ReadUnits(report.UnitsPath(dir, "baseline"))
	require.NoError(t, err)
	outcomes := map[string]string{}
	for _, u := range units {
		outcomes[u.TestID] = u.Outcome
		assert.Equal(t, "shell", u.Suite)
	}
	assert.Equal(t, "passed", outcomes["true"])
	assert.Equal(t, "failed", outcomes["false"])
	assert.Equal(t, "failed", outcomes["/nonexistent/binary"])
}

func TestRunExec_Validation(t *testing.T) {
	ctx := context.Background()
	require.Error(t, runExec(ctx, execOpts{label: "x", parallel: 1}, []string{":::"}))
	require.Error(t, runExec(ctx, execOpts{label: "", parallel: 1}, []string{"true"}))
	require.Error(t, runExec(ctx, execOpts{label: "x", parallel: 0}, []string{"true"}))
}

func TestPrintDelta_SignedColors(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	printDelta(&buf, report.Compare(
		report.Summary{TotalCO2eGrams: 4.24, TotalJoules: 100},
		report.Summary{TotalCO2eGrams: 1.43, TotalJoules: 40},
	))
	out := buf.String()
	assert.Contains(t, out, "2.81000")
	assert.Contains(t, out, "66.27%")
	assert.Contains(t, out, "60.00%")
}

func TestProjectCmd_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	deltaPath := filepath.Join(dir, report.DeltaFile)
	require.NoError(t, report.WriteDelta(deltaPath, report.Delta{
		JoulesSaved:    3.6e6,
		CO2eGramsSaved: 1000,
	}))

	out := filepath.Join(dir, "sub", "projection.json")
	cmd := newProjectCmd()
	cmd.SetArgs([]string{deltaPath, "--daily", "2", "--out", out})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), b[len(b)-1])

	var p projection.Projection
	require.NoError(t, json.Unmarshal(b, &p))
	assert.Equal(t, 2, p.DailyRuns)
	assert.InDelta(t, 730.0, p.AnnualEnergySavedKWh, 1e-9)
	assert.InDelta(t, 730.0, p.AnnualCarbonSavedKg, 1e-9)
}

func TestProjectCmd_MissingDelta(t *testing.T) {
	cmd := newProjectCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, cmd.Execute())
}

func TestPrintRanking_Memory(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	units := []report.Unit{
		{TestID: "small", TotalJoules: 1, PeakWSMB: 1.5, AvgWSMB: 1},
		{TestID: "big", TotalJoules: 9, PeakWSMB: 2048, AvgWSMB: 512},
	}
	assert.Equal(t, types.FromMB(2048), peakMemory(units))
	assert.Equal(t, types.Bytes(0), peakMemory(nil))

	rank, err := report.Rank(units)
	require.NoError(t, err)

	var buf bytes.Buffer
	printRanking(&buf, rank)
	out := buf.String()
	assert.Contains(t, out, "1.50 MB")
	assert.Contains(t, out, "2.00 GB")
	assert.Contains(t, out, "512.00 MB")

	buf.Reset()
	printSummary(&buf, report.Summary{Tests: 2}, peakMemory(units))
	assert.Contains(t, buf.String(), "2.00 GB")
}
