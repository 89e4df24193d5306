// ABOUTME: Tests for CLI commands and pipeline wiring.
// ABOUTME: Runs the whole pipeline on a small config, then export and convert.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/store"
)

const smallConfig = `reference_date: "2024-11-20"
customers:
  cap: 12
  targets:
    faith: 4
    school: 3
    nonprofit: 2
    childcare: 1
    community_ed: 1
logger:
  level: error
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func workspace(t *testing.T) (cfgPath, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	cfgPath = filepath.Join(dir, "deskgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(smallConfig), 0o644))
	return cfgPath, filepath.Join(dir, "data")
}

func TestRunWholePipeline(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	dbFile := filepath.Join(filepath.Dir(dataDir), "runs.db")

	out, err := execute(t, "run", "--config", cfgPath, "--data-dir", dataDir, "--seed", "42", "--db", dbFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "customers: generated 11 new organizations (11 total)")
	assert.Contains(t, out, "Data written to "+dataDir+" (seed 42)")

	paths := dataset.Paths{Dir: dataDir}
	orgs, err := dataset.ReadOrganizations(paths.Customers())
	require.NoError(t, err)
	assert.Len(t, orgs, 11)

	tickets, err := dataset.ReadTickets(paths.Tickets())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(tickets), 11*10)

	metrics, err := dataset.ReadMetrics(paths.Metrics())
	require.NoError(t, err)
	assert.Len(t, metrics, len(tickets))

	calls, err := dataset.ReadTranscripts(paths.Transcripts())
	require.NoError(t, err)
	assert.NotEmpty(t, calls)

	s, err := store.New(dbFile)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.GetRuns(context.Background(), &store.RunQuery{})
	require.NoError(t, err)
	require.Len(t, runs, 5)
	for _, r := range runs {
		assert.Equal(t, int64(42), r.Seed)
		assert.Equal(t, runs[0].RunID, r.RunID)
		assert.Empty(t, r.Error)
	}
}

func TestSameSeedSameDataset(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	other := dataDir + "-again"

	_, err := execute(t, "run", "--config", cfgPath, "--data-dir", dataDir, "--seed", "7")
	require.NoError(t, err)
	_, err = execute(t, "run", "--config", cfgPath, "--data-dir", other, "--seed", "7")
	require.NoError(t, err)

	for _, name := range []string{dataset.CustomersFile, dataset.TicketsFile, dataset.TranscriptsFile, dataset.MetricsFile} {
		a, err := os.ReadFile(filepath.Join(dataDir, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(other, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestStageCommandNeedsInputs(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	_, err := execute(t, "employees", "--config", cfgPath, "--data-dir", dataDir, "--seed", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMissingInput)
}

func TestRunUnknownStage(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	_, err := execute(t, "run", "invoices", "--config", cfgPath, "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `stage "invoices" not found`)
}

func TestExportAndConvert(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	_, err := execute(t, "run", "customers", "employees", "tickets", "--config", cfgPath, "--data-dir", dataDir, "--seed", "3")
	require.NoError(t, err)

	// metrics and transcripts are optional for export
	dbFile := filepath.Join(filepath.Dir(dataDir), "export.db")
	out, err := execute(t, "export", "--config", cfgPath, "--data-dir", dataDir, "--db", dbFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "organizations=11")
	assert.Contains(t, out, "call_transcripts=0")

	s, err := store.New(dbFile)
	require.NoError(t, err)
	n, err := s.CountRows(context.Background(), "employees")
	require.NoError(t, err)
	assert.Positive(t, n)
	require.NoError(t, s.Close())

	csvPath := filepath.Join(dataDir, dataset.CustomersFile)
	out, err = execute(t, "convert", csvPath, "--sample=3")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 3 records from CSV to JSON")
	_, err = os.Stat(filepath.Join(dataDir, "zendesk_customers.json"))
	assert.NoError(t, err)

	_, err = execute(t, "convert", filepath.Join(dataDir, "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV file not found")
}

func TestRunsReportsRunLog(t *testing.T) {
	cfgPath, dataDir := workspace(t)
	dbFile := filepath.Join(filepath.Dir(dataDir), "runs.db")

	// employees before customers exist: one failed entry in its own run
	_, err := execute(t, "employees", "--config", cfgPath, "--data-dir", dataDir, "--seed", "9", "--db", dbFile)
	require.Error(t, err)
	_, err = execute(t, "run", "--config", cfgPath, "--data-dir", dataDir, "--seed", "9", "--db", dbFile)
	require.NoError(t, err)

	out, err := execute(t, "runs", "--config", cfgPath, "--db", dbFile)
	require.NoError(t, err)
	for _, stage := range []string{"customers", "employees", "tickets", "calls", "metrics"} {
		assert.Contains(t, out, " "+stage+" ")
	}
	assert.Contains(t, out, "2 runs, 6 stages, 1 failed")

	out, err = execute(t, "runs", "--config", cfgPath, "--db", dbFile, "--stage", "tick")
	require.NoError(t, err)
	assert.Contains(t, out, " tickets ")
	assert.NotContains(t, out, " customers ")

	out, err = execute(t, "runs", "--config", cfgPath, "--db", dbFile, "--failed")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " employees ")
	assert.Contains(t, lines[0], "failed: ")

	out, err = execute(t, "runs", "--config", cfgPath, "--db", dbFile, "--limit", "2")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	assert.Contains(t, out, " metrics ")

	_, err = execute(t, "runs", "--config", cfgPath, "--db", filepath.Join(filepath.Dir(dataDir), "absent.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run log at")
}

func TestValidateAndCleanDBPath(t *testing.T) {
	valid := []string{"deskgen.db", "./data/deskgen.db", "/tmp/deskgen.db", "  deskgen.db  ", ":memory:"}
	for _, p := range valid {
		got, err := validateAndCleanDBPath(p)
		assert.NoError(t, err, p)
		assert.NotEmpty(t, got)
	}

	invalid := []string{"", ".", "/", "../deskgen.db", ".git/deskgen.db", "data/zendesk_customers.csv"}
	if runtime.GOOS == "windows" {
		invalid = append(invalid, "C:")
	}
	for _, p := range invalid {
		_, err := validateAndCleanDBPath(p)
		assert.Error(t, err, p)
	}
}
