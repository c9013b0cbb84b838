package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goregime/internal/config"
	"github.com/sartorproj/goregime/timeseries"
)

// writeStepCSV writes 40 annual values that jump by 5 in 1970.
func writeStepCSV(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("date,flow\n")
	for i := 0; i < 40; i++ {
		v := float64(i%7-3) / 30
		if i >= 20 {
			v += 5
		}
		fmt.Fprintf(&b, "%d-01-01,%g\n", 1950+i, v)
	}

	path := filepath.Join(t.TempDir(), "flow.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	base := []string{"--config", filepath.Join(dir, "none.yaml"), "--env-file", filepath.Join(dir, "none.env")}
	return Execute(context.Background(), append(base, args...))
}

func TestDetectCommandJSON(t *testing.T) {
	in := writeStepCSV(t)
	out := filepath.Join(t.TempDir(), "shifts.json")

	require.NoError(t, run(t, "detect", in, "--column", "flow", "-l", "10", "-p", "0.01", "-f", "json", "-o", out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var got struct {
		L          int      `json:"l"`
		Shifts     []int    `json:"shifts"`
		ShiftDates []string `json:"shift_dates"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 10, got.L)
	assert.Equal(t, []int{20}, got.Shifts)
	assert.Equal(t, []string{"1970-01-01"}, got.ShiftDates)
}

func TestDetectCommandConfigFile(t *testing.T) {
	in := writeStepCSV(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "shifts.csv")
	cfgPath := filepath.Join(dir, "goregime.yaml")
	yaml := fmt.Sprintf("input:\n  path: %s\n  column: flow\ndetect:\n  l: 10\n  p: 0.01\noutput:\n  format: csv\n  path: %s\n", in, out)
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))

	require.NoError(t, Execute(context.Background(), []string{"--config", cfgPath, "--env-file", filepath.Join(dir, "none.env"), "detect"}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 41)
	assert.True(t, strings.HasPrefix(lines[21], "20,1970-01-01,"), lines[21])
	assert.Contains(t, lines[21], ",true,")
}

func TestSweepCommand(t *testing.T) {
	in := writeStepCSV(t)
	out := filepath.Join(t.TempDir(), "sweep.json")

	require.NoError(t, run(t, "sweep", in, "--column", "flow", "--min-l", "5", "--max-l", "12", "--workers", "2", "-f", "json", "-o", out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var got struct {
		Completed int   `json:"completed"`
		Frequency []int `json:"found_frequency"`
		Consensus []int `json:"consensus"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 8, got.Completed)
	assert.Equal(t, 8, got.Frequency[20])
	assert.Equal(t, []int{20}, got.Consensus)
}

func TestDetectCommandErrors(t *testing.T) {
	in := writeStepCSV(t)

	assert.Error(t, run(t, "detect"), "missing input")
	assert.Error(t, run(t, "detect", in, "--column", "flow", "-p", "1.5"), "invalid p")
	assert.Error(t, run(t, "detect", in, "--column", "flow", "-l", "30"), "series too short")
	assert.Error(t, run(t, "detect", in, "--column", "missing"), "unknown column")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd(&app{})
	var buf strings.Builder
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "goregime dev")
}

func TestPrepareSeasonalThenAnnual(t *testing.T) {
	ts := make([]time.Time, 36)
	values := make([]float64, 36)
	for i := range values {
		ts[i] = time.Date(2000+i/12, time.Month(i%12+1), 1, 0, 0, 0, 0, time.UTC)
		values[i] = (10 + 5*math.Cos(float64(i%12))) * float64(1+i/12)
	}
	series, err := timeseries.NewWithTimestamps(ts, values)
	require.NoError(t, err)

	saved := filepath.Join(t.TempDir(), "prepared.csv")
	got, err := prepare(series, config.PrepConfig{Period: 12, Log: true, Annual: true, Save: saved})
	require.NoError(t, err)

	// Standardized seasons sum to zero across years, so do the annual means.
	require.Equal(t, 3, got.Len())
	assert.InDelta(t, 0, got.Values[0]+got.Values[1]+got.Values[2], 1e-9)
	assert.Less(t, got.Values[0], got.Values[2])
	assert.Equal(t, 2001, got.Timestamps[1].Year())

	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "ds,y\n2000-01-01,"), string(b))
}

func TestPrepareNormalize(t *testing.T) {
	series := timeseries.New([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	got, err := prepare(series, config.PrepConfig{Normalize: true})
	require.NoError(t, err)
	assert.InDelta(t, 0, got.Mean(), 1e-12)
	assert.InDelta(t, 1, got.Std(), 1e-12)
}

func TestPrepareLogRejectsNonPositive(t *testing.T) {
	_, err := prepare(timeseries.New([]float64{1, 0, 2}), config.PrepConfig{Log: true})
	assert.ErrorIs(t, err, timeseries.ErrNonFinite)
}

func TestDetectCommandNormalizeAndSave(t *testing.T) {
	in := writeStepCSV(t)
	dir := t.TempDir()
	saved := filepath.Join(dir, "prepared.csv")
	out := filepath.Join(dir, "shifts.json")

	require.NoError(t, run(t, "detect", in, "--column", "flow", "-l", "10", "-p", "0.01",
		"--normalize", "--save-prepared", saved, "-f", "json", "-o", out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var got struct {
		Shifts []int `json:"shifts"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []int{20}, got.Shifts)

	prepared, err := timeseries.LoadCSV(saved, timeseries.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 40, prepared.Len())
	assert.InDelta(t, 0, prepared.Mean(), 1e-9)
}
