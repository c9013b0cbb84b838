package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goregime/regime"
	"github.com/sartorproj/goregime/stats"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	rc := cfg.RegimeConfig()
	assert.Equal(t, regime.DefaultConfig(), rc)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregime.yaml")
	content := `
input:
  path: flow.xlsx
  column: flow
  sheet: annual
prep:
  period: 12
  log: true
detect:
  l: 15
  p: 0.01
  variance: sample
  mode: reference
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "flow.xlsx", cfg.Input.Path)
	assert.Equal(t, "annual", cfg.Input.Sheet)
	assert.Equal(t, 12, cfg.Prep.Period)
	assert.True(t, cfg.Prep.Log)
	assert.Equal(t, "json", cfg.Output.Format)
	// Unset keys keep their defaults.
	assert.Equal(t, 35, cfg.Sweep.MaxLength)
	assert.Equal(t, "info", cfg.LogLevel)

	rc := cfg.RegimeConfig()
	assert.Equal(t, 15, rc.MinLength)
	assert.Equal(t, 0.01, rc.Probability)
	assert.Equal(t, stats.Sample, rc.Variance)
	assert.Equal(t, regime.Reference, rc.Mode)

	sc := cfg.SweepConfig()
	assert.Equal(t, 5, sc.MinLength)
	assert.Equal(t, 0.01, sc.Probability)
	assert.Equal(t, regime.Reference, sc.Mode)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detect: [1, 2"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GOREGIME_L", "12")
	t.Setenv("GOREGIME_P", "0.1")
	t.Setenv("GOREGIME_MODE", "reference")
	t.Setenv("GOREGIME_ANNUAL", "true")
	t.Setenv("GOREGIME_OUTPUT_FORMAT", "csv")
	t.Setenv("GOREGIME_NORMALIZE", "1")
	t.Setenv("GOREGIME_SAVE_PREPARED", "prepared.csv")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 12, cfg.Detect.MinLength)
	assert.Equal(t, 0.1, cfg.Detect.Probability)
	assert.Equal(t, "reference", cfg.Detect.Mode)
	assert.True(t, cfg.Prep.Annual)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Prep.Normalize)
	assert.Equal(t, "prepared.csv", cfg.Prep.Save)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("GOREGIME_WORKERS", "many")

	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOREGIME_WORKERS")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOREGIME_TEST_DOTENV=0.2\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GOREGIME_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "0.2", os.Getenv("GOREGIME_TEST_DOTENV"))
}

func TestValidateSpreadsheetFormats(t *testing.T) {
	for _, format := range []string{"csv", "xlsx", "xlsm", "XLSX", ""} {
		cfg := Default()
		cfg.Input.Format = format
		assert.NoError(t, cfg.Validate(), format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"l too small", func(c *Config) { c.Detect.MinLength = 1 }, "detect.l"},
		{"p zero", func(c *Config) { c.Detect.Probability = 0 }, "detect.p"},
		{"p one", func(c *Config) { c.Detect.Probability = 1 }, "detect.p"},
		{"variance", func(c *Config) { c.Detect.Variance = "robust" }, "detect.variance"},
		{"mode", func(c *Config) { c.Detect.Mode = "fast" }, "detect.mode"},
		{"sweep range", func(c *Config) { c.Sweep.MaxLength = 3 }, "sweep"},
		{"workers", func(c *Config) { c.Sweep.Workers = -1 }, "sweep.workers"},
		{"period", func(c *Config) { c.Prep.Period = -12 }, "prep.period"},
		{"input format", func(c *Config) { c.Input.Format = "parquet" }, "input.format"},
		{"output format", func(c *Config) { c.Output.Format = "png" }, "output.format"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
