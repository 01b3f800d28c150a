package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	params := cfg.HCDFParams()
	assert.Equal(t, 5.0, params.Sigma)
	assert.Equal(t, tis.EuclideanDistance, params.Distance)
	assert.Equal(t, []float64{0.1, 0.5, 10, 0}, cfg.Resolutions)
	assert.Equal(t, "_", cfg.GroupSuffix)
}

func TestDefaultDatasets(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{
		"crosscomp11", "crosscomp5", "crossera_full", "crossera_orchestra",
		"crossera_piano", "orchsetcomp", "orchsetera",
	}, cfg.DatasetNames())

	d, err := cfg.Dataset("crosscomp5")
	require.NoError(t, err)
	assert.Equal(t, "composer", d.TargetColumn)
	assert.Equal(t, "Artist_filter_no", d.FilterColumn)
	assert.Len(t, d.Classes, 5)

	d, err = cfg.Dataset("orchsetera")
	require.NoError(t, err)
	assert.Equal(t, "style_period", d.TargetColumn)
	assert.Empty(t, d.FilterColumn)

	_, err = cfg.Dataset("gtzan")
	assert.True(t, errors.Is(err, ErrUnknownDataset))
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tonal.yaml")
	yml := `
hcdf:
  sigma: 3
  distance: cosine
resolutions: [1, 0]
workers: 2
datasets:
  mini:
    target_col: composer
    classes: [bach, brahms]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.HCDF.Sigma)
	assert.Equal(t, tis.CosineDistance, cfg.HCDFParams().Distance)
	assert.Equal(t, []float64{1, 0}, cfg.Resolutions)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "console", cfg.LogFormat)

	// datasets from the file are added to the built-in ones
	assert.Len(t, cfg.Datasets, 8)
	d, err := cfg.Dataset("mini")
	require.NoError(t, err)
	assert.Equal(t, []string{"bach", "brahms"}, d.Classes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TONAL_WORKERS", "8")
	t.Setenv("TONAL_HCDF_DISTANCE", "cosine")
	t.Setenv("TONAL_RESOLUTIONS", "0.25,0")
	t.Setenv("TONAL_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "cosine", cfg.HCDF.Distance)
	assert.Equal(t, []float64{0.25, 0}, cfg.Resolutions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.HCDF.Sigma)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0644))
	_, err = Load(path)
	assert.Error(t, err)

	t.Setenv("TONAL_WORKERS", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"sigma", func(c *Config) { c.HCDF.Sigma = 0 }},
		{"distance", func(c *Config) { c.HCDF.Distance = "manhattan" }},
		{"no resolutions", func(c *Config) { c.Resolutions = nil }},
		{"negative resolution", func(c *Config) { c.Resolutions = []float64{-1} }},
		{"suffix", func(c *Config) { c.GroupSuffix = "" }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"dataset", func(c *Config) { c.Datasets["empty"] = DatasetConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tonal.yaml")
	cfg := Default()
	cfg.Workers = 3
	cfg.HCDF.Distance = "cosine"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestContext(t *testing.T) {
	cfg := Default()
	cfg.Workers = 11
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
	assert.Equal(t, 4, FromContext(context.Background()).Workers)
}
