package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/uranium-map/internal/adapter/mapbox"
	"github.com/couchcryptid/uranium-map/internal/domain"
)

const testMapboxToken = "pk.test-token"

func inputFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nevada_wells.csv")
	require.NoError(t, os.WriteFile(path, []byte("City,Latitude,Longitude\n"), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	input := inputFile(t)

	cfg, err := Load([]string{"--input", input}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, input, cfg.Input)
	assert.Equal(t, "nevada_wells_3d_map.html", cfg.Output)
	assert.Equal(t, domain.SchemeGreenToRed, cfg.Scheme)
	assert.Equal(t, mapbox.StyleLight, cfg.Style)
	assert.False(t, cfg.NoMetadata)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MapboxToken)
}

func TestLoad_ShortFlags(t *testing.T) {
	input := inputFile(t)

	cfg, err := Load([]string{"-i", input, "-o", "out.html", "-c", "viridis", "-s", "dark", "--no-metadata"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "out.html", cfg.Output)
	assert.Equal(t, domain.SchemeViridis, cfg.Scheme)
	assert.Equal(t, mapbox.StyleDark, cfg.Style)
	assert.True(t, cfg.NoMetadata)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("METRICS_FILE", "/tmp/uranium.prom")

	cfg, err := Load([]string{"--input", inputFile(t)}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, "/tmp/uranium.prom", cfg.MetricsFile)
}

func TestLoad_MissingInput(t *testing.T) {
	_, err := Load(nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}

func TestLoad_InputNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load([]string{"-i", path}, io.Discard)

	var notFound *domain.InputNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
}

func TestLoad_UnknownScheme(t *testing.T) {
	_, err := Load([]string{"-i", inputFile(t), "-c", "rainbow"}, io.Discard)

	var unknown *domain.UnknownSchemeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "rainbow", unknown.Name)
}

func TestLoad_UnknownStyle(t *testing.T) {
	_, err := Load([]string{"-i", inputFile(t), "-s", "neon"}, io.Discard)

	var unknown *mapbox.UnknownStyleError
	require.ErrorAs(t, err, &unknown)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load([]string{"-i", inputFile(t)}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load([]string{"-i", inputFile(t)}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_UnexpectedArgs(t *testing.T) {
	_, err := Load([]string{"-i", inputFile(t), "extra"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "data_3d_map.html", DefaultOutput("/srv/in/data.csv"))
	assert.Equal(t, "readings.v2_3d_map.html", DefaultOutput("readings.v2.csv"))
	assert.Equal(t, "noext_3d_map.html", DefaultOutput("noext"))
}
