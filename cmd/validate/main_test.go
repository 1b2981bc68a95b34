package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "City,Latitude,Longitude,Uranium concentration (µg/L)\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_CleanFilePasses(t *testing.T) {
	path := writeCSV(t, header+
		"Reno,39.53,-119.81,2.5\n"+
		"Elko,40.83,-115.76,11.0\n")

	var out bytes.Buffer
	code := run(&out, path, true)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Rows: 2 read, 2 kept, 0 clamped, 0 rejected")
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestRun_RejectionsWarnUnlessStrict(t *testing.T) {
	path := writeCSV(t, header+
		"Reno,39.53,-119.81,2.5\n"+
		"Ely,,-114.89,7\n"+
		"Tonopah,38.07,-117.23,0\n")

	var out bytes.Buffer
	assert.Equal(t, 0, run(&out, path, false))
	assert.Contains(t, out.String(), "warning: line 3: missing_coordinates")
	assert.Contains(t, out.String(), "warning: 1 rows had non-positive concentrations raised to 0.1")

	out.Reset()
	assert.Equal(t, 1, run(&out, path, true))
	assert.Contains(t, out.String(), "[1] line 3: missing_coordinates")
	assert.Contains(t, out.String(), "Validation FAILED.")
}

func TestRun_MissingColumns(t *testing.T) {
	path := writeCSV(t, "City,Latitude\nReno,39.53\n")

	var out bytes.Buffer
	code := run(&out, path, false)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Schema")
	assert.Contains(t, out.String(), "Longitude")
	assert.NotContains(t, out.String(), "Row quality")
}

func TestRun_NothingSurvives(t *testing.T) {
	path := writeCSV(t, header+"Nowhere,123,0,4\n")

	var out bytes.Buffer
	code := run(&out, path, false)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "no rows survived cleaning")
	assert.Contains(t, out.String(), "no valid readings")
}

func TestRun_DegenerateRangeWarns(t *testing.T) {
	path := writeCSV(t, header+
		"Reno,39.53,-119.81,5\n"+
		"Sparks,39.53,-119.75,5\n")

	var out bytes.Buffer
	assert.Equal(t, 0, run(&out, path, false))
	assert.Contains(t, out.String(), "every column will be gray")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, filepath.Join(t.TempDir(), "nope.csv"), false)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL")
}
