package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingsWith(values ...float64) []Reading {
	out := make([]Reading, len(values))
	for i, v := range values {
		out[i] = Reading{City: "c", Latitude: 40 + float64(i), Longitude: -100 - float64(i), Concentration: v}
	}
	return out
}

func TestComputeStatistics_KnownValues(t *testing.T) {
	stats, err := ComputeStatistics(readingsWith(5, 1, 4, 2, 3))
	require.NoError(t, err)

	want := Statistics{
		Count:     5,
		Min:       1,
		Max:       5,
		Mean:      3,
		Median:    3,
		Std:       math.Sqrt(2.5),
		Q25:       2,
		Q75:       4,
		Range:     4,
		CenterLat: 42,
		CenterLon: -102,
		LatRange:  4,
		LonRange:  4,
		MinLat:    40,
		MaxLat:    44,
		MinLon:    -104,
		MaxLon:    -100,
	}
	if diff := cmp.Diff(want, stats,
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.IgnoreFields(Statistics{}, "SpreadKm"),
	); diff != "" {
		t.Fatalf("statistics mismatch (-want +got):\n%s", diff)
	}
	assert.Greater(t, stats.SpreadKm, 0.0)
}

func TestComputeStatistics_Empty(t *testing.T) {
	_, err := ComputeStatistics(nil)
	assert.ErrorIs(t, err, ErrNoReadings)
}

func TestComputeStatistics_SingleReading(t *testing.T) {
	stats, err := ComputeStatistics(readingsWith(7))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 7.0, stats.Median)
	assert.True(t, math.IsNaN(stats.Std))
	assert.Zero(t, stats.LatRange)
	assert.Zero(t, stats.SpreadKm)
}

func TestComputeStatistics_SpreadKm(t *testing.T) {
	// One degree of latitude along a meridian is ~111.2 km.
	stats, err := ComputeStatistics([]Reading{
		{Latitude: 0, Longitude: 0, Concentration: 1},
		{Latitude: 1, Longitude: 0, Concentration: 2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 111.2, stats.SpreadKm, 0.1)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.q), 1e-12, "q=%v", tt.q)
	}
}
