package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeView_Zoom(t *testing.T) {
	tests := []struct {
		latRange float64
		lonRange float64
		want     int
	}{
		{12, 0, 5},
		{7, 0, 6},
		{3, 0, 7},
		{1, 0, 8},
		{1, 12, 5},
		{10, 0, 6},
		{2, 2, 8},
	}
	for _, tt := range tests {
		v := ComputeView(Statistics{LatRange: tt.latRange, LonRange: tt.lonRange})
		assert.Equal(t, tt.want, v.Zoom, "lat=%v lon=%v", tt.latRange, tt.lonRange)
	}
}

func TestComputeView_FixedCamera(t *testing.T) {
	v := ComputeView(Statistics{CenterLat: 39.5, CenterLon: -119.8})

	assert.Equal(t, 39.5, v.Latitude)
	assert.Equal(t, -119.8, v.Longitude)
	assert.Equal(t, 60.0, v.Pitch)
	assert.Equal(t, 0.0, v.Bearing)
}

func TestFormatTooltip(t *testing.T) {
	got := FormatTooltip(Reading{City: "Reno", Latitude: 39.52963, Longitude: -119.8138, Concentration: 12.345})
	assert.Equal(t, "City: Reno\nUranium: 12.3 µg/L\nCoordinates: (39.5296, -119.8138)", got)
}

func TestColumnRadius(t *testing.T) {
	assert.Equal(t, 50000.0, ColumnRadius(1))
	assert.Equal(t, 5000.0, ColumnRadius(10))
	assert.Equal(t, 1000.0, ColumnRadius(50))
	assert.Equal(t, 1000.0, ColumnRadius(10000))
}

func TestAssembleScene(t *testing.T) {
	readings := []Reading{
		{City: "A", Latitude: 39.0, Longitude: -119.0, Concentration: 1},
		{City: "B", Latitude: 39.5, Longitude: -119.5, Concentration: 5},
		{City: "C", Latitude: 40.0, Longitude: -120.0, Concentration: 10},
	}
	stats, err := ComputeStatistics(readings)
	require.NoError(t, err)

	scene, err := AssembleScene(readings, stats, SchemeGreenToRed)
	require.NoError(t, err)

	require.Len(t, scene.Points, 3)
	assert.Equal(t, RGB{0, 255, 0}, scene.Points[0].Color)
	assert.Equal(t, RGB{255, 0, 0}, scene.Points[2].Color)
	assert.InDelta(t, 5000, scene.Points[2].Height, 1e-9)
	assert.Equal(t, "linear", scene.HeightMode)
	assert.Equal(t, "green_to_red", scene.Scheme)
	assert.Equal(t, 8, scene.View.Zoom)
	assert.InDelta(t, 39.5, scene.View.Latitude, 1e-9)
	assert.InDelta(t, -119.5, scene.View.Longitude, 1e-9)
	assert.InDelta(t, 50000.0/3, scene.Layer.Radius, 1e-9)
	assert.True(t, scene.Layer.Extruded)
	assert.True(t, scene.Layer.Pickable)
	assert.False(t, scene.Degenerate)
	for _, p := range scene.Points {
		assert.Len(t, p.ID, geohashLength)
		assert.Contains(t, p.Tooltip, "City: "+p.City)
	}
}

func TestAssembleScene_DegenerateRange(t *testing.T) {
	readings := []Reading{
		{City: "A", Latitude: 39.0, Longitude: -119.0, Concentration: 3},
		{City: "B", Latitude: 39.1, Longitude: -119.1, Concentration: 3},
	}
	stats, err := ComputeStatistics(readings)
	require.NoError(t, err)

	scene, err := AssembleScene(readings, stats, SchemeViridis)
	require.NoError(t, err)

	assert.True(t, scene.Degenerate)
	for _, p := range scene.Points {
		assert.Equal(t, NeutralGray, p.Color)
	}
}

func TestAssembleScene_Empty(t *testing.T) {
	_, err := AssembleScene(nil, Statistics{}, SchemeGreenToRed)
	assert.ErrorIs(t, err, ErrNoReadings)
}

func TestRenderedPoint_JSON(t *testing.T) {
	p := RenderedPoint{
		Reading: Reading{City: "A", Latitude: 1, Longitude: 2, Concentration: 3},
		Color:   RGB{1, 2, 3},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":[1,2,3]`)
	assert.Contains(t, string(data), `"latitude":1`)
}
