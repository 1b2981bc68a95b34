package domain

import (
	"fmt"
	"math"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

const (
	minRadius     = 1000.0
	radiusBudget  = 50000.0
	geohashLength = 9
)

// RenderedPoint is a reading with its visual encoding attached.
type RenderedPoint struct {
	Reading
	ID      string  `json:"id"` // geohash of the coordinates
	Color   RGB     `json:"color"`
	Height  float64 `json:"height"`
	Tooltip string  `json:"tooltip"`
}

// LayerConfig holds the column layer settings.
type LayerConfig struct {
	Radius         float64 `json:"radius"`
	ElevationScale float64 `json:"elevationScale"`
	Coverage       float64 `json:"coverage"`
	Extruded       bool    `json:"extruded"`
	Pickable       bool    `json:"pickable"`
	AutoHighlight  bool    `json:"autoHighlight"`
}

// Scene is everything a renderer needs to draw the map.
type Scene struct {
	Points     []RenderedPoint `json:"points"`
	View       View            `json:"view"`
	Layer      LayerConfig     `json:"layer"`
	Scheme     string          `json:"scheme"`
	HeightMode string          `json:"heightMode"`
	Degenerate bool            `json:"-"`
}

// AssembleScene encodes every reading with the dataset's color and height
// scales. stats must have been computed from the same readings.
func AssembleScene(readings []Reading, stats Statistics, scheme Scheme) (Scene, error) {
	if len(readings) == 0 {
		return Scene{}, ErrNoReadings
	}

	colors := NewColorMapper(scheme, stats.Min, stats.Max)
	heights, err := NewHeightScaler(stats.Min, stats.Max)
	if err != nil {
		return Scene{}, fmt.Errorf("assemble scene: %w", err)
	}

	points := make([]RenderedPoint, len(readings))
	for i, r := range readings {
		points[i] = RenderedPoint{
			Reading: r,
			ID:      pointID(r),
			Color:   colors.Color(r.Concentration),
			Height:  heights.Height(r.Concentration),
			Tooltip: FormatTooltip(r),
		}
	}

	return Scene{
		Points:     points,
		View:       ComputeView(stats),
		Layer:      columnLayer(len(points)),
		Scheme:     scheme.String(),
		HeightMode: heights.Mode().String(),
		Degenerate: colors.Degenerate(),
	}, nil
}

// FormatTooltip renders the hover text for a reading.
func FormatTooltip(r Reading) string {
	return fmt.Sprintf("City: %s\nUranium: %.1f µg/L\nCoordinates: (%.4f, %.4f)",
		r.City, r.Concentration, r.Latitude, r.Longitude)
}

// ColumnRadius shrinks columns as the point count grows, down to a floor of 1000 m.
func ColumnRadius(pointCount int) float64 {
	if pointCount <= 0 {
		return radiusBudget
	}
	return math.Max(minRadius, radiusBudget/float64(pointCount))
}

func columnLayer(pointCount int) LayerConfig {
	return LayerConfig{
		Radius:         ColumnRadius(pointCount),
		ElevationScale: 1,
		Coverage:       1,
		Extruded:       true,
		Pickable:       true,
		AutoHighlight:  true,
	}
}

func pointID(r Reading) string {
	h := geohash.Encode(r.Latitude, r.Longitude)
	if len(h) > geohashLength {
		h = h[:geohashLength]
	}
	return h
}
