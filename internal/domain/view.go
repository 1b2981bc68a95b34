package domain

import "math"

const (
	defaultPitch   = 60
	defaultBearing = 0
	viewWidth      = 800
	viewHeight     = 600
)

// View is the initial camera of the rendered scene.
type View struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// ComputeView centers the camera on the dataset and zooms out for wider spreads.
func ComputeView(s Statistics) View {
	return View{
		Latitude:  s.CenterLat,
		Longitude: s.CenterLon,
		Zoom:      zoomForSpread(math.Max(s.LatRange, s.LonRange)),
		Pitch:     defaultPitch,
		Bearing:   defaultBearing,
		Width:     viewWidth,
		Height:    viewHeight,
	}
}

func zoomForSpread(degrees float64) int {
	switch {
	case degrees > 10:
		return 5
	case degrees > 5:
		return 6
	case degrees > 2:
		return 7
	default:
		return 8
	}
}
