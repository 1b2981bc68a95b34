package domain

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// Statistics summarizes one dataset. It is computed once and shared read-only
// by the color, height, and view calculations.
type Statistics struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64 // sample standard deviation; NaN when Count == 1
	Q25    float64
	Q75    float64
	Range  float64

	CenterLat float64
	CenterLon float64
	LatRange  float64
	LonRange  float64

	MinLat, MaxLat float64
	MinLon, MaxLon float64
	SpreadKm       float64 // great-circle length of the bounding box diagonal
}

// ComputeStatistics derives the dataset summary. It returns ErrNoReadings for
// an empty slice.
func ComputeStatistics(readings []Reading) (Statistics, error) {
	n := len(readings)
	if n == 0 {
		return Statistics{}, ErrNoReadings
	}

	values := make([]float64, n)
	lats := make([]float64, n)
	lons := make([]float64, n)
	for i, r := range readings {
		values[i] = r.Concentration
		lats[i] = r.Latitude
		lons[i] = r.Longitude
	}
	sort.Float64s(values)

	s := Statistics{
		Count:  n,
		Min:    values[0],
		Max:    values[n-1],
		Mean:   stat.Mean(values, nil),
		Median: Quantile(values, 0.5),
		Q25:    Quantile(values, 0.25),
		Q75:    Quantile(values, 0.75),
		Std:    math.NaN(),

		CenterLat: stat.Mean(lats, nil),
		CenterLon: stat.Mean(lons, nil),
		MinLat:    floats.Min(lats),
		MaxLat:    floats.Max(lats),
		MinLon:    floats.Min(lons),
		MaxLon:    floats.Max(lons),
	}
	if n > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Range = s.Max - s.Min
	s.LatRange = s.MaxLat - s.MinLat
	s.LonRange = s.MaxLon - s.MinLon

	sw := s2.LatLngFromDegrees(s.MinLat, s.MinLon)
	ne := s2.LatLngFromDegrees(s.MaxLat, s.MaxLon)
	s.SpreadKm = sw.Distance(ne).Radians() * earthRadiusKm

	return s, nil
}

// Quantile returns the q-th quantile of sorted values using linear
// interpolation between the closest order statistics. sorted must be
// non-empty and ascending.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
