package domain

import "math"

const (
	// maxLinearHeight is the elevation of the highest column in linear mode.
	maxLinearHeight = 5000.0
	// logScaleFactor multiplies log10(v + 1) in logarithmic mode.
	logScaleFactor = 1000.0
	// logRatioThreshold is the max/min ratio above which heights are logarithmic.
	logRatioThreshold = 100.0
)

// HeightMode selects how concentrations become column elevations.
type HeightMode int

const (
	HeightLinear HeightMode = iota
	HeightLogarithmic
)

func (m HeightMode) String() string {
	if m == HeightLogarithmic {
		return "logarithmic"
	}
	return "linear"
}

// HeightScaler converts concentrations to elevations. The mode is fixed at
// construction for the whole dataset.
type HeightScaler struct {
	mode HeightMode
	max  float64
}

// NewHeightScaler picks logarithmic scaling when max/min > 100 and linear
// scaling otherwise. min must be positive.
func NewHeightScaler(min, max float64) (HeightScaler, error) {
	if min <= 0 {
		return HeightScaler{}, ErrNonPositiveMinimum
	}
	mode := HeightLinear
	if max/min > logRatioThreshold {
		mode = HeightLogarithmic
	}
	return HeightScaler{mode: mode, max: max}, nil
}

func (h HeightScaler) Mode() HeightMode { return h.mode }

// Height returns the elevation for value.
func (h HeightScaler) Height(value float64) float64 {
	if h.mode == HeightLogarithmic {
		return math.Log10(value+1) * logScaleFactor
	}
	return value * (maxLinearHeight / h.max)
}
