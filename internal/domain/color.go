package domain

import "math"

// Scheme selects a concentration-to-color mapping.
type Scheme int

const (
	SchemeGreenToRed Scheme = iota
	SchemeBlueToRed
	SchemeViridis
	SchemePlasma
	schemeCount
)

// DefaultScheme is used when no scheme is configured.
const DefaultScheme = SchemeGreenToRed

// RGB is an 8-bit color triple. It marshals as a JSON array, the form deck.gl
// accessors expect.
type RGB [3]uint8

// NeutralGray is returned for every value when the concentration range is degenerate.
var NeutralGray = RGB{128, 128, 128}

type schemeInfo struct {
	name        string
	description string
	// channels returns unscaled r, g, b for normalized t in [0, 1].
	channels func(t float64) (float64, float64, float64)
}

var schemes = [schemeCount]schemeInfo{
	SchemeGreenToRed: {"green_to_red", "Green for low, red for high concentrations", greenToRed},
	SchemeBlueToRed:  {"blue_to_red", "Blue for low, red for high concentrations", blueToRed},
	SchemeViridis:    {"viridis", "Scientific color scheme (purple to yellow)", viridis},
	SchemePlasma:     {"plasma", "Scientific color scheme (purple to pink)", plasma},
}

// ParseScheme resolves a scheme by name.
func ParseScheme(name string) (Scheme, error) {
	for i, s := range schemes {
		if s.name == name {
			return Scheme(i), nil
		}
	}
	return 0, &UnknownSchemeError{Name: name}
}

// SchemeNames lists valid scheme names in declaration order.
func SchemeNames() []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.name
	}
	return names
}

func (s Scheme) valid() bool { return s >= 0 && s < schemeCount }

func (s Scheme) String() string {
	if !s.valid() {
		return "unknown"
	}
	return schemes[s].name
}

// Description is a human-readable summary of the gradient.
func (s Scheme) Description() string {
	if !s.valid() {
		return ""
	}
	return schemes[s].description
}

// ColorMapper maps concentrations to colors relative to a dataset's range.
type ColorMapper struct {
	scheme   Scheme
	min, max float64
}

// NewColorMapper binds a scheme to the [min, max] concentration range.
func NewColorMapper(scheme Scheme, min, max float64) ColorMapper {
	return ColorMapper{scheme: scheme, min: min, max: max}
}

// Degenerate reports whether the range collapses to a single value, in which
// case every color is NeutralGray.
func (m ColorMapper) Degenerate() bool {
	return m.max == m.min
}

// Color returns the color for value. Channels are clamped to [0, 255].
func (m ColorMapper) Color(value float64) RGB {
	if m.Degenerate() || !m.scheme.valid() {
		return NeutralGray
	}
	t := clamp((value-m.min)/(m.max-m.min), 0, 1)
	r, g, b := schemes[m.scheme].channels(t)
	return RGB{channel(r), channel(g), channel(b)}
}

func greenToRed(t float64) (float64, float64, float64) {
	if t <= 0.5 {
		return 2 * t, 1, 0
	}
	return 1, 2 - 2*t, 0
}

func blueToRed(t float64) (float64, float64, float64) {
	return t, (1 - t) * 0.5, 1 - t
}

// viridis and plasma are quadratic approximations, not the reference colormaps.
func viridis(t float64) (float64, float64, float64) {
	return 0.267 + 0.005*t + 0.334*t*t,
		0.004 + 0.632*t + 0.021*t*t,
		0.329 + 0.549*t - 0.137*t*t
}

func plasma(t float64) (float64, float64, float64) {
	return 0.050 + 0.900*t + 0.100*t*t,
		0.030 + 0.350*t + 0.100*t*t,
		0.800 + 0.100*t - 0.600*t*t
}

// channel scales a unit intensity to 0..255.
func channel(f float64) uint8 {
	return uint8(clamp(math.Round(255*f), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
