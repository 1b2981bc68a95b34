package mapbox

import (
	"fmt"
	"strings"
)

// Style selects a Mapbox base map.
type Style int

const (
	StyleLight Style = iota
	StyleDark
	StyleSatellite
	StyleOutdoors
	StyleStreets
	styleCount
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = StyleLight

const (
	styleScheme  = "mapbox://styles/"
	stylesAPIURL = "https://api.mapbox.com/styles/v1/"
)

var styles = [styleCount]struct {
	name string
	url  string
}{
	StyleLight:     {"light", "mapbox://styles/mapbox/light-v10"},
	StyleDark:      {"dark", "mapbox://styles/mapbox/dark-v10"},
	StyleSatellite: {"satellite", "mapbox://styles/mapbox/satellite-v9"},
	StyleOutdoors:  {"outdoors", "mapbox://styles/mapbox/outdoors-v11"},
	StyleStreets:   {"streets", "mapbox://styles/mapbox/streets-v11"},
}

// UnknownStyleError reports an unsupported map style name.
type UnknownStyleError struct {
	Name string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown map style %q (valid: %s)", e.Name, strings.Join(StyleNames(), ", "))
}

// ParseStyle resolves a style by name.
func ParseStyle(name string) (Style, error) {
	for i, s := range styles {
		if s.name == name {
			return Style(i), nil
		}
	}
	return 0, &UnknownStyleError{Name: name}
}

// StyleNames lists valid style names in declaration order.
func StyleNames() []string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.name
	}
	return names
}

func (s Style) String() string {
	if s < 0 || s >= styleCount {
		return "unknown"
	}
	return styles[s].name
}

// URL returns the mapbox:// style URL understood by mapbox-gl. Invalid values
// fall back to the light style.
func (s Style) URL() string {
	if s < 0 || s >= styleCount {
		return styles[DefaultStyle].url
	}
	return styles[s].url
}

// APIURL returns the Styles API endpoint for the style, e.g.
// https://api.mapbox.com/styles/v1/mapbox/light-v10.
func (s Style) APIURL() string {
	return stylesAPIURL + strings.TrimPrefix(s.URL(), styleScheme)
}
