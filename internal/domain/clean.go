package domain

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// candidate is a row in flight through the cleaning stages.
type candidate struct {
	line    int
	reading Reading
	numeric bool // concentration parsed to a finite value
}

// Clean validates raw rows and returns the readings that satisfy every
// invariant, plus a report of what was clamped and dropped. Row order is
// preserved. Stage counts are logged through logger.
func Clean(rows []RawRow, logger *slog.Logger) ([]Reading, CleanReport) {
	report := CleanReport{Total: len(rows)}

	// Stage 1: coerce concentration.
	stage := make([]candidate, 0, len(rows))
	for _, row := range rows {
		conc, ok := parseFinite(row.Concentration)
		stage = append(stage, candidate{
			line:    row.Line,
			numeric: ok,
			reading: Reading{City: row.City, Concentration: conc},
		})
	}

	// Stage 2: drop missing coordinates.
	kept := stage[:0]
	for i, c := range stage {
		lat, latOK := parseFinite(rows[i].Latitude)
		lon, lonOK := parseFinite(rows[i].Longitude)
		if !latOK || !lonOK {
			report.Rejections = append(report.Rejections, Rejection{Line: c.line, Reason: RejectMissingCoordinates})
			continue
		}
		c.reading.Latitude = lat
		c.reading.Longitude = lon
		kept = append(kept, c)
	}
	logRemoved(logger, "removed rows with missing coordinates", report.Rejected(RejectMissingCoordinates))

	// Stage 3: clamp non-positive concentrations.
	for i := range kept {
		if kept[i].numeric && kept[i].reading.Concentration <= 0 {
			kept[i].reading.Concentration = ConcentrationFloor
			report.Clamped++
		}
	}
	if report.Clamped > 0 {
		logger.Warn("clamped negative/zero concentrations",
			"rows", report.Clamped,
			"floor_ug_l", ConcentrationFloor,
		)
	}

	// Stage 4: drop non-numeric concentrations.
	numeric := kept[:0]
	for _, c := range kept {
		if !c.numeric {
			report.Rejections = append(report.Rejections, Rejection{Line: c.line, Reason: RejectInvalidConcentration})
			continue
		}
		numeric = append(numeric, c)
	}
	logRemoved(logger, "removed rows with non-numeric concentration", report.Rejected(RejectInvalidConcentration))

	// Stage 5: drop out-of-range coordinates.
	readings := make([]Reading, 0, len(numeric))
	for _, c := range numeric {
		if !validCoordinates(c.reading.Latitude, c.reading.Longitude) {
			report.Rejections = append(report.Rejections, Rejection{Line: c.line, Reason: RejectOutOfRange})
			continue
		}
		readings = append(readings, c.reading)
	}
	logRemoved(logger, "removed rows with out-of-range coordinates", report.Rejected(RejectOutOfRange))

	report.Kept = len(readings)
	return readings, report
}

// parseFinite parses s as a float64. Empty, unparseable, NaN, and infinite
// values report false.
func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func logRemoved(logger *slog.Logger, msg string, n int) {
	if n > 0 {
		logger.Info(msg, "rows", n)
	}
}
