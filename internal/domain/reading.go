package domain

// Required CSV column labels.
const (
	ColumnCity          = "City"
	ColumnLatitude      = "Latitude"
	ColumnLongitude     = "Longitude"
	ColumnConcentration = "Uranium concentration (µg/L)"
)

// RequiredColumns lists the CSV columns every input file must carry.
var RequiredColumns = []string{ColumnCity, ColumnLatitude, ColumnLongitude, ColumnConcentration}

// ConcentrationFloor replaces zero or negative concentrations during cleaning.
const ConcentrationFloor = 0.1

// RawRow is one CSV record before validation. Line is the 1-based line number
// in the source file, header included.
type RawRow struct {
	Line          int
	City          string
	Latitude      string
	Longitude     string
	Concentration string
}

// Reading is a validated groundwater sample.
type Reading struct {
	City          string  `json:"city"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Concentration float64 `json:"concentration"` // µg/L, always > 0
}

// RejectReason explains why the cleaner dropped a row.
type RejectReason int

const (
	RejectMissingCoordinates RejectReason = iota + 1
	RejectInvalidConcentration
	RejectOutOfRange
)

var rejectReasonNames = map[RejectReason]string{
	RejectMissingCoordinates:   "missing_coordinates",
	RejectInvalidConcentration: "invalid_concentration",
	RejectOutOfRange:           "out_of_range",
}

// RejectReasons lists every reason in the order the cleaner applies them.
var RejectReasons = []RejectReason{RejectMissingCoordinates, RejectInvalidConcentration, RejectOutOfRange}

func (r RejectReason) String() string {
	if n, ok := rejectReasonNames[r]; ok {
		return n
	}
	return "unknown"
}

// Rejection records a dropped row.
type Rejection struct {
	Line   int
	Reason RejectReason
}

// CleanReport summarizes one cleaning pass.
type CleanReport struct {
	Total      int
	Kept       int
	Clamped    int
	Rejections []Rejection
}

// Rejected returns how many rows were dropped for the given reason.
func (r CleanReport) Rejected(reason RejectReason) int {
	n := 0
	for _, rej := range r.Rejections {
		if rej.Reason == reason {
			n++
		}
	}
	return n
}
