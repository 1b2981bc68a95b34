package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/couchcryptid/uranium-map/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// concentrationAliases are header spellings seen in exported sheets for the
// concentration column. Lookups compare after decoding to UTF-8.
var concentrationAliases = []string{
	domain.ColumnConcentration,       // U+00B5 micro sign
	"Uranium concentration (μg/L)",   // U+03BC Greek small mu
	"Uranium concentration (¬µg/L)", // UTF-8 read as Mac Roman
	"Uranium concentration (ug/L)",
}

// Reader loads raw rows from a CSV file. It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the file at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract reads the whole file. It returns *domain.InputNotFoundError when the
// file does not exist and *domain.SchemaError when a required column is absent.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawRow, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.InputNotFoundError{Path: r.path}
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, latin1 := decode(data)
	if latin1 {
		r.logger.Info("input is not valid UTF-8, decoding as ISO-8859-1", "path", r.path)
	}

	rows, err := Parse(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	r.logger.Info("loaded input", "path", r.path, "rows", len(rows))
	return rows, nil
}

// Parse reads UTF-8 CSV from src. The header must contain every column in
// domain.RequiredColumns; other columns are ignored.
func Parse(src io.Reader) ([]domain.RawRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Missing: domain.RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, domain.RawRow{
			Line:          line,
			City:          field(rec, idx.city),
			Latitude:      field(rec, idx.lat),
			Longitude:     field(rec, idx.lon),
			Concentration: field(rec, idx.conc),
		})
	}
	return rows, nil
}

type columns struct {
	city, lat, lon, conc int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{city: -1, lat: -1, lon: -1, conc: -1}
	available := make([]string, len(header))

	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, string(utf8BOM))
		}
		available[i] = h

		switch {
		case h == domain.ColumnCity && idx.city < 0:
			idx.city = i
		case h == domain.ColumnLatitude && idx.lat < 0:
			idx.lat = i
		case h == domain.ColumnLongitude && idx.lon < 0:
			idx.lon = i
		case isConcentrationHeader(h) && idx.conc < 0:
			idx.conc = i
		}
	}

	var missing []string
	for _, c := range []struct {
		name string
		pos  int
	}{
		{domain.ColumnCity, idx.city},
		{domain.ColumnLatitude, idx.lat},
		{domain.ColumnLongitude, idx.lon},
		{domain.ColumnConcentration, idx.conc},
	} {
		if c.pos < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return columns{}, &domain.SchemaError{Missing: missing, Available: available}
	}
	return idx, nil
}

func isConcentrationHeader(h string) bool {
	for _, alias := range concentrationAliases {
		if h == alias {
			return true
		}
	}
	return false
}

// field returns rec[i], or "" for short records.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

// decode strips a UTF-8 BOM and converts non-UTF-8 input from ISO-8859-1.
// The second result reports whether a conversion happened.
func decode(data []byte) ([]byte, bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, false
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data, false
	}
	return out, true
}
