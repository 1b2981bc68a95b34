// Command genmock writes a synthetic uranium readings CSV for demos and
// manual testing. Readings are scattered around real Nevada towns with
// log-normally distributed concentrations. With -dirty, a share of the rows
// is deliberately malformed so every cleaning rule is exercised.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/nevada_wells.csv -rows 250 -dirty 0.1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/uranium-map/internal/domain"
)

type town struct {
	name     string
	lat, lon float64
}

var towns = []town{
	{"Reno", 39.5296, -119.8138},
	{"Sparks", 39.5349, -119.7527},
	{"Carson City", 39.1638, -119.7674},
	{"Fallon", 39.4735, -118.7774},
	{"Fernley", 39.6080, -119.2518},
	{"Yerington", 38.9858, -119.1629},
	{"Winnemucca", 40.9730, -117.7357},
	{"Elko", 40.8324, -115.7631},
	{"Ely", 39.2474, -114.8886},
	{"Tonopah", 38.0672, -117.2301},
	{"Pahrump", 36.2083, -115.9839},
	{"Las Vegas", 36.1699, -115.1398},
}

// jitter is the maximum offset in degrees from a town center.
const jitter = 0.15

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the readings CSV")
	rows := flag.Int("rows", 200, "number of rows to generate")
	seed := flag.Uint64("seed", 240426, "random seed")
	dirty := flag.Float64("dirty", 0, "fraction of rows to corrupt, 0-1")
	flag.Parse()

	if *out == "" || *rows <= 0 || *dirty < 0 || *dirty > 1 {
		flag.Usage()
		return fmt.Errorf("invalid flags: -out is required, -rows must be positive, -dirty must be in [0,1]")
	}

	raw := generate(rand.New(rand.NewPCG(*seed, *seed)), *rows, *dirty)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := writeCSV(f, raw); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d rows to %s", len(raw), *out)

	return printStats(os.Stdout, raw)
}

// generate builds n rows. Every 1/dirty-th row is corrupted by cycling
// through the rejection and clamping cases.
func generate(r *rand.Rand, n int, dirty float64) []domain.RawRow {
	every := 0
	if dirty > 0 {
		every = max(1, int(math.Round(1/dirty)))
	}

	out := make([]domain.RawRow, 0, n)
	var corrupted int
	for i := range n {
		t := towns[r.IntN(len(towns))]
		row := domain.RawRow{
			Line:          i + 2,
			City:          t.name,
			Latitude:      formatFloat(t.lat+(r.Float64()*2-1)*jitter, 4),
			Longitude:     formatFloat(t.lon+(r.Float64()*2-1)*jitter, 4),
			Concentration: formatFloat(math.Exp(r.NormFloat64()*1.1+1.2), 2),
		}
		if every > 0 && i%every == every-1 {
			corrupt(&row, corrupted)
			corrupted++
		}
		out = append(out, row)
	}
	return out
}

// corrupt applies the k-th corruption in a fixed rotation.
func corrupt(row *domain.RawRow, k int) {
	switch k % 5 {
	case 0:
		row.Latitude = ""
	case 1:
		row.Concentration = "N/A"
	case 2:
		row.Concentration = "0"
	case 3:
		row.Concentration = "-" + row.Concentration
	case 4:
		row.Latitude = "91.5"
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func writeCSV(w io.Writer, rows []domain.RawRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.RequiredColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.City, r.Latitude, r.Longitude, r.Concentration}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// printStats runs the real cleaning and statistics stages over the generated
// rows so fixture assertions can be updated from the output.
func printStats(w io.Writer, raw []domain.RawRow) error {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	readings, report := domain.Clean(raw, quiet)

	fmt.Fprintln(w, "\n=== Stats for updating test assertions ===")
	fmt.Fprintf(w, "Rows: %d, kept: %d, clamped: %d\n", report.Total, report.Kept, report.Clamped)
	for _, reason := range domain.RejectReasons {
		fmt.Fprintf(w, "Rejected %s: %d\n", reason, report.Rejected(reason))
	}

	stats, err := domain.ComputeStatistics(readings)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Concentration: min=%.2f max=%.2f mean=%.2f median=%.2f\n",
		stats.Min, stats.Max, stats.Mean, stats.Median)
	fmt.Fprintf(w, "Center: (%.4f, %.4f), spread %.0f km, zoom %d\n",
		stats.CenterLat, stats.CenterLon, stats.SpreadKm, domain.ComputeView(stats).Zoom)
	return nil
}
