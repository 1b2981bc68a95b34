// Command validate performs a dry run of the cleaning and statistics stages
// against a readings CSV and reports whether it would render. Nothing is
// written. It checks the header schema, coordinate and concentration quality,
// and whether the surviving readings produce a usable color and height scale.
//
// Usage:
//
//	go run ./cmd/validate -input data/nevada_wells.csv [-strict]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/uranium-map/internal/adapter/csvfile"
	"github.com/couchcryptid/uranium-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
	notes    []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the readings CSV")
	strict := flag.Bool("strict", false, "treat rejected or clamped rows as failures")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *input, *strict))
}

func run(out io.Writer, input string, strict bool) int {
	fmt.Fprintln(out, "=== Uranium Readings Validation ===")
	fmt.Fprintln(out)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	rows, err := csvfile.NewReader(input, quiet).Extract(context.Background())

	schema := &phase{name: "Schema"}
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		schema.errorf("missing columns %q (found %q)", schemaErr.Missing, schemaErr.Available)
	case err != nil:
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{schema}
	if schema.passed() {
		readings, cleaned := domain.Clean(rows, quiet)
		phases = append(phases,
			validateRows(cleaned, strict),
			validateScales(readings),
		)
		fmt.Fprintf(out, "Rows: %d read, %d kept, %d clamped, %d rejected\n\n",
			cleaned.Total, cleaned.Kept, cleaned.Clamped, len(cleaned.Rejections))
	}

	return report(out, phases)
}

// validateRows checks what cleaning removed or altered.
func validateRows(r domain.CleanReport, strict bool) *phase {
	p := &phase{name: "Row quality"}
	problem := p.warnf
	if strict {
		problem = p.errorf
	}

	for _, rej := range r.Rejections {
		problem("line %d: %s", rej.Line, rej.Reason)
	}
	if r.Clamped > 0 {
		problem("%d rows had non-positive concentrations raised to %g", r.Clamped, domain.ConcentrationFloor)
	}
	if r.Kept == 0 {
		p.errorf("no rows survived cleaning")
	}
	return p
}

// validateScales checks that the surviving readings produce a usable visual
// encoding.
func validateScales(readings []domain.Reading) *phase {
	p := &phase{name: "Visual encoding"}
	if len(readings) == 0 {
		p.errorf("%v", domain.ErrNoReadings)
		return p
	}

	stats, err := domain.ComputeStatistics(readings)
	if err != nil {
		p.errorf("statistics: %v", err)
		return p
	}

	if domain.NewColorMapper(domain.DefaultScheme, stats.Min, stats.Max).Degenerate() {
		p.warnf("%v: every column will be gray", domain.ErrDegenerateRange)
	}
	heights, err := domain.NewHeightScaler(stats.Min, stats.Max)
	if err != nil {
		p.errorf("height scale: %v", err)
		return p
	}
	if stats.Count < 2 {
		p.warnf("a single reading has no standard deviation")
	}

	view := domain.ComputeView(stats)
	p.notef("%d readings, %.1f-%.1f µg/L, %s heights, zoom %d, spread %.0f km",
		stats.Count, stats.Min, stats.Max, heights.Mode(), view.Zoom, stats.SpreadKm)
	return p
}

func report(out io.Writer, phases []*phase) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-20s %s\n", p.name, status)
	}

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 && len(p.notes) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
		for _, w := range p.warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		for _, n := range p.notes {
			fmt.Fprintf(out, "  %s\n", n)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}
