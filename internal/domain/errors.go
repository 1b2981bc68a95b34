package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoReadings is returned when no row survives cleaning.
	ErrNoReadings = errors.New("no valid readings")

	// ErrDegenerateRange signals that every reading has the same concentration.
	// It is a warning: colors fall back to neutral gray.
	ErrDegenerateRange = errors.New("all concentrations are equal; using neutral gray")

	// ErrNonPositiveMinimum is returned by NewHeightScaler when min <= 0.
	ErrNonPositiveMinimum = errors.New("height scaling requires a positive minimum concentration")

	// ErrMetadataPatch wraps failures of the post-render overlay injection.
	// It is a warning: the rendered map is still usable.
	ErrMetadataPatch = errors.New("metadata injection failed")
)

// SchemaError reports required CSV columns absent from the header.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: [%s] (available: [%s])",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// UnknownSchemeError reports an unsupported color scheme name.
type UnknownSchemeError struct {
	Name string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown color scheme %q (valid: %s)", e.Name, strings.Join(SchemeNames(), ", "))
}

// InputNotFoundError reports a missing input file.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file %q not found", e.Path)
}
