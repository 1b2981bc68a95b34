package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/uranium-map/internal/adapter/mapbox"
	"github.com/couchcryptid/uranium-map/internal/domain"
)

// AppName identifies the tool in logs and usage output.
const AppName = "uranium-map"

// outputSuffix is appended to the input base name when no output is given.
const outputSuffix = "_3d_map.html"

// Config holds all run settings, populated from flags and environment variables.
type Config struct {
	Input      string `validate:"required"`
	Output     string `validate:"required"`
	Scheme     domain.Scheme
	Style      mapbox.Style
	NoMetadata bool

	MetricsFile string
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`

	// Mapbox access token for the base map tiles.
	MapboxToken string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load parses command-line args (without the program name), loads a .env file
// when present, and reads the remaining settings from the environment. Color
// scheme and map style names are resolved here so invalid names fail before
// any input is read. A missing input file yields *domain.InputNotFoundError.
func Load(args []string, stderr io.Writer) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	fset := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fset.SetOutput(stderr)

	var input, output, color, style, metricsFile string
	var noMetadata bool
	stringFlag(fset, &input, "input", "i", "", "input CSV file path (required)")
	stringFlag(fset, &output, "output", "o", "", "output HTML file path (default <input-basename>"+outputSuffix+")")
	stringFlag(fset, &color, "color", "c", domain.DefaultScheme.String(),
		"color scheme: "+strings.Join(domain.SchemeNames(), ", "))
	stringFlag(fset, &style, "style", "s", mapbox.DefaultStyle.String(),
		"map style: "+strings.Join(mapbox.StyleNames(), ", "))
	fset.BoolVar(&noMetadata, "no-metadata", false, "disable the metadata overlay")
	fset.StringVar(&metricsFile, "metrics-file", sharedcfg.EnvOrDefault("METRICS_FILE", ""),
		"write Prometheus metrics to this textfile after the run")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fset.Args(), " "))
	}

	scheme, err := domain.ParseScheme(color)
	if err != nil {
		return nil, err
	}
	mapStyle, err := mapbox.ParseStyle(style)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Input:       input,
		Output:      output,
		Scheme:      scheme,
		Style:       mapStyle,
		NoMetadata:  noMetadata,
		MetricsFile: metricsFile,
		LogLevel:    strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		MapboxToken: os.Getenv("MAPBOX_TOKEN"),
	}
	if cfg.Output == "" && cfg.Input != "" {
		cfg.Output = DefaultOutput(cfg.Input)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, validationError(err)
	}

	if _, err := os.Stat(cfg.Input); errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.InputNotFoundError{Path: cfg.Input}
	}

	return cfg, nil
}

// DefaultOutput derives "<input-basename>_3d_map.html" in the working directory.
func DefaultOutput(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

// stringFlag registers a string flag under a long and a short name.
func stringFlag(fset *flag.FlagSet, p *string, name, short, value, usage string) {
	fset.StringVar(p, name, value, usage)
	fset.StringVar(p, short, value, "shorthand for -"+name)
}

// validationError turns validator output into one readable error naming the
// offending settings.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", settingName(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func settingName(field string) string {
	switch field {
	case "Input":
		return "--input"
	case "Output":
		return "--output"
	case "LogLevel":
		return "LOG_LEVEL"
	case "LogFormat":
		return "LOG_FORMAT"
	default:
		return field
	}
}
