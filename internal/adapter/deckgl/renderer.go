package deckgl

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/couchcryptid/uranium-map/internal/adapter/mapbox"
	"github.com/couchcryptid/uranium-map/internal/domain"
)

const (
	deckVersion     = "8.9.35"
	mapboxGLVersion = "1.13.3"
	pageTitle       = "Uranium Concentration 3D Map"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// tooltipStyle is applied to the hover box of every column.
var tooltipStyle = map[string]string{
	"color":           "white",
	"backgroundColor": "rgba(0,0,0,0.8)",
	"fontSize":        "12px",
	"padding":         "10px",
	"borderRadius":    "5px",
	"whiteSpace":      "pre-line",
}

// Writer renders scenes to a standalone deck.gl HTML page and patches the
// metadata overlay into it. It implements pipeline.Loader.
type Writer struct {
	path   string
	source string
	style  mapbox.Style
	token  string
	logger *slog.Logger
}

// NewWriter creates a Writer for the HTML file at path. source is the input
// file name shown in the overlay.
func NewWriter(path, source string, style mapbox.Style, token string, logger *slog.Logger) *Writer {
	return &Writer{
		path:   path,
		source: source,
		style:  style,
		token:  token,
		logger: logger,
	}
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

type pageData struct {
	Title           string
	DeckVersion     string
	MapboxGLVersion string
	SceneJSON       template.JS
	ConfigJSON      template.JS
}

// pageConfig carries the base map settings into the page script.
type pageConfig struct {
	MapStyle     string            `json:"mapStyle"`
	AccessToken  string            `json:"accessToken"`
	TooltipStyle map[string]string `json:"tooltipStyle"`
}

// Load renders the scene and writes the page. The page is rendered in memory
// first so a template failure never leaves a partial file behind.
func (w *Writer) Load(ctx context.Context, scene domain.Scene) error {
	sceneJSON, err := marshalTemplateJS(scene)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	configJSON, err := marshalTemplateJS(pageConfig{
		MapStyle:     w.style.URL(),
		AccessToken:  w.token,
		TooltipStyle: tooltipStyle,
	})
	if err != nil {
		return fmt.Errorf("encode page config: %w", err)
	}
	if w.token == "" {
		w.logger.Warn("MAPBOX_TOKEN is not set; the base map will not load")
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "map.html", pageData{
		Title:           pageTitle,
		DeckVersion:     deckVersion,
		MapboxGLVersion: mapboxGLVersion,
		SceneJSON:       sceneJSON,
		ConfigJSON:      configJSON,
	}); err != nil {
		return fmt.Errorf("render map: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFile(w.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write map: %w", err)
	}

	w.logger.Info("map written",
		"path", w.path,
		"points", len(scene.Points),
		"style", w.style.String(),
		"bytes", buf.Len(),
	)
	return nil
}

// marshalTemplateJS encodes v as JSON and marks it safe for a script context.
func marshalTemplateJS(v any) (template.JS, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(payload), nil //nolint:gosec // payload is JSON produced by encoding/json
}

// writeFile truncates path and writes data, reporting Close errors.
func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}
