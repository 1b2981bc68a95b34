package deckgl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/uranium-map/internal/domain"
)

const closingBody = "</body>"

var errNoBodyTag = errors.New("no </body> tag in output")

// overlayData feeds templates/overlay.html.
type overlayData struct {
	domain.Statistics
	Source      string
	GeneratedAt string
}

// InjectMetadata inserts the statistics overlay immediately before the last
// </body> tag of the written page. Every failure wraps domain.ErrMetadataPatch.
func (w *Writer) InjectMetadata(ctx context.Context, stats domain.Statistics) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMetadataPatch, err)
	}

	var fragment bytes.Buffer
	if err := templates.ExecuteTemplate(&fragment, "overlay.html", overlayData{
		Statistics:  stats,
		Source:      filepath.Base(w.source),
		GeneratedAt: clock.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("%w: render overlay: %w", domain.ErrMetadataPatch, err)
	}

	if err := patchFile(w.path, fragment.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMetadataPatch, err)
	}
	return nil
}

// patchFile reads path, splices fragment in before the last </body>, and
// rewrites the file in place.
func patchFile(path string, fragment []byte) error {
	content, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	i := bytes.LastIndex(content, []byte(closingBody))
	if i < 0 {
		return errNoBodyTag
	}

	patched := make([]byte, 0, len(content)+len(fragment)+1)
	patched = append(patched, content[:i]...)
	patched = append(patched, fragment...)
	patched = append(patched, '\n')
	patched = append(patched, content[i:]...)

	if err := writeFile(path, patched); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
