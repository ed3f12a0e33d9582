package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dskvich/media-telegram-bot/pkg/domain"
)

// LoadError reports a catalog file that is missing or malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the video catalog, a JSON array of {"v": "<id>"} objects.
func Load(path string) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var entries []domain.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("decoding json: %w", err)}
	}

	if len(entries) == 0 {
		return nil, &LoadError{Path: path, Err: domain.ErrEmptyCatalog}
	}

	for i, e := range entries {
		if e.ID == "" {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("entry %d: %w", i, errMissingID)}
		}
	}

	slog.Info("catalog loaded", "path", path, "entries", len(entries))

	return entries, nil
}

var errMissingID = errors.New("missing content id")
