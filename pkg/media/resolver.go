package media

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/dskvich/media-telegram-bot/pkg/domain"
)

type resolver struct {
	catalog          []domain.CatalogEntry
	videoBaseURL     string
	wallpaperBaseURL string

	// intn returns a value in [0, n).
	intn func(n int) int
}

func NewResolver(
	catalog []domain.CatalogEntry,
	videoBaseURL string,
	wallpaperBaseURL string,
) *resolver {
	return &resolver{
		catalog:          catalog,
		videoBaseURL:     videoBaseURL,
		wallpaperBaseURL: wallpaperBaseURL,
		intn:             rand.IntN,
	}
}

func (r *resolver) VideoURL(ctx context.Context) (string, error) {
	if len(r.catalog) == 0 {
		return "", domain.ErrEmptyCatalog
	}

	entry := r.catalog[r.intn(len(r.catalog))]
	url := r.videoBaseURL + withVideoExtension(entry.ID)

	slog.InfoContext(ctx, "Selected video", "url", url)

	return url, nil
}

func (r *resolver) WallpaperURL(ctx context.Context) string {
	id := domain.MinWallpaperID + r.intn(domain.MaxWallpaperID-domain.MinWallpaperID+1)
	url := r.wallpaperBaseURL + strconv.Itoa(id) + domain.WallpaperExtension

	slog.InfoContext(ctx, "Selected wallpaper", "url", url)

	return url
}

func withVideoExtension(id string) string {
	return lo.Ternary(strings.HasSuffix(id, domain.VideoExtension), id, id+domain.VideoExtension)
}
