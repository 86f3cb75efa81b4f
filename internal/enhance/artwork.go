// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/fetch"
	"github.com/LePresidente/xmltv-tools/internal/normalize"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// Artwork section names under <output>/Artwork.
const (
	sectionMovies = "Movies"
	sectionSeries = "Series"
)

// artwork places poster files under the output tree and records their
// paths on programmes.
type artwork struct {
	outputDir string
	fetcher   *fetch.Fetcher
}

// posterPath is the destination for a title's poster:
// <output>/Artwork/<section>/<sanitized title>/poster.jpg
func (a *artwork) posterPath(section, title string) string {
	return filepath.Join(a.outputDir, "Artwork", section, normalize.PathSegment(title), "poster.jpg")
}

// ensurePoster schedules a poster download when the file is absent and
// records the destination path on the programme immediately. The icon
// reference is deliberately written before the file exists: guide
// metadata and on-disk artwork are eventually consistent.
func (a *artwork) ensurePoster(p *xmltv.Programme, section, title, posterURL string, logger zerolog.Logger) {
	if posterURL == "" {
		return
	}
	dest := a.posterPath(section, title)

	if _, err := os.Stat(dest); os.IsNotExist(err) {
		logger.Info().Str("title", title).Str("dest", dest).Msg("scheduling poster download")
		a.fetcher.Submit(posterURL, dest)
	}

	logger.Debug().Str("title", title).Msg("recording poster location")
	p.AddIcon(dest)
}
