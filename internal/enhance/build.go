// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"github.com/LePresidente/xmltv-tools/internal/cache"
	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/fetch"
)

// DefaultProcessors returns the pipeline in its fixed order. Later
// processors depend on earlier edits: the enrichers see descriptions
// already trimmed by the subtitle extractor and HD detector.
func DefaultProcessors(client catalog.Client, lookup *cache.Lookup, fetcher *fetch.Fetcher, outputDir string, episodeNumbers bool) []Processor {
	return []Processor{
		NewSubtitle(),
		NewEpisodeNumbers(episodeNumbers),
		NewHD(),
		NewMovies(client, lookup, fetcher, outputDir),
		NewSeries(client, lookup, fetcher, outputDir),
		NewEpisodes(client, fetcher, outputDir),
	}
}
