// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

var (
	// "... S2 Ep 11 ..." in free-form description text.
	epDescPatterns = []*regexp.Regexp{
		regexp.MustCompile(` S\s?(\d+) Ep\s?(\d+)`),
	}
	// Season/episode hidden inside dd_progid designators.
	epProgIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s?(\d+)Ep\s?(\d+)`),
	}
)

// EpisodeNumbers mines season/episode designators out of description
// text and dd_progid designators and records them in the standard
// xmltv_ns scheme. Some providers use the same text format for movies,
// so the processor is off by default.
type EpisodeNumbers struct {
	enabled bool
	logger  zerolog.Logger
}

// NewEpisodeNumbers creates the designator extractor.
func NewEpisodeNumbers(enabled bool) *EpisodeNumbers {
	return &EpisodeNumbers{enabled: enabled, logger: log.WithComponent("episode-numbers")}
}

func (e *EpisodeNumbers) Name() string  { return "episode-numbers" }
func (e *EpisodeNumbers) Enabled() bool { return e.enabled }

func (e *EpisodeNumbers) Apply(_ context.Context, p *xmltv.Programme) error {
	if desc := p.Desc(); desc != nil && desc.Value != "" {
		for _, re := range epDescPatterns {
			m := re.FindStringSubmatch(desc.Value)
			if m == nil {
				continue
			}
			season, episode, err := atoiPair(m[1], m[2])
			if err != nil {
				return err
			}
			e.logger.Debug().Int("season", season).Int("episode", episode).
				Str("title", p.Title()).Msg("found designator in description")
			p.AddEpisodeNum("xmltv_ns", fmt.Sprintf("%d.%d.0", season-1, episode-1))
			break
		}
	}

	for _, ep := range p.EpisodeNumbers("dd_progid") {
		for _, re := range epProgIDPatterns {
			m := re.FindStringSubmatch(ep.Value)
			if m == nil {
				continue
			}
			season, episode, err := atoiPair(m[1], m[2])
			if err != nil {
				return err
			}
			e.logger.Debug().Int("season", season).Int("episode", episode).
				Str("title", p.Title()).Msg("found designator in dd_progid")
			p.AddEpisodeNum("xmltv_ns", fmt.Sprintf("%d.%d.0", season-1, episode-1))
			break
		}
	}
	return nil
}

func atoiPair(a, b string) (int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
