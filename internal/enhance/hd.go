// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// hdPatterns match trailing HD markers in descriptions, tried in
// declaration order with the first match winning.
var hdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`HD\.?$`),
	regexp.MustCompile(`\(HD\)$`),
}

// HD detects a high-definition note at the end of a description,
// strips it and flags the programme's video block accordingly.
type HD struct {
	logger zerolog.Logger
}

// NewHD creates the HD marker detector.
func NewHD() *HD {
	return &HD{logger: log.WithComponent("hd")}
}

func (h *HD) Name() string  { return "hd" }
func (h *HD) Enabled() bool { return true }

func (h *HD) Apply(_ context.Context, p *xmltv.Programme) error {
	desc := p.Desc()
	if desc == nil || desc.Value == "" {
		return nil
	}

	for _, re := range hdPatterns {
		if !re.MatchString(desc.Value) {
			continue
		}
		h.logger.Debug().Str("title", p.Title()).Msg("found HD marker")

		if p.Video == nil {
			p.Video = &xmltv.Video{Present: "yes", Aspect: "16:9", Quality: "HDTV"}
		} else if p.Video.Quality != "HDTV" {
			p.Video.Quality = "HDTV"
		}

		desc.Value = strings.TrimRight(re.ReplaceAllString(desc.Value, ""), " ")
		return nil
	}
	return nil
}
