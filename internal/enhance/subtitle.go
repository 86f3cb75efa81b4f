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

// subtitlePatterns are tried in declaration order against the start of
// the description; the first match wins. Downstream behaviour depends
// on this order, so do not reorder or "improve" it into best-match
// scoring.
var subtitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:Today|Tonight)?:? ?'(?P<subtitle>.*?\.)' ?`),
	regexp.MustCompile(`^'(?P<subtitle>.{2,60}?)'\.\s`),
	regexp.MustCompile(`^(?P<subtitle>.{2,60}?):\s`),
}

// Subtitle extracts an embedded episode subtitle from the front of a
// programme description into a distinct sub-title field.
type Subtitle struct {
	logger zerolog.Logger
}

// NewSubtitle creates the subtitle extractor.
func NewSubtitle() *Subtitle {
	return &Subtitle{logger: log.WithComponent("subtitle")}
}

func (s *Subtitle) Name() string  { return "subtitle" }
func (s *Subtitle) Enabled() bool { return true }

// Apply moves the first matching span out of the description. Records
// that already carry a sub-title are left alone.
func (s *Subtitle) Apply(_ context.Context, p *xmltv.Programme) error {
	if p.HasSubTitle() {
		return nil
	}
	desc := p.Desc()
	if desc == nil || desc.Value == "" {
		return nil
	}

	for _, re := range subtitlePatterns {
		m := re.FindStringSubmatchIndex(desc.Value)
		if m == nil {
			continue
		}
		sub := string(re.ExpandString(nil, "$subtitle", desc.Value, m))
		if sub == "" {
			continue
		}
		p.SetSubTitle(sub)
		// Remove the matched span; the match is anchored at the start.
		desc.Value = strings.TrimLeft(desc.Value[m[1]:], " ")
		s.logger.Debug().Str("subtitle", sub).Str("title", p.Title()).
			Msg("extracted subtitle from description")
		return nil
	}
	return nil
}
