// SPDX-License-Identifier: BSD-3-Clause

package xmltv

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the XMLTV timestamp layout without its zone suffix.
const TimeFormat = "20060102150405"

// stripZone drops the " +ZZZZ" suffix from an XMLTV timestamp.
// Durations computed from zone-stripped times are only used to guess
// at programme kinds, so the lost offset does not matter.
func stripZone(ts string) string {
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		return ts[:i]
	}
	return ts
}

// Duration returns the scheduled length of the programme. It fails
// when either timestamp is absent or malformed.
func (p *Programme) Duration() (time.Duration, error) {
	if p.Stop == "" {
		return 0, fmt.Errorf("programme %q has no stop time", p.Title())
	}
	start, err := time.Parse(TimeFormat, stripZone(p.Start))
	if err != nil {
		return 0, fmt.Errorf("parse start %q: %w", p.Start, err)
	}
	stop, err := time.Parse(TimeFormat, stripZone(p.Stop))
	if err != nil {
		return 0, fmt.Errorf("parse stop %q: %w", p.Stop, err)
	}
	return stop.Sub(start), nil
}

// Title returns the first title value, or "" when none is present.
func (p *Programme) Title() string {
	if len(p.Titles) == 0 {
		return ""
	}
	return p.Titles[0].Value
}

// Desc returns a pointer to the first description, or nil.
func (p *Programme) Desc() *Text {
	if len(p.Descs) == 0 {
		return nil
	}
	return &p.Descs[0]
}

// SetDesc overwrites the first description, creating one if needed.
func (p *Programme) SetDesc(text string) {
	if d := p.Desc(); d != nil {
		d.Value = text
		return
	}
	p.Descs = append(p.Descs, Text{Value: text})
}

// HasSubTitle reports whether any sub-title is present.
func (p *Programme) HasSubTitle() bool {
	return len(p.SubTitles) > 0
}

// SetSubTitle overwrites the first sub-title, creating one if needed.
func (p *Programme) SetSubTitle(text string) {
	if len(p.SubTitles) > 0 {
		p.SubTitles[0].Value = text
		return
	}
	p.SubTitles = append(p.SubTitles, Text{Value: text})
}

// HasCategory reports whether a category with the exact text exists.
func (p *Programme) HasCategory(text string) bool {
	for _, c := range p.Categories {
		if c.Value == text {
			return true
		}
	}
	return false
}

// AddCategory appends a category unless one with the same text exists.
func (p *Programme) AddCategory(text, lang string) bool {
	if text == "" || p.HasCategory(text) {
		return false
	}
	p.Categories = append(p.Categories, Text{Lang: lang, Value: text})
	return true
}

// SetLengthMinutes replaces any existing length with one in minutes.
func (p *Programme) SetLengthMinutes(minutes int) {
	p.Length = &Length{Units: "minutes", Value: strconv.Itoa(minutes)}
}

// AddIcon appends an icon reference.
func (p *Programme) AddIcon(src string) {
	p.Icons = append(p.Icons, Icon{Src: src})
}

// SetStarRating replaces any existing star-rating with value "r/10".
func (p *Programme) SetStarRating(rating float64) {
	p.StarRatings = []StarRating{{Value: fmt.Sprintf("%g/10", rating)}}
}

// EpisodeNumbers returns the designators recorded in the given system.
func (p *Programme) EpisodeNumbers(system string) []EpisodeNum {
	var out []EpisodeNum
	for _, e := range p.EpisodeNums {
		if e.System == system {
			out = append(out, e)
		}
	}
	return out
}

// AddEpisodeNum appends an episode designator.
func (p *Programme) AddEpisodeNum(system, value string) {
	p.EpisodeNums = append(p.EpisodeNums, EpisodeNum{System: system, Value: value})
}

// ParseXMLTVNS decodes an xmltv_ns designator ("season.episode.part",
// zero-based) into one-based season and episode numbers.
func ParseXMLTVNS(value string) (season, episode int, err error) {
	parts := strings.Split(value, ".")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed xmltv_ns designator %q", value)
	}
	s, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(parts[0], "/", 2)[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed season in %q: %w", value, err)
	}
	e, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(parts[1], "/", 2)[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed episode in %q: %w", value, err)
	}
	return s + 1, e + 1, nil
}
