// SPDX-License-Identifier: BSD-3-Clause

// Package xmltv models an XMLTV guide document and the canonical
// programme layout the enhancer writes.
package xmltv

import "encoding/xml"

// TV is the root element of an XMLTV document.
type TV struct {
	XMLName           xml.Name    `xml:"tv"`
	SourceInfoName    string      `xml:"source-info-name,attr,omitempty"`
	SourceInfoURL     string      `xml:"source-info-url,attr,omitempty"`
	GeneratorInfoName string      `xml:"generator-info-name,attr,omitempty"`
	GeneratorInfoURL  string      `xml:"generator-info-url,attr,omitempty"`
	Channels          []Channel   `xml:"channel"`
	Programmes        []Programme `xml:"programme"`
}

// Channel carries guide channel metadata. The enhancer passes channels
// through untouched.
type Channel struct {
	ID           string   `xml:"id,attr"`
	DisplayNames []Text   `xml:"display-name"`
	Icons        []Icon   `xml:"icon"`
	URLs         []string `xml:"url"`
}

// Programme is one broadcast event. Struct field order matches the
// canonical XMLTV child-element order, so marshalling a programme
// always yields the canonical layout.
type Programme struct {
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr,omitempty"`
	Channel string `xml:"channel,attr"`

	Titles          []Text       `xml:"title"`
	SubTitles       []Text       `xml:"sub-title"`
	Descs           []Text       `xml:"desc"`
	Credits         *Credits     `xml:"credits"`
	Date            string       `xml:"date,omitempty"`
	Categories      []Text       `xml:"category"`
	Language        *Text        `xml:"language"`
	OrigLanguage    *Text        `xml:"orig-language"`
	Length          *Length      `xml:"length"`
	Icons           []Icon       `xml:"icon"`
	URLs            []string     `xml:"url"`
	Countries       []Text       `xml:"country"`
	EpisodeNums     []EpisodeNum `xml:"episode-num"`
	Video           *Video       `xml:"video"`
	Audio           *Audio       `xml:"audio"`
	PreviouslyShown *PreviouslyShown `xml:"previously-shown"`
	Premiere        *Text        `xml:"premiere"`
	LastChance      *Text        `xml:"last-chance"`
	New             *Presence    `xml:"new"`
	Subtitles       []SubtitlesFlag `xml:"subtitles"`
	Ratings         []Rating     `xml:"rating"`
	StarRatings     []StarRating `xml:"star-rating"`

	// Unknown captures child elements outside the canonical layout.
	// Canonicalize rejects programmes that carry any.
	Unknown []AnyElement `xml:",any"`
}

// Text is a localisable character-data element.
type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Icon references an image by source URL or path.
type Icon struct {
	Src    string `xml:"src,attr"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

// Length is a programme duration with its unit.
type Length struct {
	Units string `xml:"units,attr"`
	Value string `xml:",chardata"`
}

// EpisodeNum is an episode designator in one numbering system.
type EpisodeNum struct {
	System string `xml:"system,attr,omitempty"`
	Value  string `xml:",chardata"`
}

// Video describes the video characteristics of a broadcast.
type Video struct {
	Present string `xml:"present,omitempty"`
	Colour  string `xml:"colour,omitempty"`
	Aspect  string `xml:"aspect,omitempty"`
	Quality string `xml:"quality,omitempty"`
}

// Audio describes the audio characteristics of a broadcast.
type Audio struct {
	Present string `xml:"present,omitempty"`
	Stereo  string `xml:"stereo,omitempty"`
}

// Credits is passed through verbatim; the enhancer never edits it.
type Credits struct {
	InnerXML string `xml:",innerxml"`
}

// PreviouslyShown marks a repeat broadcast.
type PreviouslyShown struct {
	Start   string `xml:"start,attr,omitempty"`
	Channel string `xml:"channel,attr,omitempty"`
}

// Presence is an empty element whose existence is the information.
type Presence struct{}

// SubtitlesFlag indicates closed captions or subtitles availability.
type SubtitlesFlag struct {
	Type     string `xml:"type,attr,omitempty"`
	Language *Text  `xml:"language"`
}

// Rating is an agency content rating.
type Rating struct {
	System string `xml:"system,attr,omitempty"`
	Value  string `xml:"value"`
	Icons  []Icon `xml:"icon"`
}

// StarRating is a numeric quality rating such as "7.3/10".
type StarRating struct {
	System string `xml:"system,attr,omitempty"`
	Value  string `xml:"value"`
}

// AnyElement preserves an element the canonical layout does not know.
type AnyElement struct {
	XMLName  xml.Name
	InnerXML string `xml:",innerxml"`
}
