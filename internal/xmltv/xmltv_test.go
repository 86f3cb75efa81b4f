// SPDX-License-Identifier: BSD-3-Clause

package xmltv

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="utf-8"?>
<tv generator-info-name="test">
	<channel id="freeview.1">
		<display-name>One</display-name>
	</channel>
	<programme start="20260101203000 +1300" stop="20260101224600 +1300" channel="freeview.1">
		<title>The Matrix</title>
		<desc>A hacker discovers reality is a simulation. HD</desc>
		<category>movie</category>
	</programme>
	<programme start="20260101190000" stop="20260101193000" channel="freeview.1">
		<title>Local News</title>
	</programme>
</tv>
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	require.Len(t, doc.Channels, 1)
	require.Len(t, doc.Programmes, 2)

	p := &doc.Programmes[0]
	assert.Equal(t, "The Matrix", p.Title())
	assert.Equal(t, "freeview.1", p.Channel)
	require.NotNil(t, p.Desc())
	assert.True(t, p.HasCategory("movie"))
	assert.Empty(t, p.Unknown)
}

func TestParseRejectsEntityExpansion(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<!DOCTYPE tv [<!ENTITY x "boom">]>
<tv><programme start="1" channel="c"><title>&x;</title></programme></tv>`
	_, err := Parse(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	d, err := doc.Programmes[0].Duration()
	require.NoError(t, err)
	assert.Equal(t, 136*time.Minute, d)

	d, err = doc.Programmes[1].Duration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)
}

func TestDurationMissingStop(t *testing.T) {
	p := Programme{Start: "20260101190000", Titles: []Text{{Value: "x"}}}
	_, err := p.Duration()
	assert.Error(t, err)
}

func TestCanonicalizeRejectsUnknownElements(t *testing.T) {
	const doc = `<tv>
	<programme start="20260101190000" stop="20260101193000" channel="c1">
		<title>Show</title>
		<bogus>data</bogus>
	</programme>
	<programme start="20260101193000" stop="20260101200000" channel="c1">
		<title>Next</title>
	</programme>
</tv>`
	tv, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	err = Canonicalize(tv)
	require.Error(t, err)

	var unknownErr *UnknownElementError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, []string{"bogus"}, unknownErr.Tags)
	assert.Equal(t, "Show", unknownErr.Title)

	// The invalid programme is removed; the valid one survives.
	require.Len(t, tv.Programmes, 1)
	assert.Equal(t, "Next", tv.Programmes[0].Title())
}

func TestCanonicalOrderOnWrite(t *testing.T) {
	// Children arrive out of canonical order; marshalling reorders them.
	const doc = `<tv>
	<programme start="20260101190000" stop="20260101193000" channel="c1">
		<category>drama</category>
		<star-rating><value>7/10</value></star-rating>
		<desc>Something happens.</desc>
		<sub-title>Pilot</sub-title>
		<title>Show</title>
	</programme>
</tv>`
	tv, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.NoError(t, Canonicalize(tv))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tv))
	out := buf.String()

	idx := func(tag string) int { return strings.Index(out, "<"+tag+">") }
	assert.Less(t, idx("title"), idx("sub-title"))
	assert.Less(t, idx("sub-title"), idx("desc"))
	assert.Less(t, idx("desc"), idx("category"))
	assert.Less(t, idx("category"), idx("star-rating"))
}

func TestWriteIdempotentOrder(t *testing.T) {
	tv, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.NoError(t, Canonicalize(tv))

	var first bytes.Buffer
	require.NoError(t, Write(&first, tv))

	reparsed, err := Parse(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	require.NoError(t, Canonicalize(reparsed))

	var second bytes.Buffer
	require.NoError(t, Write(&second, reparsed))
	assert.Equal(t, first.String(), second.String())
}

func TestWriteHeaderAndIndent(t *testing.T) {
	tv := &TV{Programmes: []Programme{{
		Start:   "20260101190000",
		Channel: "c1",
		Titles:  []Text{{Value: "Show"}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tv))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml version="))
	assert.Contains(t, out, "\n\t<programme")
	assert.Contains(t, out, "\n\t\t<title>Show</title>")
}

func TestParseXMLTVNS(t *testing.T) {
	tests := []struct {
		value      string
		season, ep int
		wantErr    bool
	}{
		{"0.0.0", 1, 1, false},
		{"2.11.0", 3, 12, false},
		{"2.11.0/2", 3, 12, false},
		{"5.3", 6, 4, false},
		{"bad", 0, 0, true},
		{"x.1.0", 0, 0, true},
	}
	for _, tt := range tests {
		s, e, err := ParseXMLTVNS(tt.value)
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.season, s, tt.value)
		assert.Equal(t, tt.ep, e, tt.value)
	}
}

func TestProgrammeHelpers(t *testing.T) {
	p := &Programme{}

	assert.False(t, p.HasSubTitle())
	p.SetSubTitle("Pilot")
	assert.True(t, p.HasSubTitle())
	p.SetSubTitle("Revised")
	require.Len(t, p.SubTitles, 1)
	assert.Equal(t, "Revised", p.SubTitles[0].Value)

	assert.True(t, p.AddCategory("drama", "en"))
	assert.False(t, p.AddCategory("drama", "en"), "duplicate by text must be skipped")
	assert.True(t, p.AddCategory("movie", ""))
	assert.Len(t, p.Categories, 2)

	p.SetDesc("first")
	p.SetDesc("second")
	require.Len(t, p.Descs, 1)
	assert.Equal(t, "second", p.Descs[0].Value)

	p.SetLengthMinutes(136)
	require.NotNil(t, p.Length)
	assert.Equal(t, "minutes", p.Length.Units)
	assert.Equal(t, "136", p.Length.Value)

	p.SetStarRating(7.5)
	require.Len(t, p.StarRatings, 1)
	assert.Equal(t, "7.5/10", p.StarRatings[0].Value)
}
