// SPDX-License-Identifier: BSD-3-Clause

package xmltv

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// UnknownElementError reports a programme child element outside the
// canonical layout. The offending programme cannot be serialized.
type UnknownElementError struct {
	Channel string
	Start   string
	Title   string
	Tags    []string
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("programme %q (channel %s, start %s) carries unknown elements %v",
		e.Title, e.Channel, e.Start, e.Tags)
}

// Canonicalize validates every programme against the canonical child
// layout. Programmes carrying unknown elements are removed from the
// document and reported; the returned error joins one
// UnknownElementError per rejected programme. Field values are never
// altered, so the pass is idempotent.
func Canonicalize(doc *TV) error {
	var errs []error
	kept := doc.Programmes[:0]
	for i := range doc.Programmes {
		p := &doc.Programmes[i]
		if len(p.Unknown) == 0 {
			kept = append(kept, *p)
			continue
		}
		tags := make([]string, 0, len(p.Unknown))
		for _, u := range p.Unknown {
			tags = append(tags, u.XMLName.Local)
		}
		errs = append(errs, &UnknownElementError{
			Channel: p.Channel,
			Start:   p.Start,
			Title:   p.Title(),
			Tags:    tags,
		})
	}
	doc.Programmes = kept
	return errors.Join(errs...)
}

// Write serializes the document with an XML declaration and
// tab-indented children, one tab per tree level.
func Write(w io.Writer, doc *TV) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode xmltv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
