// SPDX-License-Identifier: BSD-3-Clause

package xmltv

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxDocumentSize bounds the input document to guard against runaway
// or hostile feeds. 50MiB is generous for multi-day multi-channel guides.
const maxDocumentSize = 50 * 1024 * 1024

// Parse decodes an XMLTV document from r.
func Parse(r io.Reader) (*TV, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxDocumentSize))
	dec.Strict = true
	// Disable entity expansion to prevent XXE attacks.
	dec.Entity = make(map[string]string)

	var doc TV
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}
	return &doc, nil
}

// ParseFile decodes an XMLTV document from a file on disk.
func ParseFile(path string) (*TV, error) {
	path = filepath.Clean(path)
	f, err := os.Open(path) // #nosec G304 -- path comes from operator input
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}
