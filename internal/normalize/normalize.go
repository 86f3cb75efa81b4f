// SPDX-License-Identifier: BSD-3-Clause

// Package normalize canonicalises programme titles for catalog matching
// and sanitises them for use as filesystem path segments.
package normalize

import (
	"regexp"
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

var (
	nonAlpha = regexp.MustCompile(`[^a-z ]`)
	spaces   = regexp.MustCompile(` +`)
	nonPath  = regexp.MustCompile(`[^a-zA-Z0-9_.\s]+`)
)

// Title reduces a programme title to its comparison key. Two titles
// refer to the same catalog subject iff their keys are equal.
//
// The reduction is ASCII-only: lowercase, drop one leading "the ",
// strip everything outside [a-z ], collapse space runs, and drop the
// token " the " wherever it recurs. Non-Latin titles pass through with
// their letters stripped; that is an accepted limitation.
func Title(title string) string {
	normalised := strings.ToLower(unorm.NFC.String(title))
	normalised = strings.TrimPrefix(normalised, "the ")
	normalised = nonAlpha.ReplaceAllString(normalised, "")
	normalised = spaces.ReplaceAllString(normalised, " ")
	normalised = strings.ReplaceAll(normalised, " the ", " ")
	return normalised
}

// Key converts a comparison key into its cache-key form, with spaces
// replaced by underscores.
func Key(title string) string {
	return strings.ReplaceAll(Title(title), " ", "_")
}

// PathSegment strips a title down to characters safe for a single
// artwork directory name: [A-Za-z0-9_. ] after trimming whitespace.
func PathSegment(title string) string {
	return nonPath.ReplaceAllString(strings.TrimSpace(title), "")
}
