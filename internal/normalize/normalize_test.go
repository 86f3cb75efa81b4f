// SPDX-License-Identifier: BSD-3-Clause

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"leading the stripped", "The Simpsons", "simpsons"},
		{"plain lowercase", "simpsons", "simpsons"},
		{"mid-string the dropped", "Lord of the Rings", "lord of rings"},
		{"punctuation stripped", "M*A*S*H", "mash"},
		{"digits stripped", "24", ""},
		{"space runs collapsed", "Doctor   Who", "doctor who"},
		{"only first leading the", "The The", "the"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.title))
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	for _, title := range []string{
		"The Matrix", "the matrix", "Lord of the Rings", "M*A*S*H", "Über Alles",
	} {
		once := Title(title)
		assert.Equal(t, once, Title(once), "Title(%q) not idempotent", title)
	}
}

func TestTitleEquivalence(t *testing.T) {
	assert.Equal(t, Title("The Simpsons"), Title("simpsons"))
	assert.Equal(t, Title("The Matrix"), Title("Matrix"))
	assert.NotEqual(t, Title("The Matrix"), Title("The Matrix Reloaded"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "lord_of_rings", Key("The Lord of the Rings"))
	assert.Equal(t, "simpsons", Key("The Simpsons"))
}

func TestPathSegment(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"The Matrix", "The Matrix"},
		{" The Matrix ", "The Matrix"},
		{"What's Up, Doc?", "Whats Up Doc"},
		{"Dr. Who: Special", "Dr. Who Special"},
		{"Alien³", "Alien"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PathSegment(tt.title))
	}
}
