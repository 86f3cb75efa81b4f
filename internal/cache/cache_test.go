// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTriState(t *testing.T) {
	ctx := context.Background()
	l := NewLookup(NewMemoryStore(), time.Hour)

	// Unknown key is a miss.
	state, attrs, err := l.Get(ctx, KindMovie, "matrix")
	require.NoError(t, err)
	assert.Equal(t, Miss, state)
	assert.Nil(t, attrs)

	// Found round-trips attributes.
	want := Attributes{
		Title:          "The Matrix",
		RuntimeMinutes: 136,
		Overview:       "A hacker discovers reality is a simulation",
		Genres:         []string{"Science Fiction"},
		PosterURL:      "http://img.example/w342/matrix.jpg",
	}
	require.NoError(t, l.PutFound(ctx, KindMovie, "matrix", want))
	state, attrs, err = l.Get(ctx, KindMovie, "matrix")
	require.NoError(t, err)
	assert.Equal(t, Found, state)
	require.NotNil(t, attrs)
	assert.Equal(t, want, *attrs)

	// Negative and ambiguous states carry no attributes.
	require.NoError(t, l.PutNotFound(ctx, KindMovie, "nosuchfilm"))
	state, attrs, err = l.Get(ctx, KindMovie, "nosuchfilm")
	require.NoError(t, err)
	assert.Equal(t, NotFound, state)
	assert.Nil(t, attrs)

	require.NoError(t, l.PutAmbiguous(ctx, KindSeries, "the office"))
	state, attrs, err = l.Get(ctx, KindSeries, "the office")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, state)
	assert.Nil(t, attrs)
}

func TestLookupKindsAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := NewLookup(NewMemoryStore(), time.Hour)

	require.NoError(t, l.PutNotFound(ctx, KindMovie, "office"))

	state, _, err := l.Get(ctx, KindSeries, "office")
	require.NoError(t, err)
	assert.Equal(t, Miss, state, "series namespace must not see movie entries")
}

func TestLookupOverwrite(t *testing.T) {
	ctx := context.Background()
	l := NewLookup(NewMemoryStore(), time.Hour)

	require.NoError(t, l.PutNotFound(ctx, KindMovie, "matrix"))
	require.NoError(t, l.PutFound(ctx, KindMovie, "matrix", Attributes{Title: "The Matrix"}))

	state, attrs, err := l.Get(ctx, KindMovie, "matrix")
	require.NoError(t, err)
	assert.Equal(t, Found, state)
	require.NotNil(t, attrs)
	assert.Equal(t, "The Matrix", attrs.Title)
}

func TestLookupExpiry(t *testing.T) {
	ctx := context.Background()
	l := NewLookup(NewMemoryStore(), 10*time.Millisecond)

	require.NoError(t, l.PutAmbiguous(ctx, KindMovie, "alien"))
	time.Sleep(20 * time.Millisecond)

	state, _, err := l.Get(ctx, KindMovie, "alien")
	require.NoError(t, err)
	assert.Equal(t, Miss, state, "expired entry must behave like a miss")
}

func TestLookupCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "movies.matrix", []byte("{not json"), time.Hour))

	l := NewLookup(store, time.Hour)
	state, attrs, err := l.Get(ctx, KindMovie, "matrix")
	require.NoError(t, err)
	assert.Equal(t, Miss, state)
	assert.Nil(t, attrs)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestLookupStoreErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	l := NewLookup(failingStore{}, time.Hour)

	_, _, err := l.Get(ctx, KindMovie, "matrix")
	assert.Error(t, err, "store failure must surface, not masquerade as a miss")

	assert.Error(t, l.PutNotFound(ctx, KindMovie, "matrix"))
}

func TestDefaultTTL(t *testing.T) {
	l := NewLookup(NewMemoryStore(), 0)
	assert.Equal(t, DefaultTTL, l.ttl)
	assert.Equal(t, 90*24*time.Hour, DefaultTTL)
}
