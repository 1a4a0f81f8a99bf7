package artwork

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artmart/backend/internal/model"
)

// fakeMuseum serves a minimal subset of the Met collection API.
func fakeMuseum(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/objects/42", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		fmt.Fprint(w, `{"objectID":42,"title":"The Starry Night","artistDisplayName":"Vincent van Gogh","objectDate":"1889","primaryImageSmall":"https://example.org/42.jpg"}`)
	})
	mux.HandleFunc("/objects/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		if r.URL.Query().Get("q") == "night" {
			fmt.Fprint(w, `{"total":1,"objectIDs":[42]}`)
			return
		}
		fmt.Fprint(w, `{"total":0,"objectIDs":null}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGet(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	art, err := c.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), art.ArtworkID)
	assert.Equal(t, "The Starry Night", art.Title)
	assert.Equal(t, "Vincent van Gogh", art.Artist)
}

func TestGetNotFound(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.Get(context.Background(), 7)
	assert.ErrorIs(t, err, model.ErrArtworkNotFound)
}

func TestGetCaches(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.Get(context.Background(), 42)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestSearch(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	results, err := c.Search(context.Background(), "night")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(42), results[0].ArtworkID)

	// Search results are cached per query.
	before := atomic.LoadInt64(&hits)
	_, err = c.Search(context.Background(), "night")
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt64(&hits))
}

func TestSearchNoResults(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	results, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEmptyQueryReturnsHighlights(t *testing.T) {
	var hits int64
	srv := fakeMuseum(t, &hits)
	c := NewClient(WithBaseURL(srv.URL), WithHighlights([]int64{42}))

	results, err := c.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(42), results[0].ArtworkID)
}
