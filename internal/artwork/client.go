// Package artwork fetches artwork metadata from the Metropolitan Museum
// collection API. Results are cached in memory for the lifetime of the
// process; museum objects never change under an id.
package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/artmart/backend/internal/model"
)

// DefaultBaseURL is the public collection API of the Metropolitan Museum.
const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// Artwork is the metadata the store exposes for one museum object.
type Artwork struct {
	ArtworkID int64  `json:"artworkId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Date      string `json:"date"`
	Image     string `json:"image"`
}

// Client is a caching client for the museum collection API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	highlights []int64

	mu          sync.RWMutex
	byID        map[int64]*Artwork
	searchCache map[string][]int64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the collection API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for museum requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHighlights sets the artwork ids returned for an empty search.
func WithHighlights(ids []int64) Option {
	return func(c *Client) { c.highlights = ids }
}

// Default curated highlights, shown on the search page before any query.
var defaultHighlights = []int64{39799, 459055, 437133, 435882, 436535, 360793, 634108, 459080, 435809, 436105}

// NewClient creates a museum API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		highlights:  defaultHighlights,
		byID:        make(map[int64]*Artwork),
		searchCache: make(map[string][]int64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type museumObject struct {
	ObjectID          int64  `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
}

type museumSearchResult struct {
	Total     int     `json:"total"`
	ObjectIDs []int64 `json:"objectIDs"`
}

// Get returns the artwork with the given id, or model.ErrArtworkNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*Artwork, error) {
	c.mu.RLock()
	cached, ok := c.byID[id]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var obj museumObject
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/objects/%d", c.baseURL, id), &obj)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || obj.ObjectID == 0 {
		return nil, model.ErrArtworkNotFound
	}

	art := &Artwork{
		ArtworkID: id,
		Title:     obj.Title,
		Artist:    obj.ArtistDisplayName,
		Date:      obj.ObjectDate,
		Image:     obj.PrimaryImageSmall,
	}

	c.mu.Lock()
	c.byID[id] = art
	c.mu.Unlock()

	return art, nil
}

// Search returns artworks matching the query. An empty query returns the
// curated highlights.
func (c *Client) Search(ctx context.Context, query string) ([]*Artwork, error) {
	ids, err := c.searchIDs(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]*Artwork, 0, len(ids))
	for _, id := range ids {
		art, err := c.Get(ctx, id)
		if err == model.ErrArtworkNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, art)
	}
	return results, nil
}

func (c *Client) searchIDs(ctx context.Context, query string) ([]int64, error) {
	if query == "" {
		return c.highlights, nil
	}

	c.mu.RLock()
	ids, ok := c.searchCache[query]
	c.mu.RUnlock()
	if ok {
		return ids, nil
	}

	u := fmt.Sprintf("%s/search?hasImages=true&q=%s", c.baseURL, url.QueryEscape(query))
	var result museumSearchResult
	status, err := c.getJSON(ctx, u, &result)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("museum search failed with status %d", status)
	}

	ids = result.ObjectIDs
	if ids == nil {
		ids = []int64{}
	}

	c.mu.Lock()
	c.searchCache[query] = ids
	c.mu.Unlock()

	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("museum request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return res.StatusCode, nil
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return res.StatusCode, fmt.Errorf("failed to decode museum response: %w", err)
	}
	return res.StatusCode, nil
}
