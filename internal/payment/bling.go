// Package payment integrates with the Bling payment provider. Checkout
// creates a payment intent server-side; the client confirms it with the
// returned client secret.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the Bling payment API.
const DefaultBaseURL = "https://web-engineering.big.tuwien.ac.at/s23/bling"

// Intent is a payment intent created with Bling.
type Intent struct {
	ID           string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
}

// Client is a Bling API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Bling API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for Bling requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Bling client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createIntentRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

type createIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
}

// CreateIntent creates a payment intent for the given amount in cents.
func (c *Client) CreateIntent(ctx context.Context, amount int) (*Intent, error) {
	body, err := json.Marshal(createIntentRequest{Amount: amount, Currency: "eur"})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bling request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bling returned status %d", res.StatusCode)
	}

	var resp createIntentResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode bling response: %w", err)
	}

	return &Intent{
		ID:           resp.ID,
		ClientSecret: resp.ClientSecret,
		Amount:       resp.Amount,
		Currency:     resp.Currency,
	}, nil
}
