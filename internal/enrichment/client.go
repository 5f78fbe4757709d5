package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/seyio/leadpilot/internal/config"
)

// Result carries the contact fields the enrichment provider resolved for a
// person at a company.
type Result struct {
	Email      string `json:"email"`
	ProfileURL string `json:"profile_url"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	Confidence int    `json:"confidence"`
}

// Client talks to the configured contact-enrichment provider. Single
// blocking call per lookup, no retries.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

// NewClient builds an enrichment client from the resolved configuration
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Enabled reports whether enrichment is configured for use
func (c *Client) Enabled() bool {
	return c.cfg.EnrichmentEnabled && c.cfg.EnrichmentURL != "" && c.cfg.EnrichmentKey != ""
}

// Lookup resolves contact details for a person name and company
func (c *Client) Lookup(ctx context.Context, name, company string) (*Result, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("enrichment provider not configured. Run: leadpilot config set --key enrichment_url --value PROVIDER_URL")
	}

	body, err := c.post(ctx, "/v1/person", map[string]string{
		"name":    name,
		"company": company,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("unexpected response format from enrichment provider: %w", err)
	}
	return result, nil
}

// TestConnection verifies the credential against the provider
func (c *Client) TestConnection(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("enrichment provider not configured")
	}
	_, err := c.post(ctx, "/v1/ping", map[string]string{})
	return err
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.EnrichmentURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.EnrichmentKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment API error: %s", string(body))
	}
	return body, nil
}
