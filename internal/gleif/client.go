// Package gleif looks up LEI records in the GLEIF public API. It is
// used to cross-check the entity and provider identifiers held in the
// register against the global index.
package gleif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dora-roi/internal/lei"
)

// DefaultBaseURL is the GLEIF v1 API endpoint.
const DefaultBaseURL = "https://api.gleif.org/api/v1"

// Client calls the GLEIF LEI record API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client against the public GLEIF API.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL returns a client against a specific endpoint,
// used by tests and proxies.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Record is the subset of a GLEIF LEI record the register cares about.
type Record struct {
	LEI                string `json:"lei"`
	LegalName          string `json:"legalName"`
	Country            string `json:"country"`
	RegistrationStatus string `json:"registrationStatus"`
}

// leiRecordDocument mirrors the JSON:API envelope GLEIF returns.
type leiRecordDocument struct {
	Data struct {
		Attributes struct {
			LEI    string `json:"lei"`
			Entity struct {
				LegalName struct {
					Name string `json:"name"`
				} `json:"legalName"`
				LegalAddress struct {
					Country string `json:"country"`
				} `json:"legalAddress"`
			} `json:"entity"`
			Registration struct {
				Status string `json:"status"`
			} `json:"registration"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lookup fetches the LEI record. The code is checked locally first so
// an obviously bad identifier never leaves the process.
func (c *Client) Lookup(ctx context.Context, code string) (*Record, error) {
	code = lei.Sanitize(code)
	if !lei.Valid(code) {
		return nil, fmt.Errorf("gleif: %q is not a valid LEI", code)
	}

	url := fmt.Sprintf("%s/lei-records/%s", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("gleif: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gleif: lookup %s: %w", code, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("gleif: LEI %s is not registered", code)
	default:
		return nil, fmt.Errorf("gleif: lookup %s: unexpected status %d", code, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gleif: read response: %w", err)
	}
	var doc leiRecordDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("gleif: parse response: %w", err)
	}

	attrs := doc.Data.Attributes
	return &Record{
		LEI:                attrs.LEI,
		LegalName:          attrs.Entity.LegalName.Name,
		Country:            attrs.Entity.LegalAddress.Country,
		RegistrationStatus: attrs.Registration.Status,
	}, nil
}
