// Package remote talks to the storefront API that owns page sections.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrDisabled is returned when no base URL is configured.
var ErrDisabled = errors.New("remote API not configured")

// maxBody caps how much of a response is read.
const maxBody = 5 * 1024 * 1024

// WireSection is one section as the storefront API expects it. Config
// carries the same payload as Settings; older API consumers read one, newer
// ones the other.
type WireSection struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	SectionType string         `json:"sectionType"`
	SortOrder   int            `json:"sortOrder"`
	Visible     bool           `json:"visible"`
	Name        string         `json:"name"`
	Settings    map[string]any `json:"settings"`
	Config      map[string]any `json:"config"`
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote: status %d: %s", e.StatusCode, e.Message)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A zero timeout means none.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying http.Client (tests use httptest's).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Enabled reports whether a base URL is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// UpdatePageSections replaces the sections of pageID.
func (c *Client) UpdatePageSections(ctx context.Context, pageID, token string, sections []WireSection) error {
	if sections == nil {
		sections = []WireSection{}
	}
	body, err := json.Marshal(map[string]any{"sections": sections})
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, pageID, token, body)
	return err
}

// FetchPageSections reads the sections of pageID. The API answers either
// {"sections": [...]}, {"data": {"sections": [...]}} or a bare array.
func (c *Client) FetchPageSections(ctx context.Context, pageID, token string) ([]WireSection, error) {
	data, err := c.do(ctx, http.MethodGet, pageID, token, nil)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(data, "sections")
	if !list.Exists() {
		list = gjson.GetBytes(data, "data.sections")
	}
	if !list.Exists() {
		if root := gjson.ParseBytes(data); root.IsArray() {
			list = root
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("fetch sections: unexpected response shape")
	}

	var sections []WireSection
	if err := json.Unmarshal([]byte(list.Raw), &sections); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	for i := range sections {
		if len(sections[i].Settings) == 0 && len(sections[i].Config) > 0 {
			sections[i].Settings = sections[i].Config
		}
	}
	return sections, nil
}

func (c *Client) do(ctx context.Context, method, pageID, token string, body []byte) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	endpoint := fmt.Sprintf("%s/pages/%s/sections", c.baseURL, url.PathEscape(pageID))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(data []byte) string {
	if !gjson.ValidBytes(data) {
		return strings.TrimSpace(string(data))
	}
	for _, path := range []string{"error.message", "message", "error", "errors.0.message"} {
		if r := gjson.GetBytes(data, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}
