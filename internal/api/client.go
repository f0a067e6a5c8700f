// Package api provides a client for the personal-info REST endpoints of the
// finance backend. The backend is opaque to this tool: responses are decoded
// defensively and unexpected shapes degrade to safe defaults rather than
// failing the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/balaji-finance/backoffice/internal/person"
)

// DefaultBaseURL is the development backend used when nothing is configured.
const DefaultBaseURL = "http://localhost:8881/balaji-finance"

const resourcePath = "/PersonalInfo"

// Config holds connection settings for the backend.
type Config struct {
	// BaseURL is the backend root, e.g. "http://host:8881/balaji-finance".
	BaseURL string
	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
}

// Client communicates with the personal-info resource.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given backend.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base + resourcePath,
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the resolved resource root, for display in settings.
func (c *Client) BaseURL() string {
	return strings.TrimSuffix(c.baseURL, resourcePath)
}

// FindAll returns every personal-info record the backend knows about.
// A response body that is not a JSON array normalizes to an empty list;
// shape problems never propagate to the caller.
func (c *Client) FindAll(ctx context.Context) ([]person.Record, error) {
	body, err := c.doGet(ctx, c.baseURL+"/findAll")
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	var records []person.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

// FindByCategory returns records for one category. The backend has no
// server-side category filter, so this filters the findAll result locally.
func (c *Client) FindByCategory(ctx context.Context, cat person.Category) ([]person.Record, error) {
	all, err := c.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var records []person.Record
	for _, r := range all {
		if r.Category == cat {
			records = append(records, r)
		}
	}
	return records, nil
}

// Create saves a new record and returns the persisted copy. The full record
// is always sent; the workflow never submits partial patches.
func (c *Client) Create(ctx context.Context, rec person.Record) (person.Record, error) {
	body, err := c.doSend(ctx, http.MethodPost, c.baseURL+"/savePersonalInfo", rec)
	if err != nil {
		return person.Record{}, fmt.Errorf("create: %w", err)
	}
	return persistedOr(rec, body), nil
}

// Update replaces an existing record in full and returns the persisted copy.
func (c *Client) Update(ctx context.Context, rec person.Record) (person.Record, error) {
	body, err := c.doSend(ctx, http.MethodPut, c.baseURL+"/updatePersonalInfo", rec)
	if err != nil {
		return person.Record{}, fmt.Errorf("update: %w", err)
	}
	return persistedOr(rec, body), nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, id person.ID) error {
	u := c.baseURL + "/deletePersonalInfo/" + url.PathEscape(string(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// NewTemplate pre-reserves a server id for a new record of the given
// category, so the form can show the id read-only while the operator fills
// in the rest.
func (c *Client) NewTemplate(ctx context.Context, cat person.Category) (person.Record, error) {
	u := c.baseURL + "/createNewPersonalInfoTemplate/" + string(cat)

	body, err := c.doGet(ctx, u)
	if err != nil {
		return person.Record{}, fmt.Errorf("new template: %w", err)
	}

	rec := person.New(cat)
	if err := json.Unmarshal(body, &rec); err != nil {
		// template body is advisory; a blank record still works
		return person.New(cat), nil
	}
	rec.Category = cat
	return rec, nil
}

// persistedOr decodes the server's echo of a saved record, falling back to
// the submitted record when the body is empty or malformed.
func persistedOr(sent person.Record, body []byte) person.Record {
	if len(body) == 0 {
		return sent
	}
	var rec person.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return sent
	}
	if rec.ID.IsZero() {
		rec.ID = sent.ID
	}
	return rec
}

func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) doSend(ctx context.Context, method, u string, rec person.Record) ([]byte, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(resp.StatusCode, body)
	}

	return body, nil
}

// serverError extracts the backend's error message when it sends one, in the
// usual {"message": "..."} shape.
func serverError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("server: %s (status %d)", payload.Message, status)
	}
	return fmt.Errorf("server: status %d", status)
}
