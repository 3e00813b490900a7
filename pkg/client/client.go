// Package client talks to the external collaborators: the template listing
// endpoint and the document generation endpoint. Both requests honor their
// context for cancellation; callers abort stale in-flight work by cancelling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-formflow/pkg/output"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// DefaultBaseURL is the local development address used when configuration
// leaves the base URL unset.
const DefaultBaseURL = "http://localhost:8000"

const defaultTimeout = 90 * time.Second

// Applicant carries free-form applicant context alongside the form payload.
type Applicant struct {
	Name              string `json:"name"`
	Role              string `json:"role,omitempty"`
	EmploymentHistory string `json:"employment_history,omitempty"`
	IncomeDetails     string `json:"income_details,omitempty"`
	AdditionalNotes   string `json:"additional_notes,omitempty"`
}

// GenerateRequest is the generation collaborator's request body. Applicants is
// always serialized, empty or not, matching the collaborator contract.
type GenerateRequest struct {
	FormType        string         `json:"form_type"`
	Question        string         `json:"question,omitempty"`
	Applicants      []Applicant    `json:"applicants"`
	FormData        map[string]any `json:"form_data"`
	AdditionalNotes string         `json:"additional_notes,omitempty"`
}

// Client issues requests against one collaborator base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, e.g. for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout bounds each request when the default client is in use.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// New constructs a Client for the given base URL, defaulting to the local
// development address when empty.
func New(baseURL string, options ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL reports the configured collaborator address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type listingResponse struct {
	Forms []schema.Template `json:"forms"`
}

// ListTemplates fetches the ordered template list. Transport failures and
// non-2xx statuses surface as *TransportError.
func (c *Client) ListTemplates(ctx context.Context) ([]schema.Template, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/form-templates", nil)
	if err != nil {
		return nil, &TransportError{Op: "list templates", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	var listing listingResponse
	if err := c.do(req, "list templates", &listing); err != nil {
		return nil, err
	}
	return listing.Forms, nil
}

// Generate submits the sanitized payload and returns the generation result.
func (c *Client) Generate(ctx context.Context, request GenerateRequest) (*output.Result, error) {
	if request.Applicants == nil {
		request.Applicants = []Applicant{}
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "generate", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result output.Result
	if err := c.do(req, "generate", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, op string, into any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
