package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/neataffiliates/signup-feed-service/internal/domain/ports"
)

// SubmitResult carries the translator's raw response. The body is usually
// the upstream feed's XML; the forms log it for operator debugging and
// never parse it.
type SubmitResult struct {
	StatusCode int
	Body       []byte
	OK         bool
}

// Client submits a form to its brand's translator endpoint.
type Client struct {
	baseURL    string
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewClient creates a new form submission client
func NewClient(baseURL string, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Submit validates the form and posts its payload. Validation failures
// abort before any request is issued, mirroring the in-browser behavior.
func (c *Client) Submit(ctx context.Context, form *Form) (*SubmitResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(form.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+form.schema.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	c.logger.Info("signup form submitted",
		ports.String("instance", form.schema.Instance),
		ports.Int("status_code", resp.StatusCode),
		ports.Bool("ok", ok),
		ports.String("response", string(respBody)),
	)

	return &SubmitResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		OK:         ok,
	}, nil
}
