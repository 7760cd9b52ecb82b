// Package client is a typed HTTP client for the matrix API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

// Mutation mirrors the body every mutating endpoint returns.
type Mutation struct {
	ID       int              `json:"id,omitempty"`
	Applied  bool             `json:"applied"`
	Analysis scoring.Analysis `json:"analysis"`
}

type HTTPClient struct {
	baseURL    string
	clientID   string
	token      string
	httpClient *http.Client
}

// NewHTTPClient targets baseURL. clientID is sent as X-Client-ID; token is only
// needed for the admin endpoints.
func NewHTTPClient(baseURL, clientID, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// maxAttempts bounds how often a rate-limited request is retried.
const maxAttempts = 4

func (c *HTTPClient) doReq(ctx context.Context, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	for attempt := 1; ; attempt++ {
		status, data, wait, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
		if status == http.StatusTooManyRequests && attempt < maxAttempts {
			if wait < 0 {
				wait = time.Duration(attempt) * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		if status >= 400 {
			return fmt.Errorf("matrix %s %s: %d %s", method, path, status, strings.TrimSpace(string(data)))
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(data, out)
	}
}

// send performs one request. wait is the server's Retry-After hint, or -1 when
// the response carries none.
func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte) (int, []byte, time.Duration, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, body)
	if err != nil {
		return 0, nil, -1, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, -1, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, -1, err
	}
	wait := time.Duration(-1)
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	return resp.StatusCode, data, wait, nil
}

func (c *HTTPClient) ListCriteria(ctx context.Context) ([]scoring.Criterion, error) {
	var out []scoring.Criterion
	if err := c.doReq(ctx, "GET", "/criteria", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Analysis(ctx context.Context) (*scoring.Analysis, error) {
	var a scoring.Analysis
	if err := c.doReq(ctx, "GET", "/analysis", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) AddCriterion(ctx context.Context, name string) (*Mutation, error) {
	return c.mutate(ctx, "POST", "/criteria", map[string]string{"name": name})
}

// AddRow creates a fully specified criterion in a single request.
func (c *HTTPClient) AddRow(ctx context.Context, r Row) (*Mutation, error) {
	return c.mutate(ctx, "POST", "/criteria", map[string]interface{}{
		"name":   r.Name,
		"weight": r.Weight,
		"scores": r.Scores,
	})
}

func (c *HTTPClient) UpdateWeight(ctx context.Context, id, weight int) (*Mutation, error) {
	return c.mutate(ctx, "PATCH", fmt.Sprintf("/criteria/%d", id), map[string]int{"weight": weight})
}

func (c *HTTPClient) Rename(ctx context.Context, id int, name string) (*Mutation, error) {
	return c.mutate(ctx, "PATCH", fmt.Sprintf("/criteria/%d", id), map[string]string{"name": name})
}

func (c *HTTPClient) UpdateScore(ctx context.Context, id int, opt scoring.Option, score int) (*Mutation, error) {
	return c.mutate(ctx, "PUT", fmt.Sprintf("/criteria/%d/scores/%s", id, opt), map[string]int{"score": score})
}

func (c *HTTPClient) RemoveCriterion(ctx context.Context, id int) (*Mutation, error) {
	return c.mutate(ctx, "DELETE", fmt.Sprintf("/criteria/%d", id), nil)
}

func (c *HTTPClient) Reset(ctx context.Context) (*Mutation, error) {
	return c.mutate(ctx, "POST", "/reset", nil)
}

func (c *HTTPClient) mutate(ctx context.Context, method, path string, in interface{}) (*Mutation, error) {
	var m Mutation
	if err := c.doReq(ctx, method, path, in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
