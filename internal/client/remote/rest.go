package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

// RESTClient talks to the hosted backend over its PostgREST-style HTTP API:
// one resource per collection under /rest/v1, filters passed as query
// parameters, auth via apikey plus bearer token headers.
type RESTClient struct {
	baseURL string
	apiKey  string
	http    *http.Client

	// token is written by the login flow and read by the background
	// connectivity watcher, so access goes through mu.
	mu    sync.RWMutex
	token string
}

// NewRESTClient builds a client for the backend at baseURL. The api key
// authenticates the application; a user token can be attached later via
// SetToken once a session exists.
func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches the session token used for authenticated calls. It is
// safe to call while requests are in flight.
func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *RESTClient) Create(ctx context.Context, col models.Collection, opKey string, p models.Payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.restURL(col, nil), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Prefer", "return=representation,resolution=ignore-duplicates")
	if opKey != "" {
		req.Header.Set("Idempotency-Key", opKey)
	}

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	if len(rows) == 0 || rows[0].ID == "" {
		return "", fmt.Errorf("create returned no id")
	}
	return rows[0].ID, nil
}

func (c *RESTClient) Update(ctx context.Context, col models.Collection, serverID string, p models.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch,
		c.restURL(col, url.Values{"id": {"eq." + serverID}}), bytes.NewReader(body))
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *RESTClient) Delete(ctx context.Context, col models.Collection, serverID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete,
		c.restURL(col, url.Values{"id": {"eq." + serverID}}), nil)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *RESTClient) QueryByOwner(ctx context.Context, col models.Collection, ownerID string) ([]json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet,
		c.restURL(col, url.Values{"owner_id": {"eq." + ownerID}, "order": {"id"}}), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return rows, nil
}

func (c *RESTClient) CurrentUser(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", err
	}

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return "", fmt.Errorf("failed to decode user response: %w", err)
	}
	if user.ID == "" {
		return "", ErrUnauthorized
	}
	return user.ID, nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodHead,
		c.restURL(models.CollectionInventory, url.Values{"limit": {"1"}}), nil)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *RESTClient) restURL(col models.Collection, q url.Values) string {
	u := c.baseURL + "/rest/v1/" + string(col)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *RESTClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and maps transport and status failures onto the
// package's sentinel errors.
func (c *RESTClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusRequestTimeout ||
		resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	default:
		return nil, fmt.Errorf("remote rejected request: %s: %s", resp.Status, truncate(body))
	}
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

var _ Client = (*RESTClient)(nil)
