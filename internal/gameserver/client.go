package gameserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// Client talks to the game server HTTP API. It never retries.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cookie  *http.Cookie
}

func NewClient(baseURL string, opts ...ClientOpt) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) WhoAmI(ctx context.Context) (*WhoAmI, error) {
	var out WhoAmI
	if err := c.do(ctx, http.MethodGet, "/api/whoami", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GameState(ctx context.Context) (*GameState, error) {
	var out GameState
	if err := c.do(ctx, http.MethodGet, "/api/getGameState", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BuildMachine(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	var out BuildResponse
	if err := c.do(ctx, http.MethodPost, "/api/buildMachine", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpgradeMachine(ctx context.Context, machineID int64) (*UpgradeResponse, error) {
	var out UpgradeResponse
	if err := c.do(ctx, http.MethodPost, "/api/upgradeMachine", UpgradeRequest{MachineID: machineID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActivateMachine(ctx context.Context, req ActivateRequest) (*ActivateResponse, error) {
	var out ActivateResponse
	if err := c.do(ctx, http.MethodPost, "/api/activateMachine", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SyncLayout(ctx context.Context, positions []MachinePosition) error {
	return c.do(ctx, http.MethodPost, "/api/syncLayout", SyncLayoutRequest{Machines: positions}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	// Ignoring close error - body is fully read below, error is not actionable
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %w", ErrTransport, path, err)
	}

	slog.DebugContext(ctx, "game server call", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload errorPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			apiErr.Message = payload.Error
			apiErr.RemainingMs = payload.RemainingMs
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %w", ErrTransport, path, err)
	}

	return nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}
