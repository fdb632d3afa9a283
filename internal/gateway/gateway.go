// Package gateway is the sole point of contact with the hosted backend
// service. It exposes session management, auth state subscription, and
// table-level query composition against the service's REST surface.
package gateway

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

	"tribex/internal/config"
	"tribex/internal/models"
	"tribex/internal/observability"
)

// Client talks to the hosted service. All store reads and writes go through it.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     *observability.GatewayLogger
	auth    *Auth
}

// New creates a gateway client for the configured service.
func New(cfg *config.Config) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.GatewayURL, "/"),
		anonKey: cfg.GatewayAnonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     observability.NewGatewayLogger(),
	}
	c.auth = newAuth(c, cfg.StateDir)
	return c
}

// Auth returns the authentication client.
func (c *Client) Auth() *Auth {
	return c.auth
}

// From starts a query against the given table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{c: c, table: table, filters: url.Values{}}
}

// errorBody is the wire shape of service error responses.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Code             string `json:"code"`
}

func (e errorBody) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	}
	return "request failed"
}

// do performs one HTTP exchange with the service. The bearer token is the
// current session's access token when present, the anon key otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, dest any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, models.NewInternalError(err)
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, models.NewUnavailableError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return resp.StatusCode, mapStatusError(resp.StatusCode, eb)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && err != io.EOF {
			return resp.StatusCode, models.NewInternalError(fmt.Errorf("decode response: %w", err))
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) bearer() string {
	if s := c.auth.Session(); s != nil {
		return s.AccessToken
	}
	return c.anonKey
}

// mapStatusError translates a service error response into the AppError taxonomy.
func mapStatusError(status int, eb errorBody) error {
	// Postgres unique violation surfaces as SQLSTATE 23505.
	if eb.Code == "23505" || strings.Contains(strings.ToLower(eb.text()), "duplicate key") {
		return models.NewConflictError(eb.text())
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.NewUnauthorizedError(eb.text())
	case http.StatusNotFound, http.StatusNotAcceptable:
		return &models.AppError{Code: "NOT_FOUND", Message: eb.text()}
	case http.StatusConflict:
		return models.NewConflictError(eb.text())
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.NewValidationError(eb.text())
	}
	return models.NewInternalError(fmt.Errorf("status %d: %s", status, eb.text()))
}
