// Package api contains the Roomify REST clients the console uses once a
// session is established: room types, rooms, staff, and the backend health
// probe. Every request carries the session's bearer token; the backend
// performs the real authorization checks, the console's route guard only
// spares operators from screens they cannot use.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	session "github.com/roomify/go-session"
)

// TokenSource supplies the current bearer token, empty when logged out.
// *session.Controller satisfies it.
type TokenSource interface {
	Token() string
}

// Client is the shared transport for all Roomify resource calls.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	logger  session.Logger
}

// NewClient returns a client rooted at baseURL (e.g.
// "http://localhost:8080/api") that signs requests with tokens.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  nil,
	}
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.client = client
	return c
}

func (c *Client) WithLogger(logger session.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.client.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed").
			WithMetadata(map[string]any{
				"method": method,
				"path":   path,
			})
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if c.logger != nil {
			c.logger.Info("Request rejected", "method", method, "path", path, "status", res.StatusCode)
		}
		return statusError(res.StatusCode, raw, method, path)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode response")
	}

	return nil
}

// statusError maps a non-2xx response to the error taxonomy, preferring the
// backend's structured message over the raw body.
func statusError(status int, body []byte, method, path string) error {
	message := responseMessage(body)
	if message == "" {
		message = fmt.Sprintf("backend returned %d", status)
	}

	var err *goerrors.Error
	switch status {
	case http.StatusUnauthorized:
		err = goerrors.New(message, goerrors.CategoryAuth).WithCode(goerrors.CodeUnauthorized)
	case http.StatusForbidden:
		err = goerrors.New(message, goerrors.CategoryAuthz).WithCode(goerrors.CodeForbidden)
	case http.StatusNotFound:
		err = goerrors.New(message, goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	case http.StatusBadRequest:
		err = goerrors.New(message, goerrors.CategoryBadInput).WithCode(goerrors.CodeBadRequest)
	default:
		err = goerrors.New(message, goerrors.CategoryOperation)
	}

	return err.WithMetadata(map[string]any{
		"status": status,
		"method": method,
		"path":   path,
	})
}

func responseMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	structured := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ""
	}

	return trimmed
}
