package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const loginPath = "/auth/login"

// Credentials payload
type Credentials struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// GetIdentifier returns the identifier
func (c Credentials) GetIdentifier() string {
	return c.Identifier
}

// GetSecret will return the secret
func (c Credentials) GetSecret() string {
	return c.Secret
}

// Validate will run validation rules
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&c.Secret,
			validation.Required,
		),
	)
}

var _ AuthClient = (*HTTPAuthClient)(nil)

// HTTPAuthClient exchanges credentials with the Roomify backend. It never
// retries: login is operator-initiated and retry policy belongs to the
// caller.
type HTTPAuthClient struct {
	baseURL string
	client  *http.Client
	logger  Logger
	Debug   bool
}

// NewHTTPAuthClient returns a client rooted at baseURL (e.g.
// "http://localhost:8080/api").
func NewHTTPAuthClient(baseURL string) *HTTPAuthClient {
	return &HTTPAuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  defLogger{},
	}
}

func (a *HTTPAuthClient) WithLogger(logger Logger) *HTTPAuthClient {
	a.logger = logger
	return a
}

func (a *HTTPAuthClient) WithHTTPClient(client *http.Client) *HTTPAuthClient {
	a.client = client
	return a
}

// Login posts the credentials and returns the backend's login payload. Any
// transport error or non-2xx response comes back as ErrLoginFailed carrying
// the most specific message the response offered.
func (a *HTTPAuthClient) Login(ctx context.Context, identifier, secret string) (*LoginResponse, error) {
	creds := Credentials{Identifier: identifier, Secret: secret}
	if err := creds.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest)
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode login payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Login request failed", "error", err)
		return nil, loginFailed("", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		a.logger.Error("Login response read failed", "error", err)
		return nil, loginFailed("", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		a.logger.Info("Login rejected", "status", res.StatusCode)
		return nil, loginFailed(extractErrorMessage(raw), nil)
	}

	payload := &LoginResponse{}
	if err := json.Unmarshal(raw, payload); err != nil {
		a.logger.Error("Login response decode failed", "error", err)
		return nil, loginFailed("", err)
	}

	if a.Debug {
		a.logger.Debug("Login response: %s", print.MaybePrettyJSON(payload))
	}

	return payload, nil
}

// extractErrorMessage resolves the operator-facing failure message in order
// of preference: a structured `message` field, then a plain-text body, then
// nothing (the caller falls back to the generic message).
func extractErrorMessage(body []byte) string {
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

	// A JSON body without a message field is machine noise, not a message.
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ""
	}

	return trimmed
}
