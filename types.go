package session

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore persists the bearer token and the serialized profile across
// console restarts. Implementations must treat a corrupt stored profile as
// absent rather than failing; only the Controller writes through it.
type TokenStore interface {
	Save(ctx context.Context, token string, profile *Profile) error
	// Load returns the cached token and profile. Absent entries come back
	// as zero values.
	Load(ctx context.Context) (string, *Profile, error)
	Clear(ctx context.Context) error
}

// AuthClient performs the credential exchange against the backend.
type AuthClient interface {
	Login(ctx context.Context, identifier, secret string) (*LoginResponse, error)
}

// LoginResponse mirrors the backend's login payload. Roles may be present
// but the freshly decoded token supersedes them, see Controller.Login.
type LoginResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
