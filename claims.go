package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StringList unmarshals a claim that may arrive as a single string or as a
// sequence of strings. A scalar is wrapped into a one-element list; a list
// is kept as-is. A decoded list is non-nil even when empty, so callers can
// tell "present but empty" from "absent".
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if many == nil {
		many = []string{}
	}
	*s = StringList(many)
	return nil
}

// AccessClaims is the payload the console reads out of a Roomify bearer
// token: the registered expiry plus the roles claim, with the singular
// `role` claim kept as a fallback for tokens minted by older backends.
type AccessClaims struct {
	jwt.RegisteredClaims
	Roles StringList `json:"roles,omitempty"`
	Role  StringList `json:"role,omitempty"`
}

// RoleList resolves the effective role sequence: the `roles` claim wins,
// then the singular `role` claim, then an empty list. The result is always
// a sequence, never nil.
func (c *AccessClaims) RoleList() []string {
	if c.Roles != nil {
		return append([]string{}, c.Roles...)
	}
	if c.Role != nil {
		return append([]string{}, c.Role...)
	}
	return []string{}
}

// Expires returns the expiration time, zero when the claim is absent.
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// ExpiredAt reports whether the token's expiry is at or before now. Tokens
// without an exp claim never report expired, matching how the console has
// always treated them.
func (c *AccessClaims) ExpiredAt(now time.Time) bool {
	if c.RegisteredClaims.ExpiresAt == nil {
		return false
	}
	return !c.RegisteredClaims.ExpiresAt.Time.After(now)
}

// DecodeToken decodes a bearer token's claims without verifying the
// signature. The token was obtained over a trusted channel at login time
// (or persisted locally by this process); the backend remains the real
// authorization boundary. Undecodable input yields ErrTokenMalformed,
// which callers recover from by treating the user as unauthenticated.
func DecodeToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		clone := ErrTokenMalformed.Clone()
		clone.Source = err
		return nil, clone.WithMetadata(map[string]any{
			"cause": err.Error(),
		})
	}
	return claims, nil
}
