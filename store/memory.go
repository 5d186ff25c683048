package store

import (
	"context"
	"encoding/json"
	"sync"

	session "github.com/roomify/go-session"
)

var _ session.TokenStore = (*Memory)(nil)

// Memory is a TokenStore that lives for the process only. It serializes the
// profile the same way the sqlite store does, so corrupt-data behavior can
// be exercised in tests via SetRaw.
type Memory struct {
	mu    sync.Mutex
	token string
	user  string
	set   bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Save(_ context.Context, token string, profile *session.Profile) error {
	serialized, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = string(serialized)
	s.set = true
	return nil
}

func (s *Memory) Load(_ context.Context) (string, *session.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return "", nil, nil
	}

	var profile *session.Profile
	if s.user != "" && s.user != "null" {
		decoded := &session.Profile{}
		if err := json.Unmarshal([]byte(s.user), decoded); err == nil {
			profile = decoded
		}
	}

	return s.token, profile, nil
}

func (s *Memory) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = ""
	s.set = false
	return nil
}

// SetRaw seeds the store with raw entries, bypassing serialization. Tests
// use it to simulate stale or corrupted cache content.
func (s *Memory) SetRaw(token, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.set = true
}
