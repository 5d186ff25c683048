package session

import (
	"context"
	"sync"
	"time"
)

// Controller owns the process-wide session state: the current bearer token,
// the decoded profile, and the authenticated/loading flags every other part
// of the console reads. State is mutated wholesale by Initialize, Login and
// Logout; nothing else writes to it or to the token store.
type Controller struct {
	mu     sync.RWMutex
	store  TokenStore
	client AuthClient
	logger Logger
	now    func() time.Time

	initOnce sync.Once

	token         string
	user          *Profile
	authenticated bool
	loading       bool
}

// NewController returns a controller in its pre-hydration state: empty,
// unauthenticated, and loading until Initialize settles. Navigations
// evaluated before that observe a loading session and wait instead of
// bouncing to the login screen.
func NewController(store TokenStore, client AuthClient) *Controller {
	return &Controller{
		store:   store,
		client:  client,
		logger:  defLogger{},
		now:     time.Now,
		loading: true,
	}
}

func (c *Controller) WithLogger(logger Logger) *Controller {
	c.logger = logger
	return c
}

// WithClock overrides the time source used for expiry checks.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Initialize hydrates the session from the token store: a cached, decodable,
// unexpired token marks the session authenticated with the token's roles
// merged into the stored profile; anything else leaves the session empty and
// purges the cache. It runs exactly once per process lifetime, swallows every
// error locally, and always flips loading off before returning.
func (c *Controller) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		c.hydrate(ctx)
	})
}

func (c *Controller) hydrate(ctx context.Context) {
	// Guaranteed on every exit path so no navigation waits forever.
	defer c.setLoading(false)

	token, profile, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("Session hydrate failed to read token store", "error", err)
		return
	}

	if token == "" {
		return
	}

	claims, err := DecodeToken(token)
	if err != nil {
		c.logger.Warn("Cached token is not decodable, clearing session", "error", err)
		c.purge(ctx)
		return
	}

	if claims.ExpiredAt(c.now()) {
		c.logger.Warn("Cached token expired, clearing session")
		c.purge(ctx)
		return
	}

	if profile == nil {
		// A token with no profile can never satisfy the authenticated
		// invariant, so it is dead weight in the cache.
		c.logger.Warn("Cached token has no stored profile, clearing session")
		c.purge(ctx)
		return
	}

	merged := profile.clone()
	// The token is the single source of truth for authorization; whatever
	// roles the stored profile carried are superseded.
	merged.Roles = claims.RoleList()

	c.mu.Lock()
	c.token = token
	c.user = merged
	c.authenticated = true
	c.mu.Unlock()

	c.logger.Info("Session restored", "username", merged.Username)
}

// Login exchanges credentials via the auth client, decodes the returned
// token for its authoritative role list, swaps the session to authenticated
// and persists the result. On failure the previous state is left untouched
// and the error is returned for the caller to surface. A login attempted
// while the session is loading is rejected with ErrLoginInFlight rather
// than allowing interleaved writes.
func (c *Controller) Login(ctx context.Context, identifier, secret string) (*Profile, error) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, ErrLoginInFlight
	}
	c.loading = true
	c.mu.Unlock()

	defer c.setLoading(false)

	res, err := c.client.Login(ctx, identifier, secret)
	if err != nil {
		c.logger.Info("Login rejected", "identifier", identifier, "error", err)
		return nil, err
	}

	claims, err := DecodeToken(res.Token)
	if err != nil {
		c.logger.Error("Login returned an undecodable token", "error", err)
		return nil, err
	}

	profile := &Profile{
		ID:       res.ID,
		Username: res.Username,
		Email:    res.Email,
		// Roles come from the freshly decoded token, not the response body.
		Roles:     claims.RoleList(),
		TokenType: res.Type,
	}

	c.mu.Lock()
	c.token = res.Token
	c.user = profile
	c.authenticated = true
	c.mu.Unlock()

	if err := c.store.Save(ctx, res.Token, profile); err != nil {
		c.logger.Warn("Failed to persist session", "error", err)
	}

	c.logger.Info("Login succeeded", "username", profile.Username)

	return profile.clone(), nil
}

// Logout clears the in-memory session and purges the token store. Calling
// it when already logged out is a no-op with the same end state.
func (c *Controller) Logout(ctx context.Context) {
	c.purge(ctx)
}

func (c *Controller) purge(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.authenticated = false
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("Failed to clear token store", "error", err)
	}
}

// HasRole reports whether the current user literally carries role. It is
// false whenever the session has no user.
func (c *Controller) HasRole(role string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.HasRole(role)
}

// PrimaryRole returns the first of the current user's roles, or false when
// there is no user or the role list is empty.
func (c *Controller) PrimaryRole() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.PrimaryRole()
}

// IsAuthenticated is true iff a token and an unexpired-at-last-check user
// are both present.
func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Loading is true only while Initialize is hydrating or a login call is in
// flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Token returns the current bearer token, empty when logged out. It
// satisfies the api package's TokenSource.
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns a copy of the current profile, nil when logged out.
func (c *Controller) User() *Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.clone()
}

// Snapshot captures the state the route guard consumes.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var roles []string
	if c.user != nil {
		roles = append(roles, c.user.Roles...)
	}

	return State{
		Loading:       c.loading,
		Authenticated: c.authenticated,
		Roles:         roles,
	}
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
