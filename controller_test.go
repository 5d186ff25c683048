package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	session "github.com/roomify/go-session"
	"github.com/roomify/go-session/store"
)

type stubAuthClient struct {
	res   *session.LoginResponse
	err   error
	calls int
}

func (s *stubAuthClient) Login(_ context.Context, _, _ string) (*session.LoginResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func managerToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	return mintToken(t, jwt.MapClaims{
		"sub":   "admin@roomify.test",
		"exp":   jwt.NewNumericDate(time.Now().Add(ttl)),
		"roles": []string{"ROLE_MANAGER"},
	})
}

func TestControllerStartsLoading(t *testing.T) {
	controller := session.NewController(store.NewMemory(), &stubAuthClient{})

	assert.True(t, controller.Loading())
	assert.False(t, controller.IsAuthenticated())
}

func TestControllerInitializeEmptyStore(t *testing.T) {
	controller := session.NewController(store.NewMemory(), &stubAuthClient{})
	controller.Initialize(context.Background())

	assert.False(t, controller.Loading())
	assert.False(t, controller.IsAuthenticated())
	assert.Nil(t, controller.User())
	assert.Empty(t, controller.Token())
}

func TestControllerInitializeRestoresSession(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()

	token := managerToken(t, time.Hour)
	require.NoError(t, cache.Save(ctx, token, &session.Profile{
		ID:       1,
		Username: "admin",
		Email:    "admin@roomify.test",
		// Stale stored roles, superseded by the token's claims.
		Roles: []string{"ROLE_GUEST"},
	}))

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)

	assert.False(t, controller.Loading())
	assert.True(t, controller.IsAuthenticated())
	assert.Equal(t, token, controller.Token())

	user := controller.User()
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, []string{"ROLE_MANAGER"}, user.Roles)
}

func TestControllerInitializeExpiredTokenClearsCache(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()

	token := managerToken(t, -time.Minute)
	require.NoError(t, cache.Save(ctx, token, &session.Profile{Username: "admin"}))

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)

	assert.False(t, controller.IsAuthenticated())
	assert.False(t, controller.Loading())
	assert.Nil(t, controller.User())

	cached, profile, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
	assert.Nil(t, profile)
}

func TestControllerInitializeUndecodableTokenClearsCache(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	cache.SetRaw("garbage", `{"username":"admin"}`)

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)

	assert.False(t, controller.IsAuthenticated())

	cached, _, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestControllerInitializeCorruptProfileClearsCache(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	cache.SetRaw(managerToken(t, time.Hour), "{not json")

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)

	assert.False(t, controller.IsAuthenticated())

	cached, _, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestControllerInitializeRunsOnce(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	token := managerToken(t, time.Hour)
	require.NoError(t, cache.Save(ctx, token, &session.Profile{Username: "admin"}))

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)
	require.True(t, controller.IsAuthenticated())

	controller.Logout(ctx)
	require.NoError(t, cache.Save(ctx, token, &session.Profile{Username: "admin"}))

	controller.Initialize(ctx)
	assert.False(t, controller.IsAuthenticated())
}

func TestControllerLogin(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()

	token := managerToken(t, time.Hour)
	client := &stubAuthClient{
		res: &session.LoginResponse{
			Token:    token,
			Type:     "Bearer",
			ID:       7,
			Username: "admin",
			Email:    "admin@roomify.test",
			// Response roles are advisory; the token decides.
			Roles: []string{"ROLE_GUEST"},
		},
	}

	controller := session.NewController(cache, client)
	controller.Initialize(ctx)

	profile, err := controller.Login(ctx, "admin@roomify.test", "roomify-dev")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, []string{"ROLE_MANAGER"}, profile.Roles)
	assert.True(t, controller.IsAuthenticated())
	assert.False(t, controller.Loading())
	assert.True(t, controller.HasRole(session.RoleManager))
	assert.False(t, controller.HasRole(session.RoleGuest))

	primary, ok := controller.PrimaryRole()
	assert.True(t, ok)
	assert.Equal(t, session.RoleManager, primary)

	// A fresh controller over the same store comes back authenticated.
	restored := session.NewController(cache, &stubAuthClient{})
	restored.Initialize(ctx)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, token, restored.Token())
}

func TestControllerLoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	controller := session.NewController(store.NewMemory(), &stubAuthClient{
		err: session.ErrLoginFailed,
	})
	controller.Initialize(ctx)

	profile, err := controller.Login(ctx, "admin@roomify.test", "wrong")
	require.Error(t, err)
	assert.Nil(t, profile)
	assert.True(t, session.IsLoginFailedError(err))
	assert.False(t, controller.IsAuthenticated())
	assert.False(t, controller.Loading())
	assert.Empty(t, controller.Token())
}

func TestControllerLoginWhileLoading(t *testing.T) {
	controller := session.NewController(store.NewMemory(), &stubAuthClient{})

	// Initialize has not settled yet.
	profile, err := controller.Login(context.Background(), "admin@roomify.test", "roomify-dev")
	assert.Nil(t, profile)
	assert.ErrorIs(t, err, session.ErrLoginInFlight)
}

func TestControllerLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	require.NoError(t, cache.Save(ctx, managerToken(t, time.Hour), &session.Profile{Username: "admin"}))

	controller := session.NewController(cache, &stubAuthClient{})
	controller.Initialize(ctx)
	require.True(t, controller.IsAuthenticated())

	controller.Logout(ctx)
	controller.Logout(ctx)

	assert.False(t, controller.IsAuthenticated())
	assert.Nil(t, controller.User())
	assert.Empty(t, controller.Token())

	cached, profile, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
	assert.Nil(t, profile)

	_, ok := controller.PrimaryRole()
	assert.False(t, ok)
	assert.False(t, controller.HasRole(session.RoleManager))
}

func TestControllerSnapshot(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	require.NoError(t, cache.Save(ctx, managerToken(t, time.Hour), &session.Profile{Username: "admin"}))

	controller := session.NewController(cache, &stubAuthClient{})

	snap := controller.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.Authenticated)

	controller.Initialize(ctx)

	snap = controller.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, []string{"ROLE_MANAGER"}, snap.Roles)
}

func TestControllerClockOverride(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory()
	token := managerToken(t, time.Hour)
	require.NoError(t, cache.Save(ctx, token, &session.Profile{Username: "admin"}))

	// A clock two hours ahead sees the token as expired.
	controller := session.NewController(cache, &stubAuthClient{}).
		WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	controller.Initialize(ctx)

	assert.False(t, controller.IsAuthenticated())
}
