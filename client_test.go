package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	session "github.com/roomify/go-session"
)

func loginServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func loginFailureMessage(t *testing.T, err error) string {
	t.Helper()

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	return richErr.Message
}

func TestHTTPAuthClientLogin(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"sub":   "admin@roomify.test",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
		"roles": []string{"ROLE_MANAGER"},
	})

	server := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		creds := session.Credentials{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "admin@roomify.test", creds.Identifier)
		require.Equal(t, "roomify-dev", creds.Secret)

		json.NewEncoder(w).Encode(map[string]any{
			"token":    token,
			"type":     "Bearer",
			"id":       1,
			"username": "admin",
			"email":    "admin@roomify.test",
			"roles":    []string{"ROLE_MANAGER"},
		})
	})

	client := session.NewHTTPAuthClient(server.URL + "/api")
	res, err := client.Login(context.Background(), "admin@roomify.test", "roomify-dev")
	require.NoError(t, err)

	assert.Equal(t, token, res.Token)
	assert.Equal(t, "Bearer", res.Type)
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "admin", res.Username)
	assert.Equal(t, []string{"ROLE_MANAGER"}, res.Roles)
}

func TestHTTPAuthClientStructuredMessage(t *testing.T) {
	server := loginServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Invalid email or password",
		})
	})

	client := session.NewHTTPAuthClient(server.URL + "/api")
	_, err := client.Login(context.Background(), "admin@roomify.test", "wrong")
	require.Error(t, err)

	assert.True(t, session.IsLoginFailedError(err))
	assert.Equal(t, "Invalid email or password", loginFailureMessage(t, err))
}

func TestHTTPAuthClientPlainTextMessage(t *testing.T) {
	server := loginServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("account locked\n"))
	})

	client := session.NewHTTPAuthClient(server.URL + "/api")
	_, err := client.Login(context.Background(), "admin@roomify.test", "roomify-dev")
	require.Error(t, err)

	assert.Equal(t, "account locked", loginFailureMessage(t, err))
}

func TestHTTPAuthClientGenericFallback(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty body": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"json without message": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"E_AUTH"}`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := loginServer(t, handler)

			client := session.NewHTTPAuthClient(server.URL + "/api")
			_, err := client.Login(context.Background(), "admin@roomify.test", "roomify-dev")
			require.Error(t, err)

			assert.True(t, session.IsLoginFailedError(err))
			assert.Equal(t,
				"Login failed. Please check your credentials and try again.",
				loginFailureMessage(t, err))
		})
	}
}

func TestHTTPAuthClientTransportError(t *testing.T) {
	server := loginServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	base := server.URL + "/api"
	server.Close()

	client := session.NewHTTPAuthClient(base)
	_, err := client.Login(context.Background(), "admin@roomify.test", "roomify-dev")
	require.Error(t, err)
	assert.True(t, session.IsLoginFailedError(err))
}

func TestHTTPAuthClientValidatesCredentials(t *testing.T) {
	client := session.NewHTTPAuthClient("http://localhost:0/api")

	_, err := client.Login(context.Background(), "", "roomify-dev")
	require.Error(t, err)
	assert.False(t, session.IsLoginFailedError(err))

	_, err = client.Login(context.Background(), "not-an-email", "roomify-dev")
	require.Error(t, err)

	_, err = client.Login(context.Background(), "admin@roomify.test", "")
	require.Error(t, err)
}

func TestCredentialsValidate(t *testing.T) {
	valid := session.Credentials{Identifier: "admin@roomify.test", Secret: "roomify-dev"}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "admin@roomify.test", valid.GetIdentifier())
	assert.Equal(t, "roomify-dev", valid.GetSecret())

	assert.Error(t, session.Credentials{Secret: "x"}.Validate())
	assert.Error(t, session.Credentials{Identifier: "admin@roomify.test"}.Validate())
}
