package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medcamp/portal/api"
	errs "github.com/medcamp/portal/internal/errors"
	"github.com/medcamp/portal/session"
	"github.com/medcamp/portal/users"
	"github.com/medcamp/portal/visitors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.New(session.NewMemoryStorage())
	store.Initialize()
	store.SetAuth(users.User{
		ID:     "user-1",
		Role:   users.RoleDoctor,
		CampID: "c1",
	}, "tok123", "sunrise-camp")
	return store
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]visitors.Visitor{})
	}))
	defer server.Close()

	store := authedStore(t)
	client := api.New(server.URL)
	ctx := api.WithCredentials(context.Background(), store)

	_, err := client.ListVisitors(ctx, "sunrise-camp")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(visitors.Visitor{ID: "v1", Code: "REG-001"})
	}))
	defer server.Close()

	client := api.New(server.URL)
	_, err := client.RegisterVisitor(context.Background(), "sunrise-camp", visitors.Registration{Name: "Ravi"})
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	store := authedStore(t)
	client := api.New(server.URL)
	ctx := api.WithCredentials(context.Background(), store)

	_, err := client.ListCamps(ctx)
	assert.ErrorIs(t, err, errs.ErrSessionExpired)
	assert.False(t, store.IsAuthenticated(), "session is cleared on server-reported expiry")
}

func TestLoginUnauthorizedKeepsSession(t *testing.T) {
	// A failed login attempt must not clear state or look like session expiry
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	store := authedStore(t)
	client := api.New(server.URL)
	ctx := api.WithCredentials(context.Background(), store)

	_, err := client.Login(ctx, "asha@example.com", "wrong", "sunrise-camp")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, errs.ErrSessionExpired)
	assert.True(t, store.IsAuthenticated(), "failed login leaves the session untouched")
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sunrise-camp", req.CampSlug)
		json.NewEncoder(w).Encode(api.LoginResult{
			Token: "tok123",
			User:  users.User{ID: "user-1", Role: users.RoleDoctor, CampID: "c1"},
		})
	}))
	defer server.Close()

	client := api.New(server.URL)
	result, err := client.Login(context.Background(), "asha@example.com", "Secret123", "sunrise-camp")
	require.NoError(t, err)
	assert.Equal(t, "tok123", result.Token)
	assert.Equal(t, users.RoleDoctor, result.User.Role)
}

func TestOtherErrorsPropagateUnmodified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"duplicate email"}`, http.StatusConflict)
	}))
	defer server.Close()

	store := authedStore(t)
	client := api.New(server.URL)
	ctx := api.WithCredentials(context.Background(), store)

	_, err := client.CreateDoctor(ctx, "sunrise-camp", users.NewDoctor{Email: "asha@example.com"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "duplicate email", apiErr.Message)
	assert.True(t, store.IsAuthenticated(), "non-401 errors never touch the session")
}
