package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/medcamp/portal/api"
	"github.com/medcamp/portal/gate"
	"github.com/medcamp/portal/session"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the client's session store
	ContextKeySession ContextKey = "client_session"
)

const clientSessionCookieName = "portal_session"

// WithClientSession attaches the browser's session store to the request
// context without gating access. The store is initialized before the request
// proceeds, so no handler ever reads auth state that hasn't been loaded from
// durable storage yet.
func (s *Server) WithClientSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, r = s.attachClientSession(w, r)
		next(w, r)
	}
}

// RequireAuth gates a route through the authorization gate: the session is
// loaded first, then the gate decides render-vs-redirect for this navigation.
func (s *Server) RequireAuth(requiresAdmin bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			store, r := s.attachClientSession(w, r)

			decision := gate.Decide(store.Snapshot(), gate.Request{
				Path:          r.URL.Path,
				CampSlug:      gate.ResolveSlug(r),
				RequiresAuth:  true,
				RequiresAdmin: requiresAdmin,
			})
			if decision.Action == gate.ActionRedirect {
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}

			next(w, r)
		}
	}
}

func (s *Server) attachClientSession(w http.ResponseWriter, r *http.Request) (*session.Store, *http.Request) {
	sessionID := s.readSessionID(r)
	if sessionID == "" {
		sessionID = uuid.New().String()
		s.writeSessionCookie(w, sessionID)
	}

	// The manager initializes the store before returning it
	store := s.sessions.For(sessionID)

	ctx := context.WithValue(r.Context(), ContextKeySession, store)
	ctx = api.WithCredentials(ctx, store)
	return store, r.WithContext(ctx)
}

func (s *Server) readSessionID(r *http.Request) string {
	cookie, err := r.Cookie(clientSessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	var sessionID string
	if err := s.cookies.Decode(clientSessionCookieName, cookie.Value, &sessionID); err != nil {
		// Tampered or stale cookie, issue a fresh anonymous session
		return ""
	}
	return sessionID
}

func (s *Server) writeSessionCookie(w http.ResponseWriter, sessionID string) {
	encoded, err := s.cookies.Encode(clientSessionCookieName, sessionID)
	if err != nil {
		log.Err(err).Msg("Failed to encode session cookie")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     clientSessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.env != "DEV",
	})
}

// clientStore returns the session store attached by WithClientSession or
// RequireAuth. Handlers behind those middlewares can rely on it being set.
func clientStore(r *http.Request) *session.Store {
	store, _ := r.Context().Value(ContextKeySession).(*session.Store)
	return store
}
