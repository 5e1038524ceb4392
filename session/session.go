package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/medcamp/portal/internal/errors"
	"github.com/medcamp/portal/users"
	"github.com/rs/zerolog/log"
)

// Session is a read-only snapshot of the authenticated actor. User and Token
// are both present or both absent; BoundTenant is set only for tenant-scoped
// roles and is always empty for admins.
type Session struct {
	User        *users.User
	Token       string
	BoundTenant string
	TokenExpiry time.Time // expiry hint decoded from the token; zero if opaque
}

// IsAuthenticated is true iff both user and token are present
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// IsAdmin is true for an authenticated admin session
func (s Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.IsAdmin()
}

// Store is the single source of truth for "who is logged in and with what
// credential" for one client. State is mutated only through Initialize,
// SetAuth and Logout; everything else reads snapshots. Storage failures
// degrade to in-memory-only state and never surface to callers.
type Store struct {
	storage Storage

	mu          sync.RWMutex
	user        *users.User
	token       string
	campSlug    string
	tokenExpiry time.Time
	initialized bool
}

// New creates an empty, uninitialized store over the given storage
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Initialize loads persisted state. Any read or parse failure yields an empty
// session rather than an error; initialized becomes true regardless. Safe to
// call more than once; only the first call reads storage.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	token, err := s.storage.Get(KeyToken)
	if err != nil {
		s.logStorageMiss(KeyToken, err)
		return
	}

	rawUser, err := s.storage.Get(KeyUser)
	if err != nil {
		s.logStorageMiss(KeyUser, err)
		return
	}

	var user users.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Warn().Err(err).Msg("Malformed persisted user, treating session as empty")
		return
	}

	// User and token are loaded together or not at all
	if token == "" {
		return
	}

	s.user = &user
	s.token = token
	s.tokenExpiry = tokenExpiryHint(token)

	if slug, err := s.storage.Get(KeyCampSlug); err == nil {
		s.campSlug = slug
	}
}

// Initialized reports whether persisted state has been loaded. Consumers must
// not make route decisions until this is true.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// SetAuth replaces the session wholesale after a successful login. campSlug
// is persisted for tenant-scoped roles and removed for admin sessions.
// Persistence failures are logged and ignored; in-memory state always
// reflects the change.
func (s *Store) SetAuth(user users.User, token, campSlug string) {
	if token == "" {
		s.Logout()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = token
	s.campSlug = campSlug
	s.tokenExpiry = tokenExpiryHint(token)
	s.initialized = true

	s.persist(KeyToken, token)
	if raw, err := json.Marshal(user); err == nil {
		s.persist(KeyUser, string(raw))
	}
	if campSlug != "" {
		s.persist(KeyCampSlug, campSlug)
	} else if err := s.storage.Delete(KeyCampSlug); err != nil {
		log.Warn().Err(err).Str("key", KeyCampSlug).Msg("Failed to remove persisted key")
	}
}

// Logout clears the session: all three persisted keys are removed and
// in-memory state is emptied. The store stays initialized — it is known
// empty, not unknown.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.campSlug = ""
	s.tokenExpiry = time.Time{}
	s.initialized = true

	for _, key := range []string{KeyToken, KeyUser, KeyCampSlug} {
		if err := s.storage.Delete(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove persisted key")
		}
	}
}

// IsAuthenticated is true iff both user and token are present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Token returns the bearer credential, or "" when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// BoundTenant returns the camp slug the session is scoped to, or "" for
// admin and anonymous sessions
func (s *Store) BoundTenant() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campSlug
}

// Snapshot returns a consistent read-only view for route decisions
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Session{
		Token:       s.token,
		BoundTenant: s.campSlug,
		TokenExpiry: s.tokenExpiry,
	}
	if s.user != nil {
		user := *s.user
		snapshot.User = &user
	}
	return snapshot
}

func (s *Store) persist(key, value string) {
	if err := s.storage.Set(key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to persist key, session is in-memory only")
	}
}

func (s *Store) logStorageMiss(key string, err error) {
	// An absent key is the normal logged-out case; only real faults are worth a line
	if err == nil || errs.Is(err, errs.ErrKeyNotFound) {
		return
	}
	log.Warn().Err(err).Str("key", key).Msg("Failed to read persisted session state")
}

// tokenExpiryHint decodes the bearer token as an unverified JWT to surface
// its expiry for display and logging. The token remains an opaque credential:
// a token that doesn't parse, or carries no exp claim, simply yields no hint,
// and the server's 401 stays the source of truth.
func tokenExpiryHint(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
