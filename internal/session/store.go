package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdfbrief/pdfbrief/internal/api"
	"github.com/pdfbrief/pdfbrief/internal/credentials"
	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// Store owns the client's belief about the current authenticated identity:
// the bearer token, the cached user, a loading flag, and the last
// authentication error. It is the sole writer of the credential store.
// Invariant: a non-nil user implies a non-empty token.
type Store struct {
	client *api.Client
	creds  *credentials.Store
	logger zerolog.Logger

	mu        sync.RWMutex
	token     string
	user      *models.User
	loading   bool
	lastError string
}

// NewStore builds a session store seeded from the persisted credential, so a
// session survives restarts until the server rejects the token.
func NewStore(client *api.Client, creds *credentials.Store, logger zerolog.Logger) *Store {
	s := &Store{client: client, creds: creds, logger: logger}

	token, err := creds.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load persisted credential")
	}
	s.token = token
	return s
}

// Login exchanges credentials with the service. On success the token is
// persisted and the identity fetched; on failure the server's reason is
// recorded and no token is kept. Returns whether authentication succeeded.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.lastError = api.Detail(err, "Login failed")
		s.loading = false
		s.mu.Unlock()
		return false
	}

	if err := s.creds.Save(resp.AccessToken); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist credential")
	}
	s.mu.Lock()
	s.token = resp.AccessToken
	s.loading = false
	s.mu.Unlock()

	s.FetchUser(ctx)
	return true
}

// Register creates an account. It never authenticates the session; callers
// log in afterwards.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) bool {
	s.setLoading(true)

	_, err := s.client.Register(ctx, email, password, firstName, lastName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = api.Detail(err, "Registration failed")
		return false
	}
	return true
}

// FetchUser resolves the identity behind the current token. Any failure is
// treated as session invalidation: the token may have expired or been
// revoked server-side, so all local session state is torn down. This is the
// sole self-healing path for a stale persisted credential.
func (s *Store) FetchUser(ctx context.Context) {
	if s.Token() == "" {
		return
	}
	s.setLoading(true)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("identity fetch failed, tearing down session")
		s.teardown()
		return
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

// Logout tears down the session unconditionally. Idempotent.
func (s *Store) Logout() {
	s.teardown()
}

// HandleUnauthorized is the target for the HTTP client's 401 policy: any
// request rejected as unauthorized invalidates the whole session.
func (s *Store) HandleUnauthorized() {
	s.teardown()
}

// ClearError resets the last authentication error after presentation has
// displayed it once.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) teardown() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted credential")
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.lastError = ""
	s.mu.Unlock()
}

// Token returns the in-memory bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached identity, nil until FetchUser succeeds.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsLoading reports whether a session operation is in flight. Callers
// disable triggering controls while true to avoid duplicate requests.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded authentication error, empty when none.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Authenticated reports whether a token is currently held.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
