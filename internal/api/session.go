package api

import "sync"

// AuthSession holds the bearer token shared by every request a Client
// makes. A 401 from any request invalidates the session; the expire
// callback fires exactly once no matter how many in-flight requests
// see the 401, so the UI swaps to the login view a single time.
type AuthSession struct {
	mu       sync.Mutex
	token    string
	expired  bool
	onExpire func()
}

func NewAuthSession(token string) *AuthSession {
	return &AuthSession{token: token}
}

// OnExpire registers the callback invoked when the session is
// invalidated. Must be set before the session is shared with a Client.
func (s *AuthSession) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

func (s *AuthSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether the session currently holds a token.
func (s *AuthSession) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && !s.expired
}

// Invalidate clears the token and fires the expire callback. Repeated
// calls after the first are no-ops until Reset.
func (s *AuthSession) Invalidate() {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	s.token = ""
	fn := s.onExpire
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Reset installs a fresh token after a successful login and re-arms
// the expire callback.
func (s *AuthSession) Reset(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expired = false
}
