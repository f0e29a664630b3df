package domain

import "time"

// Session is the authenticated identity for the current run. It is owned by
// the caller driving the workflows (the console loop) and passed explicitly to
// every service call; there is no process-wide session state. A nil Session is
// a valid "not logged in" value.
type Session struct {
	user      *Person
	startedAt time.Time
}

// NewSession wraps an authenticated person.
func NewSession(user *Person) *Session {
	return &Session{user: user, startedAt: time.Now().UTC()}
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.user != nil
}

// IsAdmin reports whether the logged-in user carries the ADMIN role.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.user.Role == RoleAdmin
}

// User returns the authenticated person, or nil.
func (s *Session) User() *Person {
	if s == nil {
		return nil
	}
	return s.user
}

// UserID returns the authenticated person's id, or zero.
func (s *Session) UserID() int64 {
	if !s.IsAuthenticated() {
		return 0
	}
	return s.user.ID
}

// StartedAt returns when the session was established.
func (s *Session) StartedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.startedAt
}
