package models

// Session is the logical record of who is logged in for a sequence of requests,
// plus the flash messages waiting to be shown once.
type Session struct {
	UserID   int      `json:"user_id,omitempty"`
	Username string   `json:"username,omitempty"`
	Flashes  []string `json:"flashes,omitempty"`
}

// IsAuthenticated reports whether the session is bound to a user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != 0
}

// Flash queues a message for the next rendered page.
func (s *Session) Flash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// TakeFlashes returns the pending messages and forgets them.
func (s *Session) TakeFlashes() []string {
	if s == nil {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	return out
}

// Clear drops the user binding and any pending flashes.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}
