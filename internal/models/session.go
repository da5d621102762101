package models

import "time"

// Session is the server-side record behind the session cookie. The cookie
// carries only the session id; the signed assertion and the anti-forgery
// token never leave the server.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CSRFToken string    `json:"csrf_token"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Authenticated() bool {
	return s.Token != ""
}
