package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
}

// Identity is the decoded content of a verified assertion,
// attached to a request after the auth middleware succeeds.
type Identity struct {
	ID   string
	Name string
	Role string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
