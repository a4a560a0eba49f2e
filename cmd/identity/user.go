package identity

import "time"

// Principal is any authenticated subject that can own sessions.
type Principal interface {
	// Identifier returns the stable user id. An empty identifier marks an
	// unauthenticated or incomplete principal.
	Identifier() string
}

// User is the directory record sessions resolve to.
type User struct {
	ID       string
	Username *string
	Email    *string

	CreatedAt time.Time
}

// Identifier implements Principal.
func (u User) Identifier() string { return u.ID }
