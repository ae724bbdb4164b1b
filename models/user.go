package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	BgmiID     string   `json:"bgmiId,omitempty"`
	InGameName string   `json:"inGameName,omitempty"`
	Role       UserRole `json:"role"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession is a logged-in browser session. BackendToken is the bearer token
// issued by the backend API; it is stored sealed and never returned to the browser.
type AuthSession struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Role         UserRole  `json:"role" db:"role"`
	User         User      `json:"user" db:"profile"`
	BackendToken string    `json:"-" db:"backend_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
}

func (s AuthSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
