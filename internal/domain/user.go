package domain

import (
	"strings"
	"time"
)

// User represents an account created on first credentials sign-in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DisplayName falls back to the local part of the email when Name is empty.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return EmailLocalPart(u.Email)
}

// EmailLocalPart returns everything before the first '@'.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
