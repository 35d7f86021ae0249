package models

import "time"

// User represents a registered account in the credential store.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	College      string    `json:"college,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Degree       string    `json:"degree,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
