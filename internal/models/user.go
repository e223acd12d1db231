package models

import "time"

// User is a stored account.
type User struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
