package models

import "time"

// Column widths of users.name and users.email, in characters.
const (
	MaxUserNameLen = 255
	MaxEmailLen    = 255
)

// User is a registered account. Email is the login identity and is unique.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
