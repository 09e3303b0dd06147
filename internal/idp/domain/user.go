package domain

import "time"

type User struct {
	ID           int64 // assigned by the store, monotonic from 1
	Username     string
	Email        string
	PasswordHash string // bcrypt encoded
	FullName     string
	Active       bool
	CreatedAt    time.Time
}
