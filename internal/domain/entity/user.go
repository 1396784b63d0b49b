package entity

import "time"

// User operador del almacén.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
