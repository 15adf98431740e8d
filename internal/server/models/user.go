// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is the self-describing hash
// record produced by the auth package, never the raw password.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
