package model

import "time"

// AccountID uniquely identifies an account
type AccountID int64

// Role controls what an account may do in the directory
type Role string

const (
	RoleAdmin    Role = "admin"    // Full CRUD over employees
	RoleEmployee Role = "employee" // Read-only
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Account is an authenticable identity
type Account struct {
	ID           AccountID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"` // bcrypt hash, never sent to clients
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAccount is the candidate passed to the store when creating an account.
// The password is already hashed by the auth service.
type NewAccount struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role // Defaults to RoleEmployee when empty
}
