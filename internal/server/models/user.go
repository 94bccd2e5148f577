// Package models holds the persisted data model of the portal.
package models

// Role is the access level of a registered account.
type Role string

const (
	RoleSeeker Role = "seeker"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the two enumerated values.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleAdmin
}

// JoinDateLayout is the timestamp format of the join_date column.
const JoinDateLayout = "2006-01-02 15:04:05"

// User is one row of the userdata table. PasswordHash holds the digest
// produced by cryptox.HashPassword, never the plaintext. Rows are
// append-only: once created they are neither updated nor deleted.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
	JoinDate     string
}
