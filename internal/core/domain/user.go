package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// UserStatus is the lifecycle state of an account. Accounts are never
// physically deleted; disabling preserves referential integrity with the
// events and projects the account owns.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusDisabled UserStatus = "disabled"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	PasswordHash string     `json:"-"`
	Roles        []string   `json:"roles"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Active reports whether the account may authenticate.
func (u *User) Active() bool {
	return u.Status == StatusActive
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Identity is the immutable authenticated-identity record the auth middleware
// attaches to the request context. Downstream handlers read it, never write it.
type Identity struct {
	UserID   string
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}
