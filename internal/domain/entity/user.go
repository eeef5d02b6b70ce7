// Package entity contains the domain aggregates and their nested record
// types. Aggregates carry numeric IDs; nested nodes carry uuid string IDs
// and are compared with plain string equality.
package entity

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Asset references an object in the external asset store.
type Asset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// User represents a platform account.
//
// Courses is a denormalized read view of purchased course IDs. The Orders
// ledger is the authoritative record; the purchase guard never consults
// this list.
type User struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Avatar     Asset      `json:"avatar"`
	Role       UserRole   `json:"role"`
	IsVerified bool       `json:"is_verified"`
	Courses    []uint     `json:"courses"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

// IsAdmin returns true for admin accounts.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCourse reports whether the denormalized list contains courseID.
// Display fast path only; entitlement checks go through the Orders ledger.
func (u *User) HasCourse(courseID uint) bool {
	for _, id := range u.Courses {
		if id == courseID {
			return true
		}
	}
	return false
}

// AddCourse appends courseID to the denormalized list if absent.
func (u *User) AddCourse(courseID uint) {
	if !u.HasCourse(courseID) {
		u.Courses = append(u.Courses, courseID)
	}
}

// Snapshot captures the author info denormalized into nested course nodes
// at creation time, so questions and reviews render without a user join.
type Snapshot struct {
	UserID    uint     `json:"user_id"`
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatar_url"`
	Role      UserRole `json:"role"`
}

// Snapshot returns the denormalized author view of the user.
func (u *User) Snapshot() Snapshot {
	return Snapshot{
		UserID:    u.ID,
		Name:      u.Name,
		AvatarURL: u.Avatar.URL,
		Role:      u.Role,
	}
}
