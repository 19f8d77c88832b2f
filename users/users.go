package users

import "time"

// RoleType represents a user's role within the fitness service
type RoleType string

const (
	RoleUser  RoleType = "USER"  // Regular user: owns activities, goals and measurements
	RoleAdmin RoleType = "ADMIN" // Administrator: manages users and views aggregate analytics
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the service's user profile. The backend owns this data; clients
// hold a read-mostly cached copy inside the session.
type User struct {
	ID        string     `json:"id,omitempty"`        // Unique identifier for the user
	Email     string     `json:"email,omitempty"`     // User's email address
	FirstName string     `json:"firstName,omitempty"` // First name of the user
	LastName  string     `json:"lastName,omitempty"`  // Last name of the user
	Role      RoleType   `json:"role,omitempty"`      // USER or ADMIN
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile extends User with the optional fields the profile page edits.
type Profile struct {
	User
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Address     *string `json:"address,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}
