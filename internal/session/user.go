// Package session holds the signed-in user and mirrors it to local storage.
package session

import (
	"fmt"
	"strings"
)

// Role is what the signed-in user is on the marketplace.
type Role string

const (
	Landlord Role = "LANDLORD"
	Renter   Role = "RENTER"
)

// IsValid checks if a role is recognized.
func (r Role) IsValid() bool {
	return r == Landlord || r == Renter
}

// Label returns a human-readable label for the role.
func (r Role) Label() string {
	switch r {
	case Landlord:
		return "Landlord"
	case Renter:
		return "Renter"
	default:
		return string(r)
	}
}

// ParseRole accepts a role in any letter case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case Landlord, Renter:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// User is the signed-in actor. JoinedAt is unix milliseconds.
type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Role         Role    `json:"role"`
	Avatar       string  `json:"avatar"`
	Bio          string  `json:"bio,omitempty"`
	BusinessName string  `json:"businessName,omitempty"`
	MoveInDate   string  `json:"moveInDate,omitempty"`
	Duration     string  `json:"duration,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
	JoinedAt     int64   `json:"joinedAt"`
}

// IsLandlord reports whether u lists properties.
func (u User) IsLandlord() bool {
	return u.Role == Landlord
}

// mockUser fabricates the demo account for role. There is no credential
// check: the same role always yields the same identity.
func mockUser(role Role, joinedAt int64) User {
	u := User{
		Phone:        "9988776655",
		Role:         role,
		Avatar:       "https://i.pravatar.cc/150?u=" + string(role),
		Rating:       4.8,
		ReviewsCount: 12,
		JoinedAt:     joinedAt,
	}
	if role == Landlord {
		u.ID = "l1"
		u.Name = "Arjun Sharma"
		u.Email = "arjun@landlord.com"
		u.Bio = "Experienced property owner in Delhi NCR focused on luxury stays."
	} else {
		u.ID = "r1"
		u.Name = "Rajesh Kumar"
		u.Email = "rajesh@renter.com"
		u.Bio = "Quiet professional in tech looking for a 1-year lease."
	}
	return u
}
