package domain

import "time"

type UserRole string

const (
	UserRoleBuyer   UserRole = "BUYER"
	UserRoleSeller  UserRole = "SELLER"
	UserRoleJeweler UserRole = "JEWELER"
	UserRoleAdmin   UserRole = "ADMIN"
)

// ValidUserRole reports whether r is a member of the role enumeration.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleBuyer, UserRoleSeller, UserRoleJeweler, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	ReviewCount  int32     `json:"review_count"`
	Country      string    `json:"country"`
	Currency     string    `json:"currency"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
