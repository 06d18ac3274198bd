package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the account role stored in the user directory
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// User is a directory account. FullName doubles as the lookup key for
// recipient resolution, so it carries a unique index.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:120;not null;uniqueIndex"`
	Email       string    `json:"email" gorm:"size:255;index"`
	Role        Role      `json:"role" gorm:"size:20;not null;default:'student'"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the slice of a user that gets embedded in read-side joins
type UserCompact struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, FullName: u.FullName, Role: u.Role}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry any of the given roles
func (c *JwtCustomClaims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
