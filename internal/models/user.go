// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account on the recipe-sharing site.
//
// Username uniqueness is enforced case-insensitively by the repository; the
// column-level unique index backs it up for exact matches.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Password     string    `gorm:"not null" json:"-"`
	Roles        RoleList  `gorm:"type:varchar(64);not null;default:'Reader'" json:"roles"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	SavedRecipes []Recipe  `gorm:"many2many:user_saved_recipes" json:"saved_recipes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.Roles.Has(RoleAdmin)
}
