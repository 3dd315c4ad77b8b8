package models

import "time"

// RoleRequestStatus defines lifecycle states for role upgrade requests.
type RoleRequestStatus string

const (
	// RoleRequestStatusPending indicates the request is awaiting review.
	RoleRequestStatusPending RoleRequestStatus = "pending"
	// RoleRequestStatusApproved indicates the request was accepted.
	RoleRequestStatusApproved RoleRequestStatus = "approved"
	// RoleRequestStatusRejected indicates the request was denied.
	RoleRequestStatusRejected RoleRequestStatus = "rejected"
)

// ParseRoleRequestStatus validates a decision label. Only the two terminal
// states are accepted as decisions.
func ParseRoleRequestStatus(s string) (RoleRequestStatus, bool) {
	switch RoleRequestStatus(s) {
	case RoleRequestStatusApproved:
		return RoleRequestStatusApproved, true
	case RoleRequestStatusRejected:
		return RoleRequestStatusRejected, true
	}
	return "", false
}

// RoleRequest is a user-submitted request to be upgraded from Reader to
// Writer. Once approved or rejected a request never transitions again.
type RoleRequest struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	UserID        uint              `gorm:"not null;index" json:"user_id"`
	User          User              `gorm:"foreignKey:UserID" json:"user"`
	CurrentRole   string            `gorm:"not null" json:"current_role"`
	RequestedRole Role              `gorm:"not null" json:"requested_role"`
	Reason        string            `gorm:"type:text;not null" json:"reason"`
	Status        RoleRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNote     string            `gorm:"type:text" json:"admin_note"`
	IsRead        bool              `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
