package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleLearner = "learner"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Creator application states
const (
	CreatorStatusNone     = "none"
	CreatorStatusPending  = "pending"
	CreatorStatusApproved = "approved"
	CreatorStatusRejected = "rejected"
)

type User struct {
	gorm.Model
	Name          string `json:"name" gorm:"default:''"`
	Email         string `json:"email" gorm:"unique;not null"` // stored lowercased
	Password      string `json:"-" gorm:"not null"`
	Role          string `json:"role" gorm:"default:'learner'"` // learner, creator, admin
	CreatorStatus string `json:"creator_status" gorm:"default:'none'"`
}

// CanBecomeCreator reports whether an admin decision may promote this user.
// Only learners (and already-promoted creators) are eligible.
func (u *User) CanBecomeCreator() bool {
	return u.Role == RoleLearner || u.Role == RoleCreator
}

// IsApprovedCreator reports whether the user may author courses.
func (u *User) IsApprovedCreator() bool {
	return u.Role == RoleCreator && u.CreatorStatus == CreatorStatusApproved
}
