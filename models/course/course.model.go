package course

import "gorm.io/gorm"

// Course review states. Approved and rejected are terminal.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Course represents a learning course authored by an approved creator
type Course struct {
	gorm.Model
	Title       string   `json:"title" gorm:"uniqueIndex;not null"`
	Description string   `json:"description"`
	CreatorID   uint     `json:"creator_id" gorm:"index;not null"`
	Status      string   `json:"status" gorm:"default:'pending'"`
	Published   bool     `json:"published" gorm:"default:false"` // true iff status = approved
	SerialHash  *string  `json:"serial_hash,omitempty" gorm:"uniqueIndex"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Decided reports whether the course review reached a terminal state.
func (c *Course) Decided() bool {
	return c.Status == StatusApproved || c.Status == StatusRejected
}
