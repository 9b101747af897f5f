package course

import "gorm.io/gorm"

// Enrollment tracks a learner's relationship to one course. Progress is
// floor(100 * completed / total) over the course's current lesson set.
type Enrollment struct {
	gorm.Model
	UserID            uint    `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID          uint    `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Progress          int     `json:"progress" gorm:"default:0"` // 0-100
	CertificateIssued bool    `json:"certificate_issued" gorm:"default:false"`
	CertificateHash   *string `json:"certificate_hash,omitempty"`
}

// LessonCompletion records one completed lesson for one enrollment. The
// unique pair makes repeat completions a no-op instead of a lost update.
type LessonCompletion struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	LessonID     uint `json:"lesson_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
}
