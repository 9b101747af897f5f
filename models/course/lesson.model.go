package course

import "gorm.io/gorm"

// Lesson is a single unit of course content. Order is unique within a course.
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"uniqueIndex:idx_course_order;not null"`
	Title      string `json:"title" gorm:"not null"`
	VideoURL   string `json:"video_url"`
	Transcript string `json:"transcript"`
	Order      int    `json:"order" gorm:"column:lesson_order;uniqueIndex:idx_course_order;not null"`
}
