package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"microcourses/models"
	courseModels "microcourses/models/course"
)

// LessonInput is one lesson supplied on course create/update.
type LessonInput struct {
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Transcript string `json:"transcript"`
	Order      int    `json:"order"`
}

// CourseInput is the body of a course create/update request.
type CourseInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Lessons     []LessonInput `json:"lessons"`
}

// CourseList is a paginated slice of published courses.
type CourseList struct {
	Items      []courseModels.Course `json:"items"`
	NextOffset int                   `json:"next_offset"`
}

// CreateCourse creates a course and its lessons in a single transaction, so
// a failure mid-way leaves no orphaned lesson rows behind.
func CreateCourse(db *gorm.DB, creator *models.User, in CourseInput) (*courseModels.Course, error) {
	crs := courseModels.Course{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		CreatorID:   creator.ID,
		Status:      courseModels.StatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&crs).Error; err != nil {
			return err
		}
		return createLessons(tx, crs.ID, in.Lessons)
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, badRequest(CodeFieldRequired, "title", "A course with this title already exists")
		}
		return nil, serverError(err)
	}

	return loadCourse(db, crs.ID)
}

// UpdateCourse edits one of the caller's courses. When a lesson list is
// supplied it replaces the whole lesson set; the delete and re-create happen
// in the same transaction as the course update.
func UpdateCourse(db *gorm.DB, caller *models.User, courseID uint, in CourseInput) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("courseId", "Course not found")
		}
		return nil, serverError(err)
	}

	if crs.CreatorID != caller.ID {
		return nil, forbidden(CodeUnauthorized, "You can only update your own courses")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if title := strings.TrimSpace(in.Title); title != "" {
			updates["title"] = title
		}
		if in.Description != "" {
			updates["description"] = in.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&crs).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.Lessons != nil {
			// Replace the lesson set. Hard delete so the (course, order)
			// unique index does not trip over superseded rows.
			if err := tx.Unscoped().Where("course_id = ?", crs.ID).
				Delete(&courseModels.Lesson{}).Error; err != nil {
				return err
			}
			return createLessons(tx, crs.ID, in.Lessons)
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, badRequest(CodeFieldRequired, "title", "A course with this title already exists")
		}
		return nil, serverError(err)
	}

	return loadCourse(db, courseID)
}

// DeleteCourse removes one of the caller's courses together with its lessons.
func DeleteCourse(db *gorm.DB, caller *models.User, courseID uint) error {
	var crs courseModels.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("courseId", "Course not found")
		}
		return serverError(err)
	}

	if crs.CreatorID != caller.ID {
		return forbidden(CodeUnauthorized, "You can only delete your own courses")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ?", crs.ID).
			Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&crs).Error
	})
	if err != nil {
		return serverError(err)
	}
	return nil
}

// ListPublished returns published courses with limit/offset pagination.
func ListPublished(db *gorm.DB, limit, offset int) (*CourseList, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	items := []courseModels.Course{}
	err := db.Where("published = ?", true).
		Preload("Lessons", orderLessons).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, serverError(err)
	}

	return &CourseList{Items: items, NextOffset: offset + len(items)}, nil
}

// GetCourse returns one course with its lessons.
func GetCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	return crs, nil
}

// ListByCreator returns every course owned by the given creator.
func ListByCreator(db *gorm.DB, creatorID uint) ([]courseModels.Course, error) {
	items := []courseModels.Course{}
	err := db.Where("creator_id = ?", creatorID).
		Preload("Lessons", orderLessons).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, serverError(err)
	}
	return items, nil
}

// ListCoursesForReview returns courses awaiting an admin decision, filtered
// by review status (pending by default).
func ListCoursesForReview(db *gorm.DB, status string) ([]courseModels.Course, error) {
	if status == "" {
		status = courseModels.StatusPending
	}

	items := []courseModels.Course{}
	err := db.Where("status = ?", status).
		Preload("Lessons", orderLessons).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, serverError(err)
	}
	return items, nil
}

// ListPendingCreators returns users with an undecided creator application.
func ListPendingCreators(db *gorm.DB) ([]models.User, error) {
	items := []models.User{}
	err := db.Where("creator_status = ?", models.CreatorStatusPending).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, serverError(err)
	}
	return items, nil
}

func createLessons(tx *gorm.DB, courseID uint, lessons []LessonInput) error {
	for i, in := range lessons {
		order := in.Order
		if order <= 0 {
			order = i + 1
		}
		lesson := courseModels.Lesson{
			CourseID:   courseID,
			Title:      in.Title,
			VideoURL:   in.VideoURL,
			Transcript: in.Transcript,
			Order:      order,
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
	}
	return nil
}

func loadCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	err := db.Preload("Lessons", orderLessons).First(&crs, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("courseId", "Course not found")
		}
		return nil, serverError(err)
	}
	return &crs, nil
}

func orderLessons(db *gorm.DB) *gorm.DB {
	return db.Order("lessons.lesson_order")
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
