package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microcourses/models"
	courseModels "microcourses/models/course"
)

// ProgressReport is the read-only projection of one enrollment.
type ProgressReport struct {
	CourseID          uint    `json:"courseId"`
	Progress          int     `json:"progress"`
	CompletedLessons  []uint  `json:"completedLessons"`
	CertificateIssued bool    `json:"certificateIssued"`
	CertificateHash   *string `json:"certificateHash"`
}

// Enroll creates an enrollment for a published course. Unpublished or
// missing courses are indistinguishable to the caller.
func Enroll(db *gorm.DB, user *models.User, courseID uint) (*courseModels.Enrollment, error) {
	var crs courseModels.Course
	err := db.Where("id = ? AND published = ?", courseID, true).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("courseId", "Course not found or not published")
		}
		return nil, serverError(err)
	}

	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: courseID,
	}
	// The unique (user, course) index is the authority on duplicates; a
	// concurrent double-enroll lands here, not on a racy pre-check.
	if err := db.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, badRequest(CodeAlreadyEnrolled, "", "You are already enrolled in this course")
		}
		return nil, serverError(err)
	}
	return &enrollment, nil
}

// CompleteLesson marks a lesson complete for the caller's enrollment and
// recomputes progress. Completing the same lesson twice is a no-op. The
// enrollment row is locked for the whole insert-and-recompute transaction,
// so concurrent completions serialize and the certificate is issued exactly
// once. Returns the enrollment and whether this call issued the certificate.
func CompleteLesson(db *gorm.DB, user *models.User, courseID, lessonID uint) (*courseModels.Enrollment, bool, error) {
	var enrollment courseModels.Enrollment
	issuedNow := false

	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock the enrollment row for the duration of the transaction so
		// concurrent completions serialize: the progress recompute and the
		// certificate check both read state no other writer can move under us.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", user.ID, courseID).
			First(&enrollment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundCode(CodeNotEnrolled, "courseId", "You are not enrolled in this course")
			}
			return err
		}

		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("lessonId", "Lesson not found in this course")
			}
			return err
		}

		completion := courseModels.LessonCompletion{
			EnrollmentID: enrollment.ID,
			LessonID:     lessonID,
		}
		// Idempotent set insert: the unique (enrollment, lesson) index plus
		// DO NOTHING turns a repeat completion into a no-op.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
			return err
		}

		progress, err := computeProgress(tx, enrollment.ID, courseID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"progress": progress}
		enrollment.Progress = progress

		// Certificate is issued exactly once, the first time progress hits
		// 100. It is never revoked or regenerated, even if the lesson set
		// grows afterwards and progress drops below 100 again.
		if progress == 100 && !enrollment.CertificateIssued {
			hash := uuid.NewString()
			enrollment.CertificateIssued = true
			enrollment.CertificateHash = &hash
			updates["certificate_issued"] = true
			updates["certificate_hash"] = hash
			issuedNow = true
		}

		return tx.Model(&courseModels.Enrollment{}).
			Where("id = ?", enrollment.ID).
			Updates(updates).Error
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, false, apiErr
		}
		return nil, false, serverError(err)
	}

	return &enrollment, issuedNow, nil
}

// GetProgress returns the progress projection for the caller's enrollment.
func GetProgress(db *gorm.DB, user *models.User, courseID uint) (*ProgressReport, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundCode(CodeNotEnrolled, "courseId", "You are not enrolled in this course")
		}
		return nil, serverError(err)
	}

	lessonIDs, err := completedLessonIDs(db, enrollment.ID, courseID)
	if err != nil {
		return nil, serverError(err)
	}

	return &ProgressReport{
		CourseID:          courseID,
		Progress:          enrollment.Progress,
		CompletedLessons:  lessonIDs,
		CertificateIssued: enrollment.CertificateIssued,
		CertificateHash:   enrollment.CertificateHash,
	}, nil
}

// computeProgress evaluates floor(100 * completed / total) over the course's
// current lesson set. Only completions whose lesson still belongs to the
// course count, so lesson replacement cannot leave progress above 100. A
// course with zero lessons reports zero progress.
func computeProgress(db *gorm.DB, enrollmentID, courseID uint) (int, error) {
	var total int64
	if err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err := db.Model(&courseModels.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id AND lessons.course_id = ? AND lessons.deleted_at IS NULL", courseID).
		Where("lesson_completions.enrollment_id = ?", enrollmentID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return int(completed * 100 / total), nil
}

func completedLessonIDs(db *gorm.DB, enrollmentID, courseID uint) ([]uint, error) {
	ids := []uint{}
	err := db.Model(&courseModels.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id AND lessons.course_id = ? AND lessons.deleted_at IS NULL", courseID).
		Where("lesson_completions.enrollment_id = ?", enrollmentID).
		Order("lesson_completions.lesson_id").
		Pluck("lesson_completions.lesson_id", &ids).Error
	return ids, err
}
