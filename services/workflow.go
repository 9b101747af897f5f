package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"microcourses/models"
	courseModels "microcourses/models/course"
)

// Decisions an admin may take on a creator application or a course review.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// ApplyForCreator moves a user's creator application from none to pending.
// Any other source state fails: pending is already applied, approved and
// rejected are terminal.
func ApplyForCreator(db *gorm.DB, user *models.User) error {
	if user.CreatorStatus != models.CreatorStatusNone {
		return badRequest(CodeAlreadyApplied, "creatorStatus",
			fmt.Sprintf("You already have a creator status: %s", user.CreatorStatus))
	}

	user.CreatorStatus = models.CreatorStatusPending
	if err := db.Model(user).Update("creator_status", models.CreatorStatusPending).Error; err != nil {
		return serverError(err)
	}
	return nil
}

// DecideCreatorApplication approves or rejects a pending creator
// application. Approval promotes the user to the creator role; rejection
// leaves the role untouched. Both outcomes are terminal.
func DecideCreatorApplication(db *gorm.DB, userID uint, decision string) (*models.User, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, badRequest(CodeInvalidStatus, "status",
			"Status must be either 'approved' or 'rejected'")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("userId", "User not found")
		}
		return nil, serverError(err)
	}

	if !user.CanBecomeCreator() {
		return nil, badRequest(CodeInvalidRole, "role", "User is not eligible for creator role")
	}

	if user.CreatorStatus != models.CreatorStatusPending {
		return nil, badRequest(CodeInvalidStatus, "creatorStatus",
			"No pending creator application for this user")
	}

	updates := map[string]interface{}{"creator_status": decision}
	user.CreatorStatus = decision
	if decision == DecisionApproved {
		updates["role"] = models.RoleCreator
		user.Role = models.RoleCreator
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, serverError(err)
	}
	return &user, nil
}

// SubmitCourseForReview moves one of the caller's pending courses into
// under_review, taking it out of the creator's hands until an admin decides.
func SubmitCourseForReview(db *gorm.DB, caller *models.User, courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("courseId", "Course not found")
		}
		return nil, serverError(err)
	}

	if crs.CreatorID != caller.ID {
		return nil, forbidden(CodeUnauthorized, "You can only submit your own courses")
	}

	if crs.Status != courseModels.StatusPending {
		return nil, badRequest(CodeInvalidStatus, "status",
			"Only pending courses can be submitted for review")
	}

	crs.Status = courseModels.StatusUnderReview
	if err := db.Model(&crs).Update("status", courseModels.StatusUnderReview).Error; err != nil {
		return nil, serverError(err)
	}
	return &crs, nil
}

// DecideCourseReview approves or rejects a submitted course. Approval
// publishes the course and assigns its unique serial hash; rejection keeps
// it unpublished. Either way the decision is terminal.
func DecideCourseReview(db *gorm.DB, courseID uint, decision string) (*courseModels.Course, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, badRequest(CodeInvalidAction, "status",
			"Status must be either 'approved' or 'rejected'")
	}

	var crs courseModels.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("courseId", "Course not found")
		}
		return nil, serverError(err)
	}

	if crs.Decided() {
		return nil, badRequest(CodeInvalidAction, "status",
			fmt.Sprintf("Course review already decided: %s", crs.Status))
	}

	updates := map[string]interface{}{"status": decision}
	crs.Status = decision
	if decision == DecisionApproved {
		serial := uuid.NewString()
		crs.Published = true
		crs.SerialHash = &serial
		updates["published"] = true
		updates["serial_hash"] = serial
	}

	if err := db.Model(&crs).Updates(updates).Error; err != nil {
		return nil, serverError(err)
	}
	return &crs, nil
}
