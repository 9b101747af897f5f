package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"microcourses/config"
	"microcourses/database"
	"microcourses/models"
	courseModels "microcourses/models/course"
)

func logScheduler(message string) {
	log.Printf("[REVIEW-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendPendingReviewDigest counts items awaiting admin review and emails a
// summary to the configured admin address. Nothing pending, nothing sent.
func sendPendingReviewDigest() {
	db := database.Database.Db

	var pendingCreators int64
	if err := db.Model(&models.User{}).
		Where("creator_status = ?", models.CreatorStatusPending).
		Count(&pendingCreators).Error; err != nil {
		logScheduler("Error counting pending creators: " + err.Error())
		return
	}

	var pendingCourses int64
	if err := db.Model(&courseModels.Course{}).
		Where("status IN ?", []string{courseModels.StatusPending, courseModels.StatusUnderReview}).
		Count(&pendingCourses).Error; err != nil {
		logScheduler("Error counting pending courses: " + err.Error())
		return
	}

	if pendingCreators == 0 && pendingCourses == 0 {
		return
	}

	SendAdminDigestEmail(config.AppConfig.AdminDigestEmail, int(pendingCreators), int(pendingCourses))
	logScheduler("Digest sent to " + config.AppConfig.AdminDigestEmail)
}

// InitializeReviewScheduler starts the daily 08:00 UTC digest cron. Callers
// should only invoke it when an admin digest address is configured.
func InitializeReviewScheduler() *cron.Cron {
	logScheduler("Initializing review digest scheduler...")

	c := cron.New()
	c.AddFunc("0 8 * * *", sendPendingReviewDigest)
	c.Start()

	logScheduler("Review digest scheduler started - runs daily at 08:00 UTC")
	return c
}
