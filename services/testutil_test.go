package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"microcourses/database"
	"microcourses/models"
	courseModels "microcourses/models/course"
)

// newTestDb opens a fresh in-memory sqlite database. A single connection is
// forced because every pooled connection would otherwise get its own empty
// in-memory database.
func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role, creatorStatus string) *models.User {
	t.Helper()

	user := models.User{
		Name:          name,
		Email:         name + "@example.com",
		Password:      "hashed",
		Role:          role,
		CreatorStatus: creatorStatus,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCourse(t *testing.T, db *gorm.DB, creatorID uint, title, status string, published bool, lessonCount int) *courseModels.Course {
	t.Helper()

	crs := courseModels.Course{
		Title:     title,
		CreatorID: creatorID,
		Status:    status,
		Published: published,
	}
	require.NoError(t, db.Create(&crs).Error)

	for i := 1; i <= lessonCount; i++ {
		lesson := courseModels.Lesson{
			CourseID: crs.ID,
			Title:    "Lesson",
			VideoURL: "https://videos.example.com/l.mp4",
			Order:    i,
		}
		require.NoError(t, db.Create(&lesson).Error)
	}
	return &crs
}

func courseLessons(t *testing.T, db *gorm.DB, courseID uint) []courseModels.Lesson {
	t.Helper()

	var lessons []courseModels.Lesson
	require.NoError(t, db.Where("course_id = ?", courseID).Order("lesson_order").Find(&lessons).Error)
	return lessons
}
