package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"microcourses/config"
	"microcourses/database"
	"microcourses/middleware"
	"microcourses/models"
)

type errEnvelope struct {
	Error struct {
		Code    string  `json:"code"`
		Field   *string `json:"field"`
		Message string  `json:"message"`
	} `json:"error"`
}

// setupTestApp wires the full application against a fresh in-memory sqlite
// database. The rate limit is raised so multi-request scenarios never trip it.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:         "0",
		DBDriver:     "sqlite",
		JWTKey:       "test-secret",
		SaltRound:    bcrypt.MinCost,
		RateLimitMax: 10000,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	return setupApp()
}

func seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := models.User{
		Name:          "root",
		Email:         "admin@microcourses.app",
		Password:      string(hash),
		Role:          models.RoleAdmin,
		CreatorStatus: models.CreatorStatusNone,
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Role)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func errCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	var env errEnvelope
	require.NoError(t, json.Unmarshal(b, &env))
	return env.Error.Code
}

func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", email, body)
	return body["token"].(string)
}

func TestFullCourseLifecycle(t *testing.T) {
	app := setupTestApp(t)
	adminToken := seedAdmin(t)

	// Ana registers and applies to become a creator.
	anaToken := registerUser(t, app, "Ana", "ana@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/creator/apply", anaToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pending", body["creatorStatus"])

	// Find Ana in the admin's pending queue and approve her.
	status, body = doJSON(t, app, http.MethodGet, "/admin/creators/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	anaID := items[0].(map[string]interface{})["id"].(float64)

	status, body = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/admin/creators/%.0f/status", anaID), adminToken,
		fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "creator", body["role"])
	assert.Equal(t, "approved", body["creatorStatus"])

	// Ana authors a two-lesson course and submits it for review.
	status, body = doJSON(t, app, http.MethodPost, "/creator/courses", anaToken, fiber.Map{
		"title":       "Go Basics",
		"description": "An introduction",
		"lessons": []fiber.Map{
			{"title": "Hello", "video_url": "https://videos.example.com/1.mp4"},
			{"title": "Types", "video_url": "https://videos.example.com/2.mp4"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "create course: %v", body)
	assert.Equal(t, "pending", body["status"])
	courseID := body["id"].(float64)
	lessons := body["lessons"].([]interface{})
	require.Len(t, lessons, 2)
	lesson1 := lessons[0].(map[string]interface{})["ID"].(float64)
	lesson2 := lessons[1].(map[string]interface{})["ID"].(float64)

	status, body = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/creator/courses/%.0f/submit", courseID), anaToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "under_review", body["status"])

	// Admin approves; the course goes live with a serial hash.
	status, body = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/admin/courses/%.0f/status", courseID), adminToken,
		fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusOK, status)
	course := body["course"].(map[string]interface{})
	assert.Equal(t, "approved", course["status"])
	assert.Equal(t, true, course["published"])
	assert.NotEmpty(t, course["serial_hash"])

	// The published course shows up in the public catalog and detail view.
	status, body = doJSON(t, app, http.MethodGet, "/courses/", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"].([]interface{}), 1)

	status, body = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/courses/%.0f", courseID), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ana", body["creator"].(map[string]interface{})["name"])
	assert.Len(t, body["course"].(map[string]interface{})["lessons"].([]interface{}), 2)

	// Leo enrolls and works through the lessons.
	leoToken := registerUser(t, app, "Leo", "leo@example.com")

	status, _ = doJSON(t, app, http.MethodPost, "/course/enroll", leoToken,
		fiber.Map{"courseId": courseID})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, app, http.MethodPost, "/course/progress", leoToken,
		fiber.Map{"courseId": courseID, "lessonId": lesson1})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(50), body["progress"])
	assert.Equal(t, false, body["certificateIssued"])

	status, body = doJSON(t, app, http.MethodPost, "/course/progress", leoToken,
		fiber.Map{"courseId": courseID, "lessonId": lesson2})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(100), body["progress"])
	assert.Equal(t, true, body["certificateIssued"])
	assert.NotEmpty(t, body["certificateHash"])

	status, body = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/course/progress/%.0f", courseID), leoToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(100), body["progress"])
	assert.Len(t, body["completedLessons"].([]interface{}), 2)

	// Leo cannot touch Ana's course.
	status, body = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/courses/%.0f", courseID), leoToken,
		fiber.Map{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, body))

	status, body = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/courses/%.0f", courseID), leoToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, body))
}

func TestAuthFlow(t *testing.T) {
	app := setupTestApp(t)

	registerUser(t, app, "Ana", "ana@example.com")

	// Duplicate registration is rejected.
	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     "Ana Again",
		"email":    "ana@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_EXISTS", errCode(t, body))

	// Email matching is case-insensitive on login.
	status, body = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "ANA@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(t, body))

	status, body = doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "learner", body["role"])

	// Missing and garbage tokens get distinct codes.
	status, body = doJSON(t, app, http.MethodGet, "/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "NO_TOKEN", errCode(t, body))

	status, body = doJSON(t, app, http.MethodGet, "/auth/profile", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, body))
}

func TestValidationErrors(t *testing.T) {
	app := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name": "Ana",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "FIELD_REQUIRED", errCode(t, body))

	status, body = doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     "Ana",
		"email":    "not-an-email",
		"password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "FIELD_REQUIRED", errCode(t, body))

	// An untitled lesson is rejected on update just like on create; the
	// validator runs before any ownership or existence check.
	token := registerUser(t, app, "Leo", "leo@example.com")
	status, body = doJSON(t, app, http.MethodPut, "/courses/5", token, fiber.Map{
		"lessons": []fiber.Map{{"title": ""}},
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "FIELD_REQUIRED", errCode(t, body))
}

func TestRoleEnforcement(t *testing.T) {
	app := setupTestApp(t)
	seedAdmin(t)

	anaToken := registerUser(t, app, "Ana", "ana@example.com")

	// A learner is not an admin.
	status, body := doJSON(t, app, http.MethodGet, "/admin/creators/pending", anaToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errCode(t, body))

	// An unapproved learner cannot author courses.
	status, body = doJSON(t, app, http.MethodPost, "/creator/courses", anaToken, fiber.Map{
		"title":       "Go Basics",
		"description": "An introduction",
	})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "NOT_APPROVED_CREATOR", errCode(t, body))

	// Applying twice is rejected.
	status, _ = doJSON(t, app, http.MethodPost, "/creator/apply", anaToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = doJSON(t, app, http.MethodPost, "/creator/apply", anaToken, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CREATOR_ALREADY_APPLIED", errCode(t, body))
}

func TestEnrollmentErrors(t *testing.T) {
	app := setupTestApp(t)
	seedAdmin(t)

	leoToken := registerUser(t, app, "Leo", "leo@example.com")

	// Enrolling in a missing course 404s.
	status, body := doJSON(t, app, http.MethodPost, "/course/enroll", leoToken,
		fiber.Map{"courseId": 999})
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errCode(t, body))

	// Progress against a course the caller never enrolled in.
	status, body = doJSON(t, app, http.MethodPost, "/course/progress", leoToken,
		fiber.Map{"courseId": 999, "lessonId": 1})
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_ENROLLED", errCode(t, body))

	status, body = doJSON(t, app, http.MethodGet, "/course/progress/999", leoToken, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_ENROLLED", errCode(t, body))
}
