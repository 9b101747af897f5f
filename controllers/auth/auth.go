package authController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"microcourses/config"
	"microcourses/database"
	"microcourses/middleware"
	"microcourses/models"
	"microcourses/services"
	"microcourses/utils"
	authValidator "microcourses/validators/auth"
)

// Register creates a new learner account and returns a fresh bearer token.
func Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedRegister").(*authValidator.RegisterInput)
	db := database.Database.Db

	// Check if email already exists
	var existing models.User
	err := db.Where("email = ?", reqData.Email).First(&existing).Error
	if err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeEmailExists,
			"email", "Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ServiceError(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, services.CodeServerError,
			"", "Failed to process your request")
	}

	// Every account starts as a learner; the creator role is only reachable
	// through an approved application.
	newUser := models.User{
		Name:          reqData.Name,
		Email:         reqData.Email,
		Password:      string(hashedPassword),
		Role:          models.RoleLearner,
		CreatorStatus: models.CreatorStatusNone,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.ServiceError(c, err)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Role)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	go utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            newUser.ID,
		"name":          newUser.Name,
		"email":         newUser.Email,
		"role":          newUser.Role,
		"creatorStatus": newUser.CreatorStatus,
		"token":         token,
	})
}

// Login verifies credentials and issues a bearer token.
func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginInput)
	db := database.Database.Db

	var user models.User
	err := db.Where("email = ?", reqData.Email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ServiceError(c, err)
	}

	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)) != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeInvalidCredentials,
			"", "Invalid email or password")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"creatorStatus": user.CreatorStatus,
		"token":         token,
	})
}

// Profile returns the authenticated user's own record.
func Profile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}

	return c.JSON(fiber.Map{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"creatorStatus": user.CreatorStatus,
		"createdAt":     user.CreatedAt,
	})
}
