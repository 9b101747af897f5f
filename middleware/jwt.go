package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"microcourses/config"
	"microcourses/database"
	"microcourses/models"
	"microcourses/services"
)

// GenerateJWT generates a bearer token for the user, valid for 7 days
func GenerateJWT(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware verifies the bearer token and resolves it to a user record.
// The resolved *models.User is stored in Locals so handlers can thread it
// into the services explicitly.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, services.CodeNoToken, "",
			"Authorization token missing or malformed")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, services.CodeInvalidToken, "",
			"Token is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, services.CodeInvalidToken, "",
			"Invalid token payload")
	}

	// JWT numeric claims decode as float64
	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return ErrorResponse(c, fiber.StatusNotFound, services.CodeUserNotFound, "",
			"User not found")
	}

	c.Locals("user", &user)
	c.Locals("userId", user.ID)

	return c.Next()
}

// CurrentUser returns the identity resolved by JWTMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}
