package middleware

import (
	"net/http"
	"strings"

	"github.com/farmdirect/backend-go/models"
	"github.com/farmdirect/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware verifies the bearer token and puts the requester's
// identity and role on the context. Handlers trust these values without
// re-verification.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Missing authorization header",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid authorization header format",
				})
			}

			claims, err := utils.ValidateJWT(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid or expired token",
				})
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid user ID",
				})
			}

			c.Set("userID", userID)
			c.Set("role", models.Role(claims.Role))
			return next(c)
		}
	}
}

// RequireRole gates a route group to one or more roles. Runs after
// AuthMiddleware.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(models.Role)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "User not authenticated",
				})
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{
				"message": "Insufficient permissions",
			})
		}
	}
}
