package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/farmdirect/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignUp registers a consumer or farmer account. Admin accounts are
// provisioned out of band.
func (h *Handler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return errorJSON(c, http.StatusBadRequest, "Name, email and a password of at least 6 characters are required")
	}

	role := models.RoleConsumer
	if req.Role == string(models.RoleFarmer) {
		role = models.RoleFarmer
	}

	ctx := c.Request().Context()

	count, err := h.users().CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to check existing users")
	}
	if count > 0 {
		return errorJSON(c, http.StatusConflict, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      role,
		Addresses: []models.Address{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := h.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errorJSON(c, http.StatusConflict, "Email already registered")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to create user")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a token carrying the user's role.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	var user models.User
	err := h.users().FindOne(
		c.Request().Context(),
		bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))},
	).Decode(&user)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
