package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"zedorolo/internal/domain/repository"
	"zedorolo/internal/infrastructure/firebase"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/response"
)

// DevTokenHandler hands out long-lived tokens for local development. Never
// routed outside ENVIRONMENT=development.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) generateForRole(c echo.Context, role string) error {
	users, _, err := h.userRepo.List(c.Request().Context(), map[string]interface{}{"role": role}, 1, 0)
	if err != nil {
		return response.Error(c, err)
	}
	if len(users) == 0 {
		return response.Error(c, errors.NotFound("User with role "+role, nil))
	}

	user := users[0]

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	payload := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	}
	if expiry, err := firebase.TokenExpiry(token); err == nil {
		payload["expires_at"] = expiry.UTC().Format(time.RFC3339)
	}

	return response.Success(c, payload)
}

func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	return h.generateForRole(c, "user")
}

func (h *DevTokenHandler) GenerateAdminToken(c echo.Context) error {
	return h.generateForRole(c, "admin")
}
