package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/middleware"
	"github.com/campus-hub/academy-api/internal/service"
	"github.com/campus-hub/academy-api/internal/utils"
)

// AuthHandler manages login and logout endpoints.
type AuthHandler struct {
	service  service.AuthService
	tokenTTL time.Duration
	secure   bool
	logger   zerolog.Logger
}

// NewAuthHandler builds an auth handler instance.
func NewAuthHandler(service service.AuthService, tokenTTL time.Duration, secure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		tokenTTL: tokenTTL,
		secure:   secure,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Get("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "login successful", user)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "logged out successfully", nil)
}
