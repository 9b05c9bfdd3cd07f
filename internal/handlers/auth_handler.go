package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"klontong/internal/middleware"
	"klontong/internal/services"
)

// AuthHandler serves the login and register screens and their actions.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	guest := middleware.RedirectIfAuthenticated(h.authService)
	router.Get("/login", guest, h.LoginScreen)
	router.Post("/login", h.HandleLogin)
	router.Get("/register", guest, h.RegisterScreen)
	router.Post("/register", h.HandleRegister)
	router.Post("/logout", h.HandleLogout)
}

// LoginScreen returns the login screen view model.
func (h *AuthHandler) LoginScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"screen": "login"})
}

// RegisterScreen returns the register screen view model.
func (h *AuthHandler) RegisterScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"screen": "register"})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles a login attempt and establishes a session on
// success.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	result := h.authService.Login(c.Context(), req.Email, req.Password)
	if !result.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    h.authService.CurrentUser(),
	})
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	result := h.authService.Register(c.Context(), req.Name, req.Email, req.Password)
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    h.authService.CurrentUser(),
	})
}

// HandleLogout clears the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.authService.Logout()
	return c.JSON(fiber.Map{"success": true})
}

// validationMessages flattens validator errors into a field→message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
