package handlers

import (
	"fmt"
	"io"
	"log"
	"time"

	"kanban/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Avatar upload limits, enforced before anything is sent to the file store.
const maxAvatarSize = 10 * 1024 * 1024

var allowedAvatarTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
}

// cookieMaxAge is the lifetime of both token cookies. It is deliberately
// longer than the access token itself; clients refresh through the cookie.
const cookieMaxAge = 14 * 24 * time.Hour

// UserHandler handles HTTP requests for the user lifecycle.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The update
// route sits behind the supplied auth middleware; everything else is public.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/verify", h.HandleVerifyAccount)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/refresh_token", h.HandleRefreshToken)
	userRoutes.Delete("/logout", h.HandleLogout)
	userRoutes.Put("/update", auth, h.HandleUpdateProfile)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleRegister handles new account registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	user, err := h.userService.Register(req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// VerifyRequest represents the request body for account verification.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// HandleVerifyAccount activates a pending account.
func (h *UserHandler) HandleVerifyAccount(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	user, err := h.userService.VerifyAccount(req.Email, req.Token)
	if err != nil {
		return serviceErrorResponse(c, "Verification failed", err)
	}

	return c.JSON(user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user, sets both token cookies and returns the
// projection plus tokens in the body.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
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
			"errors":  formatValidationErrors(err),
		})
	}

	result, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, "Authentication failed", err)
	}

	c.Cookie(tokenCookie("accessToken", result.AccessToken))
	c.Cookie(tokenCookie("refreshToken", result.RefreshToken))

	return c.JSON(result)
}

// RefreshRequest is the body fallback when the refresh cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRefreshToken mints a new access token from the refresh token. The
// cookie wins; a JSON body is accepted for non-browser clients.
func (h *UserHandler) HandleRefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies("refreshToken")
	if tokenString == "" && len(c.Body()) > 0 {
		var req RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Refresh token is required",
		})
	}

	accessToken, err := h.userService.RefreshToken(tokenString)
	if err != nil {
		log.Printf("Refresh token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Please sign in again",
		})
	}

	c.Cookie(tokenCookie("accessToken", accessToken))

	return c.JSON(fiber.Map{
		"accessToken": accessToken,
	})
}

// HandleLogout clears both token cookies.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	c.ClearCookie("accessToken", "refreshToken")
	return c.JSON(fiber.Map{
		"loggedOut": true,
	})
}

// UpdateProfileRequest represents the non-file fields of a profile update.
type UpdateProfileRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	DisplayName     string `json:"displayName" form:"displayName"`
}

// HandleUpdateProfile applies a password change, an avatar upload or a
// display-field update, depending on the request shape.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	update := services.UpdateProfileRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		DisplayName:     req.DisplayName,
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		if fileHeader.Size > maxAvatarSize {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "File size exceeds the 10MB limit",
			})
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedAvatarTypes[contentType] {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "File type is invalid. Only accept jpg, jpeg and png",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded file",
				"error":   err.Error(),
			})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded file",
				"error":   err.Error(),
			})
		}
		update.Avatar = data
		update.AvatarType = contentType
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, update)
	if err != nil {
		return serviceErrorResponse(c, "Update failed", err)
	}

	return c.JSON(user)
}

// tokenCookie builds one of the two HTTP-only token cookies. The 14-day
// MaxAge applies regardless of the underlying token's own expiry.
func tokenCookie(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		MaxAge:   int(cookieMaxAge.Seconds()),
	}
}

// formatValidationErrors flattens validator errors into a field -> message map.
func formatValidationErrors(err error) map[string]string {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}
