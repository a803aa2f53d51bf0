package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/auth"
	"prelaunch/internal/http/middleware"
)

// AdminGate exchanges the admin password for a session and validates sessions.
type AdminGate interface {
	Login(password string) (token string, expiresAt time.Time, err error)
	Authenticate(token string) bool
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type adminSessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

func sessionCookie(value string, expires time.Time, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// AdminLogin sets the admin session cookie and returns the same token in the body.
//
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body adminLoginRequest true "Password"
// @Success 200 {object} adminLoginResponse
// @Failure 401 {object} errorPayload
// @Router /api/admin/login [post]
func AdminLogin(gate AdminGate, secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in adminLoginRequest
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}

		token, exp, err := gate.Login(in.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid password")
		}
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Cookie(sessionCookie(token, exp, secureCookie))
		return c.JSON(adminLoginResponse{Message: "Logged in", Token: token, ExpiresAt: exp})
	}
}

// @Summary Admin logout
// @Tags admin
// @Produce json
// @Success 200 {object} messageResponse
// @Router /api/admin/logout [post]
func AdminLogout(secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := sessionCookie("", time.Unix(0, 0), secureCookie)
		cookie.MaxAge = -1
		c.Cookie(cookie)
		return c.JSON(messageResponse{Message: "Logged out"})
	}
}

// @Summary Admin session state
// @Tags admin
// @Produce json
// @Success 200 {object} adminSessionResponse
// @Router /api/admin/session [get]
func AdminSession(gate AdminGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(adminSessionResponse{Authenticated: gate.Authenticate(middleware.AdminToken(c))})
	}
}
