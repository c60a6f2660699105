package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"wickandwax/internal/auth"
	applog "wickandwax/internal/log"
	"wickandwax/internal/validate"
)

type AuthHandler struct {
	Auth *auth.Service
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username, ok := validate.Name(c.FormValue("username"))
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_username_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}
	if err := h.Auth.Login(sid, username, c.FormValue("password")); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}
	applog.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.JSON(fiber.Map{"user": username})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.Auth.Logout()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": h.Auth.Current()})
}
