package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wickandwax/internal/auth"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// owner picks the cart/checkout key: the identity label once logged in,
// the session id before that.
func owner(c *fiber.Ctx, a *auth.Service) string {
	if u := a.Current(); u != "" {
		return u
	}
	return ensureSID(c)
}
