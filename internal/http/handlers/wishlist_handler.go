package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wickandwax/internal/auth"
	applog "wickandwax/internal/log"
	"wickandwax/internal/validate"
	"wickandwax/internal/wishlist"
)

type WishlistHandler struct {
	Wish *wishlist.Manager
	Auth *auth.Service
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	identity := h.Auth.Current()
	return c.JSON(fiber.Map{"wishlist": h.Wish.Get(identity)})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	identity := h.Auth.Current()
	if err := h.Wish.Add(identity, pid); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save item"})
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return c.JSON(fiber.Map{"wishlist": h.Wish.Get(identity)})
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	identity := h.Auth.Current()
	if err := h.Wish.Remove(identity, pid); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not remove item"})
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.JSON(fiber.Map{"wishlist": h.Wish.Get(identity)})
}
