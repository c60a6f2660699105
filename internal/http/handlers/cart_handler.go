package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wickandwax/internal/auth"
	"wickandwax/internal/cart"
	applog "wickandwax/internal/log"
	"wickandwax/internal/validate"
)

type CartHandler struct {
	Cart *cart.Manager
	Auth *auth.Service
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	who := owner(c, h.Auth)
	items := h.Cart.Items(who)
	return c.JSON(fiber.Map{
		"items":    items,
		"subtotal": h.Cart.Subtotal(who),
		"count":    h.Cart.Count(who),
	})
}

// Count is the badge endpoint; tabs re-poll it after a storage change.
func (h *CartHandler) Count(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"count": h.Cart.Count(owner(c, h.Auth))})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	who := owner(c, h.Auth)
	switch err := h.Cart.Add(who, pid, qty); err {
	case nil:
	case cart.ErrUnknownProduct:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	case cart.ErrOutOfStock:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "this candle is out of stock"})
	default:
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not add to cart"})
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "qty": qty})
	return c.JSON(fiber.Map{"items": h.Cart.Items(who), "count": h.Cart.Count(who)})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	lineID, ok := validate.ID(c.FormValue("lineId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing lineId"})
	}
	who := owner(c, h.Auth)
	if err := h.Cart.UpdateQuantity(who, lineID, validate.Qty(c.FormValue("qty"))); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"line": lineID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update cart"})
	}
	return c.JSON(fiber.Map{"items": h.Cart.Items(who), "subtotal": h.Cart.Subtotal(who)})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	lineID, ok := validate.ID(c.FormValue("lineId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing lineId"})
	}
	who := owner(c, h.Auth)
	items := h.Cart.Remove(who, lineID)
	return c.JSON(fiber.Map{"items": items, "subtotal": h.Cart.Subtotal(who)})
}
