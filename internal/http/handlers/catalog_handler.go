package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wickandwax/internal/catalog"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	if c.QueryBool("featured") {
		return c.JSON(fiber.Map{"products": h.Catalog.Featured()})
	}
	return c.JSON(fiber.Map{"products": h.Catalog.Products()})
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	p := h.Catalog.Product(c.Params("id"))
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	resp := fiber.Map{"product": p}
	if s := h.Catalog.Scent(p.ScentID); s != nil {
		resp["scent"] = s
	}
	if o := h.Catalog.Size(p.SizeID); o != nil {
		resp["size"] = o
	}
	if o := h.Catalog.Color(p.ColorID); o != nil {
		resp["color"] = o
	}
	if o := h.Catalog.Container(p.ContainerID); o != nil {
		resp["container"] = o
	}
	if o := h.Catalog.Wick(p.WickID); o != nil {
		resp["wick"] = o
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) Scents(c *fiber.Ctx) error {
	scents := h.Catalog.Scents()
	if mood := c.Query("mood"); mood != "" {
		scents = h.Catalog.ScentsByMood(mood)
	} else if cat := c.Query("category"); cat != "" {
		scents = h.Catalog.ScentsByCategory(cat)
	} else if season := c.Query("season"); season != "" {
		scents = h.Catalog.ScentsBySeason(season)
	}
	return c.JSON(fiber.Map{"scents": scents})
}

// Recommend backs the preference quiz: mood + season + a strength cap.
func (h *CatalogHandler) Recommend(c *fiber.Ctx) error {
	maxAgg := -1
	if raw := c.Query("maxAggressiveness"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 10 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "maxAggressiveness must be 0-10"})
		}
		maxAgg = n
	}
	scents := h.Catalog.RecommendScents(c.Query("mood"), c.Query("season"), maxAgg)
	return c.JSON(fiber.Map{"scents": scents})
}
