package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wickandwax/internal/contact"
	applog "wickandwax/internal/log"
	"wickandwax/internal/validate"
)

type ContactHandler struct {
	Contact *contact.Service
}

func (h *ContactHandler) Send(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	msg := contact.Message{
		Name:    c.FormValue("name"),
		Email:   email,
		Subject: c.FormValue("subject"),
		Body:    c.FormValue("body"),
	}
	if err := h.Contact.SendMessage(c.Context(), msg); err != nil {
		if err == contact.ErrBlankMessage {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		applog.Error(c, "contact.send.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not send message"})
	}
	applog.Audit(c, "contact.send", map[string]any{"email": email})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ContactHandler) Newsletter(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	if err := h.Contact.SubscribeNewsletter(c.Context(), email); err != nil {
		applog.Error(c, "newsletter.subscribe.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not subscribe"})
	}
	applog.Audit(c, "newsletter.subscribe", map[string]any{"email": email})
	return c.JSON(fiber.Map{"ok": true})
}
