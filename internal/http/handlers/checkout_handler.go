package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"wickandwax/internal/auth"
	"wickandwax/internal/cart"
	"wickandwax/internal/checkout"
	applog "wickandwax/internal/log"
)

// CheckoutHandler keeps one ephemeral Flow per owner. Flows live only
// as long as the process, matching the page-lifetime semantics of the
// checkout session.
type CheckoutHandler struct {
	Cart *cart.Manager
	Auth *auth.Service

	taxRate decimal.Decimal
	delay   time.Duration

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

func NewCheckoutHandler(cartMgr *cart.Manager, authSvc *auth.Service, taxRate decimal.Decimal, delay time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		Cart:    cartMgr,
		Auth:    authSvc,
		taxRate: taxRate,
		delay:   delay,
		flows:   map[string]*checkout.Flow{},
	}
}

func (h *CheckoutHandler) flow(c *fiber.Ctx) *checkout.Flow {
	who := owner(c, h.Auth)
	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok := h.flows[who]
	if !ok {
		f = checkout.NewFlow(h.Cart, who, h.taxRate, h.delay)
		h.flows[who] = f
	}
	return f
}

func (h *CheckoutHandler) state(f *checkout.Flow) fiber.Map {
	m := fiber.Map{
		"step":     f.Step().String(),
		"subtotal": f.Subtotal(),
		"shipping": f.ShippingCost(),
		"tax":      f.Tax(),
		"total":    f.Total(),
		"selected": f.SelectedShipping().ID,
	}
	if o := f.Order(); o != nil {
		m["order"] = o
	}
	return m
}

func (h *CheckoutHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.state(h.flow(c)))
}

func (h *CheckoutHandler) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"options": checkout.ShippingOptions()})
}

func (h *CheckoutHandler) SelectShipping(c *fiber.Ctx) error {
	f := h.flow(c)
	if err := f.SelectShipping(c.FormValue("optionId")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown shipping option"})
	}
	return c.JSON(h.state(f))
}

func (h *CheckoutHandler) SetShipping(c *fiber.Ctx) error {
	f := h.flow(c)
	f.SetShipping(formFields(c, "firstName", "lastName", "email", "address", "city", "zip"))
	return c.JSON(h.state(f))
}

func (h *CheckoutHandler) SetPayment(c *fiber.Ctx) error {
	f := h.flow(c)
	f.SetPayment(formFields(c, "cardName", "cardNumber", "expiry", "cvc"))
	return c.JSON(h.state(f))
}

func (h *CheckoutHandler) Advance(c *fiber.Ctx) error {
	f := h.flow(c)
	res, err := f.Advance(c.Context())
	if err != nil {
		applog.Error(c, "checkout.advance.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout interrupted"})
	}
	if !res.OK {
		applog.Security(c, "checkout.gate.fail", map[string]any{"step": res.Step, "field": res.Field})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	}
	resp := h.state(f)
	resp["result"] = res
	return c.JSON(resp)
}

func (h *CheckoutHandler) Retreat(c *fiber.Ctx) error {
	f := h.flow(c)
	f.Retreat()
	return c.JSON(h.state(f))
}

func formFields(c *fiber.Ctx, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.FormValue(k)
	}
	return out
}
