// Package checkout drives the step-sequenced order flow: cart review,
// shipping, payment, confirmation, with a validation gate between each
// step.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wickandwax/internal/cart"
	"wickandwax/internal/domain"
	applog "wickandwax/internal/log"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownShipping = errors.New("unknown shipping option")
)

type Step int

const (
	StepCart Step = iota
	StepShipping
	StepPayment
	StepConfirmation
)

var stepNames = [...]string{"cart", "shipping", "payment", "confirmation"}

func (s Step) String() string {
	if s < StepCart || s > StepConfirmation {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// StepResult reports the outcome of an Advance: the step the flow is on
// afterwards, and the gate failure if it did not move.
type StepResult struct {
	OK      bool     `json:"ok"`
	Step    string   `json:"step"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// Flow is one checkout session. It is ephemeral: a page reload starts
// over at the cart step. Not safe for concurrent use; each session owns
// its flow.
type Flow struct {
	cart        *cart.Manager
	owner       string
	step        Step
	shipping    map[string]string
	payment     map[string]string
	selected    string
	taxRate     decimal.Decimal
	submitDelay time.Duration
	order       *domain.Order
}

func NewFlow(c *cart.Manager, owner string, taxRate decimal.Decimal, submitDelay time.Duration) *Flow {
	return &Flow{
		cart:        c,
		owner:       owner,
		shipping:    map[string]string{},
		payment:     map[string]string{},
		selected:    shippingOptions[0].ID,
		taxRate:     taxRate,
		submitDelay: submitDelay,
	}
}

func (f *Flow) Step() Step { return f.step }

// Order is the snapshot from a completed submission, nil before that.
func (f *Flow) Order() *domain.Order { return f.order }

func (f *Flow) SetShipping(fields map[string]string) {
	f.shipping = clone(fields)
}

func (f *Flow) SetPayment(fields map[string]string) {
	f.payment = clone(fields)
}

func (f *Flow) SelectShipping(id string) error {
	if shippingOption(id) == nil {
		return ErrUnknownShipping
	}
	f.selected = id
	return nil
}

func (f *Flow) SelectedShipping() domain.ShippingOption {
	return *shippingOption(f.selected)
}

// ShippingCost is re-derived from the live cart subtotal and the current
// selection on every call; free at or above the option's threshold.
func (f *Flow) ShippingCost() decimal.Decimal {
	opt := shippingOption(f.selected)
	if f.Subtotal().GreaterThanOrEqual(opt.FreeThreshold) {
		return decimal.Zero
	}
	return opt.Price
}

func (f *Flow) Subtotal() decimal.Decimal {
	return f.cart.Subtotal(f.owner)
}

func (f *Flow) Tax() decimal.Decimal {
	return f.Subtotal().Mul(f.taxRate).Round(2)
}

func (f *Flow) Total() decimal.Decimal {
	return f.Subtotal().Add(f.ShippingCost()).Add(f.Tax())
}

// Advance runs the current step's gate. On failure the flow stays put
// and the result names the first offending field. Passing the payment
// gate submits the order and lands on confirmation.
func (f *Flow) Advance(ctx context.Context) (StepResult, error) {
	gate := f.gate()
	if !gate.OK {
		return StepResult{Step: f.step.String(), Field: gate.Field, Message: gate.Message, Missing: gate.Missing}, nil
	}
	if f.step == StepConfirmation {
		return StepResult{OK: true, Step: f.step.String()}, nil
	}
	if f.step == StepPayment {
		order, err := f.Submit(ctx)
		if err != nil {
			return StepResult{Step: f.step.String(), Message: "order submission interrupted"}, err
		}
		f.order = &order
	}
	f.step++
	return StepResult{OK: true, Step: f.step.String()}, nil
}

// Retreat is always allowed from any non-initial step; no validation
// going backward.
func (f *Flow) Retreat() bool {
	if f.step == StepCart {
		return false
	}
	f.step--
	return true
}

func (f *Flow) gate() GateResult {
	switch f.step {
	case StepCart:
		if len(f.cart.Items(f.owner)) == 0 {
			return GateResult{Message: "Your cart is empty"}
		}
		return GateResult{OK: true}
	case StepShipping:
		return ValidateShipping(f.shipping)
	case StepPayment:
		return ValidatePayment(f.payment)
	default:
		return GateResult{OK: true}
	}
}

// Submit materializes the order snapshot, waits out the simulated
// processing latency, clears the cart and returns the order. There is
// no failure mode past the gate: after the delay it always succeeds.
func (f *Flow) Submit(ctx context.Context) (domain.Order, error) {
	items := f.cart.Items(f.owner)
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	now := time.Now()
	order := domain.Order{
		ID:       fmt.Sprintf("WW-%d", now.UnixMilli()),
		Items:    items,
		Subtotal: f.Subtotal(),
		Shipping: f.ShippingCost(),
		Tax:      f.Tax(),
		Total:    f.Total(),
		Address: domain.ShippingAddress{
			FirstName: f.shipping["firstName"],
			LastName:  f.shipping["lastName"],
			Email:     f.shipping["email"],
			Address:   f.shipping["address"],
			City:      f.shipping["city"],
			Zip:       f.shipping["zip"],
		},
		PlacedAt: now.Format(time.RFC1123),
	}

	if f.submitDelay > 0 {
		timer := time.NewTimer(f.submitDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			// Abandoned mid-"processing": the pending action is lost,
			// cart untouched. Known limitation of the simulation.
			return domain.Order{}, ctx.Err()
		}
	}

	if err := f.cart.Clear(f.owner); err != nil {
		applog.Error(nil, "checkout.clear.fail", err, map[string]any{"owner": f.owner})
	}
	applog.Audit(nil, "checkout.order.placed", map[string]any{
		"order_id": order.ID, "total": order.Total.String(), "items": len(order.Items),
	})
	return order, nil
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
