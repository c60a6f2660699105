package checkout_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wickandwax/internal/cart"
	"wickandwax/internal/catalog"
	"wickandwax/internal/checkout"
	"wickandwax/internal/store"
)

const catalogDoc = `{
  "products": [
    {"id": "cndl-amber", "name": "Amber Glow", "price": 12.50, "stock": 10},
    {"id": "cndl-dozen", "name": "Dozen Box", "price": 12, "stock": 25}
  ],
  "scents": []
}`

func flowFixture(t *testing.T) (*cart.Manager, *checkout.Flow) {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(catalogDoc))
	if err != nil {
		t.Fatal(err)
	}
	mgr := cart.NewManager(store.NewMemory(), cat)
	return mgr, checkout.NewFlow(mgr, "s1", decimal.Zero, 0)
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAdvance_EmptyCartStaysOnCart(t *testing.T) {
	_, f := flowFixture(t)

	res, err := f.Advance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.OK || res.Step != "cart" || res.Message == "" {
		t.Fatalf("empty cart should block with a message: %+v", res)
	}
	if f.Step() != checkout.StepCart {
		t.Fatalf("step moved: %v", f.Step())
	}
}

func TestAdvance_BlankZipStaysOnShippingAndNamesZip(t *testing.T) {
	mgr, f := flowFixture(t)
	mgr.Add("s1", "cndl-amber", 1)

	if res, _ := f.Advance(context.Background()); !res.OK || res.Step != "shipping" {
		t.Fatalf("cart gate should pass: %+v", res)
	}

	fields := shippingFields()
	fields["zip"] = ""
	f.SetShipping(fields)

	res, err := f.Advance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.OK || res.Field != "Zip" {
		t.Fatalf("want Zip reported, got %+v", res)
	}
	if f.Step() != checkout.StepShipping {
		t.Fatalf("flow should stay on shipping, at %v", f.Step())
	}
}

func TestRetreat(t *testing.T) {
	mgr, f := flowFixture(t)
	mgr.Add("s1", "cndl-amber", 1)
	f.Advance(context.Background()) // cart -> shipping

	if !f.Retreat() || f.Step() != checkout.StepCart {
		t.Fatalf("retreat from shipping failed, at %v", f.Step())
	}
	if f.Retreat() {
		t.Fatal("retreat from the initial step should refuse")
	}
}

func TestShippingCost_ThresholdScenarios(t *testing.T) {
	mgr, f := flowFixture(t)

	// One line, qty 2 at 12.50: subtotal 25.00, below the 50 threshold.
	mgr.Add("s1", "cndl-amber", 2)
	if got := f.Subtotal(); !got.Equal(mustDec(t, "25.00")) {
		t.Fatalf("subtotal: want 25.00, got %s", got)
	}
	if got := f.ShippingCost(); !got.Equal(mustDec(t, "5.99")) {
		t.Fatalf("shipping: want 5.99, got %s", got)
	}
	if got := f.Total(); !got.Equal(mustDec(t, "30.99")) {
		t.Fatalf("total: want 30.99, got %s", got)
	}

	// Raise the subtotal to 60 (5 x 12): shipping goes free, no caching
	// of the old cost.
	mgr.Clear("s1")
	mgr.Add("s1", "cndl-dozen", 5)
	if got := f.Subtotal(); !got.Equal(mustDec(t, "60")) {
		t.Fatalf("subtotal: want 60, got %s", got)
	}
	if got := f.ShippingCost(); !got.IsZero() {
		t.Fatalf("shipping should be free at 60, got %s", got)
	}
	if got := f.Total(); !got.Equal(mustDec(t, "60")) {
		t.Fatalf("total should equal subtotal, got %s", got)
	}
}

func TestSelectShipping(t *testing.T) {
	_, f := flowFixture(t)

	if err := f.SelectShipping("teleport"); err == nil {
		t.Fatal("unknown shipping option should be rejected")
	}
	if err := f.SelectShipping("express"); err != nil {
		t.Fatal(err)
	}
	if got := f.SelectedShipping().ID; got != "express" {
		t.Fatalf("selection not applied: %s", got)
	}
}

func TestShippingCost_RecomputedOnSelectionChange(t *testing.T) {
	mgr, f := flowFixture(t)
	mgr.Add("s1", "cndl-dozen", 5) // subtotal 60

	if got := f.ShippingCost(); !got.IsZero() {
		t.Fatalf("standard should be free at 60, got %s", got)
	}
	f.SelectShipping("express") // threshold 100
	if got := f.ShippingCost(); !got.Equal(mustDec(t, "12.99")) {
		t.Fatalf("express at 60 should cost 12.99, got %s", got)
	}
}

func TestFullWalkToConfirmation(t *testing.T) {
	mgr, f := flowFixture(t)
	mgr.Add("s1", "cndl-amber", 2)
	f.SetShipping(shippingFields())
	f.SetPayment(paymentFields())

	ctx := context.Background()
	steps := []string{"shipping", "payment", "confirmation"}
	for _, want := range steps {
		res, err := f.Advance(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !res.OK || res.Step != want {
			t.Fatalf("want to land on %s, got %+v", want, res)
		}
	}

	order := f.Order()
	if order == nil {
		t.Fatal("no order snapshot after confirmation")
	}
	if order.ID == "" || len(order.Items) != 1 {
		t.Fatalf("bad order snapshot: %+v", order)
	}
	if !order.Total.Equal(mustDec(t, "30.99")) {
		t.Fatalf("order total: want 30.99, got %s", order.Total)
	}
	if order.Address.Zip != "01970" {
		t.Fatalf("address not captured: %+v", order.Address)
	}
	if got := mgr.Items("s1"); len(got) != 0 {
		t.Fatalf("cart should be cleared after submission, got %+v", got)
	}

	// Advancing past confirmation stays put.
	res, err := f.Advance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.Step != "confirmation" {
		t.Fatalf("confirmation should be terminal: %+v", res)
	}
}

func TestSubmit_TaxApplied(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(catalogDoc))
	if err != nil {
		t.Fatal(err)
	}
	mgr := cart.NewManager(store.NewMemory(), cat)
	mgr.Add("s1", "cndl-amber", 2) // subtotal 25.00

	f := checkout.NewFlow(mgr, "s1", mustDec(t, "0.08"), 0)
	if got := f.Tax(); !got.Equal(mustDec(t, "2.00")) {
		t.Fatalf("tax: want 2.00, got %s", got)
	}
	// 25.00 + 5.99 shipping + 2.00 tax
	if got := f.Total(); !got.Equal(mustDec(t, "32.99")) {
		t.Fatalf("total: want 32.99, got %s", got)
	}
}

func TestSubmit_EmptyCartRefused(t *testing.T) {
	_, f := flowFixture(t)
	if _, err := f.Submit(context.Background()); err != checkout.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestSubmit_CancelledContextLeavesCart(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(catalogDoc))
	if err != nil {
		t.Fatal(err)
	}
	mgr := cart.NewManager(store.NewMemory(), cat)
	mgr.Add("s1", "cndl-amber", 1)

	f := checkout.NewFlow(mgr, "s1", decimal.Zero, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Submit(ctx); err == nil {
		t.Fatal("cancelled submit should error")
	}
	if got := mgr.Items("s1"); len(got) != 1 {
		t.Fatalf("interrupted submit must not clear the cart, got %+v", got)
	}
}
