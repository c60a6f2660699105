package checkout

import (
	"github.com/shopspring/decimal"

	"wickandwax/internal/domain"
)

// Static shipping catalog; not persisted, not user-editable.
var shippingOptions = []domain.ShippingOption{
	{
		ID:            "standard",
		Name:          "Standard Shipping",
		Price:         decimal.RequireFromString("5.99"),
		ETA:           "5-7 business days",
		FreeThreshold: decimal.RequireFromString("50"),
	},
	{
		ID:            "express",
		Name:          "Express Shipping",
		Price:         decimal.RequireFromString("12.99"),
		ETA:           "2-3 business days",
		FreeThreshold: decimal.RequireFromString("100"),
	},
	{
		ID:            "overnight",
		Name:          "Overnight Shipping",
		Price:         decimal.RequireFromString("24.99"),
		ETA:           "next business day",
		FreeThreshold: decimal.RequireFromString("150"),
	},
}

func ShippingOptions() []domain.ShippingOption {
	out := make([]domain.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

func shippingOption(id string) *domain.ShippingOption {
	for i := range shippingOptions {
		if shippingOptions[i].ID == id {
			return &shippingOptions[i]
		}
	}
	return nil
}
