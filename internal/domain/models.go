package domain

import (
	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Catalog data is read-only after load;
// ids are canonical strings for the whole session.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ScentID     string          `json:"scentId,omitempty"`
	SizeID      string          `json:"sizeId,omitempty"`
	ColorID     string          `json:"colorId,omitempty"`
	ContainerID string          `json:"containerId,omitempty"`
	WickID      string          `json:"wickId,omitempty"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type Scent struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Mood           string          `json:"mood"`
	Category       string          `json:"category"`
	Season         string          `json:"season"`
	Notes          []string        `json:"notes"`
	Aggressiveness int             `json:"aggressiveness"` // 0..10
	Price          decimal.Decimal `json:"price"`
}

// Option is a product variant choice (color, size, container, wick).
type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineItem is one cart entry. Price is the unit price captured at
// add time; Quantity is coerced to >= 1 on every read.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ETA           string          `json:"eta"`
	FreeThreshold decimal.Decimal `json:"freeThreshold"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// Order is the immutable snapshot materialized at confirmation time.
// It lives only for the session; nothing re-reads it from storage.
type Order struct {
	ID       string          `json:"id"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Address  ShippingAddress `json:"address"`
	PlacedAt string          `json:"placedAt"`
}
