// Package cart owns the persisted cart collection. One key per owner
// (session id, or identity after login); no other component writes it.
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wickandwax/internal/catalog"
	"wickandwax/internal/domain"
	applog "wickandwax/internal/log"
	"wickandwax/internal/store"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrOutOfStock     = errors.New("out of stock")
)

type Manager struct {
	store store.Store
	cat   *catalog.Catalog
}

func NewManager(st store.Store, cat *catalog.Catalog) *Manager {
	return &Manager{store: st, cat: cat}
}

func key(owner string) string { return "cart:" + owner }

// Items always returns a slice, never nil. Corrupt storage degrades to
// an empty cart. Quantities are coerced to >= 1 and a zero captured
// price is backfilled from the live product; neither repair is written
// back (reads never prune or rewrite the persisted cart).
func (m *Manager) Items(owner string) []domain.LineItem {
	items := []domain.LineItem{}
	m.store.Get(key(owner), &items)
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
		items[i].ProductID = domain.CanonicalID(items[i].ProductID)
		if items[i].Price.IsZero() {
			if p := m.cat.Product(items[i].ProductID); p != nil {
				items[i].Price = p.Price
			}
		}
	}
	return items
}

// Add appends a fresh line item with the product's current price
// captured as the unit price. The cart is untouched when the product is
// unknown or out of stock.
func (m *Manager) Add(owner, productID string, qty int) error {
	productID = domain.CanonicalID(productID)
	p := m.cat.Product(productID)
	if p == nil {
		return ErrUnknownProduct
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	if qty < 1 {
		qty = 1
	}
	items := m.Items(owner)
	items = append(items, domain.LineItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  qty,
		Price:     p.Price,
	})
	return m.store.Set(key(owner), items)
}

// UpdateQuantity rewrites one line item in place; unknown ids are a no-op.
func (m *Manager) UpdateQuantity(owner, lineID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	items := m.Items(owner)
	found := false
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return m.store.Set(key(owner), items)
}

// Remove drops the matching line item if present and returns the
// resulting cart.
func (m *Manager) Remove(owner, lineID string) []domain.LineItem {
	items := m.Items(owner)
	kept := items[:0]
	for _, it := range items {
		if it.ID != lineID {
			kept = append(kept, it)
		}
	}
	if len(kept) != len(items) {
		if err := m.store.Set(key(owner), kept); err != nil {
			applog.Error(nil, "cart.remove.persist", err, map[string]any{"owner": owner})
		}
	}
	return kept
}

// Subtotal is always recomputed from the live cart. Line items whose
// product no longer resolves contribute zero but stay in storage.
func (m *Manager) Subtotal(owner string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range m.Items(owner) {
		if m.cat.Product(it.ProductID) == nil {
			continue
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Count is the badge number: total units across the cart.
func (m *Manager) Count(owner string) int {
	n := 0
	for _, it := range m.Items(owner) {
		n += it.Quantity
	}
	return n
}

func (m *Manager) Clear(owner string) error {
	return m.store.Set(key(owner), []domain.LineItem{})
}

// MergeForLogin moves the session cart into the identity's cart when a
// user logs in. Line ids are unique, so merging is a plain append; the
// session cart is emptied afterwards.
func (m *Manager) MergeForLogin(identity, sid string) error {
	if identity == "" || identity == sid {
		return nil
	}
	sess := m.Items(sid)
	if len(sess) == 0 {
		return nil
	}
	merged := append(m.Items(identity), sess...)
	if err := m.store.Set(key(identity), merged); err != nil {
		return err
	}
	return m.Clear(sid)
}
