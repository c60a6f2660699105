package cart_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"wickandwax/internal/cart"
	"wickandwax/internal/catalog"
	"wickandwax/internal/domain"
	"wickandwax/internal/store"
)

const catalogDoc = `{
  "products": [
    {"id": "cndl-amber", "name": "Amber Glow", "price": 12.50, "stock": 10},
    {"id": "cndl-dozen", "name": "Dozen Box", "price": 12, "stock": 25},
    {"id": "cndl-gone", "name": "Retired Candle", "price": 9.99, "stock": 0}
  ],
  "scents": []
}`

func fixture(t *testing.T) (*cart.Manager, *store.Memory) {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(catalogDoc))
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemory()
	return cart.NewManager(st, cat), st
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAdd_UnknownProductLeavesCartUntouched(t *testing.T) {
	m, st := fixture(t)
	sid := "s1"

	if err := m.Add(sid, "no-such-candle", 2); err != cart.ErrUnknownProduct {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
	var raw []domain.LineItem
	if st.Get("cart:"+sid, &raw) {
		t.Fatal("failed add persisted a cart")
	}
	if got := m.Items(sid); len(got) != 0 {
		t.Fatalf("cart should be empty, got %+v", got)
	}
}

func TestAdd_OutOfStockRejected(t *testing.T) {
	m, _ := fixture(t)
	if err := m.Add("s1", "cndl-gone", 1); err != cart.ErrOutOfStock {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
}

func TestAdd_CapturesPriceAndUniqueIDs(t *testing.T) {
	m, _ := fixture(t)
	sid := "s1"

	// Rapid successive adds of the same product stay distinct lines.
	for i := 0; i < 5; i++ {
		if err := m.Add(sid, "cndl-amber", 0); err != nil { // qty 0 coerced to 1
			t.Fatal(err)
		}
	}
	items := m.Items(sid)
	if len(items) != 5 {
		t.Fatalf("want 5 line items, got %d", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate line id %s", it.ID)
		}
		seen[it.ID] = true
		if it.Quantity != 1 {
			t.Fatalf("qty not coerced: %+v", it)
		}
		if !it.Price.Equal(mustDec(t, "12.50")) {
			t.Fatalf("captured price wrong: %s", it.Price)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	m, _ := fixture(t)
	sid := "s1"
	if err := m.Add(sid, "cndl-amber", 1); err != nil {
		t.Fatal(err)
	}
	id := m.Items(sid)[0].ID

	if err := m.UpdateQuantity(sid, id, -4); err != nil {
		t.Fatal(err)
	}
	if got := m.Items(sid)[0].Quantity; got != 1 {
		t.Fatalf("negative qty should coerce to 1, got %d", got)
	}

	if err := m.UpdateQuantity(sid, id, 3); err != nil {
		t.Fatal(err)
	}
	if got := m.Items(sid)[0].Quantity; got != 3 {
		t.Fatalf("want qty 3, got %d", got)
	}

	// Unknown line id is a no-op.
	before := m.Items(sid)
	if err := m.UpdateQuantity(sid, "nope", 9); err != nil {
		t.Fatal(err)
	}
	after := m.Items(sid)
	if len(after) != len(before) || after[0].Quantity != 3 {
		t.Fatalf("no-op update changed the cart: %+v", after)
	}
}

func TestRemove(t *testing.T) {
	m, _ := fixture(t)
	sid := "s1"
	m.Add(sid, "cndl-amber", 1)
	m.Add(sid, "cndl-dozen", 2)
	id := m.Items(sid)[0].ID

	rest := m.Remove(sid, id)
	if len(rest) != 1 || rest[0].ProductID != "cndl-dozen" {
		t.Fatalf("bad cart after remove: %+v", rest)
	}
	for _, it := range m.Items(sid) {
		if it.ID == id {
			t.Fatal("removed id still present")
		}
	}

	// Removing a non-existent id leaves the cart unchanged.
	rest = m.Remove(sid, "ghost")
	if len(rest) != 1 {
		t.Fatalf("no-op remove changed the cart: %+v", rest)
	}
}

func TestSubtotal_RecomputedAndDanglingTolerated(t *testing.T) {
	m, st := fixture(t)
	sid := "s1"
	if err := m.Add(sid, "cndl-amber", 2); err != nil {
		t.Fatal(err)
	}
	if got := m.Subtotal(sid); !got.Equal(mustDec(t, "25.00")) {
		t.Fatalf("want 25.00, got %s", got)
	}

	// Plant a line whose product no longer exists: contributes zero but
	// is not pruned from storage.
	items := m.Items(sid)
	items = append(items, domain.LineItem{ID: "dangling", ProductID: "discontinued", Quantity: 3, Price: mustDec(t, "99")})
	if err := st.Set("cart:"+sid, items); err != nil {
		t.Fatal(err)
	}
	if got := m.Subtotal(sid); !got.Equal(mustDec(t, "25.00")) {
		t.Fatalf("dangling line should contribute zero, got %s", got)
	}
	if got := m.Items(sid); len(got) != 2 {
		t.Fatalf("read pruned the cart: %+v", got)
	}
}

func TestItems_CorruptStorageDegradesToEmpty(t *testing.T) {
	m, st := fixture(t)
	st.SetRaw("cart:s1", `[{"broken":`)
	if got := m.Items("s1"); got == nil || len(got) != 0 {
		t.Fatalf("corrupt cart should read as empty slice, got %#v", got)
	}
}

func TestItems_LegacyNumericProductIDCanonicalized(t *testing.T) {
	m, st := fixture(t)
	st.SetRaw("cart:s1", `[{"id":"l1","productId":7,"quantity":2,"price":"12.5"}]`)

	got := m.Items("s1")
	if len(got) != 1 {
		t.Fatalf("legacy cart should survive the read, got %+v", got)
	}
	if got[0].ProductID != "7" {
		t.Fatalf("numeric productId should read back as %q, got %q", "7", got[0].ProductID)
	}
	if got[0].Quantity != 2 || !got[0].Price.Equal(mustDec(t, "12.5")) {
		t.Fatalf("line fields mangled: %+v", got[0])
	}
}

func TestClear(t *testing.T) {
	m, _ := fixture(t)
	sid := "s1"
	m.Add(sid, "cndl-amber", 2)
	if err := m.Clear(sid); err != nil {
		t.Fatal(err)
	}
	if got := m.Items(sid); len(got) != 0 {
		t.Fatalf("cart not cleared: %+v", got)
	}
	if m.Count(sid) != 0 {
		t.Fatal("count should be zero after clear")
	}
}

func TestMergeForLogin(t *testing.T) {
	m, _ := fixture(t)
	sid := "anon-session"
	m.Add(sid, "cndl-amber", 1)
	m.Add("rama", "cndl-dozen", 2)

	if err := m.MergeForLogin("rama", sid); err != nil {
		t.Fatal(err)
	}
	if got := m.Items("rama"); len(got) != 2 {
		t.Fatalf("want merged cart of 2, got %+v", got)
	}
	if got := m.Items(sid); len(got) != 0 {
		t.Fatalf("session cart should be emptied, got %+v", got)
	}

	// Second merge with an empty session cart is a no-op.
	if err := m.MergeForLogin("rama", sid); err != nil {
		t.Fatal(err)
	}
	if got := m.Items("rama"); len(got) != 2 {
		t.Fatalf("repeat merge duplicated items: %+v", got)
	}
}

func TestTotalMatchesSumAcrossMutations(t *testing.T) {
	m, _ := fixture(t)
	sid := "s1"
	m.Add(sid, "cndl-amber", 2)
	m.Add(sid, "cndl-dozen", 1)
	id := m.Items(sid)[1].ID
	m.UpdateQuantity(sid, id, 4)
	m.Remove(sid, m.Items(sid)[0].ID)

	want := decimal.Zero
	for _, it := range m.Items(sid) {
		want = want.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if got := m.Subtotal(sid); !got.Equal(want) {
		t.Fatalf("subtotal %s != recomputed %s", got, want)
	}
}
