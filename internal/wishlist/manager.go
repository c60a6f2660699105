// Package wishlist owns the per-identity wishlist records. One record
// per identity label, with "anonymous" as the signed-out sentinel.
package wishlist

import (
	"sort"

	"wickandwax/internal/domain"
	applog "wickandwax/internal/log"
	"wickandwax/internal/store"
)

const (
	anonymousLabel = "anonymous"
	keyPrefix      = "wishlist_"

	// Keys from the single-wishlist era, migrated once then deleted.
	legacySingleKey = "wishlist"
	legacyMultiKey  = "wishlists"
)

// record is the persisted shape: {username, wishlist: [ids]}. Old data
// mixed numeric and string ids, so entries decode as any and are
// canonicalized on read.
type record struct {
	Username string `json:"username"`
	Wishlist []any  `json:"wishlist"`
}

type Manager struct {
	store store.Store
}

func NewManager(st store.Store) *Manager { return &Manager{store: st} }

func label(identity string) string {
	if identity == "" {
		return anonymousLabel
	}
	return identity
}

func keyFor(identity string) string { return keyPrefix + label(identity) }

// Get returns the identity's product ids, sorted, never nil. An empty
// identity reads the anonymous wishlist.
func (m *Manager) Get(identity string) []string {
	var rec record
	m.store.Get(keyFor(identity), &rec)
	return canonicalIDs(rec.Wishlist)
}

func (m *Manager) Contains(identity, productID string) bool {
	want := domain.CanonicalID(productID)
	for _, id := range m.Get(identity) {
		if id == want {
			return true
		}
	}
	return false
}

// Add is idempotent; duplicates are never persisted.
func (m *Manager) Add(identity, productID string) error {
	productID = domain.CanonicalID(productID)
	if productID == "" {
		return nil
	}
	ids := m.Get(identity)
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return m.put(identity, append(ids, productID))
}

func (m *Manager) Remove(identity, productID string) error {
	productID = domain.CanonicalID(productID)
	ids := m.Get(identity)
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return m.put(identity, kept)
}

// MergeAnonymousInto unions the anonymous wishlist into the identity's
// record, then resets the anonymous record to empty. Running it again
// with no intervening anonymous activity changes nothing.
func (m *Manager) MergeAnonymousInto(identity string) error {
	if identity == "" {
		return nil
	}
	anon := m.Get("")
	if len(anon) > 0 {
		if err := m.put(identity, append(m.Get(identity), anon...)); err != nil {
			return err
		}
	}
	return m.put("", nil)
}

// MigrateLegacy folds pre-identity wishlist values into the anonymous
// record and deletes the old keys. Safe on every startup; absent keys
// are a no-op.
func (m *Manager) MigrateLegacy() error {
	migrated := false
	ids := m.Get("")
	for _, k := range []string{legacySingleKey, legacyMultiKey} {
		var old []any
		if !m.store.Get(k, &old) {
			continue
		}
		ids = append(ids, canonicalIDs(old)...)
		migrated = true
		if err := m.store.Delete(k); err != nil {
			return err
		}
	}
	if !migrated {
		return nil
	}
	applog.Info(nil, "wishlist.migrate.legacy", map[string]any{"ids": len(ids)})
	return m.put("", ids)
}

func (m *Manager) put(identity string, ids []string) error {
	return m.store.Set(keyFor(identity), record{
		Username: label(identity),
		Wishlist: toAny(normalize(ids)),
	})
}

func canonicalIDs(raw []any) []string {
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, domain.CanonicalID(v))
	}
	return normalize(ids)
}

// normalize dedupes, drops blanks and sorts.
func normalize(ids []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		id = domain.CanonicalID(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func toAny(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
