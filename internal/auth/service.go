// Package auth is the simulated identity check-in: a fixed allow-list,
// no tokens, no expiry. Not a real auth boundary and explicitly not
// hardened beyond hashing the seeded passwords.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"wickandwax/internal/cart"
	applog "wickandwax/internal/log"
	"wickandwax/internal/store"
	"wickandwax/internal/wishlist"
)

var ErrBadCreds = errors.New("invalid username or password")

const currentUserKey = "currentUser"

type Service struct {
	store store.Store
	wish  *wishlist.Manager
	carts *cart.Manager
	users map[string]string // username -> bcrypt hash
}

// NewService seeds the demo allow-list. Hashing at construction keeps
// plaintext out of the binary's data segment, nothing more.
func NewService(st store.Store, wish *wishlist.Manager, carts *cart.Manager) *Service {
	mk := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return string(h)
	}
	return &Service{
		store: st,
		wish:  wish,
		carts: carts,
		users: map[string]string{
			"rama": mk("Candle123!"),
			"sita": mk("Candle123!"),
			"demo": mk("demo1234"),
		},
	}
}

// Login checks the allow-list, records the identity, and adopts the
// anonymous wishlist and the session cart into it.
func (s *Service) Login(sid, username, password string) error {
	hash, ok := s.users[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrBadCreds
	}
	if err := s.store.Set(currentUserKey, username); err != nil {
		return err
	}
	if err := s.wish.MergeAnonymousInto(username); err != nil {
		applog.Error(nil, "auth.wishlist.merge", err, map[string]any{"user": username})
	}
	if err := s.carts.MergeForLogin(username, sid); err != nil {
		applog.Error(nil, "auth.cart.merge", err, map[string]any{"user": username})
	}
	return nil
}

func (s *Service) Logout() error {
	return s.store.Delete(currentUserKey)
}

// Current returns the logged-in identity label, or "" when anonymous.
func (s *Service) Current() string {
	var username string
	s.store.Get(currentUserKey, &username)
	return username
}
