package handlers

import (
	"time"

	"wickandwax/internal/auth"
	"wickandwax/internal/cart"
	"wickandwax/internal/catalog"
	"wickandwax/internal/config"
	"wickandwax/internal/contact"
	"wickandwax/internal/store"
	"wickandwax/internal/wishlist"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	CheckoutHandler *CheckoutHandler
	AuthHandler     *AuthHandler
	ContactHandler  *ContactHandler
}

func NewDeps(st store.Store, cat *catalog.Catalog, cfg config.Config) *Deps {
	delay := time.Duration(cfg.SubmitDelayMS) * time.Millisecond

	cartMgr := cart.NewManager(st, cat)
	wishMgr := wishlist.NewManager(st)
	authSvc := auth.NewService(st, wishMgr, cartMgr)
	contactSvc := contact.NewService(st, delay)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: cat},
		CartHandler:     &CartHandler{Cart: cartMgr, Auth: authSvc},
		WishlistHandler: &WishlistHandler{Wish: wishMgr, Auth: authSvc},
		CheckoutHandler: NewCheckoutHandler(cartMgr, authSvc, cfg.TaxRate, delay),
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ContactHandler:  &ContactHandler{Contact: contactSvc},
	}
}
