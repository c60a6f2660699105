// Package catalog holds the static product/scent/variant reference
// data, loaded once at startup and read-only afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wickandwax/internal/domain"
)

type Catalog struct {
	products   map[string]*domain.Product
	productIDs []string // document order, for listings
	scents     map[string]*domain.Scent
	scentIDs   []string
	colors     map[string]*domain.Option
	sizes      map[string]*domain.Option
	containers map[string]*domain.Option
	wicks      map[string]*domain.Option
}

// document mirrors the catalog data source: one JSON object with
// products, scents and the four variant arrays.
type document struct {
	Products   []domain.Product `json:"products"`
	Scents     []domain.Scent   `json:"scents"`
	Colors     []domain.Option  `json:"color"`
	Sizes      []domain.Option  `json:"size"`
	Containers []domain.Option  `json:"container"`
	Wicks      []domain.Option  `json:"wick"`
}

func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		products:   map[string]*domain.Product{},
		scents:     map[string]*domain.Scent{},
		colors:     map[string]*domain.Option{},
		sizes:      map[string]*domain.Option{},
		containers: map[string]*domain.Option{},
		wicks:      map[string]*domain.Option{},
	}
	for i := range doc.Products {
		p := doc.Products[i]
		p.ID = domain.CanonicalID(p.ID)
		p.ScentID = domain.CanonicalID(p.ScentID)
		c.products[p.ID] = &p
		c.productIDs = append(c.productIDs, p.ID)
	}
	for i := range doc.Scents {
		s := doc.Scents[i]
		s.ID = domain.CanonicalID(s.ID)
		c.scents[s.ID] = &s
		c.scentIDs = append(c.scentIDs, s.ID)
	}
	index := func(dst map[string]*domain.Option, src []domain.Option) {
		for i := range src {
			o := src[i]
			o.ID = domain.CanonicalID(o.ID)
			dst[o.ID] = &o
		}
	}
	index(c.colors, doc.Colors)
	index(c.sizes, doc.Sizes)
	index(c.containers, doc.Containers)
	index(c.wicks, doc.Wicks)
	return c, nil
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Product returns nil when the id is unknown; callers skip nil rather
// than propagate it.
func (c *Catalog) Product(id string) *domain.Product {
	return c.products[domain.CanonicalID(id)]
}

func (c *Catalog) Scent(id string) *domain.Scent {
	return c.scents[domain.CanonicalID(id)]
}

func (c *Catalog) Color(id string) *domain.Option     { return c.colors[domain.CanonicalID(id)] }
func (c *Catalog) Size(id string) *domain.Option      { return c.sizes[domain.CanonicalID(id)] }
func (c *Catalog) Container(id string) *domain.Option { return c.containers[domain.CanonicalID(id)] }
func (c *Catalog) Wick(id string) *domain.Option      { return c.wicks[domain.CanonicalID(id)] }

func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, 0, len(c.productIDs))
	for _, id := range c.productIDs {
		out = append(out, *c.products[id])
	}
	return out
}

func (c *Catalog) Featured() []domain.Product {
	out := []domain.Product{}
	for _, id := range c.productIDs {
		if p := c.products[id]; p.Featured {
			out = append(out, *p)
		}
	}
	return out
}

func (c *Catalog) Scents() []domain.Scent {
	out := make([]domain.Scent, 0, len(c.scentIDs))
	for _, id := range c.scentIDs {
		out = append(out, *c.scents[id])
	}
	return out
}
