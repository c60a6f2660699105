package catalog

import (
	"strings"

	"wickandwax/internal/domain"
)

// Scent browsing filters. Matching is case-insensitive; empty criteria
// match everything.

func (c *Catalog) ScentsByMood(mood string) []domain.Scent {
	return c.filterScents(func(s *domain.Scent) bool { return fold(s.Mood, mood) })
}

func (c *Catalog) ScentsByCategory(category string) []domain.Scent {
	return c.filterScents(func(s *domain.Scent) bool { return fold(s.Category, category) })
}

func (c *Catalog) ScentsBySeason(season string) []domain.Scent {
	return c.filterScents(func(s *domain.Scent) bool { return fold(s.Season, season) })
}

// RecommendScents backs the preference quiz: scents matching the asked
// mood and season, no stronger than maxAggressiveness (ignored when < 0).
func (c *Catalog) RecommendScents(mood, season string, maxAggressiveness int) []domain.Scent {
	return c.filterScents(func(s *domain.Scent) bool {
		if !fold(s.Mood, mood) || !fold(s.Season, season) {
			return false
		}
		return maxAggressiveness < 0 || s.Aggressiveness <= maxAggressiveness
	})
}

func (c *Catalog) filterScents(keep func(*domain.Scent) bool) []domain.Scent {
	out := []domain.Scent{}
	for _, id := range c.scentIDs {
		if s := c.scents[id]; keep(s) {
			out = append(out, *s)
		}
	}
	return out
}

func fold(have, want string) bool {
	return want == "" || strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want))
}
