// Package imageref picks a displayable image for a card.
package imageref

import "strings"

// DefaultFallback is shown whenever a card has no usable image.
const DefaultFallback = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=1000&auto=format&fit=crop"

// brokenMarkers identify placeholder image services known to be down.
var brokenMarkers = []string{"placehold.co"}

// Resolver maps candidate image references to safe ones.
type Resolver struct {
	Fallback string
}

// Default uses DefaultFallback.
var Default = Resolver{Fallback: DefaultFallback}

// New returns a Resolver with the given fallback, or Default when empty.
func New(fallback string) Resolver {
	if strings.TrimSpace(fallback) == "" {
		return Default
	}
	return Resolver{Fallback: fallback}
}

// Resolve returns candidate unchanged unless it is blank, still contains an
// unfilled template placeholder, or points at a broken placeholder service.
func (r Resolver) Resolve(candidate string) string {
	if strings.TrimSpace(candidate) == "" || strings.Contains(candidate, "[") {
		return r.fallback()
	}
	for _, marker := range brokenMarkers {
		if strings.Contains(candidate, marker) {
			return r.fallback()
		}
	}
	return candidate
}

// FallbackURL is the image used for the element's error handler.
func (r Resolver) FallbackURL() string { return r.fallback() }

func (r Resolver) fallback() string {
	if r.Fallback == "" {
		return DefaultFallback
	}
	return r.Fallback
}

// Resolve resolves candidate with the Default resolver.
func Resolve(candidate string) string {
	return Default.Resolve(candidate)
}
