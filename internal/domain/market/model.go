package market

import (
	"strings"
	"time"
)

// Category is one of the dashboard's interest areas. Matching vocabulary
// (tags, exclusions, entities) is keyed by category.
type Category string

const (
	CategoryAI             Category = "AI"
	CategoryPolicy         Category = "Policy"
	CategorySemiconductors Category = "Semiconductors"
	CategoryFinance        Category = "Finance"
	CategoryECommerce      Category = "E-commerce"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEnergy         Category = "Energy"
	CategoryCrypto         Category = "Crypto"
	CategoryClimate        Category = "Climate"
	CategoryGaming         Category = "Gaming"
	CategoryUnknown        Category = ""
)

// ParseCategory maps a user-supplied string to a known category,
// case-insensitively. Unrecognized values map to CategoryUnknown, which
// matches with empty tag and exclusion lists rather than failing.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ai":
		return CategoryAI
	case "policy":
		return CategoryPolicy
	case "semiconductors":
		return CategorySemiconductors
	case "finance":
		return CategoryFinance
	case "e-commerce", "ecommerce":
		return CategoryECommerce
	case "healthcare":
		return CategoryHealthcare
	case "energy":
		return CategoryEnergy
	case "crypto", "cryptocurrency":
		return CategoryCrypto
	case "climate":
		return CategoryClimate
	case "gaming":
		return CategoryGaming
	default:
		return CategoryUnknown
	}
}

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryAI,
		CategoryPolicy,
		CategorySemiconductors,
		CategoryFinance,
		CategoryECommerce,
		CategoryHealthcare,
		CategoryEnergy,
		CategoryCrypto,
		CategoryClimate,
		CategoryGaming,
	}
}

// CandidateEvent is a prediction-market event as fetched from the
// market provider, before any relevance scoring.
type CandidateEvent struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Tags        []string
	Liquidity   float64
	Volume      float64
	EndDate     *time.Time
}

// URL returns the public event page, preferring the slug when present.
func (e CandidateEvent) URL() string {
	ref := e.Slug
	if ref == "" {
		ref = e.ID
	}
	return "https://polymarket.com/event/" + ref
}

// ScoredEvent is a candidate event annotated with its relevance score
// against a particular trend.
type ScoredEvent struct {
	Event      CandidateEvent
	Score      float64
	MatchCount int
}

// EventLink is the outward-facing shape of a matched event.
type EventLink struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description string  `json:"description,omitempty"`
	Liquidity   float64 `json:"liquidity,omitempty"`
	Volume      float64 `json:"volume,omitempty"`
}

// Link converts the event to its outward-facing form.
func (e CandidateEvent) Link() EventLink {
	return EventLink{
		Title:       e.Title,
		URL:         e.URL(),
		Description: e.Description,
		Liquidity:   e.Liquidity,
		Volume:      e.Volume,
	}
}