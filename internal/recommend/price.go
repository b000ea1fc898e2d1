package recommend

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PriceRecommendation is a suggested selling price band for a listing.
type PriceRecommendation struct {
	RecommendedPrice float64
	MinPrice         float64
	MaxPrice         float64
	DiscountPercent  float64
	UrgencyScore     float64
	Reasoning        string
}

// How fast each category loses value; lower means more perishable.
var perishability = map[string]float64{
	"dairy":     0.9,
	"meat":      0.85,
	"seafood":   0.8,
	"produce":   0.85,
	"bakery":    0.9,
	"frozen":    0.95,
	"canned":    0.98,
	"beverages": 0.95,
	"snacks":    0.95,
	"other":     0.9,
}

// RecommendPrice derives a discounted price band from the item's expiry
// urgency and category perishability. The discount is capped at 70% and
// the recommended price never drops below 30% of the original.
func RecommendPrice(originalPrice float64, expiry *time.Time, category string, now time.Time) PriceRecommendation {
	urgency := UrgencyScore(expiry, now)

	p, ok := perishability[normalizeCategory(category)]
	if !ok {
		p = perishability["other"]
	}

	discount := urgency*0.6 + (1-p)*0.2
	if discount > 0.7 {
		discount = 0.7
	}

	recommended := originalPrice * (1 - discount)
	minPrice := originalPrice * 0.3
	maxPrice := originalPrice * (1 - discount*0.5)

	return PriceRecommendation{
		RecommendedPrice: round2(math.Max(recommended, minPrice)),
		MinPrice:         round2(minPrice),
		MaxPrice:         round2(maxPrice),
		DiscountPercent:  round1(discount * 100),
		UrgencyScore:     round2(urgency),
		Reasoning:        priceReasoning(urgency, category),
	}
}

func priceReasoning(urgency float64, category string) string {
	switch {
	case urgency >= 0.9:
		return fmt.Sprintf("Price reduced significantly - %s item expiring very soon. Quick sale recommended.", category)
	case urgency >= 0.7:
		return fmt.Sprintf("Moderate discount applied - %s item expiring within 3 days.", category)
	case urgency >= 0.4:
		return fmt.Sprintf("Light discount - %s item has about a week of freshness remaining.", category)
	default:
		return fmt.Sprintf("Minimal discount - %s item still has good shelf life.", category)
	}
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
