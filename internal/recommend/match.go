package recommend

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// BuyerPreferences describes what a buyer is looking for. Nil pointer
// fields mean "no preference" and earn neutral half-credit in scoring.
type BuyerPreferences struct {
	PreferredCategories []string
	MaxPrice            *float64
	MaxDistanceKm       *float64 // defaults to 10 km
	MinDaysUntilExpiry  int
}

// Match pairs a listing with its preference score and a ready-to-send
// notification.
type Match struct {
	Listing      models.Listing
	Score        float64
	Notification Notification
}

// Scoring weights; they sum to 1.
const (
	weightCategory  = 0.3
	weightPrice     = 0.25
	weightDistance  = 0.25
	weightFreshness = 0.2
)

const (
	defaultMaxDistanceKm = 10.0
	assumedListingDist   = 5.0 // when the listing has no computed distance
	matchScoreThreshold  = 0.3
	defaultMatchLimit    = 10
)

// MatchScore rates how well a listing fits the buyer's preferences,
// returning 0..1.
func MatchScore(l models.Listing, prefs BuyerPreferences, now time.Time) float64 {
	var score float64

	if len(prefs.PreferredCategories) > 0 {
		for _, c := range prefs.PreferredCategories {
			if strings.EqualFold(c, l.Category) {
				score += weightCategory
				break
			}
		}
	} else {
		score += weightCategory * 0.5
	}

	if prefs.MaxPrice != nil && l.Price > 0 {
		if l.Price <= *prefs.MaxPrice {
			// Bigger savings relative to budget score higher.
			ratio := l.Price / *prefs.MaxPrice
			score += weightPrice * (1 - ratio + 0.5)
		}
	} else {
		score += weightPrice * 0.5
	}

	maxDist := defaultMaxDistanceKm
	if prefs.MaxDistanceKm != nil {
		maxDist = *prefs.MaxDistanceKm
	}
	dist := assumedListingDist
	if l.DistanceKm != nil {
		dist = *l.DistanceKm
	}
	if dist <= maxDist {
		score += weightDistance * (1 - dist/maxDist)
	}

	if l.ExpiryDate != nil {
		days := math.Floor(l.ExpiryDate.Sub(now).Hours() / 24)
		if days >= float64(prefs.MinDaysUntilExpiry) {
			score += weightFreshness * math.Min(days/7, 1)
		}
	}

	return math.Min(score, 1.0)
}

// BuyerMatches ranks the listings that clear the score threshold,
// best first, capped at limit (default 10).
func BuyerMatches(prefs BuyerPreferences, listings []models.Listing, limit int, now time.Time) []Match {
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	matches := make([]Match, 0, len(listings))
	for _, l := range listings {
		score := MatchScore(l, prefs, now)
		if score < matchScoreThreshold {
			continue
		}
		matches = append(matches, Match{
			Listing:      l,
			Score:        round2(score),
			Notification: buyerNotification(l, score, now),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
