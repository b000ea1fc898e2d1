package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// Similarity scoring weights; they sum to 1.
const (
	simWeightCategory  = 0.3
	simWeightText      = 0.25
	simWeightPrice     = 0.2
	simWeightDistance  = 0.15
	simWeightFreshness = 0.1
)

const (
	similarityThreshold = 0.5
	defaultSimilarLimit = 5
	priceTolerance      = 0.5 // fraction of the target price at which the score reaches zero
	freshnessWindowDays = 7.0
)

// Categories close enough to substitute for each other.
var relatedCategories = map[string][]string{
	"produce":   {"frozen", "canned"},
	"meat":      {"seafood", "frozen"},
	"seafood":   {"meat", "frozen"},
	"frozen":    {"produce", "meat", "seafood"},
	"canned":    {"produce", "pantry"},
	"pantry":    {"canned"},
	"bakery":    {"snacks"},
	"snacks":    {"bakery"},
	"dairy":     {"beverages"},
	"beverages": {"dairy"},
}

// MatchFactors is the per-factor breakdown behind a similarity score.
type MatchFactors struct {
	Category  float64
	Text      float64
	Price     float64
	Distance  float64
	Freshness float64
}

// SimilarListing pairs a candidate with its overall similarity and the
// factor breakdown that produced it.
type SimilarListing struct {
	Listing         models.Listing
	SimilarityScore float64
	MatchFactors    MatchFactors
}

// CategoryScore rates category closeness: 1 for the same category, 0.5
// for related ones, 0 otherwise. A missing category on either side is
// neutral (0.5). Matching is case-insensitive.
func CategoryScore(target, candidate string) float64 {
	t, c := normalizeCategory(target), normalizeCategory(candidate)
	if t == "" || c == "" {
		return 0.5
	}
	if t == c {
		return 1.0
	}
	for _, rel := range relatedCategories[t] {
		if rel == c {
			return 0.5
		}
	}
	return 0
}

// PriceScore falls off linearly from 1 at equal prices to 0 once the
// candidate is 50% away from the target price. Unknown prices are
// neutral (0.5).
func PriceScore(target, candidate float64) float64 {
	if target <= 0 || candidate <= 0 {
		return 0.5
	}
	diff := math.Abs(target-candidate) / target
	return math.Max(0, 1-diff/priceTolerance)
}

// DistanceScore falls off linearly to 0 at maxDistanceKm. A nil distance
// is neutral (0.5).
func DistanceScore(distanceKm *float64, maxDistanceKm float64) float64 {
	if distanceKm == nil {
		return 0.5
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = defaultMaxDistanceKm
	}
	return math.Max(0, 1-*distanceKm/maxDistanceKm)
}

// FreshnessScore compares days-until-expiry, reaching 0 at a 7-day gap.
// An unknown expiry on either side is neutral (0.5).
func FreshnessScore(targetDays, candidateDays *int) float64 {
	if targetDays == nil || candidateDays == nil {
		return 0.5
	}
	gap := math.Abs(float64(*targetDays - *candidateDays))
	return math.Max(0, 1-gap/freshnessWindowDays)
}

var similarTokens = regexp.MustCompile(`[a-z0-9]+`)

// TextSimilarity is the cosine similarity of term-frequency vectors built
// from lowercased word tokens of the two texts. Texts with no tokens in
// common, or no tokens at all, score 0.
func TextSimilarity(a, b string) float64 {
	va, vb := termFrequencies(a), termFrequencies(b)

	var dot, normA, normB float64
	for term, fa := range va {
		dot += fa * vb[term]
		normA += fa * fa
	}
	for _, fb := range vb {
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termFrequencies(s string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range similarTokens.FindAllString(strings.ToLower(s), -1) {
		freq[tok]++
	}
	return freq
}

// FindSimilar ranks candidates by similarity to the target listing,
// skipping the target itself and anything from the same seller. Only
// candidates scoring at least 0.5 are returned, best first, capped at
// limit (default 5).
func FindSimilar(target models.Listing, candidates []models.Listing, limit int, now time.Time) []SimilarListing {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	targetDays := daysUntil(target.ExpiryDate, now)
	targetText := target.Title + " " + target.Description

	results := make([]SimilarListing, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == target.ID {
			continue
		}
		if target.SellerID != "" && cand.SellerID == target.SellerID {
			continue
		}

		factors := MatchFactors{
			Category:  CategoryScore(target.Category, cand.Category),
			Text:      TextSimilarity(targetText, cand.Title+" "+cand.Description),
			Price:     PriceScore(target.Price, cand.Price),
			Distance:  DistanceScore(cand.DistanceKm, defaultMaxDistanceKm),
			Freshness: FreshnessScore(targetDays, daysUntil(cand.ExpiryDate, now)),
		}

		score := factors.Category*simWeightCategory +
			factors.Text*simWeightText +
			factors.Price*simWeightPrice +
			factors.Distance*simWeightDistance +
			factors.Freshness*simWeightFreshness
		if score < similarityThreshold {
			continue
		}

		results = append(results, SimilarListing{
			Listing:         cand,
			SimilarityScore: round2(score),
			MatchFactors: MatchFactors{
				Category:  round2(factors.Category),
				Text:      round2(factors.Text),
				Price:     round2(factors.Price),
				Distance:  round2(factors.Distance),
				Freshness: round2(factors.Freshness),
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// daysUntil floors the whole days between now and expiry; nil when the
// expiry is unknown.
func daysUntil(expiry *time.Time, now time.Time) *int {
	if expiry == nil {
		return nil
	}
	d := int(math.Floor(expiry.Sub(now).Hours() / 24))
	return &d
}
