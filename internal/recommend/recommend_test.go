package recommend

import (
	"testing"
	"time"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

var testNow = time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

func expiryIn(days int) *time.Time {
	t := testNow.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

func TestUrgencyScore_Tiers(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{-2, 1.0}, // expired
		{0, 1.0},
		{1, 0.95},
		{3, 0.8},
		{7, 0.5},
		{14, 0.3},
		{30, 0.1},
	}
	for _, tc := range cases {
		if got := UrgencyScore(expiryIn(tc.days), testNow); got != tc.want {
			t.Errorf("UrgencyScore(+%dd) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestUrgencyScore_NilExpiry(t *testing.T) {
	if got := UrgencyScore(nil, testNow); got != 0.5 {
		t.Errorf("expected neutral 0.5 for nil expiry, got %v", got)
	}
}

func TestUrgencyLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "critical"},
		{0.9, "critical"},
		{0.8, "high"},
		{0.5, "medium"},
		{0.1, "low"},
	}
	for _, tc := range cases {
		if got := UrgencyLevel(tc.score); got != tc.want {
			t.Errorf("UrgencyLevel(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRecommendPrice_ExpiringSoon(t *testing.T) {
	rec := RecommendPrice(10.00, expiryIn(0), "dairy", testNow)

	// Expired item: urgency 1.0 -> discount 0.6 + (1-0.9)*0.2 = 0.62.
	if rec.DiscountPercent != 62.0 {
		t.Errorf("expected 62%% discount, got %v", rec.DiscountPercent)
	}
	if rec.RecommendedPrice != 3.8 {
		t.Errorf("expected recommended price 3.80, got %v", rec.RecommendedPrice)
	}
	if rec.MinPrice != 3.0 {
		t.Errorf("expected floor 3.00, got %v", rec.MinPrice)
	}
	if rec.UrgencyScore != 1.0 {
		t.Errorf("expected urgency 1.0, got %v", rec.UrgencyScore)
	}
}

func TestRecommendPrice_Bounds(t *testing.T) {
	for _, days := range []int{-1, 0, 1, 3, 7, 14, 30} {
		rec := RecommendPrice(20.00, expiryIn(days), "seafood", testNow)

		if rec.RecommendedPrice < rec.MinPrice-1e-9 {
			t.Errorf("days=%d: recommended %v below floor %v", days, rec.RecommendedPrice, rec.MinPrice)
		}
		if rec.RecommendedPrice > rec.MaxPrice+1e-9 {
			t.Errorf("days=%d: recommended %v above max %v", days, rec.RecommendedPrice, rec.MaxPrice)
		}
		if rec.DiscountPercent > 70.0 {
			t.Errorf("days=%d: discount %v above cap", days, rec.DiscountPercent)
		}
		if rec.MinPrice != 6.0 {
			t.Errorf("days=%d: expected floor at 30%% of original, got %v", days, rec.MinPrice)
		}
	}
}

func TestRecommendPrice_UnknownCategory(t *testing.T) {
	rec := RecommendPrice(10.00, expiryIn(30), "alien", testNow)
	// Falls back to the "other" perishability; urgency 0.1 -> discount 0.08.
	if rec.DiscountPercent != 8.0 {
		t.Errorf("expected 8%% discount, got %v", rec.DiscountPercent)
	}
}

func TestMatchScore_PerfectMatch(t *testing.T) {
	dist := 0.0
	maxPrice := 20.0
	maxDist := 10.0
	l := models.Listing{
		Category:   "dairy",
		Price:      0.01,
		DistanceKm: &dist,
		ExpiryDate: expiryIn(14),
	}
	prefs := BuyerPreferences{
		PreferredCategories: []string{"Dairy"},
		MaxPrice:            &maxPrice,
		MaxDistanceKm:       &maxDist,
	}

	score := MatchScore(l, prefs, testNow)
	if score != 1.0 {
		t.Errorf("expected capped score 1.0, got %v", score)
	}
}

func TestMatchScore_OverBudgetGetsNoPriceCredit(t *testing.T) {
	maxPrice := 5.0
	base := models.Listing{Category: "meat", Price: 4.0}
	over := models.Listing{Category: "meat", Price: 6.0}
	prefs := BuyerPreferences{
		PreferredCategories: []string{"meat"},
		MaxPrice:            &maxPrice,
	}

	if MatchScore(over, prefs, testNow) >= MatchScore(base, prefs, testNow) {
		t.Error("expected over-budget listing to score lower")
	}
}

func TestMatchScore_NeutralWithoutPreferences(t *testing.T) {
	l := models.Listing{Category: "produce", Price: 3.0}
	score := MatchScore(l, BuyerPreferences{}, testNow)

	// Half credit for category and price, distance credit from the
	// assumed 5 km against the default 10 km, no freshness credit.
	want := 0.3*0.5 + 0.25*0.5 + 0.25*0.5
	if diff := score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected %v, got %v", want, score)
	}
}

func TestBuyerMatches_ThresholdAndOrder(t *testing.T) {
	dNear := 1.0
	dFar := 9.0
	maxPrice := 10.0
	listings := []models.Listing{
		{ID: "weak", Title: "Far Item", Category: "snacks", Price: 9.99, DistanceKm: &dFar},
		{ID: "strong", Title: "Milk", Category: "dairy", Price: 2.0, DistanceKm: &dNear, ExpiryDate: expiryIn(10)},
	}
	prefs := BuyerPreferences{
		PreferredCategories: []string{"dairy"},
		MaxPrice:            &maxPrice,
	}

	matches := BuyerMatches(prefs, listings, 0, testNow)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Listing.ID != "strong" {
		t.Errorf("expected best match first, got %s", matches[0].Listing.ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Error("matches not sorted by descending score")
		}
	}
	for _, m := range matches {
		if m.Score < 0.3 {
			t.Errorf("match %s below threshold: %v", m.Listing.ID, m.Score)
		}
		if m.Notification.Type != "match_found" || m.Notification.ListingID != m.Listing.ID {
			t.Errorf("malformed notification: %+v", m.Notification)
		}
	}
}

func TestBuyerMatches_Limit(t *testing.T) {
	d := 1.0
	maxPrice := 10.0
	listings := make([]models.Listing, 15)
	for i := range listings {
		listings[i] = models.Listing{
			ID:         string(rune('a' + i)),
			Title:      "Item",
			Category:   "dairy",
			Price:      2.0,
			DistanceKm: &d,
		}
	}
	prefs := BuyerPreferences{PreferredCategories: []string{"dairy"}, MaxPrice: &maxPrice}

	if got := len(BuyerMatches(prefs, listings, 5, testNow)); got != 5 {
		t.Errorf("expected 5 matches, got %d", got)
	}
	// Default limit is 10.
	if got := len(BuyerMatches(prefs, listings, 0, testNow)); got != 10 {
		t.Errorf("expected 10 matches with default limit, got %d", got)
	}
}

func TestSellerNotifications(t *testing.T) {
	products := []InventoryProduct{
		{ProductID: "p1", ProductName: "Lettuce", Expiry: expiryIn(6)},  // low
		{ProductID: "p2", ProductName: "Milk", Expiry: expiryIn(0)},     // high
		{ProductID: "p3", ProductName: "Rice", Expiry: expiryIn(60)},    // none
		{ProductID: "p4", ProductName: "Yogurt", Expiry: expiryIn(2)},   // medium
	}

	got := SellerNotifications(products, testNow)
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Priority != "high" || got[0].ProductID != "p2" {
		t.Errorf("expected high-priority notification first, got %+v", got[0])
	}
	if got[1].Priority != "medium" || got[2].Priority != "low" {
		t.Errorf("expected priority order high/medium/low, got %s/%s", got[1].Priority, got[2].Priority)
	}
	if got[0].Type != "critical_expiry" || got[0].SuggestedDiscount != 50 {
		t.Errorf("unexpected critical notification: %+v", got[0])
	}
	for _, n := range got {
		if n.ID == "" {
			t.Error("expected generated notification ID")
		}
	}
}
