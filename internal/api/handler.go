package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecoplate/go-ecoplate/internal/config"
	"github.com/ecoplate/go-ecoplate/internal/geo"
	"github.com/ecoplate/go-ecoplate/internal/impact"
	"github.com/ecoplate/go-ecoplate/internal/models"
	"github.com/ecoplate/go-ecoplate/internal/recommend"
	"github.com/ecoplate/go-ecoplate/internal/repository"
)

type Handler struct {
	repo   repository.ListingRepository
	search config.SearchConfig
	now    func() time.Time
}

func NewHandler(repo repository.ListingRepository, search config.SearchConfig) *Handler {
	return &Handler{
		repo:   repo,
		search: search,
		now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/api/listings", h.getListings)
	r.POST("/api/impact/estimate", h.estimateImpact)
	r.POST("/api/impact/total", h.totalImpact)
	r.POST("/api/recommendations/price", h.recommendPrice)
	r.POST("/api/recommendations/urgency", h.calculateUrgency)
	r.POST("/api/recommendations/seller/notifications", h.sellerNotifications)
	r.POST("/api/recommendations/buyer/matches", h.buyerMatches)
	r.POST("/api/recommendations/similar", h.similarListings)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getListings serves the marketplace search. Repository filters narrow the
// result set first; when an origin is supplied the proximity engine filters
// and orders by distance. Output is GeoJSON so the map screen can render
// it directly.
func (h *Handler) getListings(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // default if limit param not supplied
	}

	if cat := c.Query("category"); cat != "" {
		filter.Category = &cat
	}
	if mp := c.Query("max_price"); mp != "" {
		if price, err := strconv.ParseFloat(mp, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	listings, err := h.repo.ListListings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch listings",
		})
		return
	}

	// Stored location strings are heterogeneous; resolve them here so the
	// proximity engine only ever sees parsed coordinates.
	for i := range listings {
		listings[i].Coordinate = geo.ParseCoordinates(listings[i].Location)
	}

	if origin, ok := h.parseOrigin(c); ok {
		radius := h.search.DefaultRadiusKm
		if r := c.Query("radius_km"); r != "" {
			if v, err := strconv.ParseFloat(r, 64); err == nil && v > 0 {
				radius = v
			}
		}
		if radius > h.search.MaxRadiusKm {
			radius = h.search.MaxRadiusKm
		}
		listings = geo.FilterListingsByRadius(listings, origin, radius)
	}

	fc := toGeoJSON(listings)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) parseOrigin(c *gin.Context) (models.Coordinate, bool) {
	latS, lngS := c.Query("lat"), c.Query("lng")
	if latS == "" || lngS == "" {
		return models.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return models.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(lngS, 64)
	if err != nil {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Latitude: lat, Longitude: lng}, true
}

type estimateRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (h *Handler) estimateImpact(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	factor := impact.EmissionFactor(req.Name, req.Category)
	kg := impact.ToKg(req.Quantity, req.Unit)
	co2 := impact.ProductCO2(factor, req.Quantity, req.Unit)
	label, _ := impact.FormatCO2(&co2)

	c.JSON(http.StatusOK, gin.H{
		"factor_kg_per_kg": factor,
		"mass_kg":          kg,
		"co2_kg":           co2,
		"band":             impact.BandFor(co2).String(),
		"label":            label,
	})
}

type totalRequest struct {
	Products []struct {
		CO2Emission *float64 `json:"co2_emission"`
		Quantity    float64  `json:"quantity"`
		Unit        string   `json:"unit"`
	} `json:"products"`
}

func (h *Handler) totalImpact(c *gin.Context) {
	var req totalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	products := make([]models.QuantifiedProduct, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, models.QuantifiedProduct{
			CO2Emission: p.CO2Emission,
			Quantity:    p.Quantity,
			Unit:        p.Unit,
		})
	}

	total := impact.TotalCO2(products)
	label, _ := impact.FormatCO2(&total)

	c.JSON(http.StatusOK, gin.H{
		"total_co2_kg": total,
		"band":         impact.BandFor(total).String(),
		"label":        label,
	})
}

type priceRequest struct {
	OriginalPrice float64 `json:"original_price"`
	ExpiryDate    string  `json:"expiry_date"`
	Category      string  `json:"category"`
}

func (h *Handler) recommendPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.OriginalPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "original_price is required"})
		return
	}

	category := req.Category
	if category == "" {
		category = "other"
	}

	rec := recommend.RecommendPrice(req.OriginalPrice, parseExpiry(req.ExpiryDate), category, h.now())

	c.JSON(http.StatusOK, gin.H{
		"recommended_price":   rec.RecommendedPrice,
		"min_price":           rec.MinPrice,
		"max_price":           rec.MaxPrice,
		"discount_percentage": rec.DiscountPercent,
		"urgency_score":       rec.UrgencyScore,
		"reasoning":           rec.Reasoning,
	})
}

type urgencyRequest struct {
	Items []struct {
		ID         string `json:"id"`
		ExpiryDate string `json:"expiry_date"`
	} `json:"items"`
}

func (h *Handler) calculateUrgency(c *gin.Context) {
	var req urgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items array is required"})
		return
	}

	now := h.now()
	results := make([]gin.H, 0, len(req.Items))
	for _, item := range req.Items {
		score := recommend.UrgencyScore(parseExpiry(item.ExpiryDate), now)
		results = append(results, gin.H{
			"id":            item.ID,
			"expiry_date":   item.ExpiryDate,
			"urgency_score": score,
			"urgency_level": recommend.UrgencyLevel(score),
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type sellerNotificationsRequest struct {
	Products []struct {
		ProductID   string `json:"product_id"`
		ProductName string `json:"product_name"`
		Category    string `json:"category"`
		ExpiryDate  string `json:"expiry_date"`
	} `json:"products"`
}

func (h *Handler) sellerNotifications(c *gin.Context) {
	var req sellerNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "products array is required"})
		return
	}

	products := make([]recommend.InventoryProduct, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, recommend.InventoryProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.Category,
			Expiry:      parseExpiry(p.ExpiryDate),
		})
	}

	now := h.now()
	notifications := recommend.SellerNotifications(products, now)

	c.JSON(http.StatusOK, gin.H{
		"notifications": toNotificationJSON(notifications),
		"count":         len(notifications),
		"generated_at":  now.UTC().Format(time.RFC3339),
	})
}

type buyerMatchesRequest struct {
	Preferences *struct {
		PreferredCategories []string `json:"preferred_categories"`
		MaxPrice            *float64 `json:"max_price"`
		MaxDistanceKm       *float64 `json:"max_distance_km"`
		MinDaysUntilExpiry  int      `json:"min_days_until_expiry"`
	} `json:"preferences"`
	Listings []struct {
		ListingID  string   `json:"listing_id"`
		Title      string   `json:"title"`
		Price      float64  `json:"price"`
		Category   string   `json:"category"`
		ExpiryDate string   `json:"expiry_date"`
		DistanceKm *float64 `json:"distance_km"`
	} `json:"listings"`
	Limit int `json:"limit"`
}

func (h *Handler) buyerMatches(c *gin.Context) {
	var req buyerMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Preferences == nil || len(req.Listings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferences and listings are required"})
		return
	}

	prefs := recommend.BuyerPreferences{
		PreferredCategories: req.Preferences.PreferredCategories,
		MaxPrice:            req.Preferences.MaxPrice,
		MaxDistanceKm:       req.Preferences.MaxDistanceKm,
		MinDaysUntilExpiry:  req.Preferences.MinDaysUntilExpiry,
	}

	listings := make([]models.Listing, 0, len(req.Listings))
	for _, l := range req.Listings {
		listings = append(listings, models.Listing{
			ID:         l.ListingID,
			Title:      l.Title,
			Price:      l.Price,
			Category:   l.Category,
			ExpiryDate: parseExpiry(l.ExpiryDate),
			DistanceKm: l.DistanceKm,
		})
	}

	now := h.now()
	matches := recommend.BuyerMatches(prefs, listings, req.Limit, now)

	results := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		results = append(results, gin.H{
			"listing_id":   m.Listing.ID,
			"title":        m.Listing.Title,
			"match_score":  m.Score,
			"notification": notificationJSON(m.Notification),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":      results,
		"count":        len(results),
		"generated_at": now.UTC().Format(time.RFC3339),
	})
}

type similarListingPayload struct {
	ListingID   string   `json:"listing_id"`
	SellerID    string   `json:"seller_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	ExpiryDate  string   `json:"expiry_date"`
	DistanceKm  *float64 `json:"distance_km"`
}

type similarRequest struct {
	Target     *similarListingPayload  `json:"target"`
	Candidates []similarListingPayload `json:"candidates"`
	Limit      int                     `json:"limit"`
}

func (h *Handler) similarListings(c *gin.Context) {
	var req similarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Target == nil || len(req.Candidates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target and candidates are required"})
		return
	}

	candidates := make([]models.Listing, 0, len(req.Candidates))
	for _, p := range req.Candidates {
		candidates = append(candidates, similarPayloadToListing(p))
	}

	now := h.now()
	similar := recommend.FindSimilar(similarPayloadToListing(*req.Target), candidates, req.Limit, now)

	results := make([]gin.H, 0, len(similar))
	for _, s := range similar {
		results = append(results, gin.H{
			"listing_id":       s.Listing.ID,
			"title":            s.Listing.Title,
			"similarity_score": s.SimilarityScore,
			"match_factors": gin.H{
				"category":  s.MatchFactors.Category,
				"text":      s.MatchFactors.Text,
				"price":     s.MatchFactors.Price,
				"distance":  s.MatchFactors.Distance,
				"freshness": s.MatchFactors.Freshness,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"similar":      results,
		"count":        len(results),
		"generated_at": now.UTC().Format(time.RFC3339),
	})
}

func similarPayloadToListing(p similarListingPayload) models.Listing {
	return models.Listing{
		ID:          p.ListingID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ExpiryDate:  parseExpiry(p.ExpiryDate),
		DistanceKm:  p.DistanceKm,
	}
}

func toNotificationJSON(ns []recommend.Notification) []gin.H {
	out := make([]gin.H, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationJSON(n))
	}
	return out
}

func notificationJSON(n recommend.Notification) gin.H {
	out := gin.H{
		"id":       n.ID,
		"type":     n.Type,
		"priority": n.Priority,
		"message":  n.Message,
	}
	if n.ProductID != "" {
		out["product_id"] = n.ProductID
		out["product_name"] = n.ProductName
	}
	if n.ListingID != "" {
		out["listing_id"] = n.ListingID
	}
	if n.Action != "" {
		out["action"] = n.Action
		out["suggested_discount"] = n.SuggestedDiscount
	}
	return out
}

// parseExpiry accepts RFC 3339 timestamps and bare dates; anything else is
// treated as "no expiry".
func parseExpiry(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
