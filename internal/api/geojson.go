package api

import (
	"github.com/ecoplate/go-ecoplate/internal/geo"
	"github.com/ecoplate/go-ecoplate/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"` // null when the listing has no parseable location
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(listings []models.Listing) FeatureCollection {
	features := make([]Feature, 0, len(listings))

	for _, l := range listings {
		var g *Geometry
		if l.Coordinate != nil {
			g = &Geometry{
				Type:        "Point",
				Coordinates: []float64{l.Coordinate.Longitude, l.Coordinate.Latitude},
			}
		}

		props := map[string]any{
			"id":       l.ID,
			"title":    l.Title,
			"category": l.Category,
			"price":    l.Price,
			"quantity": l.Quantity,
			"unit":     l.Unit,
			"distance": geo.FormatDistance(l.DistanceKm),
		}
		if l.DistanceKm != nil {
			props["distance_km"] = *l.DistanceKm
		}
		if l.SellerID != "" {
			props["seller_id"] = l.SellerID
		}
		if l.ExpiryDate != nil {
			props["expiry_date"] = *l.ExpiryDate
		}

		features = append(features, Feature{
			Type:       "Feature",
			Geometry:   g,
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
