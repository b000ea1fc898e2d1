// Package geo is the proximity engine: pure functions for distance
// computation, coordinate string parsing and radius filtering of listings.
package geo

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

const earthRadiusKm = 6371.0

// Singapore bounding box used as a domain sanity check for user-supplied
// coordinates; not a geodesic boundary.
const (
	sgLatMin = 1.15
	sgLatMax = 1.48
	sgLngMin = 103.6
	sgLngMax = 104.1
)

var (
	// decimal pair: "1.3521,103.8198" (optional sign, optional fraction)
	pairRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)
	// map provider URL fragment: "...@1.3521,103.8198,15z..."
	urlRe = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Distance returns the haversine great-circle distance between a and b in
// kilometers, rounded to 2 decimals. Symmetric, zero for identical points.
func Distance(a, b models.Coordinate) float64 {
	lat1 := degToRad(a.Latitude)
	lat2 := degToRad(b.Latitude)
	dLat := degToRad(b.Latitude - a.Latitude)
	dLng := degToRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// Floating-point drift can push h just outside [0,1] for antipodal or
	// near-identical points, which would NaN the inverse trig step.
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return round2(earthRadiusKm * c)
}

// ParseCoordinates extracts a coordinate from the mixed location formats
// the app stores. Formats are tried in priority order, first match wins:
//
//  1. "address|lat,lng" - everything before the pipe is discarded
//  2. "lat,lng"
//  3. a map provider URL containing an "@lat,lng" fragment
//
// Returns nil for empty input, unmatched input, or non-finite numbers.
// Malformed input is never an error, just "no location".
func ParseCoordinates(raw string) *models.Coordinate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if i := strings.IndexByte(raw, '|'); i >= 0 {
		if c := parsePair(raw[i+1:]); c != nil {
			return c
		}
	}

	if c := parsePair(raw); c != nil {
		return c
	}

	if m := urlRe.FindStringSubmatch(raw); m != nil {
		return newCoordinate(m[1], m[2])
	}

	return nil
}

func parsePair(s string) *models.Coordinate {
	m := pairRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return newCoordinate(m[1], m[2])
}

func newCoordinate(latStr, lngStr string) *models.Coordinate {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsInf(lat, 0) || math.IsNaN(lat) {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsInf(lng, 0) || math.IsNaN(lng) {
		return nil
	}
	return &models.Coordinate{Latitude: lat, Longitude: lng}
}

// FilterListingsByRadius returns the listings within radiusKm of origin
// (inclusive), ordered by ascending distance. Listings without a coordinate
// are always retained with a nil DistanceKm and sort after every listing
// with a known distance; their relative order is unspecified. The input
// slice is never mutated.
func FilterListingsByRadius(listings []models.Listing, origin models.Coordinate, radiusKm float64) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Coordinate == nil {
			l.DistanceKm = nil
			out = append(out, l)
			continue
		}
		d := Distance(origin, *l.Coordinate)
		if d <= radiusKm {
			l.DistanceKm = &d
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DistanceKm, out[j].DistanceKm
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})

	return out
}

// FormatDistance renders a distance for display: meters below 1 km,
// one-decimal kilometers otherwise, "Distance unknown" for nil.
func FormatDistance(d *float64) string {
	if d == nil {
		return "Distance unknown"
	}
	if *d < 1 {
		return fmt.Sprintf("%dm away", int(math.Round(*d*1000)))
	}
	return fmt.Sprintf("%.1fkm away", *d)
}

// IsValidSingaporeCoordinates reports whether c falls inside the Singapore
// bounding box.
func IsValidSingaporeCoordinates(c models.Coordinate) bool {
	return c.Latitude >= sgLatMin && c.Latitude <= sgLatMax &&
		c.Longitude >= sgLngMin && c.Longitude <= sgLngMax
}
