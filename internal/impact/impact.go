// Package impact is the environmental-impact estimator: emission factor
// lookup, unit-to-kilogram conversion and CO2 aggregation.
package impact

import (
	"fmt"
	"strings"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// Band buckets a CO2 value for display.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	default:
		return "high"
	}
}

// rule maps name substrings to an emission factor in kg CO2 per kg of
// product. Evaluation is strictly top to bottom, first match wins, so a
// name matching several groups (e.g. "fish oil") resolves to the earliest.
type rule struct {
	keywords []string
	factor   float64
}

// Ordered by group: meat/poultry, seafood, dairy/eggs, grains/bread,
// fruits, vegetables, beverages, snacks/processed, oils/condiments, nuts.
var emissionRules = []rule{
	// meat / poultry
	{[]string{"beef", "steak"}, 27.0},
	{[]string{"lamb", "mutton"}, 24.5},
	{[]string{"pork", "bacon", "ham"}, 12.1},
	{[]string{"chicken", "poultry"}, 6.9},
	{[]string{"duck", "turkey"}, 7.2},
	// seafood
	{[]string{"prawn", "shrimp"}, 11.8},
	{[]string{"salmon"}, 6.0},
	{[]string{"tuna"}, 6.1},
	{[]string{"fish", "seafood", "crab"}, 5.4},
	// dairy / eggs
	{[]string{"cheese"}, 13.5},
	{[]string{"butter"}, 9.0},
	{[]string{"milk"}, 3.2},
	{[]string{"yogurt", "yoghurt"}, 2.2},
	{[]string{"egg"}, 4.8},
	// grains / bread
	{[]string{"rice"}, 4.0},
	{[]string{"bread", "bun", "loaf"}, 1.6},
	{[]string{"pasta", "noodle"}, 1.4},
	{[]string{"oat", "cereal", "flour"}, 1.0},
	// fruits
	{[]string{"banana"}, 0.7},
	{[]string{"apple"}, 0.4},
	{[]string{"berry", "berries"}, 1.1},
	{[]string{"orange", "citrus"}, 0.4},
	{[]string{"fruit"}, 0.9},
	// vegetables
	{[]string{"potato"}, 0.3},
	{[]string{"tomato"}, 1.4},
	{[]string{"lettuce", "salad", "spinach"}, 0.5},
	{[]string{"vegetable", "veggie", "carrot", "broccoli"}, 0.4},
	// beverages
	{[]string{"coffee"}, 16.5},
	{[]string{"tea"}, 1.9},
	{[]string{"juice", "soda", "drink"}, 1.0},
	// snacks / processed
	{[]string{"chocolate"}, 18.7},
	{[]string{"chips", "crisps", "biscuit", "cookie"}, 2.3},
	{[]string{"candy", "sweet"}, 1.9},
	// oils / condiments
	{[]string{"oil"}, 3.3},
	{[]string{"sauce", "ketchup", "vinegar"}, 2.0},
	{[]string{"sugar"}, 1.6},
	// nuts
	{[]string{"nut", "almond", "peanut", "cashew"}, 2.3},
}

// Per-category fallback when no keyword matches the product name.
var categoryDefaults = map[string]float64{
	"meat":      15.0,
	"dairy":     5.0,
	"produce":   0.5,
	"grains":    1.2,
	"beverages": 1.0,
	"snacks":    2.5,
}

// Fallback for unrecognized categories.
const defaultFactor = 3.0

// Kilograms per unit of quantity for the recognized units. Liters map 1:1
// to kilograms on purpose; no density table exists anywhere in the system.
var unitToKg = map[string]float64{
	"kg":    1,
	"g":     0.001,
	"l":     1,
	"ml":    0.001,
	"dozen": 12 * pieceKg,
}

// Assumed mass of a single piece-like unit (pcs, pack, bottle, ...).
const pieceKg = 0.3

// EmissionFactor resolves the kg-CO2-per-kg factor for a product. The
// lower-cased name is scanned against the ordered rule table; on no match
// the category default applies, then the global default.
func EmissionFactor(name, category string) float64 {
	lower := strings.ToLower(name)
	for _, r := range emissionRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.factor
			}
		}
	}
	if f, ok := categoryDefaults[strings.ToLower(strings.TrimSpace(category))]; ok {
		return f
	}
	return defaultFactor
}

// ToKg converts a (quantity, unit) pair to kilograms. Unknown units,
// including the empty string, fall back to the fixed per-piece mass.
func ToKg(quantity float64, unit string) float64 {
	if f, ok := unitToKg[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return quantity * f
	}
	return quantity * pieceKg
}

// ProductCO2 returns the total CO2 for a quantity of product given its
// per-kilogram factor.
func ProductCO2(factor, quantity float64, unit string) float64 {
	return factor * ToKg(quantity, unit)
}

// TotalCO2 sums ProductCO2 over all products with a known factor. Products
// with a nil factor contribute nothing; they are never defaulted here.
func TotalCO2(products []models.QuantifiedProduct) float64 {
	var total float64
	for _, p := range products {
		if p.CO2Emission == nil {
			continue
		}
		total += ProductCO2(*p.CO2Emission, p.Quantity, p.Unit)
	}
	return total
}

// BandFor buckets a CO2 value: below 1 kg is low, 1 up to 3 is medium,
// 3 and above is high.
func BandFor(value float64) Band {
	switch {
	case value < 1:
		return BandLow
	case value < 3:
		return BandMedium
	default:
		return BandHigh
	}
}

// FormatCO2 renders a CO2 value for display. The second return is false
// when v is nil, mirroring the null-in null-out contract of the app.
func FormatCO2(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return fmt.Sprintf("%.1f kg CO2", *v), true
}
