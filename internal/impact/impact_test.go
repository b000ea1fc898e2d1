package impact

import (
	"math"
	"testing"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

func TestEmissionFactor_KeywordMatch(t *testing.T) {
	cases := []struct {
		name     string
		category string
		want     float64
	}{
		{"Ground Beef", "meat", 27.0},
		{"Ribeye Steak", "meat", 27.0},
		{"Chicken Breast", "meat", 6.9},
		{"Free Range Poultry", "meat", 6.9},
		{"Fresh Milk 1L", "dairy", 3.2},
		{"Cheddar Cheese", "dairy", 13.5},
		{"Jasmine Rice 5kg", "grains", 4.0},
		{"Cavendish Bananas", "produce", 0.7},
		{"Ground Coffee", "beverages", 16.5},
		{"Dark Chocolate Bar", "snacks", 18.7},
		{"Roasted Almonds", "snacks", 2.3},
	}
	for _, tc := range cases {
		if got := EmissionFactor(tc.name, tc.category); got != tc.want {
			t.Errorf("EmissionFactor(%q, %q) = %v, want %v", tc.name, tc.category, got, tc.want)
		}
	}
}

func TestEmissionFactor_CaseInsensitive(t *testing.T) {
	if got := EmissionFactor("WAGYU BEEF", "meat"); got != 27.0 {
		t.Errorf("expected 27.0, got %v", got)
	}
}

func TestEmissionFactor_FirstMatchWins(t *testing.T) {
	// "fish oil" matches both the seafood and the oils group; the seafood
	// group is scanned first.
	if got := EmissionFactor("Fish Oil Capsules", "snacks"); got != 5.4 {
		t.Errorf("expected seafood factor 5.4, got %v", got)
	}
	// "steak" also contains "tea"; meat is scanned before beverages.
	if got := EmissionFactor("Sirloin Steak", "meat"); got != 27.0 {
		t.Errorf("expected meat factor 27.0, got %v", got)
	}
}

func TestEmissionFactor_CategoryFallback(t *testing.T) {
	cases := []struct {
		category string
		want     float64
	}{
		{"meat", 15.0},
		{"dairy", 5.0},
		{"produce", 0.5},
		{"grains", 1.2},
		{"beverages", 1.0},
		{"snacks", 2.5},
	}
	for _, tc := range cases {
		if got := EmissionFactor("Mystery Protein", tc.category); got != tc.want {
			t.Errorf("EmissionFactor(Mystery Protein, %q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

func TestEmissionFactor_GlobalFallback(t *testing.T) {
	if got := EmissionFactor("Random Item", "unknown"); got != 3.0 {
		t.Errorf("expected global default 3.0, got %v", got)
	}
	if got := EmissionFactor("Random Item", ""); got != 3.0 {
		t.Errorf("expected global default 3.0 for empty category, got %v", got)
	}
}

func TestToKg(t *testing.T) {
	cases := []struct {
		quantity float64
		unit     string
		want     float64
	}{
		{2, "kg", 2},
		{500, "g", 0.5},
		{1.5, "l", 1.5},
		{250, "ml", 0.25},
		{1, "dozen", 3.6},
		{2, "pcs", 0.6},
		{3, "bottle", 0.9},
		{1, "", 0.3},
		{4, "tray", 1.2},
		{2, " KG ", 2}, // normalized: trimmed, case-insensitive
		{500, "G", 0.5},
	}
	for _, tc := range cases {
		got := ToKg(tc.quantity, tc.unit)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ToKg(%v, %q) = %v, want %v", tc.quantity, tc.unit, got, tc.want)
		}
	}
}

func TestProductCO2(t *testing.T) {
	// 27.0 kg/kg over 500 g.
	got := ProductCO2(27.0, 500, "g")
	if math.Abs(got-13.5) > 1e-9 {
		t.Errorf("expected 13.5, got %v", got)
	}
}

func TestTotalCO2(t *testing.T) {
	if got := TotalCO2(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}

	f1 := 3.2
	f2 := 27.0
	products := []models.QuantifiedProduct{
		{CO2Emission: &f1, Quantity: 1, Unit: "l"},      // 3.2
		{CO2Emission: nil, Quantity: 100, Unit: "kg"},   // skipped, not defaulted
		{CO2Emission: &f2, Quantity: 500, Unit: "g"},    // 13.5
		{CO2Emission: nil, Quantity: 2, Unit: "bottle"}, // skipped
	}

	got := TotalCO2(products)
	if math.Abs(got-16.7) > 1e-9 {
		t.Errorf("expected 16.7, got %v", got)
	}
}

func TestBandFor_Boundaries(t *testing.T) {
	cases := []struct {
		value float64
		want  Band
	}{
		{0, BandLow},
		{0.99, BandLow},
		{1.0, BandMedium}, // boundary is inclusive upward
		{2.99, BandMedium},
		{3.0, BandHigh},
		{100, BandHigh},
	}
	for _, tc := range cases {
		if got := BandFor(tc.value); got != tc.want {
			t.Errorf("BandFor(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestBandString(t *testing.T) {
	if BandLow.String() != "low" || BandMedium.String() != "medium" || BandHigh.String() != "high" {
		t.Error("unexpected band labels")
	}
}

func TestFormatCO2(t *testing.T) {
	if s, ok := FormatCO2(nil); ok || s != "" {
		t.Errorf("expected empty/false for nil, got %q/%v", s, ok)
	}

	v := 13.54
	s, ok := FormatCO2(&v)
	if !ok || s != "13.5 kg CO2" {
		t.Errorf("expected \"13.5 kg CO2\", got %q/%v", s, ok)
	}
}
