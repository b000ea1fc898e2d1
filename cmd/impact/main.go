// Command impact estimates the CO2 footprint of a single product from the
// command line. Useful for sanity-checking the emission tables.
package main

import (
	"flag"
	"fmt"

	"github.com/ecoplate/go-ecoplate/internal/impact"
)

func main() {
	name := flag.String("name", "", "product name (required)")
	category := flag.String("category", "", "product category")
	quantity := flag.Float64("quantity", 1, "quantity in the given unit")
	unit := flag.String("unit", "", "quantity unit (kg, g, l, ml, dozen, pcs, ...)")
	flag.Parse()

	if *name == "" {
		flag.Usage()
		return
	}

	factor := impact.EmissionFactor(*name, *category)
	kg := impact.ToKg(*quantity, *unit)
	co2 := impact.ProductCO2(factor, *quantity, *unit)
	label, _ := impact.FormatCO2(&co2)

	fmt.Printf("product:  %s\n", *name)
	fmt.Printf("factor:   %.1f kg CO2 / kg\n", factor)
	fmt.Printf("mass:     %.3f kg\n", kg)
	fmt.Printf("total:    %s (%s)\n", label, impact.BandFor(co2))
}
