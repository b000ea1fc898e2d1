package models

import "time"

// Listing is a marketplace item as stored by the app. Location holds the
// raw location string in whatever format the client saved it (address|pair,
// bare pair, or a map URL); Coordinate and DistanceKm are populated by the
// proximity engine, never persisted.
type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Category    string
	Price       float64
	Quantity    float64
	Unit        string
	Location    string
	Coordinate  *Coordinate
	DistanceKm  *float64 // kilometers from a query origin, nil when unknown
	ExpiryDate  *time.Time
	CreatedAt   time.Time
}

// QuantifiedProduct is the input to CO2 aggregation. A nil CO2Emission
// means the factor is unknown; aggregation skips it rather than defaulting.
type QuantifiedProduct struct {
	CO2Emission *float64
	Quantity    float64
	Unit        string
}
