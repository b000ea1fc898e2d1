package models

// Coordinate is an immutable geographic point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}
