package domain

import "strings"

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// NormalizeAddress collapses whitespace so addresses can be used as consistent keys.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
