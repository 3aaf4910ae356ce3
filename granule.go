package spreader

import "math"

// BlendComponent describes one constituent of a fertilizer blend. Immutable over a
// run; Fraction is the component's share of the total injected mass.
type BlendComponent struct {
	Name       string
	Density    float64 // kg/m³
	Sphericity float64 // (0,1], drag correlation only
	Fraction   float64 // mass fraction of the blend, sums to 1 over the blend
}

// Granule is a single fertilizer particle. It is created by the population
// generator and its landing coordinates are filled in at the end of its flight.
type Granule struct {
	Component  string
	Diameter   float64 // m
	Density    float64 // kg/m³
	Sphericity float64
	Mass       float64 // kg, derived
	Area       float64 // m², frontal, derived
	X, Y       float64 // m, landing point, set after flight
}

// NewGranule derives mass and frontal area from the diameter.
// The mass uses a π/3 volume coefficient as in the reference analytical spread
// model, not the π/6 of an exact sphere. Sphericity deliberately does not enter
// the frontal area, only the drag correlation.
func NewGranule(c BlendComponent, diameter float64) Granule {
	return Granule{
		Component:  c.Name,
		Diameter:   diameter,
		Density:    c.Density,
		Sphericity: c.Sphericity,
		Mass:       c.Density * (math.Pi / 3) * diameter * diameter * diameter,
		Area:       math.Pi * (diameter / 2) * (diameter / 2),
	}
}
