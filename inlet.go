package spreader

import (
	"math"

	"golang.org/x/exp/rand"
)

// EntryPoint is a granule's arrival on the disk in vane-local polar form.
// RP is the coordinate along the vane, RV the radial distance from the disk axis,
// HP the angular position. Radial velocity starts at zero.
type EntryPoint struct {
	RP float64
	RV float64
	HP float64
}

// InletSampler draws entry points uniformly inside the inlet orifice, a disk of
// radius Radius centered (CX, CY) from the disk axis.
type InletSampler struct {
	Radius      float64
	CX, CY      float64
	PitchRadius float64
}

// NewInletSampler builds the sampler for a machine.
func NewInletSampler(m Machine) InletSampler {
	return InletSampler{Radius: m.OrificeRadius, CX: m.OrificeX, CY: m.OrificeY, PitchRadius: m.PitchRadius}
}

// Sample draws one entry point. A GeometryError is returned when the drawn point
// falls inside the vane pitch circle, where the vane cannot hold a granule.
func (s InletSampler) Sample(rng *rand.Rand) (EntryPoint, error) {
	r := s.Radius * math.Sqrt(rng.Float64())
	th := 2 * math.Pi * rng.Float64()
	x := s.CX + r*math.Cos(th)
	y := s.CY + r*math.Sin(th)
	rv := math.Hypot(x, y)
	if rv < s.PitchRadius {
		return EntryPoint{}, GeometryError{RV: rv, PitchRadius: s.PitchRadius}
	}
	ap := math.Asin(s.PitchRadius / rv)
	return EntryPoint{RP: rv * math.Cos(ap), RV: rv, HP: math.Atan2(y, x)}, nil
}
