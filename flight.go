package spreader

import "math"

// defaultFlightSteps bounds the ballistic integration (60 s at the 1 ms default
// step); a granule still airborne after that is numerically suspect.
const defaultFlightSteps = 60000

// FlightIntegrator integrates drag-affected projectile motion from the launch
// state to ground impact with a fixed-step semi-implicit Euler scheme.
type FlightIntegrator struct {
	AirDensity   float64 // kg/m³
	AirViscosity float64 // Pa·s
	Gravity      float64 // m/s²
	Step         float64 // s
	MaxSteps     int
}

// NewFlightIntegrator builds an integrator from a scenario.
func NewFlightIntegrator(s *Scenario) FlightIntegrator {
	return FlightIntegrator{
		AirDensity:   s.Environment.AirDensity,
		AirViscosity: s.Environment.AirViscosity,
		Gravity:      s.Environment.Gravity,
		Step:         s.Step,
		MaxSteps:     defaultFlightSteps,
	}
}

// dragCoefficient estimates Cd from the Reynolds number and the granule
// sphericity, Cd = 30/Re + 67.289·e^(-5.03φ).
func dragCoefficient(re, sphericity float64) float64 {
	return 30/re + 67.289*math.Exp(-5.03*sphericity)
}

// Land flies the granule from the launch state until its height crosses zero and
// returns the landing coordinates, interpolated to the exact crossing. The granule
// itself is not modified. IntegrationTimeout is returned when the step bound is
// exceeded before impact.
func (fi FlightIntegrator) Land(g Granule, launch LaunchState) (float64, float64, error) {
	dt := fi.Step
	vx, vy, vz := launch.VX, launch.VY, launch.VZ
	x, y, z := launch.X, launch.Y, launch.Z
	for n := 1; n <= fi.MaxSteps; n++ {
		speed := math.Sqrt(vx*vx + vy*vy + vz*vz)
		// Drag intensity from the previous step's speed. A granule momentarily
		// at rest sees no drag, only gravity.
		ka := 0.0
		if speed > 0 && fi.AirDensity > 0 {
			re := g.Diameter * speed * fi.AirDensity / fi.AirViscosity
			ka = dragCoefficient(re, g.Sphericity) * g.Area * fi.AirDensity / (2 * g.Mass)
		}
		ax := -ka * speed * vx
		ay := -ka * speed * vy
		az := -ka*speed*vz - fi.Gravity

		// Semi-implicit Euler: position advances on the pre-update velocity.
		xPrev, yPrev, zPrev := x, y, z
		x += vx * dt
		y += vy * dt
		z += vz * dt
		vx += ax * dt
		vy += ay * dt
		vz += az * dt

		if z <= 0 {
			// Interpolate the crossing between the last two samples, weighted
			// by their heights, so the recorded landing is at z = 0 exactly.
			w := zPrev / (zPrev - z)
			return xPrev + w*(x-xPrev), yPrev + w*(y-yPrev), nil
		}
	}
	return 0, 0, IntegrationTimeout{Steps: fi.MaxSteps}
}
