package spreader

import "math"

// DiskState is the kinematic state of a granule sliding along the vane.
// RP is the vane-local coordinate, RV the radial distance from the disk axis,
// DR the radial velocity along the vane, HP the angular position of the granule,
// and X, Y its absolute disk-plane coordinates.
type DiskState struct {
	T  float64
	RP float64
	RV float64
	DR float64
	HP float64
	X  float64
	Y  float64
}

// exitTolerance bounds |rv - tip radius| at the refined exit state.
const exitTolerance = 1e-6

// defaultVaneSteps bounds the sliding march (20 s at the 1 ms default step).
const defaultVaneSteps = 20000

// VaneSolver advances a granule along the rotating vane with the closed-form
// solution of the sliding equation
//
//	p̈ + 2μω'ṗ - ω'²p = -g(sin z + μ cos z),  ω' = ω cos z
//
// under centrifugal force, the Coriolis normal reaction, friction μ and gravity
// resolved along the vane tilted by z. The motion is marched at a fixed step until
// the granule crosses the tip radius, then the exact crossing time is refined by
// bisection.
type VaneSolver struct {
	Omega       float64 // rad/s
	PitchRadius float64 // m
	TipRadius   float64 // m
	Tilt        float64 // rad
	Friction    float64
	Gravity     float64
	Step        float64 // s
	MaxSteps    int
}

// NewVaneSolver builds a solver from a scenario.
func NewVaneSolver(s *Scenario) VaneSolver {
	return VaneSolver{
		Omega:       s.Machine.Omega(),
		PitchRadius: s.Machine.PitchRadius,
		TipRadius:   s.Machine.TipRadius,
		Tilt:        s.Machine.TiltRad(),
		Friction:    s.Machine.Friction,
		Gravity:     s.Environment.Gravity,
		Step:        s.Step,
		MaxSteps:    defaultVaneSteps,
	}
}

// slide holds the two per-granule constants of the closed-form solution.
// With p(0)=rp0 and ṗ(0)=0 the sliding coordinate is
//
//	p(t) = p* + K/(1+C²)·(e^{ω'Ct} + C²e^{-ω't/C})
//
// where C = √(1+μ²)-μ collects the friction roots and K = rp0 - p* the offset from
// the stationary coordinate p*. For μ=0 on a flat vane this reduces to the classic
// rp0·cosh(ωt).
type slide struct {
	omegaE float64 // ω' = ω cos z
	c      float64
	pStar  float64
	k      float64
}

func (v VaneSolver) newSlide(rp0 float64) slide {
	omegaE := v.Omega * math.Cos(v.Tilt)
	c := math.Sqrt(1+v.Friction*v.Friction) - v.Friction
	pStar := v.Gravity * (math.Sin(v.Tilt) + v.Friction*math.Cos(v.Tilt)) / (omegaE * omegaE)
	return slide{omegaE: omegaE, c: c, pStar: pStar, k: rp0 - pStar}
}

func (s slide) rp(t float64) float64 {
	c2 := s.c * s.c
	return s.pStar + s.k/(1+c2)*(math.Exp(s.omegaE*s.c*t)+c2*math.Exp(-s.omegaE*t/s.c))
}

func (s slide) dr(t float64) float64 {
	c2 := s.c * s.c
	return s.k * s.omegaE * s.c / (1 + c2) * (math.Exp(s.omegaE*s.c*t) - math.Exp(-s.omegaE*t/s.c))
}

// Solve marches the granule from its entry point to the vane tip and returns the
// refined exit state. NoExitFound is returned when the regime cannot escape (the
// entry sits at or below the stationary coordinate) or the step bound is exceeded.
func (v VaneSolver) Solve(entry EntryPoint) (DiskState, error) {
	sl := v.newSlide(entry.RP)
	if sl.k <= 0 {
		// rp(t) is non-increasing: centrifugal force cannot overcome friction
		// and gravity from this entry coordinate.
		return DiskState{}, NoExitFound{}
	}
	rpExit := math.Sqrt(v.TipRadius*v.TipRadius - v.PitchRadius*v.PitchRadius)
	dt := v.Step
	tPrev := 0.0
	for n := 1; n <= v.MaxSteps; n++ {
		t := float64(n) * dt
		rp := sl.rp(t)
		if rv := math.Hypot(rp, v.PitchRadius); rv > v.TipRadius {
			tExit, err := bisect(func(tau float64) float64 { return sl.rp(tau) - rpExit }, tPrev, t, 1e-12)
			if err != nil {
				return DiskState{}, NoExitFound{Steps: n}
			}
			return v.stateAt(sl, entry, tExit), nil
		}
		tPrev = t
	}
	return DiskState{}, NoExitFound{Steps: v.MaxSteps}
}

func (v VaneSolver) stateAt(sl slide, entry EntryPoint, t float64) DiskState {
	rp := sl.rp(t)
	rv := math.Hypot(rp, v.PitchRadius)
	hp := entry.HP - v.Omega*t // the disk rotates clockwise in this frame
	return DiskState{
		T:  t,
		RP: rp,
		RV: rv,
		DR: sl.dr(t),
		HP: hp,
		X:  rv * math.Cos(hp),
		Y:  rv * math.Sin(hp),
	}
}
