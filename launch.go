package spreader

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// LaunchState is the 3-D initial condition of ballistic flight at vane exit.
type LaunchState struct {
	VX, VY, VZ float64 // m/s
	X, Y, Z    float64 // m, Z is the launch height above the ground
}

// LaunchComputer converts a vane exit state into a launch state. The horizontal
// outlet angle follows from the exit geometry; the vertical outlet angle is drawn
// from a normal scatter model around its geometric mean.
type LaunchComputer struct {
	Omega       float64 // rad/s
	PitchRadius float64 // m
	TipRadius   float64 // m
	Tilt        float64 // rad
	Height      float64 // m above the ground
	Sigma       float64 // rad, vertical outlet angle scatter
}

// NewLaunchComputer builds a computer from a scenario.
func NewLaunchComputer(s *Scenario) LaunchComputer {
	return LaunchComputer{
		Omega:       s.Machine.Omega(),
		PitchRadius: s.Machine.PitchRadius,
		TipRadius:   s.Machine.TipRadius,
		Tilt:        s.Machine.TiltRad(),
		Height:      s.Machine.Height,
		Sigma:       s.Environment.ScatterRad(),
	}
}

const launchAngleEps = 1e-9

// Compute derives the launch state from an exit state. src feeds the vertical
// outlet angle draw. InvalidLaunchGeometry is returned instead of letting a
// degenerate angle propagate infinities into the flight phase.
func (lc LaunchComputer) Compute(exit DiskState, src rand.Source) (LaunchState, error) {
	alv := math.Asin(lc.PitchRadius / lc.TipRadius)
	// Radial exit velocity resolved into the horizontal plane, against the
	// tangential tip speed.
	drh := exit.DR * math.Cos(lc.Tilt) * math.Cos(alv)
	vt := lc.Omega * lc.TipRadius
	hout := math.Atan(drh / vt)
	if math.Abs(math.Sin(hout)) < launchAngleEps {
		return LaunchState{}, InvalidLaunchGeometry{Quantity: "sin(hout)", Value: math.Sin(hout)}
	}
	v := drh / math.Sin(hout)
	muzout := math.Atan(math.Tan(lc.Tilt) * math.Sin(hout) / math.Cos(alv))
	zout := distuv.Normal{Mu: muzout, Sigma: lc.Sigma, Src: src}.Rand()
	if math.Abs(math.Cos(zout)) < launchAngleEps {
		return LaunchState{}, InvalidLaunchGeometry{Quantity: "cos(zout)", Value: math.Cos(zout)}
	}
	vout := v / math.Cos(zout)
	thetaH := exit.HP + hout - math.Pi/2
	ls := LaunchState{
		VX: v * math.Cos(thetaH),
		VY: v * math.Sin(thetaH),
		VZ: vout * math.Sin(zout),
		X:  exit.X,
		Y:  exit.Y,
		Z:  lc.Height,
	}
	for _, val := range []float64{ls.VX, ls.VY, ls.VZ} {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return LaunchState{}, InvalidLaunchGeometry{Quantity: "velocity", Value: val}
		}
	}
	return ls, nil
}
