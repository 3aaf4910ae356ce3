package spreader

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
)

func testLaunchComputer(sigma float64) LaunchComputer {
	return LaunchComputer{
		Omega:       Deg2rad(810 * 6),
		PitchRadius: 0.05,
		TipRadius:   0.395,
		Tilt:        Deg2rad(13.5),
		Height:      0.8,
		Sigma:       sigma,
	}
}

func TestLaunchGeometry(t *testing.T) {
	lc := testLaunchComputer(0) // σ=0 pins the vertical angle to its mean
	exit := DiskState{T: 0.028, RP: 0.3918, RV: 0.395, DR: 24, HP: -2.4, X: 0.395 * math.Cos(-2.4), Y: 0.395 * math.Sin(-2.4)}
	ls, err := lc.Compute(exit, rand.NewSource(1))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	alv := math.Asin(lc.PitchRadius / lc.TipRadius)
	drh := exit.DR * math.Cos(lc.Tilt) * math.Cos(alv)
	vt := lc.Omega * lc.TipRadius
	v := math.Sqrt(drh*drh + vt*vt)
	if !scalar.EqualWithinAbsOrRel(math.Hypot(ls.VX, ls.VY), v, 1e-9, 1e-9) {
		t.Fatalf("horizontal speed %f expected %f", math.Hypot(ls.VX, ls.VY), v)
	}
	hout := math.Atan(drh / vt)
	muzout := math.Atan(math.Tan(lc.Tilt) * math.Sin(hout) / math.Cos(alv))
	if !scalar.EqualWithinAbsOrRel(ls.VZ, v*math.Tan(muzout), 1e-9, 1e-9) {
		t.Fatalf("vz %f expected %f", ls.VZ, v*math.Tan(muzout))
	}
	theta := math.Atan2(ls.VY, ls.VX)
	want := math.Mod(exit.HP+hout-math.Pi/2, 2*math.Pi)
	if d := math.Abs(math.Mod(theta-want+3*math.Pi, 2*math.Pi) - math.Pi); d > 1e-9 {
		t.Fatalf("horizontal direction %f expected %f", theta, want)
	}
	if ls.X != exit.X || ls.Y != exit.Y || ls.Z != lc.Height {
		t.Fatalf("launch position %+v disagrees with exit %+v at height %g", ls, exit, lc.Height)
	}
}

func TestLaunchScatterIsSeeded(t *testing.T) {
	lc := testLaunchComputer(Deg2rad(2))
	exit := DiskState{DR: 24, HP: 0, X: 0.395, Y: 0}
	a, err := lc.Compute(exit, rand.NewSource(5))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	b, err := lc.Compute(exit, rand.NewSource(5))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if a != b {
		t.Fatal("identical sources should give identical launch states")
	}
	c, err := lc.Compute(exit, rand.NewSource(6))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if a == c {
		t.Fatal("different sources should scatter the vertical angle")
	}
}

func TestLaunchInvalidGeometry(t *testing.T) {
	lc := testLaunchComputer(0)
	// A granule with no radial exit velocity has no defined outlet direction.
	_, err := lc.Compute(DiskState{DR: 0, HP: 0}, rand.NewSource(1))
	if err == nil {
		t.Fatal("err should not be nil for a zero radial exit velocity")
	}
	if _, ok := err.(InvalidLaunchGeometry); !ok {
		t.Fatalf("expected InvalidLaunchGeometry, got %T: %s", err, err)
	}
}
