package spreader

import "fmt"

/* Failure taxonomy. Component fits may fail fatally for that component; everything
else is granule-local and recorded against the granule rather than aborting a run. */

// FitDivergence reports that the size-distribution fit for a blend component did not
// converge. The component cannot be populated.
type FitDivergence struct {
	Component string
	Reason    string
}

func (e FitDivergence) Error() string {
	return fmt.Sprintf("size distribution fit diverged for %s: %s", e.Component, e.Reason)
}

// GeometryError reports an inlet entry point incompatible with the vane geometry
// (the entry radius is inside the vane pitch circle).
type GeometryError struct {
	RV          float64
	PitchRadius float64
}

func (e GeometryError) Error() string {
	return fmt.Sprintf("entry point at rv=%.6f m is inside the vane pitch radius %.6f m", e.RV, e.PitchRadius)
}

// NoExitFound reports that the vane solver did not reach the vane tip within its
// step bound, or that the sliding regime cannot escape at all.
type NoExitFound struct {
	Steps int
}

func (e NoExitFound) Error() string {
	if e.Steps == 0 {
		return "granule cannot escape the vane in this regime"
	}
	return fmt.Sprintf("no vane exit found within %d steps", e.Steps)
}

// InvalidLaunchGeometry reports a non-physical outlet angle at vane exit.
type InvalidLaunchGeometry struct {
	Quantity string
	Value    float64
}

func (e InvalidLaunchGeometry) Error() string {
	return fmt.Sprintf("invalid launch geometry: %s=%g", e.Quantity, e.Value)
}

// IntegrationTimeout reports that ballistic flight did not reach the ground within
// the integrator's step bound.
type IntegrationTimeout struct {
	Steps int
}

func (e IntegrationTimeout) Error() string {
	return fmt.Sprintf("no ground impact within %d flight steps", e.Steps)
}
