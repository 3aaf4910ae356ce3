package spreader

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats/scalar"
)

// Machine gathers the disk and vane geometry of the spreader. All values are
// read-only for a run.
type Machine struct {
	Speed         float64 `mapstructure:"speed"`          // rev/min
	PitchRadius   float64 `mapstructure:"pitch_radius"`   // m, vane offset from the disk axis
	TipRadius     float64 `mapstructure:"tip_radius"`     // m, vane end
	Tilt          float64 `mapstructure:"tilt"`           // deg, vane tilt above the disk plane
	Friction      float64 `mapstructure:"friction"`       // granule/vane friction coefficient
	OrificeRadius float64 `mapstructure:"orifice_radius"` // m, inlet orifice
	OrificeX      float64 `mapstructure:"orifice_x"`      // m, orifice center offset
	OrificeY      float64 `mapstructure:"orifice_y"`      // m
	Height        float64 `mapstructure:"height"`         // m, vane height above the ground
}

// Omega returns the disk angular speed in rad/s.
func (m Machine) Omega() float64 {
	return m.Speed * 2 * math.Pi / 60
}

// TiltRad returns the vane tilt in radians.
func (m Machine) TiltRad() float64 {
	return Deg2rad(m.Tilt)
}

// Environment gathers the ambient constants of a run.
type Environment struct {
	AirDensity   float64 `mapstructure:"air_density"`   // kg/m³
	AirViscosity float64 `mapstructure:"air_viscosity"` // Pa·s
	Gravity      float64 `mapstructure:"gravity"`       // m/s²
	ScatterSigma float64 `mapstructure:"scatter_sigma"` // deg, vertical outlet angle scatter
}

// ScatterRad returns the vertical outlet angle scatter in radians.
func (e Environment) ScatterRad() float64 {
	return Deg2rad(e.ScatterSigma)
}

// ComponentConfig is one blend component together with its empirical sieve table.
// Diameters are in mm; Fractions are the cumulative undersize mass fractions
// measured at those diameters.
type ComponentConfig struct {
	Name       string    `mapstructure:"name"`
	Density    float64   `mapstructure:"density"`
	Sphericity float64   `mapstructure:"sphericity"`
	Fraction   float64   `mapstructure:"fraction"`
	Diameters  []float64 `mapstructure:"diameters"`
	Fractions  []float64 `mapstructure:"fractions"`
}

// Blend returns the immutable blend description of this component.
func (c ComponentConfig) Blend() BlendComponent {
	return BlendComponent{Name: c.Name, Density: c.Density, Sphericity: c.Sphericity, Fraction: c.Fraction}
}

// Scenario is the full configuration of one simulation run. It is passed
// explicitly into every stage; nothing reads ambient globals.
type Scenario struct {
	Mass        float64 // kg injected over the run
	Seed        uint64
	Step        float64 // s, vane and flight time step
	Machine     Machine
	Environment Environment
	Components  []ComponentConfig
}

// LoadScenario reads a TOML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("simulation.step", 0.001)
	v.SetDefault("environment.air_density", 1.225)
	v.SetDefault("environment.air_viscosity", 1.81e-5)
	v.SetDefault("environment.gravity", 9.80665)
	v.SetDefault("environment.scatter_sigma", 2.0)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s := &Scenario{
		Mass: v.GetFloat64("simulation.mass"),
		Seed: v.GetUint64("simulation.seed"),
		Step: v.GetFloat64("simulation.step"),
	}
	if err := v.UnmarshalKey("machine", &s.Machine); err != nil {
		return nil, fmt.Errorf("reading machine section: %w", err)
	}
	if err := v.UnmarshalKey("environment", &s.Environment); err != nil {
		return nil, fmt.Errorf("reading environment section: %w", err)
	}
	if err := v.UnmarshalKey("component", &s.Components); err != nil {
		return nil, fmt.Errorf("reading component tables: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the scenario for the fatal inconsistencies that must stop a run
// before any granule is synthesized.
func (s *Scenario) Validate() error {
	if s.Mass <= 0 {
		return fmt.Errorf("injected mass must be positive, got %g kg", s.Mass)
	}
	if s.Step <= 0 {
		return fmt.Errorf("time step must be positive, got %g s", s.Step)
	}
	m := s.Machine
	if m.Speed <= 0 {
		return fmt.Errorf("disk speed must be positive, got %g rev/min", m.Speed)
	}
	if m.PitchRadius <= 0 || m.TipRadius <= m.PitchRadius {
		return fmt.Errorf("need 0 < pitch radius < tip radius, got %g and %g m", m.PitchRadius, m.TipRadius)
	}
	if m.OrificeRadius <= 0 {
		return fmt.Errorf("orifice radius must be positive, got %g m", m.OrificeRadius)
	}
	if m.Friction < 0 {
		return fmt.Errorf("friction coefficient must not be negative, got %g", m.Friction)
	}
	if m.Height <= 0 {
		return fmt.Errorf("launch height must be positive, got %g m", m.Height)
	}
	e := s.Environment
	if e.AirDensity < 0 || e.AirViscosity <= 0 {
		return fmt.Errorf("bad air properties: density %g kg/m³, viscosity %g Pa·s", e.AirDensity, e.AirViscosity)
	}
	if e.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %g m/s²", e.Gravity)
	}
	if len(s.Components) == 0 {
		return fmt.Errorf("scenario defines no blend components")
	}
	sum := 0.0
	for _, c := range s.Components {
		if c.Density <= 0 {
			return fmt.Errorf("component %s: density must be positive, got %g kg/m³", c.Name, c.Density)
		}
		if c.Sphericity <= 0 || c.Sphericity > 1 {
			return fmt.Errorf("component %s: sphericity must be in (0,1], got %g", c.Name, c.Sphericity)
		}
		if c.Fraction < 0 {
			return fmt.Errorf("component %s: negative mass fraction %g", c.Name, c.Fraction)
		}
		if len(c.Diameters) != len(c.Fractions) {
			return fmt.Errorf("component %s: %d diameters vs %d fractions", c.Name, len(c.Diameters), len(c.Fractions))
		}
		sum += c.Fraction
	}
	if !scalar.EqualWithinAbs(sum, 1, 1e-6) {
		return fmt.Errorf("component mass fractions sum to %g, want 1", sum)
	}
	return nil
}
