package spreader

import (
	"os"
	"path/filepath"
	"testing"
)

const testScenarioTOML = `
[simulation]
mass = 0.01
seed = 42

[machine]
speed = 810.0
pitch_radius = 0.05
tip_radius = 0.395
tilt = 13.5
friction = 0.3
orifice_radius = 0.02
orifice_x = 0.1
orifice_y = 0.05
height = 0.8

[environment]
air_density = 1.225
air_viscosity = 1.81e-5
gravity = 9.81
scatter_sigma = 2.0

[[component]]
name = "KAS27"
density = 1690.0
sphericity = 0.907
fraction = 1.0
diameters = [1.0, 2.0, 2.5, 3.15, 4.0, 5.0]
fractions = [0.0364, 0.2562, 0.4394, 0.6862, 0.9063, 0.9902]
`

func writeTestScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(testScenarioTOML), 0o644); err != nil {
		t.Fatalf("writing scenario: %s", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeTestScenario(t))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if s.Mass != 0.01 || s.Seed != 42 {
		t.Fatalf("simulation section misread: %+v", s)
	}
	if s.Step != 0.001 {
		t.Fatalf("step default not applied: %g", s.Step)
	}
	if s.Machine.Speed != 810 || s.Machine.TipRadius != 0.395 {
		t.Fatalf("machine section misread: %+v", s.Machine)
	}
	if len(s.Components) != 1 || s.Components[0].Name != "KAS27" {
		t.Fatalf("component tables misread: %+v", s.Components)
	}
	if len(s.Components[0].Diameters) != 6 {
		t.Fatalf("sieve table misread: %+v", s.Components[0])
	}
}

func TestValidateRejectsBadScenarios(t *testing.T) {
	base, err := LoadScenario(writeTestScenario(t))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	cases := []struct {
		name string
		mod  func(*Scenario)
	}{
		{"negative mass", func(s *Scenario) { s.Mass = -1 }},
		{"zero step", func(s *Scenario) { s.Step = 0 }},
		{"tip inside pitch", func(s *Scenario) { s.Machine.TipRadius = 0.04 }},
		{"fractions not summing to 1", func(s *Scenario) { s.Components[0].Fraction = 0.5 }},
		{"negative fraction", func(s *Scenario) { s.Components[0].Fraction = -0.2 }},
		{"sphericity above 1", func(s *Scenario) { s.Components[0].Sphericity = 1.2 }},
		{"sieve table length mismatch", func(s *Scenario) { s.Components[0].Diameters = s.Components[0].Diameters[:3] }},
		{"no components", func(s *Scenario) { s.Components = nil }},
		{"negative gravity", func(s *Scenario) { s.Environment.Gravity = -9.81 }},
	}
	for _, tc := range cases {
		s := *base
		s.Components = append([]ComponentConfig(nil), base.Components...)
		tc.mod(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestValidateAllowsZeroAirDensity(t *testing.T) {
	s, err := LoadScenario(writeTestScenario(t))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	s.Environment.AirDensity = 0 // vacuum runs are legitimate (pure projectile motion)
	if err := s.Validate(); err != nil {
		t.Fatalf("zero air density should validate, got %s", err)
	}
}
