package spreader

import (
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SizeDistribution is a fitted two-parameter Weibull model of granule diameters.
// Scale is in mm, matching the sieve tables.
type SizeDistribution struct {
	Shape float64
	Scale float64
}

// CDF returns the cumulative undersize fraction at diameter d (mm).
func (sd SizeDistribution) CDF(d float64) float64 {
	if d <= 0 {
		return 0
	}
	return 1 - math.Exp(-math.Pow(d/sd.Scale, sd.Shape))
}

// FitSizeDistribution fits the Weibull model to a component's sieve table by
// nonlinear least squares. The starting point comes from the Weibull-plot
// linearization ln(-ln(1-F)) = k·ln d - k·ln λ over the interior points, then
// Nelder-Mead refines (k, λ) against every point. A FitDivergence is returned
// whenever no trustworthy parameters can be recovered.
func FitSizeDistribution(c ComponentConfig) (SizeDistribution, error) {
	var lnD, lnLn []float64
	for i, d := range c.Diameters {
		f := c.Fractions[i]
		if d <= 0 || f <= 0 || f >= 1 {
			continue
		}
		lnD = append(lnD, math.Log(d))
		lnLn = append(lnLn, math.Log(-math.Log(1-f)))
	}
	if len(lnD) < 2 {
		return SizeDistribution{}, FitDivergence{Component: c.Name, Reason: "fewer than two usable sieve points"}
	}
	alpha, beta := stat.LinearRegression(lnD, lnLn, nil, false)
	if beta <= 0 || math.IsNaN(alpha) || math.IsNaN(beta) {
		return SizeDistribution{}, FitDivergence{Component: c.Name, Reason: "sieve fractions are not increasing with diameter"}
	}
	k0 := beta
	scale0 := math.Exp(-alpha / beta)

	// Optimize in log-parameters so the search space stays positive.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sd := SizeDistribution{Shape: math.Exp(x[0]), Scale: math.Exp(x[1])}
			sse := 0.0
			for i, d := range c.Diameters {
				r := sd.CDF(d) - c.Fractions[i]
				sse += r * r
			}
			return sse
		},
	}
	res, err := optimize.Minimize(problem, []float64{math.Log(k0), math.Log(scale0)}, nil, &optimize.NelderMead{})
	if err != nil {
		return SizeDistribution{}, FitDivergence{Component: c.Name, Reason: err.Error()}
	}
	sd := SizeDistribution{Shape: math.Exp(res.X[0]), Scale: math.Exp(res.X[1])}
	if math.IsNaN(sd.Shape) || math.IsInf(sd.Shape, 0) || sd.Shape <= 0 ||
		math.IsNaN(sd.Scale) || math.IsInf(sd.Scale, 0) || sd.Scale <= 0 || math.IsNaN(res.F) {
		return SizeDistribution{}, FitDivergence{Component: c.Name, Reason: "optimizer returned non-physical parameters"}
	}
	return sd, nil
}

// GeneratePopulation draws granules for every fitted component until the sampled
// mass of each reaches its target share of the injected mass. The last draw may
// overshoot the target by at most one granule. fits must align with s.Components;
// a nil entry skips that component (its fit diverged).
func GeneratePopulation(s *Scenario, fits []*SizeDistribution) []Granule {
	var population []Granule
	for ci, c := range s.Components {
		if fits[ci] == nil || c.Fraction == 0 {
			continue
		}
		target := s.Mass * c.Fraction
		w := distuv.Weibull{K: fits[ci].Shape, Lambda: fits[ci].Scale, Src: substream(s.Seed, componentSalt, ci)}
		blend := c.Blend()
		meanD := w.Mean() / 1000
		meanMass := blend.Density * (math.Pi / 3) * meanD * meanD * meanD
		if est := int(target / meanMass); est > 0 && cap(population)-len(population) < est {
			grown := make([]Granule, len(population), len(population)+est+1)
			copy(grown, population)
			population = grown
		}
		for cum := 0.0; cum < target; {
			d := w.Rand() / 1000 // sieve table is in mm
			if d <= 0 || math.IsNaN(d) {
				continue // physically meaningless draw, redraw
			}
			g := NewGranule(blend, d)
			population = append(population, g)
			cum += g.Mass
		}
	}
	return population
}
