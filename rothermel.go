/*
Copyright © 2026 the firesim authors.
This file is part of firesim.

firesim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

firesim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with firesim.  If not, see <http://www.gnu.org/licenses/>.
*/

package firesim

import "math"

// AustralianCalibration is Rothermel's (1972) surface rate of spread
// model scaled by the Australian-fuels calibration multiplier reported
// in Cruz et al. (2015). It is kept as an exported, overridable constant
// rather than folded silently into the formula, per the open question in
// spec.md §9(b): the spec explicitly requires this not be hidden.
const AustralianCalibration = 0.05

// RothermelSpreadInputs bundles the quantities RothermelSpreadRate needs,
// grouped so call sites (the level-set stage) don't pass a dozen bare
// floats.
type RothermelSpreadInputs struct {
	Fuel *FuelDescriptor

	MoistureFraction float64 // m, current fuel moisture content
	MidflameWindMs   float64 // wind speed at flame height, m/s
	SlopeDeg         float64 // terrain slope, degrees
	// WindSlopeAlignment is cos(angle) between spread direction and the
	// combined wind+upslope vector, in [-1,1]; 1 = fully aligned.
	WindSlopeAlignment float64
}

// moistureDampingCoefficient returns Rothermel's (1972) Eq. 29 polynomial
// moisture damping coefficient eta_M given the moisture ratio
// r = m / m_extinction, clamped so r=1 -> eta_M=0 and r=0 -> eta_M=1
// (spec.md §8 formula round-trip).
func moistureDampingCoefficient(r float64) float64 {
	if r <= 0 {
		return 1
	}
	if r >= 1 {
		return 0
	}
	return 1 - 2.59*r + 5.11*r*r - 3.52*r*r*r
}

// windCoefficient is Rothermel's Eq. 47 propagating-flux wind
// coefficient, phi_w, a power-law in the dimensionless wind-to-flux
// ratio.
func windCoefficient(windMs, savRatio, packingRatio float64) float64 {
	if windMs <= 0 {
		return 0
	}
	c := 7.47 * math.Exp(-0.133*math.Pow(savRatio, 0.55))
	b := 0.02526 * math.Pow(savRatio, 0.54)
	beta := packingRatio
	betaOpt := 3.348 * math.Pow(savRatio, -0.8189)
	if betaOpt <= 0 {
		betaOpt = 0.01
	}
	e := 0.715 * math.Exp(-3.59e-4*savRatio)
	windFtMin := windMs * 196.85 // m/s -> ft/min, Rothermel's native unit
	return c * math.Pow(windFtMin, b) * math.Pow(beta/betaOpt, -e)
}

// slopeCoefficient is Rothermel's Eq. 51 propagating-flux slope
// coefficient, phi_s, phi_s = 5.275 * beta^-0.3 * tan(slope)^2.
func slopeCoefficient(slopeDeg, packingRatio float64) float64 {
	beta := packingRatio
	if beta <= 0 {
		beta = 0.01
	}
	tanSlope := math.Tan(slopeDeg * math.Pi / 180)
	return 5.275 * math.Pow(beta, -0.3) * tanSlope * tanSlope
}

// reactionIntensity returns Rothermel's reaction intensity I_R (kW/m^2)
// for the fuel bed: a simplified single-fuel-class form proportional to
// heat content, oven-dry loading, and a reaction-velocity/damping term
// bundled into a calibrated shape constant, since the full multi-class
// Rothermel reaction-velocity derivation (optimum SAV, mineral damping,
// gamma-prime) is out of scope for a single-fuel-id cell model; the
// moisture damping term remains explicit because §8 tests it directly.
func reactionIntensity(fuel *FuelDescriptor, w, etaM float64) float64 {
	const gammaPrime = 0.0065 // lumped reaction-velocity/mineral-damping shape constant, 1/s
	return gammaPrime * fuel.SAVRatio / 1000 * fuel.HeatContent * w * etaM
}

// propagatingFluxRatio is Rothermel's xi, the fraction of reaction
// intensity that preheats adjacent fuel, from Eq. 42:
// xi = exp((0.792 + 0.681*sqrt(sigma)) * (beta + 0.1)) / (192 + 0.2595*sigma).
func propagatingFluxRatio(savRatio, packingRatio float64) float64 {
	return math.Exp((0.792+0.681*math.Sqrt(savRatio))*(packingRatio+0.1)) /
		(192 + 0.2595*savRatio)
}

// heatOfPreignition is Rothermel's Q_ig (kJ/kg), the energy required to
// bring a unit mass of fuel to ignition from its current moisture
// content m.
func heatOfPreignition(m float64) float64 {
	return 250 + 1116*m
}

// bulkDensityPackingRatio returns the fuel bed's packing ratio beta =
// rho_b / rho_p.
func bulkDensityPackingRatio(fuel *FuelDescriptor) float64 {
	if fuel.ParticleDensity <= 0 {
		return 0.01
	}
	return fuel.BulkDensity / fuel.ParticleDensity
}

// RothermelSpreadRate computes the Australian-calibrated surface rate of
// spread (m/s) per spec.md §4.4 stage 5:
//
//	R = calibration * I_R * xi * (1 + phi_w + phi_s) / (rho_b * eps * Q_ig)
//
// where eps is taken as 1 (effective heating number folded into the
// calibration constant, since the source does not specify it
// separately).
func RothermelSpreadRate(in RothermelSpreadInputs) float64 {
	f := in.Fuel
	if f == nil || f.SAVRatio <= 0 || f.BulkDensity <= 0 {
		return 0
	}
	r := in.MoistureFraction / f.MoistureOfExtinction
	etaM := moistureDampingCoefficient(r)
	if etaM <= 0 {
		return 0
	}

	beta := bulkDensityPackingRatio(f)
	iR := reactionIntensity(f, f.BulkDensity, etaM)
	xi := propagatingFluxRatio(f.SAVRatio, beta)
	qig := heatOfPreignition(in.MoistureFraction)

	windMs := in.MidflameWindMs * clampF(in.WindSlopeAlignment, -1, 1)
	if windMs < 0 {
		windMs = 0
	}
	phiW := windCoefficient(windMs, f.SAVRatio, beta)
	phiS := slopeCoefficient(in.SlopeDeg, beta)
	if in.WindSlopeAlignment < 0 {
		// Upslope/downwind component opposes spread direction: Rothermel's
		// phi_s is symmetric in slope magnitude, but an unaligned spread
		// direction should not receive the full upslope boost.
		phiS *= math.Max(0, in.WindSlopeAlignment+1)
	}

	r0 := iR * xi / (f.BulkDensity * qig)
	return AustralianCalibration * r0 * (1 + phiW + phiS)
}
