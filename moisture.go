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

// LatentHeatVaporizationWater is the latent heat of vaporization of water,
// kJ/kg, used by the moisture-evaporation heat sink (spec.md §4.3/§4.4).
const LatentHeatVaporizationWater = 2260.0

// timelagTau returns the Nelson exponential timelag constant tau (seconds)
// for a dead-fuel size class {1, 10, 100, 1000} hours.
func timelagTau(class int) float64 {
	switch class {
	case 1:
		return 1 * 3600
	case 10:
		return 10 * 3600
	case 100:
		return 100 * 3600
	case 1000:
		return 1000 * 3600
	default:
		return 1 * 3600
	}
}

// EquilibriumMoistureContent computes Simard's piecewise polynomial
// equilibrium moisture content (spec.md §4.3) from relative humidity
// (percent) and air temperature (Celsius), clamped to [0.01, 0.40].
func EquilibriumMoistureContent(rhPct, tAirC float64) float64 {
	h := rhPct
	t := tAirC*9.0/5.0 + 32.0 // Simard's polynomial is in Fahrenheit

	var emc float64
	switch {
	case h < 10:
		emc = 0.03229 + 0.281073*h - 0.000578*h*t
	case h < 50:
		emc = 2.22749 + 0.160107*h - 0.014784*t
	default:
		emc = 21.0606 + 0.005565*h*h - 0.00035*h*t - 0.483199*h
	}
	emc /= 100
	return clampF(emc, 0.01, 0.40)
}

// fireAdjacentDryingFactor accelerates the approach to equilibrium for
// cells above 100C (spec.md §4.3): every 50C above boiling doubles the
// effective rate, capped at 8x so a cell near flaming temperature doesn't
// reach an instantaneous, discontinuous moisture loss.
func fireAdjacentDryingFactor(tempK float64) float64 {
	const boilingK = 373.15
	if tempK <= boilingK {
		return 1
	}
	factor := math.Pow(2, (tempK-boilingK)/50)
	if factor > 8 {
		factor = 8
	}
	return factor
}

// NelsonTimelag advances dead-fuel moisture m toward its equilibrium value
// emc over dt seconds using Nelson's exponential approach (spec.md §4.3):
//
//	m(t+dt) = EMC + (m(t) - EMC) * exp(-dt/tau)
//
// tempK is the cell's current temperature, used to accelerate drying near
// and above boiling per the fire-adjacent factor.
func NelsonTimelag(m, emc float64, class int, tempK, dt float64) float64 {
	tau := timelagTau(class) / fireAdjacentDryingFactor(tempK)
	return emc + (m-emc)*math.Exp(-dt/tau)
}
