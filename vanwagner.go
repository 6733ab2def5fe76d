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

// CriticalSurfaceIntensity returns Van Wagner's (1977) critical surface
// fireline intensity I0 (kW/m) above which crown initiation becomes
// possible, given canopy base height cbhM (m) and foliar moisture content
// fmcPct (percent):
//
//	I0 = (0.01 * CBH * (460 + 25.9*FMC))^1.5
func CriticalSurfaceIntensity(cbhM, fmcPct float64) float64 {
	base := 0.01 * cbhM * (460 + 25.9*fmcPct)
	if base <= 0 {
		return 0
	}
	return math.Pow(base, 1.5)
}

// CriticalCrownSpreadRate returns Van Wagner's critical crown spread rate
// R0 (m/min equivalent units consistent with cbdKgm3) above which an
// initiated crown fire becomes self-sustaining (active):
//
//	R0 = 3.0 / CBD
func CriticalCrownSpreadRate(cbdKgm3 float64) float64 {
	if cbdKgm3 <= 0 {
		return math.Inf(1)
	}
	return 3.0 / cbdKgm3
}

// crownTransition evaluates the Van Wagner crown-fire check (spec.md
// §4.4 stage 4) given the cell's current surface fireline intensity and
// spread rate against its fuel's canopy properties. It returns the crown
// state the cell should enter this step. It holds no state of its own:
// stageCrownCheck stores the result every step for each flaming cell, so
// a crown state can fall back as soon as intensity dips, and it leaves
// the crown state of non-flaming cells unchanged.
func crownTransition(surfaceIntensityKWm, surfaceSpreadRateMs float64, fuel *FuelDescriptor) CrownState {
	if fuel.CanopyBaseHeight <= 0 || fuel.CanopyBulkDensity <= 0 {
		return CrownNone
	}
	cbhEff := fuel.EffectiveCanopyBaseHeight()
	i0 := CriticalSurfaceIntensity(cbhEff, fuel.FoliarMoisture)
	if surfaceIntensityKWm < i0 {
		return CrownNone
	}
	r0 := CriticalCrownSpreadRate(fuel.CanopyBulkDensity)
	if surfaceSpreadRateMs >= r0 {
		return CrownActive
	}
	return CrownPassiveTorching
}

// emberShedMultiplier returns the multiplier on a fuel's nominal
// EmberShedRate implied by the cell's crown state (spec.md §4.4 stage 4,
// "ember shedding is raised"; §8 scenario 6, "at least 3x the
// surface-only rate").
func emberShedMultiplier(c CrownState) float64 {
	switch c {
	case CrownActive:
		return 5
	case CrownPassiveTorching:
		return 3
	default:
		return 1
	}
}
