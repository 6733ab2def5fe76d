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

import "testing"

func TestMoistureDampingCoefficientBounds(t *testing.T) {
	if got := moistureDampingCoefficient(1); got != 0 {
		t.Errorf("moistureDampingCoefficient(1) = %v, want 0", got)
	}
	if got := moistureDampingCoefficient(0); got != 1 {
		t.Errorf("moistureDampingCoefficient(0) = %v, want 1", got)
	}
}

func TestRothermelSpreadRateIncreasesWithWind(t *testing.T) {
	fuel := StandardFuels[0]
	base := RothermelSpreadInputs{
		Fuel: &fuel, MoistureFraction: 0.08, SlopeDeg: 0, WindSlopeAlignment: 1,
	}
	calm := base
	calm.MidflameWindMs = 0
	windy := base
	windy.MidflameWindMs = 8

	rCalm := RothermelSpreadRate(calm)
	rWindy := RothermelSpreadRate(windy)
	if rWindy <= rCalm {
		t.Errorf("expected wind to increase spread rate: calm=%v windy=%v", rCalm, rWindy)
	}
}

func TestRothermelSpreadRateIncreasesWithSlope(t *testing.T) {
	fuel := StandardFuels[0]
	flat := RothermelSpreadInputs{Fuel: &fuel, MoistureFraction: 0.08, WindSlopeAlignment: 1}
	steep := flat
	steep.SlopeDeg = 20

	rFlat := RothermelSpreadRate(flat)
	rSteep := RothermelSpreadRate(steep)
	if rSteep <= rFlat {
		t.Errorf("expected slope to increase spread rate: flat=%v steep=%v", rFlat, rSteep)
	}
	ratio := rSteep / rFlat
	if ratio < 1.2 || ratio > 6 {
		t.Errorf("slope-driven spread ratio %v outside a plausible doubling-per-10deg band", ratio)
	}
}

func TestRothermelSpreadRateZeroAtMoistureOfExtinction(t *testing.T) {
	fuel := StandardFuels[0]
	in := RothermelSpreadInputs{
		Fuel: &fuel, MoistureFraction: fuel.MoistureOfExtinction, WindSlopeAlignment: 1,
	}
	if got := RothermelSpreadRate(in); got != 0 {
		t.Errorf("expected zero spread at moisture of extinction, got %v", got)
	}
}
