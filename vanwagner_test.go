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

func TestCriticalSurfaceIntensityReferenceValue(t *testing.T) {
	got := CriticalSurfaceIntensity(8, 100)
	want := 3800.0
	if absDifferent(got, want, 50) {
		t.Errorf("CriticalSurfaceIntensity(8,100) = %v, want ~%v", got, want)
	}
}

func TestCrownTransitionNoCanopyStaysNone(t *testing.T) {
	fuel := StandardFuels[0] // DryGrass: no canopy
	if got := crownTransition(5000, 1, &fuel); got != CrownNone {
		t.Errorf("expected CrownNone for a grass fuel with no canopy, got %v", got)
	}
}

func TestCrownTransitionPassiveThenActive(t *testing.T) {
	fuel := StandardFuels[2] // Stringybark
	i0 := CriticalSurfaceIntensity(fuel.EffectiveCanopyBaseHeight(), fuel.FoliarMoisture)
	r0 := CriticalCrownSpreadRate(fuel.CanopyBulkDensity)

	if got := crownTransition(i0*1.5, r0*0.5, &fuel); got != CrownPassiveTorching {
		t.Errorf("expected passive torching above I0 but below R0, got %v", got)
	}
	if got := crownTransition(i0*1.5, r0*1.5, &fuel); got != CrownActive {
		t.Errorf("expected active crown fire above both thresholds, got %v", got)
	}
}

func TestEmberShedMultiplierRisesWithCrownState(t *testing.T) {
	surface := emberShedMultiplier(CrownNone)
	passive := emberShedMultiplier(CrownPassiveTorching)
	active := emberShedMultiplier(CrownActive)
	if !(active > passive && passive > surface) {
		t.Errorf("expected shed multiplier to increase with crown severity: %v < %v < %v", surface, passive, active)
	}
	if active < 3*surface {
		t.Errorf("expected active crown fire to reach at least 3x surface shedding (spec scenario 6), got %vx", active/surface)
	}
}
