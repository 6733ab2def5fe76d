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

import (
	"math"
	"testing"
)

func TestByramFlameLengthMonotonic(t *testing.T) {
	l1 := ByramFlameLength(500)
	l2 := ByramFlameLength(10000)
	if l2 <= l1 {
		t.Errorf("expected flame length to increase with intensity: l1=%v l2=%v", l1, l2)
	}
	want := 0.0775 * math.Pow(10000, 0.46)
	if absDifferent(l2, want, 1e-6) {
		t.Errorf("ByramFlameLength(10000) = %v, want %v", l2, want)
	}
}

func TestByramFlameLengthZeroIntensity(t *testing.T) {
	if l := ByramFlameLength(0); l != 0 {
		t.Errorf("ByramFlameLength(0) = %v, want 0", l)
	}
}

func TestByramIntensity(t *testing.T) {
	i := ByramIntensity(18000, 0.5, 0.1)
	want := 18000 * 0.5 * 0.1
	if absDifferent(i, want, 1e-9) {
		t.Errorf("ByramIntensity = %v, want %v", i, want)
	}
}
