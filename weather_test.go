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

func TestFFDIRoundTrips(t *testing.T) {
	tests := []struct {
		name                        string
		tAirC, rhPct, windKmh, d    float64
		want, tol                  float64
	}{
		{"moderate", 30, 30, 30, 5, 13.0, 0.5},
		{"extreme", 45, 10, 60, 10, 172, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FFDI(tt.tAirC, tt.rhPct, tt.windKmh, tt.d)
			if absDifferent(got, tt.want, tt.tol) {
				t.Errorf("FFDI(%v,%v,%v,%v) = %v, want %v +/- %v", tt.tAirC, tt.rhPct, tt.windKmh, tt.d, got, tt.want, tt.tol)
			}
		})
	}
}

func TestFireDangerClassBanding(t *testing.T) {
	tests := []struct {
		ffdi float64
		want FireDanger
	}{
		{4, DangerLow}, {11, DangerModerate}, {23, DangerHigh},
		{49, DangerVeryHigh}, {74, DangerSevere}, {99, DangerExtreme}, {150, DangerCatastrophic},
	}
	for _, tt := range tests {
		if got := fireDangerClass(tt.ffdi); got != tt.want {
			t.Errorf("fireDangerClass(%v) = %v, want %v", tt.ffdi, got, tt.want)
		}
	}
}

func TestWeatherStateClampsAndFlagsOutOfEnvelope(t *testing.T) {
	w := NewWeatherState(1000, 50, 10, 0, 1013, 400, 5, 0)
	if w.TAirC > envTAirMax {
		t.Errorf("TAirC not clamped: %v", w.TAirC)
	}
	if !w.Warnings().Has(WarnWeatherTOutOfEnvelope) {
		t.Error("expected WarnWeatherTOutOfEnvelope to be set")
	}
}

func TestWindAtHeightIncreasesWithHeight(t *testing.T) {
	w := NewWeatherState(30, 30, 20, 0, 1013, 400, 5, 0)
	low := w.WindAtHeight(2)
	high := w.WindAtHeight(60)
	if high <= low {
		t.Errorf("expected wind to increase with height: low=%v high=%v", low, high)
	}
}

func TestAdvanceKeepsTemperatureNearClimatologicalMean(t *testing.T) {
	w := NewWeatherState(30, 30, 10, 0, 1013, 400, 5, 0)
	for i := 0; i < 240; i++ {
		w.Advance(3600, nil)
	}
	if absDifferent(w.TAirC, w.meanTAirC, 10) {
		t.Errorf("diurnal cycle drifted from climatological mean: got %v, mean %v", w.TAirC, w.meanTAirC)
	}
}
