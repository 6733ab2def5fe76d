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

// a 4x4 grid where phi < 0 in the bottom-left 2x2 block should produce a
// front around that block's corner.
func buildTestPhiGrid(w, h int, negate func(i, j int) bool) []float32 {
	phi := make([]float32, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if negate(i, j) {
				phi[j*w+i] = -1
			} else {
				phi[j*w+i] = 1
			}
		}
	}
	return phi
}

func TestExtractFireFrontFindsSegmentsAtBoundary(t *testing.T) {
	w, h := 4, 4
	phi := buildTestPhiGrid(w, h, func(i, j int) bool { return i < 2 && j < 2 })

	segs := ExtractFireFront(phi, w, h, 1.0, 0, 0)
	if len(segs) == 0 {
		t.Fatal("expected at least one front segment at the burned/unburned boundary")
	}
	for _, s := range segs {
		if s.A.X < 0 || s.A.Y < 0 || s.B.X > float64(w) || s.B.Y > float64(h) {
			t.Errorf("segment %+v outside grid extent", s)
		}
	}
}

func TestExtractFireFrontEmptyWhenUniform(t *testing.T) {
	w, h := 4, 4
	phi := buildTestPhiGrid(w, h, func(i, j int) bool { return false })
	if segs := ExtractFireFront(phi, w, h, 1.0, 0, 0); len(segs) != 0 {
		t.Errorf("expected no segments for a uniform field, got %d", len(segs))
	}
}

func TestFastSweepReinitSignPreserved(t *testing.T) {
	w, h := 8, 8
	phi := buildTestPhiGrid(w, h, func(i, j int) bool { return i < 4 })
	before := make([]float32, len(phi))
	copy(before, phi)

	fastSweepReinit(phi, w, h, 5.0)

	for idx := range phi {
		if (before[idx] < 0) != (phi[idx] < 0) {
			t.Errorf("sign flipped at index %d during reinit: before=%v after=%v", idx, before[idx], phi[idx])
		}
	}
}
