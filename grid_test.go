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

func TestNewGridRejectsMismatchedFuelIDs(t *testing.T) {
	if _, err := NewGrid(4, 4, 5, make([]uint8, 3)); err != ErrDimensionMismatch {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNewGridRejectsZeroExtent(t *testing.T) {
	if _, err := NewGrid(0, 4, 5, nil); err != ErrZeroExtent {
		t.Errorf("expected ErrZeroExtent, got %v", err)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g, err := NewGrid(10, 7, 5, make([]uint8, 70))
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < g.H; j++ {
		for i := 0; i < g.W; i++ {
			idx := g.Index(i, j)
			gi, gj := g.IJ(idx)
			if gi != i || gj != j {
				t.Fatalf("round trip failed for (%d,%d): got (%d,%d)", i, j, gi, gj)
			}
		}
	}
}

func TestNeighbors8CountsCornerVsInterior(t *testing.T) {
	g, err := NewGrid(5, 5, 5, make([]uint8, 25))
	if err != nil {
		t.Fatal(err)
	}
	corner := g.neighbors8(g.Index(0, 0), nil)
	if len(corner) != 3 {
		t.Errorf("expected 3 neighbors at a corner, got %d", len(corner))
	}
	interior := g.neighbors8(g.Index(2, 2), nil)
	if len(interior) != 8 {
		t.Errorf("expected 8 neighbors in the interior, got %d", len(interior))
	}
}

func TestCellsInDiskIncludesCenterWithFullWeight(t *testing.T) {
	g, err := NewGrid(20, 20, 5, make([]uint8, 400))
	if err != nil {
		t.Fatal(err)
	}
	idxs, weights := g.cellsInDisk(50, 50, 10)
	if len(idxs) == 0 {
		t.Fatal("expected at least one cell in the disk")
	}
	foundCenter := false
	for k, idx := range idxs {
		if idx == g.Index(10, 10) {
			foundCenter = true
			if weights[k] < 0.9 {
				t.Errorf("expected near-full weight at disk center, got %v", weights[k])
			}
		}
	}
	if !foundCenter {
		t.Error("expected the cell under the disk center to be included")
	}
}
