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

// Terrain holds an elevation grid plus the slope and aspect precomputed
// from it by Horn's method (spec.md §4.1). It is created once at
// simulation construction and is read-only thereafter.
type Terrain struct {
	w, h     int
	cellSize float64
	elev     []float32 // meters, row-major, length w*h
	slopeDeg []float32 // degrees, precomputed
	aspect   []float32 // degrees, 0 = N, 90 = E, precomputed
}

// NewTerrain builds a Terrain from a row-major elevation array of length
// w*h and precomputes slope/aspect via Horn's 3x3 kernel.
func NewTerrain(w, h int, cellSize float64, elevations []float32) *Terrain {
	t := &Terrain{
		w: w, h: h, cellSize: cellSize,
		elev:     make([]float32, w*h),
		slopeDeg: make([]float32, w*h),
		aspect:   make([]float32, w*h),
	}
	copy(t.elev, elevations)
	t.computeSlopeAspect()
	return t
}

// at clamps (i,j) to the grid edges, implementing Horn's "duplicate edge
// cell" boundary handling.
func (t *Terrain) at(i, j int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= t.w {
		i = t.w - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= t.h {
		j = t.h - 1
	}
	return float64(t.elev[j*t.w+i])
}

// computeSlopeAspect applies Horn's (1981) weighted 3x3 central-difference
// kernel: weight 2 on the four axis-aligned neighbors, weight 1 on the
// four diagonals, divisor 8h.
func (t *Terrain) computeSlopeAspect() {
	h := t.cellSize
	for j := 0; j < t.h; j++ {
		for i := 0; i < t.w; i++ {
			// z1..z9 are the standard Horn numbering, z5 = center.
			z1 := t.at(i-1, j+1)
			z2 := t.at(i, j+1)
			z3 := t.at(i+1, j+1)
			z4 := t.at(i-1, j)
			z6 := t.at(i+1, j)
			z7 := t.at(i-1, j-1)
			z8 := t.at(i, j-1)
			z9 := t.at(i+1, j-1)

			dzdx := ((z3 + 2*z6 + z9) - (z1 + 2*z4 + z7)) / (8 * h)
			dzdy := ((z1 + 2*z2 + z3) - (z7 + 2*z8 + z9)) / (8 * h)

			slopeRad := math.Atan(math.Hypot(dzdx, dzdy))
			slope := slopeRad * 180 / math.Pi

			var aspect float64
			if dzdx == 0 && dzdy == 0 {
				aspect = -1 // flat, no defined aspect; report 0 like spec's "no error"
			} else {
				aspect = math.Atan2(dzdy, -dzdx) * 180 / math.Pi
				// Convert from math convention (0=E, CCW) to compass
				// convention (0=N, CW).
				aspect = 90 - aspect
				for aspect < 0 {
					aspect += 360
				}
				for aspect >= 360 {
					aspect -= 360
				}
			}
			if aspect < 0 {
				aspect = 0
			}
			idx := j*t.w + i
			t.slopeDeg[idx] = float32(slope)
			t.aspect[idx] = float32(aspect)
		}
	}
}

// worldToGrid converts world coordinates to fractional grid indices.
func (t *Terrain) worldToGrid(x, y float64) (fi, fj float64, ok bool) {
	fi = x / t.cellSize
	fj = y / t.cellSize
	if fi < 0 || fj < 0 || fi > float64(t.w) || fj > float64(t.h) {
		return 0, 0, false
	}
	return fi, fj, true
}

// bilinear interpolates field f (row-major, w*h) at fractional grid
// coordinates (fi, fj), where integer coordinates are cell centers offset
// by -0.5 (cell (i,j) center is at grid coordinate i+0.5, j+0.5).
func (t *Terrain) bilinear(f []float32, fi, fj float64) float64 {
	x := fi - 0.5
	y := fj - 0.5
	i0 := int(math.Floor(x))
	j0 := int(math.Floor(y))
	tx := x - float64(i0)
	ty := y - float64(j0)

	get := func(i, j int) float64 {
		if i < 0 {
			i = 0
		}
		if i >= t.w {
			i = t.w - 1
		}
		if j < 0 {
			j = 0
		}
		if j >= t.h {
			j = t.h - 1
		}
		return float64(f[j*t.w+i])
	}
	v00 := get(i0, j0)
	v10 := get(i0+1, j0)
	v01 := get(i0, j0+1)
	v11 := get(i0+1, j0+1)
	return v00*(1-tx)*(1-ty) + v10*tx*(1-ty) + v01*(1-tx)*ty + v11*tx*ty
}

// nearestIndex returns the flattened cell index nearest to world (x,y).
func (t *Terrain) nearestIndex(fi, fj float64) int {
	i := int(fi)
	j := int(fj)
	if i < 0 {
		i = 0
	}
	if i >= t.w {
		i = t.w - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= t.h {
		j = t.h - 1
	}
	return j*t.w + i
}

// ElevationAt returns the bilinearly interpolated elevation at world (x,y)
// in meters. Out-of-domain queries return 0, never an error (spec.md
// §4.1).
func (t *Terrain) ElevationAt(x, y float64) float64 {
	fi, fj, ok := t.worldToGrid(x, y)
	if !ok {
		return 0
	}
	return t.bilinear(t.elev, fi, fj)
}

// SlopeAt returns the nearest-cell slope in degrees at world (x,y).
// Out-of-domain queries return 0.
func (t *Terrain) SlopeAt(x, y float64) float64 {
	fi, fj, ok := t.worldToGrid(x, y)
	if !ok {
		return 0
	}
	return float64(t.slopeDeg[t.nearestIndex(fi, fj)])
}

// AspectAt returns the nearest-cell aspect in degrees (0=N, 90=E) at world
// (x,y). Out-of-domain queries return 0.
func (t *Terrain) AspectAt(x, y float64) float64 {
	fi, fj, ok := t.worldToGrid(x, y)
	if !ok {
		return 0
	}
	return float64(t.aspect[t.nearestIndex(fi, fj)])
}

// slopeAtCell and aspectAtCell give the field solver direct index access
// without the world<->grid round trip the boundary queries need.
func (t *Terrain) slopeAtCell(idx int) float64  { return float64(t.slopeDeg[idx]) }
func (t *Terrain) aspectAtCell(idx int) float64 { return float64(t.aspect[idx]) }
func (t *Terrain) elevAtCell(idx int) float64   { return float64(t.elev[idx]) }
