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

	"github.com/ctessum/geom"
)

// levelSetCurvatureCoefficient is kappa_coef in spec.md §4.4 stage 5.
const levelSetCurvatureCoefficient = 0.25

// levelSetReinitInterval is N in "reinitialize every N steps" (spec.md
// §4.4 stage 5).
const levelSetReinitInterval = 5

// narrowBandHalfWidth bounds the level-set evolution to cells with
// |phi| <= this value, in meters (phi is a signed distance in meters)
// (SPEC_FULL.md supplement: narrow-band optimization, permitted but not
// required by spec.md §3). Cells outside the band keep their last computed
// phi unchanged; F (the spread speed) is only evaluated inside the band.
// The fast-sweeping reinitialization is not band-limited: it sweeps the
// whole grid.
const narrowBandHalfWidth = 8

// gradPhiUpwind computes |grad(phi)| at cell (i,j) using a first-order
// upwind (Godunov) scheme appropriate for a Hamilton-Jacobi advance,
// reading from buf (row-major, w*h) with edge-clamped neighbors.
func gradPhiUpwind(buf []float32, w, h, i, j int, cellSize float64, speedSign float64) float64 {
	get := func(ii, jj int) float64 {
		if ii < 0 {
			ii = 0
		}
		if ii >= w {
			ii = w - 1
		}
		if jj < 0 {
			jj = 0
		}
		if jj >= h {
			jj = h - 1
		}
		return float64(buf[jj*w+ii])
	}
	c := get(i, j)

	dxm := (c - get(i-1, j)) / cellSize
	dxp := (get(i+1, j) - c) / cellSize
	dym := (c - get(i, j-1)) / cellSize
	dyp := (get(i, j+1) - c) / cellSize

	var gx, gy float64
	if speedSign >= 0 {
		gx = math.Max(math.Max(dxm, 0), math.Max(-dxp, 0))
		gy = math.Max(math.Max(dym, 0), math.Max(-dyp, 0))
	} else {
		gx = math.Max(math.Max(-dxm, 0), math.Max(dxp, 0))
		gy = math.Max(math.Max(-dym, 0), math.Max(dyp, 0))
	}
	return math.Hypot(gx, gy)
}

// curvature estimates the mean curvature of the level set at (i,j) via
// central differences, used as the smoothing term kappa in F = R - kappa_coef*kappa.
func curvature(buf []float32, w, h, i, j int, cellSize float64) float64 {
	get := func(ii, jj int) float64 {
		if ii < 0 {
			ii = 0
		}
		if ii >= w {
			ii = w - 1
		}
		if jj < 0 {
			jj = 0
		}
		if jj >= h {
			jj = h - 1
		}
		return float64(buf[jj*w+ii])
	}
	phiX := (get(i+1, j) - get(i-1, j)) / (2 * cellSize)
	phiY := (get(i, j+1) - get(i, j-1)) / (2 * cellSize)
	phiXX := (get(i+1, j) - 2*get(i, j) + get(i-1, j)) / (cellSize * cellSize)
	phiYY := (get(i, j+1) - 2*get(i, j) + get(i, j-1)) / (cellSize * cellSize)
	phiXY := (get(i+1, j+1) - get(i+1, j-1) - get(i-1, j+1) + get(i-1, j-1)) / (4 * cellSize * cellSize)

	num := phiXX*phiY*phiY - 2*phiX*phiY*phiXY + phiYY*phiX*phiX
	denom := math.Pow(phiX*phiX+phiY*phiY+1e-9, 1.5)
	if denom == 0 {
		return 0
	}
	return num / denom
}

// inNarrowBand reports whether |phi| at idx is within the active band,
// using the committed buffer as the reference.
func inNarrowBand(phi []float32, idx int) bool {
	return math.Abs(float64(phi[idx])) <= narrowBandHalfWidth
}

// fastSweepReinit reinitializes phi to an approximate signed-distance
// function in place, using the classic 4-direction Godunov fast-sweeping
// iteration (Zhao 2004) until |grad(phi)| settles near 1 inside the
// narrow band. This is a light, fixed-iteration variant (no convergence
// polling) appropriate for a per-N-steps maintenance pass rather than an
// exact solve.
func fastSweepReinit(phi []float32, w, h int, cellSize float64) {
	sign := make([]float64, len(phi))
	for i, v := range phi {
		if v < 0 {
			sign[i] = -1
		} else {
			sign[i] = 1
		}
	}

	const sweeps = 4
	order := [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	for s := 0; s < sweeps; s++ {
		di, dj := order[s%4][0], order[s%4][1]
		iStart, iEnd := 0, w
		jStart, jEnd := 0, h
		if di < 0 {
			iStart, iEnd = w-1, -1
		}
		if dj < 0 {
			jStart, jEnd = h-1, -1
		}
		for j := jStart; j != jEnd; j += dj {
			for i := iStart; i != iEnd; i += di {
				idx := j*w + i
				a := math.Abs(float64(phi[idx]))
				if i-di >= 0 && i-di < w {
					a = math.Min(a, math.Abs(float64(phi[j*w+i-di]))+cellSize)
				}
				if j-dj >= 0 && j-dj < h {
					a = math.Min(a, math.Abs(float64(phi[(j-dj)*w+i]))+cellSize)
				}
				phi[idx] = float32(sign[idx] * a)
			}
		}
	}
}

// LineSegment is one endpoint-pair segment of an extracted fire-front
// polyline, in world coordinates (spec.md §4.5).
type LineSegment struct {
	A, B geom.Point
}

// Line returns seg as a geom.LineString for length/bounds queries.
func (seg LineSegment) Line() geom.LineString { return geom.LineString{seg.A, seg.B} }

// marchingSquaresCaseTable maps a 4-bit corner-sign code (bit0=bottom-
// left, bit1=bottom-right, bit2=top-right, bit3=top-left; set if phi<0)
// to the pairs of edges its segment(s) cross. Edge indices: 0=bottom,
// 1=right, 2=top, 3=left. The two ambiguous saddle cases (5, 10) emit two
// segments, matching the "up to two segments" contract in spec.md §4.5.
var marchingSquaresCaseTable = map[int][][2]int{
	1:  {{3, 0}},
	2:  {{0, 1}},
	3:  {{3, 1}},
	4:  {{1, 2}},
	5:  {{3, 0}, {1, 2}},
	6:  {{0, 2}},
	7:  {{3, 2}},
	8:  {{2, 3}},
	9:  {{2, 0}},
	10: {{0, 1}, {2, 3}},
	11: {{2, 1}},
	12: {{1, 3}},
	13: {{1, 0}},
	14: {{0, 3}},
}

// ExtractFireFront runs marching squares on phi (row-major, w*h) and
// returns world-space line segments approximating phi = 0 (spec.md §4.5).
// Pure function; never mutates phi.
func ExtractFireFront(phi []float32, w, h int, cellSize, originX, originY float64) []LineSegment {
	var segs []LineSegment
	get := func(i, j int) float32 { return phi[j*w+i] }

	edgePoint := func(i, j, edge int) (float64, float64) {
		x0 := originX + float64(i)*cellSize
		y0 := originY + float64(j)*cellSize
		x1 := x0 + cellSize
		y1 := y0 + cellSize

		lerp := func(a, b float32) float64 {
			if a == b {
				return 0.5
			}
			return float64(-a / (b - a))
		}
		switch edge {
		case 0: // bottom: (i,j)-(i+1,j)
			t := lerp(get(i, j), get(i+1, j))
			return x0 + t*(x1-x0), y0
		case 1: // right: (i+1,j)-(i+1,j+1)
			t := lerp(get(i+1, j), get(i+1, j+1))
			return x1, y0 + t*(y1-y0)
		case 2: // top: (i,j+1)-(i+1,j+1)
			t := lerp(get(i, j+1), get(i+1, j+1))
			return x0 + t*(x1-x0), y1
		default: // 3, left: (i,j)-(i,j+1)
			t := lerp(get(i, j), get(i, j+1))
			return x0, y0 + t*(y1-y0)
		}
	}

	for j := 0; j < h-1; j++ {
		for i := 0; i < w-1; i++ {
			code := 0
			if get(i, j) < 0 {
				code |= 1
			}
			if get(i+1, j) < 0 {
				code |= 2
			}
			if get(i+1, j+1) < 0 {
				code |= 4
			}
			if get(i, j+1) < 0 {
				code |= 8
			}
			if code == 0 || code == 15 {
				continue
			}
			for _, pair := range marchingSquaresCaseTable[code] {
				x0, y0 := edgePoint(i, j, pair[0])
				x1, y1 := edgePoint(i, j, pair[1])
				segs = append(segs, LineSegment{A: geom.Point{X: x0, Y: y0}, B: geom.Point{X: x1, Y: y1}})
			}
		}
	}
	return segs
}
