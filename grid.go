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
	"sync"

	"github.com/ctessum/geom"
)

// fieldSet is one complete, row-major copy of the per-cell state described
// in spec.md §3. The solver double-buffers a pair of these: stages read
// the committed buffer and write the target buffer, and the buffers are
// swapped atomically at the end of a step (spec.md §4.4 stage 8).
type fieldSet struct {
	t      []float32 // temperature, K
	w      []float32 // fuel load remaining, kg/m^2
	m      []float32 // moisture fraction
	phi    []float32 // level-set signed distance, m
	sMass  []float32 // suppression mass/area, kg/m^2
	sCov   []float32 // suppression surface coverage fraction [0,1]
	sAgent []uint8   // AgentType per cell

	state      []uint8 // CellState per cell
	crown      []uint8 // CrownState per cell
	oilRemains []float32 // fraction of oil pool remaining, [0,1]
}

func newFieldSet(n int) *fieldSet {
	return &fieldSet{
		t: make([]float32, n), w: make([]float32, n), m: make([]float32, n),
		phi: make([]float32, n), sMass: make([]float32, n), sCov: make([]float32, n),
		sAgent: make([]uint8, n), state: make([]uint8, n), crown: make([]uint8, n),
		oilRemains: make([]float32, n),
	}
}

func (f *fieldSet) copyFrom(src *fieldSet) {
	copy(f.t, src.t)
	copy(f.w, src.w)
	copy(f.m, src.m)
	copy(f.phi, src.phi)
	copy(f.sMass, src.sMass)
	copy(f.sCov, src.sCov)
	copy(f.sAgent, src.sAgent)
	copy(f.state, src.state)
	copy(f.crown, src.crown)
	copy(f.oilRemains, src.oilRemains)
}

// Grid is the dense W x H lattice of cell state plus the static fuel-id
// map (spec.md §3). It owns the double-buffered field pair and a
// striped mutex bank that boundary writes take around committed-buffer
// writes. Step and the queries do not take these locks; Simulation.mu is
// what serializes them against each other and against boundary writes.
//
// Unlike the teacher's variable-resolution, r-tree-indexed InMAPdata, this
// grid is a single resolution: neighbor lookup is flat index arithmetic
// (i +/- 1, j +/- 1), not spatial search, because every cell is the same
// size and every neighbor relationship is known at construction.
type Grid struct {
	W, H     int
	CellSize float64

	fuelID []uint8 // static, read-only after construction

	committed *fieldSet // the last fully-committed snapshot; readers use this
	target    *fieldSet // the in-progress write buffer for the active step

	// cellLocks is taken by the boundary-operation writes (ignite_at,
	// apply_suppression_at) around each committed-buffer cell write; Step
	// does not take it. One mutex per cell would be wasteful at grid sizes in the
	// hundreds of thousands; instead we stripe over a fixed bank, grounded
	// on the teacher's per-cell sync.RWMutex but coarsened for memory
	// locality.
	cellLocks []sync.RWMutex
	lockBank  int
}

const gridLockBankSize = 256

// NewGrid allocates a grid of W x H cells with the given fuel-id map
// (length W*H). fuelIDs is copied; the caller's slice is not retained.
func NewGrid(w, h int, cellSize float64, fuelIDs []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrZeroExtent
	}
	n := w * h
	if len(fuelIDs) != n {
		return nil, ErrDimensionMismatch
	}
	g := &Grid{
		W: w, H: h, CellSize: cellSize,
		fuelID:    make([]uint8, n),
		committed: newFieldSet(n),
		target:    newFieldSet(n),
		lockBank:  gridLockBankSize,
	}
	copy(g.fuelID, fuelIDs)
	g.cellLocks = make([]sync.RWMutex, gridLockBankSize)
	return g, nil
}

// N returns the total cell count W*H.
func (g *Grid) N() int { return g.W * g.H }

// Index flattens (i,j) to a row-major index. Callers must ensure 0<=i<W,
// 0<=j<H; it is not bounds-checked on the hot path.
func (g *Grid) Index(i, j int) int { return j*g.W + i }

// IJ unflattens a row-major index back to (i,j).
func (g *Grid) IJ(idx int) (i, j int) { return idx % g.W, idx / g.W }

func (g *Grid) lockFor(idx int) *sync.RWMutex { return &g.cellLocks[idx%g.lockBank] }

// InBounds reports whether (i,j) is within the grid.
func (g *Grid) InBounds(i, j int) bool { return i >= 0 && i < g.W && j >= 0 && j < g.H }

// neighbors8 appends the up-to-8 von-Neumann+diagonal neighbor indices of
// idx to dst and returns the extended slice, skipping out-of-bounds
// directions. Grounded on framework.go's neighborInfo() adjacency walk,
// simplified since grid adjacency here needs no distance/fraction weights.
func (g *Grid) neighbors8(idx int, dst []int) []int {
	i, j := g.IJ(idx)
	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			if di == 0 && dj == 0 {
				continue
			}
			ni, nj := i+di, j+dj
			if g.InBounds(ni, nj) {
				dst = append(dst, g.Index(ni, nj))
			}
		}
	}
	return dst
}

// worldToIndex converts world (x,y) to a cell index, or ok=false if
// outside the domain.
func (g *Grid) worldToIndex(x, y float64) (idx int, ok bool) {
	i := int(x / g.CellSize)
	j := int(y / g.CellSize)
	if !g.InBounds(i, j) {
		return 0, false
	}
	return g.Index(i, j), true
}

// cellsInDisk returns the indices of all cells whose square intersects
// the disk of radiusM around world (x,y), along with each cell's coverage
// weight in [0,1] used by apply_suppression_at's mass distribution. The
// weight is 1 - d/radiusM, where d is the distance from (x,y) to the
// nearest point of the cell: 1.0 for the cell containing the disk center,
// tapering linearly to 0 at the edge.
func (g *Grid) cellsInDisk(x, y, radiusM float64) (idx []int, weight []float64) {
	if radiusM <= 0 {
		if i, ok := g.worldToIndex(x, y); ok {
			return []int{i}, []float64{1}
		}
		return nil, nil
	}
	center := geom.Point{X: x, Y: y}
	diskBounds := center.Bounds()
	diskBounds.Extend(geom.Point{X: x - radiusM, Y: y - radiusM}.Bounds())
	diskBounds.Extend(geom.Point{X: x + radiusM, Y: y + radiusM}.Bounds())

	cellR := int(radiusM/g.CellSize) + 1
	ci := int(x / g.CellSize)
	cj := int(y / g.CellSize)
	for dj := -cellR; dj <= cellR; dj++ {
		for di := -cellR; di <= cellR; di++ {
			i, j := ci+di, cj+dj
			if !g.InBounds(i, j) {
				continue
			}
			cellBounds := geom.Point{X: float64(i) * g.CellSize, Y: float64(j) * g.CellSize}.Bounds()
			cellBounds.Extend(geom.Point{X: float64(i+1) * g.CellSize, Y: float64(j+1) * g.CellSize}.Bounds())
			if !diskBounds.Overlaps(cellBounds) {
				continue
			}
			half := g.CellSize / 2
			dx := math.Max(math.Abs((float64(i)+0.5)*g.CellSize-center.X)-half, 0)
			dy := math.Max(math.Abs((float64(j)+0.5)*g.CellSize-center.Y)-half, 0)
			dist := math.Hypot(dx, dy)
			if dist <= radiusM {
				idx = append(idx, g.Index(i, j))
				weight = append(weight, 1-dist/radiusM)
			}
		}
	}
	return idx, weight
}
