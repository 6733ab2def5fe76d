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
	"runtime"
	"sync"

	"github.com/ctessum/atmos/advect"
)

// Stage-2 radiation and diffusion constants (spec.md §4.4 stage 2); the
// Stefan-Boltzmann constant itself is stefanBoltzmann in embers.go.
const (
	radEpsilon       = 0.95
	radKernelRadius  = 3 // Chebyshev cells, default
	diffusivityKappa = 2.5e-5 // m^2/s, still-air conductive diffusivity
)

// FieldSolver is the contract both backends implement (spec.md §4.7).
// Only the CPU backend is built here; a GPU backend would satisfy the
// same interface and is selected at construction via CreateConfig.Backend.
type FieldSolver interface {
	Step(g *Grid, ctx *stepContext)
}

// cpuCellWorkerCount mirrors the teacher's goroutine-pool sizing in
// run.go's Calculations: one worker per logical CPU, work split by
// strided index rather than by explicit chunk boundaries so uneven
// per-cell cost (e.g. only a few burning cells) still load-balances.
func cpuCellWorkerCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// parallelOverCells runs fn(idx) for every idx in [0,n) across a fixed
// worker pool, strided so worker w handles idx = w, w+workers, w+2*workers,
// ... This is the same work-splitting idiom as the teacher's
// Calculations(...)-built DomainManipulator, adapted from a linked-list
// walk to flat-index striding since this grid has no spatial index.
func parallelOverCells(n int, fn func(idx int)) {
	workers := cpuCellWorkerCount()
	if n < workers*4 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			defer wg.Done()
			for idx := start; idx < n; idx += workers {
				fn(idx)
			}
		}(w)
	}
	wg.Wait()
}

// stepContext bundles the per-step read-only inputs every stage needs:
// terrain, fuel table, weather, timing, and the RNG streams. Grounded on
// the teacher's InMAPdata fields threaded through each Calculations
// closure.
type stepContext struct {
	terrain *Terrain
	fuels   []FuelDescriptor
	weather *WeatherState
	dt      float64
	stepIdx int
	rng     *rngStreams
	events  *eventLog
	warn    *WarningSet
	warnMu  *sync.Mutex
}

func (c *stepContext) raiseWarning(bits WarningSet) {
	c.warnMu.Lock()
	c.warn.Set(bits)
	c.warnMu.Unlock()
}

func (c *stepContext) fuelFor(id uint8) *FuelDescriptor {
	if int(id) >= len(c.fuels) {
		return &c.fuels[0]
	}
	return &c.fuels[id]
}

// cpuFieldSolver is the default FieldSolver backend: a cooperative
// goroutine pool over the flat cell array, one pass per stage, barriers
// between stages (spec.md §5 "Stages are barriers").
type cpuFieldSolver struct{}

// Step advances every field by ctx.dt, implementing spec.md §4.4's
// normative 8-stage pipeline. Each stage reads g.committed and writes
// g.target; the final stage swaps the buffers.
func (cpuFieldSolver) Step(g *Grid, ctx *stepContext) {
	src := g.committed
	dst := g.target
	dst.copyFrom(src)

	stageMoistureEvaporation(g, src, dst, ctx)
	stageRadiativeDiffusive(g, src, dst, ctx)
	stageCombustionIgnition(g, src, dst, ctx)
	stageCrownCheck(g, src, dst, ctx)
	stageLevelSet(g, src, dst, ctx)
	stageSmolderingExtinction(g, src, dst, ctx)
	stageSuppressionDecay(g, src, dst, ctx)

	g.committed, g.target = g.target, g.committed
}

// stage 1: moisture evaporation.
func stageMoistureEvaporation(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	parallelOverCells(g.N(), func(idx int) {
		fuel := ctx.fuelFor(g.fuelID[idx])
		tK := float64(src.t[idx])
		w := float64(src.w[idx])
		m := float64(src.m[idx])
		if m <= 0 || w <= 0 {
			return
		}
		ambientK := ctx.weather.TAirC + 273.15
		heatAvailable := math.Max(0, tK-ambientK) * 1000 // crude per-area energy proxy, kJ/m^2 equivalent
		evapCapacity := m * w * LatentHeatVaporizationWater
		drained := math.Min(heatAvailable, evapCapacity)
		if evapCapacity > 0 {
			mDrop := drained / evapCapacity * m
			dst.m[idx] = float32(math.Max(0, m-mDrop))
		}
		emc := EquilibriumMoistureContent(ctx.weather.RHPercent, ctx.weather.TAirC)
		dst.m[idx] = float32(NelsonTimelag(float64(dst.m[idx]), emc, fuel.TimelagClass, tK, ctx.dt))
	})
}

// stage 2: radiative + diffusive heat transfer.
func stageRadiativeDiffusive(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	windVec := ctx.weather.WindVector()
	windSpeed := windVec.Length()
	var windDirX, windDirY float64
	if windSpeed > 1e-6 {
		windDirX, windDirY = windVec.X/windSpeed, windVec.Y/windSpeed
	}

	parallelOverCells(g.N(), func(idx int) {
		i, j := g.IJ(idx)
		tTarget := float64(src.t[idx])

		var qIn float64
		for dj := -radKernelRadius; dj <= radKernelRadius; dj++ {
			for di := -radKernelRadius; di <= radKernelRadius; di++ {
				if di == 0 && dj == 0 {
					continue
				}
				si, sj := i+di, j+dj
				if !g.InBounds(si, sj) {
					continue
				}
				sIdx := g.Index(si, sj)
				if src.state[sIdx] != uint8(StateFlaming) {
					continue
				}
				tSource := float64(src.t[sIdx])
				if tSource <= tTarget {
					continue
				}
				rCells := math.Hypot(float64(di), float64(dj))
				rM := rCells * g.CellSize
				if rM <= 0 {
					continue
				}
				viewFactor := clampF(1/(math.Pi*rM*rM), 0, 1)

				dirX, dirY := float64(di)/rCells, float64(dj)/rCells
				align := dirX*windDirX + dirY*windDirY
				var mWind float64
				const alpha = 2.5
				const beta = 0.35
				if align > 0 {
					mWind = 1 + alpha*windSpeed*align
				} else {
					mWind = math.Exp(beta * windSpeed * align)
				}

				mVertical := 1.0
				srcElev := ctx.terrain.elevAtCell(sIdx)
				tgtElev := ctx.terrain.elevAtCell(idx)
				if tgtElev > srcElev+0.5 {
					mVertical = 2.5
				} else if tgtElev < srcElev-0.5 {
					mVertical = 0.7
				}

				q := radEpsilon * stefanBoltzmann * (math.Pow(tSource, 4) - math.Pow(tTarget, 4)) * viewFactor * mWind * mVertical

				agent := AgentType(src.sAgent[idx])
				cov := float64(src.sCov[idx])
				q *= suppressionHeatModifier(agent, cov)
				if q < 0 {
					q = 0
				}
				qIn += q
			}
		}

		// Conductive diffusion: 5-point Laplacian, stability-bounded.
		kappaDtH2 := diffusivityKappa * ctx.dt / (g.CellSize * g.CellSize)
		if kappaDtH2 > 0.25 {
			kappaDtH2 = 0.25
			ctx.raiseWarning(WarnCFLClamped)
		}
		lap := -4 * tTarget
		for _, n := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			ni, nj := i+n[0], j+n[1]
			if g.InBounds(ni, nj) {
				lap += float64(src.t[g.Index(ni, nj)])
			} else {
				lap += tTarget
			}
		}
		diffusion := kappaDtH2 * lap

		// Advective transport of hot air downwind, upwind-differenced per
		// axis the way the teacher's advect.UpwindFlux assembles a single
		// face's flux in its grid-cell advection routines.
		tUpwindX := tTarget
		if windVec.X > 0 && g.InBounds(i-1, j) {
			tUpwindX = float64(src.t[g.Index(i-1, j)])
		} else if windVec.X < 0 && g.InBounds(i+1, j) {
			tUpwindX = float64(src.t[g.Index(i+1, j)])
		}
		tUpwindY := tTarget
		if windVec.Y > 0 && g.InBounds(i, j-1) {
			tUpwindY = float64(src.t[g.Index(i, j-1)])
		} else if windVec.Y < 0 && g.InBounds(i, j+1) {
			tUpwindY = float64(src.t[g.Index(i, j+1)])
		}
		fluxX := advect.UpwindFlux(windVec.X, tUpwindX, tTarget, g.CellSize)
		fluxY := advect.UpwindFlux(windVec.Y, tUpwindY, tTarget, g.CellSize)
		advection := (fluxX + fluxY) * ctx.dt

		sinkKJ := suppressionEvaporationSinkKJ(AgentType(src.sAgent[idx]), float64(src.sMass[idx]))
		netQ := math.Max(0, qIn-sinkKJ)

		const thermalMassProxy = 500.0 // kJ/(m^2*K), lumps cell heat capacity
		dT := netQ/thermalMassProxy + diffusion + advection
		newT := tTarget + dT
		ambientK := ctx.weather.TAirC + 273.15
		if newT < ambientK {
			newT = ambientK
		}
		if math.IsNaN(newT) || math.IsInf(newT, 0) {
			newT = ambientK
			ctx.raiseWarning(WarnCFLClamped)
		}
		dst.t[idx] = float32(newT)
	})
}

// stage 3: combustion & ignition.
func stageCombustionIgnition(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	parallelOverCells(g.N(), func(idx int) {
		fuel := ctx.fuelFor(g.fuelID[idx])
		state := CellState(src.state[idx])
		tK := float64(dst.t[idx])
		w := float64(src.w[idx])
		m := float64(src.m[idx])

		moistureBarrier := m < fuel.MoistureOfExtinction
		if state == StateUnignited && tK >= fuel.IgnitionTempK && w > 0 && moistureBarrier {
			dst.state[idx] = uint8(StateFlaming)
			state = StateFlaming
			ctx.events.push(IgnitionEvent{StepIndex: ctx.stepIdx, CellIndex: idx, Cause: IgnitionCauseFrontAdvance, SpotSourceCell: -1})
		}

		if state != StateFlaming {
			return
		}

		sCov := float64(src.sCov[idx])
		const kConsume = 4e-4 // 1/s, oxygen-limited consumption rate
		dwdt := -kConsume * w * math.Max(0, 1-sCov*0.3)
		dw := dwdt * ctx.dt
		newW := math.Max(0, w+dw)
		dst.w[idx] = float32(newW)

		heatRelease := fuel.HeatContent * math.Abs(dw)
		dst.t[idx] = float32(tK + heatRelease)

		if fuel.OilContent > 0 && src.oilRemains[idx] > 0 && tK >= fuel.OilAutoignitionTempK {
			oilMass := fuel.OilContent * w
			oilHeat := fuel.OilHeatContent * oilMass
			dst.t[idx] += float32(oilHeat)
			dst.oilRemains[idx] = 0
		}
	})
}

// stage 4: crown-fire check (Van Wagner).
func stageCrownCheck(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	parallelOverCells(g.N(), func(idx int) {
		if CellState(dst.state[idx]) != StateFlaming {
			return
		}
		fuel := ctx.fuelFor(g.fuelID[idx])
		w := float64(src.w[idx] - dst.w[idx])
		if w < 0 {
			w = 0
		}
		spreadRate := w / math.Max(ctx.dt, 1e-6) / math.Max(fuel.BulkDensity, 1e-6)
		intensity := ByramIntensity(fuel.HeatContent, w, spreadRate)
		dst.crown[idx] = uint8(crownTransition(intensity, spreadRate, fuel))
	})
}

// stage 5: level-set evolution.
func stageLevelSet(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	parallelOverCells(g.N(), func(idx int) {
		if !inNarrowBand(src.phi, idx) {
			dst.phi[idx] = src.phi[idx]
			return
		}
		i, j := g.IJ(idx)
		fuel := ctx.fuelFor(g.fuelID[idx])
		windVec := ctx.weather.WindVector()
		slopeDeg := ctx.terrain.slopeAtCell(idx)

		gradMag := gradPhiUpwind(src.phi, g.W, g.H, i, j, g.CellSize, -1)
		if gradMag == 0 {
			dst.phi[idx] = src.phi[idx]
			return
		}

		// Spread direction approximated by the gradient of phi, which is
		// the outward normal since phi<0 inside the burned region.
		get := func(ii, jj int) float64 {
			if ii < 0 {
				ii = 0
			}
			if ii >= g.W {
				ii = g.W - 1
			}
			if jj < 0 {
				jj = 0
			}
			if jj >= g.H {
				jj = g.H - 1
			}
			return float64(src.phi[jj*g.W+ii])
		}
		nx := (get(i+1, j) - get(i-1, j)) / (2 * g.CellSize)
		ny := (get(i, j+1) - get(i, j-1)) / (2 * g.CellSize)
		nLen := math.Hypot(nx, ny)
		align := 1.0
		windAtFlame := windVec.Length()
		if nLen > 1e-9 && windAtFlame > 1e-9 {
			align = (nx*windVec.X + ny*windVec.Y) / (nLen * windAtFlame)
		}

		r := RothermelSpreadRate(RothermelSpreadInputs{
			Fuel:               fuel,
			MoistureFraction:   float64(src.m[idx]),
			MidflameWindMs:     windAtFlame,
			SlopeDeg:           slopeDeg,
			WindSlopeAlignment: align,
		})
		kappa := curvature(src.phi, g.W, g.H, i, j, g.CellSize)
		f := r - levelSetCurvatureCoefficient*kappa

		dphi := -f * gradMag * ctx.dt
		dst.phi[idx] = float32(float64(src.phi[idx]) + dphi)
	})

	if ctx.stepIdx > 0 && ctx.stepIdx%levelSetReinitInterval == 0 {
		fastSweepReinit(dst.phi, g.W, g.H, g.CellSize)
		maxGrad := 0.0
		for j := 0; j < g.H; j++ {
			for i := 0; i < g.W; i++ {
				gr := gradPhiUpwind(dst.phi, g.W, g.H, i, j, g.CellSize, -1)
				if gr > maxGrad {
					maxGrad = gr
				}
			}
		}
		if maxGrad > 1.5 || maxGrad < 0.5 {
			ctx.raiseWarning(WarnLevelSetReinitDrift)
		}
	}
}

// stage 6: smoldering / extinction.
func stageSmolderingExtinction(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	const smolderFuelThreshold = 0.05 // kg/m^2

	parallelOverCells(g.N(), func(idx int) {
		state := CellState(dst.state[idx])
		if state != StateFlaming && state != StateSmoldering {
			return
		}
		fuel := ctx.fuelFor(g.fuelID[idx])
		w := float64(dst.w[idx])
		m := float64(dst.m[idx])

		if state == StateFlaming && w < smolderFuelThreshold {
			dst.state[idx] = uint8(StateSmoldering)
			state = StateSmoldering
		}
		if w <= 0 || m > fuel.MoistureOfExtinction {
			dst.state[idx] = uint8(StateExtinct)
		}
	})
}

// stage 7: suppression decay.
func stageSuppressionDecay(g *Grid, src, dst *fieldSet, ctx *stepContext) {
	parallelOverCells(g.N(), func(idx int) {
		if dst.sMass[idx] <= 0 {
			return
		}
		applySuppressionDecay(&dst.sMass[idx], &dst.sCov[idx], &dst.sAgent[idx],
			ctx.weather.SolarWm2, ctx.weather.TAirC, ctx.weather.RHPercent, ctx.dt)
	})
}
