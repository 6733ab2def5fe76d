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
	"sync"

	"github.com/sirupsen/logrus"
)

// Backend selects the field-solver implementation at construction time
// (spec.md §4.7). Only BackendCPU is implemented; BackendGPU falls back
// to the CPU solver. No warning bit is raised for that fallback.
type Backend uint8

// Backend kinds.
const (
	BackendCPU Backend = iota
	BackendGPU
)

// Stats is the aggregate diagnostic snapshot returned by get_stats()
// (spec.md §6).
type Stats struct {
	BurningCells         int
	TotalFuelConsumed    float64
	TotalFuelRemainingKg float64
	MeanMoistureFraction float64
	ActiveEmbers         int
	SimTimeS             float64
}

// Simulation is the opaque handle a host holds (spec.md §3 "Ownership").
// It exclusively owns the grid, ember pool, weather state, terrain, and
// event buffers; nothing here is shared across instances, matching the
// "no global mutable state" design note (spec.md §9).
type Simulation struct {
	mu sync.Mutex // serializes Step against concurrent boundary calls

	grid    *Grid
	terrain *Terrain
	fuels   []FuelDescriptor
	weather *WeatherState
	embers  *emberSubsystem
	events  *eventLog

	solver  FieldSolver
	backend Backend
	quality QualityPreset

	rng *rngStreams

	simTimeS    float64
	stepIdx     int
	warnings    WarningSet
	warnMu      sync.Mutex

	totalFuelConsumed float64
	destroyed         bool

	logger *logrus.Entry
}

// CreateConfig bundles construction-time parameters (spec.md §6
// "create(...)").
type CreateConfig struct {
	GridWidth, GridHeight int
	CellSizeM             float64
	TerrainElevations     []float32
	FuelIDs               []uint8
	FuelTable             []FuelDescriptor // defaults to StandardFuels if nil
	InitialWeather        *WeatherState
	Quality               QualityPreset
	Seed                  int64
	Backend               Backend
}

// Create constructs a new Simulation (spec.md §6). All caller-supplied
// arrays are copied; the returned handle owns independent storage.
func Create(cfg CreateConfig) (*Simulation, error) {
	if cfg.GridWidth <= 0 || cfg.GridHeight <= 0 {
		return nil, ErrZeroExtent
	}
	n := cfg.GridWidth * cfg.GridHeight
	if len(cfg.FuelIDs) != n || len(cfg.TerrainElevations) != n {
		return nil, ErrDimensionMismatch
	}

	g, err := NewGrid(cfg.GridWidth, cfg.GridHeight, cfg.CellSizeM, cfg.FuelIDs)
	if err != nil {
		return nil, err
	}
	terrain := NewTerrain(cfg.GridWidth, cfg.GridHeight, cfg.CellSizeM, cfg.TerrainElevations)

	fuels := cfg.FuelTable
	if fuels == nil {
		fuels = StandardFuels
	}
	for _, id := range cfg.FuelIDs {
		if int(id) >= len(fuels) {
			return nil, newIndexError(ErrInvalidFuelID, int(id))
		}
	}

	weather := cfg.InitialWeather
	if weather == nil {
		weather = NewWeatherState(25, 40, 10, 0, 1013, 400, 3, 0)
	}

	quality := cfg.Quality
	if quality.EmberPoolCapacity == 0 {
		quality = QualityBalanced
	}

	backend := cfg.Backend
	solver := FieldSolver(cpuFieldSolver{})
	if backend == BackendGPU {
		// No GPU compute backend is wired in this build; fall back per
		// spec.md §7.
		backend = BackendCPU
	}

	ambientK := weather.TAirC + 273.15
	for i := range g.committed.t {
		g.committed.t[i] = float32(ambientK)
		g.committed.phi[i] = float32(cfg.CellSizeM * 1000) // far outside any front initially
		fuel := &fuels[g.fuelID[i]]
		g.committed.w[i] = float32(fuel.BulkDensity)
		g.committed.m[i] = float32(EquilibriumMoistureContent(weather.RHPercent, weather.TAirC))
		g.committed.oilRemains[i] = 1
	}
	g.target.copyFrom(g.committed)

	s := &Simulation{
		grid: g, terrain: terrain, fuels: fuels, weather: weather,
		embers:  newEmberSubsystem(quality.EmberPoolCapacity),
		events:  newEventLog(quality.EventLogCapacity),
		solver:  solver,
		backend: backend,
		quality: quality,
		rng:     newRNGStreams(cfg.Seed),
		logger:  newLogger().WithField("component", "simulation"),
	}
	s.logger.WithFields(logrus.Fields{
		"width": cfg.GridWidth, "height": cfg.GridHeight, "cell_size_m": cfg.CellSizeM,
		"backend": backendName(backend), "quality": quality.Name,
	}).Info("simulation created")
	return s, nil
}

func backendName(b Backend) string {
	if b == BackendGPU {
		return "gpu"
	}
	return "cpu"
}

// Destroy releases all resources owned by the simulation (spec.md §6
// "destroy(handle)"). Subsequent calls on s are caller errors.
func (s *Simulation) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	s.grid = nil
	s.embers = nil
	s.events = nil
}

func (s *Simulation) checkAlive() error {
	if s == nil || s.destroyed {
		return ErrInvalidHandle
	}
	return nil
}

// cflStableDt returns the largest stable Δt for the conductive-diffusion
// stability bound kappa*Δt <= h^2/4 (spec.md §4.4 stage 2).
func (s *Simulation) cflStableDt() float64 {
	h := s.grid.CellSize
	return h * h / (4 * diffusivityKappa)
}

// Step advances the simulation by dtSeconds (spec.md §6 "step(handle,
// Δt_s)"). Δt outside (0, 1.0] or above the CFL-stable limit is clamped
// and flagged, never rejected.
func (s *Simulation) Step(dtSeconds float64) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := dtSeconds
	if dt <= 0 {
		dt = 1e-3
		s.warnings.Set(WarnCFLClamped)
	}
	if dt > 1.0 {
		dt = 1.0
		s.warnings.Set(WarnCFLClamped)
	}
	if maxDt := s.cflStableDt(); dt > maxDt {
		dt = maxDt
		s.warnings.Set(WarnCFLClamped)
	}

	s.weather.Advance(dt, s.rng.field)

	ctx := &stepContext{
		terrain: s.terrain, fuels: s.fuels, weather: s.weather,
		dt: dt, stepIdx: s.stepIdx, rng: s.rng, events: s.events,
		warn: &s.warnings, warnMu: &s.warnMu,
	}

	fuelBefore := make([]float32, 0)
	if s.stepIdx%64 == 0 { // periodic conservation bookkeeping, not per-step to avoid O(N) every call
		fuelBefore = append(fuelBefore, s.grid.committed.w...)
	}

	s.solver.Step(s.grid, ctx)

	if len(fuelBefore) > 0 {
		var consumed float64
		for i, before := range fuelBefore {
			consumed += float64(before) - float64(s.grid.committed.w[i])
		}
		if consumed > 0 {
			s.totalFuelConsumed += consumed
		}
	}

	segs := ExtractFireFront(s.grid.committed.phi, s.grid.W, s.grid.H, s.grid.CellSize, 0, 0)
	s.embers.emitFromFront(segs,
		func(x, y float64) float64 { return s.intensityAtUnlocked(x, y, s.grid.CellSize) },
		func(x, y float64) (*FuelDescriptor, CrownState) {
			idx, ok := s.grid.worldToIndex(x, y)
			if !ok {
				return nil, CrownNone
			}
			return s.fuels0(idx), CrownState(s.grid.committed.crown[idx])
		},
		s.simTimeS, s.rng.emberEmit)
	s.embers.integrateAndLand(s.grid, s.terrain, s.fuels, s.weather, dt, s.simTimeS, s.rng.emberIgnite)

	s.simTimeS += dt
	s.stepIdx++
	return nil
}

func (s *Simulation) fuels0(idx int) *FuelDescriptor {
	id := s.grid.fuelID[idx]
	if int(id) >= len(s.fuels) {
		return &s.fuels[0]
	}
	return &s.fuels[id]
}
