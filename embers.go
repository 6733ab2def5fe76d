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
	"sort"

	"github.com/ctessum/geom"
)

// Constants governing ember transport and landing ignition (spec.md
// §4.6).
const (
	emberGravity         = 9.81  // m/s^2
	emberAirDensity      = 1.2   // kg/m^3
	emberDragCoefficient = 1.2   // C_d, irregular shape
	stefanBoltzmann      = 5.67e-8
	emberEmissivity      = 0.9
	ambientConvectiveH   = 15.0 // forced-convection heat transfer coefficient, W/m^2K

	emberLandingHeightM   = 1.0
	emberIgnitionFloorK   = 473.0 // below this, ember extinguishes rather than continuing
	emberIgnitionRefK     = 523.0
	emberIgnitionSpanK    = 150.0
	emberMaxSpotDistanceM = 37000.0
	emberSubstepsPerStep  = 4 // k in Δt_ember <= Δt/k

	emberMinTerminalVel = 1.0
	emberMaxTerminalVel = 10.0
)

// AlbiniLoftHeight returns the maximum lofting height (m) for a firebrand
// launched from a fire of fireline intensity I (kW/m), using the simple
// power-law form `z_max = 12.2 * I^0.4` (spec.md §4.6; the alternative
// buoyancy-plume form is also published but the spec's open question
// §9(c) only requires picking and documenting one — this build uses the
// power-law form since it needs no ambient-temperature input at the
// call site).
func AlbiniLoftHeight(intensityKWm float64) float64 {
	if intensityKWm <= 0 {
		return 0
	}
	return 12.2 * math.Pow(intensityKWm, 0.4)
}

// emberEmissionRate returns the expected number of embers emitted per
// second from one meter of fire front at intensity I (kW/m) and fuel
// ember-shed rate, scaled by the cell's crown state (spec.md §4.4 stage 4
// "ember shedding is raised", §4.6 "launch probability... bounded by
// intensity / configured cap").
func emberEmissionRate(intensityKWm float64, fuel *FuelDescriptor, crown CrownState) float64 {
	const emissionCapKWm = 20000
	frac := clampF(intensityKWm/emissionCapKWm, 0, 1)
	return fuel.EmberShedRate * frac * intensityKWm * emberShedMultiplier(crown)
}

// emberTerminalDiameter and emberTerminalMass pick a representative size
// for a newly emitted ember; a fixed nominal size keeps the ballistic
// model tractable without a full brand-size distribution, which the spec
// does not require (curl/length shape factor is explicitly reserved,
// spec.md §9(a)).
const (
	emberNominalDiameterM = 0.01
	emberNominalMassKg    = 0.0008
)

// windAtVerticalProfile samples the weather vertical wind profile at
// height z and returns a 3-D wind vector (z-component always 0; no
// updraft term is modeled beyond the lofting height itself).
func windAtVerticalProfile(w *WeatherState, z float64) Vec3 {
	speed := w.WindAtHeight(z)
	dir := WindAzimuthToVector(w.WindAzimuthDeg, speed)
	return Vec3{X: dir.X, Y: dir.Y, Z: 0}
}

// integrateEmberSubstep advances one ember by dt seconds using
// semi-implicit Euler (spec.md §4.6 "Integration"): drag against the
// local wind, gravity, and Stefan-Boltzmann plus forced-convection
// cooling.
func integrateEmberSubstep(e *Ember, w *WeatherState, dt float64) {
	wind := windAtVerticalProfile(w, e.PosZ)

	relX := e.VelX - wind.X
	relY := e.VelY - wind.Y
	relZ := e.VelZ - wind.Z
	relSpeed := math.Sqrt(relX*relX + relY*relY + relZ*relZ)

	area := math.Pi * (e.DiameterM / 2) * (e.DiameterM / 2)
	mass := e.MassKg
	if mass <= 0 {
		mass = emberNominalMassKg
	}
	dragScale := 0.0
	if relSpeed > 0 {
		dragScale = emberDragCoefficient * emberAirDensity * area / (2 * mass) * relSpeed
	}

	axDrag := -dragScale * relX
	ayDrag := -dragScale * relY
	azDrag := -dragScale * relZ

	e.VelX += axDrag * dt
	e.VelY += ayDrag * dt
	e.VelZ += (azDrag - emberGravity) * dt

	// Clamp descent speed into the terminal-velocity band for
	// shape-irregular embers (spec.md §4.6).
	if e.VelZ < -emberMaxTerminalVel {
		e.VelZ = -emberMaxTerminalVel
	} else if e.VelZ < 0 && e.VelZ > -emberMinTerminalVel {
		e.VelZ = -emberMinTerminalVel
	}

	e.Pos.X += e.VelX * dt
	e.Pos.Y += e.VelY * dt
	e.PosZ += e.VelZ * dt
	if e.PosZ < 0 {
		e.PosZ = 0
	}

	// Cooling: radiative (Stefan-Boltzmann) plus forced convection, both
	// losing heat to ambient air at w.TAirC.
	ambientK := w.TAirC + 273.15
	surfaceArea := math.Pi * e.DiameterM * e.DiameterM // sphere approx, 4*pi*r^2 ~ pi*d^2
	radLoss := emberEmissivity * stefanBoltzmann * surfaceArea * (math.Pow(e.TemperatureK, 4) - math.Pow(ambientK, 4))
	convLoss := ambientConvectiveH * surfaceArea * (e.TemperatureK - ambientK)
	specificHeatChar := 1260.0 // approximate char specific heat, J/(kg*K)
	heatCapacity := mass * specificHeatChar
	if heatCapacity > 0 {
		e.TemperatureK -= (radLoss + convLoss) * dt / heatCapacity
	}
	if e.TemperatureK < ambientK {
		e.TemperatureK = ambientK
	}
}

// spotFireEvent is one landed-and-ignited ember record (spec.md §3).
type spotFireEvent struct {
	EmberID   uint64
	Pos       geom.Point
	CellIndex int
	SimTimeS  float64
}

// emberSubsystem owns the pool and the per-step emission/integration/
// landing pipeline.
type emberSubsystem struct {
	pool   *emberPool
	events []spotFireEvent
}

func newEmberSubsystem(capacity int) *emberSubsystem {
	return &emberSubsystem{pool: newEmberPool(capacity)}
}

// emitFromFront samples the fire-front polylines (already extracted by
// the caller this step) proportionally to local intensity and spawns new
// embers (spec.md §4.6 "Emission").
func (es *emberSubsystem) emitFromFront(segs []LineSegment, intensityAt func(x, y float64) float64, fuelAt func(x, y float64) (*FuelDescriptor, CrownState), simTimeS float64, rng *rngStream) {
	for _, seg := range segs {
		mid := geom.Point{X: (seg.A.X + seg.B.X) / 2, Y: (seg.A.Y + seg.B.Y) / 2}
		intensity := intensityAt(mid.X, mid.Y)
		if intensity <= 0 {
			continue
		}
		fuel, crown := fuelAt(mid.X, mid.Y)
		if fuel == nil {
			continue
		}
		rate := emberEmissionRate(intensity, fuel, crown)
		length := seg.Line().Length()
		expected := rate * length
		p := clampF(expected, 0, 1)
		if rng.Float64() >= p {
			continue
		}

		zMax := AlbiniLoftHeight(intensity)
		launchSpeed := math.Sqrt(2 * emberGravity * math.Max(zMax, 1))

		init := Ember{
			Pos: mid, PosZ: 1,
			VelX: 0, VelY: 0, VelZ: launchSpeed,
			TemperatureK:  fuel.IgnitionTempK + 200,
			MassKg:        emberNominalMassKg,
			DiameterM:     emberNominalDiameterM,
			OriginFuelID:  0,
			EmissionTimeS: simTimeS,
			Launch:        mid,
		}
		_, evicted := es.pool.spawn(init)
		if evicted {
			// The oldest live ember has been replaced. No warning bit is
			// raised for this: WarnEmberPoolSaturated is not set anywhere.
		}
	}
}

// emberLandingCandidate pairs a landed ember's pool index with the data
// the serialized resolution pass needs.
type emberLandingCandidate struct {
	idx           int32
	emissionTimeS float64
	id            uint64
}

// integrateAndLand advances every live ember by dtStep seconds in
// emberSubstepsPerStep substeps, then resolves landings in a
// deterministic, serialized order (oldest emission time first, ties
// broken by ember id) per spec.md §4.6 "Parallelism".
func (es *emberSubsystem) integrateAndLand(g *Grid, terrain *Terrain, fuels []FuelDescriptor, w *WeatherState, dtStep, simTimeS float64, ignite *rngStream) {
	sub := dtStep / emberSubstepsPerStep
	var landed []emberLandingCandidate

	es.pool.forEachLive(func(idx int32, e *Ember) {
		for s := 0; s < emberSubstepsPerStep; s++ {
			integrateEmberSubstep(e, w, sub)
		}
		dist := math.Hypot(e.Pos.X-e.Launch.X, e.Pos.Y-e.Launch.Y)
		if dist > emberMaxSpotDistanceM {
			landed = append(landed, emberLandingCandidate{idx, e.EmissionTimeS, e.ID})
			return
		}
		if e.PosZ < emberLandingHeightM {
			landed = append(landed, emberLandingCandidate{idx, e.EmissionTimeS, e.ID})
		} else if e.TemperatureK < emberIgnitionFloorK {
			landed = append(landed, emberLandingCandidate{idx, e.EmissionTimeS, e.ID})
		}
	})

	sort.Slice(landed, func(a, b int) bool {
		if landed[a].emissionTimeS != landed[b].emissionTimeS {
			return landed[a].emissionTimeS < landed[b].emissionTimeS
		}
		return landed[a].id < landed[b].id
	})

	for _, c := range landed {
		e := &es.pool.slots[c.idx]
		es.resolveLanding(e, g, fuels, simTimeS, ignite)
		es.pool.kill(c.idx)
	}
}

// resolveLanding applies spec.md §4.6 "Landing ignition" at an ember's
// current position.
func (es *emberSubsystem) resolveLanding(e *Ember, g *Grid, fuels []FuelDescriptor, simTimeS float64, ignite *rngStream) {
	idx, ok := g.worldToIndex(e.Pos.X, e.Pos.Y)
	if !ok {
		return
	}
	if e.TemperatureK < emberIgnitionFloorK {
		return
	}
	sCov := float64(g.committed.sCov[idx])
	if sCov > 0.5 {
		return
	}
	fuelID := g.fuelID[idx]
	if int(fuelID) >= len(fuels) {
		return
	}
	fuel := &fuels[fuelID]
	mCell := float64(g.committed.m[idx])

	p := clampF((e.TemperatureK-emberIgnitionRefK)/emberIgnitionSpanK, 0, 1) *
		(1 - mCell) * fuel.EmberReceptivity * (1 - 0.7*sCov)

	if ignite.Float64() < p {
		g.target.t[idx] = float32(e.TemperatureK)
		g.target.state[idx] = uint8(StateFlaming)
		es.events = append(es.events, spotFireEvent{
			EmberID: e.ID, Pos: e.Pos, CellIndex: idx, SimTimeS: simTimeS,
		})
	}
}

// drainEvents returns and clears the buffered spot-fire events (spec.md
// §3 "buffered for one step, drained by the host").
func (es *emberSubsystem) drainEvents() []spotFireEvent {
	out := es.events
	es.events = nil
	return out
}
