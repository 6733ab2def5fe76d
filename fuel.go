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

// AgentType is a closed-sum variant of the suppression agent applied to a
// cell. None iff a cell's suppression mass is zero.
type AgentType uint8

// Suppression agent kinds, per the data model in spec.md §3.
const (
	AgentNone AgentType = iota
	AgentWater
	AgentFoamA
	AgentFoamB
	AgentLongTermRetardant
	AgentShortTermRetardant
	AgentWetting
)

func (a AgentType) String() string {
	switch a {
	case AgentNone:
		return "None"
	case AgentWater:
		return "Water"
	case AgentFoamA:
		return "FoamA"
	case AgentFoamB:
		return "FoamB"
	case AgentLongTermRetardant:
		return "LongTermRetardant"
	case AgentShortTermRetardant:
		return "ShortTermRetardant"
	case AgentWetting:
		return "Wetting"
	default:
		return "Unknown"
	}
}

// CellState is the per-cell combustion state machine (spec.md §4.4).
type CellState uint8

// Cell combustion states.
const (
	StateUnignited CellState = iota
	StateSuppressedWet
	StateFlaming
	StateSmoldering
	StateExtinct
)

func (s CellState) String() string {
	switch s {
	case StateUnignited:
		return "Unignited"
	case StateSuppressedWet:
		return "SuppressedWet"
	case StateFlaming:
		return "Flaming"
	case StateSmoldering:
		return "Smoldering"
	case StateExtinct:
		return "Extinct"
	default:
		return "Unknown"
	}
}

// CrownState describes the canopy-fire status a cell has reached (spec.md
// §4.4 stage 4, Van Wagner).
type CrownState uint8

// Crown-fire states.
const (
	CrownNone CrownState = iota
	CrownPassiveTorching
	CrownActive
)

// FuelDescriptor is the static, per-fuel-id table entry described in
// spec.md §3. Values are tabulated and never computed per step.
type FuelDescriptor struct {
	Name string

	HeatContent        float64 // kJ/kg
	IgnitionTempK       float64 // K
	MoistureOfExtinction float64 // dimensionless, fraction
	SAVRatio            float64 // surface-area-to-volume ratio, 1/m
	BulkDensity         float64 // kg/m^3
	ParticleDensity     float64 // kg/m^3, oven-dry particle density (Rothermel rho_p)

	CanopyBaseHeight  float64 // m
	CanopyBulkDensity float64 // kg/m^3
	FoliarMoisture    float64 // %, e.g. 100 = 100%
	LadderFuelFactor  float64 // multiplies effective CBH down, (0,1]

	EmberReceptivity float64 // (0,1], landing-ignition susceptibility
	EmberShedRate    float64 // embers / (kW/m of front) / s, nominal surface rate

	OilVaporizationTempK float64 // K
	OilAutoignitionTempK float64 // K, e.g. 232 C for eucalyptus oil
	OilContent           float64 // fraction of fuel mass that is volatile oil
	OilHeatContent       float64 // kJ/kg, e.g. 43 000 for eucalyptus oil

	// TimelagClass is the Nelson dead-fuel size class {1, 10, 100, 1000}
	// hours, used by moisture.go to pick tau.
	TimelagClass int
}

// StandardFuels is a small built-in fuel table covering the scenarios in
// spec.md §8. Hosts may supply their own tables; this one exists so the
// package is usable and testable without external data.
var StandardFuels = []FuelDescriptor{
	{ // index 0
		Name:                 "DryGrass",
		HeatContent:          18000,
		IgnitionTempK:        523,
		MoistureOfExtinction: 0.25,
		SAVRatio:             11500,
		BulkDensity:          6.5,
		ParticleDensity:      512,
		CanopyBaseHeight:     0,
		CanopyBulkDensity:    0,
		FoliarMoisture:       0,
		LadderFuelFactor:     1,
		EmberReceptivity:     0.4,
		EmberShedRate:        0.002,
		OilVaporizationTempK: 0,
		OilAutoignitionTempK: 0,
		OilContent:           0,
		OilHeatContent:       0,
		TimelagClass:         1,
	},
	{ // index 1
		Name:                 "DrySclerophyllForest",
		HeatContent:          20000,
		IgnitionTempK:        540,
		MoistureOfExtinction: 0.30,
		SAVRatio:             6500,
		BulkDensity:          25,
		ParticleDensity:      512,
		CanopyBaseHeight:     8,
		CanopyBulkDensity:    0.15,
		FoliarMoisture:       100,
		LadderFuelFactor:     0.7,
		EmberReceptivity:     0.5,
		EmberShedRate:        0.004,
		OilVaporizationTempK: 450,
		OilAutoignitionTempK: 0,
		OilContent:           0,
		OilHeatContent:       0,
		TimelagClass:         10,
	},
	{ // index 2: stringybark, per the Black Saturday scenario (spec.md §8.2)
		Name:                 "Stringybark",
		HeatContent:          20500,
		IgnitionTempK:        540,
		MoistureOfExtinction: 0.28,
		SAVRatio:             6000,
		BulkDensity:          28,
		ParticleDensity:      512,
		CanopyBaseHeight:     3,
		CanopyBulkDensity:    0.20,
		FoliarMoisture:       90,
		LadderFuelFactor:     0.3, // stringybark: ladder fuel lowers effective CBH
		EmberReceptivity:     0.7,
		EmberShedRate:        0.01,
		OilVaporizationTempK: 418, // ~145 C
		OilAutoignitionTempK: 505, // 232 C
		OilContent:           0.03,
		OilHeatContent:       43000,
		TimelagClass:         10,
	},
}

// EffectiveCanopyBaseHeight returns the ladder-fuel-adjusted CBH used by
// the Van Wagner crown-initiation check.
func (f *FuelDescriptor) EffectiveCanopyBaseHeight() float64 {
	return f.CanopyBaseHeight * f.LadderFuelFactor
}

// SuppressionAgentDescriptor is the static, tabulated per-agent-type entry
// described in spec.md §3.
type SuppressionAgentDescriptor struct {
	Name string

	SpecificHeat        float64 // kJ/(kg*K)
	LatentHeatVaporize   float64 // kJ/kg
	BoilingPointK        float64 // K
	CombustionInhibition float64 // c_inhibition, fraction
	OxygenDisplacement   float64 // c_oxygen, fraction
	EvaporationRateMod   float64 // multiplier on Penman-Monteith evaporation
	UVDegradationRate    float64 // 1/hr, s_cov decay under solar > 500 W/m^2
	RainWashoffRate      float64 // 1/hr, s_mass decay under precipitation (host-supplied)
}

// StandardAgents is indexed by AgentType (AgentNone has no meaningful
// entry and is never looked up).
var StandardAgents = map[AgentType]SuppressionAgentDescriptor{
	AgentWater: {
		Name: "Water", SpecificHeat: 4.186, LatentHeatVaporize: 2260,
		BoilingPointK: 373, CombustionInhibition: 0.3, OxygenDisplacement: 0.1,
		EvaporationRateMod: 1.0, UVDegradationRate: 0, RainWashoffRate: 0.5,
	},
	AgentFoamA: {
		Name: "FoamA", SpecificHeat: 4.0, LatentHeatVaporize: 2100,
		BoilingPointK: 373, CombustionInhibition: 0.5, OxygenDisplacement: 0.35,
		EvaporationRateMod: 0.6, UVDegradationRate: 0.02, RainWashoffRate: 0.3,
	},
	AgentFoamB: {
		Name: "FoamB", SpecificHeat: 4.0, LatentHeatVaporize: 2050,
		BoilingPointK: 373, CombustionInhibition: 0.6, OxygenDisplacement: 0.45,
		EvaporationRateMod: 0.5, UVDegradationRate: 0.015, RainWashoffRate: 0.25,
	},
	AgentLongTermRetardant: {
		Name: "LongTermRetardant", SpecificHeat: 3.6, LatentHeatVaporize: 1800,
		BoilingPointK: 380, CombustionInhibition: 0.8, OxygenDisplacement: 0.2,
		EvaporationRateMod: 0.2, UVDegradationRate: 0.005, RainWashoffRate: 0.1,
	},
	AgentShortTermRetardant: {
		Name: "ShortTermRetardant", SpecificHeat: 3.8, LatentHeatVaporize: 1900,
		BoilingPointK: 378, CombustionInhibition: 0.6, OxygenDisplacement: 0.15,
		EvaporationRateMod: 0.4, UVDegradationRate: 0.02, RainWashoffRate: 0.2,
	},
	AgentWetting: {
		Name: "Wetting", SpecificHeat: 4.1, LatentHeatVaporize: 2200,
		BoilingPointK: 373, CombustionInhibition: 0.2, OxygenDisplacement: 0.05,
		EvaporationRateMod: 1.2, UVDegradationRate: 0.01, RainWashoffRate: 0.4,
	},
}
