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

// suppressionClearMassThreshold and suppressionClearCovThreshold are the
// thresholds below which a cell's agent/coverage tag is cleared (spec.md
// §4.4 stage 7).
const (
	suppressionClearMassThreshold = 0.1
	suppressionClearCovThreshold  = 0.05
	suppressionUVThresholdWm2     = 500.0
)

// vaporPressureDeficit returns VPD (kPa) from air temperature (C) and
// relative humidity (%), used by the Penman-Monteith-style evaporation
// term in stage 7.
func vaporPressureDeficit(tAirC, rhPct float64) float64 {
	es := 0.6108 * math.Exp(17.27*tAirC/(tAirC+237.3))
	ea := es * rhPct / 100
	vpd := es - ea
	if vpd < 0 {
		return 0
	}
	return vpd
}

// applySuppressionDecay advances one cell's suppression state by dt
// seconds (spec.md §4.4 stage 7): Penman-Monteith evaporation loss from
// s_mass, UV degradation of s_cov above the solar threshold, and
// clearing once either falls below its threshold.
func applySuppressionDecay(sMass, sCov *float32, agent *uint8, solarWm2, tAirC, rhPct, dt float64) {
	if *sMass <= 0 {
		*sMass = 0
		*sCov = 0
		*agent = uint8(AgentNone)
		return
	}
	desc, ok := StandardAgents[AgentType(*agent)]
	if !ok {
		desc = StandardAgents[AgentWater]
	}

	vpd := vaporPressureDeficit(tAirC, rhPct)
	evapRate := 5e-4 * vpd * desc.EvaporationRateMod // kg/m^2/s
	newMass := float64(*sMass) - evapRate*dt
	if newMass < 0 {
		newMass = 0
	}
	*sMass = float32(newMass)

	newCov := float64(*sCov)
	if solarWm2 > suppressionUVThresholdWm2 {
		newCov -= desc.UVDegradationRate * dt / 3600
	}
	if newCov < 0 {
		newCov = 0
	}
	*sCov = float32(newCov)

	if newMass < suppressionClearMassThreshold || newCov < suppressionClearCovThreshold {
		*sMass = 0
		*sCov = 0
		*agent = uint8(AgentNone)
	}
}

// suppressionHeatModifier returns the multiplicative factor applied to
// inbound radiative heat for a cell with active suppression (spec.md
// §4.4 "Heat coupling through suppression"):
//
//	(1 - c_inhibition * s_cov) * (1 - c_oxygen * s_cov)
//
// The result is always in [0,1]; suppression cannot make heat negative.
func suppressionHeatModifier(agent AgentType, sCov float64) float64 {
	if agent == AgentNone || sCov <= 0 {
		return 1
	}
	desc, ok := StandardAgents[agent]
	if !ok {
		return 1
	}
	f := (1 - desc.CombustionInhibition*sCov) * (1 - desc.OxygenDisplacement*sCov)
	return clampF(f, 0, 1)
}

// suppressionEvaporationSinkKJ returns the heat (kJ/m^2) absorbed by
// evaporating active suppression mass before any of stage 2's inbound
// heat can raise cell temperature (spec.md §4.4 "Heat coupling through
// suppression").
func suppressionEvaporationSinkKJ(agent AgentType, sMass float64) float64 {
	if agent == AgentNone || sMass <= 0 {
		return 0
	}
	desc, ok := StandardAgents[agent]
	if !ok {
		return 0
	}
	return sMass * desc.LatentHeatVaporize
}

// distributeSuppressionApplication spreads an apply_suppression_at call
// (spec.md §6) across the disk of cells returned by Grid.cellsInDisk,
// weighting each cell's share of massKg by its disk weight and the
// caller-supplied quality factor, and returns the number of cells
// affected.
func distributeSuppressionApplication(g *Grid, x, y, radiusM float64, agent AgentType, massKg, quality float64) uint32 {
	idxs, weights := g.cellsInDisk(x, y, radiusM)
	if len(idxs) == 0 {
		return 0
	}
	var totalWeight float64
	for _, wgt := range weights {
		totalWeight += wgt
	}
	if totalWeight <= 0 {
		return 0
	}

	var affected uint32
	for k, idx := range idxs {
		share := weights[k] / totalWeight * massKg * quality
		if share <= 0 {
			continue
		}
		lock := g.lockFor(idx)
		lock.Lock()
		g.committed.sMass[idx] += float32(share)
		cov := float64(g.committed.sCov[idx])
		newCov := cov + weights[k]*quality*(1-cov)
		g.committed.sCov[idx] = float32(clampF(newCov, 0, 1))
		g.committed.sAgent[idx] = uint8(agent)
		lock.Unlock()
		affected++
	}
	return affected
}
