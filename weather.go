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

	"gonum.org/v1/gonum/stat"
)

// FireDanger is McArthur's Mk5 fire-danger class banding (spec.md §4.2).
type FireDanger uint8

// Fire-danger classes.
const (
	DangerLow FireDanger = iota
	DangerModerate
	DangerHigh
	DangerVeryHigh
	DangerSevere
	DangerExtreme
	DangerCatastrophic
)

func (f FireDanger) String() string {
	switch f {
	case DangerLow:
		return "Low"
	case DangerModerate:
		return "Moderate"
	case DangerHigh:
		return "High"
	case DangerVeryHigh:
		return "VeryHigh"
	case DangerSevere:
		return "Severe"
	case DangerExtreme:
		return "Extreme"
	case DangerCatastrophic:
		return "Catastrophic"
	default:
		return "Unknown"
	}
}

// Operating envelope bounds, spec.md §6. Inputs outside these are clamped
// and flagged via warnings(), never rejected.
const (
	envTAirMin, envTAirMax = -10.0, 55.0  // degrees C
	envRHMin, envRHMax     = 2.0, 100.0   // percent
	envVMin, envVMax       = 0.0, 150.0   // km/h
	envFFDIMin, envFFDIMax = 0.0, 300.0
)

// WeatherState is the scalar surface fire-weather state plus the vertical
// profile used for ember lofting (spec.md §3/§4.2). Exactly one instance
// exists per simulation.
type WeatherState struct {
	TAirC           float64
	RHPercent       float64
	WindSpeedKmh    float64
	WindAzimuthDeg  float64 // meteorological convention: direction wind comes FROM
	PressureHPa     float64
	SolarWm2        float64
	DroughtFactor   float64 // 0-10, Keetch-Byram-derived input
	FuelCuringPct   float64

	simTimeHours float64 // hours since simulation start, drives the diurnal cycle
	meanTAirC    float64 // climatological daily mean, set at construction

	ffdi        float64
	fireDanger  FireDanger
	warnings    WarningSet

	// recentFFDI buffers the last few FFDI samples for the rolling
	// mean/stddev envelope diagnostic (SPEC_FULL.md supplement).
	recentFFDI []float64

	// vertical profile, ground-relative. 6 layers by default per spec.md
	// §4.2 ("4-8 layer"); HainesIndex reads the lowest two heights, and
	// WindAtHeight (used by embers.go for wind-aloft lookups) reads z0.
	profileHeights []float64 // m AGL
	surfaceRoughness float64  // z0, m

	gustSeed *rngStream // not set or read; Advance takes its gust stream as an argument
}

const defaultSurfaceRoughness = 0.1 // m

// NewWeatherState constructs a weather state and computes its initial
// derived quantities (FFDI, danger class, vertical profile heights).
func NewWeatherState(tAirC, rhPct, windKmh, windAzimuthDeg, pressureHPa, solarWm2, droughtFactor, fuelCuringPct float64) *WeatherState {
	w := &WeatherState{
		TAirC: tAirC, RHPercent: rhPct, WindSpeedKmh: windKmh,
		WindAzimuthDeg: windAzimuthDeg, PressureHPa: pressureHPa,
		SolarWm2: solarWm2, DroughtFactor: droughtFactor, FuelCuringPct: fuelCuringPct,
		surfaceRoughness: defaultSurfaceRoughness,
		profileHeights:   []float64{2, 10, 30, 60, 120, 250},
	}
	w.meanTAirC = tAirC
	w.clampAndFlag()
	w.recompute()
	return w
}

// clampAndFlag clamps fields outside the operating envelope (spec.md §6)
// and raises the corresponding warning bits.
func (w *WeatherState) clampAndFlag() {
	if w.TAirC < envTAirMin || w.TAirC > envTAirMax {
		w.warnings.Set(WarnWeatherTOutOfEnvelope)
		w.TAirC = clampF(w.TAirC, envTAirMin, envTAirMax)
	}
	if w.RHPercent < envRHMin || w.RHPercent > envRHMax {
		w.warnings.Set(WarnWeatherRHOutOfEnvelope)
		w.RHPercent = clampF(w.RHPercent, envRHMin, envRHMax)
	}
	if w.WindSpeedKmh < envVMin || w.WindSpeedKmh > envVMax {
		w.warnings.Set(WarnWeatherWindOutOfEnvelope)
		w.WindSpeedKmh = clampF(w.WindSpeedKmh, envVMin, envVMax)
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FFDI computes the McArthur Mk5 Forest Fire Danger Index using the
// Noble-Bary-Gill equation (spec.md §4.2):
//
//	FFDI = 2.11 * exp(-0.45 + 0.987*ln(D) - 0.0345*H + 0.0338*T + 0.0234*V)
//
// D (drought factor) is clamped >= 1, T is in Celsius, H in percent, V in
// km/h.
func FFDI(tAirC, rhPct, windKmh, droughtFactor float64) float64 {
	d := droughtFactor
	if d < 1 {
		d = 1
	}
	return 2.11 * math.Exp(-0.45+0.987*math.Log(d)-0.0345*rhPct+0.0338*tAirC+0.0234*windKmh)
}

// fireDangerClass bands an FFDI value per spec.md §4.2.
func fireDangerClass(ffdi float64) FireDanger {
	switch {
	case ffdi < 5:
		return DangerLow
	case ffdi < 12:
		return DangerModerate
	case ffdi < 24:
		return DangerHigh
	case ffdi < 50:
		return DangerVeryHigh
	case ffdi < 75:
		return DangerSevere
	case ffdi < 100:
		return DangerExtreme
	default:
		return DangerCatastrophic
	}
}

func (w *WeatherState) recompute() {
	w.ffdi = FFDI(w.TAirC, w.RHPercent, w.WindSpeedKmh, w.DroughtFactor)
	if w.ffdi < envFFDIMin || w.ffdi > envFFDIMax {
		w.warnings.Set(WarnFFDIOutOfEnvelope)
	}
	w.fireDanger = fireDangerClass(w.ffdi)
	w.recentFFDI = append(w.recentFFDI, w.ffdi)
	if len(w.recentFFDI) > 24 {
		w.recentFFDI = w.recentFFDI[len(w.recentFFDI)-24:]
	}
}

// FFDIValue returns the most recently computed FFDI.
func (w *WeatherState) FFDIValue() float64 { return w.ffdi }

// FireDangerClass returns the most recently computed fire-danger class.
func (w *WeatherState) FireDangerClass() FireDanger { return w.fireDanger }

// Warnings returns the accumulated warning bitset for this weather state.
func (w *WeatherState) Warnings() WarningSet { return w.warnings }

// FFDIEnvelope returns the rolling mean and standard deviation of the last
// (up to) 24 FFDI samples, a supplemental diagnostic (SPEC_FULL.md) for
// spotting weather sequences that are statistically anomalous even when
// each individual sample is within the hard envelope. No warning bit is
// derived from it; only the hard envelope in recompute raises one.
func (w *WeatherState) FFDIEnvelope() (mean, stddev float64) {
	if len(w.recentFFDI) == 0 {
		return 0, 0
	}
	mean = stat.Mean(w.recentFFDI, nil)
	if len(w.recentFFDI) < 2 {
		return mean, 0
	}
	stddev = stat.StdDev(w.recentFFDI, nil)
	return mean, stddev
}

// WindVector returns the surface wind as a 2-D vector (m/s) pointing in
// the direction the wind blows toward.
func (w *WeatherState) WindVector() Vec2 {
	return WindAzimuthToVector(w.WindAzimuthDeg, w.WindSpeedKmh/3.6)
}

// WindAtHeight returns the wind speed (m/s) at height z (m AGL) using the
// logarithmic wind profile (spec.md §4.2):
//
//	V(z) = V10 * ln(z/z0) / ln(10/z0)
func (w *WeatherState) WindAtHeight(z float64) float64 {
	z0 := w.surfaceRoughness
	if z < z0 {
		z = z0
	}
	v10 := w.WindSpeedKmh / 3.6
	return v10 * math.Log(z/z0) / math.Log(10/z0)
}

// HainesIndex computes the lower-atmosphere fire-weather severity index
// (2-6), a SPEC_FULL.md supplement named in the spec's GLOSSARY but never
// wired to an operation. It is a stability term (temperature difference
// between the two lowest profile layers) plus a moisture term (dewpoint
// depression proxy from surface RH), each banded 1-3 and summed. This is
// informational only: it does not feed back into spread rate.
func (w *WeatherState) HainesIndex() int {
	// Approximate lapse rate across the lowest two profile layers using
	// a standard dry adiabatic lapse rate of 9.8 C/km as a stand-in for a
	// real sounding, since no sounding is part of the surface weather
	// state.
	dz := (w.profileHeights[1] - w.profileHeights[0]) / 1000
	lapse := 9.8 * dz
	stability := 1
	switch {
	case lapse > 8:
		stability = 3
	case lapse > 4:
		stability = 2
	}
	moisture := 1
	switch {
	case w.RHPercent < 30:
		moisture = 3
	case w.RHPercent < 60:
		moisture = 2
	}
	idx := stability + moisture
	if idx < 2 {
		idx = 2
	}
	if idx > 6 {
		idx = 6
	}
	return idx
}

// Advance updates the diurnal temperature/humidity cycle, integrates wind
// with optional gust noise, re-applies the envelope clamps, and recomputes
// FFDI/fire-danger class (spec.md §4.2). Δt is in seconds. Suppression
// decay is not done here; it is solver stage 7.
func (w *WeatherState) Advance(dt float64, gust *rngStream) {
	w.simTimeHours += dt / 3600

	// Sinusoidal diurnal model: peak 14:00, min 06:00, amplitude ~8C
	// around the current reading treated as the day's climatological
	// mean.
	hourOfDay := math.Mod(w.simTimeHours, 24)
	phase := 2 * math.Pi * (hourOfDay - 14) / 24
	diurnalDelta := 8 * math.Cos(phase)
	target := w.meanTAirC + diurnalDelta
	deltaFromMean := target - w.TAirC
	w.TAirC += deltaFromMean * clampF(dt/3600, 0, 1)
	w.RHPercent = clampF(w.RHPercent-0.6*deltaFromMean*clampF(dt/3600, 0, 1), envRHMin, envRHMax)

	if gust != nil {
		gustNoise := (gust.Float64()*2 - 1) * 0.15 * w.WindSpeedKmh
		w.WindSpeedKmh = clampF(w.WindSpeedKmh+gustNoise*clampF(dt/60, 0, 1), 0, envVMax)
	}

	w.clampAndFlag()
	w.recompute()
}
