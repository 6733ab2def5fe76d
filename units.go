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

// Package firesim implements a deterministic, physics-based wildland fire
// simulation core: a coupled temperature/fuel/moisture/level-set field
// solver, a Lagrangian ember-transport and spot-ignition subsystem, and a
// position-indexed query/mutation interface for a host application.
package firesim

import "github.com/ctessum/unit"

// Dimensions used by the boundary-facing unit values. The hot-path grid
// arrays stay plain float32 (see grid.go) for the numerical-semantics
// reasons in spec.md §4.4. The query and mutation operations in query.go
// and the fuel/weather descriptors also take and return plain float64
// values; the *unit.Unit constructors and extractors below are helpers a
// host can use to wrap those values with self-describing units.
var (
	// KilogramPerMeter2 is fuel load or suppression mass per unit area.
	KilogramPerMeter2 = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -2}
	// WattPerMeter is fireline intensity (power per unit length of front).
	WattPerMeter = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3}
	// WattPerMeter2 is radiant heat flux.
	WattPerMeter2 = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3}
	// KilogramPerMeter3 is air/fuel bulk density.
	KilogramPerMeter3 = unit.KilogramPerMeter3
)

// Kelvin creates a temperature value from a Kelvin amount.
func Kelvin(k float64) *unit.Unit { return unit.New(k, unit.Kelvin) }

// Celsius creates a temperature value from a Celsius amount.
func Celsius(c float64) *unit.Unit { return unit.New(c+273.15, unit.Kelvin) }

// MetersPerSecond creates a speed value.
func MetersPerSecond(v float64) *unit.Unit { return unit.New(v, unit.MeterPerSecond) }

// KilometersPerHour creates a speed value from km/h.
func KilometersPerHour(v float64) *unit.Unit { return unit.New(v/3.6, unit.MeterPerSecond) }

// Kilograms creates a mass value.
func Kilograms(m float64) *unit.Unit { return unit.New(m, unit.Kilogram) }

// KilogramsPerMeter2 creates a fuel-load or suppression-mass areal density.
func KilogramsPerMeter2(v float64) *unit.Unit { return unit.New(v, KilogramPerMeter2) }

// KilowattsPerMeter creates a fireline-intensity value from kW/m.
func KilowattsPerMeter(v float64) *unit.Unit { return unit.New(v*1000, WattPerMeter) }

// KilowattsPerMeter2 creates a radiant-heat-flux value from kW/m².
func KilowattsPerMeter2(v float64) *unit.Unit { return unit.New(v*1000, WattPerMeter2) }

// ToKelvin extracts the Kelvin amount from a temperature Unit.
func ToKelvin(u *unit.Unit) float64 { return u.Value() }

// ToCelsius extracts the Celsius amount from a temperature Unit.
func ToCelsius(u *unit.Unit) float64 { return u.Value() - 273.15 }

// ToKilowattsPerMeter extracts the kW/m amount from an intensity Unit.
func ToKilowattsPerMeter(u *unit.Unit) float64 { return u.Value() / 1000 }

// ToKilowattsPerMeter2 extracts the kW/m² amount from a heat-flux Unit.
func ToKilowattsPerMeter2(u *unit.Unit) float64 { return u.Value() / 1000 }
