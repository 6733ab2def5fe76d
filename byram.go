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

// ByramIntensity computes fireline intensity, kW/m, from Byram (1959):
// I = H * w * R, with H the fuel heat content (kJ/kg), w the fuel mass
// consumed per unit area (kg/m^2), and R the rate of spread (m/s).
func ByramIntensity(heatContentKJkg, fuelConsumedKgm2, spreadRateMs float64) float64 {
	return heatContentKJkg * fuelConsumedKgm2 * spreadRateMs
}

// ByramFlameLength returns flame length in meters from fireline intensity
// in kW/m: L = 0.0775 * I^0.46.
func ByramFlameLength(intensityKWm float64) float64 {
	if intensityKWm <= 0 {
		return 0
	}
	return 0.0775 * math.Pow(intensityKWm, 0.46)
}
