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

// different reports whether a and b differ by more than tol as a
// fraction of b (relative tolerance), falling back to absolute
// comparison near zero.
func different(a, b, tol float64) bool {
	if math.Abs(b) < 1e-9 {
		return math.Abs(a-b) > tol
	}
	return math.Abs(a-b)/math.Abs(b) > tol
}

// absDifferent reports whether a and b differ by more than an absolute
// tolerance tol.
func absDifferent(a, b, tol float64) bool {
	return math.Abs(a-b) > tol
}
