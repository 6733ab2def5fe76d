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

import "github.com/sirupsen/logrus"

// packageLogger is the default logrus logger used by package-level
// components (Simulation, the boundary layer). Hosts embedding firesim
// as a library may replace it with SetLogger to route output through
// their own logging pipeline; the core never writes to stdout/stderr
// directly.
var packageLogger = logrus.New()

func init() {
	packageLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLogger replaces the package-wide logrus logger. Intended to be
// called once, before any Simulation is created.
func SetLogger(l *logrus.Logger) {
	packageLogger = l
}

func newLogger() *logrus.Entry {
	return logrus.NewEntry(packageLogger)
}
