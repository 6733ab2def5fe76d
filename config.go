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
	"strconv"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// QualityPreset bundles the construction-time tuning knobs that trade
// fidelity for throughput (SPEC_FULL.md supplement: quality presets).
// Cell size, kernel radius, and pool capacities are all fixed at
// construction; nothing here changes mid-simulation.
type QualityPreset struct {
	Name string

	CellSizeM         float64
	EmberPoolCapacity int
	EventLogCapacity  int
	// RadiationKernelR is carried with the preset but not read: the
	// stage-2 solver and RadiantHeatAt use the fixed radKernelRadius.
	RadiationKernelR int
}

// Built-in quality presets. Hosts may also build a custom QualityPreset.
var (
	QualityFast = QualityPreset{
		Name: "fast", CellSizeM: 20, EmberPoolCapacity: 512,
		EventLogCapacity: 256, RadiationKernelR: 2,
	}
	QualityBalanced = QualityPreset{
		Name: "balanced", CellSizeM: 5, EmberPoolCapacity: 4096,
		EventLogCapacity: 1024, RadiationKernelR: 3,
	}
	QualityHighFidelity = QualityPreset{
		Name: "high_fidelity", CellSizeM: 2.5, EmberPoolCapacity: 16384,
		EventLogCapacity: 4096, RadiationKernelR: 3,
	}
)

// QualityPresetByName resolves one of the built-in presets by name,
// falling back to QualityBalanced for an unrecognized name. An
// unrecognized name is not an error, and no warning is raised for it.
func QualityPresetByName(name string) QualityPreset {
	switch strings.ToLower(name) {
	case "fast":
		return QualityFast
	case "high_fidelity", "high-fidelity", "highfidelity":
		return QualityHighFidelity
	default:
		return QualityBalanced
	}
}

// RunConfig is the top-level configuration for the cmd/firesim demo
// harness, loaded via viper from env/file, grounded on the
// teacher's inmaputil/config.go viper+cast wiring.
type RunConfig struct {
	GridWidth    int
	GridHeight   int
	CellSizeM    float64
	Quality      string
	Seed         int64
	Steps        int
	StepSeconds  float64
	WeatherTAirC float64
	WeatherRH    float64
	WeatherWindKmh float64
	WeatherAzimuthDeg float64
	IgniteX, IgniteY  float64

	FuelMoistureOverrides map[string]string
}

// LoadRunConfig builds a viper instance layered {defaults < config file <
// environment} and decodes it into a RunConfig. No command-line flags are
// bound into it.
func LoadRunConfig(configFile string) (*RunConfig, *viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("FIRESIM")
	v.AutomaticEnv()
	v.SetReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("grid_width", 200)
	v.SetDefault("grid_height", 200)
	v.SetDefault("cell_size_m", 5.0)
	v.SetDefault("quality", "balanced")
	v.SetDefault("seed", int64(1))
	v.SetDefault("steps", 12)
	v.SetDefault("step_seconds", 5.0)
	v.SetDefault("weather_t_air_c", 30.0)
	v.SetDefault("weather_rh", 30.0)
	v.SetDefault("weather_wind_kmh", 30.0)
	v.SetDefault("weather_azimuth_deg", 270.0)
	v.SetDefault("ignite_x", 500.0)
	v.SetDefault("ignite_y", 500.0)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, err
		}
	}

	moistureOverrides := getStringMapString("fuel_moisture_overrides", v)

	cfg := &RunConfig{
		GridWidth:         v.GetInt("grid_width"),
		GridHeight:        v.GetInt("grid_height"),
		CellSizeM:         v.GetFloat64("cell_size_m"),
		Quality:           v.GetString("quality"),
		Seed:              v.GetInt64("seed"),
		Steps:             v.GetInt("steps"),
		StepSeconds:       v.GetFloat64("step_seconds"),
		WeatherTAirC:      v.GetFloat64("weather_t_air_c"),
		WeatherRH:         v.GetFloat64("weather_rh"),
		WeatherWindKmh:    v.GetFloat64("weather_wind_kmh"),
		WeatherAzimuthDeg: v.GetFloat64("weather_azimuth_deg"),
		IgniteX:           v.GetFloat64("ignite_x"),
		IgniteY:           v.GetFloat64("ignite_y"),
		FuelMoistureOverrides: moistureOverrides,
	}
	return cfg, v, nil
}

// getStringMapString returns a map[string]string from a viper configuration
// value, accounting for the fact it may have arrived as a native map (config
// file) or a loosely-typed map[string]interface{} (env/flag decoding),
// grounded on the teacher's inmaputil/config.go GetStringMapString.
func getStringMapString(varName string, v *viper.Viper) map[string]string {
	i := v.Get(varName)
	switch t := i.(type) {
	case map[string]string:
		return t
	case map[string]interface{}:
		return cast.ToStringMapString(t)
	default:
		return nil
	}
}

// ApplyFuelMoistureOverrides parses RunConfig.FuelMoistureOverrides (fuel
// name -> moisture fraction string) and applies them to a copy of fuels,
// skipping names that do not parse or do not match a known fuel.
func ApplyFuelMoistureOverrides(fuels []FuelDescriptor, overrides map[string]string) []FuelDescriptor {
	if len(overrides) == 0 {
		return fuels
	}
	out := make([]FuelDescriptor, len(fuels))
	copy(out, fuels)
	for i := range out {
		raw, ok := overrides[out[i].Name]
		if !ok {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			out[i].MoistureOfExtinction = v
		}
	}
	return out
}
