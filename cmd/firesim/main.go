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

// Command firesim is a thin demonstration harness around the firesim
// core: it builds a flat grid, runs a fixed number of steps, and prints
// the resulting stats. It owns no rendering, persistence, or scenario
// logic — those are host concerns, not the core's.
package main

import (
	"fmt"
	"os"

	"github.com/mineubob/firesim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:   "firesim",
		Short: "Run a demonstration wildland fire simulation",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml/json/toml)")

	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed scenario for a number of steps and print stats",
		RunE:  runRun,
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := firesim.LoadRunConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logrus.WithField("cmd", "run")

	n := cfg.GridWidth * cfg.GridHeight
	elevations := make([]float32, n)
	fuelIDs := make([]uint8, n)
	for i := range fuelIDs {
		fuelIDs[i] = 1 // DrySclerophyllForest
	}

	weather := firesim.NewWeatherState(cfg.WeatherTAirC, cfg.WeatherRH, cfg.WeatherWindKmh,
		cfg.WeatherAzimuthDeg, 1013, 400, 5, 0)

	fuels := firesim.ApplyFuelMoistureOverrides(firesim.StandardFuels, cfg.FuelMoistureOverrides)

	sim, err := firesim.Create(firesim.CreateConfig{
		GridWidth: cfg.GridWidth, GridHeight: cfg.GridHeight, CellSizeM: cfg.CellSizeM,
		TerrainElevations: elevations, FuelIDs: fuelIDs,
		FuelTable:      fuels,
		InitialWeather: weather,
		Quality:        firesim.QualityPresetByName(cfg.Quality),
		Seed:           cfg.Seed,
		Backend:        firesim.BackendCPU,
	})
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer sim.Destroy()

	if err := sim.IgniteAt(cfg.IgniteX, cfg.IgniteY, 900); err != nil {
		return fmt.Errorf("igniting: %w", err)
	}

	for step := 0; step < cfg.Steps; step++ {
		if err := sim.Step(cfg.StepSeconds); err != nil {
			return fmt.Errorf("stepping: %w", err)
		}
		stats, err := sim.GetStats()
		if err != nil {
			return err
		}
		warn, _ := sim.Warnings()
		log.WithFields(logrus.Fields{
			"step": step, "sim_time_s": stats.SimTimeS,
			"burning_cells": stats.BurningCells, "active_embers": stats.ActiveEmbers,
			"warnings": warn,
		}).Info("step complete")
	}

	ffdi, _ := sim.FFDI()
	danger, _ := sim.FireDangerClass()
	log.WithFields(logrus.Fields{"ffdi": ffdi, "danger_class": danger}).Info("run complete")
	return nil
}
