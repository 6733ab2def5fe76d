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

import "testing"

func newTestSimulation(t *testing.T, w, h int, fuelID uint8, weather *WeatherState, seed int64) *Simulation {
	t.Helper()
	n := w * h
	elev := make([]float32, n)
	fuelIDs := make([]uint8, n)
	for i := range fuelIDs {
		fuelIDs[i] = fuelID
	}
	sim, err := Create(CreateConfig{
		GridWidth: w, GridHeight: h, CellSizeM: 5,
		TerrainElevations: elev, FuelIDs: fuelIDs,
		InitialWeather: weather,
		Quality:        QualityBalanced,
		Seed:           seed,
		Backend:        BackendCPU,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return sim
}

func TestCreateRejectsInvalidFuelID(t *testing.T) {
	n := 4
	_, err := Create(CreateConfig{
		GridWidth: 2, GridHeight: 2, CellSizeM: 5,
		TerrainElevations: make([]float32, n),
		FuelIDs:           []uint8{0, 0, 0, 250},
	})
	if err == nil {
		t.Fatal("expected an error for an out-of-range fuel id")
	}
}

func TestOperationsFailOnDestroyedHandle(t *testing.T) {
	sim := newTestSimulation(t, 10, 10, 0, nil, 1)
	sim.Destroy()
	if err := sim.Step(1); err != ErrInvalidHandle {
		t.Errorf("expected ErrInvalidHandle after Destroy, got %v", err)
	}
}

func TestIgniteAtThenStepSetsBurningState(t *testing.T) {
	sim := newTestSimulation(t, 20, 20, 0, NewWeatherState(30, 30, 30, 270, 1013, 400, 5, 0), 42)
	defer sim.Destroy()

	if err := sim.IgniteAt(50, 50, 900); err != nil {
		t.Fatalf("IgniteAt: %v", err)
	}
	if err := sim.Step(1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	inFire, err := sim.IsInFire(50, 50, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !inFire {
		t.Error("expected the ignited cell to report as in-fire after a step")
	}
}

func TestStepIsDeterministicForFixedSeed(t *testing.T) {
	run := func() (Stats, WarningSet) {
		sim := newTestSimulation(t, 30, 30, 2, NewWeatherState(46, 6, 70, 270, 1000, 400, 10, 0), 7)
		defer sim.Destroy()
		_ = sim.IgniteAt(75, 75, 900)
		for i := 0; i < 10; i++ {
			if err := sim.Step(1); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}
		stats, _ := sim.GetStats()
		warn, _ := sim.Warnings()
		return stats, warn
	}

	s1, w1 := run()
	s2, w2 := run()
	if s1 != s2 {
		t.Errorf("expected identical stats across runs with the same seed: %+v vs %+v", s1, s2)
	}
	if w1 != w2 {
		t.Errorf("expected identical warnings across runs with the same seed: %v vs %v", w1, w2)
	}
}

func TestApplySuppressionReducesIntensity(t *testing.T) {
	sim := newTestSimulation(t, 40, 40, 1, NewWeatherState(30, 30, 30, 270, 1013, 400, 5, 0), 3)
	defer sim.Destroy()

	if err := sim.IgniteAt(100, 100, 900); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if err := sim.Step(5); err != nil {
			t.Fatal(err)
		}
	}
	before, err := sim.IntensityAt(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := sim.ApplySuppressionAt(100, 100, 10, AgentWater, 300, 1.0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if err := sim.Step(5); err != nil {
			t.Fatal(err)
		}
	}
	after, err := sim.IntensityAt(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}

	if before > 0 && after > before*0.4 {
		t.Errorf("expected suppression to reduce intensity to <=40%% of pre-drop value: before=%v after=%v", before, after)
	}
}

func TestFuelNeverIncreasesAbsentReload(t *testing.T) {
	sim := newTestSimulation(t, 20, 20, 0, NewWeatherState(35, 25, 20, 270, 1013, 400, 5, 0), 11)
	defer sim.Destroy()
	_ = sim.IgniteAt(50, 50, 900)

	idx, _ := sim.grid.worldToIndex(50, 50)
	last := sim.grid.committed.w[idx]
	for i := 0; i < 20; i++ {
		if err := sim.Step(1); err != nil {
			t.Fatal(err)
		}
		cur := sim.grid.committed.w[idx]
		if cur > last {
			t.Errorf("fuel load increased absent external reload at step %d: %v -> %v", i, last, cur)
		}
		last = cur
	}
}

func TestSpotDistanceNeverExceedsCap(t *testing.T) {
	sim := newTestSimulation(t, 60, 60, 2, NewWeatherState(46, 6, 70, 270, 1000, 400, 10, 0), 99)
	defer sim.Destroy()
	_ = sim.IgniteAt(150, 150, 900)

	for i := 0; i < 15; i++ {
		if err := sim.Step(2); err != nil {
			t.Fatal(err)
		}
	}
	embers, err := sim.GetEmbers()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range embers {
		dx, dy := e.Pos.X-e.Launch.X, e.Pos.Y-e.Launch.Y
		dist := dx*dx + dy*dy
		if dist > emberMaxSpotDistanceM*emberMaxSpotDistanceM {
			t.Errorf("ember %d traveled beyond the spot-distance cap", e.ID)
		}
	}
}
