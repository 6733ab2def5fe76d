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

func TestSuppressionHeatModifierNeverNegative(t *testing.T) {
	if got := suppressionHeatModifier(AgentLongTermRetardant, 1.0); got < 0 {
		t.Errorf("suppressionHeatModifier = %v, must not be negative", got)
	}
}

func TestSuppressionHeatModifierNoneIsIdentity(t *testing.T) {
	if got := suppressionHeatModifier(AgentNone, 1.0); got != 1 {
		t.Errorf("suppressionHeatModifier(None) = %v, want 1", got)
	}
}

func TestApplySuppressionDecayClearsBelowThresholds(t *testing.T) {
	sMass := float32(0.05) // already below suppressionClearMassThreshold
	sCov := float32(0.9)
	agent := uint8(AgentWater)
	applySuppressionDecay(&sMass, &sCov, &agent, 100, 20, 60, 60)
	if agent != uint8(AgentNone) || sMass != 0 || sCov != 0 {
		t.Errorf("expected suppression tag cleared below mass threshold, got mass=%v cov=%v agent=%v", sMass, sCov, agent)
	}
}

func TestDistributeSuppressionApplicationAffectsDiskCells(t *testing.T) {
	g, err := NewGrid(20, 20, 5, make([]uint8, 400))
	if err != nil {
		t.Fatal(err)
	}
	affected := distributeSuppressionApplication(g, 50, 50, 10, AgentWater, 300, 1.0)
	if affected == 0 {
		t.Fatal("expected at least one cell affected")
	}
	idx, _ := g.worldToIndex(50, 50)
	if g.committed.sMass[idx] <= 0 {
		t.Error("expected suppression mass at the application center")
	}
	if AgentType(g.committed.sAgent[idx]) != AgentWater {
		t.Errorf("expected AgentWater at the application center, got %v", AgentType(g.committed.sAgent[idx]))
	}
}
