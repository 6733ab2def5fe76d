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
	"testing"

	"github.com/ctessum/geom"
)

func TestEmberPoolSpawnAndSnapshot(t *testing.T) {
	p := newEmberPool(4)
	for i := 0; i < 3; i++ {
		p.spawn(Ember{Pos: geom.Point{X: float64(i)}})
	}
	snap := p.snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 live embers, got %d", len(snap))
	}
}

func TestEmberPoolEvictsOldestWhenFull(t *testing.T) {
	p := newEmberPool(2)
	id0, _ := p.spawn(Ember{Pos: geom.Point{X: 0}})
	_, _ = p.spawn(Ember{Pos: geom.Point{X: 1}})
	id2, evicted := p.spawn(Ember{Pos: geom.Point{X: 2}})
	if !evicted {
		t.Fatal("expected eviction when spawning beyond capacity")
	}
	snap := p.snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected pool to stay at capacity 2, got %d", len(snap))
	}
	for _, e := range snap {
		if e.ID == id0 {
			t.Error("expected the oldest live ember to have been evicted")
		}
	}
	found := false
	for _, e := range snap {
		if e.ID == id2 {
			found = true
		}
	}
	if !found {
		t.Error("expected the newest ember to be present after eviction")
	}
}

func TestEmberPoolKillReturnsSlotToFreeList(t *testing.T) {
	p := newEmberPool(2)
	_, _ = p.spawn(Ember{Pos: geom.Point{X: 0}})
	p.forEachLive(func(idx int32, e *Ember) {
		p.kill(idx)
	})
	if p.liveCount != 0 {
		t.Fatalf("expected 0 live embers after killing all, got %d", p.liveCount)
	}
	id, evicted := p.spawn(Ember{Pos: geom.Point{X: 5}})
	if evicted {
		t.Error("did not expect eviction: a free slot should have been available")
	}
	if id == 0 {
		t.Error("expected a valid nonzero ember id")
	}
}
