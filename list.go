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

import "github.com/ctessum/geom"

// Ember is one airborne firebrand particle (spec.md §3).
type Ember struct {
	ID uint64

	Pos    geom.Point // world-space horizontal position, m
	PosZ   float64    // altitude above ground, m
	VelX, VelY, VelZ    float64
	TemperatureK        float64
	MassKg              float64
	DiameterM           float64
	OriginFuelID        uint8
	ShapeFactor         float64 // reserved, no dynamics per spec.md §9(a)
	EmissionTimeS       float64
	Launch geom.Point // emission position, for the spot-distance cap

	alive bool
	prev, next int32 // doubly-linked free/live list pointers, -1 = none
}

// emberPool is a fixed-capacity ember store whose slots are linked into
// live and free lists via Ember.prev/next, grounded on the teacher's cellRef/cellList pattern in list.go: an
// index-addressed doubly linked list gives O(1) add and O(1) delete
// without per-operation slice compaction.
type emberPool struct {
	slots []Ember
	// liveHead/liveTail index the live (alive=true) embers, oldest first;
	// this ordering is what spec.md §4.6's "oldest live ember replaced"
	// eviction policy walks.
	liveHead, liveTail int32
	freeHead           int32
	liveCount          int
	cap                int
	nextID             uint64
}

func newEmberPool(capacity int) *emberPool {
	p := &emberPool{
		slots:    make([]Ember, capacity),
		cap:      capacity,
		liveHead: -1, liveTail: -1,
		freeHead: 0,
	}
	for i := range p.slots {
		p.slots[i].prev = int32(i - 1)
		p.slots[i].next = int32(i + 1)
	}
	if capacity > 0 {
		p.slots[capacity-1].next = -1
	} else {
		p.freeHead = -1
	}
	return p
}

func (p *emberPool) popFree() int32 {
	idx := p.freeHead
	if idx < 0 {
		return -1
	}
	p.freeHead = p.slots[idx].next
	return idx
}

func (p *emberPool) pushFree(idx int32) {
	p.slots[idx].next = p.freeHead
	p.slots[idx].prev = -1
	p.freeHead = idx
}

func (p *emberPool) appendLive(idx int32) {
	p.slots[idx].prev = p.liveTail
	p.slots[idx].next = -1
	if p.liveTail >= 0 {
		p.slots[p.liveTail].next = idx
	} else {
		p.liveHead = idx
	}
	p.liveTail = idx
	p.liveCount++
}

func (p *emberPool) removeLive(idx int32) {
	e := &p.slots[idx]
	if e.prev >= 0 {
		p.slots[e.prev].next = e.next
	} else {
		p.liveHead = e.next
	}
	if e.next >= 0 {
		p.slots[e.next].prev = e.prev
	} else {
		p.liveTail = e.prev
	}
	p.liveCount--
}

// spawn creates a new live ember, evicting the oldest live ember if the
// pool is at capacity (spec.md §4 error kind (d), "resource exhaustion").
// evicted reports whether an eviction occurred, so callers can raise
// WarnEmberPoolSaturated.
func (p *emberPool) spawn(init Ember) (id uint64, evicted bool) {
	idx := p.popFree()
	if idx < 0 {
		// pool full: evict the oldest live ember deterministically.
		idx = p.liveHead
		p.removeLive(idx)
		evicted = true
	}
	p.nextID++
	init.ID = p.nextID
	init.alive = true
	p.slots[idx] = init
	p.slots[idx].ID = init.ID
	p.slots[idx].alive = true
	p.appendLive(idx)
	return init.ID, evicted
}

// kill removes a live ember (landed/ignited/cooled) and returns its slot
// to the free list.
func (p *emberPool) kill(idx int32) {
	p.removeLive(idx)
	p.slots[idx].alive = false
	p.pushFree(idx)
}

// forEachLive walks live embers oldest-first, calling fn with each slot
// index. The next index is read before fn is called, so fn may kill the
// slot it is given; any other change to the list structure during the
// walk is not supported.
func (p *emberPool) forEachLive(fn func(idx int32, e *Ember)) {
	for idx := p.liveHead; idx >= 0; {
		next := p.slots[idx].next
		fn(idx, &p.slots[idx])
		idx = next
	}
}

// snapshot returns a copy of every live ember, used by the boundary
// operation get_embers() (spec.md §6).
func (p *emberPool) snapshot() []Ember {
	out := make([]Ember, 0, p.liveCount)
	p.forEachLive(func(_ int32, e *Ember) {
		out = append(out, *e)
	})
	return out
}
