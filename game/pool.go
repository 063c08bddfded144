package game

import "errors"

// ErrPoolFull is returned by Insert when a pool is at capacity. Callers treat
// it as "spawn skipped", never as a fault.
var ErrPoolFull = errors.New("pool full")

// Pool is a fixed-capacity container for one kind of entity. It keeps two
// parallel arrays: the logical entities and a flat transform buffer the
// renderer consumes. For every i < Active(), transforms[i] mirrors
// entities[i]; slots at or past Active() are garbage and must not be read.
//
// Removal is swap-with-last, so slot order is not stable across removals.
// Consumers that may remove mid-iteration must use ReverseEach: forward
// iteration with removal either skips the freshly swapped-in entity or visits
// a moved one twice.
type Pool[T Pooled] struct {
	entities   []T
	transforms []Transform
	active     int
	dirty      bool
}

// NewPool creates a pool with the given fixed capacity.
func NewPool[T Pooled](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		entities:   make([]T, capacity),
		transforms: make([]Transform, capacity),
	}
}

// Capacity returns the fixed capacity set at construction.
func (p *Pool[T]) Capacity() int { return len(p.entities) }

// Active returns the number of live entities.
func (p *Pool[T]) Active() int { return p.active }

// Insert stores the entity at the next free slot, binds its handle and writes
// its current transform into the buffer. Returns ErrPoolFull with no mutation
// when the pool is at capacity.
func (p *Pool[T]) Insert(e T) (int, error) {
	if p.active == len(p.entities) {
		return UnboundSlot, ErrPoolFull
	}
	slot := p.active
	p.entities[slot] = e
	p.transforms[slot] = e.Transform()
	e.Bind(slot)
	p.active++
	return slot, nil
}

// Remove detaches the entity at slot and returns it. An out-of-range slot is
// a no-op returning the zero value and false: handles can go stale across a
// swap-remove the caller did not observe, and that must never be a fault.
//
// If slot is not the last active index, the last entity (and its transform)
// is relocated into slot and its handle updated; order is not preserved.
func (p *Pool[T]) Remove(slot int) (T, bool) {
	var zero T
	if slot < 0 || slot >= p.active {
		return zero, false
	}
	removed := p.entities[slot]
	last := p.active - 1
	if slot != last {
		moved := p.entities[last]
		p.entities[slot] = moved
		p.transforms[slot] = p.transforms[last]
		moved.Bind(slot)
	}
	p.entities[last] = zero
	p.active = last
	removed.Bind(UnboundSlot)
	return removed, true
}

// RemoveEntity removes e using its own handle, verifying that the slot still
// holds e. A stale or unbound handle is a no-op, so removing the same entity
// twice is safe.
func (p *Pool[T]) RemoveEntity(e T) bool {
	slot := e.Slot()
	if slot < 0 || slot >= p.active {
		return false
	}
	if p.entities[slot].ID() != e.ID() {
		return false
	}
	_, ok := p.Remove(slot)
	return ok
}

// At returns the entity at slot. Only valid for slot < Active().
func (p *Pool[T]) At(slot int) T { return p.entities[slot] }

// ReverseEach visits every active entity from the highest slot down to 0.
// f may remove the entity it is handed (or any entity at a higher slot)
// without disturbing the iteration; this is the documented contract for any
// update loop that culls entities as it goes.
func (p *Pool[T]) ReverseEach(f func(slot int, e T)) {
	for i := p.active - 1; i >= 0; i-- {
		if i >= p.active {
			// f removed more than the entity it was handed.
			continue
		}
		f(i, p.entities[i])
	}
}

// SyncTransform copies the entity's current transform into the buffer slot.
// Controllers call this for each entity whose transform changed during an
// update pass.
func (p *Pool[T]) SyncTransform(slot int) {
	if slot < 0 || slot >= p.active {
		return
	}
	p.transforms[slot] = p.entities[slot].Transform()
}

// Flush marks the transform buffer dirty for the renderer. Called exactly
// once per frame by the orchestrator, never per mutation.
func (p *Pool[T]) Flush() { p.dirty = true }

// Dirty reports whether the buffer has been flushed since the renderer last
// consumed it.
func (p *Pool[T]) Dirty() bool { return p.dirty }

// MarkClean is called by the render consumer after it has read the buffer.
func (p *Pool[T]) MarkClean() { p.dirty = false }

// Transforms returns the live prefix of the transform buffer. The renderer
// must not read beyond it.
func (p *Pool[T]) Transforms() []Transform { return p.transforms[:p.active] }

// Clear unbinds every active entity and resets the pool to empty. Per-entity
// teardown is the controller's job, done before calling Clear.
func (p *Pool[T]) Clear() {
	var zero T
	for i := 0; i < p.active; i++ {
		p.entities[i].Bind(UnboundSlot)
		p.entities[i] = zero
	}
	p.active = 0
}
