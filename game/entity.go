package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// UnboundSlot marks an entity that is not currently held by any pool.
const UnboundSlot = -1

// Transform is one entry of a pool's flat render buffer: position, Euler
// rotation and per-axis scale, in world units. The renderer consumes these
// directly; nothing else reads them.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Pooled is the contract every pool-managed entity must satisfy. The slot
// handle is mutated only by the owning pool, via Bind; everybody else treats
// it as read-only.
type Pooled interface {
	ID() string
	Slot() int
	Bind(slot int)
	Transform() Transform
}

// Collider is what the collision dispatcher sees of an entity: identity,
// position, a broad-phase radius and a liveness flag. Alive goes false the
// moment a controller removes the entity, so a pair checked later in the same
// dispatch pass skips it.
type Collider interface {
	ID() string
	Position() mgl32.Vec3
	CollisionRadius() float32
	Alive() bool
}

// Updatable is implemented by entities that carry their own per-frame logic.
type Updatable interface {
	Update(dt float32)
}

// Snapshot is the read-only view of an entity handed to external consumers
// (networking, saves). It never exposes slot indices.
type Snapshot struct {
	ID       string     `json:"id"`
	Position [3]float32 `json:"position"`
	Kind     string     `json:"kind"`
	Size     float32    `json:"size"`
}

// pooledEntity carries the identity and slot handle shared by every entity
// kind. Embed it and the Pooled boilerplate is done.
type pooledEntity struct {
	id   string
	slot int
}

func newPooledEntity() pooledEntity {
	return pooledEntity{id: uuid.NewString(), slot: UnboundSlot}
}

func (e *pooledEntity) ID() string    { return e.id }
func (e *pooledEntity) Slot() int     { return e.slot }
func (e *pooledEntity) Bind(slot int) { e.slot = slot }
func (e *pooledEntity) Bound() bool   { return e.slot != UnboundSlot }

func snapshotPosition(p mgl32.Vec3) [3]float32 {
	return [3]float32{p.X(), p.Y(), p.Z()}
}
