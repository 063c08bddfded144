package game

import "go.uber.org/zap"

// Kind tags what a collider is, as seen by the other side of a collision.
// Controllers learn they hit "a bullet" or "an asteroid" by tag, never by
// seeing the other pool's concrete type.
type Kind string

const (
	KindAsteroid    Kind = "asteroid"
	KindBullet      Kind = "bullet"
	KindPlayer      Kind = "player"
	KindEnemy       Kind = "enemy"
	KindCollectible Kind = "collectible"
)

// CollisionHandler is the only surface by which the dispatcher (or anything
// else) may affect a controller's entities.
type CollisionHandler interface {
	CollisionKind() Kind

	// ActiveColliders returns a snapshot of the controller's live entities.
	// The dispatcher takes it once at the start of a pass, so entities
	// spawned during the pass are first checked next frame.
	ActiveColliders() []Collider

	// HandleCollisionWith tells the controller that self (one of its own
	// entities) collided with other, which is of the given kind.
	HandleCollisionWith(kind Kind, self, other Collider)
}

// PairFilter vetoes individual collider pairings within a registered pair
// (e.g. an enemy-faction bullet never collides with an enemy craft).
type PairFilter func(a, b Collider) bool

// Pair registers that two kinds can collide. ConsumeA / ConsumeB enroll that
// side in the once-per-frame registry: a consumed collider stops being checked
// for the rest of the pass, so a projectile cannot destroy two asteroids in
// one frame and the ship takes at most one hazard hit per frame.
type Pair struct {
	A, B     Kind
	ConsumeA bool
	ConsumeB bool
	Filter   PairFilter

	// RadiusScale widens (>1) or tightens (<1) the overlap test for this pair
	// only. Zero means 1.
	RadiusScale float32
}

// CollisionSystem walks all registered kind pairs each frame, applies the
// broad-phase distance test and notifies both owning controllers of each hit.
// It never reaches into a pool and it never fails: a missing handler or an
// empty pool simply skips that pair for the frame.
type CollisionSystem struct {
	ctx      *Context
	handlers map[Kind]CollisionHandler
	pairs    []Pair
}

// NewCollisionSystem creates an empty dispatcher.
func NewCollisionSystem(ctx *Context) *CollisionSystem {
	return &CollisionSystem{
		ctx:      ctx,
		handlers: make(map[Kind]CollisionHandler),
	}
}

// Register adds a controller by its kind. Registering the same kind again
// replaces the previous handler.
func (cs *CollisionSystem) Register(h CollisionHandler) {
	cs.handlers[h.CollisionKind()] = h
}

// AddPair registers a kind pair to be checked each frame, in order of
// addition.
func (cs *CollisionSystem) AddPair(p Pair) {
	cs.pairs = append(cs.pairs, p)
}

// overlaps is the broad-phase test: Euclidean distance against the sum of the
// two collision radii, scaled per pair.
func overlaps(a, b Collider, radiusScale float32) bool {
	if radiusScale == 0 {
		radiusScale = 1
	}
	d := a.Position().Sub(b.Position()).Len()
	return d < (a.CollisionRadius()+b.CollisionRadius())*radiusScale
}

// Check runs one dispatch pass. Snapshots of every pool's active list are
// taken up front; handler callbacks may remove entities (the Alive flag keeps
// later tests honest) and may spawn new ones, which are not seen until the
// next pass.
func (cs *CollisionSystem) Check() {
	if len(cs.pairs) == 0 {
		return
	}

	lists := make(map[Kind][]Collider, len(cs.handlers))
	for kind, h := range cs.handlers {
		lists[kind] = h.ActiveColliders()
	}

	consumed := make(map[string]struct{})

	for _, pr := range cs.pairs {
		ha, okA := cs.handlers[pr.A]
		hb, okB := cs.handlers[pr.B]
		if !okA || !okB {
			cs.ctx.Log.Debug("collision pair skipped, missing handler",
				zap.String("a", string(pr.A)), zap.String("b", string(pr.B)))
			continue
		}
		la, lb := lists[pr.A], lists[pr.B]
		if len(la) == 0 || len(lb) == 0 {
			continue
		}

		for _, a := range la {
			if !a.Alive() {
				continue
			}
			if pr.ConsumeA {
				if _, done := consumed[a.ID()]; done {
					continue
				}
			}
			for _, b := range lb {
				if !b.Alive() || a.ID() == b.ID() {
					continue
				}
				if pr.ConsumeB {
					if _, done := consumed[b.ID()]; done {
						continue
					}
				}
				if pr.Filter != nil && !pr.Filter(a, b) {
					continue
				}
				if !overlaps(a, b, pr.RadiusScale) {
					continue
				}

				ha.HandleCollisionWith(pr.B, a, b)
				hb.HandleCollisionWith(pr.A, b, a)

				if pr.ConsumeB {
					consumed[b.ID()] = struct{}{}
				}
				if pr.ConsumeA {
					consumed[a.ID()] = struct{}{}
					break
				}
			}
		}
	}
}
