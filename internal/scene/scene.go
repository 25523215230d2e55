package scene

import "math/rand"

// SpawnConfig controls the randomized geometry of bulk-created entities.
// Speeds are per-tick velocity magnitudes, sizes are per-axis extents.
type SpawnConfig struct {
	Count    int
	MinSpeed float64
	MaxSpeed float64
	MinSize  float64
	MaxSize  float64
}

// Scene is a flat collection of independent entities bouncing inside Bounds.
// Single writer: Update and Add run on the pacer goroutine (or before it
// starts); Snapshot copies are handed to the UI.
type Scene struct {
	bounds   *Bounds
	entities []Entity
}

func New(bounds *Bounds) *Scene {
	return &Scene{bounds: bounds}
}

func (s *Scene) Bounds() *Bounds { return s.bounds }
func (s *Scene) Len() int        { return len(s.entities) }

// Add appends one entity. Used for startup population and tests; nothing
// adds or removes entities once the pacer is running.
func (s *Scene) Add(e Entity) {
	s.entities = append(s.entities, e)
}

// Spawn bulk-creates cfg.Count entities with uniform random position inside
// the current bounds, uniform velocity magnitude with random sign per axis,
// and uniform anisotropic size. The magnitude never changes afterwards, only
// its sign.
func (s *Scene) Spawn(cfg SpawnConfig, rng *rand.Rand) {
	w, h := s.bounds.Width(), s.bounds.Height()
	for i := 0; i < cfg.Count; i++ {
		size := Vec2{
			X: uniform(rng, cfg.MinSize, cfg.MaxSize),
			Y: uniform(rng, cfg.MinSize, cfg.MaxSize),
		}
		pos := Vec2{
			X: s.bounds.MarginX + rng.Float64()*max(w-size.X, 1),
			Y: s.bounds.MarginY + rng.Float64()*max(h-size.Y, 1),
		}
		vel := Vec2{
			X: randomSign(rng) * uniform(rng, cfg.MinSpeed, cfg.MaxSpeed),
			Y: randomSign(rng) * uniform(rng, cfg.MinSpeed, cfg.MaxSpeed),
		}
		s.Add(Entity{Pos: pos, Vel: vel, Size: size})
	}
}

// SetBounds is the resize entry point; safe to call from the UI goroutine
// while Update runs elsewhere.
func (s *Scene) SetBounds(width, height float64) {
	s.bounds.Set(width, height)
}

// Update advances every entity by one tick: X axis first, then Y, moving by
// the velocity and then flipping its sign when the leading edge has crossed
// the margin. The check uses the already-moved position, so an entity may
// sit out of bounds for one tick before bouncing back; do not clamp.
func (s *Scene) Update() {
	w, h := s.bounds.Width(), s.bounds.Height()
	mx, my := s.bounds.MarginX, s.bounds.MarginY
	for i := range s.entities {
		e := &s.entities[i]

		e.Pos.X += e.Vel.X
		if e.Pos.X < mx || e.Pos.X+e.Size.X > w+mx {
			e.Vel.X = -e.Vel.X
		}

		e.Pos.Y += e.Vel.Y
		if e.Pos.Y < my || e.Pos.Y+e.Size.Y > h+my {
			e.Vel.Y = -e.Vel.Y
		}
	}
}

// Snapshot copies the entities into dst (grown as needed) for the repaint
// path. Called from the pacer goroutine after Update, never concurrently
// with it.
func (s *Scene) Snapshot(dst []Entity) []Entity {
	dst = dst[:0]
	return append(dst, s.entities...)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return 1
	}
	return -1
}
