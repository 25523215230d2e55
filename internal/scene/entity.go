package scene

// Vec2 is a 2D vector in canvas coordinates.
type Vec2 struct {
	X, Y float64
}

// Entity is one movable sprite: a top-left anchor, a per-tick displacement
// and a bounding size. Entities are bulk-created at startup and live for the
// process lifetime; only Update mutates them, and Update runs on the pacer
// goroutine only.
type Entity struct {
	Pos  Vec2
	Vel  Vec2
	Size Vec2
}
