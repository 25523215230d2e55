package scene_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncelab/internal/scene"
)

var _ = Describe("Update", func() {
	var s *scene.Scene

	newScene := func(w, h, mx, my float64) *scene.Scene {
		return scene.New(scene.NewBounds(w, h, mx, my))
	}

	It("moves first and reflects on the already-moved position", func() {
		s = newScene(100, 100, 10, 10)
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 9, Y: 50}, // marginX-1
			Vel:  scene.Vec2{X: 2, Y: 0},
			Size: scene.Vec2{X: 5, Y: 5},
		})

		s.Update()

		got := s.Snapshot(nil)[0]
		Expect(got.Pos.X).To(Equal(11.0)) // marginX+1
		Expect(got.Vel.X).To(Equal(-2.0))
	})

	It("does not reflect when the trailing edge lands exactly on the outer boundary", func() {
		s = newScene(100, 100, 10, 10)
		// After moving, Pos.X+Size.X == maxWidth+marginX exactly; the check
		// is strictly greater-than, so this is still in bounds.
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 99, Y: 50},
			Vel:  scene.Vec2{X: 1, Y: 0},
			Size: scene.Vec2{X: 10, Y: 5},
		})

		s.Update()

		got := s.Snapshot(nil)[0]
		Expect(got.Pos.X).To(Equal(100.0))
		Expect(got.Vel.X).To(Equal(1.0))
	})

	It("reflects once the trailing edge exceeds the outer boundary", func() {
		s = newScene(100, 100, 10, 10)
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 99.5, Y: 50},
			Vel:  scene.Vec2{X: 1, Y: 0},
			Size: scene.Vec2{X: 10, Y: 5},
		})

		s.Update()

		got := s.Snapshot(nil)[0]
		Expect(got.Pos.X).To(Equal(100.5)) // one tick of overshoot, not clamped
		Expect(got.Vel.X).To(Equal(-1.0))
	})

	It("reflects an entity that starts inside the margin", func() {
		// 60fps demo scenario: the entity starts at the origin, below both
		// margins, so the very first tick flips both velocity components.
		s = newScene(100, 100, 10, 10)
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 0, Y: 0},
			Vel:  scene.Vec2{X: 1, Y: 1},
			Size: scene.Vec2{X: 10, Y: 10},
		})

		s.Update()

		got := s.Snapshot(nil)[0]
		Expect(got.Pos).To(Equal(scene.Vec2{X: 1, Y: 1}))
		Expect(got.Vel).To(Equal(scene.Vec2{X: -1, Y: -1}))
	})

	It("returns an overshooting entity to bounds on the following tick", func() {
		s = newScene(100, 100, 0, 0)
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 97, Y: 50},
			Vel:  scene.Vec2{X: 5, Y: 0},
			Size: scene.Vec2{X: 4, Y: 4},
		})

		s.Update()
		out := s.Snapshot(nil)[0]
		Expect(out.Pos.X).To(Equal(102.0)) // 102+4 > 100, out of bounds for this tick
		Expect(out.Vel.X).To(Equal(-5.0))

		s.Update()
		back := s.Snapshot(nil)[0]
		Expect(back.Pos.X).To(Equal(97.0))
	})

	It("never changes velocity magnitude, only sign", func() {
		s = newScene(60, 60, 5, 5)
		s.Add(scene.Entity{
			Pos:  scene.Vec2{X: 30, Y: 30},
			Vel:  scene.Vec2{X: 3.5, Y: -2.25},
			Size: scene.Vec2{X: 4, Y: 4},
		})

		for i := 0; i < 500; i++ {
			s.Update()
		}

		got := s.Snapshot(nil)[0]
		Expect(math.Abs(got.Vel.X)).To(Equal(3.5))
		Expect(math.Abs(got.Vel.Y)).To(Equal(2.25))
	})
})

var _ = Describe("SetBounds", func() {
	It("is idempotent with respect to entity trajectories", func() {
		start := scene.Entity{
			Pos:  scene.Vec2{X: 40, Y: 20},
			Vel:  scene.Vec2{X: 3, Y: -2},
			Size: scene.Vec2{X: 6, Y: 6},
		}

		once := scene.New(scene.NewBounds(100, 80, 4, 4))
		once.Add(start)
		once.SetBounds(120, 90)

		repeated := scene.New(scene.NewBounds(100, 80, 4, 4))
		repeated.Add(start)

		for i := 0; i < 300; i++ {
			repeated.SetBounds(120, 90)
			once.Update()
			repeated.Update()
			Expect(repeated.Snapshot(nil)).To(Equal(once.Snapshot(nil)))
		}
	})

	It("round-trips width and height through the atomic fields", func() {
		b := scene.NewBounds(64.5, 48.25, 2, 3)
		Expect(b.Width()).To(Equal(64.5))
		Expect(b.Height()).To(Equal(48.25))

		b.Set(200, 100)
		Expect(b.Width()).To(Equal(200.0))
		Expect(b.Height()).To(Equal(100.0))
	})
})

var _ = Describe("Spawn", func() {
	It("creates the requested count with geometry inside the configured ranges", func() {
		s := scene.New(scene.NewBounds(200, 120, 8, 8))
		s.Spawn(scene.SpawnConfig{
			Count:    50,
			MinSpeed: 0.5,
			MaxSpeed: 2.0,
			MinSize:  4,
			MaxSize:  12,
		}, rand.New(rand.NewSource(7)))

		entities := s.Snapshot(nil)
		Expect(entities).To(HaveLen(50))
		for _, e := range entities {
			Expect(math.Abs(e.Vel.X)).To(And(
				BeNumerically(">=", 0.5), BeNumerically("<=", 2.0)))
			Expect(math.Abs(e.Vel.Y)).To(And(
				BeNumerically(">=", 0.5), BeNumerically("<=", 2.0)))
			Expect(e.Size.X).To(And(
				BeNumerically(">=", 4), BeNumerically("<=", 12)))
			Expect(e.Size.Y).To(And(
				BeNumerically(">=", 4), BeNumerically("<=", 12)))
			Expect(e.Pos.X).To(BeNumerically(">=", 8))
			Expect(e.Pos.Y).To(BeNumerically(">=", 8))
		}
	})

	It("is deterministic for a fixed seed", func() {
		build := func() []scene.Entity {
			s := scene.New(scene.NewBounds(100, 100, 0, 0))
			s.Spawn(scene.SpawnConfig{
				Count: 10, MinSpeed: 1, MaxSpeed: 3, MinSize: 2, MaxSize: 6,
			}, rand.New(rand.NewSource(42)))
			return s.Snapshot(nil)
		}
		Expect(build()).To(Equal(build()))
	})
})
