package runner

import (
	"testing"

	"github.com/yohamta/donburi"
)

func newPhysicsWorld(body BodyData) (donburi.World, donburi.Entity) {
	w := donburi.NewWorld()

	g := w.Entry(w.Create(Body, GroundTag))
	Body.SetValue(g, BodyData{X: 400, Y: 320, W: 800, H: 64, Static: true})

	p := w.Create(Body, PlayerTag)
	Body.SetValue(w.Entry(p), body)
	return w, p
}

func TestPhysicsLanding(t *testing.T) {
	tests := []struct {
		name    string
		vy      float64
		bounce  float64
		wantVY  float64
		landing bool
	}{
		{"fast bounce", 1000, 0.1, -101, true},
		{"slow comes to rest", 100, 0.1, 0, true},
		{"no bounce", 1000, 0, 0, true},
		{"moving up passes", -100, 0.1, -90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Bottom starts half a pixel above the ground top (288).
			w, p := newPhysicsWorld(BodyData{X: 80, Y: 251.5, W: 42, H: 72, VY: tt.vy, Bounce: tt.bounce})
			phys := NewPhysics(1000, 50)
			phys.Collide(playerQuery, groundQuery)

			phys.Step(w, 0.01)

			b := Body.Get(w.Entry(p))
			if b.Grounded != tt.landing {
				t.Fatalf("grounded = %v, want %v", b.Grounded, tt.landing)
			}
			if tt.landing && b.Bottom() != 288 {
				t.Errorf("bottom = %.3f, want 288", b.Bottom())
			}
			if diff := b.VY - tt.wantVY; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("VY = %.3f, want %.3f", b.VY, tt.wantVY)
			}
		})
	}
}

func TestPhysicsPaused(t *testing.T) {
	w, p := newPhysicsWorld(BodyData{X: 80, Y: 100, W: 42, H: 72, VX: 10})
	phys := NewPhysics(1000, 50)
	phys.Pause()

	phys.Step(w, 0.5)

	b := Body.Get(w.Entry(p))
	if b.X != 80 || b.Y != 100 || b.VY != 0 {
		t.Errorf("paused body moved: %+v", *b)
	}

	phys.Resume()
	phys.Step(w, 0.5)
	if Body.Get(w.Entry(p)).Y == 100 {
		t.Error("resumed body did not fall")
	}
}

func TestPhysicsOverlap(t *testing.T) {
	w, p := newPhysicsWorld(BodyData{X: 80, Y: 252, W: 42, H: 72})
	near := w.Create(Body, EnemyTag)
	Body.SetValue(w.Entry(near), BodyData{X: 100, Y: 258, W: 36, H: 60})
	far := w.Create(Body, EnemyTag)
	Body.SetValue(w.Entry(far), BodyData{X: 600, Y: 258, W: 36, H: 60})

	phys := NewPhysics(0, 50)
	var hits []donburi.Entity
	phys.Overlap(playerQuery, enemyQuery, func(w donburi.World, a, b *donburi.Entry) {
		if a.Entity() != p {
			t.Errorf("first entry is not the player")
		}
		hits = append(hits, b.Entity())
		w.Remove(b.Entity())
	})

	phys.Step(w, 0.01)

	if len(hits) != 1 || hits[0] != near {
		t.Fatalf("hits = %v, want only the near enemy", hits)
	}
	if w.Valid(near) {
		t.Error("callback could not remove the enemy")
	}
	if !w.Valid(far) {
		t.Error("far enemy removed")
	}
}
