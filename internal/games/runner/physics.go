package runner

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/query"
)

// OverlapFunc handles an overlapping pair, a from the first group and b from
// the second.
type OverlapFunc func(w donburi.World, a, b *donburi.Entry)

type collider struct {
	dynamic, static *query.Query
}

type overlap struct {
	a, b *query.Query
	fn   OverlapFunc
}

type pair struct {
	a, b donburi.Entity
	fn   OverlapFunc
}

// Physics is a minimal arcade physics system: gravity, axis-aligned bodies,
// blocking colliders against static bodies and overlap callbacks.
type Physics struct {
	Gravity   float64 // px/s²
	RestSpeed float64 // bounces slower than this come to rest

	paused    bool
	colliders []collider
	overlaps  []overlap
}

// NewPhysics creates a physics system.
func NewPhysics(gravity, restSpeed float64) *Physics {
	return &Physics{Gravity: gravity, RestSpeed: restSpeed}
}

// Collide makes every body matched by dynamic land on bodies matched by static.
func (p *Physics) Collide(dynamic, static *query.Query) {
	p.colliders = append(p.colliders, collider{dynamic: dynamic, static: static})
}

// Overlap calls fn for every intersecting pair of the two groups after each step.
func (p *Physics) Overlap(a, b *query.Query, fn OverlapFunc) {
	p.overlaps = append(p.overlaps, overlap{a: a, b: b, fn: fn})
}

// Pause stops simulation until Resume.
func (p *Physics) Pause() { p.paused = true }

// Resume restarts simulation.
func (p *Physics) Resume() { p.paused = false }

// Paused reports whether the simulation is paused.
func (p *Physics) Paused() bool { return p.paused }

// Step integrates every body by dt seconds, resolves colliders and then
// reports overlaps. Overlap callbacks run after all pairs are collected, so
// they may freely create or remove entities.
func (p *Physics) Step(w donburi.World, dt float64) {
	if p.paused || dt <= 0 {
		return
	}

	bodyQuery.Each(w, func(e *donburi.Entry) {
		b := Body.Get(e)
		if b.Static {
			return
		}
		b.prevY = b.Y
		b.Grounded = false
		b.VY += p.Gravity * dt
		b.X += b.VX * dt
		b.Y += b.VY * dt
	})

	for _, c := range p.colliders {
		c.dynamic.Each(w, func(de *donburi.Entry) {
			b := Body.Get(de)
			if b.Static {
				return
			}
			c.static.Each(w, func(se *donburi.Entry) {
				p.land(b, Body.Get(se))
			})
		})
	}

	var pairs []pair
	for _, o := range p.overlaps {
		o.a.Each(w, func(ae *donburi.Entry) {
			ar := Body.Get(ae).Rect()
			o.b.Each(w, func(be *donburi.Entry) {
				if ae.Entity() == be.Entity() {
					return
				}
				if ar.Intersects(Body.Get(be).Rect()) {
					pairs = append(pairs, pair{a: ae.Entity(), b: be.Entity(), fn: o.fn})
				}
			})
		})
	}
	for _, pr := range pairs {
		if !w.Valid(pr.a) || !w.Valid(pr.b) {
			continue
		}
		pr.fn(w, w.Entry(pr.a), w.Entry(pr.b))
	}
}

// land stops a falling body on top of a static one.
func (p *Physics) land(b, ground *BodyData) {
	if b.VY < 0 {
		return
	}
	gr := ground.Rect()
	if !b.Rect().OverlapsX(gr) {
		return
	}
	prevBottom := b.prevY + b.H/2
	if b.Bottom() < gr.Y || prevBottom > gr.Y {
		return
	}

	b.Y = gr.Y - b.H/2
	if b.VY*b.Bounce < p.RestSpeed {
		b.VY = 0
	} else {
		b.VY = -b.VY * b.Bounce
	}
	b.Grounded = true
}
