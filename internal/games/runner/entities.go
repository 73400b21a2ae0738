package runner

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// BodyData is an arcade physics body. Positions are body centers in world
// pixels; velocities are pixels per second.
type BodyData struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Bounce   float64
	Static   bool
	Grounded bool // blocked from below during the last physics step

	prevY float64
}

// Rect returns the body's bounds.
func (b *BodyData) Rect() core.RectF {
	return core.RectFromCenter(b.X, b.Y, b.W, b.H)
}

// Bottom returns the y of the body's lower edge.
func (b *BodyData) Bottom() float64 {
	return b.Y + b.H/2
}

// SpriteData is what the renderer draws for an entity.
type SpriteData struct {
	Image string // single-glyph image key, used when Sheet is empty
	Sheet string
	Tint  core.Color // overrides the sheet color when not ColorDefault
	FlipX bool
	Anim  Animator
}

var (
	Body   = donburi.NewComponentType[BodyData]()
	Sprite = donburi.NewComponentType[SpriteData]()

	PlayerTag = donburi.NewTag()
	EnemyTag  = donburi.NewTag()
	GroundTag = donburi.NewTag()
)

var (
	playerQuery = query.NewQuery(filter.Contains(PlayerTag, Body))
	enemyQuery  = query.NewQuery(filter.Contains(EnemyTag, Body))
	groundQuery = query.NewQuery(filter.Contains(GroundTag, Body))
	bodyQuery   = query.NewQuery(filter.Contains(Body))
	spriteQuery = query.NewQuery(filter.Contains(Sprite, Body))
)
