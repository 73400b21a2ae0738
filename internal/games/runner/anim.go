package runner

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownAnimation is returned when an animation key has not been created.
var ErrUnknownAnimation = errors.New("runner: unknown animation")

// RepeatForever makes an animation loop until stopped.
const RepeatForever = -1

// AnimationDef declares a frame range of a spritesheet played at a fixed rate.
type AnimationDef struct {
	Key       string  `yaml:"key"`
	Sheet     string  `yaml:"sheet"`
	Start     int     `yaml:"start"`
	End       int     `yaml:"end"`
	FrameRate float64 `yaml:"frame_rate"`
	Repeat    int     `yaml:"repeat"`
}

// Animation is a created, immutable animation.
type Animation struct {
	Key       string
	Sheet     string
	Frames    []int
	FrameRate float64
	Repeat    int // extra plays after the first; RepeatForever loops
}

// FrameDuration returns how long each frame is shown.
func (a *Animation) FrameDuration() time.Duration {
	if a.FrameRate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / a.FrameRate)
}

// AnimationSet is the global animation registry of a game. Animations are
// created once and survive session restarts.
type AnimationSet struct {
	anims map[string]*Animation
}

// NewAnimationSet creates an empty registry.
func NewAnimationSet() *AnimationSet {
	return &AnimationSet{anims: make(map[string]*Animation)}
}

// Len returns the number of created animations.
func (s *AnimationSet) Len() int {
	return len(s.anims)
}

// Get looks up an animation by key.
func (s *AnimationSet) Get(key string) (*Animation, error) {
	a, ok := s.anims[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, key)
	}
	return a, nil
}

// Ensure creates the animation unless one with the same key already exists,
// in which case the existing one is returned untouched.
func (s *AnimationSet) Ensure(def AnimationDef, assets *Assets) (*Animation, error) {
	if a, ok := s.anims[def.Key]; ok {
		return a, nil
	}
	if def.Key == "" {
		return nil, errors.New("runner: animation without key")
	}

	sheet, err := assets.Sheet(def.Sheet)
	if err != nil {
		return nil, fmt.Errorf("runner: animation %q: %w", def.Key, err)
	}
	if def.End < def.Start {
		return nil, fmt.Errorf("runner: animation %q: end frame %d before start frame %d", def.Key, def.End, def.Start)
	}

	frames := make([]int, 0, def.End-def.Start+1)
	for f := def.Start; f <= def.End; f++ {
		if _, ok := sheet.Frames[f]; !ok {
			return nil, fmt.Errorf("runner: animation %q: %w: frame %d of spritesheet %q", def.Key, ErrUnknownAsset, f, def.Sheet)
		}
		frames = append(frames, f)
	}

	a := &Animation{
		Key:       def.Key,
		Sheet:     def.Sheet,
		Frames:    frames,
		FrameRate: def.FrameRate,
		Repeat:    def.Repeat,
	}
	s.anims[def.Key] = a
	return a, nil
}

// Animator plays one animation on a sprite.
type Animator struct {
	anim    *Animation
	index   int
	elapsed time.Duration
	plays   int
	playing bool
}

// Play starts an animation from its first frame. Playing the animation that
// is already running does nothing.
func (p *Animator) Play(a *Animation) {
	if a == nil || (p.playing && p.anim == a) {
		return
	}
	*p = Animator{anim: a, playing: true}
}

// Stop freezes the current frame.
func (p *Animator) Stop() {
	p.playing = false
}

// Playing reports whether the animation is advancing.
func (p *Animator) Playing() bool {
	return p.playing
}

// Current returns the animation being shown, or nil.
func (p *Animator) Current() *Animation {
	return p.anim
}

// Frame returns the spritesheet frame on display, or -1 with no animation.
func (p *Animator) Frame() int {
	if p.anim == nil || len(p.anim.Frames) == 0 {
		return -1
	}
	return p.anim.Frames[p.index]
}

// Advance moves the animation forward by dt.
func (p *Animator) Advance(dt time.Duration) {
	if !p.playing || p.anim == nil || len(p.anim.Frames) == 0 {
		return
	}
	step := p.anim.FrameDuration()
	p.elapsed += dt
	for p.playing && p.elapsed >= step {
		p.elapsed -= step
		p.index++
		if p.index < len(p.anim.Frames) {
			continue
		}
		p.plays++
		if p.anim.Repeat != RepeatForever && p.plays > p.anim.Repeat {
			p.index = len(p.anim.Frames) - 1
			p.playing = false
			return
		}
		p.index = 0
	}
}
