package runner

import (
	_ "embed"
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed assets/manifest.yaml
var defaultManifestYAML []byte

// Asset keys used by the game.
const (
	ImageSky      = "sky"
	ImageGround   = "ground"
	SheetPlayer   = "player"
	SheetEnemy    = "enemy"
	AnimPlayer    = "playerWalk"
	AnimEnemy     = "enemyWalk"
	SoundJump     = core.Sound("jumpSfx")
	SoundGameOver = core.Sound("gameOver")
)

// ErrUnknownAsset is returned when a key was never registered by Preload.
var ErrUnknownAsset = errors.New("runner: unknown asset")

// Manifest is the YAML description of every asset a game may use.
type Manifest struct {
	Images       map[string]ImageSpec `yaml:"images"`
	Spritesheets map[string]SheetSpec `yaml:"spritesheets"`
	Audio        []string             `yaml:"audio"`
	Animations   []AnimationDef       `yaml:"animations"`
}

// ImageSpec describes a single-glyph image.
type ImageSpec struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// SheetSpec describes a spritesheet of multi-line glyph frames.
type SheetSpec struct {
	Color  string           `yaml:"color"`
	Frames map[int][]string `yaml:"frames"`
}

// Image is a registered single-glyph image.
type Image struct {
	Glyph rune
	Color core.Color
}

// Sheet is a registered spritesheet.
type Sheet struct {
	Color  core.Color
	Frames map[int][]string
}

// Assets holds everything registered during setup. It is read-only after
// Preload and may be shared by every session of a game.
type Assets struct {
	images     map[string]Image
	sheets     map[string]Sheet
	audio      map[core.Sound]bool
	animations []AnimationDef
}

// ParseManifest decodes a YAML asset manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("runner: cannot parse asset manifest: %w", err)
	}
	return m, nil
}

// Preload registers every asset of the manifest by key.
func Preload(m Manifest) (*Assets, error) {
	a := &Assets{
		images:     make(map[string]Image, len(m.Images)),
		sheets:     make(map[string]Sheet, len(m.Spritesheets)),
		audio:      make(map[core.Sound]bool, len(m.Audio)),
		animations: m.Animations,
	}

	for key, spec := range m.Images {
		glyph, size := utf8.DecodeRuneInString(spec.Glyph)
		if size == 0 || size != len(spec.Glyph) {
			return nil, fmt.Errorf("runner: image %q: glyph must be a single character, got %q", key, spec.Glyph)
		}
		color, err := parseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("runner: image %q: %w", key, err)
		}
		a.images[key] = Image{Glyph: glyph, Color: color}
	}

	for key, spec := range m.Spritesheets {
		color, err := parseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("runner: spritesheet %q: %w", key, err)
		}
		a.sheets[key] = Sheet{Color: color, Frames: spec.Frames}
	}

	for _, key := range m.Audio {
		a.audio[core.Sound(key)] = true
	}

	return a, nil
}

// DefaultAssets preloads the embedded manifest.
func DefaultAssets() (*Assets, error) {
	m, err := ParseManifest(defaultManifestYAML)
	if err != nil {
		return nil, err
	}
	return Preload(m)
}

// Image returns a registered image.
func (a *Assets) Image(key string) (Image, error) {
	img, ok := a.images[key]
	if !ok {
		return Image{}, fmt.Errorf("%w: image %q", ErrUnknownAsset, key)
	}
	return img, nil
}

// Sheet returns a registered spritesheet.
func (a *Assets) Sheet(key string) (Sheet, error) {
	sh, ok := a.sheets[key]
	if !ok {
		return Sheet{}, fmt.Errorf("%w: spritesheet %q", ErrUnknownAsset, key)
	}
	return sh, nil
}

// HasAudio reports whether a sound key was registered.
func (a *Assets) HasAudio(key core.Sound) bool {
	return a.audio[key]
}

// Animations returns the animation definitions declared by the manifest.
func (a *Assets) Animations() []AnimationDef {
	return a.animations
}

func parseColor(name string) (core.Color, error) {
	if name == "" {
		return core.ColorDefault, nil
	}
	c, ok := core.ParseColor(name)
	if !ok {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}
