package runner

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func TestDefaultAssets(t *testing.T) {
	a := testAssets(t)

	for _, key := range []string{ImageSky, ImageGround} {
		if _, err := a.Image(key); err != nil {
			t.Errorf("Image(%q) error: %v", key, err)
		}
	}
	for _, key := range []string{SheetPlayer, SheetEnemy} {
		if _, err := a.Sheet(key); err != nil {
			t.Errorf("Sheet(%q) error: %v", key, err)
		}
	}
	for _, key := range []core.Sound{SoundJump, SoundGameOver} {
		if !a.HasAudio(key) {
			t.Errorf("audio %q not registered", key)
		}
	}
	if len(a.Animations()) != 2 {
		t.Errorf("animations = %d, want 2", len(a.Animations()))
	}
}

func TestUnknownAsset(t *testing.T) {
	a := testAssets(t)

	if _, err := a.Image("clouds"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("Image() error = %v, want ErrUnknownAsset", err)
	}
	if _, err := a.Sheet("boss"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("Sheet() error = %v, want ErrUnknownAsset", err)
	}
}

func TestPreloadRejectsBadManifest(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"multi-char glyph", "images:\n  sky:\n    glyph: ab\n"},
		{"empty glyph", "images:\n  sky:\n    glyph: \"\"\n"},
		{"unknown image color", "images:\n  sky:\n    glyph: x\n    color: chartreuse\n"},
		{"unknown sheet color", "spritesheets:\n  p:\n    color: chartreuse\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseManifest() error: %v", err)
			}
			if _, err := Preload(m); err == nil {
				t.Error("Preload() should fail")
			}
		})
	}
}

func TestMirror(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"< \\", 3, "/ >"},
		{"<|", 3, " |>"},
		{"(o", 2, "o)"},
	}
	for _, tt := range tests {
		if got := mirror(tt.in, tt.width); got != tt.want {
			t.Errorf("mirror(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
