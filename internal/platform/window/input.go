package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// keyBindings mirrors the terminal key map.
var keyBindings = map[ebiten.Key]core.Action{
	ebiten.KeySpace:   core.ActionJump,
	ebiten.KeyArrowUp: core.ActionJump,
	ebiten.KeyW:       core.ActionJump,
	ebiten.KeyEnter:   core.ActionConfirm,
	ebiten.KeyR:       core.ActionRestart,
	ebiten.KeyP:       core.ActionPause,
	ebiten.KeyEscape:  core.ActionBack,
	ebiten.KeyB:       core.ActionBack,
	ebiten.KeyQ:       core.ActionQuit,
}

// mapKeys records the action of every key pressed since the last update.
func mapKeys(justPressed func(ebiten.Key) bool, frame *core.InputFrame) {
	for k, a := range keyBindings {
		if justPressed(k) {
			frame.Set(a)
		}
	}
}

// mapPointer records a press at logical screen position (x, y) on a
// w by h layout.
func mapPointer(x, y, w, h int, frame *core.InputFrame) {
	if w <= 0 || h <= 0 {
		return
	}
	frame.SetPointer(float64(x)/float64(w), float64(y)/float64(h))
}

// pollInput reads keyboard, mouse and touch input for one update.
func pollInput(w, h int, frame *core.InputFrame) {
	mapKeys(inpututil.IsKeyJustPressed, frame)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		mapPointer(x, y, w, h, frame)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		mapPointer(x, y, w, h, frame)
	}
}
