package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionJump) {
		t.Error("empty frame should have no actions")
	}

	f.Set(ActionJump)
	f.SetPointer(0.25, 1.5)

	if !f.Has(ActionJump) || !f.Has(ActionPointer) {
		t.Error("actions should be set")
	}
	if f.Pointer.X != 0.25 || f.Pointer.Y != 1 {
		t.Errorf("Pointer = %+v, expected clamped (0.25, 1)", f.Pointer)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) || f.Pointer != (PointerPos{}) {
		t.Error("Clear should reset actions and pointer")
	}
	if !clone.Has(ActionJump) || clone.Pointer.X != 0.25 {
		t.Error("clone should be independent of the original")
	}
}

func TestFrameTimeHasNoDrift(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 60}

	if got := cfg.FrameTime(60); got.Seconds() != 1 {
		t.Errorf("FrameTime(60) = %v, expected 1s", got)
	}
	if got := cfg.FrameTime(300); got.Seconds() != 5 {
		t.Errorf("FrameTime(300) = %v, expected 5s", got)
	}
}

func TestRecordedScore(t *testing.T) {
	st := GameState{Score: 0, FinalScore: 12, GameOver: true}
	if st.RecordedScore() != 12 {
		t.Errorf("RecordedScore() = %d, expected 12", st.RecordedScore())
	}
}
