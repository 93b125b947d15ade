package core

import "testing"

func TestInputFramePressOrder(t *testing.T) {
	f := NewInputFrame()
	f.Press(2)
	f.Press(0)
	f.Press(2)

	if !f.Has(ActionSwitch) {
		t.Error("Press should set ActionSwitch")
	}
	want := []int{2, 0, 2}
	if len(f.Switches) != len(want) {
		t.Fatalf("Switches = %v, want %v", f.Switches, want)
	}
	for i := range want {
		if f.Switches[i] != want[i] {
			t.Errorf("Switches[%d] = %d, want %d", i, f.Switches[i], want[i])
		}
	}

	f.Clear()
	if f.Has(ActionSwitch) || len(f.Switches) != 0 {
		t.Errorf("Clear left %v %v", f.Actions, f.Switches)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionReset) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionReset)
	if !f.Has(ActionReset) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionHint.String() != "Hint" || Action(99).String() != "Unknown" {
		t.Errorf("unexpected names %q %q", ActionHint, Action(99))
	}
}
