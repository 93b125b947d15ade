package core

import "testing"

func TestRectEdges(t *testing.T) {
	// A switch box as the board draws it.
	r := NewRect(12, 9, 6, 3)

	if r.Right() != 18 || r.Bottom() != 12 {
		t.Errorf("edges = (%d, %d), want (18, 12)", r.Right(), r.Bottom())
	}
}

func TestClampProgressBar(t *testing.T) {
	const width = 20

	tests := []struct {
		name   string
		filled int
		want   int
	}{
		{"empty", 0, 0},
		{"half", 10, 10},
		{"overdrawn", 23, width},
		{"negative", -1, 0},
		{"full", width, width},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.filled, 0, width); got != tc.want {
				t.Errorf("Clamp(%d, 0, %d) = %d, want %d", tc.filled, width, got, tc.want)
			}
		})
	}
}
