package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/25", r.Right(), r.Bottom())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{10.0, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRectFOverlaps(t *testing.T) {
	basket := RectF{X: 10, Y: 20, W: 8, H: 2}

	tests := []struct {
		name     string
		obj      RectF
		expected bool
	}{
		{"fully inside", RectF{X: 12, Y: 20.5, W: 1, H: 1}, true},
		{"partial left overlap", RectF{X: 9, Y: 19.5, W: 2, H: 2}, true},
		{"touching left edge", RectF{X: 8, Y: 20, W: 2, H: 2}, false},
		{"touching right edge", RectF{X: 18, Y: 20, W: 2, H: 2}, false},
		{"bottom resting on rim", RectF{X: 12, Y: 18, W: 2, H: 2}, true},
		{"above basket", RectF{X: 12, Y: 10, W: 2, H: 2}, false},
		{"below basket", RectF{X: 12, Y: 22, W: 2, H: 2}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.obj.Overlaps(basket); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFCells(t *testing.T) {
	r := RectF{X: 3.7, Y: -1.2, W: 0.4, H: 2.9}.Cells()
	if r.X != 3 || r.Y != -1 {
		t.Errorf("Cells() origin = (%d, %d), expected (3, -1)", r.X, r.Y)
	}
	if r.W != 1 || r.H != 2 {
		t.Errorf("Cells() size = %dx%d, expected 1x2", r.W, r.H)
	}
}
