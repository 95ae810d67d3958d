package fruitcatch

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	basket := Basket{X: 10, Y: 20, Width: 8, Height: 1}
	const screenH = 24

	tests := []struct {
		name     string
		obj      FallingObject
		expected string // "caught", "missed" or "none"
	}{
		{"fully inside", FallingObject{X: 12, Y: 20, Size: 1}, "caught"},
		{"partial overlap", FallingObject{X: 9.5, Y: 19.5, Size: 1}, "caught"},
		{"resting on rim", FallingObject{X: 12, Y: 19, Size: 1}, "caught"},
		{"above basket", FallingObject{X: 12, Y: 15, Size: 1}, "none"},
		{"touching left edge", FallingObject{X: 9, Y: 20, Size: 1}, "none"},
		{"touching right edge", FallingObject{X: 18, Y: 20, Size: 1}, "none"},
		{"below basket on screen", FallingObject{X: 12, Y: 21, Size: 1}, "none"},
		{"exactly at bottom", FallingObject{X: 0, Y: 24, Size: 1}, "none"},
		{"past bottom", FallingObject{X: 0, Y: 24.5, Size: 1}, "missed"},
		{"past bottom under basket", FallingObject{X: 12, Y: 30, Size: 1}, "missed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify([]FallingObject{tt.obj}, basket, screenH)
			got := "none"
			switch {
			case len(c.Caught) == 1 && len(c.Missed) == 0:
				got = "caught"
			case len(c.Missed) == 1 && len(c.Caught) == 0:
				got = "missed"
			case len(c.Caught)+len(c.Missed) > 1:
				got = "both"
			}
			if got != tt.expected {
				t.Errorf("Classify() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestClassifyCaughtWinsOverMissed(t *testing.T) {
	// Basket below the bottom edge: an overlapping object past the edge
	// must be caught, never both.
	basket := Basket{X: 0, Y: 25, Width: 10, Height: 1}
	obj := FallingObject{ID: 1, X: 2, Y: 24.5, Size: 1}

	c := Classify([]FallingObject{obj}, basket, 24)
	if len(c.Caught) != 1 || len(c.Missed) != 0 {
		t.Errorf("expected caught only, got caught=%d missed=%d", len(c.Caught), len(c.Missed))
	}
}

func TestClassifyExhaustiveAndPure(t *testing.T) {
	basket := Basket{X: 10, Y: 20, Width: 8, Height: 1}
	var objects []FallingObject
	id := uint64(0)
	for x := -1.0; x < 30; x += 1.5 {
		for y := -1.0; y < 30; y += 0.75 {
			id++
			objects = append(objects, FallingObject{ID: id, X: x, Y: y, Size: 1, Kind: KindOrange})
		}
	}
	before := make([]FallingObject, len(objects))
	copy(before, objects)

	c := Classify(objects, basket, 24)

	seen := make(map[uint64]int)
	for _, o := range c.Caught {
		seen[o.ID]++
	}
	for _, o := range c.Missed {
		seen[o.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("object %d classified %d times", id, n)
		}
	}
	if len(c.Caught) == 0 || len(c.Missed) == 0 {
		t.Errorf("grid should produce both outcomes, caught=%d missed=%d", len(c.Caught), len(c.Missed))
	}
	if !reflect.DeepEqual(before, objects) {
		t.Error("Classify mutated its input")
	}
}
