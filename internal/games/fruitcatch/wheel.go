package fruitcatch

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

// maxSpinSteps bounds headless resolution when decay is misconfigured.
const maxSpinSteps = 1 << 20

// Segment is one reward on the wheel.
type Segment struct {
	Multiplier float64
	Weight     int
	Label      string
}

// Layout is the fixed, weight-expanded and shuffled ring of segments.
// It is immutable once built.
type Layout struct {
	slots []Segment
}

// BuildLayout repeats each segment max(1, weight*slots/100) times and
// shuffles the result with the given seed. The same inputs always yield
// the same layout.
func BuildLayout(segments []Segment, slots int, seed int64) Layout {
	if len(segments) == 0 {
		segments = []Segment{{Multiplier: 1, Weight: 100, Label: "1x"}}
	}
	if slots < 1 {
		slots = 1
	}

	ring := make([]Segment, 0, slots+len(segments))
	for _, seg := range segments {
		count := max(1, seg.Weight*slots/100)
		for range count {
			ring = append(ring, seg)
		}
	}

	rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- deterministic layout
	rng.Shuffle(len(ring), func(i, j int) {
		ring[i], ring[j] = ring[j], ring[i]
	})
	return Layout{slots: ring}
}

// Len returns the number of slices.
func (l Layout) Len() int {
	return len(l.slots)
}

// SliceAngle returns the angular width of one slice in degrees.
func (l Layout) SliceAngle() float64 {
	if len(l.slots) == 0 {
		return 360
	}
	return 360 / float64(len(l.slots))
}

// Segments returns a copy of the ring in order.
func (l Layout) Segments() []Segment {
	out := make([]Segment, len(l.slots))
	copy(out, l.slots)
	return out
}

// IndexAt returns the slice under the fixed top pointer when the wheel
// has turned rotation degrees.
func (l Layout) IndexAt(rotation float64) int {
	if len(l.slots) == 0 {
		return 0
	}
	normalized := math.Mod(360-math.Mod(rotation, 360)+360, 360)
	return int(normalized/l.SliceAngle()) % len(l.slots)
}

// SegmentAt returns the segment under the pointer.
func (l Layout) SegmentAt(rotation float64) Segment {
	if len(l.slots) == 0 {
		return Segment{Multiplier: 1, Label: "1x"}
	}
	return l.slots[l.IndexAt(rotation)]
}

// Spin is a wheel in motion. Each Step turns it by its velocity and then
// decays the velocity until it drops to the stop threshold.
type Spin struct {
	Rotation  float64
	Velocity  float64
	Decay     float64
	Threshold float64
}

// Step advances the spin by one tick and reports whether it is still
// moving. Once stopped the velocity is exactly zero.
func (s *Spin) Step() bool {
	if s.Velocity <= s.Threshold {
		s.Velocity = 0
		return false
	}
	s.Rotation += s.Velocity
	s.Velocity *= s.Decay
	if s.Velocity <= s.Threshold {
		s.Velocity = 0
		return false
	}
	return true
}

// Spinning reports whether the wheel is still moving.
func (s Spin) Spinning() bool {
	return s.Velocity > 0
}

// Resolver maps spin impulses to outcomes on a layout.
type Resolver struct {
	Layout     Layout
	Decay      float64
	Threshold  float64
	MinImpulse float64
	MaxImpulse float64
}

// NewResolver builds a resolver and its layout from configuration.
func NewResolver(cfg config.WheelConfig) *Resolver {
	segments := make([]Segment, 0, len(cfg.Segments))
	for _, s := range cfg.Segments {
		segments = append(segments, Segment{Multiplier: s.Multiplier, Weight: s.Weight, Label: s.Label})
	}
	return &Resolver{
		Layout:     BuildLayout(segments, cfg.Slots, cfg.Seed),
		Decay:      cfg.Decay,
		Threshold:  cfg.Threshold,
		MinImpulse: cfg.MinImpulse,
		MaxImpulse: cfg.MaxImpulse,
	}
}

// NewSpin starts a spin from rest with initial velocity v0.
func (r *Resolver) NewSpin(v0 float64) Spin {
	return Spin{Velocity: v0, Decay: r.Decay, Threshold: r.Threshold}
}

// RandomImpulse draws v0 uniformly from [MinImpulse, MaxImpulse).
func (r *Resolver) RandomImpulse(rng *rand.Rand) float64 {
	span := r.MaxImpulse - r.MinImpulse
	if span <= 0 {
		return r.MinImpulse
	}
	return r.MinImpulse + rng.Float64()*span
}

// Resolve runs a spin to rest tick by tick and returns the outcome and the
// final rotation.
func (r *Resolver) Resolve(v0 float64) (Segment, float64) {
	spin := r.NewSpin(v0)
	for i := 0; i < maxSpinSteps && spin.Step(); i++ {
	}
	return r.Layout.SegmentAt(spin.Rotation), spin.Rotation
}

// Steps returns how many ticks a spin with initial velocity v0 moves for.
func (r *Resolver) Steps(v0 float64) int {
	if v0 <= r.Threshold || r.Decay <= 0 || r.Decay >= 1 {
		return 0
	}
	n := int(math.Ceil(math.Log(r.Threshold/v0) / math.Log(r.Decay)))
	if n < 1 {
		n = 1
	}
	for v0*math.Pow(r.Decay, float64(n)) > r.Threshold {
		n++
	}
	for n > 1 && v0*math.Pow(r.Decay, float64(n-1)) <= r.Threshold {
		n--
	}
	return n
}

// RestingRotation returns the final rotation in closed form: the sum of
// the first Steps(v0) terms of the geometric series v0*decay^k.
func (r *Resolver) RestingRotation(v0 float64) float64 {
	n := r.Steps(v0)
	if n == 0 {
		return 0
	}
	return v0 * (1 - math.Pow(r.Decay, float64(n))) / (1 - r.Decay)
}

// RestingSegment returns the outcome computed in closed form.
func (r *Resolver) RestingSegment(v0 float64) Segment {
	return r.Layout.SegmentAt(r.RestingRotation(v0))
}
