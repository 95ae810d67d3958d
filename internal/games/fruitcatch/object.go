package fruitcatch

import (
	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/weighted"
)

// Kind identifies a falling object. Declaration order is the order the
// weighted selector walks.
type Kind int

const (
	KindApple Kind = iota
	KindOrange
	KindGrapes
	KindStrawberry
	KindBomb
	kindCount
)

// Kinds lists every kind in declaration order.
var Kinds = [kindCount]Kind{KindApple, KindOrange, KindGrapes, KindStrawberry, KindBomb}

var kindNames = [kindCount]string{"apple", "orange", "grapes", "strawberry", "bomb"}

// String returns the lower-case name used in configuration files.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsBomb reports whether catching this kind costs a life.
func (k Kind) IsBomb() bool {
	return k == KindBomb
}

// Glyph returns the terminal rune for this kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindApple:
		return 'a'
	case KindOrange:
		return 'o'
	case KindGrapes:
		return '%'
	case KindStrawberry:
		return '*'
	case KindBomb:
		return '@'
	default:
		return '?'
	}
}

// Color returns the terminal color for this kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindApple:
		return core.ColorRed
	case KindOrange:
		return core.ColorOrange
	case KindGrapes:
		return core.ColorPurple
	case KindStrawberry:
		return core.ColorMagenta
	case KindBomb:
		return core.ColorWhite
	default:
		return core.ColorDefault
	}
}

// FruitInfo is the static score value and spawn weight of a kind.
type FruitInfo struct {
	Points int
	Weight int
}

// FruitTable maps every kind to its info.
type FruitTable [kindCount]FruitInfo

// DefaultFruitTable returns the built-in table.
func DefaultFruitTable() FruitTable {
	return FruitTableFromConfig(config.DefaultFruitCatchConfig().Fruits)
}

// FruitTableFromConfig builds a table from configuration, falling back to
// defaults for kinds the map does not mention. Bombs never score.
func FruitTableFromConfig(specs map[string]config.FruitSpec) FruitTable {
	var table FruitTable
	defaults := config.DefaultFruitCatchConfig().Fruits
	for _, k := range Kinds {
		spec, ok := specs[k.String()]
		if !ok {
			spec = defaults[k.String()]
		}
		info := FruitInfo{Points: spec.Points, Weight: spec.Weight}
		if info.Weight < 0 {
			info.Weight = 0
		}
		if info.Points < 0 || k.IsBomb() {
			info.Points = 0
		}
		table[k] = info
	}
	return table
}

// Points returns the score value of a kind.
func (t FruitTable) Points(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return t[k].Points
}

// Entries returns selector entries in declaration order with the bomb
// weight scaled by bombMultiplier and truncated.
func (t FruitTable) Entries(bombMultiplier float64) []weighted.Entry[Kind] {
	entries := make([]weighted.Entry[Kind], 0, kindCount)
	for _, k := range Kinds {
		w := t[k].Weight
		if k.IsBomb() {
			w = int(float64(w) * bombMultiplier)
		}
		entries = append(entries, weighted.Entry[Kind]{Value: k, Weight: w})
	}
	return entries
}

// FallingObject is a fruit or bomb in flight. X and Y are the top-left
// corner. Speed is in cells per tick before the round speed multiplier.
type FallingObject struct {
	ID    uint64
	Kind  Kind
	X, Y  float64
	Speed float64
	Size  float64
}

// Bounds returns the object's bounding box.
func (o FallingObject) Bounds() core.RectF {
	return core.RectF{X: o.X, Y: o.Y, W: o.Size, H: o.Size}
}

// Basket is the player-controlled catcher.
type Basket struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the basket's bounding box.
func (b Basket) Bounds() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// ClampX keeps the basket inside [0, screenWidth-Width].
func (b Basket) ClampX(screenWidth float64) Basket {
	maxX := screenWidth - b.Width
	if maxX < 0 {
		maxX = 0
	}
	b.X = core.ClampF(b.X, 0, maxX)
	return b
}
