package fruitcatch

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fruit-catch/internal/core"
)

// Visual characters for rendering
const (
	BasketChar = '='
	BasketRim  = '\\'
	LifeChar   = '♥'
	PointerDn  = '▼'
	GroundChar = '─'
)

// wheelVisible is how many slices the wheel strip shows.
const wheelVisible = 7

// Render draws the frame into dst. The screen is cleared first.
func (f Frame) Render(dst *core.Screen) {
	dst.Clear()

	if f.ScreenTooSmall {
		msg := fmt.Sprintf("Terminal too small (need %dx%d)", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorRed)
		return
	}

	f.renderField(dst)
	f.renderHUD(dst)

	switch f.Round.Phase {
	case PhaseWheel:
		f.renderWheel(dst)
	case PhaseResult:
		f.renderResult(dst)
	case PhaseGameOver:
		f.renderGameOver(dst)
	default:
		if f.Paused {
			f.renderBanner(dst, []string{"PAUSED", "P to resume"}, core.ColorYellow)
		}
	}
}

func (f Frame) renderField(dst *core.Screen) {
	for _, o := range f.Objects {
		r := o.Bounds().Cells()
		dst.DrawRect(r, o.Kind.Glyph(), o.Kind.Color())
	}

	b := f.Basket.Bounds().Cells()
	dst.DrawRect(b, BasketChar, core.ColorYellow)
	if b.W > 2 {
		dst.SetColor(b.X, b.Y, BasketRim, core.ColorYellow)
		dst.SetColor(b.Right()-1, b.Y, '/', core.ColorYellow)
	}

	if ground := b.Bottom(); ground < dst.Height() {
		dst.DrawHLine(0, ground, dst.Width(), GroundChar, core.ColorGray)
	}
}

func (f Frame) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score %d  Round %d  %d/%d  x%.1f ",
		f.Round.Score, f.Round.Round, f.Round.CatchCount, f.Quota, f.Round.Multiplier)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	lives := strings.Repeat(string(LifeChar), f.Round.Lives)
	dst.DrawTextColor(dst.Width()-len([]rune(lives))-1, 0, lives, core.ColorBrightRed)
}

func (f Frame) renderWheel(dst *core.Screen) {
	layout := f.Wheel.Layout
	if layout.Len() == 0 {
		return
	}

	const cellW = 6
	stripW := wheelVisible * cellW
	x0 := (dst.Width() - stripW) / 2
	y0 := dst.Height()/2 - 2

	box := core.NewRect(x0-2, y0-2, stripW+4, 7)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightYellow)
	dst.DrawTextCentered(y0-1, "REWARD WHEEL", core.ColorBrightYellow)

	center := layout.IndexAt(f.Wheel.Rotation)
	segments := layout.Segments()
	for i := range wheelVisible {
		idx := (center - wheelVisible/2 + i + len(segments)*wheelVisible) % len(segments)
		seg := segments[idx]
		c := core.ColorWhite
		if i == wheelVisible/2 {
			c = core.ColorBrightGreen
		}
		label := fmt.Sprintf("%-*s", cellW, " "+seg.Label)
		dst.DrawTextColor(x0+i*cellW, y0+1, label, c)
	}
	dst.SetColor(x0+(wheelVisible/2)*cellW+2, y0, PointerDn, core.ColorBrightRed)

	hint := "Enter to spin"
	if f.Wheel.Spinning {
		hint = "Spinning..."
	}
	dst.DrawTextCentered(y0+3, hint, core.ColorGray)
}

func (f Frame) renderResult(dst *core.Screen) {
	lines := []string{
		fmt.Sprintf("ROUND %d COMPLETE", f.Round.Round),
		fmt.Sprintf("Wheel: %s  Bonus: %+d", f.Wheel.Result.Label, f.Wheel.Bonus),
		fmt.Sprintf("Round score %d  Total %d", f.Round.RoundScore, f.Round.Score),
		"Enter: next round  B: bank score",
	}
	f.renderBanner(dst, lines, core.ColorBrightGreen)
}

func (f Frame) renderGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score %d  Round %d", f.Round.Score, f.Round.Round),
		"R: play again  Q: quit",
	}
	f.renderBanner(dst, lines, core.ColorBrightRed)
}

func (f Frame) renderBanner(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	y0 := dst.Height()/2 - len(lines)/2
	box := core.NewRect((dst.Width()-width)/2-2, y0-1, width+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawTextCentered(y0+i, l, c)
	}
}
