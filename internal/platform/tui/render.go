package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-catch/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPurple:        "93",
}

// Palette holds one lipgloss style per screen color. SSH sessions build
// their own palette from the session renderer so colors match the
// client's terminal, not the server's.
type Palette struct {
	styles map[core.Color]lipgloss.Style
}

// NewPalette creates a palette for r, or for the default renderer if r is nil.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[core.Color]lipgloss.Style, len(colorCodes)+1)
	styles[core.ColorDefault] = r.NewStyle()
	for c, code := range colorCodes {
		styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return Palette{styles: styles}
}

// Style returns the style for c, falling back to the default style.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if style, ok := p.styles[c]; ok {
		return style
	}
	return p.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with the default palette.
func RenderScreen(s *core.Screen) string {
	return NewPalette(nil).RenderScreen(s)
}
