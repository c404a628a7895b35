package render

import (
	"fmt"
	"strings"

	"gift-tornado/assets"
	"gift-tornado/internal/present"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// flashFrames is how long a score stays highlighted after a pickup.
const flashFrames = 30

// drawHUD renders hearts, both scores and the countdown above the field.
func (r *Screen) drawHUD() {
	x0, _, x1, _ := r.cam.Bounds()
	x0--
	x1++

	col := x0
	for i := 0; i < r.hearts; i++ {
		if i < r.Health() {
			col = r.drawText(col, 0, assets.GlyphHeart, r.pal.Heart)
		} else {
			col = r.drawText(col, 0, assets.GlyphNoHeart, r.pal.Dim)
		}
	}

	r.drawScore(present.SidePlayer, col+2, assets.GlyphPlayer)

	clock := r.Clock()
	r.drawText(x0+(x1-x0+1-runewidth.StringWidth(clock))/2, 0, clock, r.pal.Text)

	elf := fmt.Sprintf("%s %d", assets.GlyphElf, r.Score(present.SideElf))
	r.drawScore(present.SideElf, x1+1-runewidth.StringWidth(elf), assets.GlyphElf)

	r.drawHLine(1, x0, x1, r.pal.Border)
}

// drawScore draws one side's counter, highlighted and shaking while its
// flash timer runs.
func (r *Screen) drawScore(side present.Side, x int, glyph string) {
	if n := r.Flashes(side); n != r.seen[side] {
		r.seen[side] = n
		r.flash[side] = flashFrames
	}
	style := r.pal.Text
	if r.flash[side] > 0 {
		r.flash[side]--
		style = r.pal.Flash
		if r.frame%4 < 2 {
			x++
		}
	}
	r.drawText(x, 0, fmt.Sprintf("%s %d", glyph, r.Score(side)), style)
}

// Flashing reports whether side's score is currently highlighted.
func (r *Screen) Flashing(side present.Side) bool { return r.flash[side] > 0 }

var outcomeText = map[present.Outcome]string{
	present.OutcomeWin:   "🎉 You beat the elf! 🎉",
	present.OutcomeLose:  "The elf collected more gifts.",
	present.OutcomeEaten: "🐻 The bears got you! 🐻",
}

// drawOutcome draws the end-of-round panel over the field.
func (r *Screen) drawOutcome(o present.Outcome) {
	style := r.pal.Lose
	if o == present.OutcomeWin {
		style = r.pal.Win
	}
	lines := []string{
		outcomeText[o],
		fmt.Sprintf("%s %d  :  %d %s",
			assets.GlyphPlayer, r.Score(present.SidePlayer),
			r.Score(present.SideElf), assets.GlyphElf),
		"",
		r.menuHint(),
	}
	r.drawPanel(lines, style)
}

func (r *Screen) menuHint() string {
	parts := make([]string, 0, len(r.Menu)+1)
	for i, name := range r.Menu {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, name))
	}
	parts = append(parts, "[q] quit")
	return strings.Join(parts, "  ")
}

// DrawMenu paints the difficulty picker shown before the first round.
func (r *Screen) DrawMenu(selected int) {
	r.screen.Clear()
	r.drawBorder()
	r.drawTornado()
	lines := []string{"🎁 Gift Tornado 🎁", "Catch gifts, dodge bears, beat the elf.", ""}
	for i, name := range r.Menu {
		marker := "  "
		if i == selected {
			marker = "▶ "
		}
		lines = append(lines, fmt.Sprintf("%s%d. %s", marker, i+1, name))
	}
	lines = append(lines, "", "↑/↓ choose · enter start · q quit")
	r.drawPanel(lines, r.pal.Text)
	r.screen.Show()
}

// drawPanel centres lines over the field on a cleared background.
func (r *Screen) drawPanel(lines []string, first tcell.Style) {
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	x0, y0, x1, y1 := r.cam.Bounds()
	top := y0 + (y1-y0+1-len(lines))/2
	left := x0 + (x1-x0+1-width-4)/2
	for y := top - 1; y <= top+len(lines); y++ {
		for x := left; x < left+width+4; x++ {
			r.screen.SetContent(x, y, ' ', nil, r.pal.Text)
		}
	}
	for i, l := range lines {
		style := r.pal.Text
		if i == 0 {
			style = first
		}
		x := left + 2 + (width-runewidth.StringWidth(l))/2
		r.drawText(x, top+i, l, style)
	}
}

func (r *Screen) drawHLine(y, x0, x1 int, style tcell.Style) {
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text starting at column x and returns the column after it.
func (r *Screen) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
