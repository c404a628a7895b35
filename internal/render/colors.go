package render

import "github.com/gdamore/tcell/v2"

// Palette holds the styles for each part of the screen. Emoji carry their
// own colours, so only the frame and text are tinted.
type Palette struct {
	Field   tcell.Style
	Border  tcell.Style
	Text    tcell.Style
	Dim     tcell.Style
	Heart   tcell.Style
	Flash   tcell.Style
	Tornado tcell.Style
	Win     tcell.Style
	Lose    tcell.Style
}

// DefaultPalette is a snowy night.
var DefaultPalette = Palette{
	Field:   tcell.StyleDefault.Background(tcell.ColorBlack),
	Border:  tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	Text:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	Dim:     tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	Heart:   tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack),
	Flash:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true),
	Tornado: tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue).Background(tcell.ColorBlack),
	Win:     tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorBlack).Bold(true),
	Lose:    tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Background(tcell.ColorBlack).Bold(true),
}
