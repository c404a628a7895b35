package render

import (
	"math"

	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// Camera translates between field units and screen cells. One cell covers
// CellW×CellH field units; the field's top-left cell sits at (OriginX, OriginY).
type Camera struct {
	OriginX int
	OriginY int
	Cols    int // field width in cells
	Rows    int // field height in cells
	CellW   float64
	CellH   float64
}

// NewCamera centres a field of layout l horizontally on a screen of the
// given size, leaving top rows free for the HUD.
func NewCamera(l present.Layout, screenW, screenH, top int) Camera {
	c := Camera{Cols: l.Cols(), Rows: l.Rows(), CellW: l.CellW, CellH: l.CellH}
	c.OriginX = max((screenW-c.Cols)/2, 1)
	c.OriginY = top
	if free := screenH - top - c.Rows; free > 1 {
		c.OriginY += free / 2
	}
	return c
}

// FieldToScreen converts a field position to the cell containing it.
// visible is false when the cell lies outside the field.
func (c Camera) FieldToScreen(p geom.Vec2) (sx, sy int, visible bool) {
	cx := int(math.Floor(p.X / c.CellW))
	cy := int(math.Floor(p.Y / c.CellH))
	visible = cx >= 0 && cx < c.Cols && cy >= 0 && cy < c.Rows
	return cx + c.OriginX, cy + c.OriginY, visible
}

// ScreenToField converts screen (sx, sy) to the centre of that cell in
// field units. Positions outside the field are still converted.
func (c Camera) ScreenToField(sx, sy int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(sx-c.OriginX) + 0.5) * c.CellW,
		Y: (float64(sy-c.OriginY) + 0.5) * c.CellH,
	}
}

// Bounds returns the field's screen rectangle, border excluded.
func (c Camera) Bounds() (x0, y0, x1, y1 int) {
	return c.OriginX, c.OriginY, c.OriginX + c.Cols - 1, c.OriginY + c.Rows - 1
}
