package propgrid

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelPadding is added to the widest label by FitColumns.
const labelPadding = 8

// LabelWidth returns the pixel width of item's label as drawn in the grid,
// indentation included.
func (g *PropertyGrid) LabelWidth(item *Item) int {
	face := g.opts.LabelFace
	if face == nil {
		face = basicfont.Face7x13
	}
	depth := 0
	for p := item.parent; p != nil; p = p.parent {
		depth++
	}
	return font.MeasureString(face, item.label).Ceil() + depth*g.opts.Indent
}

// FitColumns moves the first splitter so that every label fits, and returns
// the new position.
func (g *PropertyGrid) FitColumns() (int, error) {
	width := 0
	for _, it := range g.items {
		if w := g.LabelWidth(it); w > width {
			width = w
		}
	}
	width += labelPadding
	if err := g.handler.SetSplitterPosition(0, width); err != nil {
		return 0, err
	}
	return width, nil
}
