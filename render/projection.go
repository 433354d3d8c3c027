package render

import (
	"math"

	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Projection maps map coordinates (meters, y up) onto terminal cells (y down)
// The drawable area excludes the header and status rows
type Projection struct {
	Width  int
	Height int
	Top    int
}

// NewProjection fits the map into a screen of the given size
func NewProjection(screenWidth, screenHeight int) Projection {
	return Projection{
		Width:  max(screenWidth, 1),
		Height: max(screenHeight-parameter.TopMargin-parameter.BottomMargin, 1),
		Top:    parameter.TopMargin,
	}
}

// Cell returns the cell holding p, ok is false outside the map
func (pr Projection) Cell(p vmath.Point) (x, y int, ok bool) {
	if p.X < 0 || p.X >= parameter.MapWidth || p.Y < 0 || p.Y >= parameter.MapHeight {
		return 0, 0, false
	}
	x = int(math.Floor(p.X / parameter.MapWidth * float64(pr.Width)))
	row := int(math.Floor(p.Y / parameter.MapHeight * float64(pr.Height)))
	y = pr.Top + pr.Height - 1 - row
	return min(x, pr.Width-1), max(y, pr.Top), true
}

// clampCell is Cell without the bounds check, pinned to the drawable area
func (pr Projection) clampCell(p vmath.Point) (int, int) {
	q := vmath.Pt(
		vmath.Clamp(p.X, 0, parameter.MapWidth-1e-9),
		vmath.Clamp(p.Y, 0, parameter.MapHeight-1e-9),
	)
	x, y, _ := pr.Cell(q)
	return x, y
}

// Line rasterizes the segment a-b into cells, visiting each cell once
// Bresenham over the projected endpoints
func (pr Projection) Line(a, b vmath.Point, visit func(x, y int)) {
	x0, y0 := pr.clampCell(a)
	x1, y1 := pr.clampCell(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
