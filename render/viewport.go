package render

import (
	"math"

	"github.com/lixenwraith/raytracer/vmath"
)

// Viewport maps the world X/Y plane onto a grid of terminal cells
// Row 0 is the top of the screen, world Y grows upward
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Cols, Rows int
}

// FitViewport returns a viewport enclosing every point plus the ground (Y=0)
// with a small margin; degenerate spans are widened to 1
func FitViewport(points []vmath.Tuple, cols, rows int) Viewport {
	v := Viewport{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: 0, MaxY: 0,
		Cols: cols, Rows: rows,
	}
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		v.MinX = math.Min(v.MinX, p.X)
		v.MaxX = math.Max(v.MaxX, p.X)
		v.MinY = math.Min(v.MinY, p.Y)
		v.MaxY = math.Max(v.MaxY, p.Y)
	}
	if math.IsInf(v.MinX, 1) {
		v.MinX, v.MaxX = 0, 1
	}
	if v.MaxX-v.MinX < 1 {
		v.MaxX = v.MinX + 1
	}
	if v.MaxY-v.MinY < 1 {
		v.MaxY = v.MinY + 1
	}

	// 5% headroom so the apex is not glued to the top edge
	v.MaxY += (v.MaxY - v.MinY) * 0.05
	return v
}

// Cell converts a world position to a cell; ok is false outside the grid
func (v Viewport) Cell(x, y float64) (col, row int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	fx := (x - v.MinX) / (v.MaxX - v.MinX)
	fy := (y - v.MinY) / (v.MaxY - v.MinY)
	col = int(math.Round(fx * float64(v.Cols-1)))
	row = v.Rows - 1 - int(math.Round(fy*float64(v.Rows-1)))
	ok = col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
	return col, row, ok
}

// GroundRow is the row holding Y=0
func (v Viewport) GroundRow() int {
	_, row, _ := v.Cell(v.MinX, 0)
	return row
}
