package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/terrain"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Flight is a trajectory to draw over the terrain
type Flight struct {
	Label string
	Path  []vmath.Point
	// Crash is drawn as a cross when set
	Crash *vmath.Point
}

func toXYs(points []vmath.Point) plotter.XYs {
	xy := make(plotter.XYs, len(points))
	for i := range points {
		xy[i].X = points[i].X
		xy[i].Y = points[i].Y
	}
	return xy
}

// SaveTrajectoryPNG renders the terrain, landing zone and flights to filename
// The image format follows the file extension
func SaveTrajectoryPNG(filename, title string, t *terrain.Terrain, flights ...Flight) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	p.X.Min, p.X.Max = 0, parameter.MapWidth
	p.Y.Min, p.Y.Max = 0, parameter.MapHeight

	ground, err := plotter.NewLine(toXYs(t.Points))
	if err != nil {
		return fmt.Errorf("terrain line: %w", err)
	}
	ground.Color = color.RGBA{160, 82, 45, 255}
	ground.Width = vg.Points(1.5)
	p.Add(ground)
	p.Legend.Add("Terrain", ground)

	a, b := t.Segment(t.Zone.Index)
	zone, err := plotter.NewLine(toXYs([]vmath.Point{a, b}))
	if err != nil {
		return fmt.Errorf("zone line: %w", err)
	}
	zone.Color = color.RGBA{0, 160, 0, 255}
	zone.Width = vg.Points(3)
	p.Add(zone)
	p.Legend.Add("Landing zone", zone)

	for i, f := range flights {
		if len(f.Path) == 0 {
			continue
		}
		line, err := plotter.NewLine(toXYs(f.Path))
		if err != nil {
			return fmt.Errorf("flight %d: %w", i, err)
		}
		line.Color = flightColor(i)
		line.Width = vg.Points(1.2)
		p.Add(line)
		p.Legend.Add(f.Label, line)

		if f.Crash != nil {
			mark, err := plotter.NewScatter(toXYs([]vmath.Point{*f.Crash}))
			if err != nil {
				return fmt.Errorf("flight %d crash: %w", i, err)
			}
			mark.GlyphStyle.Shape = draw.CrossGlyph{}
			mark.GlyphStyle.Color = color.RGBA{220, 0, 0, 255}
			mark.GlyphStyle.Radius = vg.Points(4)
			p.Add(mark)
		}
	}

	start, err := plotter.NewScatter(toXYs(firstPoints(flights)))
	if err == nil {
		start.GlyphStyle.Shape = draw.CircleGlyph{}
		start.GlyphStyle.Color = color.RGBA{0, 80, 255, 255}
		start.GlyphStyle.Radius = vg.Points(3)
		p.Add(start)
	}

	return p.Save(10*vg.Inch, 10*vg.Inch*parameter.MapHeight/parameter.MapWidth, filename)
}

var palette = []color.RGBA{
	{0, 80, 255, 255},
	{255, 140, 0, 255},
	{128, 0, 200, 255},
	{0, 170, 170, 255},
}

func flightColor(i int) color.Color {
	return palette[i%len(palette)]
}

func firstPoints(flights []Flight) []vmath.Point {
	var pts []vmath.Point
	for _, f := range flights {
		if len(f.Path) > 0 {
			pts = append(pts, f.Path[0])
		}
	}
	return pts
}
