package render

import (
	"fmt"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mars-lander/lander"
	"github.com/lixenwraith/mars-lander/search"
	"github.com/lixenwraith/mars-lander/terrain"
	"github.com/lixenwraith/mars-lander/vmath"
)

const (
	glyphTerrain = '█'
	glyphZone    = '▀'
	glyphPath    = '·'
	glyphCrash   = 'x'
	glyphLanded  = '*'
)

// shipGlyph approximates the lander tilt, positive angles lean left
func shipGlyph(angle float64) rune {
	switch {
	case angle > 60:
		return '<'
	case angle > 15:
		return '\\'
	case angle < -60:
		return '>'
	case angle < -15:
		return '/'
	default:
		return '^'
	}
}

func (v *Viewer) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.put(x, y, r, style)
		x++
	}
}

// fill paints a whole row with style before text is drawn over it
func (v *Viewer) fill(y int, style tcell.Style) {
	for x := 0; x < v.width; x++ {
		v.put(x, y, ' ', style)
	}
}

func (v *Viewer) drawTerrain(t *terrain.Terrain) {
	ground := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbTerrain)
	zone := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbZone)

	for i := 0; i < t.Segments(); i++ {
		a, b := t.Segment(i)
		style, glyph := ground, glyphTerrain
		if i == t.Zone.Index {
			style, glyph = zone, glyphZone
		}
		v.proj.Line(a, b, func(x, y int) {
			v.put(x, y, glyph, style)
		})
	}
}

func (v *Viewer) drawPath(path []vmath.Point, style tcell.Style) {
	for i := 1; i < len(path); i++ {
		v.proj.Line(path[i-1], path[i], func(x, y int) {
			v.put(x, y, glyphPath, style)
		})
	}
}

// drawCandidates paints every path, ranked so elites and the best stay visible
func (v *Viewer) drawCandidates(views []search.CandidateView) {
	order := make([]int, len(views))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return pathRank(views[a].Status) - pathRank(views[b].Status)
	})

	for _, i := range order {
		cv := views[i]
		style := tcell.StyleDefault.Background(RgbBackground).Foreground(PathColor(cv.Status))
		v.drawPath(cv.Path, style)
	}

	ship := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbShip)
	crash := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbCrashMark)
	for _, i := range order {
		cv := views[i]
		x, y, ok := v.proj.Cell(cv.Pos)
		if !ok {
			continue
		}
		switch {
		case cv.Status.Has(lander.Solution):
			v.put(x, y, glyphLanded, ship.Foreground(RgbPathSolution))
		case cv.Status.Has(lander.Crashed):
			v.put(x, y, glyphCrash, crash)
		case cv.Status.Has(lander.Alive):
			v.put(x, y, shipGlyph(cv.Angle), ship)
		}
	}
}

// drawReplay animates the best record up to turn n
func (v *Viewer) drawReplay(r *search.Record, n int) {
	if r == nil || len(r.Path) == 0 {
		return
	}
	n = min(n, len(r.Path)-1)
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(PathColor(r.Status))
	v.drawPath(r.Path[:n+1], style)

	ship := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbShip)
	if x, y, ok := v.proj.Cell(r.Path[n]); ok {
		glyph := glyphLanded
		if n < len(r.States) {
			glyph = shipGlyph(r.States[n].Angle)
		}
		if n == len(r.Path)-1 && !r.IsSolution() {
			glyph = glyphCrash
			ship = ship.Foreground(RgbCrashMark)
		}
		v.put(x, y, glyph, ship)
	}
}

// drawHeader renders the generation line on the top row
func (v *Viewer) drawHeader(f search.Frame) {
	paused := v.clock.IsPaused()
	bg := RgbStateRunningBg
	switch {
	case f.State == search.StateFrozen:
		bg = RgbStateFrozenBg
	case paused:
		bg = RgbStatePausedBg
	}
	style := tcell.StyleDefault.Background(bg).Foreground(RgbStatusText)
	v.fill(0, style)
	v.text(0, 0, headerLine(f, paused), style)
}

func headerLine(f search.Frame, paused bool) string {
	state := f.State.String()
	if paused {
		state = "paused"
	}

	solution := "none"
	if f.Solution != nil {
		solution = fmt.Sprintf("gen %d fuel %.0f", f.Solution.Generation, solutionFuel(f.Solution))
	}

	best := 0.0
	if f.Best != nil {
		best = f.Best.Fitness
	}

	return fmt.Sprintf(" gen %d | turn %d | %s | max %.2f avg %.2f | best %.2f | solution %s | %s / %s",
		f.Generation, f.Turn, state,
		f.Stats.BestScore, f.Stats.AverageScore, best,
		solution,
		f.Elapsed.Truncate(time.Millisecond), f.Budget,
	)
}

func solutionFuel(r *search.Record) float64 {
	if len(r.States) == 0 {
		return 0
	}
	return r.States[len(r.States)-1].Fuel
}

// drawFooter renders the key help on the bottom row
func (v *Viewer) drawFooter() {
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHelpText)
	y := v.height - 1
	v.fill(y, style)
	v.text(0, y, fmt.Sprintf(" [%s] space pause  → step  enter mode  r replay  q quit", v.mode), style)
}

// draw repaints the whole screen from the current frame
func (v *Viewer) draw() {
	bg := tcell.StyleDefault.Background(RgbBackground)
	v.screen.SetStyle(bg)
	v.screen.Clear()

	v.drawTerrain(v.source.Terrain())
	if v.replaying() {
		v.drawReplay(v.frame.Best, v.replay)
	} else {
		v.drawCandidates(v.frame.Candidates)
	}
	v.drawHeader(v.frame)
	v.drawFooter()

	v.screen.Show()
}
