package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mars-lander/lander"
)

// RGB color definitions for the map and candidate paths
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbTerrain    = tcell.NewRGBColor(180, 120, 80)  // Rust
	RgbZone       = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbHelpText   = tcell.NewRGBColor(180, 180, 180) // Brighter gray

	RgbPathAlive    = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbPathCrashed  = tcell.NewRGBColor(180, 50, 50)   // Dark Red
	RgbPathEscaped  = tcell.NewRGBColor(101, 67, 33)   // Dark brown
	RgbPathExpired  = tcell.NewRGBColor(0, 139, 139)   // Dark Cyan
	RgbPathElite    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPathBest     = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbPathSolution = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbShip         = tcell.NewRGBColor(255, 255, 255) // White
	RgbCrashMark    = tcell.NewRGBColor(255, 80, 80)   // Normal Red

	// Status bar backgrounds by loop state
	RgbStateRunningBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatePausedBg  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStateFrozenBg  = tcell.NewRGBColor(128, 0, 128)   // Dark purple
)

// PathColor picks the trail color for a trajectory status
// Best and solution outrank elite, which outranks the terminal outcome
func PathColor(s lander.Status) tcell.Color {
	switch {
	case s.Has(lander.Solution):
		return RgbPathSolution
	case s.Has(lander.Best):
		return RgbPathBest
	case s.Has(lander.Elite):
		return RgbPathElite
	case s.Has(lander.Alive):
		return RgbPathAlive
	case s.Has(lander.OutOfBounds):
		return RgbPathEscaped
	case s.Has(lander.Expired):
		return RgbPathExpired
	default:
		return RgbPathCrashed
	}
}

// pathRank orders drawing so that higher ranked paths paint over lower ones
func pathRank(s lander.Status) int {
	switch {
	case s.Has(lander.Solution):
		return 3
	case s.Has(lander.Best):
		return 2
	case s.Has(lander.Elite):
		return 1
	default:
		return 0
	}
}
