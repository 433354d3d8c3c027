package parameter

// Viewer timing
const (
	// ViewerFPS is the default redraw rate of the terminal viewer
	ViewerFPS = 30

	// ViewerEventBuffer is the capacity of the terminal event channel
	ViewerEventBuffer = 100

	// ViewerReplayHold is how many frames the finished replay stays on screen before restarting
	ViewerReplayHold = 45
)

// Layout & Margins
const (
	// BottomMargin for status bar
	BottomMargin = 1

	// TopMargin for generation header
	TopMargin = 1
)

// Logging
const (
	// LogDir is where debug logs are written
	LogDir = "logs"

	// LogFileName is the debug log file inside LogDir
	LogFileName = "lander.log"

	// MaxLogSize triggers rotation of the debug log (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
