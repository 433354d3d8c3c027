// Package render draws a running search on a tcell screen
package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/mars-lander/clock"
	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/search"
	"github.com/lixenwraith/mars-lander/terrain"
)

// Source is the search surface the viewer drives
type Source interface {
	Tick() search.State
	RunGeneration() search.State
	Frame() search.Frame
	Terrain() *terrain.Terrain
	Stop()
}

// Notifier receives the audible search milestones
type Notifier interface {
	PlaySolution()
	PlayFreeze()
}

type nopNotifier struct{}

func (nopNotifier) PlaySolution() {}
func (nopNotifier) PlayFreeze()   {}

// Mode selects how far the search advances per frame
type Mode int

const (
	// ModeTurn moves every candidate one turn per frame
	ModeTurn Mode = iota
	// ModeGeneration completes a whole generation per frame
	ModeGeneration
)

func (m Mode) String() string {
	if m == ModeGeneration {
		return "generation"
	}
	return "turn"
}

// Option configures a Viewer
type Option func(*Viewer)

// WithClock shares a pausable clock with the search so paused time is not charged to the budget
func WithClock(c *clock.Pausable) Option {
	return func(v *Viewer) { v.clock = c }
}

// WithNotifier sets the sound sink
func WithNotifier(n Notifier) Option {
	return func(v *Viewer) { v.notifier = n }
}

// WithFPS sets the redraw rate
func WithFPS(fps int) Option {
	return func(v *Viewer) {
		if fps > 0 {
			v.fps = fps
		}
	}
}

// WithMode sets the initial advance mode
func WithMode(m Mode) Option {
	return func(v *Viewer) { v.mode = m }
}

// WithLogger sets the structured logger
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Viewer) { v.logger = logger }
}

// Viewer owns the screen and advances the search from its frame loop
type Viewer struct {
	screen   tcell.Screen
	source   Source
	clock    *clock.Pausable
	notifier Notifier
	logger   zerolog.Logger
	fps      int
	mode     Mode

	width, height int
	proj          Projection

	frame        search.Frame
	lastSolution *search.Record
	frozen       bool
	step         bool

	// replay is the turn shown of the best record, -1 when showing the live population
	replay int
	hold   int
}

// NewViewer binds an initialized screen to a search
func NewViewer(screen tcell.Screen, source Source, opts ...Option) *Viewer {
	v := &Viewer{
		screen:   screen,
		source:   source,
		notifier: nopNotifier{},
		logger:   zerolog.Nop(),
		fps:      parameter.ViewerFPS,
		replay:   -1,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.clock == nil {
		v.clock = clock.NewPausable(clock.NewMonotonic())
	}

	v.resize()
	v.frame = source.Frame()
	return v
}

// Run drives the frame loop until the user quits or ctx is cancelled
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, parameter.ViewerEventBuffer)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			v.source.Stop()
			return ctx.Err()

		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				v.source.Stop()
				return nil
			}
			v.draw()

		case <-ticker.C:
			v.update()
			v.draw()
		}
	}
}

// Mode returns the current advance mode
func (v *Viewer) Mode() Mode {
	return v.mode
}

// Replaying reports whether the best record is being played back
func (v *Viewer) Replaying() bool {
	return v.replaying()
}

func (v *Viewer) replaying() bool {
	return v.replay >= 0
}

func (v *Viewer) resize() {
	v.width, v.height = v.screen.Size()
	v.proj = NewProjection(v.width, v.height)
}

// handleEvent applies one terminal event, returning false on quit
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		if v.clock.IsPaused() {
			v.step = true
			v.update()
		}
	case tcell.KeyEnter:
		if v.mode == ModeTurn {
			v.mode = ModeGeneration
		} else {
			v.mode = ModeTurn
		}
		v.logger.Debug().Stringer("mode", v.mode).Msg("viewer mode")
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			paused := v.clock.Toggle()
			v.logger.Debug().Bool("paused", paused).Msg("viewer pause")
		case 'r':
			v.toggleReplay()
		}
	}
	return true
}

func (v *Viewer) toggleReplay() {
	if v.replaying() && !v.frozen {
		v.replay = -1
		return
	}
	if v.frame.Best != nil {
		v.replay = 0
		v.hold = 0
	}
}

// update advances the search or the replay by one frame
func (v *Viewer) update() {
	if v.clock.IsPaused() && !v.step {
		return
	}
	v.step = false

	if v.replaying() {
		v.advanceReplay()
		if !v.frozen {
			return
		}
	}

	if !v.frozen {
		switch v.mode {
		case ModeGeneration:
			v.source.RunGeneration()
		default:
			v.source.Tick()
		}
		v.frame = v.source.Frame()
		v.notify()
	}
}

func (v *Viewer) advanceReplay() {
	best := v.frame.Best
	if best == nil {
		v.replay = -1
		return
	}
	if v.replay < len(best.Path)-1 {
		v.replay++
		return
	}
	v.hold++
	if v.hold >= parameter.ViewerReplayHold {
		v.replay = 0
		v.hold = 0
	}
}

// notify fires the sound cues once per milestone and starts the replay on freeze
func (v *Viewer) notify() {
	f := v.frame
	if f.Solution != nil && f.Solution != v.lastSolution {
		v.lastSolution = f.Solution
		v.notifier.PlaySolution()
		v.logger.Info().
			Int("generation", f.Solution.Generation).
			Float64("fitness", f.Solution.Fitness).
			Msg("new solution")
	}

	if f.State == search.StateFrozen && !v.frozen {
		v.frozen = true
		v.notifier.PlayFreeze()
		v.replay = -1
		if f.Best != nil {
			v.replay = 0
			v.hold = 0
		}
	}
}
