// Command lander searches for a control sequence that lands the lander safely
//
// Usage: lander [flags] <level> [time_ms]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/mars-lander/audio"
	"github.com/lixenwraith/mars-lander/clock"
	"github.com/lixenwraith/mars-lander/config"
	"github.com/lixenwraith/mars-lander/export"
	"github.com/lixenwraith/mars-lander/genetic/persistence"
	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/lander"
	"github.com/lixenwraith/mars-lander/level"
	"github.com/lixenwraith/mars-lander/render"
	"github.com/lixenwraith/mars-lander/search"
)

// activeScreen is restored by the panic handler
var activeScreen tcell.Screen

func main() {
	// Panic Recovery: Ensure terminal is reset even if the search crashes
	defer func() {
		if r := recover(); r != nil {
			if activeScreen != nil {
				activeScreen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLANDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("lander", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	debugLog := fs.Bool("debug", false, "write log at --log-level to "+filepath.Join(logDir, logFileName))
	headless := fs.Bool("headless", false, "run without the terminal viewer")
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lander [flags] <level> [time_ms]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return 1
	}

	logFile := setupLogging(*debugLog)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(*configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger := newLogger(logFile, *headless, cfg.Level())

	lvl, err := level.Load(fs.Arg(0))
	if err != nil {
		logger.Error().Err(err).Str("path", fs.Arg(0)).Msg("failed to load level")
		fmt.Fprintf(stderr, "Failed to load level: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	budgetClock := clock.NewPausable(clock.NewMonotonic())
	opts := []search.Option{
		search.WithLogger(logger),
		search.WithClock(budgetClock),
	}
	if *headless {
		// One "gen | avg | max" line per generation
		opts = append(opts, search.WithReporter(func(r tracking.Report) {
			fmt.Fprintf(stdout, "%d | %.2f | %.2f\n", r.Generation, r.Average, r.Best)
		}))
	}

	s, err := search.New(lvl, *cfg, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start search")
		fmt.Fprintf(stderr, "Failed to start search: %v\n", err)
		return 1
	}
	var res search.Result
	if *headless {
		res, err = s.Run(ctx)
	} else {
		res, err = runViewer(ctx, s, budgetClock, cfg, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("search failed")
		fmt.Fprintf(stderr, "Search failed: %v\n", err)
	}

	printSummary(stdout, lvl.Name, res)

	if werr := writeOutputs(cfg.Output, lvl, s, res); werr != nil {
		logger.Error().Err(werr).Msg("failed to write outputs")
		fmt.Fprintf(stderr, "Failed to write outputs: %v\n", werr)
		return 1
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return 1
	}
	return 0
}

// loadConfig applies the optional positional time budget over the loaded config
func loadConfig(path string, fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(path, fs)
	if err != nil {
		return nil, err
	}

	if fs.NArg() == 2 {
		ms, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return nil, fmt.Errorf("%w: time_ms %q is not an integer", config.ErrInvalid, fs.Arg(1))
		}
		cfg.Search.Budget = time.Duration(ms) * time.Millisecond
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runViewer drives the search from the terminal viewer until the user quits
func runViewer(ctx context.Context, s *search.Search, budgetClock *clock.Pausable, cfg *config.Config, logger zerolog.Logger) (search.Result, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return search.Result{}, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return search.Result{}, fmt.Errorf("init screen: %w", err)
	}
	activeScreen = screen
	defer func() {
		screen.Fini()
		activeScreen = nil
	}()

	viewerOpts := []render.Option{
		render.WithClock(budgetClock),
		render.WithFPS(cfg.Viewer.FPS),
		render.WithLogger(logger),
	}
	if cfg.Viewer.Audio {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer sounds.Cleanup()
			viewerOpts = append(viewerOpts, render.WithNotifier(sounds))
		}
	}

	viewer := render.NewViewer(screen, s, viewerOpts...)
	if err := viewer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return s.Result(), err
	}
	return s.Result(), s.Err()
}

func printSummary(w io.Writer, levelName string, res search.Result) {
	fmt.Fprintf(w, "level %s: %d generations in %s (seed %d)\n",
		levelName, res.Generations, res.Elapsed.Truncate(time.Millisecond), res.Seed)

	if res.Solution == nil {
		best := 0.0
		if res.Best != nil {
			best = res.Best.Fitness
		}
		fmt.Fprintf(w, "no solution found, best fitness %.2f\n", best)
		return
	}

	sol := res.Solution
	fuel := 0.0
	if n := len(sol.States); n > 0 {
		fuel = sol.States[n-1].Fuel
	}
	fmt.Fprintf(w, "solution at generation %d: fitness %.2f, %d turns, fuel left %.0f\n",
		sol.Generation, sol.Fitness, sol.Turns(), fuel)
}

// writeOutputs saves the configured artifacts, skipping empty paths
func writeOutputs(out config.OutputConfig, lvl *level.Level, s *search.Search, res search.Result) error {
	var errs []error

	record := res.Solution
	if record == nil {
		record = res.Best
	}

	if out.Replay != "" && record != nil {
		dir, file := filepath.Split(out.Replay)
		name := strings.TrimSuffix(file, filepath.Ext(file))
		dto := record.Replay(lvl.Name, res.Seed, lvl.Initial)
		if err := persistence.NewManager(filepath.Clean(dir)).Save(name, dto); err != nil {
			errs = append(errs, fmt.Errorf("replay: %w", err))
		}
	}

	if out.History != "" {
		if err := export.WriteHistory(out.History, lvl.Name, res.History); err != nil {
			errs = append(errs, fmt.Errorf("history: %w", err))
		}
	}

	if out.Plot != "" && record != nil {
		flight := export.Flight{Label: "best", Path: record.Path}
		if record.IsSolution() {
			flight.Label = "solution"
		} else if record.Status.Has(lander.Crashed) {
			crash := record.Crash
			flight.Crash = &crash
		}
		title := fmt.Sprintf("%s gen %d fitness %.1f", lvl.Name, record.Generation, record.Fitness)
		if err := export.SaveTrajectoryPNG(out.Plot, title, s.Terrain(), flight); err != nil {
			errs = append(errs, fmt.Errorf("plot: %w", err))
		}
	}

	return errors.Join(errs...)
}
