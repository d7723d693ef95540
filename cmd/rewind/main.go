package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rewind/audio"
	"github.com/lixenwraith/rewind/config"
	"github.com/lixenwraith/rewind/event"
	"github.com/lixenwraith/rewind/game"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/level"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/render"
	"github.com/lixenwraith/rewind/sim"
	"github.com/lixenwraith/rewind/status"
)

const (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	maxLogSize  = parameter.MaxLogSize
)

var (
	levelFlag  = flag.String("level", "levels/crate_bridge.txt", "Level file to load")
	configFlag = flag.String("config", "", "Optional JSON tuning file")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+filepath.Join(logDir, logFileName))
	muteFlag   = flag.Bool("mute", false, "Disable sound cues")
	mergeFlag  = flag.Bool("merge-groups", false, "Play non-intersecting subturns together")
)

// setupLogging routes the standard logger
// Discarded unless debug, the terminal owns stdout and stderr
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("rewind-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func loadTuning(path string) (*config.Tuning, error) {
	if path == "" {
		return &config.Tuning{}, nil
	}
	return config.LoadTuning(path)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	tuning, err := loadTuning(*configFlag)
	if err != nil {
		fatal("Failed to load tuning: %v", err)
	}
	tuning.ApplyFlags(*muteFlag, *mergeFlag)

	lv, err := level.Load(*levelFlag)
	if err != nil {
		fatal("Failed to load level: %v", err)
	}
	s, err := sim.New(lv, tuning.SimOptions())
	if err != nil {
		fatal("Failed to build level: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatal("Failed to initialize screen: %v", err)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mREWIND CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cues := audio.NewCuePlayer(tuning.GetVolume(), tuning.GetMute())
	if err := cues.Initialize(); err != nil {
		// Non-fatal, the game runs silently
		log.Printf("main: audio initialization failed: %v", err)
	}

	a := newApp(screen, s, cues, tuning.GameOptions(), game.SystemClock{})
	log.Printf("main: session %s, level %s", a.mgr.Bus().Session(), *levelFlag)
	a.run()

	cues.Cleanup()
	screen.Fini()
}

// app couples the terminal to the game manager
type app struct {
	screen   tcell.Screen
	mgr      *game.Manager
	adapter  *input.Adapter
	keys     *input.KeyTable
	renderer *render.Renderer
}

func newApp(screen tcell.Screen, s *sim.Simulation, cues *audio.CuePlayer, opts game.Options, clock game.Clock) *app {
	bus := event.NewBus()
	bus.Register(cues)
	bus.Subscribe(func(ev event.GameEvent) {
		log.Printf("main: %s timeline %d turn %d", ev.Type, ev.Timeline, ev.Turn)
	}, event.EventRewindTriggered, event.EventGoalReached, event.EventRestarted, event.EventEntityFell)

	adapter := input.NewAdapter()
	return &app{
		screen:   screen,
		mgr:      game.NewManager(s, adapter, bus, status.NewRegistry(), clock, opts),
		adapter:  adapter,
		keys:     input.DefaultKeyTable(),
		renderer: render.NewRenderer(screen),
	}
}

func (a *app) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.EventChannelSize)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	a.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			if !a.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			a.mgr.Update(now.Sub(last))
			last = now
			a.draw()
		}
	}
}

func (a *app) draw() {
	a.renderer.Draw(a.mgr.Sim(), a.mgr.Positions(), a.mgr.Status())
}

// handleEvent returns false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.dispatch(a.keys.Lookup(ev))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// dispatch applies a key binding
// Terminals report no key release, so movement keys are taps
func (a *app) dispatch(b input.Binding) bool {
	switch b.Action {
	case input.ActionMove, input.ActionPass:
		a.adapter.Tap(b.Direction)
	case input.ActionRestart:
		a.mgr.Restart()
	case input.ActionDebug:
		a.mgr.ToggleDebug()
	case input.ActionSpeedUp:
		a.mgr.AdjustSpeed(true)
	case input.ActionSpeedDown:
		a.mgr.AdjustSpeed(false)
	case input.ActionQuit:
		return false
	}
	return true
}
