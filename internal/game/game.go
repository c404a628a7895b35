// Package game runs rounds on a terminal: it owns the tcell screen, feeds
// input to the session and advances it once per frame.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gift-tornado/internal/config"
	"gift-tornado/internal/present"
	"gift-tornado/internal/render"
	"gift-tornado/internal/replay"
	"gift-tornado/internal/runlog"
	"gift-tornado/internal/session"

	"github.com/gdamore/tcell/v2"
)

const (
	frame = time.Second / 60
	// maxStep caps one Advance after a stall so objects do not jump
	// through the actors.
	maxStep = 100 * time.Millisecond
)

// Options configures a Game. The zero value plays the built-in presets
// silently with a fresh seed per round.
type Options struct {
	Config     config.Config
	Difficulty string // start at once with this preset instead of the menu
	Seed       int64
	Speaker    render.Speaker
	RunLog     *runlog.Log // finished rounds are appended when set
	Record     string      // the last round is saved here as a replay when set
	Remote     string      // client address, for logs
	Log        *slog.Logger
}

// Game is the top-level orchestrator for one terminal.
type Game struct {
	screen tcell.Screen
	view   *render.Screen
	sess   *session.Session
	rec    *replay.Recorder
	menu   menu
	opts   Options
	log    *slog.Logger
}

// New wires a game onto an initialised screen.
func New(screen tcell.Screen, opts Options) *Game {
	if opts.Config.Presets == nil {
		opts.Config = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Remote != "" {
		log = log.With("remote", opts.Remote)
	}

	screen.EnableMouse()
	view := render.NewScreen(screen, opts.Speaker)
	names := opts.Config.Names()
	view.Menu = names

	sess := session.New(view, opts.Config, log)
	sess.Seed = opts.Seed
	g := &Game{
		screen: screen,
		view:   view,
		sess:   sess,
		rec:    replay.NewRecorder(sess),
		menu:   newMenu(names, config.Normal),
		opts:   opts,
		log:    log,
	}
	sess.OnFinish = g.finish
	return g
}

// Session exposes the running session for inspection.
func (g *Game) Session() *session.Session { return g.sess }

// Run is the main loop. It returns when the player quits, the screen is
// closed or ctx is cancelled. A running round is stopped as aborted.
// The screen is finalised before Run returns, including on panic.
func (g *Game) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			g.screen.Fini()
			panic(r)
		}
		g.screen.Fini()
	}()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if g.opts.Difficulty != "" {
		g.menu.selectName(g.opts.Difficulty)
		g.start(g.opts.Difficulty)
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	g.draw()

	for {
		select {
		case <-ctx.Done():
			g.rec.Stop(session.ReasonAborted)
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				g.rec.Stop(session.ReasonAborted)
				return nil
			}
			if g.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxStep)
			last = now
			g.rec.Advance(dt)
		}
		g.draw()
	}
}

// handle applies one event and reports whether the game should exit.
func (g *Game) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.view.Resize()
	case *tcell.EventMouse:
		if g.sess.Running() {
			x, y := ev.Position()
			g.rec.SetPointer(g.view.PointerY(x, y))
		}
	case *tcell.EventKey:
		action, idx := keyToAction(ev)
		if g.sess.Running() {
			return g.handlePlaying(action)
		}
		return g.handleMenu(action, idx)
	}
	return false
}

func (g *Game) handlePlaying(a Action) bool {
	step := g.view.Layout.CellH
	switch a {
	case ActionUp:
		g.rec.Nudge(-step)
	case ActionDown:
		g.rec.Nudge(step)
	case ActionQuit:
		g.rec.Stop(session.ReasonAborted)
	}
	return false
}

func (g *Game) handleMenu(a Action, idx int) bool {
	switch a {
	case ActionUp:
		g.menu.up()
	case ActionDown:
		g.menu.down()
	case ActionConfirm:
		g.start(g.menu.current())
	case ActionChoose:
		if g.menu.choose(idx) {
			g.start(g.menu.current())
		}
	case ActionQuit:
		return true
	}
	return false
}

func (g *Game) start(difficulty string) {
	g.rec.Start(difficulty)
}

func (g *Game) draw() {
	if !g.sess.Running() && g.sess.Outcome() == present.OutcomeNone {
		g.view.DrawMenu(g.menu.selected)
		return
	}
	g.view.Draw()
}

// finish records a round that just ended. Persistence failures are logged
// and otherwise ignored.
func (g *Game) finish(res session.Result) {
	g.rec.Finish(res)
	if g.opts.RunLog != nil {
		e := runlog.FromResult(res, time.Now())
		e.Remote = g.opts.Remote
		if err := g.opts.RunLog.Append(e); err != nil {
			g.log.Warn("run log not saved", "err", err)
		}
	}
	if g.opts.Record != "" {
		if err := replay.Save(g.opts.Record, g.rec.File()); err != nil {
			g.log.Warn("replay not saved", "path", g.opts.Record, "err", err)
		}
	}
	g.log.Info("round recorded",
		"difficulty", res.Difficulty,
		"outcome", string(res.Outcome),
		"score", fmt.Sprintf("%d:%d", res.PlayerScore, res.ElfScore))
}
