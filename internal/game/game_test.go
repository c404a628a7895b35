package game

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gift-tornado/internal/config"
	"gift-tornado/internal/present"
	"gift-tornado/internal/replay"
	"gift-tornado/internal/runlog"
	"gift-tornado/internal/session"

	"github.com/gdamore/tcell/v2"
)

const tick = time.Second / 60

// newTestGame builds a Game on an 80×24 simulation screen.
func newTestGame(t *testing.T, opts Options) (*Game, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(80, 24)
	if opts.Seed == 0 {
		opts.Seed = 9
	}
	return New(ss, opts), ss
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
		idx  int
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionUp, 0},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ActionDown, 0},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionConfirm, 0},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit, 0},
		{"k", key('k'), ActionUp, 0},
		{"j", key('j'), ActionDown, 0},
		{"q", key('q'), ActionQuit, 0},
		{"1", key('1'), ActionChoose, 0},
		{"3", key('3'), ActionChoose, 2},
		{"x", key('x'), ActionNone, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, idx := keyToAction(c.ev)
			if got != c.want || idx != c.idx {
				t.Errorf("keyToAction = (%v, %d), want (%v, %d)", got, idx, c.want, c.idx)
			}
		})
	}
}

func TestMenuWrapsAndChooses(t *testing.T) {
	m := newMenu([]string{"easy", "normal", "hard"}, "normal")
	if m.current() != "normal" {
		t.Fatalf("initial = %q", m.current())
	}
	m.down()
	m.down()
	if m.current() != "easy" {
		t.Errorf("down twice from normal = %q, want easy", m.current())
	}
	m.up()
	if m.current() != "hard" {
		t.Errorf("up from easy = %q, want hard", m.current())
	}
	if m.choose(5) || m.current() != "hard" {
		t.Error("out of range choice accepted")
	}
	if !m.choose(0) || m.current() != "easy" {
		t.Error("valid choice rejected")
	}
}

func TestMenuStartsChosenDifficulty(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.draw()
	if g.sess.Running() {
		t.Fatal("round started before a choice")
	}
	if g.handle(key('3')) {
		t.Fatal("choice exited the game")
	}
	if !g.sess.Running() || g.sess.Difficulty() != config.Hard {
		t.Fatalf("running=%v difficulty=%q", g.sess.Running(), g.sess.Difficulty())
	}
}

func TestPointerInput(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.start(config.Easy)
	y0 := g.sess.Snapshot().PlayerY

	g.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if got := g.sess.Snapshot().PlayerY; got != y0+g.view.Layout.CellH {
		t.Errorf("after down: y = %v, want %v", got, y0+g.view.Layout.CellH)
	}

	cam := g.view.Camera()
	g.handle(tcell.NewEventMouse(20, cam.OriginY, tcell.ButtonNone, tcell.ModNone))
	if got := g.sess.Snapshot().PlayerY; got != 0 {
		t.Errorf("mouse on top row: y = %v, want 0", got)
	}
}

func TestQuitAbortsThenExits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	g, _ := newTestGame(t, Options{RunLog: runlog.New(path)})
	g.start(config.Normal)
	for range 30 {
		g.rec.Advance(tick)
	}

	if g.handle(key('q')) {
		t.Fatal("first q should only end the round")
	}
	res, ok := g.sess.LastResult()
	if !ok || res.Reason != session.ReasonAborted {
		t.Fatalf("result = %+v, %v", res, ok)
	}
	if g.sess.Outcome() == present.OutcomeNone {
		t.Fatal("no outcome shown")
	}

	entries, err := runlog.New(path).Read()
	if err != nil || len(entries) != 1 || entries[0].Reason != "aborted" {
		t.Fatalf("run log = %+v, %v", entries, err)
	}

	if !g.handle(key('q')) {
		t.Fatal("q on the outcome panel should exit")
	}
}

func TestRecordedRoundReplays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.replay")
	g, _ := newTestGame(t, Options{Record: path})
	g.start(config.Hard)
	for i := range 240 {
		if i%20 == 0 {
			g.handle(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
		}
		g.rec.Advance(tick)
	}
	g.handle(key('q'))

	f, err := replay.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := replay.Verify(context.Background(), f, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestRunExitsOnQuit(t *testing.T) {
	g, ss := newTestGame(t, Options{Difficulty: config.Easy})
	errc := make(chan error, 1)
	go func() { errc <- g.Run(context.Background()) }()

	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g, _ := newTestGame(t, Options{Difficulty: config.Normal})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- g.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
