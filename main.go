package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gift-tornado/internal/audio"
	"gift-tornado/internal/config"
	"gift-tornado/internal/game"
	"gift-tornado/internal/logging"
	"gift-tornado/internal/render"
	"gift-tornado/internal/runlog"

	"github.com/gdamore/tcell/v2"
)

func main() {
	difficulty := flag.String("difficulty", "", "start at once with this preset (easy, normal, hard or one from -presets)")
	seed := flag.Int64("seed", 0, "fix the random seed of every round (0 picks a fresh one)")
	presets := flag.String("presets", "", "YAML file overriding difficulty presets and tuning")
	mute := flag.Bool("mute", false, "disable sound")
	record := flag.String("record", "", "save the last round as a replay file")
	history := flag.Int("history", 0, "print the last N finished rounds and exit")
	flag.Parse()

	if err := run(*difficulty, *seed, *presets, *mute, *record, *history); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(difficulty string, seed int64, presets string, mute bool, record string, history int) error {
	runs, err := runlog.Default()
	if err != nil {
		return err
	}
	if history > 0 {
		return printHistory(os.Stdout, runs, history)
	}

	cfg, err := config.Load(presets)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open()
	if err != nil {
		log = logging.Discard()
	} else {
		defer closer.Close()
	}

	var speaker render.Speaker
	if !mute {
		p := audio.New(log)
		defer p.Close()
		speaker = p
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	g := game.New(screen, game.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Seed:       seed,
		Speaker:    speaker,
		RunLog:     runs,
		Record:     record,
		Log:        log,
	})
	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printHistory(w io.Writer, runs *runlog.Log, n int) error {
	entries, err := runs.Read()
	if err != nil {
		return err
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-8s %-6s %3d : %-3d %-9s %5.1fs\n",
			e.Time.Local().Format("2006-01-02 15:04"),
			e.Difficulty, e.Outcome, e.PlayerScore, e.ElfScore, e.Reason, e.Seconds)
	}
	return nil
}
