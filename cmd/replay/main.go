// replay re-simulates a recorded round without a terminal and checks that
// it ends the way it did when it was played.
//
// Usage:
//
//	replay [-v] file.replay
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gift-tornado/internal/logging"
	"gift-tornado/internal/replay"
)

func main() {
	verbose := flag.Bool("v", false, "log every round event to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] file.replay\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logging.Discard()
	if *verbose {
		log = logging.New(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := check(ctx, os.Stdout, flag.Arg(0), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// check replays the file at path and prints a summary to w. It reports
// false when the replay does not match the recording.
func check(ctx context.Context, w io.Writer, path string, log *slog.Logger) (bool, error) {
	f, err := replay.Load(path)
	if err != nil {
		return false, err
	}
	h := f.Header
	fmt.Fprintf(w, "round %s  %s  seed %d  %d frames\n", h.ID, h.Difficulty, h.Seed, len(f.Frames))

	got, err := replay.Verify(ctx, f, log)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		fmt.Fprintf(w, "MISMATCH  %v\n", err)
		return false, nil
	case err != nil:
		return false, err
	}
	fmt.Fprintf(w, "%s (%s)  player %d : %d elf  health %d  %.1fs\n",
		got.Outcome, got.Reason, got.PlayerScore, got.ElfScore, got.Health, got.Elapsed.Seconds())
	return true, nil
}
