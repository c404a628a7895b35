package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gift-tornado/internal/headless"
	"gift-tornado/internal/session"
)

// ErrMismatch is returned by Verify when playback ends differently.
var ErrMismatch = errors.New("replay: result differs from recording")

// checkEvery is how many frames run between context checks.
const checkEvery = 256

// Run plays f back on a headless field and returns the result. A recording
// that ended before its round did is stopped with the recorded reason.
func Run(ctx context.Context, f *File, log *slog.Logger) (session.Result, error) {
	s := session.New(headless.New(), f.Header.Config, log)
	s.Seed = f.Header.Seed

	var (
		got  session.Result
		done bool
	)
	s.OnFinish = func(r session.Result) {
		if !done {
			got, done = r, true
		}
	}
	s.Start(f.Header.Difficulty)

	for i, fr := range f.Frames {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return session.Result{}, fmt.Errorf("replay interrupted at frame %d: %w", i, err)
			}
		}
		for _, y := range fr.Pointers {
			s.SetPointer(y)
		}
		s.Advance(fr.DT)
	}
	if !done {
		reason := session.ReasonAborted
		if f.Done {
			reason = f.Result.Reason
		}
		s.Stop(reason)
	}
	return got, nil
}

// Verify plays f back and checks it reproduces the recorded result.
func Verify(ctx context.Context, f *File, log *slog.Logger) (session.Result, error) {
	got, err := Run(ctx, f, log)
	if err != nil {
		return got, err
	}
	if !f.Done {
		return got, fmt.Errorf("%w: recording has no result", ErrMismatch)
	}
	if got != f.Result {
		return got, fmt.Errorf("%w: got %s %d:%d after %d ticks, recorded %s %d:%d after %d ticks",
			ErrMismatch,
			got.Outcome, got.PlayerScore, got.ElfScore, got.Ticks,
			f.Result.Outcome, f.Result.PlayerScore, f.Result.ElfScore, f.Result.Ticks)
	}
	return got, nil
}
