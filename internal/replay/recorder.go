package replay

import (
	"time"

	"gift-tornado/internal/session"

	"github.com/oklog/ulid/v2"
)

// Recorder drives a session and records every input it passes on.
type Recorder struct {
	s       *session.Session
	file    File
	pending []float64
}

func NewRecorder(s *session.Session) *Recorder {
	return &Recorder{s: s}
}

// Start begins a round on the session and a fresh recording.
func (r *Recorder) Start(difficulty string) {
	r.s.Start(difficulty)
	r.pending = nil
	r.file = File{Header: Header{
		Version:    Version,
		ID:         ulid.Make(),
		Recorded:   time.Now().UTC(),
		Seed:       r.s.Snapshot().Seed,
		Difficulty: difficulty,
		Config:     r.s.Config(),
	}}
}

func (r *Recorder) SetPointer(y float64) {
	if !r.s.Running() {
		return
	}
	r.s.SetPointer(y)
	r.pending = append(r.pending, y)
}

// Nudge is recorded as the absolute pointer it moves to.
func (r *Recorder) Nudge(dy float64) {
	r.SetPointer(r.s.Pointer() + dy)
}

func (r *Recorder) Advance(dt time.Duration) {
	if !r.s.Running() {
		return
	}
	r.file.Frames = append(r.file.Frames, Frame{Pointers: r.pending, DT: dt})
	r.pending = nil
	r.s.Advance(dt)
}

func (r *Recorder) Stop(reason session.Reason) { r.s.Stop(reason) }

// Finish stores the round's result. Call it from the session's OnFinish.
func (r *Recorder) Finish(res session.Result) {
	r.file.Result = res
	r.file.Done = true
}

// File returns the recording so far.
func (r *Recorder) File() *File {
	f := r.file
	return &f
}
