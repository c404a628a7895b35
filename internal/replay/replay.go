// Package replay records the inputs of a round and plays them back
// headlessly. A round is fully determined by its seed, its config and the
// sequence of pointer moves and frame steps, so a replay reproduces the
// recorded result exactly.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gift-tornado/internal/config"
	"gift-tornado/internal/session"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Version is the file format written by this package.
const Version = 1

// ErrVersion is returned when a file was written by an incompatible version.
var ErrVersion = errors.New("replay: unsupported version")

// Header identifies a recorded round.
type Header struct {
	Version    int           `msgpack:"version"`
	ID         ulid.ULID     `msgpack:"id"`
	Recorded   time.Time     `msgpack:"recorded"`
	Seed       int64         `msgpack:"seed"`
	Difficulty string        `msgpack:"difficulty"`
	Config     config.Config `msgpack:"config"`
}

// Frame is one Advance call and the pointer moves made just before it.
type Frame struct {
	Pointers []float64     `msgpack:"p,omitempty"`
	DT       time.Duration `msgpack:"dt"`
}

// File is a complete recording.
type File struct {
	Header Header         `msgpack:"header"`
	Frames []Frame        `msgpack:"frames"`
	Result session.Result `msgpack:"result"`
	Done   bool           `msgpack:"done"` // Result is set
}

// Encode writes f to w.
func Encode(w io.Writer, f *File) error {
	if err := msgpack.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return nil
}

// Decode reads a file written by Encode.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	if f.Header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, f.Header.Version)
	}
	return &f, nil
}

// Save writes f to path through a temporary file so a crash never leaves
// a truncated replay behind.
func Save(path string, f *File) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".replay-*")
	if err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	return nil
}

// Load reads a replay file from disk.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load replay: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}
