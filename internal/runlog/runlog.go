// Package runlog keeps a history of finished rounds as JSON lines.
package runlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gift-tornado/internal/session"

	"github.com/oklog/ulid/v2"
)

// Entry is one finished round.
type Entry struct {
	ID          ulid.ULID `json:"id"`
	Time        time.Time `json:"time"`
	Difficulty  string    `json:"difficulty"`
	Reason      string    `json:"reason"`
	Outcome     string    `json:"outcome"`
	PlayerScore int       `json:"player_score"`
	ElfScore    int       `json:"elf_score"`
	Health      int       `json:"health"`
	Seconds     float64   `json:"seconds"`
	Seed        int64     `json:"seed"`
	Remote      string    `json:"remote,omitempty"` // ssh client address
}

// FromResult builds the entry for a round that finished at now.
func FromResult(r session.Result, now time.Time) Entry {
	return Entry{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()),
		Time:        now.UTC(),
		Difficulty:  r.Difficulty,
		Reason:      r.Reason.String(),
		Outcome:     string(r.Outcome),
		PlayerScore: r.PlayerScore,
		ElfScore:    r.ElfScore,
		Health:      r.Health,
		Seconds:     r.Elapsed.Seconds(),
		Seed:        r.Seed,
	}
}

// Log appends entries to one file.
type Log struct {
	path string
}

func New(path string) *Log { return &Log{path: path} }

// Default opens runs.jsonl in the data directory.
func Default() (*Log, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return New(filepath.Join(dir, "runs.jsonl")), nil
}

func (l *Log) Path() string { return l.path }

// Append writes e as a single line, creating the file and its directory
// as needed.
func (l *Log) Append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("write run log: %w", err)
	}
	return f.Close()
}

// Read returns every entry in the log, oldest first. A missing file is an
// empty history. Lines that do not parse are skipped.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if json.Unmarshal(sc.Bytes(), &e) == nil {
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read run log: %w", err)
	}
	return out, nil
}

// Dir returns the directory where run logs are stored.
// Follows the XDG base directory layout: $XDG_DATA_HOME/gift-tornado,
// defaulting to ~/.local/share/gift-tornado.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gift-tornado"), nil
}
