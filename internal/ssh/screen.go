package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions opened without a terminal.
var ErrNoPTY = errors.New("ssh: session has no pty")

// termMu protects os.Setenv("TERM") around screen creation; terminfo
// lookup reads the process environment.
var termMu sync.Mutex

// OpenScreen creates and initialises a tcell screen drawing to s using the
// terminfo entry for term.
func OpenScreen(s gossh.Session, term string) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewSessionTty(s, pty, winCh)

	termMu.Lock()
	old, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", old)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup for %q: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}

// SessionTerm picks the terminal type for a client: the TERM it sent in
// its environment, else the one in its pty request. A type that allowed
// does not list yields fallback.
func SessionTerm(ptyTerm string, environ []string, allowed map[string]bool, fallback string) string {
	term := ptyTerm
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			term = v
			break
		}
	}
	if allowed[term] {
		return term
	}
	return fallback
}
