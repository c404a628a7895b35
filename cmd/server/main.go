// gift-tornado-server hosts the game over SSH. Every connection plays its
// own independent round. Build:
//
//	go build -o gift-tornado-server ./cmd/server
//
// Usage:
//
//	./gift-tornado-server [--port 2222] [--key server_host_key] [--presets presets.yaml]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"gift-tornado/internal/config"
	"gift-tornado/internal/game"
	"gift-tornado/internal/logging"
	"gift-tornado/internal/runlog"
	internalssh "gift-tornado/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// allowedTerms are the terminal types the server will look up in terminfo.
// Anything else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const maxNameBytes = 16

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	presets := flag.String("presets", "", "YAML file overriding difficulty presets")
	flag.Parse()

	log := logging.New(os.Stderr)
	if err := run(*port, *keyFile, *presets, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(port int, keyFile, presets string, log *slog.Logger) error {
	cfg, err := config.Load(presets)
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(keyFile, log)
	if err != nil {
		return err
	}
	runs, err := runlog.Default()
	if err != nil {
		log.Warn("run log disabled", "err", err)
		runs = nil
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, runs, log)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info("listening", "port", port)
	log.Info(fmt.Sprintf("connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

// handleSession runs one game for one connection. It blocks until the
// player quits or disconnects.
func handleSession(s gossh.Session, cfg config.Config, runs *runlog.Log, log *slog.Logger) {
	pty, _, _ := s.Pty()
	term := internalssh.SessionTerm(pty.Term, s.Environ(), allowedTerms, "xterm-256color")
	screen, err := internalssh.OpenScreen(s, term)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	remote := s.RemoteAddr().String()
	log = log.With("user", sanitizeName(s.User()))
	log.Info("player connected", "remote", remote, "term", term)

	g := game.New(screen, game.Options{
		Config: cfg,
		RunLog: runs,
		Remote: remote,
		Log:    log,
	})
	if err := g.Run(s.Context()); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("game ended", "remote", remote, "err", err)
	}
	log.Info("player disconnected", "remote", remote)
}

// sanitizeName strips control characters from a client-supplied name and
// truncates it to maxNameBytes without splitting a character.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "gift-tornado server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.Warn("host key not saved", "path", path, "err", err)
		}
	}
	return signer, nil
}
