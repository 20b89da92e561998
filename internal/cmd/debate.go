package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"

	"github.com/mootlabs/moot/internal/client"
	"github.com/mootlabs/moot/internal/config"
	"github.com/mootlabs/moot/internal/errors"
	"github.com/mootlabs/moot/internal/event"
	"github.com/mootlabs/moot/internal/logging"
	"github.com/mootlabs/moot/internal/session"
	"github.com/mootlabs/moot/internal/tui"
)

// newThreadID creates a short random hex thread ID
func newThreadID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// newLogger builds the debug logger from the loaded config.
func newLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.NewLogger(config.StateDir(), cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log unavailable: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

// rosterFromConfig converts the configured panel into request panelists.
func rosterFromConfig(cfg *config.Config) []client.Panelist {
	panelists := make([]client.Panelist, 0, len(cfg.Panel.Panelists))
	for _, p := range cfg.Panel.Panelists {
		panelists = append(panelists, client.Panelist{
			ID:       p.ID,
			Name:     p.Name,
			Provider: p.Provider,
			Model:    p.Model,
		})
	}
	return panelists
}

// runDebate drives one debate stream to its end, rendering it either in
// the TUI viewer or as a plain transcript on stdout. Ctrl-C cancels the
// stream and is reported as an orderly stop, not a failure.
func runDebate(cfg *config.Config, req client.AskRequest, label string, useTUI bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	c := client.New(cfg.API.BaseURL, cfg.API.Token, logger)
	bus := event.NewBus()
	handlers := event.Bridge(bus)

	if useTUI {
		model := tui.NewModel(label, cfg.TUI.Theme, cfg.TUI.MaxTranscriptLines)
		done := make(chan error, 1)
		go func() {
			_, err := c.Open(ctx, req, handlers)
			done <- err
		}()
		return tui.Run(model, bus, done)
	}

	attachTranscript(bus)
	sess, err := c.Open(ctx, req, handlers)
	printOutcome(sess, err)
	if err != nil && !errors.IsCancellation(err) {
		return err
	}
	return nil
}

// printOutcome summarizes how the debate ended on stdout.
func printOutcome(sess *session.Session, err error) {
	switch {
	case err == nil && sess.Paused():
		fmt.Printf("\ndebate paused after %d round(s); resume with: moot resume %s\n",
			sess.RoundCount(), sess.ThreadID())
	case err == nil:
		fmt.Printf("\ndebate completed in %d round(s)\n", sess.RoundCount())
	case errors.IsCancellation(err):
		fmt.Printf("\ndebate interrupted; %d round(s) received so far\n", sess.RoundCount())
	default:
		fmt.Fprintf(os.Stderr, "\ndebate ended abnormally: %v\n", err)
	}
}
