package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mootlabs/moot/internal/event"
)

// Run starts the viewer and blocks until the user quits. Bus events
// published while the viewer is up are forwarded into the bubbletea
// loop; the done channel, when it yields, marks the stream as ended.
func Run(model Model, bus *event.Bus, done <-chan error) error {
	p := tea.NewProgram(model, tea.WithAltScreen())

	subID := bus.SubscribeAll(func(e event.Event) {
		p.Send(debateMsg{ev: e})
	})
	defer bus.Unsubscribe(subID)

	go func() {
		err := <-done
		p.Send(streamDoneMsg{err: err})
	}()

	_, err := p.Run()
	return err
}
