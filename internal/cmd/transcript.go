package cmd

import (
	"fmt"
	"sort"

	"github.com/mootlabs/moot/internal/event"
)

// attachTranscript subscribes a plain-text printer to the bus. It is the
// non-TUI rendering path: one line per debate development, suitable for
// piping and scripting.
func attachTranscript(bus *event.Bus) {
	bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.StatusChangedEvent:
			fmt.Printf("[status] %s\n", ev.Message)
		case event.SourceFoundEvent:
			fmt.Printf("[source] %s (%s)\n", ev.Title, ev.URL)
		case event.PanelistSpokeEvent:
			fmt.Printf("%s: %s\n", ev.Panelist, ev.Response)
		case event.RoundRecordedEvent:
			fmt.Printf("\n=== round %d ===\n", ev.Round.RoundNumber+1)
			for _, name := range sortedNames(ev.Round.PanelResponses) {
				fmt.Printf("%s: %s\n", name, ev.Round.PanelResponses[name])
			}
			if ev.Round.ConsensusReached {
				fmt.Println("consensus reached")
			}
		case event.StanceChangedEvent:
			fmt.Printf("[stance] %s is %s (%.0f%% confident): %s\n",
				ev.Panelist, ev.Stance.Stance, ev.Stance.Confidence*100, ev.Stance.CoreClaim)
		case event.RolesAssignedEvent:
			for _, name := range sortedNames(ev.Roles) {
				fmt.Printf("[role] %s: %s\n", name, ev.Roles[name])
			}
		case event.DebatePausedEvent:
			fmt.Println("\n[paused] the panel is waiting for your input")
		case event.DebateCompletedEvent:
			if ev.Result.Summary != "" {
				fmt.Printf("\n=== verdict ===\n%s\n", ev.Result.Summary)
			}
		case event.DebateFailedEvent:
			fmt.Printf("\n[error] %s\n", ev.Message)
		}
	})
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
