package event

import "github.com/mootlabs/moot/internal/stream"

// Bridge returns stream handlers that republish every streaming callback
// as a bus event. It lets renderers observe a live debate through the bus
// without the client knowing they exist.
//
// Raw done events carry no domain information and are not republished;
// observers learn about the end of a debate from the completed, paused,
// or failed events that precede it.
func Bridge(bus *Bus) stream.Handlers {
	return stream.Handlers{
		OnStatus: func(e stream.StatusEvent) {
			bus.Publish(NewStatusChangedEvent(e.Message))
		},
		OnSearchSource: func(e stream.SearchSourceEvent) {
			bus.Publish(NewSourceFoundEvent(e.Title, e.URL))
		},
		OnPanelistResponse: func(e stream.PanelistResponseEvent) {
			bus.Publish(NewPanelistSpokeEvent(e.Panelist, e.Response))
		},
		OnRound: func(e stream.DebateRoundEvent) {
			bus.Publish(NewRoundRecordedEvent(e.Round))
		},
		OnStance: func(e stream.StanceExtractedEvent) {
			bus.Publish(NewStanceChangedEvent(e.Panelist, e.Stance))
		},
		OnRolesAssigned: func(e stream.RolesAssignedEvent) {
			bus.Publish(NewRolesAssignedEvent(e.Roles))
		},
		OnPaused: func(e stream.DebatePausedEvent) {
			bus.Publish(NewDebatePausedEvent(e.Partial))
		},
		OnResult: func(e stream.ResultEvent) {
			bus.Publish(NewDebateCompletedEvent(e.Result))
		},
		OnError: func(e stream.ErrorEvent) {
			bus.Publish(NewDebateFailedEvent(e.Message))
		},
	}
}
