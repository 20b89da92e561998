package stream

import (
	"runtime/debug"

	"github.com/mootlabs/moot/internal/logging"
)

// Handlers is a table of optional callback slots, one per event kind.
// Any slot may be nil; events without a registered handler are dropped.
// Callbacks run synchronously in the read loop, in frame order.
type Handlers struct {
	OnStatus           func(StatusEvent)
	OnSearchSource     func(SearchSourceEvent)
	OnPanelistResponse func(PanelistResponseEvent)
	OnRound            func(DebateRoundEvent)
	OnStance           func(StanceExtractedEvent)
	OnRolesAssigned    func(RolesAssignedEvent)
	OnPaused           func(DebatePausedEvent)
	OnResult           func(ResultEvent)
	OnError            func(ErrorEvent)
	OnDone             func(DoneEvent)
}

// Dispatch routes one event to its matching callback slot. A panicking
// callback is recovered and logged so that one listener's failure cannot
// abort the whole session or leave the stream half-read.
//
// The type switch is exhaustive over the sealed event union; a new event
// kind fails to dispatch only if this function is not extended, which the
// package's own tests catch.
func (h Handlers) Dispatch(logger *logging.Logger, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handler panicked",
				"event_type", ev.EventType(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	switch e := ev.(type) {
	case StatusEvent:
		if h.OnStatus != nil {
			h.OnStatus(e)
		}
	case SearchSourceEvent:
		if h.OnSearchSource != nil {
			h.OnSearchSource(e)
		}
	case PanelistResponseEvent:
		if h.OnPanelistResponse != nil {
			h.OnPanelistResponse(e)
		}
	case DebateRoundEvent:
		if h.OnRound != nil {
			h.OnRound(e)
		}
	case StanceExtractedEvent:
		if h.OnStance != nil {
			h.OnStance(e)
		}
	case RolesAssignedEvent:
		if h.OnRolesAssigned != nil {
			h.OnRolesAssigned(e)
		}
	case DebatePausedEvent:
		if h.OnPaused != nil {
			h.OnPaused(e)
		}
	case ResultEvent:
		if h.OnResult != nil {
			h.OnResult(e)
		}
	case ErrorEvent:
		if h.OnError != nil {
			h.OnError(e)
		}
	case DoneEvent:
		if h.OnDone != nil {
			h.OnDone(e)
		}
	}
}
