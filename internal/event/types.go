package event

import (
	"time"

	"github.com/mootlabs/moot/internal/stream"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "debate.round", "panelist.stance")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Debate Lifecycle Events
// -----------------------------------------------------------------------------

// StatusChangedEvent is emitted when the server reports a progress update.
type StatusChangedEvent struct {
	baseEvent
	Message string // Human-readable progress text
}

// NewStatusChangedEvent creates a StatusChangedEvent.
func NewStatusChangedEvent(message string) StatusChangedEvent {
	return StatusChangedEvent{
		baseEvent: newBaseEvent("debate.status"),
		Message:   message,
	}
}

// RoundRecordedEvent is emitted when a finalized debate round arrives.
type RoundRecordedEvent struct {
	baseEvent
	Round stream.Round // The finalized round
}

// NewRoundRecordedEvent creates a RoundRecordedEvent.
func NewRoundRecordedEvent(round stream.Round) RoundRecordedEvent {
	return RoundRecordedEvent{
		baseEvent: newBaseEvent("debate.round"),
		Round:     round,
	}
}

// DebatePausedEvent is emitted when a supervised debate pauses for review.
type DebatePausedEvent struct {
	baseEvent
	Partial stream.Result // Partial result at the pause point
}

// NewDebatePausedEvent creates a DebatePausedEvent.
func NewDebatePausedEvent(partial stream.Result) DebatePausedEvent {
	return DebatePausedEvent{
		baseEvent: newBaseEvent("debate.paused"),
		Partial:   partial,
	}
}

// DebateCompletedEvent is emitted when the final result arrives.
type DebateCompletedEvent struct {
	baseEvent
	Result stream.Result // The final consolidated result
}

// NewDebateCompletedEvent creates a DebateCompletedEvent.
func NewDebateCompletedEvent(result stream.Result) DebateCompletedEvent {
	return DebateCompletedEvent{
		baseEvent: newBaseEvent("debate.completed"),
		Result:    result,
	}
}

// DebateFailedEvent is emitted when the server declares a fatal error.
type DebateFailedEvent struct {
	baseEvent
	Message string // Server-provided failure description
}

// NewDebateFailedEvent creates a DebateFailedEvent.
func NewDebateFailedEvent(message string) DebateFailedEvent {
	return DebateFailedEvent{
		baseEvent: newBaseEvent("debate.failed"),
		Message:   message,
	}
}

// -----------------------------------------------------------------------------
// Panelist Events
// -----------------------------------------------------------------------------

// PanelistSpokeEvent is emitted for each provisional per-panelist response.
// The response may later be superseded by a finalized round.
type PanelistSpokeEvent struct {
	baseEvent
	Panelist string // Display name of the panelist
	Response string // Provisional response text
}

// NewPanelistSpokeEvent creates a PanelistSpokeEvent.
func NewPanelistSpokeEvent(panelist, response string) PanelistSpokeEvent {
	return PanelistSpokeEvent{
		baseEvent: newBaseEvent("panelist.spoke"),
		Panelist:  panelist,
		Response:  response,
	}
}

// StanceChangedEvent is emitted when a panelist's extracted stance arrives.
// Stances are current facts: a later event for the same panelist replaces
// the earlier one.
type StanceChangedEvent struct {
	baseEvent
	Panelist string                // Panelist the stance belongs to
	Stance   stream.StanceSnapshot // Position, confidence, and key points
}

// NewStanceChangedEvent creates a StanceChangedEvent.
func NewStanceChangedEvent(panelist string, stance stream.StanceSnapshot) StanceChangedEvent {
	return StanceChangedEvent{
		baseEvent: newBaseEvent("panelist.stance"),
		Panelist:  panelist,
		Stance:    stance,
	}
}

// RolesAssignedEvent is emitted when the server assigns debate roles.
type RolesAssignedEvent struct {
	baseEvent
	Roles map[string]string // Panelist name -> role
}

// NewRolesAssignedEvent creates a RolesAssignedEvent.
func NewRolesAssignedEvent(roles map[string]string) RolesAssignedEvent {
	return RolesAssignedEvent{
		baseEvent: newBaseEvent("panelist.roles"),
		Roles:     roles,
	}
}

// -----------------------------------------------------------------------------
// Search Events
// -----------------------------------------------------------------------------

// SourceFoundEvent is emitted when background research surfaces a source.
type SourceFoundEvent struct {
	baseEvent
	Title string // Source title
	URL   string // Source URL
}

// NewSourceFoundEvent creates a SourceFoundEvent.
func NewSourceFoundEvent(title, url string) SourceFoundEvent {
	return SourceFoundEvent{
		baseEvent: newBaseEvent("search.source"),
		Title:     title,
		URL:       url,
	}
}
