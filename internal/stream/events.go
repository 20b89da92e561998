// Package stream defines the typed events of the panel debate protocol and
// converts raw wire frames into them.
//
// Each frame is a JSON object carrying a string "type" discriminator. The
// package models the event set as a sealed union: concrete structs
// implementing the Event interface, dispatched with an exhaustive type
// switch. Adding an event kind is a compile-time-checked change, not a
// string comparison buried in a conditional chain.
package stream

// Wire values of the "type" discriminator field.
const (
	TypeStatus           = "status"
	TypeSearchSource     = "search_source"
	TypePanelistResponse = "panelist_response"
	TypeDebateRound      = "debate_round"
	TypeStanceExtracted  = "stance_extracted"
	TypeRolesAssigned    = "roles_assigned"
	TypeDebatePaused     = "debate_paused"
	TypeResult           = "result"
	TypeError            = "error"
	TypeDone             = "done"
)

// Event is the interface implemented by every debate stream event.
// The unexported marker keeps the union sealed to this package.
type Event interface {
	// EventType returns the wire discriminator for this event.
	EventType() string

	isEvent()
}

// Stance is a panelist's extracted position on the debate question.
type Stance string

const (
	StanceFor         Stance = "FOR"
	StanceAgainst     Stance = "AGAINST"
	StanceConditional Stance = "CONDITIONAL"
	StanceNeutral     Stance = "NEUTRAL"
)

// StanceSnapshot captures one panelist's position in one round.
type StanceSnapshot struct {
	Stance              Stance  `json:"stance"`
	Confidence          float64 `json:"confidence"`
	ChangedFromPrevious bool    `json:"changed_from_previous"`
	CoreClaim           string  `json:"core_claim"`
}

// ScoreEvent is a single scored moment within a round.
type ScoreEvent struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
	Reason   string `json:"reason"`
}

// RoundScore aggregates a panelist's scoring for one round. CumulativeTotal
// is authoritative from the server and must not be recomputed client-side
// from history.
type RoundScore struct {
	Events          []ScoreEvent `json:"events"`
	RoundTotal      int          `json:"round_total"`
	CumulativeTotal int          `json:"cumulative_total"`
}

// Round is one finalized cycle of responses from the panel.
type Round struct {
	RoundNumber      int                       `json:"round_number"`
	PanelResponses   map[string]string         `json:"panel_responses"`
	ConsensusReached bool                      `json:"consensus_reached"`
	UserMessage      string                    `json:"user_message,omitempty"`
	Stances          map[string]StanceSnapshot `json:"stances,omitempty"`
	Scores           map[string]RoundScore     `json:"scores,omitempty"`
}

// Usage reports token consumption for the debate so far.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the terminal payload of a debate: complete on a result event,
// partial on a debate_paused event.
type Result struct {
	ThreadID       string            `json:"thread_id"`
	Summary        string            `json:"summary"`
	PanelResponses map[string]string `json:"panel_responses"`
	DebateHistory  []Round           `json:"debate_history,omitempty"`
	Usage          *Usage            `json:"usage,omitempty"`
}

// StatusEvent is a side-channel progress notification ("searching the
// web…", "panelist X is thinking…"). It carries no durable state.
type StatusEvent struct {
	Message string
}

// SearchSourceEvent reports a web source consulted by a panelist.
type SearchSourceEvent struct {
	URL   string
	Title string
}

// PanelistResponseEvent is an early, partial signal: one panelist's answer
// before the round it belongs to is finalized. A later DebateRoundEvent
// supersedes it.
type PanelistResponseEvent struct {
	Panelist string
	Response string
}

// DebateRoundEvent delivers a finalized round record.
type DebateRoundEvent struct {
	Round Round
}

// StanceExtractedEvent updates a panelist's current cross-round stance.
type StanceExtractedEvent struct {
	Panelist string
	Stance   StanceSnapshot
}

// RolesAssignedEvent assigns debate roles to panelists by name.
type RolesAssignedEvent struct {
	Roles map[string]string
}

// DebatePausedEvent suspends the debate awaiting caller input. The partial
// result carries everything folded server-side so far.
type DebatePausedEvent struct {
	Partial Result
}

// ResultEvent delivers the single success-terminal payload.
type ResultEvent struct {
	Result Result
}

// ErrorEvent is a well-formed server-declared failure, terminal for the
// session.
type ErrorEvent struct {
	Message string
}

// DoneEvent signals the end of the stream. It carries no payload and does
// not alter folded session state; it only tells the transport to stop
// reading.
type DoneEvent struct{}

func (StatusEvent) EventType() string           { return TypeStatus }
func (SearchSourceEvent) EventType() string     { return TypeSearchSource }
func (PanelistResponseEvent) EventType() string { return TypePanelistResponse }
func (DebateRoundEvent) EventType() string      { return TypeDebateRound }
func (StanceExtractedEvent) EventType() string  { return TypeStanceExtracted }
func (RolesAssignedEvent) EventType() string    { return TypeRolesAssigned }
func (DebatePausedEvent) EventType() string     { return TypeDebatePaused }
func (ResultEvent) EventType() string           { return TypeResult }
func (ErrorEvent) EventType() string            { return TypeError }
func (DoneEvent) EventType() string             { return TypeDone }

func (StatusEvent) isEvent()           {}
func (SearchSourceEvent) isEvent()     {}
func (PanelistResponseEvent) isEvent() {}
func (DebateRoundEvent) isEvent()      {}
func (StanceExtractedEvent) isEvent()  {}
func (RolesAssignedEvent) isEvent()    {}
func (DebatePausedEvent) isEvent()     {}
func (ResultEvent) isEvent()           {}
func (ErrorEvent) isEvent()            {}
func (DoneEvent) isEvent()             {}
