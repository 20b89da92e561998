package client

// DebateMode selects how much human involvement a debate has.
type DebateMode string

const (
	// ModeAutonomous runs every round without stopping.
	ModeAutonomous DebateMode = "autonomous"

	// ModeSupervised pauses after each round for the caller to approve
	// continuation.
	ModeSupervised DebateMode = "supervised"

	// ModeParticipatory pauses for the caller to inject a message that the
	// panel debates alongside its own arguments.
	ModeParticipatory DebateMode = "participatory"
)

// Panelist is one configured LLM-backed participant.
type Panelist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// AskRequest is the JSON body of the POST that opens a debate stream.
//
// Resuming a paused debate is a new request on the same thread with
// ContinueDebate set; the server retains session state keyed by ThreadID,
// so round history is not re-sent.
type AskRequest struct {
	ThreadID        string            `json:"thread_id"`
	Question        string            `json:"question"`
	Attachments     []string          `json:"attachments,omitempty"` // data URIs
	Panelists       []Panelist        `json:"panelists,omitempty"`
	ProviderKeys    map[string]string `json:"provider_keys,omitempty"`
	DebateMode      DebateMode        `json:"debate_mode,omitempty"`
	MaxDebateRounds int               `json:"max_debate_rounds,omitempty"`
	ContinueDebate  bool              `json:"continue_debate,omitempty"`
	TaggedPanelists []string          `json:"tagged_panelists,omitempty"`
	UserMessage     string            `json:"user_message,omitempty"`
	ExitDebate      bool              `json:"exit_debate,omitempty"`
}

// CatalogModel is one model offered by a provider.
type CatalogModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogProvider is one provider entry in the bootstrap catalog.
type CatalogProvider struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Models []CatalogModel `json:"models"`
}

// Catalog is the provider/model catalog fetched once at startup.
type Catalog struct {
	Providers []CatalogProvider `json:"providers"`
}
