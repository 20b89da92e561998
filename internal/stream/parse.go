package stream

import (
	"encoding/json"
	"fmt"
)

// defaultConfidence is the neutral midpoint used when the server omits a
// stance confidence.
const defaultConfidence = 0.5

// envelope carries only the discriminator; kind-specific fields are
// decoded in a second pass once the kind is known.
type envelope struct {
	Type string `json:"type"`
}

// wireStance mirrors StanceSnapshot with pointers where absence matters.
type wireStance struct {
	Stance              Stance   `json:"stance"`
	Confidence          *float64 `json:"confidence"`
	ChangedFromPrevious bool     `json:"changed_from_previous"`
	CoreClaim           string   `json:"core_claim"`
}

func (w wireStance) normalize() StanceSnapshot {
	s := StanceSnapshot{
		Stance:              w.Stance,
		Confidence:          defaultConfidence,
		ChangedFromPrevious: w.ChangedFromPrevious,
		CoreClaim:           w.CoreClaim,
	}
	if w.Stance == "" {
		s.Stance = StanceNeutral
	}
	if w.Confidence != nil {
		s.Confidence = *w.Confidence
	}
	return s
}

// ParseFrame deserializes one raw frame payload into a typed event.
//
// An error is returned for unparseable JSON or an unrecognized type; the
// caller drops the frame and continues the stream. Recognized events with
// partially missing fields are repaired with defensive defaults so
// downstream code never handles partial shapes.
func ParseFrame(payload string) (Event, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Type {
	case TypeStatus:
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return StatusEvent{Message: body.Message}, nil

	case TypeSearchSource:
		var body struct {
			URL   string `json:"url"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return SearchSourceEvent{URL: body.URL, Title: body.Title}, nil

	case TypePanelistResponse:
		var body struct {
			Panelist string `json:"panelist"`
			Response string `json:"response"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return PanelistResponseEvent{Panelist: body.Panelist, Response: body.Response}, nil

	case TypeDebateRound:
		var body struct {
			Round wireRound `json:"round"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return DebateRoundEvent{Round: body.Round.normalize()}, nil

	case TypeStanceExtracted:
		var body struct {
			Panelist string     `json:"panelist"`
			Stance   wireStance `json:"stance"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return StanceExtractedEvent{Panelist: body.Panelist, Stance: body.Stance.normalize()}, nil

	case TypeRolesAssigned:
		var body struct {
			Roles map[string]string `json:"roles"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		if body.Roles == nil {
			body.Roles = make(map[string]string)
		}
		return RolesAssignedEvent{Roles: body.Roles}, nil

	case TypeDebatePaused:
		var body struct {
			PartialResult wireResult `json:"partial_result"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return DebatePausedEvent{Partial: body.PartialResult.normalize()}, nil

	case TypeResult:
		var body struct {
			FinalResult wireResult `json:"final_result"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return ResultEvent{Result: body.FinalResult.normalize()}, nil

	case TypeError:
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
		}
		return ErrorEvent{Message: body.Message}, nil

	case TypeDone:
		return DoneEvent{}, nil

	default:
		return nil, fmt.Errorf("unrecognized frame type %q", env.Type)
	}
}

// wireRound mirrors Round with stance snapshots in wire form.
type wireRound struct {
	RoundNumber      int                   `json:"round_number"`
	PanelResponses   map[string]string     `json:"panel_responses"`
	ConsensusReached bool                  `json:"consensus_reached"`
	UserMessage      string                `json:"user_message"`
	Stances          map[string]wireStance `json:"stances"`
	Scores           map[string]RoundScore `json:"scores"`
}

func (w wireRound) normalize() Round {
	r := Round{
		RoundNumber:      w.RoundNumber,
		PanelResponses:   w.PanelResponses,
		ConsensusReached: w.ConsensusReached,
		UserMessage:      w.UserMessage,
		Scores:           w.Scores,
	}
	if r.RoundNumber < 0 {
		r.RoundNumber = 0
	}
	if r.PanelResponses == nil {
		r.PanelResponses = make(map[string]string)
	}
	if w.Stances != nil {
		r.Stances = make(map[string]StanceSnapshot, len(w.Stances))
		for name, ws := range w.Stances {
			r.Stances[name] = ws.normalize()
		}
	}
	return r
}

// wireResult mirrors Result with rounds in wire form.
type wireResult struct {
	ThreadID       string            `json:"thread_id"`
	Summary        string            `json:"summary"`
	PanelResponses map[string]string `json:"panel_responses"`
	DebateHistory  []wireRound       `json:"debate_history"`
	Usage          *Usage            `json:"usage"`
}

func (w wireResult) normalize() Result {
	r := Result{
		ThreadID:       w.ThreadID,
		Summary:        w.Summary,
		PanelResponses: w.PanelResponses,
		Usage:          w.Usage,
	}
	if r.PanelResponses == nil {
		r.PanelResponses = make(map[string]string)
	}
	if w.DebateHistory != nil {
		r.DebateHistory = make([]Round, 0, len(w.DebateHistory))
		for _, wr := range w.DebateHistory {
			r.DebateHistory = append(r.DebateHistory, wr.normalize())
		}
	}
	return r
}
