package stream

import (
	"testing"
)

func TestParseFrameStatus(t *testing.T) {
	ev, err := ParseFrame(`{"type":"status","message":"searching the web"}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	status, ok := ev.(StatusEvent)
	if !ok {
		t.Fatalf("expected StatusEvent, got %T", ev)
	}
	if status.Message != "searching the web" {
		t.Errorf("Message = %q, want %q", status.Message, "searching the web")
	}
}

func TestParseFrameDebateRound(t *testing.T) {
	payload := `{"type":"debate_round","round":{
		"round_number":2,
		"panel_responses":{"Ada":"For the motion","Alan":"Against it"},
		"consensus_reached":true,
		"stances":{"Ada":{"stance":"FOR","confidence":0.9,"changed_from_previous":true,"core_claim":"it scales"}},
		"scores":{"Ada":{"events":[{"category":"evidence","points":3,"reason":"cited benchmark"}],"round_total":3,"cumulative_total":7}}
	}}`

	ev, err := ParseFrame(payload)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	round, ok := ev.(DebateRoundEvent)
	if !ok {
		t.Fatalf("expected DebateRoundEvent, got %T", ev)
	}

	r := round.Round
	if r.RoundNumber != 2 {
		t.Errorf("RoundNumber = %d, want 2", r.RoundNumber)
	}
	if !r.ConsensusReached {
		t.Error("ConsensusReached should be true")
	}
	if r.PanelResponses["Ada"] != "For the motion" {
		t.Errorf("PanelResponses[Ada] = %q", r.PanelResponses["Ada"])
	}
	if got := r.Stances["Ada"]; got.Stance != StanceFor || got.Confidence != 0.9 || !got.ChangedFromPrevious {
		t.Errorf("Stances[Ada] = %+v", got)
	}
	if got := r.Scores["Ada"]; got.CumulativeTotal != 7 || len(got.Events) != 1 {
		t.Errorf("Scores[Ada] = %+v", got)
	}
}

func TestParseFrameStanceDefaults(t *testing.T) {
	ev, err := ParseFrame(`{"type":"stance_extracted","panelist":"Alan","stance":{"changed_from_previous":false}}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	stance := ev.(StanceExtractedEvent).Stance

	if stance.Stance != StanceNeutral {
		t.Errorf("missing stance should default to NEUTRAL, got %q", stance.Stance)
	}
	if stance.Confidence != 0.5 {
		t.Errorf("missing confidence should default to 0.5, got %v", stance.Confidence)
	}
	if stance.CoreClaim != "" {
		t.Errorf("missing core_claim should default to empty, got %q", stance.CoreClaim)
	}
}

func TestParseFrameZeroConfidenceIsKept(t *testing.T) {
	ev, err := ParseFrame(`{"type":"stance_extracted","panelist":"Alan","stance":{"stance":"AGAINST","confidence":0}}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	if got := ev.(StanceExtractedEvent).Stance.Confidence; got != 0 {
		t.Errorf("an explicit zero confidence must not be replaced, got %v", got)
	}
}

func TestParseFrameRoundDefaults(t *testing.T) {
	ev, err := ParseFrame(`{"type":"debate_round","round":{"round_number":-3}}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	r := ev.(DebateRoundEvent).Round
	if r.RoundNumber != 0 {
		t.Errorf("negative round number should clamp to 0, got %d", r.RoundNumber)
	}
	if r.PanelResponses == nil {
		t.Error("PanelResponses should never be nil after parsing")
	}
}

func TestParseFramePaused(t *testing.T) {
	payload := `{"type":"debate_paused","partial_result":{
		"thread_id":"th-1",
		"panel_responses":{"Ada":"so far"},
		"debate_history":[{"round_number":0,"panel_responses":{"Ada":"so far"}}],
		"usage":{"prompt_tokens":10,"completion_tokens":20,"total_tokens":30}
	}}`

	ev, err := ParseFrame(payload)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	paused := ev.(DebatePausedEvent)
	if paused.Partial.ThreadID != "th-1" {
		t.Errorf("ThreadID = %q", paused.Partial.ThreadID)
	}
	if len(paused.Partial.DebateHistory) != 1 {
		t.Errorf("DebateHistory length = %d, want 1", len(paused.Partial.DebateHistory))
	}
	if paused.Partial.Usage == nil || paused.Partial.Usage.TotalTokens != 30 {
		t.Errorf("Usage = %+v", paused.Partial.Usage)
	}
}

func TestParseFrameResult(t *testing.T) {
	ev, err := ParseFrame(`{"type":"result","final_result":{"thread_id":"th-9","summary":"consensus: yes"}}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	result := ev.(ResultEvent).Result
	if result.Summary != "consensus: yes" {
		t.Errorf("Summary = %q", result.Summary)
	}
	if result.PanelResponses == nil {
		t.Error("PanelResponses should never be nil after parsing")
	}
}

func TestParseFrameRolesAssigned(t *testing.T) {
	ev, err := ParseFrame(`{"type":"roles_assigned","roles":{"Ada":"advocate","Alan":"skeptic"}}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	roles := ev.(RolesAssignedEvent).Roles
	if roles["Alan"] != "skeptic" {
		t.Errorf("Roles[Alan] = %q, want %q", roles["Alan"], "skeptic")
	}
}

func TestParseFrameDone(t *testing.T) {
	ev, err := ParseFrame(`{"type":"done"}`)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	if _, ok := ev.(DoneEvent); !ok {
		t.Fatalf("expected DoneEvent, got %T", ev)
	}
}

func TestParseFrameMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{"type":"status",`},
		{"unknown type", `{"type":"telemetry","value":1}`},
		{"missing type", `{"message":"hello"}`},
		{"wrong field shape", `{"type":"debate_round","round":"not an object"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFrame(tt.payload); err == nil {
				t.Errorf("ParseFrame(%q) should fail", tt.payload)
			}
		})
	}
}
