package session

import (
	"sort"
	"sync"

	"github.com/mootlabs/moot/internal/errors"
	"github.com/mootlabs/moot/internal/stream"
)

// Phase represents the lifecycle state of a debate session.
type Phase string

const (
	// PhaseIdle indicates the session exists but no stream has started.
	PhaseIdle Phase = "idle"

	// PhaseStreaming indicates events are being folded from an open stream.
	PhaseStreaming Phase = "streaming"

	// PhasePaused indicates the server suspended the debate awaiting
	// caller input. Resuming requires a new request; it is never automatic.
	PhasePaused Phase = "paused"

	// PhaseCompleted indicates the terminal result arrived. Absorbing.
	PhaseCompleted Phase = "completed"

	// PhaseFailed indicates a server-declared error arrived. Absorbing.
	PhaseFailed Phase = "failed"
)

// terminal reports whether the phase absorbs all further events.
func (p Phase) terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Session is the client-side aggregate for one panel debate stream.
type Session struct {
	mu          sync.Mutex
	threadID    string
	phase       Phase
	rounds      map[int]stream.Round
	provisional map[string]string // panelist -> streaming partial response
	stances     map[string]stream.StanceSnapshot
	roles       map[string]string
	tagged      map[string]struct{}
	lastStatus  string
	partial     *stream.Result
	final       *stream.Result
	lastError   string
}

// New creates an empty session for the given debate thread, in Idle phase.
func New(threadID string) *Session {
	return &Session{
		threadID:    threadID,
		phase:       PhaseIdle,
		rounds:      make(map[int]stream.Round),
		provisional: make(map[string]string),
		stances:     make(map[string]stream.StanceSnapshot),
		roles:       make(map[string]string),
		tagged:      make(map[string]struct{}),
	}
}

// Begin transitions the session into Streaming. Called when the transport
// has accepted the request and is about to deliver events. Beginning a
// Paused session is the resume path: provisional responses are cleared but
// folded rounds, stances, and roles are kept, since the server continues
// the same thread. Beginning a terminal session returns
// errors.ErrSessionTerminal.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.terminal() {
		return errors.ErrSessionTerminal
	}
	s.phase = PhaseStreaming
	s.provisional = make(map[string]string)
	return nil
}

// Apply folds one stream event into the session. Events arriving after a
// terminal phase are ignored. The fold is the only way session state
// mutates once a stream is open.
func (s *Session) Apply(ev stream.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.terminal() {
		return
	}

	switch e := ev.(type) {
	case stream.StatusEvent:
		// Side-channel only: no durable state beyond the latest message.
		s.lastStatus = e.Message

	case stream.SearchSourceEvent:
		// Display-only signal; nothing to fold.

	case stream.PanelistResponseEvent:
		// Early partial answer. Kept separate from finalized rounds: the
		// authoritative record arrives later as a debate_round event.
		s.provisional[e.Panelist] = e.Response

	case stream.DebateRoundEvent:
		// Idempotent upsert keyed by round number. A repeated or
		// out-of-order round replaces the prior entry, never appends.
		s.rounds[e.Round.RoundNumber] = e.Round
		for name := range e.Round.PanelResponses {
			delete(s.provisional, name)
		}

	case stream.StanceExtractedEvent:
		s.stances[e.Panelist] = e.Stance

	case stream.RolesAssignedEvent:
		for name, role := range e.Roles {
			s.roles[name] = role
		}

	case stream.DebatePausedEvent:
		partial := e.Partial
		s.partial = &partial
		s.phase = PhasePaused

	case stream.ResultEvent:
		result := e.Result
		s.final = &result
		s.partial = nil
		s.phase = PhaseCompleted

	case stream.ErrorEvent:
		s.lastError = e.Message
		s.phase = PhaseFailed

	case stream.DoneEvent:
		// Pure transport signal; the folded state is untouched.
	}
}

// Tag marks a panelist as @-mention targeted for the next request.
func (s *Session) Tag(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagged[name] = struct{}{}
}

// ThreadID returns the debate thread identifier.
func (s *Session) ThreadID() string {
	return s.threadID
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Paused reports whether the debate is suspended awaiting caller input.
func (s *Session) Paused() bool {
	return s.Phase() == PhasePaused
}

// Rounds returns all finalized rounds ordered by round number.
func (s *Session) Rounds() []stream.Round {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]stream.Round, 0, len(s.rounds))
	for _, r := range s.rounds {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RoundNumber < result[j].RoundNumber
	})
	return result
}

// Round returns the finalized round with the given number, if present.
func (s *Session) Round(n int) (stream.Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[n]
	return r, ok
}

// RoundCount returns the number of finalized rounds.
func (s *Session) RoundCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rounds)
}

// Provisional returns a copy of the in-flight per-panelist responses that
// have not yet been superseded by a finalized round.
func (s *Session) Provisional() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMap(s.provisional)
}

// Stances returns a copy of the current cross-round stance per panelist.
func (s *Session) Stances() map[string]stream.StanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMap(s.stances)
}

// Roles returns a copy of the current role assignments.
func (s *Session) Roles() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMap(s.roles)
}

// Tagged returns the sorted names of @-mention targeted panelists.
func (s *Session) Tagged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tagged))
	for name := range s.tagged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LastStatus returns the most recent status message, which callers may
// discard after display.
func (s *Session) LastStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// PartialResult returns the result captured at the pause point, if the
// session is paused.
func (s *Session) PartialResult() (stream.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partial == nil {
		return stream.Result{}, false
	}
	return *s.partial, true
}

// FinalResult returns the terminal result, if the session completed.
func (s *Session) FinalResult() (stream.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.final == nil {
		return stream.Result{}, false
	}
	return *s.final, true
}

// LastError returns the server-declared error message, if the session
// failed.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func copyMap[V any](m map[string]V) map[string]V {
	result := make(map[string]V, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
