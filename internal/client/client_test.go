package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mootlabs/moot/internal/errors"
	"github.com/mootlabs/moot/internal/logging"
	"github.com/mootlabs/moot/internal/session"
	"github.com/mootlabs/moot/internal/stream"
)

// writeEvent writes one wire frame and flushes it so the client sees it
// as a distinct chunk.
func writeEvent(t *testing.T, w http.ResponseWriter, payload string) {
	t.Helper()
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		t.Errorf("write event: %v", err)
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// streamServer returns a test server whose handler streams the given
// frames and a counter of how many request bodies were seen.
func streamServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, frame := range frames {
			writeEvent(t, w, frame)
		}
	}))
}

func TestOpenTwoRoundDebate(t *testing.T) {
	srv := streamServer(t,
		`{"type":"status","message":"starting"}`,
		`{"type":"debate_round","round":{"round_number":0,"panel_responses":{"Ada":"for","Alan":"against"}}}`,
		`{"type":"debate_round","round":{"round_number":1,"panel_responses":{"Ada":"agree","Alan":"agree"},"consensus_reached":true}}`,
		`{"type":"result","final_result":{"thread_id":"th-1","summary":"consensus"}}`,
		`{"type":"done"}`,
	)
	defer srv.Close()

	var order []string
	handlers := stream.Handlers{
		OnStatus: func(e stream.StatusEvent) { order = append(order, "status") },
		OnRound:  func(e stream.DebateRoundEvent) { order = append(order, fmt.Sprintf("round%d", e.Round.RoundNumber)) },
		OnResult: func(e stream.ResultEvent) { order = append(order, "result") },
		OnDone:   func(stream.DoneEvent) { order = append(order, "done") },
	}

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-1", Question: "q"}, handlers)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if sess.RoundCount() != 2 {
		t.Errorf("RoundCount() = %d, want 2", sess.RoundCount())
	}
	if _, ok := sess.FinalResult(); !ok {
		t.Error("FinalResult() should be set")
	}
	if sess.Paused() {
		t.Error("Paused() should be false")
	}

	want := []string{"status", "round0", "round1", "result", "done"}
	if len(order) != len(want) {
		t.Fatalf("dispatch order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("dispatch[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestOpenSendsRequestBodyAndAuth(t *testing.T) {
	var got AskRequest
	var auth, accept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		accept = r.Header.Get("Accept")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeEvent(t, w, `{"type":"result","final_result":{"thread_id":"th-2"}}`)
		writeEvent(t, w, `{"type":"done"}`)
	}))
	defer srv.Close()

	req := AskRequest{
		ThreadID:        "th-2",
		Question:        "should we rewrite it",
		DebateMode:      ModeSupervised,
		MaxDebateRounds: 4,
		ContinueDebate:  true,
		TaggedPanelists: []string{"Ada"},
		UserMessage:     "focus on cost",
		Panelists:       []Panelist{{ID: "p1", Name: "Ada", Provider: "anthropic", Model: "claude"}},
	}

	c := New(srv.URL, "secret-token", logging.NopLogger())
	if _, err := c.Open(context.Background(), req, stream.Handlers{}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if auth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", auth)
	}
	if accept != "text/event-stream" {
		t.Errorf("Accept = %q", accept)
	}
	if got.ThreadID != "th-2" || !got.ContinueDebate || got.DebateMode != ModeSupervised {
		t.Errorf("decoded request = %+v", got)
	}
	if len(got.TaggedPanelists) != 1 || got.TaggedPanelists[0] != "Ada" {
		t.Errorf("TaggedPanelists = %v", got.TaggedPanelists)
	}
}

func TestOpenFailsFastOnRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid provider key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-3"}, stream.Handlers{})

	var te *errors.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Open() error = %v, want *TransportError", err)
	}
	if te.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", te.StatusCode)
	}
	if te.Detail != "invalid provider key" {
		t.Errorf("Detail = %q, want the response body text", te.Detail)
	}
	if sess.Phase() != session.PhaseIdle {
		t.Errorf("session phase = %q, want idle: streaming never began", sess.Phase())
	}
}

func TestOpenSupervisedPause(t *testing.T) {
	srv := streamServer(t,
		`{"type":"debate_round","round":{"round_number":0,"panel_responses":{"Ada":"opening"}}}`,
		`{"type":"debate_paused","partial_result":{"thread_id":"th-4","panel_responses":{"Ada":"opening"}}}`,
		`{"type":"done"}`,
	)
	defer srv.Close()

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-4"}, stream.Handlers{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if !sess.Paused() {
		t.Error("Paused() should be true")
	}
	if sess.RoundCount() != 1 {
		t.Errorf("RoundCount() = %d, want 1", sess.RoundCount())
	}
	if _, ok := sess.FinalResult(); ok {
		t.Error("a paused session must not have a final result")
	}
}

func TestOpenMalformedFrameResilience(t *testing.T) {
	srv := streamServer(t,
		`{"type":"debate_round","round":{"round_number":0}}`,
		`{"type":"debate_round","round":`, // syntactically invalid
		`{"type":"debate_round","round":{"round_number":1}}`,
		`{"type":"result","final_result":{"thread_id":"th-5"}}`,
		`{"type":"done"}`,
	)
	defer srv.Close()

	var rounds []int
	handlers := stream.Handlers{
		OnRound: func(e stream.DebateRoundEvent) { rounds = append(rounds, e.Round.RoundNumber) },
	}

	c := New(srv.URL, "", logging.NopLogger())
	if _, err := c.Open(context.Background(), AskRequest{ThreadID: "th-5"}, handlers); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if len(rounds) != 2 || rounds[0] != 0 || rounds[1] != 1 {
		t.Errorf("dispatched rounds = %v, want [0 1] in order", rounds)
	}
}

func TestOpenServerDeclaredError(t *testing.T) {
	srv := streamServer(t,
		`{"type":"status","message":"starting"}`,
		`{"type":"error","message":"provider quota exhausted"}`,
		`{"type":"done"}`,
	)
	defer srv.Close()

	var errMsg string
	handlers := stream.Handlers{
		OnError: func(e stream.ErrorEvent) { errMsg = e.Message },
	}

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-6"}, handlers)

	if !errors.Is(err, errors.ErrServerDeclared) {
		t.Fatalf("Open() error = %v, want ErrServerDeclared", err)
	}
	if errors.IsCancellation(err) {
		t.Error("a server error must not classify as cancellation")
	}
	if errMsg != "provider quota exhausted" {
		t.Errorf("error callback message = %q", errMsg)
	}
	if sess.Phase() != session.PhaseFailed {
		t.Errorf("session phase = %q, want failed", sess.Phase())
	}
}

func TestOpenDoneWithoutOutcome(t *testing.T) {
	srv := streamServer(t,
		`{"type":"status","message":"warming up"}`,
		`{"type":"done"}`,
	)
	defer srv.Close()

	c := New(srv.URL, "", logging.NopLogger())
	_, err := c.Open(context.Background(), AskRequest{ThreadID: "th-7"}, stream.Handlers{})

	if !errors.Is(err, errors.ErrNoOutcome) {
		t.Errorf("Open() error = %v, want ErrNoOutcome", err)
	}
}

func TestOpenStreamDroppedMidDebate(t *testing.T) {
	srv := streamServer(t,
		`{"type":"debate_round","round":{"round_number":0}}`,
		// No terminal event, no done: the handler returns and the
		// connection closes.
	)
	defer srv.Close()

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-8"}, stream.Handlers{})

	if !errors.Is(err, errors.ErrStreamClosed) {
		t.Fatalf("Open() error = %v, want ErrStreamClosed", err)
	}
	if sess.RoundCount() != 1 {
		t.Errorf("RoundCount() = %d: folded state should survive the drop", sess.RoundCount())
	}
}

func TestOpenCancellationMidStream(t *testing.T) {
	release := make(chan struct{})
	var bodyClosed atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(t, w, `{"type":"status","message":"round 1 under way"}`)
		// Hold the stream open until the client gives up.
		<-r.Context().Done()
		bodyClosed.Add(1)
		close(release)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	handlers := stream.Handlers{
		OnStatus: func(stream.StatusEvent) { cancel() },
	}

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(ctx, AskRequest{ThreadID: "th-9"}, handlers)

	if !errors.IsCancellation(err) {
		t.Fatalf("Open() error = %v, want a cancellation outcome", err)
	}
	var te *errors.TransportError
	if errors.As(err, &te) {
		t.Error("cancellation must not be reported as a transport error")
	}
	if sess.LastStatus() != "round 1 under way" {
		t.Errorf("LastStatus() = %q: events before cancellation should fold", sess.LastStatus())
	}

	// The request context observed the disconnect, which can only happen
	// once the client released the response body.
	<-release
	if bodyClosed.Load() != 1 {
		t.Errorf("server observed %d disconnects, want 1", bodyClosed.Load())
	}
}

func TestOpenStopsReadingAfterDone(t *testing.T) {
	srv := streamServer(t,
		`{"type":"result","final_result":{"thread_id":"th-10"}}`,
		`{"type":"done"}`,
		`{"type":"debate_round","round":{"round_number":9}}`, // bytes after done
	)
	defer srv.Close()

	var roundsAfterDone int
	handlers := stream.Handlers{
		OnRound: func(stream.DebateRoundEvent) { roundsAfterDone++ },
	}

	c := New(srv.URL, "", logging.NopLogger())
	sess, err := c.Open(context.Background(), AskRequest{ThreadID: "th-10"}, handlers)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if roundsAfterDone != 0 {
		t.Errorf("dispatched %d rounds after done, want 0", roundsAfterDone)
	}
	if sess.RoundCount() != 0 {
		t.Errorf("RoundCount() = %d, want 0", sess.RoundCount())
	}
}
