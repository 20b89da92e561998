package event

import (
	"sync"
	"testing"

	"github.com/mootlabs/moot/internal/stream"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := NewBus()

	var received []string
	bus.Subscribe("debate.status", func(e Event) {
		received = append(received, e.(StatusChangedEvent).Message)
	})

	bus.Publish(NewStatusChangedEvent("starting"))
	bus.Publish(NewStatusChangedEvent("round 1"))

	if len(received) != 2 || received[0] != "starting" || received[1] != "round 1" {
		t.Errorf("received = %v, want [starting, round 1]", received)
	}
}

func TestBusSubscribeDoesNotReceiveOtherTypes(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.Subscribe("debate.round", func(Event) { calls++ })

	bus.Publish(NewStatusChangedEvent("ignored"))

	if calls != 0 {
		t.Errorf("handler called %d times for a different event type", calls)
	}
}

func TestBusWildcardOrdering(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "wildcard") })
	bus.Subscribe("debate.status", func(Event) { order = append(order, "specific") })

	bus.Publish(NewStatusChangedEvent("x"))

	// Specific handlers run before wildcard handlers regardless of
	// registration order.
	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("order = %v, want [specific, wildcard]", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var calls int
	id := bus.Subscribe("debate.status", func(Event) { calls++ })

	bus.Publish(NewStatusChangedEvent("one"))
	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe() = false for an active subscription")
	}
	bus.Publish(NewStatusChangedEvent("two"))

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe() = true for an already removed subscription")
	}
}

func TestBusPanicRecovery(t *testing.T) {
	bus := NewBus()

	var after int
	bus.Subscribe("debate.status", func(Event) { panic("bad handler") })
	bus.Subscribe("debate.status", func(Event) { after++ })

	bus.Publish(NewStatusChangedEvent("x"))

	if after != 1 {
		t.Error("a panicking handler must not block later handlers")
	}
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("debate.status", func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewStatusChangedEvent("x"))
		}()
	}
	wg.Wait()

	if count != 10 {
		t.Errorf("handler called %d times, want 10", count)
	}
}

func TestBusClear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("debate.status", func(Event) {})
	bus.SubscribeAll(func(Event) {})

	if got := bus.SubscriptionCount(); got != 2 {
		t.Errorf("SubscriptionCount() = %d, want 2", got)
	}

	bus.Clear()

	if got := bus.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() after Clear = %d, want 0", got)
	}
}

func TestBridgeRepublishes(t *testing.T) {
	bus := NewBus()

	var types []string
	bus.SubscribeAll(func(e Event) { types = append(types, e.EventType()) })

	handlers := Bridge(bus)
	handlers.OnStatus(stream.StatusEvent{Message: "starting"})
	handlers.OnPanelistResponse(stream.PanelistResponseEvent{Panelist: "Ada", Response: "for"})
	handlers.OnRound(stream.DebateRoundEvent{Round: stream.Round{RoundNumber: 0}})
	handlers.OnStance(stream.StanceExtractedEvent{Panelist: "Ada", Stance: stream.StanceSnapshot{Stance: stream.StanceFor}})
	handlers.OnResult(stream.ResultEvent{Result: stream.Result{ThreadID: "th-1"}})
	handlers.OnError(stream.ErrorEvent{Message: "boom"})

	want := []string{
		"debate.status",
		"panelist.spoke",
		"debate.round",
		"panelist.stance",
		"debate.completed",
		"debate.failed",
	}
	if len(types) != len(want) {
		t.Fatalf("republished types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestBridgePayloads(t *testing.T) {
	bus := NewBus()

	var round stream.Round
	bus.Subscribe("debate.round", func(e Event) {
		round = e.(RoundRecordedEvent).Round
	})

	handlers := Bridge(bus)
	handlers.OnRound(stream.DebateRoundEvent{Round: stream.Round{
		RoundNumber:    2,
		PanelResponses: map[string]string{"Ada": "agree"},
	}})

	if round.RoundNumber != 2 {
		t.Errorf("RoundNumber = %d, want 2", round.RoundNumber)
	}
	if round.PanelResponses["Ada"] != "agree" {
		t.Errorf("PanelResponses = %v", round.PanelResponses)
	}
}
