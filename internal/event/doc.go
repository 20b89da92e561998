// Package event provides a pub-sub event bus for decoupled component
// communication in moot.
//
// The client package drives a debate stream and knows nothing about who
// displays it; the TUI and transcript printer render debates and know
// nothing about HTTP. The bus sits between them: stream events are
// bridged onto it, and any number of observers subscribe to the slices
// they care about.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously in registration order and protected against panics - a
// panicking handler will not prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	bus.Subscribe("debate.round", func(e event.Event) {
//	    round := e.(event.RoundRecordedEvent)
//	    fmt.Printf("round %d recorded\n", round.Round.RoundNumber)
//	})
//
//	// Bridge converts streaming callbacks into bus publishes.
//	sess, err := client.Open(ctx, req, event.Bridge(bus))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - debate.status, debate.round, debate.paused, debate.completed, debate.failed
//   - panelist.spoke, panelist.stance, panelist.roles
//   - search.source
package event
