// Package session folds debate stream events into a consistent,
// incrementally-updated view of one panel debate.
//
// A Session owns the client-side aggregate for a single stream: finalized
// rounds keyed by round number, provisional per-panelist responses,
// current stances and role assignments, the pause flag, and the terminal
// result or error.
//
// # Lifecycle
//
// A session progresses through the phases
//
//	Idle → Streaming → {Paused | Completed | Failed}
//
// Paused can only be exited by a fresh request initiated by the caller,
// never automatically. Completed and Failed are absorbing: once reached,
// applying further events leaves the session unchanged.
//
// # Usage
//
//	sess := session.New("th-1")
//	sess.Begin()
//	for ev := range events {
//		sess.Apply(ev)
//	}
//	if result, ok := sess.FinalResult(); ok { ... }
//
// # Thread Safety
//
// Session is safe for concurrent use. All state mutations are protected
// by an internal mutex, though the expected usage is a single sequential
// read loop applying events in frame order.
package session
