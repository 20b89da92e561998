// Package client owns the request lifecycle against the panel debate
// service: opening the streaming ask endpoint, driving the read loop,
// folding events into a session, and guaranteeing that the response body
// is released on every exit path.
//
// It also provides the bootstrap catalog fetch, a best-effort one-shot GET
// wrapped in a bounded exponential backoff that degrades to an empty
// catalog rather than failing startup.
package client
