package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mootlabs/moot/internal/errors"
	"github.com/mootlabs/moot/internal/logging"
	"github.com/mootlabs/moot/internal/session"
	"github.com/mootlabs/moot/internal/sse"
	"github.com/mootlabs/moot/internal/stream"
)

const (
	askPath    = "/api/ask"
	modelsPath = "/api/models"

	// maxErrorBody bounds how much of a rejection body is captured as
	// error detail.
	maxErrorBody = 8 << 10
)

// Client talks to the panel debate service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
	sleep      func(context.Context, time.Duration) error // backoff hook, nil for real timers
}

// New creates a Client for the service at baseURL. The token, when
// non-empty, is attached as a bearer header; the client treats it as an
// opaque pass-through. The HTTP client carries no timeout: debate streams
// stay open across many rounds, and any deadline policy belongs to the
// caller's context.
func New(baseURL, token string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 0},
		logger:     logger.WithComponent("client"),
	}
}

// Open issues the debate request and drives the event stream to its end,
// folding every event into the returned session and dispatching it to the
// caller's handlers in frame order.
//
// Outcomes:
//   - nil error: the stream ended with a result or a pause; inspect the
//     session's phase.
//   - errors.ErrCanceled (via errors.IsCancellation): the caller's context
//     fired. Not a failure; the partial session is still returned.
//   - *errors.TransportError: the request was rejected before streaming,
//     or the connection failed mid-stream.
//   - errors.ErrNoOutcome: the server sent done without any terminal
//     event.
//   - *errors.StreamError wrapping errors.ErrServerDeclared: the server
//     sent an error event.
//
// The response body is released on every exit path.
func (c *Client) Open(ctx context.Context, req AskRequest, handlers stream.Handlers) (*session.Session, error) {
	sess := session.New(req.ThreadID)
	logger := c.logger.WithThread(req.ThreadID)

	body, err := json.Marshal(req)
	if err != nil {
		return sess, fmt.Errorf("encode ask request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return sess, fmt.Errorf("create ask request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return sess, fmt.Errorf("open debate stream: %w", errors.ErrCanceled)
		}
		return sess, errors.WrapTransportError("open debate stream", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return sess, errors.NewTransportError("open debate stream", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := sess.Begin(); err != nil {
		return sess, err
	}
	logger.Debug("debate stream open", "continue", req.ContinueDebate)

	return sess, c.readLoop(ctx, resp.Body, sess, handlers, logger)
}

// readLoop is the single sequential reader of the stream. It returns when
// a done event arrives, the byte stream ends, or the context fires.
func (c *Client) readLoop(ctx context.Context, body io.Reader, sess *session.Session, handlers stream.Handlers, logger *logging.Logger) error {
	scanner := sse.NewScanner(body)

	for {
		payload, err := scanner.Next()
		if err != nil {
			if err != io.EOF {
				if ctx.Err() != nil {
					return fmt.Errorf("read debate stream: %w", errors.ErrCanceled)
				}
				return errors.WrapTransportError("read debate stream", err)
			}
			// EOF without a done event. Classify by what already folded:
			// a terminal event makes the missing done harmless.
			switch sess.Phase() {
			case session.PhaseFailed:
				return errors.NewStreamError(sess.LastError(), errors.ErrServerDeclared).WithThread(sess.ThreadID())
			case session.PhaseCompleted, session.PhasePaused:
				logger.Warn("stream ended without a done event")
				return nil
			default:
				if ctx.Err() != nil {
					return fmt.Errorf("read debate stream: %w", errors.ErrCanceled)
				}
				return errors.NewStreamError("connection dropped mid-debate", errors.ErrStreamClosed).WithThread(sess.ThreadID())
			}
		}

		ev, err := stream.ParseFrame(payload)
		if err != nil {
			// A single malformed event must never terminate the session.
			logger.Warn("dropping malformed frame", "error", err.Error())
			continue
		}

		sess.Apply(ev)
		handlers.Dispatch(logger, ev)

		if _, done := ev.(stream.DoneEvent); !done {
			continue
		}

		// Done is the exclusive graceful-end signal: stop reading even if
		// more bytes are technically available.
		switch sess.Phase() {
		case session.PhaseCompleted, session.PhasePaused:
			return nil
		case session.PhaseFailed:
			return errors.NewStreamError(sess.LastError(), errors.ErrServerDeclared).WithThread(sess.ThreadID())
		default:
			return fmt.Errorf("debate stream: %w", errors.ErrNoOutcome)
		}
	}
}
