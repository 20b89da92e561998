package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// catalogAttempts bounds the bootstrap fetch retry loop.
	catalogAttempts = 5

	// catalogBaseDelay is the delay before the second attempt; each later
	// attempt doubles it (500ms, 1s, 2s, 4s).
	catalogBaseDelay = 500 * time.Millisecond
)

// FetchCatalog retrieves the provider/model catalog with a bounded
// exponential backoff. The catalog is best-effort initialization, not a
// hard dependency: if every attempt fails, an empty catalog is returned
// and the failure is only logged.
func (c *Client) FetchCatalog(ctx context.Context) Catalog {
	var catalog Catalog

	err := c.withBackoff(ctx, catalogAttempts, catalogBaseDelay, func() error {
		fetched, err := c.fetchCatalogOnce(ctx)
		if err != nil {
			return err
		}
		catalog = fetched
		return nil
	})
	if err != nil {
		c.logger.Warn("catalog fetch failed, continuing with empty catalog", "error", err.Error())
		return Catalog{}
	}
	return catalog
}

// fetchCatalogOnce performs the single idempotent GET.
func (c *Client) fetchCatalogOnce(ctx context.Context) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+modelsPath, nil)
	if err != nil {
		return Catalog{}, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Catalog{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return Catalog{}, &statusError{code: resp.StatusCode}
	}

	var catalog Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// withBackoff runs op up to attempts times. The delay before attempt n
// (n >= 2) is base * 2^(n-2). The loop stops early on success or when the
// context fires; the final attempt's error is returned on exhaustion.
func (c *Client) withBackoff(ctx context.Context, attempts int, base time.Duration, op func() error) error {
	sleep := c.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	delay := base
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}

		if lastErr = op(); lastErr == nil {
			return nil
		}
		c.logger.Debug("bootstrap attempt failed",
			"attempt", attempt,
			"max_attempts", attempts,
			"error", lastErr.Error())
	}
	return lastErr
}

// sleepContext waits for d or until ctx fires, whichever is first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// statusError is a minimal error for non-2xx catalog responses; the
// bootstrap path never surfaces it beyond logs.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
