package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/localmind"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] after the
// i-th failure. It makes len(delays)+1 attempts and returns the last error.
// Application errors, such as a 404 from the server, are returned without
// retrying. Each retry is logged at warn level when logger is non-nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if localmind.ErrorCode(err) != localmind.EINTERNAL || attempt == len(delays) {
			break
		}

		if logger != nil {
			logger.Warn("fetch retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
