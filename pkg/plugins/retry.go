package plugins

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// retry runs op up to attempts times, waiting delay between tries. An error
// wrapped in backoff.Permanent stops the loop at once.
func retry(ctx context.Context, logger zerolog.Logger, what string, attempts int, delay time.Duration, op backoff.Operation) error {
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)
	return backoff.RetryNotify(op, policy, func(err error, next time.Duration) {
		logger.Warn().Err(err).Str("target", what).Dur("retry_in", next).Msg("Request failed, retrying")
	})
}
