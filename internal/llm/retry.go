package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrier re-runs transient failures so a single flaky call doesn't cost
// the child their turn. Throttling and outages are worth waiting out;
// malformed output gets exactly one more chance, because a model that
// botched a quiz question once usually botches the identical prompt
// again and the engine has a synthesized fallback anyway.
type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider with the retry policy.
func WithRetry(next Provider, cfg RetryConfig) Provider {
	return &retrier{next: next, cfg: cfg}
}

func (r *retrier) ModelID() string { return r.next.ModelID() }

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	delay := r.cfg.InitialWait
	malformedOnce := false

	for attempt := 1; ; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts || !r.retryAllowed(err, &malformedOnce) {
			return nil, err
		}
		if err := sleepCtx(ctx, pickWait(err, delay, r.cfg.MaxWait)); err != nil {
			return nil, err
		}
		delay = time.Duration(float64(delay) * r.cfg.Multiplier)
	}
}

func (r *retrier) retryAllowed(err error, malformedOnce *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	kind, ok := KindOf(err)
	if !ok {
		// Unclassified transport glue; assume transient.
		return true
	}
	switch kind {
	case FailTruncated:
		// A bigger answer needs a bigger budget, not another attempt.
		return false
	case FailMalformed:
		if *malformedOnce {
			return false
		}
		*malformedOnce = true
		return true
	default:
		return true
	}
}

// pickWait chooses how long to sleep before the next attempt: the
// provider's throttle hint when it gave one, otherwise the backoff delay
// capped at max, with half-jitter to keep concurrent sessions from
// hammering in lockstep.
func pickWait(err error, delay, max time.Duration) time.Duration {
	var ge *GenerationError
	if errors.As(err, &ge) && ge.Wait > 0 {
		return ge.Wait
	}
	if delay > max {
		delay = max
	}
	if delay <= 0 {
		return 0
	}
	return delay/2 + rand.N(delay/2+1)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
