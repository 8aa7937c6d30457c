package doctl

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckFunc is one readiness attempt. A non-nil error aborts the poll.
type CheckFunc func(ctx context.Context, attempt int) (bool, error)

// Poll runs check up to tries times with a fixed interval between attempts.
// It returns true as soon as an attempt succeeds and never sleeps after the last attempt.
func Poll(ctx context.Context, tries int, interval time.Duration, sleep SleepFunc, check CheckFunc) (bool, error) {
	if sleep == nil {
		sleep = sleepContext
	}
	for attempt := 1; attempt <= tries; attempt++ {
		ok, err := check(ctx, attempt)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if attempt < tries {
			if err = sleep(ctx, interval); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}
