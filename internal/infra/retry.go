package infra

import (
	"context"
	"log"
	"time"
)

// Retry calls fn up to attempts times, sleeping backoff*n after the n-th
// failure. It is meant for connection bootstrap only.
func Retry(ctx context.Context, name string, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for n := 1; n <= attempts; n++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if n == attempts {
			break
		}
		wait := backoff * time.Duration(n)
		log.Printf("%s: attempt %d/%d failed: %v (retrying in %s)", name, n, attempts, err, wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
