package throttle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"moviemeta/internal/throttle"
)

func TestNewTokenBucketZeroRateIsNop(t *testing.T) {
	if _, ok := throttle.NewTokenBucket(0, 1).(throttle.Nop); !ok {
		t.Fatal("expected Nop limiter for zero rate")
	}
}

func TestTokenBucketSpacesRequests(t *testing.T) {
	limiter := throttle.NewTokenBucket(20, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
	// First token is immediate, the next two wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("expected throttling, three waits took %v", elapsed)
	}
}

func TestWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := (throttle.Nop{}).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Nop, got %v", err)
	}
	if err := throttle.NewTokenBucket(1, 1).Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled token bucket wait")
	}
}
