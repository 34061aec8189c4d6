package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestStartRejectsInvalidExpression(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("not a cron spec", time.UTC)
	if err := s.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}
}

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("0 6 * * *", time.UTC)
	ctx := context.Background()

	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	// Second start is a no-op while running.
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("second Start error: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	// Stop after stop is safe.
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("repeated Stop error: %v", err)
	}
}

func TestStartNilJob(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("0 6 * * *", time.UTC)
	if err := s.Start(context.Background(), nil); err != nil {
		t.Fatalf("nil job must be a no-op, got %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
}
