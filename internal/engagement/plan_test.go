package engagement

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestJoinPlanRunsAllSteps(t *testing.T) {
	plan := newJoinPlan(4)

	var ran int32
	for i := 0; i < 10; i++ {
		plan.add("step", func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	if err := plan.execute(context.Background()); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if ran != 10 {
		t.Fatalf("expected 10 steps to run, got %d", ran)
	}
}

func TestJoinPlanWrapsFailingStepName(t *testing.T) {
	plan := newJoinPlan(2)
	boom := errors.New("boom")
	plan.add("bookmarks", func(ctx context.Context) error { return boom })

	err := plan.execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "bookmarks") {
		t.Fatalf("expected step name in error, got %q", err.Error())
	}
}

func TestJoinPlanCancelsSiblingsOnFailure(t *testing.T) {
	plan := newJoinPlan(2)
	boom := errors.New("boom")

	var canceled atomic.Bool
	var started sync.WaitGroup
	started.Add(1)

	plan.add("slow", func(ctx context.Context) error {
		started.Done()
		select {
		case <-ctx.Done():
			canceled.Store(true)
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})
	plan.add("failing", func(ctx context.Context) error {
		started.Wait()
		return boom
	})

	err := plan.execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !canceled.Load() {
		t.Fatal("expected sibling step to observe cancellation")
	}
}

func TestJoinPlanHonorsCallerCancellation(t *testing.T) {
	plan := newJoinPlan(1)
	ctx, cancel := context.WithCancel(context.Background())

	plan.add("blocked", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := plan.execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
