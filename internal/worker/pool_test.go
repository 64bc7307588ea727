package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(3, 10)
	out := p.Run(context.Background())

	var ran atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		id := i
		p.Submit(id, func(ctx context.Context) error {
			ran.Add(1)
			if id == 4 {
				return boom
			}
			return nil
		})
	}
	p.Close()

	seen := map[int]bool{}
	var failed []int
	for res := range out {
		seen[res.ID] = true
		if res.Err != nil {
			failed = append(failed, res.ID)
		}
	}

	if ran.Load() != 10 || len(seen) != 10 {
		t.Fatalf("expected 10 tasks, ran=%d seen=%d", ran.Load(), len(seen))
	}
	if len(failed) != 1 || failed[0] != 4 {
		t.Fatalf("expected only task 4 to fail, got %v", failed)
	}
}

func TestPool_CancelStopsWorkers(t *testing.T) {
	p := NewPool(2, 0)
	ctx, cancel := context.WithCancel(context.Background())
	out := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			for range out {
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("workers did not stop after cancel")
	}
}

func TestPool_CloseTwice(t *testing.T) {
	p := NewPool(1, 0)
	p.Close()
	p.Close()
}

func TestPool_RateLimit(t *testing.T) {
	p := NewPool(4, 4)
	p.SetRateLimit(20)
	out := p.Run(context.Background())

	start := time.Now()
	for i := 0; i < 4; i++ {
		p.Submit(i, func(ctx context.Context) error { return nil })
	}
	p.Close()
	for range out {
	}

	// burst 1 at 20/s: three waits of ~50ms after the first task
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("expected pacing, finished in %s", elapsed)
	}
}
