package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestDispatcherRunsSubmittedTasks(t *testing.T) {
	d := NewDispatcher(3, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	var mu sync.Mutex
	seen := make(map[string]int)
	done := make(chan struct{}, 6)

	for _, key := range []string{"a", "b", "a", "c", "b", "a"} {
		k := key
		d.Submit(Task{Key: k, Run: func(context.Context) error {
			mu.Lock()
			seen[k]++
			mu.Unlock()
			done <- struct{}{}
			return nil
		}})
	}

	for i := 0; i < 6; i++ {
		<-done
	}

	mu.Lock()
	defer mu.Unlock()
	if seen["a"] != 3 || seen["b"] != 2 || seen["c"] != 1 {
		t.Fatalf("unexpected task counts: %v", seen)
	}
}

func TestDispatcherPreservesPerKeyOrder(t *testing.T) {
	d := NewDispatcher(2, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	var mu sync.Mutex
	var order []int
	done := make(chan struct{}, 10)

	for i := 0; i < 10; i++ {
		n := i
		d.Submit(Task{Key: "user:42", Run: func(context.Context) error {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			done <- struct{}{}
			return nil
		}})
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	mu.Lock()
	defer mu.Unlock()
	for i, n := range order {
		if n != i {
			t.Fatalf("tasks for one key ran out of order: %v", order)
		}
	}
}

func TestDispatcherCloseDrainsQueuedTasks(t *testing.T) {
	d := NewDispatcher(1, zerolog.Nop())

	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		d.Submit(Task{Key: "k", Run: func(context.Context) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		}})
	}

	d.Start(context.Background())
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if count != 5 {
		t.Fatalf("expected 5 tasks drained, got %d", count)
	}
}
