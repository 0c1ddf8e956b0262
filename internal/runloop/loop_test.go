package runloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	t.Cleanup(cancel)
	return l, cancel, errc
}

func TestPostRunsInOrder(t *testing.T) {
	l, _, _ := startLoop(t)

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	if err := l.Call(context.Background(), func() {}); err != nil {
		t.Fatalf("Call() error: %v", err)
	}

	if len(got) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestConcurrentPostersSerialized(t *testing.T) {
	l, _, _ := startLoop(t)

	// counter is only touched on the loop goroutine; the race detector
	// flags any parallel execution.
	counter := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Post(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	var final int
	if err := l.Call(context.Background(), func() { final = counter }); err != nil {
		t.Fatal(err)
	}
	if final != 400 {
		t.Errorf("counter = %d, want 400", final)
	}
}

func TestAfter(t *testing.T) {
	l, _, _ := startLoop(t)

	fired := make(chan time.Time, 1)
	start := time.Now()
	l.After(20*time.Millisecond, func() { fired <- time.Now() })

	select {
	case at := <-fired:
		if at.Sub(start) < 20*time.Millisecond {
			t.Errorf("fired after %v, want >= 20ms", at.Sub(start))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("After task never ran")
	}
}

func TestPanicDoesNotStopLoop(t *testing.T) {
	l, _, _ := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	if err := l.Call(context.Background(), func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("task after panic did not run")
	}
}

func TestStop(t *testing.T) {
	l, cancel, errc := startLoop(t)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if l.Post(func() {}) {
		t.Error("Post() = true after stop")
	}
	if err := l.Call(context.Background(), func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("Call() error = %v, want ErrStopped", err)
	}
}

func TestCallContextCancelled(t *testing.T) {
	l := New() // never run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Call(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Call() error = %v, want DeadlineExceeded", err)
	}
}
