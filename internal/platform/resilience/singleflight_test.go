package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		val, err, _ := g.Do("recompute", func() (any, error) {
			executions.Add(1)
			close(entered)
			<-release
			return "done", nil
		})
		if err != nil || val != "done" {
			t.Errorf("leader got val=%v err=%v", val, err)
		}
	}()

	// Leader is inside fn; joiners arriving now must share its result.
	<-entered
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, shared := g.Do("recompute", func() (any, error) {
				executions.Add(1)
				return "done", nil
			})
			if err != nil || val != "done" {
				t.Errorf("joiner got val=%v err=%v", val, err)
			}
			_ = shared
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	var g SingleFlight
	calls := 0

	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("key", func() (any, error) {
			calls++
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential call %d should not share a result", i)
		}
	}

	if calls != 3 {
		t.Fatalf("expected 3 executions, got %d", calls)
	}
}
