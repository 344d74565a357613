package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_Do(t *testing.T) {
	t.Parallel()

	var f Flight[string]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := f.Do("season-1", func() (string, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || got != "ok" {
				t.Errorf("flight call got %q, %v", got, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if f.InFlight("season-1") {
		t.Fatalf("expected key to be released")
	}
}
