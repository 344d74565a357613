package resilience

import "sync"

// Flight collapses concurrent calls that share a key into one execution.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done chan struct{}
	val  T
	err  error
	dups int
}

// Do runs fn once per key at a time. Callers arriving while it runs wait and share the
// result; shared reports whether the value was handed to more than one caller.
func (f *Flight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*flightCall[T])
	}
	if c, ok := f.calls[key]; ok {
		c.dups++
		f.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall[T]{done: make(chan struct{})}
	f.calls[key] = c
	f.mu.Unlock()

	c.val, c.err = fn()

	f.mu.Lock()
	delete(f.calls, key)
	shared := c.dups > 0
	f.mu.Unlock()
	close(c.done)

	return c.val, c.err, shared
}

// InFlight reports whether a call for key is running.
func (f *Flight[T]) InFlight(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.calls[key]
	return ok
}
