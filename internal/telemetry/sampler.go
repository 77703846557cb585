// Package telemetry simulates the live feeds of the dashboards. Each mounted
// widget owns one Sampler whose timer lives exactly as long as the widget.
package telemetry

import (
	"context"
	"sync"
	"time"
)

// Sampler regenerates a snapshot on a fixed interval and hands it to its
// listeners. Ticks of one sampler are totally ordered; nothing is implied
// about ordering across samplers.
type Sampler[T any] struct {
	name     string
	interval time.Duration
	generate func() T

	mu        sync.Mutex
	latest    T
	hasLatest bool
	listeners map[uint64]func(T)
	nextID    uint64
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewSampler returns a stopped sampler. generate must be synchronous and
// must always return a complete snapshot.
func NewSampler[T any](name string, interval time.Duration, generate func() T) *Sampler[T] {
	return &Sampler[T]{
		name:      name,
		interval:  interval,
		generate:  generate,
		listeners: make(map[uint64]func(T)),
	}
}

func (s *Sampler[T]) Name() string { return s.name }

// Start publishes a first snapshot right away and then one per interval
// until Stop or ctx cancellation. Starting a running sampler does nothing.
func (s *Sampler[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.tick()
	go s.run(runCtx, done)
}

// Stop cancels the timer and waits for the loop to exit. No listener is
// called once Stop has returned. Listeners must not call Stop themselves.
func (s *Sampler[T]) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the timer is active.
func (s *Sampler[T]) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Subscribe registers fn for every future snapshot.
func (s *Sampler[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Latest returns the most recent snapshot.
func (s *Sampler[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasLatest
}

func (s *Sampler[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.release(done)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// A tick racing with cancellation is dropped.
			if ctx.Err() != nil {
				return
			}
			s.tick()
		}
	}
}

// release forgets the run owning done, unless Stop or a restart already
// replaced it. It covers a loop ended by cancellation of the parent context.
func (s *Sampler[T]) release(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == done {
		s.cancel()
		s.cancel, s.done = nil, nil
	}
}

func (s *Sampler[T]) tick() {
	v := s.generate()

	s.mu.Lock()
	s.latest, s.hasLatest = v, true
	fns := make([]func(T), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
